package models

import (
	"strconv"
	"strings"
)

const (
	TypeMovie  = "movie"
	TypeSeries = "series"

	// NotAvailable is what the provider puts into fields it has no value for.
	NotAvailable = "N/A"
)

type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// MovieRecord is a full title record as the provider returns it. Field names
// follow the provider's JSON verbatim.
type MovieRecord struct {
	ImdbID       string   `json:"imdbID"`
	Title        string   `json:"Title"`
	Year         string   `json:"Year"`
	Rated        string   `json:"Rated,omitempty"`
	Released     string   `json:"Released,omitempty"`
	Runtime      string   `json:"Runtime,omitempty"`
	Genre        string   `json:"Genre,omitempty"` // comma joined, e.g. "Action, Sci-Fi"
	Director     string   `json:"Director,omitempty"`
	Writer       string   `json:"Writer,omitempty"`
	Actors       string   `json:"Actors,omitempty"`
	Plot         string   `json:"Plot,omitempty"`
	Language     string   `json:"Language,omitempty"`
	Country      string   `json:"Country,omitempty"`
	Awards       string   `json:"Awards,omitempty"`
	Poster       string   `json:"Poster,omitempty"`
	Ratings      []Rating `json:"Ratings,omitempty"`
	Metascore    string   `json:"Metascore,omitempty"`
	ImdbRating   string   `json:"imdbRating,omitempty"`
	ImdbVotes    string   `json:"imdbVotes,omitempty"`
	Type         string   `json:"Type,omitempty"`
	TotalSeasons string   `json:"totalSeasons,omitempty"`
	DVD          string   `json:"DVD,omitempty"`
	BoxOffice    string   `json:"BoxOffice,omitempty"`
	Production   string   `json:"Production,omitempty"`
	Website      string   `json:"Website,omitempty"`
	Response     string   `json:"Response,omitempty"`
}

// Genres splits the comma joined genre field.
func (m *MovieRecord) Genres() []string {
	if m.Genre == "" || m.Genre == NotAvailable {
		return nil
	}
	parts := strings.Split(m.Genre, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// YearValue returns the leading year of the Year field. Series carry ranges
// like "2008–2013", only the first year counts.
func (m *MovieRecord) YearValue() (int, bool) {
	return ParseYear(m.Year)
}

func (m *MovieRecord) RatingValue() (float64, bool) {
	if m.ImdbRating == "" || m.ImdbRating == NotAvailable {
		return 0, false
	}
	r, err := strconv.ParseFloat(m.ImdbRating, 64)
	if err != nil {
		return 0, false
	}
	return r, true
}

func (m *MovieRecord) HasPoster() bool {
	return m.Poster != "" && m.Poster != NotAvailable
}

func ParseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil {
		return 0, false
	}
	return y, true
}

type SearchResultItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// Record projects a search hit into a coarse MovieRecord. It is what views
// render when detail enrichment for the hit fails.
func (s SearchResultItem) Record() MovieRecord {
	return MovieRecord{
		ImdbID: s.ImdbID,
		Title:  s.Title,
		Year:   s.Year,
		Type:   s.Type,
		Poster: s.Poster,
	}
}

type SearchEnvelope struct {
	Search       []SearchResultItem `json:"Search"`
	TotalResults string             `json:"totalResults,omitempty"`
	Response     string             `json:"Response,omitempty"`
	Error        string             `json:"Error,omitempty"`
}

type Quote struct {
	Text      string `json:"text"`
	Movie     string `json:"movie"`
	Year      string `json:"year"`
	Character string `json:"character"`
}
