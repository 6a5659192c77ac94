package filters

import (
	"sort"
	"strings"

	"fym/proj/internal/domain/models"
)

const (
	AscSort  = "ASC"
	DescSort = "DESC"
)

const (
	SortTitle  = "title"
	SortYear   = "year"
	SortRating = "rating"
)

// CatalogSortSafelist lists the record fields a catalog view may be sorted by.
var CatalogSortSafelist = []string{SortTitle, SortYear, SortRating}

type Filters struct {
	Sort         string
	SortSafelist []string
}

// SortColumn resolves Sort against the safelist. ok is false for a column
// outside it.
func (f *Filters) SortColumn() (column string, ok bool) {
	s := strings.TrimPrefix(f.Sort, "-")
	for _, safeValue := range f.SortSafelist {
		if strings.EqualFold(s, safeValue) {
			return strings.ToLower(s), true
		}
	}
	return "", false
}

func (f *Filters) SortDirection() string {
	if strings.HasPrefix(f.Sort, "-") {
		return DescSort
	}
	return AscSort
}

// Criteria holds the user selected predicates of a catalog view. Zero values
// impose no constraint.
type Criteria struct {
	Genres    []string
	YearMin   int
	YearMax   int
	RatingMin float64
	RatingMax float64
	Query     string
	Type      string
}

func (c *Criteria) yearActive() bool   { return c.YearMin > 0 || c.YearMax > 0 }
func (c *Criteria) ratingActive() bool { return c.RatingMin > 0 || c.RatingMax > 0 }

// Match reports whether the record satisfies every active predicate.
func (c *Criteria) Match(m *models.MovieRecord) bool {
	if len(c.Genres) > 0 && !hasAnyGenre(m.Genres(), c.Genres) {
		return false
	}
	if c.yearActive() {
		y, ok := m.YearValue()
		if !ok || !inRange(float64(y), float64(c.YearMin), float64(c.YearMax)) {
			return false
		}
	}
	if c.ratingActive() {
		r, ok := m.RatingValue()
		if !ok || !inRange(r, c.RatingMin, c.RatingMax) {
			return false
		}
	}
	if c.Type != "" && c.Type != "all" && !strings.EqualFold(m.Type, c.Type) {
		return false
	}
	if q := strings.TrimSpace(c.Query); q != "" {
		q = strings.ToLower(q)
		if !strings.Contains(strings.ToLower(m.Title), q) && !strings.Contains(strings.ToLower(m.Plot), q) {
			return false
		}
	}
	return true
}

func inRange(v, lo, hi float64) bool {
	if lo > 0 && v < lo {
		return false
	}
	if hi > 0 && v > hi {
		return false
	}
	return true
}

func hasAnyGenre(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

// Apply filters records by criteria and then sorts them by sortBy ("title",
// "-year", ...). An empty or unknown sortBy keeps input order. The input is
// not modified.
func Apply(records []models.MovieRecord, criteria Criteria, sortBy string) []models.MovieRecord {
	out := make([]models.MovieRecord, 0, len(records))
	for i := range records {
		if criteria.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	if sortBy == "" {
		return out
	}
	f := Filters{Sort: sortBy, SortSafelist: CatalogSortSafelist}
	column, ok := f.SortColumn()
	if !ok {
		return out
	}
	less := lessFunc(column)
	desc := f.SortDirection() == DescSort
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return less(&out[j], &out[i])
		}
		return less(&out[i], &out[j])
	})
	return out
}

func lessFunc(column string) func(a, b *models.MovieRecord) bool {
	switch column {
	case SortYear:
		return func(a, b *models.MovieRecord) bool {
			ay, _ := a.YearValue()
			by, _ := b.YearValue()
			return ay < by
		}
	case SortRating:
		return func(a, b *models.MovieRecord) bool {
			ar, _ := a.RatingValue()
			br, _ := b.RatingValue()
			return ar < br
		}
	default:
		return func(a, b *models.MovieRecord) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	}
}
