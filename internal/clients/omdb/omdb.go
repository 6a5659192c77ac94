// Package omdb is a thin client for the OMDb metadata API.
//
// Every call is a single attempt with no retries or backoff. It is bounded by
// the caller's context and the timeout of the injected http.Client. Callers
// catch the error and fall back.
package omdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fym/proj/internal/domain/models"
	"fym/proj/internal/metrics"

	"github.com/goccy/go-json"
)

const (
	DefaultBaseURL     = "https://www.omdbapi.com/"
	PlaceholderAPIKey  = "your-omdb-api-key"
	maxBodySize        = 4 << 20
	topRatedMovieTerm  = "academy award"
	topRatedSeriesTerm = "emmy winner"
)

var (
	TrendingTerms = []string{"action", "comedy", "drama", "thriller", "horror"}
	idRx          = regexp.MustCompile(`^tt\d{7,}$`)
)

func IsValidID(id string) bool {
	return idRx.MatchString(id)
}

type SearchParams struct {
	Query string
	// Type is "", "movie" or "series".
	Type string
	// Year of release, 0 for any.
	Year int
	// Page is 1-based; 0 means the first page.
	Page int
}

type Client struct {
	log     *slog.Logger
	http    *http.Client
	baseURL string
	apiKey  string
	pick    func(n int) int
}

func New(log *slog.Logger, httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		log:     log,
		http:    httpClient,
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(apiKey),
		pick:    rand.IntN,
	}
}

func (c *Client) configured() bool {
	return c.apiKey != "" && c.apiKey != PlaceholderAPIKey
}

func (c *Client) Search(ctx context.Context, params SearchParams) (*models.SearchEnvelope, error) {
	const op = "omdb.Client.Search"
	log := c.log.With("op", op, "query", params.Query, "type", params.Type)
	if !c.configured() {
		log.Warn("provider call without api key")
		return nil, ErrConfiguration
	}
	query := strings.TrimSpace(params.Query)
	if query == "" {
		return nil, ErrInvalidQuery
	}
	if params.Type != "" && params.Type != models.TypeMovie && params.Type != models.TypeSeries {
		return nil, ErrInvalidType
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("s", query)
	if params.Type != "" {
		q.Set("type", params.Type)
	}
	if params.Year > 0 {
		q.Set("y", strconv.Itoa(params.Year))
	}
	q.Set("page", strconv.Itoa(page))

	var envelope models.SearchEnvelope
	if err := c.do(ctx, "search", q, &envelope); err != nil {
		log.Info("search failed", "error", err)
		return nil, err
	}
	return &envelope, nil
}

func (c *Client) GetByID(ctx context.Context, id string) (*models.MovieRecord, error) {
	const op = "omdb.Client.GetByID"
	log := c.log.With("op", op, "id", id)
	if !c.configured() {
		log.Warn("provider call without api key")
		return nil, ErrConfiguration
	}
	if !IsValidID(id) {
		return nil, ErrInvalidID
	}
	q := url.Values{}
	q.Set("i", id)
	q.Set("plot", "full")

	var record models.MovieRecord
	if err := c.do(ctx, "details", q, &record); err != nil {
		log.Info("details lookup failed", "error", err)
		return nil, err
	}
	return &record, nil
}

// Trending searches a randomly chosen genre term. The provider has no real
// trending endpoint.
func (c *Client) Trending(ctx context.Context) (*models.SearchEnvelope, error) {
	term := TrendingTerms[c.pick(len(TrendingTerms))]
	return c.Search(ctx, SearchParams{Query: term, Type: models.TypeMovie, Page: 1})
}

func TopRatedTerm(typ string) string {
	if typ == models.TypeSeries {
		return topRatedSeriesTerm
	}
	return topRatedMovieTerm
}

func (c *Client) TopRated(ctx context.Context, typ string) (*models.SearchEnvelope, error) {
	if typ != models.TypeSeries {
		typ = models.TypeMovie
	}
	return c.Search(ctx, SearchParams{Query: TopRatedTerm(typ), Type: typ, Page: 1})
}

type status struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

func (c *Client) do(ctx context.Context, operation string, q url.Values, dst any) (err error) {
	start := time.Now()
	defer func() { metrics.RecordProviderCall(operation, time.Since(start), err) }()

	q.Set("apikey", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return &RequestError{Err: fmt.Errorf("create request: %w", err)}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &RequestError{Err: fmt.Errorf("read response: %w", err)}
	}
	var st status
	if err := json.Unmarshal(body, &st); err != nil {
		return &RequestError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if strings.EqualFold(st.Response, "False") {
		msg := st.Error
		if msg == "" {
			msg = "unknown error"
		}
		return &ProviderError{Message: msg}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &RequestError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
