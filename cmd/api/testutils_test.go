package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/config"
	"fym/proj/internal/domain/models"
	"fym/proj/internal/lib/logger"
	badgerstore "fym/proj/internal/storage/badger"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	mu      sync.Mutex
	err     error
	items   []models.SearchResultItem
	records map[string]models.MovieRecord
}

func (p *stubProvider) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *stubProvider) Search(ctx context.Context, params omdb.SearchParams) (*models.SearchEnvelope, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return &models.SearchEnvelope{Search: p.items, TotalResults: fmt.Sprint(len(p.items)), Response: "True"}, nil
}

func (p *stubProvider) GetByID(ctx context.Context, id string) (*models.MovieRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	rec, ok := p.records[id]
	if !ok {
		return nil, &omdb.ProviderError{Message: "Incorrect IMDb ID."}
	}
	return &rec, nil
}

func (p *stubProvider) Trending(ctx context.Context) (*models.SearchEnvelope, error) {
	return p.Search(ctx, omdb.SearchParams{Query: "action"})
}

func (p *stubProvider) TopRated(ctx context.Context, typ string) (*models.SearchEnvelope, error) {
	return p.Search(ctx, omdb.SearchParams{Query: omdb.TopRatedTerm(typ)})
}

func newStubProvider() *stubProvider {
	p := &stubProvider{records: map[string]models.MovieRecord{}}
	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("tt%07d", i)
		item := models.SearchResultItem{ImdbID: id, Title: fmt.Sprintf("Title %d", i), Year: "2001", Type: "movie", Poster: "https://img/" + id}
		p.items = append(p.items, item)
		p.records[id] = models.MovieRecord{ImdbID: id, Title: item.Title, Year: "2001", Type: "movie", Genre: "Drama", ImdbRating: "7.5", Poster: item.Poster}
	}
	return p
}

func testConfig() *config.Config {
	cfg := &config.Config{AppSecret: "test-secret"}
	cfg.Server.SessionTTL = time.Hour
	cfg.Server.ReadTimeout = time.Second
	cfg.Tasks.Workers = 1
	cfg.Tasks.QueueSize = 10
	cfg.Cache.StaleTime = time.Minute
	cfg.Suggestions.Delay = time.Millisecond
	cfg.Suggestions.Limit = 6
	cfg.Omdb.EnrichWorkers = 2
	cfg.Carousel.Interval = time.Hour
	cfg.Carousel.MaxImages = 20
	cfg.Cors.AllowedOrigins = []string{"http://localhost:5173"}
	return cfg
}

func NewTestApplication(t *testing.T, cfg *config.Config, provider *stubProvider) *Application {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	if provider == nil {
		provider = newStubProvider()
	}
	storage, err := badgerstore.New("", true, cfg.Server.SessionTTL)
	require.NoError(t, err)
	app := NewApplication(cfg, logger.Discard(), storage, provider, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		app.Shutdown(ctx)
		storage.Close()
	})
	return app
}

type testResponse struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    map[string]json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func decodeField(t *testing.T, resp testResponse, key string, dst any) {
	t.Helper()
	raw, ok := resp.Data[key]
	require.True(t, ok, "missing data key %q", key)
	require.NoError(t, json.Unmarshal(raw, dst))
}

// signUp creates an account and returns the session token bound to it.
func signUp(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/api/v1/accounts/signup", "", map[string]string{
		"email": email, "password": "secret123", "username": "tester",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var token string
	decodeField(t, decodeResponse(t, rec), "token", &token)
	require.NotEmpty(t, token)
	return token
}
