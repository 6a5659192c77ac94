package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/domain/filters"
	"fym/proj/internal/domain/models"
	"fym/proj/internal/lib/logger"
	"fym/proj/internal/querycache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu          sync.Mutex
	searchCalls int
	detailCalls int
	queries     []string

	searchErr error
	results   map[string][]models.SearchResultItem
	details   map[string]models.MovieRecord
	delay     time.Duration
}

func (f *fakeProvider) Search(ctx context.Context, p omdb.SearchParams) (*models.SearchEnvelope, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	f.queries = append(f.queries, p.Query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	items := f.results[p.Query]
	return &models.SearchEnvelope{Search: items, TotalResults: fmt.Sprint(len(items)), Response: "True"}, nil
}

func (f *fakeProvider) GetByID(ctx context.Context, id string) (*models.MovieRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls++
	rec, ok := f.details[id]
	if !ok {
		return nil, &omdb.ProviderError{Message: "Incorrect IMDb ID."}
	}
	return &rec, nil
}

func (f *fakeProvider) Trending(ctx context.Context) (*models.SearchEnvelope, error) {
	return f.Search(ctx, omdb.SearchParams{Query: "action", Type: models.TypeMovie})
}

func (f *fakeProvider) TopRated(ctx context.Context, typ string) (*models.SearchEnvelope, error) {
	return f.Search(ctx, omdb.SearchParams{Query: omdb.TopRatedTerm(typ), Type: typ})
}

func (f *fakeProvider) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls, f.detailCalls
}

func items(prefix string, n int) []models.SearchResultItem {
	out := make([]models.SearchResultItem, n)
	for i := range out {
		id := fmt.Sprintf("tt%07d", len(prefix)*100+i)
		out[i] = models.SearchResultItem{ImdbID: id, Title: fmt.Sprintf("%s %d", prefix, i), Year: "2000", Type: "movie", Poster: "https://img/" + id}
	}
	return out
}

func newTestCatalog(t *testing.T, p *fakeProvider) *CatalogService {
	t.Helper()
	cache := querycache.New(logger.Discard(), time.Minute, 0)
	t.Cleanup(cache.Close)
	return New(logger.Discard(), p, cache, Options{SuggestDelay: 20 * time.Millisecond, SuggestLimit: 6, EnrichWorkers: 3})
}

func TestSearchUsesCache(t *testing.T) {
	p := &fakeProvider{results: map[string][]models.SearchResultItem{"batman": items("batman", 3)}}
	s := newTestCatalog(t, p)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		env, err := s.Search(ctx, omdb.SearchParams{Query: "batman"})
		require.NoError(t, err)
		assert.Len(t, env.Search, 3)
	}
	searches, _ := p.counts()
	assert.Equal(t, 1, searches)
	assert.Equal(t, querycache.StateSuccess, s.Status(SearchKey(omdb.SearchParams{Query: "batman"})).State)

	env, err := s.Search(ctx, omdb.SearchParams{Query: "   "})
	require.NoError(t, err)
	assert.Empty(t, env.Search)
	searches, _ = p.counts()
	assert.Equal(t, 1, searches)
}

func TestEnrichKeepsOrderAndFallsBack(t *testing.T) {
	hits := items("x", 5)
	p := &fakeProvider{details: map[string]models.MovieRecord{}}
	for i, h := range hits {
		if i == 2 {
			continue
		}
		p.details[h.ImdbID] = models.MovieRecord{ImdbID: h.ImdbID, Title: h.Title, Genre: "Drama", ImdbRating: "7.0"}
	}
	s := newTestCatalog(t, p)

	out := s.Enrich(context.Background(), hits)
	require.Len(t, out, 5)
	for i, rec := range out {
		assert.Equal(t, hits[i].ImdbID, rec.ImdbID)
	}
	assert.Equal(t, "Drama", out[0].Genre)
	assert.Empty(t, out[2].Genre)
	assert.Equal(t, hits[2].Poster, out[2].Poster)
}

func TestFeedsFallBackOnError(t *testing.T) {
	p := &fakeProvider{searchErr: omdb.ErrConfiguration}
	s := newTestCatalog(t, p)
	ctx := context.Background()

	trending, err := s.TrendingFeed(ctx)
	assert.ErrorIs(t, err, omdb.ErrConfiguration)
	assert.Equal(t, "The Dark Knight", trending[0].Title)

	top, err := s.TopRatedFeed(ctx, "movie")
	assert.ErrorIs(t, err, omdb.ErrConfiguration)
	assert.Equal(t, "The Shawshank Redemption", top[0].Title)

	recs, err := s.Recommendations(ctx)
	assert.ErrorIs(t, err, omdb.ErrConfiguration)
	require.Len(t, recs, 1)
	assert.Equal(t, "Inception", recs[0].Title)
}

func TestFeedSizes(t *testing.T) {
	p := &fakeProvider{results: map[string][]models.SearchResultItem{
		"action":        items("action", 10),
		"academy award": items("award", 10),
	}}
	s := newTestCatalog(t, p)
	ctx := context.Background()

	trending, err := s.TrendingFeed(ctx)
	require.NoError(t, err)
	assert.Len(t, trending, 6)

	top, err := s.TopRatedFeed(ctx, "")
	require.NoError(t, err)
	assert.Len(t, top, 8)

	recs, err := s.Recommendations(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 8)
	assert.Equal(t, "action 0", recs[0].Title)
	assert.Equal(t, "award 0", recs[6].Title)
}

func TestBrowse(t *testing.T) {
	hits := []models.SearchResultItem{
		{ImdbID: "tt0000001", Title: "b"}, {ImdbID: "tt0000002", Title: "a"}, {ImdbID: "tt0000003", Title: "c"},
	}
	p := &fakeProvider{
		results: map[string][]models.SearchResultItem{"star": hits},
		details: map[string]models.MovieRecord{
			"tt0000001": {ImdbID: "tt0000001", Title: "Beta", Year: "1999", Genre: "Drama", ImdbRating: "7.5"},
			"tt0000002": {ImdbID: "tt0000002", Title: "alpha", Year: "2005", Genre: "Sci-Fi, Action", ImdbRating: "8.1"},
			"tt0000003": {ImdbID: "tt0000003", Title: "Gamma", Year: "2012", Genre: "Action", ImdbRating: "6.0"},
		},
	}
	s := newTestCatalog(t, p)
	ctx := context.Background()

	res, err := s.Browse(ctx, BrowseParams{Query: "star", Criteria: filters.Criteria{Genres: []string{"Action"}}, Sort: "-rating"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "alpha", res.Items[0].Title)
	assert.Equal(t, "Gamma", res.Items[1].Title)
	assert.Equal(t, 1, res.Page)

	res, err = s.Browse(ctx, BrowseParams{Query: ""})
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	p.searchErr = errors.New("down")
	_, err = s.Browse(ctx, BrowseParams{Query: "other"})
	assert.Error(t, err)
}

func TestSuggestionsDebounce(t *testing.T) {
	p := &fakeProvider{results: map[string][]models.SearchResultItem{"batman": items("batman", 9)}}
	s := newTestCatalog(t, p)
	ctx := context.Background()

	type result struct {
		items []models.SearchResultItem
		err   error
	}
	first := make(chan result, 1)
	go func() {
		items, err := s.Suggestions(ctx, "sid", "batm")
		first <- result{items, err}
	}()
	time.Sleep(5 * time.Millisecond)
	got, err := s.Suggestions(ctx, "sid", "batman")
	require.NoError(t, err)
	assert.Len(t, got, 6)

	r := <-first
	assert.ErrorIs(t, r.err, ErrSuperseded)
	assert.Empty(t, r.items)

	p.mu.Lock()
	assert.Equal(t, []string{"batman"}, p.queries)
	p.mu.Unlock()
}

func TestSuggestionsShortQueryAndSessions(t *testing.T) {
	p := &fakeProvider{results: map[string][]models.SearchResultItem{"dune": items("dune", 2)}}
	s := newTestCatalog(t, p)
	ctx := context.Background()

	got, err := s.Suggestions(ctx, "a", "du")
	require.NoError(t, err)
	assert.Empty(t, got)

	var wg sync.WaitGroup
	var ok atomic.Int32
	for _, sid := range []string{"a", "b"} {
		wg.Add(1)
		go func(sid string) {
			defer wg.Done()
			got, err := s.Suggestions(ctx, sid, "dune")
			if err == nil && len(got) == 2 {
				ok.Add(1)
			}
		}(sid)
	}
	wg.Wait()
	assert.Equal(t, int32(2), ok.Load())
}

func TestSuggestionsCancelled(t *testing.T) {
	p := &fakeProvider{}
	s := newTestCatalog(t, p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Suggestions(ctx, "sid", "batman")
	assert.ErrorIs(t, err, context.Canceled)
	searches, _ := p.counts()
	assert.Equal(t, 0, searches)
}

func TestRandomQuote(t *testing.T) {
	s := newTestCatalog(t, &fakeProvider{})
	s.pick = func(n int) int { return n - 1 }
	assert.Equal(t, "Elementary, my dear Watson.", s.RandomQuote().Text)
	assert.Len(t, Quotes(), 10)
}
