// Package catalog serves the browsing side of FYM: search, details, the
// trending and top-rated feeds, detail enrichment and autocomplete. Provider
// calls go through the query cache so views asking for the same data share
// one request.
package catalog

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/domain/models"
	"fym/proj/internal/lib/debounce"
	"fym/proj/internal/querycache"

	"golang.org/x/sync/errgroup"
)

type Provider interface {
	Search(ctx context.Context, params omdb.SearchParams) (*models.SearchEnvelope, error)
	GetByID(ctx context.Context, id string) (*models.MovieRecord, error)
	Trending(ctx context.Context) (*models.SearchEnvelope, error)
	TopRated(ctx context.Context, typ string) (*models.SearchEnvelope, error)
}

type Options struct {
	SuggestDelay time.Duration
	SuggestLimit int
	// EnrichWorkers bounds concurrent detail lookups per batch.
	EnrichWorkers int
}

type CatalogService struct {
	log      *slog.Logger
	provider Provider
	cache    *querycache.Cache
	opts     Options
	pick     func(n int) int

	mu      sync.Mutex
	timers  map[string]*debounce.Timer
	pending map[string]chan struct{}
}

func New(log *slog.Logger, provider Provider, cache *querycache.Cache, opts Options) *CatalogService {
	if opts.SuggestLimit <= 0 {
		opts.SuggestLimit = 6
	}
	if opts.EnrichWorkers <= 0 {
		opts.EnrichWorkers = 6
	}
	return &CatalogService{
		log:      log,
		provider: provider,
		cache:    cache,
		opts:     opts,
		pick:     rand.IntN,
		timers:   make(map[string]*debounce.Timer),
		pending:  make(map[string]chan struct{}),
	}
}

func emptyEnvelope() *models.SearchEnvelope {
	return &models.SearchEnvelope{Search: []models.SearchResultItem{}, TotalResults: "0", Response: "True"}
}

func SearchKey(p omdb.SearchParams) querycache.Key {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return querycache.Key{"omdb", "search", strings.TrimSpace(p.Query), p.Type, strconv.Itoa(p.Year), strconv.Itoa(page)}
}

func DetailsKey(id string) querycache.Key {
	return querycache.Key{"omdb", "details", id}
}

var TrendingKey = querycache.Key{"omdb", "trending"}

func TopRatedKey(typ string) querycache.Key {
	return querycache.Key{"omdb", "top-rated", typ}
}

// Search returns an empty envelope for a blank query without calling the
// provider.
func (s *CatalogService) Search(ctx context.Context, params omdb.SearchParams) (*models.SearchEnvelope, error) {
	if strings.TrimSpace(params.Query) == "" {
		return emptyEnvelope(), nil
	}
	return querycache.Fetch(ctx, s.cache, SearchKey(params), func(ctx context.Context) (*models.SearchEnvelope, error) {
		return s.provider.Search(ctx, params)
	})
}

func (s *CatalogService) Details(ctx context.Context, id string) (*models.MovieRecord, error) {
	return querycache.Fetch(ctx, s.cache, DetailsKey(id), func(ctx context.Context) (*models.MovieRecord, error) {
		return s.provider.GetByID(ctx, id)
	})
}

func (s *CatalogService) Trending(ctx context.Context) (*models.SearchEnvelope, error) {
	return querycache.Fetch(ctx, s.cache, TrendingKey, s.provider.Trending)
}

func (s *CatalogService) TopRated(ctx context.Context, typ string) (*models.SearchEnvelope, error) {
	if typ != models.TypeSeries {
		typ = models.TypeMovie
	}
	return querycache.Fetch(ctx, s.cache, TopRatedKey(typ), func(ctx context.Context) (*models.SearchEnvelope, error) {
		return s.provider.TopRated(ctx, typ)
	})
}

// Status exposes the loading state of a cached query.
func (s *CatalogService) Status(key querycache.Key) querycache.Status {
	return s.cache.Status(key)
}

// Enrich looks up full details for every item concurrently. Results keep the
// order of items; a failed lookup falls back to the coarse search record, so
// Enrich never fails as a whole.
func (s *CatalogService) Enrich(ctx context.Context, items []models.SearchResultItem) []models.MovieRecord {
	const op = "catalog.CatalogService.Enrich"
	out := make([]models.MovieRecord, len(items))
	var g errgroup.Group
	g.SetLimit(s.opts.EnrichWorkers)
	for i, item := range items {
		g.Go(func() error {
			rec, err := s.Details(ctx, item.ImdbID)
			if err != nil || rec == nil {
				s.log.Debug("detail lookup failed, using search record", "op", op, "id", item.ImdbID, "error", err)
				out[i] = item.Record()
				return nil
			}
			out[i] = *rec
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
