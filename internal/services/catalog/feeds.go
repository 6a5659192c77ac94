package catalog

import (
	"context"
	"strings"

	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/domain/filters"
	"fym/proj/internal/domain/models"

	"golang.org/x/sync/errgroup"
)

const (
	trendingFeedSize        = 6
	topRatedFeedSize        = 8
	recommendationsPerFeed  = 6
	recommendationsFeedSize = 8
)

// TrendingFeed is the enriched home-page trending row. On failure it returns
// the built-in fallback list together with the error, so the caller can
// render something and still notify the user.
func (s *CatalogService) TrendingFeed(ctx context.Context) ([]models.MovieRecord, error) {
	const op = "catalog.CatalogService.TrendingFeed"
	env, err := s.Trending(ctx)
	if err != nil {
		s.log.Warn("trending unavailable, serving fallback", "op", op, "error", err)
		return FallbackTrending(), err
	}
	return s.Enrich(ctx, firstN(env.Search, trendingFeedSize)), nil
}

func (s *CatalogService) TopRatedFeed(ctx context.Context, typ string) ([]models.MovieRecord, error) {
	const op = "catalog.CatalogService.TopRatedFeed"
	env, err := s.TopRated(ctx, typ)
	if err != nil {
		s.log.Warn("top rated unavailable, serving fallback", "op", op, "type", typ, "error", err)
		return FallbackTopRated(), err
	}
	return s.Enrich(ctx, firstN(env.Search, topRatedFeedSize)), nil
}

// Recommendations combines the trending and top-rated movie feeds: the first
// six of each are enriched and the first eight of the union are kept.
func (s *CatalogService) Recommendations(ctx context.Context) ([]models.MovieRecord, error) {
	const op = "catalog.CatalogService.Recommendations"
	var trending, topRated *models.SearchEnvelope
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trending, err = s.Trending(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		topRated, err = s.TopRated(gctx, models.TypeMovie)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn("recommendations unavailable, serving fallback", "op", op, "error", err)
		return FallbackRecommendations(), err
	}
	items := append(
		append([]models.SearchResultItem{}, firstN(trending.Search, recommendationsPerFeed)...),
		firstN(topRated.Search, recommendationsPerFeed)...,
	)
	return firstN(s.Enrich(ctx, items), recommendationsFeedSize), nil
}

type BrowseParams struct {
	Query    string
	Type     string
	Page     int
	Criteria filters.Criteria
	Sort     string
}

type BrowseResult struct {
	Items        []models.MovieRecord `json:"items"`
	TotalResults string               `json:"totalResults"`
	Page         int                  `json:"page"`
}

// Browse backs the Movies and TV Shows pages: search, enrich every hit, then
// filter and sort the enriched records.
func (s *CatalogService) Browse(ctx context.Context, p BrowseParams) (*BrowseResult, error) {
	page := p.Page
	if page < 1 {
		page = 1
	}
	if strings.TrimSpace(p.Query) == "" {
		return &BrowseResult{Items: []models.MovieRecord{}, TotalResults: "0", Page: page}, nil
	}
	env, err := s.Search(ctx, omdb.SearchParams{Query: p.Query, Type: p.Type, Page: page})
	if err != nil {
		return nil, err
	}
	enriched := s.Enrich(ctx, env.Search)
	return &BrowseResult{
		Items:        filters.Apply(enriched, p.Criteria, p.Sort),
		TotalResults: env.TotalResults,
		Page:         page,
	}, nil
}
