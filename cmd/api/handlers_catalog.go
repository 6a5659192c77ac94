package main

import (
	"errors"
	"net/http"

	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/domain/filters"
	"fym/proj/internal/domain/models"
	"fym/proj/internal/services/catalog"
)

type searchQuery struct {
	Query string `schema:"query"`
	Type  string `schema:"type" validate:"omitempty,oneof=movie series"`
	Year  int    `schema:"year" validate:"omitempty,gte=1870,lte=2100"`
	Page  int    `schema:"page" validate:"omitempty,gte=1,lte=100"`
}

type browseQuery struct {
	Query     string   `schema:"query"`
	Genres    []string `schema:"genre" validate:"max=10"`
	YearMin   int      `schema:"year_min" validate:"omitempty,gte=1870,lte=2100"`
	YearMax   int      `schema:"year_max" validate:"omitempty,gte=1870,lte=2100"`
	RatingMin float64  `schema:"rating_min" validate:"omitempty,gte=0,lte=10"`
	RatingMax float64  `schema:"rating_max" validate:"omitempty,gte=0,lte=10"`
	Sort      string   `schema:"sort" validate:"omitempty,sortbycatalogfield"`
	Page      int      `schema:"page" validate:"omitempty,gte=1,lte=100"`
}

func (app *Application) browseMovies(w http.ResponseWriter, r *http.Request) {
	app.browse(w, r, models.TypeMovie)
}

func (app *Application) browseTV(w http.ResponseWriter, r *http.Request) {
	app.browse(w, r, models.TypeSeries)
}

func (app *Application) browse(w http.ResponseWriter, r *http.Request, typ string) {
	var q browseQuery
	if !app.decodeQuery(w, r, &q) {
		return
	}
	res, err := app.catalog.Browse(r.Context(), catalog.BrowseParams{
		Query: q.Query,
		Type:  typ,
		Page:  q.Page,
		Criteria: filters.Criteria{
			Genres:    q.Genres,
			YearMin:   q.YearMin,
			YearMax:   q.YearMax,
			RatingMin: q.RatingMin,
			RatingMax: q.RatingMax,
		},
		Sort: q.Sort,
	})
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"items": res.Items, "totalResults": res.TotalResults, "page": res.Page}, "")
}

func (app *Application) search(w http.ResponseWriter, r *http.Request) {
	var q searchQuery
	if !app.decodeQuery(w, r, &q) {
		return
	}
	env, err := app.catalog.Search(r.Context(), omdb.SearchParams{Query: q.Query, Type: q.Type, Year: q.Year, Page: q.Page})
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"results": env}, "")
}

// suggestions answers a superseded keystroke with an empty list.
func (app *Application) suggestions(w http.ResponseWriter, r *http.Request) {
	items, err := app.catalog.Suggestions(r.Context(), sessionIDFromCtx(r), r.URL.Query().Get("query"))
	if err != nil && !errors.Is(err, catalog.ErrSuperseded) {
		app.Http.Error(w, r, err)
		return
	}
	if items == nil {
		items = []models.SearchResultItem{}
	}
	app.Http.Ok(w, r, envelop{"suggestions": items}, "")
}

func (app *Application) getTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	rec, err := app.catalog.Details(r.Context(), id)
	if err != nil {
		app.Http.Error(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"title": rec}, "")
}

func (app *Application) trending(w http.ResponseWriter, r *http.Request) {
	items, err := app.catalog.TrendingFeed(r.Context())
	app.Http.Ok(w, r, feedPayload("items", items, err), "")
}

func (app *Application) topRated(w http.ResponseWriter, r *http.Request) {
	typ := r.URL.Query().Get("type")
	if typ != "" && typ != models.TypeMovie && typ != models.TypeSeries {
		app.Http.UnprocessableEntity(w, r, map[string]string{"type": "Value should be one of movie series"})
		return
	}
	items, err := app.catalog.TopRatedFeed(r.Context(), typ)
	app.Http.Ok(w, r, feedPayload("items", items, err), "")
}

func (app *Application) recommendations(w http.ResponseWriter, r *http.Request) {
	items, err := app.catalog.Recommendations(r.Context())
	app.Http.Ok(w, r, feedPayload("items", items, err), "")
}

func (app *Application) randomQuote(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{"quote": app.catalog.RandomQuote()}, "")
}
