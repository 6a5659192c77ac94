package main

import (
	"net/http"
	"sync"

	"fym/proj/internal/domain/models"

	"github.com/go-chi/render"
)

func (app *Application) healthcheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, struct {
		Status  string `json:"status"`
		Debug   bool   `json:"debug"`
		Version string `json:"version"`
	}{
		Status:  "available",
		Debug:   app.cfg.Debug,
		Version: version,
	})
}

// home serves the landing page: the trending and top-rated rows plus a quote.
// Either row falls back to its built-in list on failure.
func (app *Application) home(w http.ResponseWriter, r *http.Request) {
	var (
		wg                  sync.WaitGroup
		trending, topRated  []models.MovieRecord
		trendErr, topRatErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		trending, trendErr = app.catalog.TrendingFeed(r.Context())
	}()
	go func() {
		defer wg.Done()
		topRated, topRatErr = app.catalog.TopRatedFeed(r.Context(), models.TypeMovie)
	}()
	wg.Wait()

	data := envelop{
		"trending": feedPayload("items", trending, trendErr),
		"topRated": feedPayload("items", topRated, topRatErr),
		"quote":    app.catalog.RandomQuote(),
	}
	app.Http.Ok(w, r, data, "")
}
