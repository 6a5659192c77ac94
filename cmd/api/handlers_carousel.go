package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fym/proj/internal/services/carousel"
)

type carouselInput struct {
	Queries []carousel.Query `json:"queries" validate:"required,min=1,max=10,dive"`
}

func (app *Application) collectCarousel(w http.ResponseWriter, r *http.Request) {
	var in carouselInput
	if !app.decodeBody(w, r, &in) {
		return
	}
	images := app.carousel.Collect(r.Context(), in.Queries)
	app.Http.Ok(w, r, envelop{"images": images, "interval": app.cfg.Carousel.Interval.Milliseconds()}, "")
}

// parseCarouselQueries reads "Matrix:movie,Friends:series,Dune" into queries.
func parseCarouselQueries(raw string) []carousel.Query {
	var queries []carousel.Query
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		term, typ, _ := strings.Cut(part, ":")
		if typ == "all" {
			typ = ""
		}
		queries = append(queries, carousel.Query{Term: strings.TrimSpace(term), Type: strings.TrimSpace(typ)})
	}
	return queries
}

// carouselStream pushes the current poster as a server-sent event every time
// the rotator advances, until the client goes away.
func (app *Application) carouselStream(w http.ResponseWriter, r *http.Request) {
	in := carouselInput{Queries: parseCarouselQueries(r.URL.Query().Get("q"))}
	if !app.validate(w, r, &in) {
		return
	}
	rc := http.NewResponseController(w)
	// the stream outlives the server write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	images := app.carousel.Collect(r.Context(), in.Queries)
	rotator := carousel.NewRotator(app.cfg.Carousel.Interval)
	defer rotator.Stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		app.log.Error("streaming unsupported", "errMsg", err.Error())
		return
	}

	rotator.SetImages(images)
	for {
		select {
		case <-r.Context().Done():
			return
		case image, open := <-rotator.Updates():
			if !open {
				return
			}
			if _, err := fmt.Fprintf(w, "event: image\ndata: %s\n\n", image); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}
