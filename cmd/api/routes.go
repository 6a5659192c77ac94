package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		app.Http.Response(w, r, nil, "", http.StatusMethodNotAllowed)
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.Metrics)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.cfg.Cors.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{SessionTokenHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(app.RateLimiter)
		r.Get("/healthcheck", app.healthcheck)

		r.Group(func(r chi.Router) {
			r.Use(app.Authenticate)

			r.Get("/home", app.home)
			r.Route("/catalog", func(r chi.Router) {
				r.Get("/movies", app.browseMovies)
				r.Get("/tv", app.browseTV)
				r.Get("/search", app.search)
				r.Get("/suggestions", app.suggestions)
				r.Get("/titles/{id}", app.getTitle)
				r.Get("/trending", app.trending)
				r.Get("/top-rated", app.topRated)
				r.Get("/recommendations", app.recommendations)
				r.Get("/quote", app.randomQuote)
			})
			r.Route("/carousel", func(r chi.Router) {
				r.Post("/", app.collectCarousel)
				r.Get("/stream", app.carouselStream)
			})
			r.Route("/accounts", func(r chi.Router) {
				r.Post("/signup", app.signup)
				r.Post("/signin", app.signin)
				r.Post("/signout", app.signout)
				r.With(app.requireAuthenticatedUser).Get("/me", app.me)
				r.With(app.requireAuthenticatedUser).Patch("/me", app.updateProfile)
			})

			r.Group(func(r chi.Router) {
				r.Use(app.requireAuthenticatedUser)
				r.Put("/settings", app.updateSettings)
				r.Route("/watchlists", func(r chi.Router) {
					r.Get("/", app.getWatchlists)
					r.Route("/{name}", func(r chi.Router) {
						r.Get("/export", app.exportWatchlist)
						r.Post("/items", app.addWatchlistItem)
						r.Delete("/items/{id}", app.removeWatchlistItem)
						r.Patch("/items/{id}", app.updateWatchlistItem)
						r.Post("/items/{id}/watched", app.markWatched)
					})
				})
				r.Route("/reviews", func(r chi.Router) {
					r.Get("/", app.getReviews)
					r.Put("/{id}", app.putReview)
				})
			})

			r.Route("/social", func(r chi.Router) {
				r.Get("/friends-activity", app.friendsActivity)
				r.Get("/common-interests", app.commonInterests)
				r.Get("/hidden-gems", app.hiddenGems)
				r.Get("/watch-parties", app.watchParties)
				r.Get("/collaborative-lists", app.collaborativeLists)
				r.Get("/moods", app.moodCollections)
				r.Get("/streaming/{id}", app.streamingAvailability)

				r.Group(func(r chi.Router) {
					r.Use(app.requireAuthenticatedUser)
					r.Post("/hidden-gems", app.submitGem)
					r.Post("/hidden-gems/{id}/votes", app.voteGem)
					r.Post("/watch-parties", app.createWatchParty)
					r.Post("/watch-parties/{id}/messages", app.postPartyMessage)
					r.Post("/collaborative-lists", app.createCollaborativeList)
					r.Post("/collaborative-lists/{id}/collaborators", app.addCollaborator)
					r.Post("/moods", app.createMoodCollection)
				})
			})
		})
	})
	return router
}
