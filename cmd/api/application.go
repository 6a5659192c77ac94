package main

import (
	"context"
	"log/slog"
	"net/http"

	"fym/proj/internal/api/tasks"
	"fym/proj/internal/config"
	"fym/proj/internal/lib/validator"
	"fym/proj/internal/mails"
	"fym/proj/internal/querycache"
	"fym/proj/internal/services/accounts"
	"fym/proj/internal/services/carousel"
	"fym/proj/internal/services/catalog"
	"fym/proj/internal/services/social"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	Http      *Http
	validator *govalidator.Validate
	decoder   *schema.Decoder
	tasks     *tasks.BackgroundTasks
	cache     *querycache.Cache
	accounts  *accounts.AccountService
	catalog   *catalog.CatalogService
	carousel  *carousel.Collector
	social    social.Provider
}

// NewApplication wires the services. mailer may be nil, in which case no mail
// is sent.
func NewApplication(cfg *config.Config, log *slog.Logger, storage accounts.Storage, provider catalog.Provider, mailer mails.Sender) *Application {
	bgTasks := tasks.New(log, cfg.Tasks.Workers, cfg.Tasks.QueueSize)
	bgTasks.Run()

	cache := querycache.New(log, cfg.Cache.StaleTime, cfg.Cache.GCTime)
	catalogService := catalog.New(log, provider, cache, catalog.Options{
		SuggestDelay:  cfg.Suggestions.Delay,
		SuggestLimit:  cfg.Suggestions.Limit,
		EnrichWorkers: cfg.Omdb.EnrichWorkers,
	})
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Application{
		cfg:       cfg,
		log:       log,
		validator: validator.New(),
		decoder:   decoder,
		tasks:     bgTasks,
		cache:     cache,
		accounts:  accounts.New(log, storage, mailer, bgTasks),
		catalog:   catalogService,
		carousel: carousel.NewCollector(log, catalogService, bgTasks, &http.Client{Timeout: cfg.Server.ReadTimeout}, carousel.Options{
			MaxImages:    cfg.Carousel.MaxImages,
			Placeholder:  cfg.Carousel.Placeholder,
			PreloadCount: cfg.Carousel.PreloadCount,
		}),
		social: social.NewMock(log, catalogService, mailer, bgTasks),
		Http: &Http{
			log: log,
			cfg: cfg,
		},
	}
}

// Shutdown drains background work and stops the cache sweeper.
func (app *Application) Shutdown(ctx context.Context) error {
	defer app.cache.Close()
	return app.tasks.Shutdown(ctx)
}
