package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"fym/proj/internal/clients/omdb"
	"fym/proj/internal/config"
	"fym/proj/internal/lib/logger"
	"fym/proj/internal/mails"
	"fym/proj/internal/services/accounts"
	"fym/proj/internal/storage/badger"
	"fym/proj/internal/storage/postgres"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")

	flag.Parse()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	storage, closer, err := openStorage(cfg, log)
	if err != nil {
		log.Error("failed to open storage", "driver", cfg.Storage.Driver, "errMsg", err.Error())
		os.Exit(1)
	}
	defer closer.Close()

	provider := omdb.New(log, &http.Client{Timeout: cfg.Omdb.Timeout}, cfg.Omdb.BaseURL, cfg.Omdb.APIKey)
	app := NewApplication(cfg, log, storage, provider, newMailer(cfg))
	if err := app.serve(); err != nil {
		app.log.Error("shutting down the server", "reason", err.Error())
		os.Exit(1)
	}
}

func openStorage(cfg *config.Config, log *slog.Logger) (accounts.Storage, io.Closer, error) {
	switch cfg.Storage.Driver {
	case "badger":
		db, err := badger.New(cfg.Storage.Badger.Path, cfg.Storage.Badger.InMemory, cfg.Server.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		log.Info("badger storage opened", "path", cfg.Storage.Badger.Path, "in_memory", cfg.Storage.Badger.InMemory)
		return db, db, nil
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		db, err := postgres.New(ctx, cfg.Storage.Postgres.Dsn, cfg.Storage.Postgres.MaxConns, cfg.Storage.Postgres.MaxConnIdleTime, cfg.Server.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("database connection established")
		return db, db, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func newMailer(cfg *config.Config) mails.Sender {
	if !cfg.SMTPServer.Enabled {
		return mails.Nop{}
	}
	return mails.New(
		cfg.SMTPServer.Host,
		cfg.SMTPServer.Port,
		cfg.SMTPServer.Timeout,
		cfg.SMTPServer.Username,
		cfg.SMTPServer.Password,
		cfg.SMTPServer.Sender,
		cfg.SMTPServer.RetriesCount,
	)
}
