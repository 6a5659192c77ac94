// Package postgres stores accounts as versioned JSONB documents.
package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const ErrConflictCode = "23505"

//go:embed migrations/*.sql
var migrations embed.FS

type PostgresDB struct {
	Conn       *pgxpool.Pool
	sessionTTL time.Duration
}

func New(ctx context.Context, dsn string, maxConns int, maxConnIdleTime, sessionTTL time.Duration) (*PostgresDB, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		poolCfg.MaxConns = int32(maxConns)
	}
	poolCfg.MaxConnIdleTime = maxConnIdleTime
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresDB{Conn: pool, sessionTTL: sessionTTL}, nil
}

// Migrate applies the embedded schema. Every statement is idempotent.
func (db *PostgresDB) Migrate(ctx context.Context) error {
	names, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		sql, err := migrations.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := db.Conn.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}

func (db *PostgresDB) Close() error {
	db.Conn.Close()
	return nil
}
