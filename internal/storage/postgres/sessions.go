package postgres

import (
	"context"
	"errors"
	"time"

	"fym/proj/internal/storage"

	"github.com/jackc/pgx/v5"
)

func (db *PostgresDB) SetSession(ctx context.Context, sid, accountID string) error {
	ttl := db.sessionTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	_, err := db.Conn.Exec(
		ctx,
		`INSERT INTO sessions (id, account_id, expires_at) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET account_id = EXCLUDED.account_id, expires_at = EXCLUDED.expires_at`,
		sid, accountID, time.Now().Add(ttl),
	)
	return err
}

func (db *PostgresDB) GetSession(ctx context.Context, sid string) (string, error) {
	var accountID string
	err := db.Conn.QueryRow(
		ctx,
		"SELECT account_id FROM sessions WHERE id = $1 AND expires_at > now()",
		sid,
	).Scan(&accountID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	return accountID, err
}

func (db *PostgresDB) DeleteSession(ctx context.Context, sid string) error {
	_, err := db.Conn.Exec(ctx, "DELETE FROM sessions WHERE id = $1", sid)
	return err
}
