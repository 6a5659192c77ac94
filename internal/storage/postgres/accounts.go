package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fym/proj/internal/domain/models"
	"fym/proj/internal/storage"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type accountRow struct {
	Doc     []byte `db:"doc"`
	Version int64  `db:"version"`
}

func (r accountRow) decode() (*models.Account, error) {
	var acc models.Account
	if err := json.Unmarshal(r.Doc, &acc); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	acc.Version = uint(r.Version)
	return &acc, nil
}

func mapWriteErr(err error) error {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && pgxErr.Code == ErrConflictCode {
		return storage.ErrConflict
	}
	return err
}

func (db *PostgresDB) getAccount(ctx context.Context, query string, arg any) (*models.Account, error) {
	rows, _ := db.Conn.Query(ctx, query, arg)
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[accountRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return row.decode()
}

func (db *PostgresDB) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return db.getAccount(ctx, "SELECT doc, version FROM accounts WHERE id = $1", id)
}

func (db *PostgresDB) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return db.getAccount(ctx, "SELECT doc, version FROM accounts WHERE lower(email) = $1", strings.ToLower(email))
}

func (db *PostgresDB) InsertAccount(ctx context.Context, acc *models.Account) error {
	acc.Version = 1
	doc, err := json.Marshal(acc)
	if err != nil {
		return err
	}
	_, err = db.Conn.Exec(
		ctx,
		"INSERT INTO accounts (id, email, doc, version, created_at) VALUES ($1, $2, $3, 1, $4)",
		acc.ID, acc.Email, string(doc), acc.CreatedAt,
	)
	return mapWriteErr(err)
}

func (db *PostgresDB) UpdateAccount(ctx context.Context, acc *models.Account) (*models.Account, error) {
	updated := *acc
	updated.Version = acc.Version + 1
	doc, err := json.Marshal(&updated)
	if err != nil {
		return nil, err
	}
	rows, _ := db.Conn.Query(
		ctx,
		`UPDATE accounts SET version = version + 1, email = $1, doc = $2
		WHERE id = $3 AND version = $4 RETURNING doc, version`,
		acc.Email, string(doc), acc.ID, int64(acc.Version),
	)
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[accountRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the account is gone or someone bumped the version first.
			if _, getErr := db.GetAccount(ctx, acc.ID); getErr != nil {
				return nil, getErr
			}
			return nil, storage.ErrEditConflict
		}
		return nil, mapWriteErr(err)
	}
	return row.decode()
}
