// Package badger stores accounts and sessions in an embedded BadgerDB.
//
// Every account is its own record, addressed by id, with a secondary
// email -> id index, so a mutation rewrites one account instead of the whole
// collection.
package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fym/proj/internal/domain/models"
	"fym/proj/internal/storage"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const (
	accountKeyPrefix = "account:"
	emailKeyPrefix   = "email:"
	sessionKeyPrefix = "session:"
)

type Storage struct {
	DB         *badger.DB
	sessionTTL time.Duration
}

// New opens (or creates) the database at path. An empty path or inMemory
// opens a throwaway in-memory database.
func New(path string, inMemory bool, sessionTTL time.Duration) (*Storage, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if inMemory || path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{DB: db, sessionTTL: sessionTTL}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func accountKey(id string) []byte {
	return []byte(accountKeyPrefix + id)
}

func emailKey(email string) []byte {
	return []byte(emailKeyPrefix + strings.ToLower(email))
}

func sessionKey(sid string) []byte {
	return []byte(sessionKeyPrefix + sid)
}

func getAccount(txn *badger.Txn, id string) (*models.Account, error) {
	item, err := txn.Get(accountKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	var acc models.Account
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &acc)
	}); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	return &acc, nil
}

func getString(txn *badger.Txn, key []byte) (string, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return "", err
	}
	return string(val), nil
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func putAccount(txn *badger.Txn, acc *models.Account) error {
	data, err := json.Marshal(acc)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	return txn.Set(accountKey(acc.ID), data)
}

// mapTxnErr turns badger's optimistic transaction conflict into the storage one.
func mapTxnErr(err error) error {
	if errors.Is(err, badger.ErrConflict) {
		return storage.ErrEditConflict
	}
	return err
}

func (s *Storage) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	var acc *models.Account
	err := s.DB.View(func(txn *badger.Txn) error {
		var err error
		acc, err = getAccount(txn, id)
		return err
	})
	return acc, err
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc *models.Account
	err := s.DB.View(func(txn *badger.Txn) error {
		id, err := getString(txn, emailKey(email))
		if err != nil {
			return err
		}
		acc, err = getAccount(txn, id)
		return err
	})
	return acc, err
}

func (s *Storage) InsertAccount(ctx context.Context, acc *models.Account) error {
	err := s.DB.Update(func(txn *badger.Txn) error {
		for _, key := range [][]byte{emailKey(acc.Email), accountKey(acc.ID)} {
			found, err := exists(txn, key)
			if err != nil {
				return err
			}
			if found {
				return storage.ErrConflict
			}
		}
		acc.Version = 1
		if err := putAccount(txn, acc); err != nil {
			return err
		}
		return txn.Set(emailKey(acc.Email), []byte(acc.ID))
	})
	return mapTxnErr(err)
}

// UpdateAccount writes acc if the stored version still equals acc.Version and
// returns the stored record with the incremented version.
func (s *Storage) UpdateAccount(ctx context.Context, acc *models.Account) (*models.Account, error) {
	updated := *acc
	err := s.DB.Update(func(txn *badger.Txn) error {
		current, err := getAccount(txn, acc.ID)
		if err != nil {
			return err
		}
		if current.Version != acc.Version {
			return storage.ErrEditConflict
		}
		if !strings.EqualFold(current.Email, acc.Email) {
			taken, err := exists(txn, emailKey(acc.Email))
			if err != nil {
				return err
			}
			if taken {
				return storage.ErrConflict
			}
			if err := txn.Delete(emailKey(current.Email)); err != nil {
				return err
			}
			if err := txn.Set(emailKey(acc.Email), []byte(acc.ID)); err != nil {
				return err
			}
		}
		updated.Version = current.Version + 1
		return putAccount(txn, &updated)
	})
	if err != nil {
		return nil, mapTxnErr(err)
	}
	return &updated, nil
}

func (s *Storage) SetSession(ctx context.Context, sid, accountID string) error {
	return s.DB.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(sessionKey(sid), []byte(accountID))
		if s.sessionTTL > 0 {
			e = e.WithTTL(s.sessionTTL)
		}
		return txn.SetEntry(e)
	})
}

func (s *Storage) GetSession(ctx context.Context, sid string) (string, error) {
	var id string
	err := s.DB.View(func(txn *badger.Txn) error {
		var err error
		id, err = getString(txn, sessionKey(sid))
		return err
	})
	return id, err
}

func (s *Storage) DeleteSession(ctx context.Context, sid string) error {
	return s.DB.Update(func(txn *badger.Txn) error {
		err := txn.Delete(sessionKey(sid))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}
