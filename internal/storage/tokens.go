package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/dkorchagin/logbook/internal/dbx"
)

const (
	keySessionToken = "session_token"
	keySavedAt      = "session_saved_at"
)

// TokenStore is the CredentialStore backed by the local sqlite database.
// It keeps a single scalar token under a fixed key, plus the time it was
// written, for diagnostics.
type TokenStore struct {
	db   *sql.DB
	repo Repository
}

func NewTokenStore(db *sql.DB) *TokenStore {
	return &TokenStore{db: db, repo: NewSQLiteRepository(db)}
}

// Load returns the persisted token, or "" when none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	return s.repo.Get(ctx, keySessionToken)
}

// Save writes the token and its write time in a single transaction.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keySessionToken, token); err != nil {
			return err
		}
		return repo.Set(ctx, keySavedAt, time.Now().UTC().Format(time.RFC3339))
	})
}

// Clear wipes the stored credential.
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
