// Package session persists the login record and decides, at startup and
// after every sign-in or sign-out, whether the user sees the vault or the
// login screen.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/elegacy/internal/common"
	"github.com/dmitrijs2005/elegacy/internal/dbx"
)

// Store keeps at most one session record under a fixed key.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Load returns nil, nil when nobody is signed in.
func (s *Store) Load(ctx context.Context) (*models.SessionRecord, error) {
	raw, err := s.repo().Get(ctx, common.SessionKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	rec, err := models.NewSessionRecord(raw)
	if err != nil {
		return nil, fmt.Errorf("stored session: %w", err)
	}
	return rec, nil
}

// Save replaces the stored record.
func (s *Store) Save(ctx context.Context, rec *models.SessionRecord) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SessionKey, rec.Raw()); err != nil {
			return err
		}
		ts := s.now().UTC().Format(time.RFC3339)
		return repo.Set(ctx, common.SessionSavedAtKey, []byte(ts))
	})
}

// SavedAt reports when the current record was written; zero when unknown.
func (s *Store) SavedAt(ctx context.Context) (time.Time, error) {
	raw, err := s.repo().Get(ctx, common.SessionSavedAtKey)
	if err != nil || raw == nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339, string(raw))
}

func (s *Store) Clear(ctx context.Context) error {
	return s.repo().Delete(ctx, common.SessionKey, common.SessionSavedAtKey)
}
