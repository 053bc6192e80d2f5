package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/elegacy/internal/common"
	"github.com/dmitrijs2005/elegacy/internal/validate"
)

var ErrProfileIncomplete = errors.New("please fill in your name and email")

// ProfileService keeps the user's profile in the local store only.
type ProfileService interface {
	Load(ctx context.Context) (models.Profile, error)
	Save(ctx context.Context, p models.Profile) error
}

type profileService struct {
	db   *sql.DB
	gate SessionGate
}

func NewProfileService(db *sql.DB, gate SessionGate) ProfileService {
	return &profileService{db: db, gate: gate}
}

func (s *profileService) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Load returns the saved profile. With nothing saved yet, name and email
// are taken from the session.
func (s *profileService) Load(ctx context.Context) (models.Profile, error) {
	raw, err := s.repo().Get(ctx, common.ProfileKey)
	if err != nil {
		return models.Profile{}, err
	}
	if raw == nil {
		var p models.Profile
		if rec := s.gate.Session(); rec != nil {
			p.Name = rec.Name()
			p.Email = rec.Email()
		}
		return p, nil
	}

	var p models.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

func (s *profileService) Save(ctx context.Context, p models.Profile) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	if p.Name == "" || p.Email == "" {
		return ErrProfileIncomplete
	}
	if err := validate.Email(p.Email); err != nil {
		return err
	}

	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.repo().Set(ctx, common.ProfileKey, b)
}
