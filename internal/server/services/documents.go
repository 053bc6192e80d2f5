package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/common"
	"github.com/dmitrijs2005/elegacy/internal/cryptox"
	"github.com/dmitrijs2005/elegacy/internal/dbx"
	"github.com/dmitrijs2005/elegacy/internal/server/models"
	"github.com/dmitrijs2005/elegacy/internal/server/repositories/documents"
	"github.com/dmitrijs2005/elegacy/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UploadInput is one multipart upload after parsing.
type UploadInput struct {
	Email        string
	Title        string
	PropertyName string
	Address      string
	Type         string
	FileName     string
	Content      []byte
}

// DocumentService stores documents with their content sealed at rest.
//
// Owner arguments scope a call to one account; an empty owner means the
// caller is anonymous and no ownership check is made.
type DocumentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sealer      *cryptox.Sealer
	now         func() time.Time
}

func NewDocumentService(db *sql.DB, m repomanager.RepositoryManager, sealer *cryptox.Sealer) *DocumentService {
	return &DocumentService{db: db, repomanager: m, sealer: sealer, now: time.Now}
}

// Upload stores the file and returns the new document id. The title
// defaults to the file name.
func (s *DocumentService) Upload(ctx context.Context, in UploadInput) (string, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return "", ErrMissingEmail
	}
	name := safeFileName(in.FileName)
	if name == "" {
		return "", ErrMissingFile
	}

	ct, nonce, err := s.sealer.Seal(in.Content)
	if err != nil {
		return "", common.ErrorInternal
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = name
	}
	doc := &models.Document{
		ID:           uuid.NewString(),
		Email:        email,
		Title:        title,
		FileName:     name,
		PropertyName: in.PropertyName,
		Address:      in.Address,
		Type:         in.Type,
		Content:      ct,
		Nonce:        nonce,
		UploadDate:   s.now().UTC(),
	}
	if err := s.repomanager.Documents(s.db).Create(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID, nil
}

// List returns the owner's documents in upload order, without content.
func (s *DocumentService) List(ctx context.Context, email string) ([]models.Document, error) {
	return s.repomanager.Documents(s.db).ListByEmail(ctx, email)
}

// Update applies upd. A missing document, one owned by someone else, or
// an update that changes nothing all yield common.ErrorNotFound.
func (s *DocumentService) Update(ctx context.Context, owner, id string, upd models.DocumentUpdate) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Documents(tx)
		if err := checkOwner(ctx, repo, owner, id); err != nil {
			return err
		}
		ok, err := repo.Update(ctx, id, upd)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrorNotFound
		}
		return nil
	})
}

// Delete removes the document; common.ErrorNotFound when there is nothing
// to remove.
func (s *DocumentService) Delete(ctx context.Context, owner, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Documents(tx)
		if err := checkOwner(ctx, repo, owner, id); err != nil {
			return err
		}
		ok, err := repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrorNotFound
		}
		return nil
	})
}

// File returns the decrypted content of document id, which must have been
// uploaded as fileName.
func (s *DocumentService) File(ctx context.Context, owner, id, fileName string) (*models.Document, error) {
	doc, err := s.repomanager.Documents(s.db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.FileName != fileName || (owner != "" && doc.Email != owner) {
		return nil, common.ErrorNotFound
	}
	plain, err := s.sealer.Open(doc.Content, doc.Nonce)
	if err != nil {
		return nil, common.ErrorInternal
	}
	doc.Content = plain
	doc.Nonce = nil
	return doc, nil
}

func checkOwner(ctx context.Context, repo documents.Repository, owner, id string) error {
	if owner == "" {
		return nil
	}
	doc, err := repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if doc.Email != owner {
		return common.ErrorNotFound
	}
	return nil
}

// safeFileName keeps only the base name, so an upload can never name a
// path.
func safeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	switch name {
	case ".", "/", "..":
		return ""
	}
	return name
}
