package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/elegacy/internal/client/client"
	"github.com/dmitrijs2005/elegacy/internal/client/documents"
	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/filex"
	"github.com/dmitrijs2005/elegacy/internal/logging"
	"github.com/dmitrijs2005/elegacy/internal/netx"
)

var (
	ErrNotSignedIn    = errors.New("not signed in")
	ErrNoFileSelected = errors.New("please select a file first")
	ErrNoTypeSelected = errors.New("please select a file type")
)

// DocumentService performs the document operations of the signed-in user.
// Every successful mutation is followed by a full refresh of the list.
type DocumentService interface {
	Refresh(ctx context.Context) error
	Upload(ctx context.Context, form models.UploadForm) (string, error)
	Update(ctx context.Context, doc models.Document) error
	Delete(ctx context.Context, id string) error
	Share(ctx context.Context, doc models.Document, recipient string) error
	FileURL(doc models.Document) string
}

type documentService struct {
	client  client.Client
	gate    SessionGate
	view    *documents.ViewState
	baseURL string
	log     logging.Logger
}

func NewDocumentService(c client.Client, gate SessionGate, view *documents.ViewState, baseURL string, log logging.Logger) DocumentService {
	return &documentService{client: c, gate: gate, view: view, baseURL: baseURL, log: log}
}

func (s *documentService) email() (string, error) {
	rec := s.gate.Session()
	if rec == nil {
		return "", ErrNotSignedIn
	}
	return rec.Email(), nil
}

func (s *documentService) Refresh(ctx context.Context) error {
	email, err := s.email()
	if err != nil {
		return err
	}
	return s.view.Refresh(ctx, email)
}

// refreshAfter runs after a mutation that already succeeded, so a failed
// refresh is logged rather than reported.
func (s *documentService) refreshAfter(ctx context.Context, op string) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "refresh after mutation failed", "op", op, "error", err)
	}
}

// Upload checks the form before touching the file or the network. The title
// defaults to the file name.
func (s *documentService) Upload(ctx context.Context, form models.UploadForm) (string, error) {
	if strings.TrimSpace(form.FilePath) == "" {
		return "", ErrNoFileSelected
	}
	if strings.TrimSpace(form.Type) == "" {
		return "", ErrNoTypeSelected
	}
	email, err := s.email()
	if err != nil {
		return "", err
	}

	name, f, err := filex.ReadUpload(form.FilePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	title := strings.TrimSpace(form.Title)
	if title == "" {
		title = name
	}

	id, err := s.client.Upload(ctx, models.UploadRequest{
		Email:        email,
		Title:        title,
		PropertyName: strings.TrimSpace(form.PropertyName),
		Address:      strings.TrimSpace(form.Address),
		Type:         strings.TrimSpace(form.Type),
		FileName:     name,
		File:         f,
	})
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	s.log.Info(ctx, "document uploaded", "id", id, "file", name)
	s.refreshAfter(ctx, "upload")
	return id, nil
}

func (s *documentService) Update(ctx context.Context, doc models.Document) error {
	if err := s.client.UpdateDocument(ctx, doc); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	s.refreshAfter(ctx, "update")
	return nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteDocument(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	s.log.Info(ctx, "document deleted", "id", id)
	s.refreshAfter(ctx, "delete")
	return nil
}

func (s *documentService) Share(ctx context.Context, doc models.Document, recipient string) error {
	sender, err := s.email()
	if err != nil {
		return err
	}
	err = s.client.Invite(ctx, models.InviteRequest{
		Sender:        sender,
		Recipient:     recipient,
		DocumentID:    doc.ID,
		DocumentTitle: doc.Title,
	})
	if err != nil {
		return fmt.Errorf("share: %w", err)
	}
	return nil
}

// FileURL resolves the document's server-relative file URL.
func (s *documentService) FileURL(doc models.Document) string {
	return netx.JoinURL(s.baseURL, doc.FileURL)
}
