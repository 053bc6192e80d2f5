package client

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	// Login returns the response body untouched; it becomes the session
	// record.
	Login(ctx context.Context, email, password string) (json.RawMessage, error)
	Signup(ctx context.Context, name, email, password string) error
	ListDocuments(ctx context.Context, email string) ([]models.Document, error)
	// Upload returns the new document id, or "" if the server did not send one.
	Upload(ctx context.Context, req models.UploadRequest) (string, error)
	UpdateDocument(ctx context.Context, doc models.Document) error
	DeleteDocument(ctx context.Context, id string) error
	Invite(ctx context.Context, req models.InviteRequest) error
}
