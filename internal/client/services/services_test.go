package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/elegacy/internal/client/client"
	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/client/session"
	"github.com/dmitrijs2005/elegacy/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "elegacy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func signedInGate(t *testing.T, db *sql.DB, raw string) *session.Gate {
	t.Helper()
	g := session.NewGate(session.NewStore(db), 0)
	require.NoError(t, g.Start(context.Background()))
	if raw != "" {
		rec, err := models.NewSessionRecord([]byte(raw))
		require.NoError(t, err)
		require.NoError(t, g.SignIn(context.Background(), rec))
	}
	return g
}

// ---- fake client ----

type fakeClient struct {
	calls atomic.Int32

	LoginRet json.RawMessage
	LoginErr error

	SignupErr  error
	LastSignup [3]string

	Docs    []models.Document
	ListErr error

	UploadID   string
	UploadErr  error
	LastUpload models.UploadRequest
	UploadBody string

	UpdateErr  error
	LastUpdate models.Document

	DeleteErr error
	Deleted   []string

	InviteErr  error
	LastInvite models.InviteRequest

	PingErr error
}

func (f *fakeClient) Ping(context.Context) error {
	f.calls.Add(1)
	return f.PingErr
}

func (f *fakeClient) Login(_ context.Context, _, _ string) (json.RawMessage, error) {
	f.calls.Add(1)
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Signup(_ context.Context, name, email, password string) error {
	f.calls.Add(1)
	f.LastSignup = [3]string{name, email, password}
	return f.SignupErr
}

func (f *fakeClient) ListDocuments(context.Context, string) ([]models.Document, error) {
	f.calls.Add(1)
	return f.Docs, f.ListErr
}

func (f *fakeClient) Upload(_ context.Context, r models.UploadRequest) (string, error) {
	f.calls.Add(1)
	f.LastUpload = r
	if r.File != nil {
		b, _ := io.ReadAll(r.File)
		f.UploadBody = string(b)
	}
	if f.UploadErr != nil {
		return "", f.UploadErr
	}
	f.Docs = append(f.Docs, models.Document{ID: f.UploadID, Title: r.Title, Type: r.Type})
	return f.UploadID, nil
}

func (f *fakeClient) UpdateDocument(_ context.Context, doc models.Document) error {
	f.calls.Add(1)
	f.LastUpdate = doc
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	for i := range f.Docs {
		if f.Docs[i].ID == doc.ID {
			f.Docs[i] = doc
		}
	}
	return nil
}

func (f *fakeClient) DeleteDocument(_ context.Context, id string) error {
	f.calls.Add(1)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Deleted = append(f.Deleted, id)
	kept := f.Docs[:0]
	for _, d := range f.Docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	f.Docs = kept
	return nil
}

func (f *fakeClient) Invite(_ context.Context, r models.InviteRequest) error {
	f.calls.Add(1)
	f.LastInvite = r
	return f.InviteErr
}

var errBoom = errors.New("boom")

func nopLog() logging.Logger { return logging.Nop() }
