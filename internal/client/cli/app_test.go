package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/client/client"
	"github.com/dmitrijs2005/elegacy/internal/client/config"
	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerSession = `{"token":"tok-1","user":{"id":"u1","name":"Owner","email":"owner@example.com"}}`

// apiStub is a small in-memory stand-in for the vault API.
type apiStub struct {
	mu sync.Mutex

	docs         []models.Document
	invites      []models.InviteRequest
	uploads      []map[string]string
	logins       int
	signups      int
	deleteStatus int
	loginBody    string
	authHeaders  []string
}

func newAPIStub(t *testing.T) (*apiStub, *httptest.Server) {
	t.Helper()
	s := &apiStub{
		loginBody: ownerSession,
		docs: []models.Document{
			{ID: "d1", Email: "owner@example.com", Title: "Deed", PropertyName: "Villa", Address: "Road 1", Type: "Deed", FileURL: "/uploads/d1/deed.pdf"},
			{ID: "d2", Email: "owner@example.com", Title: "Car title", PropertyName: "Audi", Address: "Garage", Type: "Vehicle"},
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.mu.Lock()
		s.logins++
		s.mu.Unlock()
		if body["password"] != "secret1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, s.loginBody)
	})
	mux.HandleFunc("POST /api/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.signups++
		s.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
	})
	mux.HandleFunc("GET /api/documents/{email}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.authHeaders = append(s.authHeaders, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"documents": s.docs})
	})
	mux.HandleFunc("PUT /api/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		var doc models.Document
		_ = json.NewDecoder(r.Body).Decode(&doc)
		s.mu.Lock()
		defer s.mu.Unlock()
		for i := range s.docs {
			if s.docs[i].ID == r.PathValue("id") {
				s.docs[i] = doc
				writeJSON(w, http.StatusOK, map[string]string{"message": "Document updated successfully"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Document not found or no changes made"})
	})
	mux.HandleFunc("DELETE /api/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.deleteStatus != 0 {
			writeJSON(w, s.deleteStatus, map[string]string{"message": "boom"})
			return
		}
		for i := range s.docs {
			if s.docs[i].ID == r.PathValue("id") {
				s.docs = append(s.docs[:i], s.docs[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "Document deleted successfully"})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Document not found"})
	})
	mux.HandleFunc("POST /api/invite", func(w http.ResponseWriter, r *http.Request) {
		var req models.InviteRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		s.mu.Lock()
		s.invites = append(s.invites, req)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"message": "Invitation sent"})
	})
	mux.HandleFunc("POST /api/upload", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing file"})
			return
		}
		_, hdr, err := r.FormFile("document")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Missing file"})
			return
		}
		got := map[string]string{"filename": hdr.Filename}
		for _, k := range []string{"email", "title", "propertyName", "address", "type"} {
			got[k] = r.FormValue(k)
		}
		s.mu.Lock()
		s.uploads = append(s.uploads, got)
		s.docs = append(s.docs, models.Document{ID: "d3", Title: got["title"], Type: got["type"]})
		s.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Document uploaded", "document_id": "d3"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return s, srv
}

func (s *apiStub) docIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.docs))
	for _, d := range s.docs {
		ids = append(ids, d.ID)
	}
	return ids
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// newTestApp builds an App over a temp database and the stub API. input is
// what the user types.
func newTestApp(t *testing.T, baseURL, input string) (*App, *bytes.Buffer) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "elegacy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{ServerBaseURL: baseURL, RequestTimeout: 5 * time.Second}
	out := &bytes.Buffer{}
	a := newApp(cfg, logging.Nop(), db, strings.NewReader(input), out)
	return a, out
}

// signIn starts the gate and stores ownerSession, as after a login.
func signIn(t *testing.T, a *App) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, a.gate.Start(ctx))
	rec, err := models.NewSessionRecord([]byte(ownerSession))
	require.NoError(t, err)
	require.NoError(t, a.gate.SignIn(ctx, rec))
}

func stubPasswords(t *testing.T, pw ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(string, io.Writer) ([]byte, error) {
		p := pw[i%len(pw)]
		i++
		return []byte(p), nil
	}
	t.Cleanup(func() { getPassword = orig })
}

func TestRun_WithoutSessionOnlyGuestCommands(t *testing.T) {
	stub, srv := newAPIStub(t)
	a, out := newTestApp(t, srv.URL, "help\nlist\nexit\n")

	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "Loading...")
	assert.Contains(t, out.String(), "You are signed out.")
	assert.Contains(t, out.String(), helpGuest)
	assert.Contains(t, out.String(), "Please log in first (use 'login' or 'register').")
	assert.True(t, strings.HasSuffix(out.String(), "Bye!\n"))
	assert.Empty(t, stub.authHeaders)
}

func TestRun_LoginPromptSharesInputWithREPL(t *testing.T) {
	stub, srv := newAPIStub(t)
	stubPasswords(t, "secret1")
	a, out := newTestApp(t, srv.URL, "login\nowner@example.com\nlist\nexit\n")

	require.NoError(t, a.Run(context.Background()))

	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome, Owner!")
	assert.Contains(t, out.String(), " 1. Car title")
	assert.NotContains(t, out.String(), "Unknown command: owner@example.com")
	require.NotEmpty(t, stub.authHeaders)
	assert.Equal(t, "Bearer tok-1", stub.authHeaders[0])
}

func TestRun_StoredSessionSkipsLogin(t *testing.T) {
	_, srv := newAPIStub(t)
	a, out := newTestApp(t, srv.URL, "exit\n")

	rec, err := models.NewSessionRecord([]byte(ownerSession))
	require.NoError(t, err)
	require.NoError(t, a.gate.SignIn(context.Background(), rec))

	// A fresh app over the same database, as after a restart.
	b := newApp(a.config, logging.Nop(), a.db, strings.NewReader("exit\n"), out)
	require.NoError(t, b.Run(context.Background()))

	assert.True(t, b.isLoggedIn())
	assert.Contains(t, out.String(), "Welcome, Owner!")
	assert.Equal(t, 2, b.view.Len())
}

func TestRun_CancelledDuringSplash(t *testing.T) {
	_, srv := newAPIStub(t)
	a, _ := newTestApp(t, srv.URL, "")

	cfg := *a.config
	cfg.SplashDelay = time.Hour
	b := newApp(&cfg, logging.Nop(), a.db, strings.NewReader(""), io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, b.Run(ctx), context.Canceled)
	assert.False(t, b.isLoggedIn())
}

func TestAlertMessage(t *testing.T) {
	assert.Equal(t, "Invalid credentials",
		alertMessage(&client.APIError{Status: 401, Message: "Invalid credentials"}))
	assert.Equal(t, "Unable to connect to the server.",
		alertMessage(fmt.Errorf("login: %w", client.ErrUnavailable)))
	assert.Equal(t, "Please select a file first", alertMessage(errors.New("please select a file first")))
	assert.Equal(t, "", capitalize(""))
}
