package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return NewHTTPClient(ts.URL, opts...)
}

func TestHTTPClient_Login_ReturnsBodyVerbatim(t *testing.T) {
	var gotBody map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = io.WriteString(w, `{"token":"abc"}`)
	})

	raw, err := c.Login(context.Background(), "user@example.com", "secret1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc"}`, string(raw))
	assert.Equal(t, map[string]string{"email": "user@example.com", "password": "secret1"}, gotBody)
}

func TestHTTPClient_Login_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantIs  error
		wantMsg string
	}{
		{name: "server message", status: 401, body: `{"message":"Invalid credentials"}`, wantIs: ErrUnauthorized, wantMsg: "Invalid credentials"},
		{name: "no message", status: 401, body: `{}`, wantIs: ErrUnauthorized, wantMsg: "request failed: 401 Unauthorized"},
		{name: "html body", status: 500, body: `<html>oops</html>`, wantMsg: "request failed: 500 Internal Server Error"},
		{name: "forbidden", status: 403, body: `{"message":"nope"}`, wantIs: ErrUnauthorized, wantMsg: "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			_, err := c.Login(context.Background(), "a@b.c", "secret1")
			require.Error(t, err)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Error())
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			} else {
				assert.False(t, errors.Is(err, ErrUnauthorized))
			}
		})
	}
}

func TestHTTPClient_Login_MalformedSuccess(t *testing.T) {
	for _, body := range []string{`not json`, `"abc"`, `[]`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, body)
		})
		_, err := c.Login(context.Background(), "a@b.c", "secret1")
		assert.ErrorIs(t, err, ErrMalformedResponse, body)
	}
}

func TestHTTPClient_Unavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	c := NewHTTPClient(url)
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(50*time.Millisecond))
	defer close(release)

	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_Headers(t *testing.T) {
	var auth, reqID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		reqID = r.Header.Get("X-Request-ID")
		_, _ = io.WriteString(w, `{"message":"eLegacy Backend Running"}`)
	}, WithTokenSource(func() string { return "tok" }))

	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "Bearer tok", auth)
	_, err := uuid.Parse(reqID)
	assert.NoError(t, err)
}

func TestHTTPClient_NoTokenNoAuthorization(t *testing.T) {
	var present bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, present = r.Header["Authorization"]
		_, _ = io.WriteString(w, `{}`)
	})

	require.NoError(t, c.Ping(context.Background()))
	assert.False(t, present)
}

func TestHTTPClient_ListDocuments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents/user@example.com", r.URL.Path)
		_, _ = io.WriteString(w, `{"documents":[{"_id":"d1","title":"Deed","property_name":"Villa","type":"Deed","fileUrl":"/uploads/d1/deed.pdf"}]}`)
	})

	docs, err := c.ListDocuments(context.Background(), "user@example.com")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "d1", docs[0].ID)
	assert.Equal(t, "Villa", docs[0].PropertyName)
	assert.Equal(t, "/uploads/d1/deed.pdf", docs[0].FileURL)
}

func TestHTTPClient_ListDocuments_EmptyIsNonNil(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	docs, err := c.ListDocuments(context.Background(), "a@b.c")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestHTTPClient_Upload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "a@b.c", r.FormValue("email"))
		assert.Equal(t, "Deed", r.FormValue("title"))
		assert.Equal(t, "Villa", r.FormValue("propertyName"))
		assert.Equal(t, "1 Road", r.FormValue("address"))
		assert.Equal(t, "Legal", r.FormValue("type"))

		f, fh, err := r.FormFile("document")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "deed.pdf", fh.Filename)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "%PDF", string(data))

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"message":"ok","document_id":"d9"}`)
	})

	id, err := c.Upload(context.Background(), models.UploadRequest{
		Email: "a@b.c", Title: "Deed", PropertyName: "Villa", Address: "1 Road", Type: "Legal",
		FileName: "deed.pdf", File: strings.NewReader("%PDF"),
	})
	require.NoError(t, err)
	assert.Equal(t, "d9", id)
}

func TestHTTPClient_UpdateDocument(t *testing.T) {
	var got models.Document
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/documents/d1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"message":"Document updated successfully"}`)
	})

	doc := models.Document{ID: "d1", Title: "New", PropertyName: "Villa", Type: "Deed"}
	require.NoError(t, c.UpdateDocument(context.Background(), doc))
	assert.Equal(t, doc, got)
}

func TestHTTPClient_DeleteDocument_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Document not found"}`)
	})

	err := c.DeleteDocument(context.Background(), "d1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Document not found")
}

func TestHTTPClient_Invite(t *testing.T) {
	var got models.InviteRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/invite", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `{"message":"Invitation sent"}`)
	})

	req := models.InviteRequest{Sender: "a@b.c", Recipient: "c@d.e", DocumentID: "d1", DocumentTitle: "Deed"}
	require.NoError(t, c.Invite(context.Background(), req))
	assert.Equal(t, req, got)
}

func TestHTTPClient_Signup_Conflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"message":"User already exists"}`)
	})

	err := c.Signup(context.Background(), "Ann", "a@b.c", "secret1")
	assert.EqualError(t, err, "User already exists")
}

func TestHTTPClient_BaseURLTrimmed(t *testing.T) {
	assert.Equal(t, "http://localhost:5000", NewHTTPClient("http://localhost:5000/").BaseURL())
}
