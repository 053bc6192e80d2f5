package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/elegacy/internal/client/client"
	"github.com/dmitrijs2005/elegacy/internal/client/documents"
	cmodels "github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestClientRoundTrip drives the real CLI HTTP client against the router,
// so both sides agree on paths, field names and status codes.
func TestClientRoundTrip(t *testing.T) {
	s := newTestServer(t, true)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	ctx := context.Background()

	var token string
	api := client.NewHTTPClient(srv.URL, client.WithTokenSource(func() string { return token }))

	require.NoError(t, api.Ping(ctx))
	require.NoError(t, api.Signup(ctx, "Owner", "owner@example.com", "secret1"))

	err := api.Signup(ctx, "Owner", "owner@example.com", "secret1")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "User already exists", apiErr.Message)

	raw, err := api.Login(ctx, "owner@example.com", "secret1")
	require.NoError(t, err)
	rec, err := cmodels.NewSessionRecord(raw)
	require.NoError(t, err)
	assert.Equal(t, "Owner", rec.Name())
	assert.Equal(t, "owner@example.com", rec.Email())
	token = rec.Token()

	id, err := api.Upload(ctx, cmodels.UploadRequest{
		Email: "owner@example.com", Title: "Deed", PropertyName: "Villa", Address: "Road 1", Type: "Deed",
		FileName: "deed.txt", File: strings.NewReader("deed body"),
	})
	require.NoError(t, err)

	docs, err := api.ListDocuments(ctx, "owner@example.com")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)
	assert.Equal(t, "Villa", docs[0].PropertyName)

	resp, err := http.Get(srv.URL + docs[0].FileURL)
	require.NoError(t, err)
	// anonymous file fetch is rejected while auth is required
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+docs[0].FileURL, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "deed body", string(body))

	doc := docs[0]
	doc.Title = "Deed (signed)"
	require.NoError(t, api.UpdateDocument(ctx, doc))

	require.NoError(t, api.Invite(ctx, cmodels.InviteRequest{
		Sender: "owner@example.com", Recipient: "heir@example.com", DocumentID: id, DocumentTitle: doc.Title,
	}))

	require.NoError(t, api.DeleteDocument(ctx, id))
	err = api.DeleteDocument(ctx, id)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	docs, err = api.ListDocuments(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

// The home screen reads the newest uploads off the tail of the list.
func TestClientRecentUploads(t *testing.T) {
	s := newTestServer(t, false)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	ctx := context.Background()

	api := client.NewHTTPClient(srv.URL)
	for _, title := range []string{"A", "B", "C", "D"} {
		_, err := api.Upload(ctx, cmodels.UploadRequest{
			Email: "owner@example.com", Title: title, Type: "Deed",
			FileName: title + ".txt", File: strings.NewReader(title),
		})
		require.NoError(t, err)
	}

	view := documents.NewViewState(api, nil)
	require.NoError(t, view.Refresh(ctx, "owner@example.com"))

	recent := view.Recent(3)
	titles := make([]string, len(recent))
	for i, d := range recent {
		titles[i] = d.Title
	}
	assert.Equal(t, []string{"D", "C", "B"}, titles)
}
