package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/common"
	"github.com/dmitrijs2005/elegacy/internal/logging"
	"github.com/dmitrijs2005/elegacy/internal/netx"
	"github.com/google/uuid"
)

const maxErrorBody = 64 << 10

// HTTPClient implements Client against the REST API rooted at baseURL.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	token   func() string
	log     logging.Logger
}

type Option func(*HTTPClient)

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTokenSource supplies the bearer token for each request; an empty
// string sends no Authorization header.
func WithTokenSource(fn func() string) Option {
	return func(c *HTTPClient) { c.token = fn }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		token:   func() string { return "" },
		log:     logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL is the API root, also used to resolve relative file URLs.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var out struct {
		Message string `json:"message"`
	}
	return c.doJSON(ctx, http.MethodGet, "/", nil, &out)
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	body := map[string]string{"email": email, "password": password}

	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	if !isJSONObject(out) {
		return nil, fmt.Errorf("%w: login body is not an object", ErrMalformedResponse)
	}
	return out, nil
}

func (c *HTTPClient) Signup(ctx context.Context, name, email, password string) error {
	body := map[string]string{"name": name, "email": email, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/api/auth/signup", body, nil)
}

func (c *HTTPClient) ListDocuments(ctx context.Context, email string) ([]models.Document, error) {
	var out struct {
		Documents []models.Document `json:"documents"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/documents/"+netx.PathEscape(email), nil, &out); err != nil {
		return nil, err
	}
	if out.Documents == nil {
		out.Documents = []models.Document{}
	}
	return out.Documents, nil
}

func (c *HTTPClient) Upload(ctx context.Context, r models.UploadRequest) (string, error) {
	fields := []netx.FormField{
		{Name: "email", Value: r.Email},
		{Name: "title", Value: r.Title},
		{Name: "propertyName", Value: r.PropertyName},
		{Name: "address", Value: r.Address},
		{Name: "type", Value: r.Type},
	}
	body, contentType, err := netx.MultipartBody(fields, "document", r.FileName, r.File)
	if err != nil {
		return "", err
	}

	var out struct {
		DocumentID string `json:"document_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/upload", body, contentType, &out); err != nil {
		return "", err
	}
	return out.DocumentID, nil
}

func (c *HTTPClient) UpdateDocument(ctx context.Context, doc models.Document) error {
	return c.doJSON(ctx, http.MethodPut, "/api/documents/"+netx.PathEscape(doc.ID), doc, nil)
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/documents/"+netx.PathEscape(id), nil, nil)
}

func (c *HTTPClient) Invite(ctx context.Context, r models.InviteRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/api/invite", r, nil)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

// do sends one request and decodes a 2xx body into out (when out is non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.token(); tok != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+tok)
	}

	log := c.log.With("request_id", reqID, "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "response", "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
	} else {
		apiErr.Message = fallbackMessage(resp.StatusCode)
	}
	return apiErr
}

func isJSONObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 1 && b[0] == '{'
}
