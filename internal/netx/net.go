// Package netx holds small HTTP helpers shared by the API client and the
// development backend.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"strings"
)

// FormField is one text part of a multipart form.
type FormField struct {
	Name  string
	Value string
}

// MultipartBody encodes fields followed by a single file part. The returned
// content type carries the boundary.
func MultipartBody(fields []FormField, fileField, fileName string, file io.Reader) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	for _, f := range fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}

	if file != nil {
		part, err := mw.CreateFormFile(fileField, fileName)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, "", fmt.Errorf("copy file part: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return body, mw.FormDataContentType(), nil
}

// JoinURL appends a server-relative path such as "/uploads/x.pdf" to base
// with exactly one slash between them. Absolute URLs in p are returned as is.
func JoinURL(base, p string) string {
	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		return p
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

// PathEscape escapes a single path segment, e.g. an e-mail address.
func PathEscape(segment string) string {
	return url.PathEscape(segment)
}
