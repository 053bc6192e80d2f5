// Package models defines the client-side data shapes exchanged with the vault
// API and kept in local state.
package models

import (
	"io"
	"strings"
)

// Document is one uploaded vault document as returned by the API.
type Document struct {
	ID           string `json:"_id"`
	Email        string `json:"email"`
	Title        string `json:"title"`
	FileName     string `json:"filename"`
	PropertyName string `json:"property_name"`
	Address      string `json:"address"`
	Type         string `json:"type"`
	FileURL      string `json:"fileUrl,omitempty"`
	UploadDate   string `json:"upload_date,omitempty"`
}

// SortKey names the document field the list is ordered by.
type SortKey string

const (
	SortByPropertyName SortKey = "property_name"
	SortByType         SortKey = "type"
)

// Next flips between the two sort keys.
func (k SortKey) Next() SortKey {
	if k == SortByType {
		return SortByPropertyName
	}
	return SortByType
}

func (k SortKey) Label() string {
	if k == SortByType {
		return "Type"
	}
	return "Name"
}

// SortValue returns the document's value for key.
func (d Document) SortValue(key SortKey) string {
	if key == SortByType {
		return d.Type
	}
	return d.PropertyName
}

// Matches reports whether the case-folded query occurs in the title, the
// property name or the type. An empty query matches everything.
func (d Document) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(d.Title), q) ||
		strings.Contains(strings.ToLower(d.PropertyName), q) ||
		strings.Contains(strings.ToLower(d.Type), q)
}

// DocumentPatch carries the editable metadata. Nil fields are left alone.
type DocumentPatch struct {
	Title        *string
	PropertyName *string
	Address      *string
	Type         *string
}

func (p DocumentPatch) Empty() bool {
	return p.Title == nil && p.PropertyName == nil && p.Address == nil && p.Type == nil
}

// Apply returns a copy of d with the patch applied.
func (p DocumentPatch) Apply(d Document) Document {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.PropertyName != nil {
		d.PropertyName = *p.PropertyName
	}
	if p.Address != nil {
		d.Address = *p.Address
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	return d
}

// UploadForm is what the user fills in before an upload. FilePath empty
// means no file has been picked yet.
type UploadForm struct {
	FilePath     string
	Title        string
	PropertyName string
	Address      string
	Type         string
}

// UploadRequest is a validated upload ready to be sent.
type UploadRequest struct {
	Email        string
	Title        string
	PropertyName string
	Address      string
	Type         string
	FileName     string
	File         io.Reader
}

type InviteRequest struct {
	Sender        string `json:"sender"`
	Recipient     string `json:"recipient"`
	DocumentID    string `json:"documentId"`
	DocumentTitle string `json:"documentTitle"`
}

type SignupForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}
