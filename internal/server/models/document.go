package models

import "time"

// Document is an uploaded file and its metadata. Content is sealed at rest;
// Nonce belongs to that ciphertext.
type Document struct {
	ID           string
	Email        string
	Title        string
	FileName     string
	PropertyName string
	Address      string
	Type         string
	Content      []byte
	Nonce        []byte
	UploadDate   time.Time
}

// DocumentUpdate holds the editable metadata. Nil fields are left alone.
type DocumentUpdate struct {
	Title        *string
	PropertyName *string
	Address      *string
	Type         *string
}

func (u DocumentUpdate) Empty() bool {
	return u.Title == nil && u.PropertyName == nil && u.Address == nil && u.Type == nil
}
