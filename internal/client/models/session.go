package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySession = errors.New("empty session payload")
	ErrNoToken      = errors.New("session has no token")
)

// SessionRecord is the login response kept verbatim. Its shape belongs to the
// backend, so fields are read leniently and never validated.
type SessionRecord struct {
	raw  json.RawMessage
	view sessionView
}

type sessionView struct {
	Token     string
	Email     string
	Name      string
	UserEmail string
	UserName  string
}

// NewSessionRecord wraps raw. raw must be a JSON object; unknown, missing or
// oddly typed fields are fine and read as empty.
func NewSessionRecord(raw []byte) (*SessionRecord, error) {
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptySession
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	v := sessionView{
		Token: stringField(top, "token"),
		Email: stringField(top, "email"),
		Name:  stringField(top, "name"),
	}
	var user map[string]json.RawMessage
	if json.Unmarshal(top["user"], &user) == nil {
		v.UserEmail = stringField(user, "email")
		v.UserName = stringField(user, "name")
	}

	cp := make(json.RawMessage, len(raw))
	copy(cp, raw)
	return &SessionRecord{raw: cp, view: v}, nil
}

// stringField returns m[key] when it holds a JSON string, otherwise "".
func stringField(m map[string]json.RawMessage, key string) string {
	var s string
	if json.Unmarshal(m[key], &s) != nil {
		return ""
	}
	return s
}

// Raw returns the payload exactly as it was received.
func (r *SessionRecord) Raw() json.RawMessage {
	return r.raw
}

// Email prefers user.email and falls back to a top-level email.
func (r *SessionRecord) Email() string {
	if r.view.UserEmail != "" {
		return r.view.UserEmail
	}
	return r.view.Email
}

func (r *SessionRecord) Name() string {
	if r.view.UserName != "" {
		return r.view.UserName
	}
	return r.view.Name
}

func (r *SessionRecord) Token() string {
	return r.view.Token
}

// Claims decodes the token's claims without verifying the signature. The
// result is for display only.
func (r *SessionRecord) Claims() (jwt.MapClaims, error) {
	if r.view.Token == "" {
		return nil, ErrNoToken
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(r.view.Token, claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}
