package models

import (
	"errors"
	"strings"
	"time"
)

var ErrUnknownRole = errors.New("role must be viewer, editor or commenter")

type Role string

const (
	RoleViewer    Role = "Viewer"
	RoleEditor    Role = "Editor"
	RoleCommenter Role = "Commenter"
)

var Roles = []Role{RoleViewer, RoleEditor, RoleCommenter}

// ParseRole accepts any letter case.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, nil
		}
	}
	return "", ErrUnknownRole
}

// AccessUser is someone the owner has granted document access to.
type AccessUser struct {
	ID         string
	Name       string
	Email      string
	Documents  []string
	Role       Role
	LastAccess time.Time
}
