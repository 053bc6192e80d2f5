// Package models defines the rows persisted by the development backend.
package models

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
