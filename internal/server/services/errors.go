package services

import "errors"

// Validation failures. The HTTP layer maps each to a 400 with its own
// wording.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrMissingEmail       = errors.New("missing user email")
	ErrMissingFile        = errors.New("missing file")
	ErrInviteFields       = errors.New("recipient email and document id are required")
)
