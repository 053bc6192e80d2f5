// Package common contains constants and small helpers shared by the eLegacy
// client and the development backend.
package common

// Fixed keys of the local key/value store. Values are stored without any
// schema versioning.
const (
	SessionKey        = "user"
	SessionSavedAtKey = "user_saved_at"
	ProfileKey        = "userProfile"
)

// AuthorizationHeader carries the session token on outbound API calls.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
	RequestIDHeader     = "X-Request-ID"
)

// MinPasswordLength is the shortest password accepted by login and signup.
const MinPasswordLength = 6
