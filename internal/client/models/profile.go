package models

// Profile is cached locally only; the backend has no profile endpoint.
type Profile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	ProfileImage string `json:"profileImage,omitempty"`
}
