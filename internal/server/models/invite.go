package models

import "time"

const InviteStatusPending = "pending"

// Invite records that Sender asked to share a document with Recipient.
type Invite struct {
	ID            string
	Sender        string
	Recipient     string
	DocumentID    string
	DocumentTitle string
	Status        string
	CreatedAt     time.Time
}
