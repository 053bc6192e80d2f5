// Package notifications is the in-app notification feed.
package notifications

import (
	"slices"
	"sync"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/google/uuid"
)

type Feed struct {
	mu    sync.Mutex
	items []models.Notification
}

func NewFeed(items []models.Notification) *Feed {
	return &Feed{items: slices.Clone(items)}
}

// Samples is the demo feed shown until notifications come from the API.
func Samples() []models.Notification {
	return []models.Notification{
		{ID: uuid.NewString(), Type: models.NotificationShareAccept, Message: "John accepted your share request for Property Deed.pdf", Time: "2 hours ago"},
		{ID: uuid.NewString(), Type: models.NotificationDocView, Message: "Jane viewed Investment Plan.docx (3 times)", Time: "4 hours ago"},
		{ID: uuid.NewString(), Type: models.NotificationInviteRequest, Message: "Alex invited you to view Hill Top Villa.docx", Time: "Yesterday"},
		{ID: uuid.NewString(), Type: models.NotificationDocView, Message: "Sam viewed Will_Jan2025.pdf (1 time)", Time: "2 days ago", Read: true},
	}
}

func (f *Feed) Items() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.items)
}

func (f *Feed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, it := range f.items {
		if !it.Read {
			n++
		}
	}
	return n
}

func (f *Feed) MarkAllRead() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		f.items[i].Read = true
	}
}

// Push adds a notification at the top of the feed.
func (f *Feed) Push(typ models.NotificationType, message, when string) models.Notification {
	n := models.Notification{ID: uuid.NewString(), Type: typ, Message: message, Time: when}
	f.mu.Lock()
	f.items = append([]models.Notification{n}, f.items...)
	f.mu.Unlock()
	return n
}
