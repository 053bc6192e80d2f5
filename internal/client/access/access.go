// Package access manages who else can see the owner's documents and in
// which role. The list lives in memory only.
package access

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/google/uuid"
)

var (
	ErrUnknownUser        = errors.New("no such user")
	ErrNoSelection        = errors.New("no user selected")
	ErrRemoveNotRequested = errors.New("removal was not requested")
)

type Manager struct {
	mu            sync.Mutex
	users         []models.AccessUser
	selected      string
	removePending bool
}

func NewManager(users []models.AccessUser) *Manager {
	return &Manager{users: slices.Clone(users)}
}

// SampleUsers is the demo list shown until sharing is backed by the API.
func SampleUsers() []models.AccessUser {
	at := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02 15:04", s)
		return t
	}
	return []models.AccessUser{
		{ID: uuid.NewString(), Name: "John Doe", Email: "john@example.com",
			Documents: []string{"Property Deed.pdf", "Will_2025.pdf"}, Role: models.RoleViewer, LastAccess: at("2025-07-23 14:35")},
		{ID: uuid.NewString(), Name: "Jane Smith", Email: "jane@example.com",
			Documents: []string{"InvestmentDetails.xlsx"}, Role: models.RoleEditor, LastAccess: at("2025-07-23 10:05")},
		{ID: uuid.NewString(), Name: "Sam Wilson", Email: "sam@example.com",
			Documents: []string{"Property Deed.pdf"}, Role: models.RoleCommenter, LastAccess: at("2025-07-22 18:25")},
	}
}

func (m *Manager) Users() []models.AccessUser {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.users)
}

func (m *Manager) indexOf(id string) int {
	return slices.IndexFunc(m.users, func(u models.AccessUser) bool { return u.ID == id })
}

// Open selects the user with id for the action menu.
func (m *Manager) Open(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(id) < 0 {
		return ErrUnknownUser
	}
	m.selected = id
	m.removePending = false
	return nil
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = ""
	m.removePending = false
}

func (m *Manager) Selected() (models.AccessUser, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(m.selected)
	if m.selected == "" || i < 0 {
		return models.AccessUser{}, false
	}
	return m.users[i], true
}

// ChangeRole sets the selected user's role and closes the menu.
func (m *Manager) ChangeRole(role models.Role) (models.AccessUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(m.selected)
	if m.selected == "" || i < 0 {
		return models.AccessUser{}, ErrNoSelection
	}
	m.users[i].Role = role
	m.selected = ""
	m.removePending = false
	return m.users[i], nil
}

// LastAccess reports the selected user's last access and closes the menu.
func (m *Manager) LastAccess() (models.AccessUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(m.selected)
	if m.selected == "" || i < 0 {
		return models.AccessUser{}, ErrNoSelection
	}
	m.selected = ""
	m.removePending = false
	return m.users[i], nil
}

func (m *Manager) RequestRemove() (models.AccessUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(m.selected)
	if m.selected == "" || i < 0 {
		return models.AccessUser{}, ErrNoSelection
	}
	m.removePending = true
	return m.users[i], nil
}

func (m *Manager) CancelRemove() {
	m.mu.Lock()
	m.removePending = false
	m.mu.Unlock()
}

// ConfirmRemove revokes access for the selected user. Requires RequestRemove
// first.
func (m *Manager) ConfirmRemove() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(m.selected)
	if m.selected == "" || i < 0 {
		return ErrNoSelection
	}
	if !m.removePending {
		return ErrRemoveNotRequested
	}
	m.users = slices.Delete(m.users, i, i+1)
	m.selected = ""
	m.removePending = false
	return nil
}
