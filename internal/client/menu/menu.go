// Package menu is the action sheet opened on one document of the list:
// view, edit metadata, share, and delete behind a confirmation step.
package menu

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/validate"
)

var (
	ErrNoSelection        = errors.New("no document selected")
	ErrDeleteNotRequested = errors.New("delete was not requested")
	ErrNothingToChange    = errors.New("nothing to change")
)

// Actions performs document mutations. Implementations refresh the list
// after every successful mutation.
type Actions interface {
	FileURL(doc models.Document) string
	Update(ctx context.Context, doc models.Document) error
	Delete(ctx context.Context, id string) error
	Share(ctx context.Context, doc models.Document, recipient string) error
}

type Menu struct {
	actions Actions

	mu            sync.Mutex
	selected      *models.Document
	deletePending bool
}

func New(actions Actions) *Menu {
	return &Menu{actions: actions}
}

// Open binds doc, replacing any previous selection and any pending delete.
func (m *Menu) Open(doc models.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := doc
	m.selected = &d
	m.deletePending = false
}

func (m *Menu) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selected = nil
	m.deletePending = false
}

func (m *Menu) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selected != nil
}

func (m *Menu) Selected() (models.Document, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == nil {
		return models.Document{}, false
	}
	return *m.selected, true
}

func (m *Menu) DeletePending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletePending
}

// View returns the absolute URL of the bound document and closes the menu.
func (m *Menu) View() (string, error) {
	doc, ok := m.Selected()
	if !ok {
		return "", ErrNoSelection
	}
	m.Close()
	return m.actions.FileURL(doc), nil
}

// EditMetadata sends the bound document with patch applied. On success the
// menu stays open on the updated document.
func (m *Menu) EditMetadata(ctx context.Context, patch models.DocumentPatch) error {
	doc, ok := m.Selected()
	if !ok {
		return ErrNoSelection
	}
	if patch.Empty() {
		return ErrNothingToChange
	}

	updated := patch.Apply(doc)
	if err := m.actions.Update(ctx, updated); err != nil {
		return err
	}

	m.mu.Lock()
	if m.selected != nil && m.selected.ID == updated.ID {
		m.selected = &updated
	}
	m.mu.Unlock()
	return nil
}

func (m *Menu) Share(ctx context.Context, recipient string) error {
	doc, ok := m.Selected()
	if !ok {
		return ErrNoSelection
	}
	recipient = strings.TrimSpace(recipient)
	if err := validate.Email(recipient); err != nil {
		return err
	}
	return m.actions.Share(ctx, doc, recipient)
}

// RequestDelete arms the delete and returns the document it applies to, so
// the caller can ask for confirmation.
func (m *Menu) RequestDelete() (models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == nil {
		return models.Document{}, ErrNoSelection
	}
	m.deletePending = true
	return *m.selected, nil
}

func (m *Menu) CancelDelete() {
	m.mu.Lock()
	m.deletePending = false
	m.mu.Unlock()
}

// ConfirmDelete deletes the bound document. It only runs after
// RequestDelete. On success the menu closes; on failure it stays open with
// the delete disarmed.
func (m *Menu) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()
	if m.selected == nil {
		m.mu.Unlock()
		return ErrNoSelection
	}
	if !m.deletePending {
		m.mu.Unlock()
		return ErrDeleteNotRequested
	}
	doc := *m.selected
	m.deletePending = false
	m.mu.Unlock()

	if err := m.actions.Delete(ctx, doc.ID); err != nil {
		return err
	}
	m.Close()
	return nil
}
