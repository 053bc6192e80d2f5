// Package documents keeps the document list screen state: the fetched
// collection, the search text and the active sort key.
package documents

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/dmitrijs2005/elegacy/internal/logging"
)

var ErrNoEmail = errors.New("no signed-in email to list documents for")

// Lister fetches a user's documents.
type Lister interface {
	ListDocuments(ctx context.Context, email string) ([]models.Document, error)
}

type ViewState struct {
	api Lister
	log logging.Logger

	mu      sync.Mutex
	docs    []models.Document
	search  string
	sortKey models.SortKey
}

func NewViewState(api Lister, log logging.Logger) *ViewState {
	if log == nil {
		log = logging.Nop()
	}
	return &ViewState{api: api, log: log, sortKey: models.SortByPropertyName}
}

// Refresh re-fetches the whole collection. On failure the previous
// collection is kept and the error returned.
func (v *ViewState) Refresh(ctx context.Context, email string) error {
	if email == "" {
		return ErrNoEmail
	}
	docs, err := v.api.ListDocuments(ctx, email)
	if err != nil {
		v.log.Error(ctx, "fetch documents failed", "email", email, "error", err)
		return err
	}

	v.mu.Lock()
	v.docs = slices.Clone(docs)
	v.mu.Unlock()

	v.log.Debug(ctx, "documents refreshed", "email", email, "count", len(docs))
	return nil
}

func (v *ViewState) SetSearch(q string) {
	v.mu.Lock()
	v.search = q
	v.mu.Unlock()
}

func (v *ViewState) Search() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.search
}

func (v *ViewState) SortKey() models.SortKey {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sortKey
}

// ToggleSort flips the sort key and returns the new one.
func (v *ViewState) ToggleSort() models.SortKey {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sortKey = v.sortKey.Next()
	return v.sortKey
}

// Projection is the filtered, sorted view of the collection. It is rebuilt on
// every call.
func (v *ViewState) Projection() []models.Document {
	v.mu.Lock()
	docs := v.docs
	search := v.search
	key := v.sortKey
	v.mu.Unlock()

	return Project(docs, search, key)
}

// Project filters docs by query and sorts them ascending by key. Values are
// compared byte-wise, so upper case sorts before lower case. Ties go by
// document id so the order is total.
func Project(docs []models.Document, query string, key models.SortKey) []models.Document {
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if d.Matches(query) {
			out = append(out, d)
		}
	}

	slices.SortStableFunc(out, func(a, b models.Document) int {
		av, bv := a.SortValue(key), b.SortValue(key)
		if c := strings.Compare(av, bv); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func (v *ViewState) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.docs)
}

// Recent returns up to n of the most recently added documents, newest
// first. The API returns documents in insertion order.
func (v *ViewState) Recent(n int) []models.Document {
	v.mu.Lock()
	defer v.mu.Unlock()

	if n > len(v.docs) {
		n = len(v.docs)
	}
	if n <= 0 {
		return nil
	}
	out := slices.Clone(v.docs[len(v.docs)-n:])
	slices.Reverse(out)
	return out
}

// Find looks a document up by id in the raw collection.
func (v *ViewState) Find(id string) (models.Document, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, d := range v.docs {
		if d.ID == id {
			return d, true
		}
	}
	return models.Document{}, false
}
