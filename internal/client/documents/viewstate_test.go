package documents

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/dmitrijs2005/elegacy/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	docs  []models.Document
	err   error
	calls []string
}

func (f *fakeLister) ListDocuments(_ context.Context, email string) ([]models.Document, error) {
	f.calls = append(f.calls, email)
	if f.err != nil {
		return nil, f.err
	}
	return f.docs, nil
}

func sample() []models.Document {
	return []models.Document{
		{ID: "1", Title: "Title Deed", PropertyName: "Hill Top Villa", Type: "Deed"},
		{ID: "2", Title: "Home Insurance", PropertyName: "beach House", Type: "Insurance"},
		{ID: "3", Title: "Lease", PropertyName: "Apartment 4B", Type: "Contract"},
		{ID: "4", Title: "Tax Receipt", PropertyName: "Hill Top Villa", Type: "Tax"},
	}
}

func ids(docs []models.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func loaded(t *testing.T, docs []models.Document) *ViewState {
	t.Helper()
	v := NewViewState(&fakeLister{docs: docs}, nil)
	require.NoError(t, v.Refresh(context.Background(), "a@b.c"))
	return v
}

func TestViewState_DefaultSortByPropertyName(t *testing.T) {
	v := loaded(t, sample())

	assert.Equal(t, models.SortByPropertyName, v.SortKey())
	assert.Equal(t, []string{"3", "1", "4", "2"}, ids(v.Projection()))
}

func TestViewState_SortByType(t *testing.T) {
	v := loaded(t, sample())

	assert.Equal(t, models.SortByType, v.ToggleSort())
	assert.Equal(t, []string{"3", "1", "2", "4"}, ids(v.Projection()))
}

func TestViewState_ToggleTwiceRestores(t *testing.T) {
	v := loaded(t, sample())
	before := v.Projection()

	v.ToggleSort()
	v.ToggleSort()

	assert.Equal(t, models.SortByPropertyName, v.SortKey())
	if diff := cmp.Diff(before, v.Projection()); diff != "" {
		t.Fatalf("projection changed after two toggles (-want +got):\n%s", diff)
	}
}

func TestViewState_Filter(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"3", "2", "1", "4"}},
		{"hill", []string{"1", "4"}},
		{"INSURANCE", []string{"2"}},
		{"contract", []string{"3"}},
		{"deed", []string{"1"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			v := loaded(t, sample())
			v.SetSearch(tt.query)
			assert.Equal(t, tt.query, v.Search())
			assert.Equal(t, tt.want, ids(v.Projection()))
		})
	}
}

// Every document is kept iff the lower-cased query occurs in one of the three
// searchable fields.
func TestProject_FilterProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	words := []string{"Villa", "deed", "TAX", "house", "lease", "Hill", "x"}
	pick := func() string { return words[rng.Intn(len(words))] + " " + words[rng.Intn(len(words))] }

	for i := 0; i < 200; i++ {
		var docs []models.Document
		for j := 0; j < 8; j++ {
			docs = append(docs, models.Document{ID: fmt.Sprint(j), Title: pick(), PropertyName: pick(), Type: pick()})
		}
		q := words[rng.Intn(len(words))]
		if rng.Intn(5) == 0 {
			q = ""
		}

		got := map[string]bool{}
		for _, d := range Project(docs, q, models.SortByType) {
			got[d.ID] = true
		}
		for _, d := range docs {
			lq := strings.ToLower(q)
			want := strings.Contains(strings.ToLower(d.Title), lq) ||
				strings.Contains(strings.ToLower(d.PropertyName), lq) ||
				strings.Contains(strings.ToLower(d.Type), lq)
			assert.Equal(t, want, got[d.ID], "doc %+v query %q", d, q)
		}
	}
}

func TestProject_TiesBrokenByID(t *testing.T) {
	docs := []models.Document{
		{ID: "b", PropertyName: "Same"},
		{ID: "a", PropertyName: "Same"},
		{ID: "c", PropertyName: "same"},
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids(Project(docs, "", models.SortByPropertyName)))
}

func TestViewState_RefreshFailureKeepsPrevious(t *testing.T) {
	api := &fakeLister{docs: sample()}
	v := NewViewState(api, nil)
	ctx := context.Background()
	require.NoError(t, v.Refresh(ctx, "a@b.c"))

	api.err = errors.New("offline")
	require.Error(t, v.Refresh(ctx, "a@b.c"))
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, []string{"a@b.c", "a@b.c"}, api.calls)
}

func TestViewState_RefreshWithoutEmail(t *testing.T) {
	api := &fakeLister{}
	v := NewViewState(api, nil)

	assert.ErrorIs(t, v.Refresh(context.Background(), ""), ErrNoEmail)
	assert.Empty(t, api.calls)
}

func TestViewState_RefreshIsIdempotent(t *testing.T) {
	v := loaded(t, sample())
	first := v.Projection()
	require.NoError(t, v.Refresh(context.Background(), "a@b.c"))
	assert.Equal(t, first, v.Projection())
}

func TestViewState_RefreshDoesNotAliasCallerSlice(t *testing.T) {
	docs := sample()
	v := loaded(t, docs)
	docs[0].Title = "mutated"

	d, ok := v.Find("1")
	require.True(t, ok)
	assert.Equal(t, "Title Deed", d.Title)
}

func TestProject_CaseSensitiveOrder(t *testing.T) {
	docs := []models.Document{
		{ID: "1", PropertyName: "apple"},
		{ID: "2", PropertyName: "Banana"},
		{ID: "3", PropertyName: "cherry"},
		{ID: "4", PropertyName: "Apple"},
	}
	got := Project(docs, "", models.SortByPropertyName)

	want := []string{"Apple", "Banana", "apple", "cherry"}
	names := make([]string, len(got))
	for i, d := range got {
		names[i] = d.PropertyName
	}
	assert.Equal(t, want, names)
}

func TestViewState_Recent(t *testing.T) {
	v := loaded(t, sample())

	assert.Equal(t, []string{"4", "3", "2"}, ids(v.Recent(3)))
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(v.Recent(10)))
	assert.Nil(t, v.Recent(0))

	empty := NewViewState(&fakeLister{}, nil)
	assert.Nil(t, empty.Recent(3))
}

func TestViewState_Find(t *testing.T) {
	v := loaded(t, sample())

	d, ok := v.Find("3")
	require.True(t, ok)
	assert.Equal(t, "Lease", d.Title)

	_, ok = v.Find("nope")
	assert.False(t, ok)
}
