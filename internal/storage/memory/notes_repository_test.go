package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/quillstack/notes-server/internal/domain/notes"
	"github.com/stretchr/testify/require"
)

func seedNote(t *testing.T, repo *NotesRepository, id string, createdAt time.Time, mutate func(*notes.Note)) notes.Note {
	t.Helper()
	note := notes.Note{
		ID:        id,
		Title:     "title " + id,
		Content:   "content " + id,
		Tags:      []string{},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if mutate != nil {
		mutate(&note)
	}
	require.NoError(t, repo.Create(context.Background(), note))
	return note
}

func TestListOrdersByCreationTimeDescending(t *testing.T) {
	repo := NewNotesRepository()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedNote(t, repo, "a", base, nil)
	seedNote(t, repo, "b", base.Add(time.Minute), nil)
	seedNote(t, repo, "c", base.Add(2*time.Minute), nil)

	result, err := repo.List(context.Background(), notes.Filters{}, notes.Page{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 3, result.Total)
	require.Equal(t, []string{"c", "b", "a"}, noteIDs(result.Items))
}

func TestListBreaksCreationTimeTiesByID(t *testing.T) {
	repo := NewNotesRepository()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedNote(t, repo, "a", at, nil)
	seedNote(t, repo, "b", at, nil)

	result, err := repo.List(context.Background(), notes.Filters{}, notes.Page{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, noteIDs(result.Items))
}

func TestListFiltersArePredicatesANDCombined(t *testing.T) {
	repo := NewNotesRepository()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedNote(t, repo, "pub-x", base, func(n *notes.Note) {
		n.Title = "Hello Go"
		n.Published = true
		n.Tags = []string{"x"}
	})
	seedNote(t, repo, "pub-y", base.Add(time.Minute), func(n *notes.Note) {
		n.Title = "Hello Rust"
		n.Published = true
		n.Tags = []string{"y"}
	})
	seedNote(t, repo, "draft-x", base.Add(2*time.Minute), func(n *notes.Note) {
		n.Title = "Hello again"
		n.Tags = []string{"x"}
	})

	published := true
	result, err := repo.List(context.Background(), notes.Filters{
		Query:     "hello",
		Tag:       "x",
		Published: &published,
	}, notes.Page{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Equal(t, "pub-x", result.Items[0].ID)
}

func TestListQueryIsCaseInsensitiveOverTitleAndContent(t *testing.T) {
	repo := NewNotesRepository()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedNote(t, repo, "a", base, func(n *notes.Note) {
		n.Title = "Shopping List"
		n.Content = "milk and eggs"
	})
	seedNote(t, repo, "b", base.Add(time.Minute), func(n *notes.Note) {
		n.Title = "untitled"
		n.Content = "MILK delivery schedule"
	})
	seedNote(t, repo, "c", base.Add(2*time.Minute), func(n *notes.Note) {
		n.Title = "unrelated"
		n.Content = "nothing here"
	})

	result, err := repo.List(context.Background(), notes.Filters{Query: "milk"}, notes.Page{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	require.Equal(t, []string{"b", "a"}, noteIDs(result.Items))
}

func TestListQueryMetacharactersMatchLiterally(t *testing.T) {
	repo := NewNotesRepository()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedNote(t, repo, "a", base, func(n *notes.Note) { n.Content = "battery at 100% now" })
	seedNote(t, repo, "b", base.Add(time.Minute), func(n *notes.Note) { n.Content = "battery at 100 percent" })

	// "%" and "_" are plain characters, not wildcards.
	result, err := repo.List(context.Background(), notes.Filters{Query: "100%"}, notes.Page{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Equal(t, "a", result.Items[0].ID)

	result, err = repo.List(context.Background(), notes.Filters{Query: "100_"}, notes.Page{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 0, result.Total)
}

func TestListQueryDoesNotSpanTitleContentBoundary(t *testing.T) {
	repo := NewNotesRepository()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedNote(t, repo, "a", at, func(n *notes.Note) {
		n.Title = "done"
		n.Content = "body"
	})

	result, err := repo.List(context.Background(), notes.Filters{Query: "done\nbody"}, notes.Page{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 0, result.Total)
}

func TestListClampsNegativePaging(t *testing.T) {
	repo := NewNotesRepository()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	seedNote(t, repo, "a", base, nil)
	seedNote(t, repo, "b", base.Add(time.Minute), nil)

	result, err := repo.List(context.Background(), notes.Filters{}, notes.Page{Limit: 10, Offset: -3})
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	require.Len(t, result.Items, 2)

	result, err = repo.List(context.Background(), notes.Filters{}, notes.Page{Limit: -1, Offset: 0})
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	require.Empty(t, result.Items)
}

func TestListTagRequiresExactMembership(t *testing.T) {
	repo := NewNotesRepository()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedNote(t, repo, "a", base, func(n *notes.Note) { n.Tags = []string{"x", "y"} })
	seedNote(t, repo, "b", base.Add(time.Minute), func(n *notes.Note) { n.Tags = []string{"xy"} })

	result, err := repo.List(context.Background(), notes.Filters{Tag: "x"}, notes.Page{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Equal(t, "a", result.Items[0].ID)
}

func TestListPagination(t *testing.T) {
	repo := NewNotesRepository()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedNote(t, repo, fmt.Sprintf("n-%d", i), base.Add(time.Duration(i)*time.Minute), nil)
	}

	cases := []struct {
		limit, offset, want int
	}{
		{limit: 2, offset: 0, want: 2},
		{limit: 2, offset: 4, want: 1},
		{limit: 2, offset: 5, want: 0},
		{limit: 10, offset: 0, want: 5},
		{limit: 10, offset: 99, want: 0},
	}
	for _, tc := range cases {
		result, err := repo.List(context.Background(), notes.Filters{}, notes.Page{Limit: tc.limit, Offset: tc.offset})
		require.NoError(t, err)
		require.Equal(t, 5, result.Total, "total ignores pagination (limit=%d offset=%d)", tc.limit, tc.offset)
		require.Len(t, result.Items, tc.want, "limit=%d offset=%d", tc.limit, tc.offset)
	}
}

func TestCreateDuplicateIDConflicts(t *testing.T) {
	repo := NewNotesRepository()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	seedNote(t, repo, "dup", at, nil)
	err := repo.Create(context.Background(), notes.Note{ID: "dup", Title: "again", Tags: []string{}, CreatedAt: at, UpdatedAt: at})
	require.ErrorIs(t, err, notes.ErrConflict)
}

func TestUpdateMissingNoteNotFound(t *testing.T) {
	repo := NewNotesRepository()

	err := repo.Update(context.Background(), notes.Note{ID: "missing", Tags: []string{}})
	require.ErrorIs(t, err, notes.ErrNotFound)
}

func TestRemoveAbsentNoteIsNoop(t *testing.T) {
	repo := NewNotesRepository()

	require.NoError(t, repo.Remove(context.Background(), "missing"))
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	repo := NewNotesRepository()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	seedNote(t, repo, "a", at, func(n *notes.Note) { n.Tags = []string{"keep"} })

	got, err := repo.Get(context.Background(), "a")
	require.NoError(t, err)
	got.Tags[0] = "mutated"

	again, err := repo.Get(context.Background(), "a")
	require.NoError(t, err)
	require.Equal(t, []string{"keep"}, again.Tags)
}

func noteIDs(items []notes.Note) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
