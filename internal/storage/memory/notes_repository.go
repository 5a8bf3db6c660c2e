package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/quillstack/notes-server/internal/domain/notes"
)

var _ notes.Repository = (*NotesRepository)(nil)

type NotesRepository struct {
	mu    sync.RWMutex
	notes map[string]notes.Note
}

func NewNotesRepository() *NotesRepository {
	return &NotesRepository{notes: make(map[string]notes.Note)}
}

func (r *NotesRepository) List(ctx context.Context, filters notes.Filters, page notes.Page) (notes.ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]notes.Note, 0, len(r.notes))
	for _, note := range r.notes {
		if matchesFilters(note, filters) {
			matched = append(matched, note)
		}
	}

	// Same ordering as the postgres backend: created_at DESC, id DESC.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	// The service clamps paging, but the repository honors its own
	// contract when called directly.
	total := len(matched)
	start := page.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	limit := page.Limit
	if limit < 0 {
		limit = 0
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := make([]notes.Note, 0, end-start)
	for _, note := range matched[start:end] {
		items = append(items, cloneNote(note))
	}

	return notes.ListResult{Total: total, Items: items}, nil
}

func (r *NotesRepository) Get(ctx context.Context, id string) (*notes.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, notes.ErrNotFound
	}
	clone := cloneNote(note)
	return &clone, nil
}

func (r *NotesRepository) Create(ctx context.Context, note notes.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[note.ID]; ok {
		return notes.ErrConflict
	}
	r.notes[note.ID] = cloneNote(note)
	return nil
}

func (r *NotesRepository) Update(ctx context.Context, note notes.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[note.ID]; !ok {
		return notes.ErrNotFound
	}
	r.notes[note.ID] = cloneNote(note)
	return nil
}

func (r *NotesRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.notes, id)
	return nil
}

func matchesFilters(note notes.Note, filters notes.Filters) bool {
	if filters.Published != nil && note.Published != *filters.Published {
		return false
	}
	if filters.Tag != "" && !containsTag(note.Tags, filters.Tag) {
		return false
	}
	if filters.Query != "" {
		// Title and content are searched separately, matching the SQL
		// per-column ILIKE predicates: a query can never straddle the
		// title/content boundary.
		q := strings.ToLower(filters.Query)
		if !strings.Contains(strings.ToLower(note.Title), q) &&
			!strings.Contains(strings.ToLower(note.Content), q) {
			return false
		}
	}
	return true
}

func containsTag(tags []string, tag string) bool {
	for _, candidate := range tags {
		if candidate == tag {
			return true
		}
	}
	return false
}

func cloneNote(note notes.Note) notes.Note {
	clone := note
	clone.Tags = make([]string, len(note.Tags))
	copy(clone.Tags, note.Tags)
	return clone
}
