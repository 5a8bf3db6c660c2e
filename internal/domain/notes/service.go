package notes

import (
	"context"
	"strings"

	"github.com/quillstack/notes-server/internal/domain/audit"
	"github.com/quillstack/notes-server/internal/domain/ids"
	"github.com/rs/zerolog"
)

// Service orchestrates the note lifecycle. It owns note mutation
// exclusively: normalization of input, sparse patching, and the audit
// events that publish, unpublish, and delete must append.
//
// Mutating operations read, write the store, then append audit as three
// separate steps. Concurrent callers racing on one id can interleave
// between steps; this is a single-writer admin tool and makes no
// cross-operation atomicity guarantee.
type Service struct {
	repo   Repository
	audit  *audit.Recorder
	gen    ids.Generator
	logger zerolog.Logger
}

func NewService(repo Repository, recorder *audit.Recorder, gen ids.Generator, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		audit:  recorder,
		gen:    gen,
		logger: logger.With().Str("component", "notes").Logger(),
	}
}

// List delegates to the store. Zero-value pagination gets the defaults:
// limit 20, offset 0.
func (s *Service) List(ctx context.Context, filters Filters, page Page) (ListResult, error) {
	if page.Limit <= 0 {
		page.Limit = DefaultLimit
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return s.repo.List(ctx, filters, page)
}

// Get fetches a note and fails with ErrNotFound when absent. Every other
// operation that needs an existing note goes through here so not-found
// semantics stay consistent.
func (s *Service) Get(ctx context.Context, id string) (*Note, error) {
	return s.repo.Get(ctx, id)
}

// Create normalizes the input and persists a new unpublished note.
// Creation is intentionally not audited.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Note, error) {
	now := s.gen.Now()
	note := Note{
		ID:        s.gen.NewID(),
		Title:     strings.TrimSpace(input.Title),
		Content:   strings.TrimSpace(input.Content),
		Tags:      normalizeTags(input.Tags),
		Published: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info().Str("note_id", note.ID).Msg("note created")
	return &note, nil
}

// Update applies a sparse patch: nil patch fields leave the stored value
// unchanged, and a pointer to an empty tags slice clears all tags.
// UpdatedAt advances even when no field changes. Updates are not audited.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Note, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.update(ctx, *current, patch)
}

// update applies patch on top of an already-fetched record, sparing
// internal callers a second read.
func (s *Service) update(ctx context.Context, current Note, patch Patch) (*Note, error) {
	next := current
	if patch.Title != nil {
		next.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		next.Content = strings.TrimSpace(*patch.Content)
	}
	if patch.Tags != nil {
		next.Tags = normalizeTags(*patch.Tags)
	}
	if patch.Published != nil {
		next.Published = *patch.Published
	}
	next.UpdatedAt = s.gen.Now()

	if err := s.repo.Update(ctx, next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Remove deletes the note, then appends a NOTE_DELETED event carrying the
// note's title. The delete must land before the audit append; if the
// append then fails the delete is not rolled back, and the error still
// surfaces to the caller.
func (s *Service) Remove(ctx context.Context, id string) error {
	note, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("note_id", id).Msg("note deleted")

	_, err = s.audit.Record(ctx, id, audit.NoteDeleted, map[string]any{"title": note.Title})
	return err
}

// SetPublished flips the publish state and appends the matching audit
// event. The event reflects the new state, not a diff: publishing an
// already-published note records NOTE_PUBLISHED again.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) (*Note, error) {
	note, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.update(ctx, *note, Patch{Published: &published})
	if err != nil {
		return nil, err
	}

	eventType := audit.NoteUnpublished
	if published {
		eventType = audit.NotePublished
	}
	if _, err := s.audit.Record(ctx, id, eventType, map[string]any{"title": note.Title}); err != nil {
		return nil, err
	}

	s.logger.Info().Str("note_id", id).Bool("published", published).Msg("note publish state changed")
	return updated, nil
}

// normalizeTags trims every tag and drops the ones left empty, preserving
// order of the survivors. Duplicates are permitted.
func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return normalized
}
