package audit

import (
	"context"

	"github.com/rs/zerolog"
)

// Recorder is the service-level surface for appending and reading audit
// events. It adds nothing beyond shape validation; it exists so the notes
// service depends on an abstraction rather than a storage concrete type.
type Recorder struct {
	repo   Repository
	logger zerolog.Logger
}

func NewRecorder(repo Repository, logger zerolog.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger.With().Str("component", "audit").Logger(),
	}
}

func (r *Recorder) Record(ctx context.Context, noteID string, eventType EventType, meta map[string]any) (*Event, error) {
	if !eventType.Valid() {
		return nil, ErrInvalidType
	}

	event, err := r.repo.Record(ctx, noteID, eventType, meta)
	if err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("note_id", noteID).
		Str("type", string(eventType)).
		Msg("audit event recorded")
	return event, nil
}

// List returns all events, or only those for noteID when it is non-empty.
// Filtering by a note that never existed yields an empty slice, not an error.
func (r *Recorder) List(ctx context.Context, noteID string) ([]Event, error) {
	return r.repo.List(ctx, noteID)
}
