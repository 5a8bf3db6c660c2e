package audit

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	events []Event
}

func (r *fakeRepo) Record(ctx context.Context, noteID string, eventType EventType, meta map[string]any) (*Event, error) {
	event := Event{
		ID:     "evt-1",
		NoteID: noteID,
		Type:   eventType,
		At:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Meta:   meta,
	}
	r.events = append([]Event{event}, r.events...)
	return &event, nil
}

func (r *fakeRepo) List(ctx context.Context, noteID string) ([]Event, error) {
	if noteID == "" {
		return r.events, nil
	}
	filtered := []Event{}
	for _, event := range r.events {
		if event.NoteID == noteID {
			filtered = append(filtered, event)
		}
	}
	return filtered, nil
}

func TestRecordPassesThrough(t *testing.T) {
	repo := &fakeRepo{}
	recorder := NewRecorder(repo, zerolog.Nop())

	event, err := recorder.Record(context.Background(), "note-1", NoteDeleted, map[string]any{"title": "gone"})

	require.NoError(t, err)
	require.Equal(t, "note-1", event.NoteID)
	require.Equal(t, NoteDeleted, event.Type)
	require.Equal(t, "gone", event.Meta["title"])
	require.Len(t, repo.events, 1)
}

func TestRecordRejectsUnknownType(t *testing.T) {
	repo := &fakeRepo{}
	recorder := NewRecorder(repo, zerolog.Nop())

	_, err := recorder.Record(context.Background(), "note-1", EventType("NOTE_EXPLODED"), nil)

	require.ErrorIs(t, err, ErrInvalidType)
	require.Empty(t, repo.events)
}

func TestListForUnknownNoteIsEmptyNotError(t *testing.T) {
	recorder := NewRecorder(&fakeRepo{}, zerolog.Nop())

	events, err := recorder.List(context.Background(), "never-existed")

	require.NoError(t, err)
	require.Empty(t, events)
}

func TestEventTypeValid(t *testing.T) {
	require.True(t, NotePublished.Valid())
	require.True(t, NoteUnpublished.Valid())
	require.True(t, NoteDeleted.Valid())
	require.False(t, EventType("NOTE_CREATED").Valid())
	require.False(t, EventType("").Valid())
}
