// Package audit keeps an append-only trail of note lifecycle transitions.
//
// Events are immutable once recorded: there is no update or delete path,
// and no foreign key ties an event to its note, so the trail survives
// note deletion.
package audit

import (
	"context"
	"errors"
	"time"
)

// EventType enumerates the audited lifecycle transitions. Creation and
// plain updates are intentionally not audited.
type EventType string

const (
	NotePublished   EventType = "NOTE_PUBLISHED"
	NoteUnpublished EventType = "NOTE_UNPUBLISHED"
	NoteDeleted     EventType = "NOTE_DELETED"
)

// Valid reports whether t is a member of the event type enumeration.
func (t EventType) Valid() bool {
	switch t {
	case NotePublished, NoteUnpublished, NoteDeleted:
		return true
	default:
		return false
	}
}

var ErrInvalidType = errors.New("invalid audit event type")

// Event is a single recorded lifecycle transition.
type Event struct {
	ID     string         `json:"id"`
	NoteID string         `json:"noteId"`
	Type   EventType      `json:"type"`
	At     time.Time      `json:"at"`
	Meta   map[string]any `json:"meta,omitempty"`
}

// Repository is the append-only event store. Record assigns the id and
// timestamp server-side and never checks that the note exists. List
// returns events newest first, optionally restricted to one note.
type Repository interface {
	Record(ctx context.Context, noteID string, eventType EventType, meta map[string]any) (*Event, error)
	List(ctx context.Context, noteID string) ([]Event, error)
}
