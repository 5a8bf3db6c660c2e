package memory

import (
	"context"
	"sync"

	"github.com/quillstack/notes-server/internal/domain/audit"
	"github.com/quillstack/notes-server/internal/domain/ids"
)

var _ audit.Repository = (*AuditRepository)(nil)

type AuditRepository struct {
	mu     sync.RWMutex
	gen    ids.Generator
	events []audit.Event
}

func NewAuditRepository(gen ids.Generator) *AuditRepository {
	return &AuditRepository{gen: gen}
}

// Record prepends so the slice stays ordered newest first, matching the
// postgres backend's `ORDER BY at DESC` read path.
func (r *AuditRepository) Record(ctx context.Context, noteID string, eventType audit.EventType, meta map[string]any) (*audit.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event := audit.Event{
		ID:     r.gen.NewID(),
		NoteID: noteID,
		Type:   eventType,
		At:     r.gen.Now(),
		Meta:   cloneMeta(meta),
	}
	r.events = append([]audit.Event{event}, r.events...)

	out := event
	out.Meta = cloneMeta(event.Meta)
	return &out, nil
}

func (r *AuditRepository) List(ctx context.Context, noteID string) ([]audit.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := []audit.Event{}
	for _, event := range r.events {
		if noteID == "" || event.NoteID == noteID {
			clone := event
			clone.Meta = cloneMeta(event.Meta)
			events = append(events, clone)
		}
	}
	return events, nil
}

// cloneMeta keeps stored events isolated from caller-held maps.
func cloneMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	clone := make(map[string]any, len(meta))
	for k, v := range meta {
		clone[k] = v
	}
	return clone
}
