package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillstack/notes-server/internal/domain/audit"
	"github.com/quillstack/notes-server/internal/domain/ids"
)

var _ audit.Repository = (*AuditRepository)(nil)

type AuditRepository struct {
	pool *pgxpool.Pool
	gen  ids.Generator
}

type auditRow struct {
	ID     string
	NoteID string
	Type   string
	At     pgtype.Timestamptz
	Meta   []byte
}

// Record appends an event with a server-assigned id and timestamp. The
// referenced note is never checked: audit_events carries no foreign key,
// so events outlive deleted notes.
func (r *AuditRepository) Record(ctx context.Context, noteID string, eventType audit.EventType, meta map[string]any) (*audit.Event, error) {
	var metaJSON []byte
	if meta != nil {
		encoded, err := json.Marshal(meta)
		if err != nil {
			return nil, fmt.Errorf("encode audit meta: %w", err)
		}
		metaJSON = encoded
	}

	event := audit.Event{
		ID:     r.gen.NewID(),
		NoteID: noteID,
		Type:   eventType,
		At:     r.gen.Now(),
		Meta:   meta,
	}

	_, err := r.pool.Exec(ctx, `
INSERT INTO audit_events (id, note_id, type, at, meta)
VALUES ($1, $2, $3, $4, $5)`,
		event.ID, event.NoteID, string(event.Type), event.At, metaJSON)
	if err != nil {
		return nil, fmt.Errorf("record audit event: %w", err)
	}

	return &event, nil
}

func (r *AuditRepository) List(ctx context.Context, noteID string) ([]audit.Event, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, note_id, type, at, meta
  FROM audit_events
 WHERE ($1 = '' OR note_id = $1)
 ORDER BY at DESC, id DESC`, noteID)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	events := []audit.Event{}
	for rows.Next() {
		var row auditRow
		if err := rows.Scan(&row.ID, &row.NoteID, &row.Type, &row.At, &row.Meta); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}

		event := audit.Event{
			ID:     row.ID,
			NoteID: row.NoteID,
			Type:   audit.EventType(row.Type),
		}
		if row.At.Valid {
			event.At = row.At.Time.UTC()
		}
		if len(row.Meta) > 0 {
			if err := json.Unmarshal(row.Meta, &event.Meta); err != nil {
				return nil, fmt.Errorf("decode audit meta: %w", err)
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}

	return events, nil
}
