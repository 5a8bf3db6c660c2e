// Package memory is the process-local storage backend. It mirrors the
// postgres backend's filtering, ordering, and pagination exactly, which is
// what lets the test suite exercise lifecycle logic without a database.
package memory

import (
	"github.com/quillstack/notes-server/internal/domain/audit"
	"github.com/quillstack/notes-server/internal/domain/ids"
	"github.com/quillstack/notes-server/internal/domain/notes"
	"github.com/quillstack/notes-server/internal/storage"
)

type Repository struct {
	notes *NotesRepository
	audit *AuditRepository
}

var _ storage.Repository = (*Repository)(nil)

func NewRepository(gen ids.Generator) *Repository {
	return &Repository{
		notes: NewNotesRepository(),
		audit: NewAuditRepository(gen),
	}
}

func (r *Repository) Notes() notes.Repository {
	return r.notes
}

func (r *Repository) Audit() audit.Repository {
	return r.audit
}
