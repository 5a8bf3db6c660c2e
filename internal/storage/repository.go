// Package storage groups data access behind backend-neutral interfaces.
// Two backends satisfy them: postgres (durable) and memory (test/fallback),
// with identical filtering and pagination semantics.
package storage

import (
	"github.com/quillstack/notes-server/internal/domain/audit"
	"github.com/quillstack/notes-server/internal/domain/notes"
)

// Repository groups data access by domain.
type Repository interface {
	Notes() notes.Repository
	Audit() audit.Repository
}
