package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillstack/notes-server/internal/domain/audit"
	"github.com/quillstack/notes-server/internal/domain/ids"
	"github.com/quillstack/notes-server/internal/domain/notes"
	"github.com/quillstack/notes-server/internal/storage"
)

type Repository struct {
	pool *pgxpool.Pool
	gen  ids.Generator
}

var _ storage.Repository = (*Repository)(nil)

func NewRepository(pool *pgxpool.Pool, gen ids.Generator) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	if gen == nil {
		return nil, fmt.Errorf("postgres repository: id generator is nil")
	}
	return &Repository{pool: pool, gen: gen}, nil
}

func (r *Repository) Notes() notes.Repository {
	return &NotesRepository{pool: r.pool}
}

func (r *Repository) Audit() audit.Repository {
	return &AuditRepository{pool: r.pool, gen: r.gen}
}
