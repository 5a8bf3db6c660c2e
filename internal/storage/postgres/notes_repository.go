package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quillstack/notes-server/internal/domain/notes"
)

var _ notes.Repository = (*NotesRepository)(nil)

type NotesRepository struct {
	pool *pgxpool.Pool
}

type noteRow struct {
	ID        string
	Title     string
	Content   string
	Tags      []string
	Published bool
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// noteFilterClause must stay in lockstep with the in-memory backend
// predicate: published exact match, tag membership, and case-insensitive
// literal substring search over title and content, AND-combined. $3 takes
// the query pre-escaped by escapeLike.
const noteFilterClause = `
  WHERE ($1::boolean IS NULL OR published = $1)
    AND ($2 = '' OR $2 = ANY(tags))
    AND ($3 = '' OR title ILIKE '%' || $3 || '%' OR content ILIKE '%' || $3 || '%')`

// escapeLike neutralizes LIKE metacharacters so the query matches as a
// literal substring, the way the in-memory backend matches it.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *NotesRepository) List(ctx context.Context, filters notes.Filters, page notes.Page) (notes.ListResult, error) {
	result := notes.ListResult{Items: []notes.Note{}}

	row := r.pool.QueryRow(ctx, `SELECT count(*) FROM notes`+noteFilterClause,
		filters.Published, filters.Tag, escapeLike(filters.Query))
	if err := row.Scan(&result.Total); err != nil {
		return notes.ListResult{}, fmt.Errorf("count notes: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, title, content, tags, published, created_at, updated_at
  FROM notes`+noteFilterClause+`
 ORDER BY created_at DESC, id DESC
OFFSET $4 LIMIT $5`,
		filters.Published, filters.Tag, escapeLike(filters.Query), page.Offset, page.Limit)
	if err != nil {
		return notes.ListResult{}, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var row noteRow
		if err := rows.Scan(
			&row.ID,
			&row.Title,
			&row.Content,
			&row.Tags,
			&row.Published,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return notes.ListResult{}, fmt.Errorf("scan note: %w", err)
		}
		result.Items = append(result.Items, mapNote(row))
	}
	if err := rows.Err(); err != nil {
		return notes.ListResult{}, fmt.Errorf("iterate notes: %w", err)
	}

	return result, nil
}

func (r *NotesRepository) Get(ctx context.Context, id string) (*notes.Note, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, content, tags, published, created_at, updated_at
  FROM notes
 WHERE id = $1`, id)

	var data noteRow
	if err := row.Scan(
		&data.ID,
		&data.Title,
		&data.Content,
		&data.Tags,
		&data.Published,
		&data.CreatedAt,
		&data.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notes.ErrNotFound
		}
		return nil, fmt.Errorf("get note: %w", err)
	}

	note := mapNote(data)
	return &note, nil
}

func (r *NotesRepository) Create(ctx context.Context, note notes.Note) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO notes (id, title, content, tags, published, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		note.ID, note.Title, note.Content, note.Tags, note.Published, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return notes.ErrConflict
		}
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *NotesRepository) Update(ctx context.Context, note notes.Note) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE notes
   SET title = $2,
       content = $3,
       tags = $4,
       published = $5,
       updated_at = $6
 WHERE id = $1`,
		note.ID, note.Title, note.Content, note.Tags, note.Published, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notes.ErrNotFound
	}
	return nil
}

func (r *NotesRepository) Remove(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("remove note: %w", err)
	}
	return nil
}

func mapNote(row noteRow) notes.Note {
	note := notes.Note{
		ID:        row.ID,
		Title:     row.Title,
		Content:   row.Content,
		Tags:      row.Tags,
		Published: row.Published,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if row.CreatedAt.Valid {
		note.CreatedAt = row.CreatedAt.Time.UTC()
	}
	if row.UpdatedAt.Valid {
		note.UpdatedAt = row.UpdatedAt.Time.UTC()
	}
	return note
}
