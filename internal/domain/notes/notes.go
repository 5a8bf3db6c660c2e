// Package notes holds the note model and the lifecycle rules around it:
// input normalization, sparse patching, and the audit events that publish,
// unpublish, and delete transitions must leave behind.
package notes

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("note not found")

var ErrConflict = errors.New("note already exists")

// Note is the primary content entity. Title and content are stored without
// leading or trailing whitespace, tags never contain empty strings, and
// UpdatedAt never precedes CreatedAt.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filters narrows a listing. All set fields are AND-combined: Published
// matches exactly when non-nil, Tag requires membership in the note's tags,
// and Query is a case-insensitive substring match over title and content.
type Filters struct {
	Query     string
	Tag       string
	Published *bool
}

// Page is offset-based pagination, zero-indexed.
type Page struct {
	Limit  int
	Offset int
}

// ListResult carries one page of notes plus the total count of records
// matching the filters regardless of pagination.
type ListResult struct {
	Total int    `json:"total"`
	Items []Note `json:"items"`
}

// Repository is the keyed note collection. Ordering is creation time
// descending with id as the tie-break; the postgres and in-memory
// implementations must filter and paginate identically so tests against
// the in-memory backend stand in for the durable one.
//
// Update replaces the stored record in full; sparse-patch semantics live
// in the Service, not here.
type Repository interface {
	List(ctx context.Context, filters Filters, page Page) (ListResult, error)
	Get(ctx context.Context, id string) (*Note, error)
	Create(ctx context.Context, note Note) error
	Update(ctx context.Context, note Note) error
	Remove(ctx context.Context, id string) error
}

// Patch is a sparse update: nil fields are left unchanged. Tags
// distinguishes "leave unchanged" (nil) from "clear all tags" (pointer to
// an empty slice).
type Patch struct {
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	Tags      *[]string `json:"tags"`
	Published *bool     `json:"published"`
}

// CreateInput is the caller-facing shape for new notes. Published is not
// accepted here: notes are always created unpublished.
type CreateInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}
