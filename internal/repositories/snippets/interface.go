// Package snippets contains the persistence layer for snippet records.
package snippets

import (
	"context"

	"snippy/internal/models"
)

// UpdateFields describes a partial update. Nil pointers mean "leave the
// column unchanged"; a nil Tags slice means the same for tags.
type UpdateFields struct {
	Title       *string
	Content     *string
	Language    *string
	Tags        []string
	Description *string
}

// Empty reports whether the update would change nothing.
func (f UpdateFields) Empty() bool {
	return f.Title == nil && f.Content == nil && f.Language == nil &&
		f.Tags == nil && f.Description == nil
}

// Counts is the aggregate summary used by the stats operation.
type Counts struct {
	Total      int
	Encrypted  int
	ByLanguage map[string]int
}

// Repository is the persistence contract for snippets. Content passes
// through opaque: encryption happens above this layer.
type Repository interface {
	// Insert stores a new snippet and returns its assigned id.
	Insert(ctx context.Context, s *models.Snippet) (int64, error)

	// GetByID returns one snippet, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Snippet, error)

	// List returns snippets matching the filter, newest-created first.
	List(ctx context.Context, filter models.ListFilter) ([]models.Snippet, error)

	// Update applies a partial update and bumps updated_at.
	// Returns common.ErrNotFound when the id does not exist.
	Update(ctx context.Context, id int64, fields UpdateFields) error

	// Delete removes a snippet, or returns common.ErrNotFound.
	Delete(ctx context.Context, id int64) error

	// Counts aggregates totals for the stats operation.
	Counts(ctx context.Context) (*Counts, error)
}
