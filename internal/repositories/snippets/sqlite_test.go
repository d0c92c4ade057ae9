package snippets

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snippy/internal/common"
	"snippy/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE snippets (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  language TEXT,
  tags TEXT,
  description TEXT,
  created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
  is_encrypted INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)

	return db
}

func insertSnippet(t *testing.T, r *SQLiteRepository, s models.Snippet) int64 {
	t.Helper()
	id, err := r.Insert(context.Background(), &s)
	require.NoError(t, err)
	return id
}

func TestInsertAndGetByID(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	s := models.Snippet{
		Title:       "Restart nginx",
		Content:     "sudo systemctl restart nginx",
		Language:    "bash",
		Tags:        []string{"web", "server"},
		Description: "restarts the web server",
	}
	id, err := r.Insert(ctx, &s)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Restart nginx", got.Title)
	assert.Equal(t, "sudo systemctl restart nginx", got.Content)
	assert.Equal(t, "bash", got.Language)
	assert.Equal(t, []string{"web", "server"}, got.Tags)
	assert.Equal(t, "restarts the web server", got.Description)
	assert.False(t, got.IsEncrypted)
	assert.WithinDuration(t, time.Now().UTC(), got.CreatedAt, time.Minute)
}

func TestGetByID_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	_, err := r.GetByID(context.Background(), 42)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestInsert_IDsMonotonic(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	id1 := insertSnippet(t, r, models.Snippet{Title: "one", Content: "c1"})
	id2 := insertSnippet(t, r, models.Snippet{Title: "two", Content: "c2"})
	require.Greater(t, id2, id1)

	// deleting the newest record must not cause id reuse
	require.NoError(t, r.Delete(ctx, id2))
	id3 := insertSnippet(t, r, models.Snippet{Title: "three", Content: "c3"})
	assert.Greater(t, id3, id2)
}

func TestList_Filters(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	insertSnippet(t, r, models.Snippet{Title: "docker ps", Content: "docker ps -a", Language: "bash", Tags: []string{"docker", "ops"}})
	insertSnippet(t, r, models.Snippet{Title: "list files", Content: "import os", Language: "python", Tags: []string{"fs"}})
	insertSnippet(t, r, models.Snippet{Title: "docker logs", Content: "docker logs -f", Language: "bash", Tags: []string{"docker", "debug", "ops"}})

	// substring over title OR content
	got, err := r.List(ctx, models.ListFilter{Search: "docker"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// exact language match
	got, err = r.List(ctx, models.ListFilter{Language: "python"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "list files", got[0].Title)

	// all supplied tags must match
	got, err = r.List(ctx, models.ListFilter{Tags: []string{"docker", "ops"}})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = r.List(ctx, models.ListFilter{Tags: []string{"docker", "debug"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "docker logs", got[0].Title)

	got, err = r.List(ctx, models.ListFilter{Tags: []string{"missing"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestList_OrderAndPagination(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	insertSnippet(t, r, models.Snippet{Title: "first", Content: "a"})
	insertSnippet(t, r, models.Snippet{Title: "second", Content: "b"})
	insertSnippet(t, r, models.Snippet{Title: "third", Content: "c"})

	got, err := r.List(ctx, models.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "third", got[0].Title, "newest first")
	assert.Equal(t, "first", got[2].Title)

	got, err = r.List(ctx, models.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0].Title)

	// offset without limit is ignored
	got, err = r.List(ctx, models.ListFilter{Offset: 2})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestUpdate_PartialFields(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	id := insertSnippet(t, r, models.Snippet{
		Title: "old title", Content: "old content", Language: "bash", Tags: []string{"a"},
	})

	newTitle := "new title"
	require.NoError(t, r.Update(ctx, id, UpdateFields{Title: &newTitle, Tags: []string{"a", "b"}}))

	got, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "old content", got.Content, "unsupplied fields stay put")
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestUpdate_NotFound(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	title := "x"
	err := r.Update(context.Background(), 99, UpdateFields{Title: &title})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	id := insertSnippet(t, r, models.Snippet{Title: "temp", Content: "x"})
	require.NoError(t, r.Delete(ctx, id))

	_, err := r.GetByID(ctx, id)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	assert.True(t, errors.Is(r.Delete(ctx, id), common.ErrNotFound))
}

func TestCounts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	insertSnippet(t, r, models.Snippet{Title: "a", Content: "x", Language: "bash"})
	insertSnippet(t, r, models.Snippet{Title: "b", Content: "y", Language: "bash"})
	insertSnippet(t, r, models.Snippet{Title: "c", Content: "z", Language: "python", IsEncrypted: true})
	insertSnippet(t, r, models.Snippet{Title: "d", Content: "w"})

	c, err := r.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Total)
	assert.Equal(t, 1, c.Encrypted)
	assert.Equal(t, map[string]int{"bash": 2, "python": 1}, c.ByLanguage)
}
