package snippets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"snippy/internal/common"
	"snippy/internal/dbx"
	"snippy/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Timestamps are stored as RFC 3339 text so records stay readable with any
// sqlite tooling.
const timeLayout = time.RFC3339

func (r *SQLiteRepository) Insert(ctx context.Context, s *models.Snippet) (int64, error) {
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `INSERT INTO snippets (title, content, language, tags, description, created_at, updated_at, is_encrypted)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		s.Title, s.Content, s.Language, models.JoinTags(s.Tags), s.Description,
		now.Format(timeLayout), now.Format(timeLayout), s.IsEncrypted)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snippet: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get inserted id: %w", err)
	}
	s.ID = id
	return id, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.Snippet, error) {
	query := `SELECT id, title, content, language, tags, description, created_at, updated_at, is_encrypted
			FROM snippets WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanSnippet(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snippet %d: %w", id, err)
	}
	return s, nil
}

func (r *SQLiteRepository) List(ctx context.Context, filter models.ListFilter) ([]models.Snippet, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, title, content, language, tags, description, created_at, updated_at, is_encrypted
			FROM snippets WHERE 1=1`)
	var params []any

	if filter.Search != "" {
		sb.WriteString(" AND (title LIKE ? OR content LIKE ?)")
		pattern := "%" + filter.Search + "%"
		params = append(params, pattern, pattern)
	}
	if filter.Language != "" {
		sb.WriteString(" AND language = ?")
		params = append(params, filter.Language)
	}
	for _, tag := range filter.Tags {
		sb.WriteString(" AND tags LIKE ?")
		params = append(params, "%"+tag+"%")
	}

	sb.WriteString(" ORDER BY created_at DESC, id DESC")

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ? OFFSET ?")
		params = append(params, filter.Limit, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), params...)
	if err != nil {
		return nil, fmt.Errorf("failed to select snippets: %w", err)
	}
	defer rows.Close()

	var result []models.Snippet
	for rows.Next() {
		s, err := scanSnippet(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, fields UpdateFields) error {
	if fields.Empty() {
		return nil
	}

	var sets []string
	var params []any

	if fields.Title != nil {
		sets = append(sets, "title = ?")
		params = append(params, *fields.Title)
	}
	if fields.Content != nil {
		sets = append(sets, "content = ?")
		params = append(params, *fields.Content)
	}
	if fields.Language != nil {
		sets = append(sets, "language = ?")
		params = append(params, *fields.Language)
	}
	if fields.Tags != nil {
		sets = append(sets, "tags = ?")
		params = append(params, models.JoinTags(fields.Tags))
	}
	if fields.Description != nil {
		sets = append(sets, "description = ?")
		params = append(params, *fields.Description)
	}

	sets = append(sets, "updated_at = ?")
	params = append(params, time.Now().UTC().Format(timeLayout), id)

	query := fmt.Sprintf("UPDATE snippets SET %s WHERE id = ?", strings.Join(sets, ", "))
	res, err := r.db.ExecContext(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("failed to update snippet %d: %w", id, err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snippets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snippet %d: %w", id, err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) Counts(ctx context.Context) (*Counts, error) {
	c := &Counts{ByLanguage: make(map[string]int)}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(is_encrypted), 0) FROM snippets`).Scan(&c.Total, &c.Encrypted)
	if err != nil {
		return nil, fmt.Errorf("failed to count snippets: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT language, COUNT(*) FROM snippets WHERE language != '' GROUP BY language`)
	if err != nil {
		return nil, fmt.Errorf("failed to count languages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lang string
		var n int
		if err := rows.Scan(&lang, &n); err != nil {
			return nil, err
		}
		c.ByLanguage[lang] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// scanSnippet maps one row onto a Snippet, converting the tags blob and the
// textual timestamps.
func scanSnippet(scan func(dest ...any) error) (*models.Snippet, error) {
	var s models.Snippet
	var tags, createdAt, updatedAt string

	if err := scan(&s.ID, &s.Title, &s.Content, &s.Language, &tags,
		&s.Description, &createdAt, &updatedAt, &s.IsEncrypted); err != nil {
		return nil, err
	}

	s.Tags = models.SplitTags(tags)

	var err error
	if s.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if s.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return &s, nil
}
