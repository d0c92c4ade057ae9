// Package services contains the application service for the snippet store:
// CRUD over encrypted or plaintext records, filtered listing, export, stats,
// and the encryption lifecycle (enable, disable, authenticate).
//
// The derived key is never held in package state. Callers obtain it from
// Authenticate or EnableEncryption and pass it into every operation that
// needs to seal or open content, so the service stays safe to use from
// multiple call sites and tests without cross-contamination.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"

	"snippy/internal/common"
	"snippy/internal/cryptox"
	"snippy/internal/dbx"
	"snippy/internal/logging"
	"snippy/internal/models"
	configrepo "snippy/internal/repositories/config"
	"snippy/internal/repositories/snippets"
)

const (
	keyEncryptionEnabled  = "encryption_enabled"
	keyEncryptionSalt     = "encryption_salt"
	keyEncryptionVerifier = "encryption_verifier"

	// DecryptFailedPlaceholder is substituted for content that cannot be
	// opened with the active key. It never aborts a listing.
	DecryptFailedPlaceholder = "[ENCRYPTED - Invalid password]"
)

// ErrEmptyTitle rejects snippets created without a title.
var ErrEmptyTitle = errors.New("title must not be empty")

// AddParams describes a snippet to create.
type AddParams struct {
	Title       string
	Content     string
	Language    string
	Tags        []string
	Description string

	// Secure requests at-rest encryption. It only takes effect when a key
	// is held; otherwise the record is stored plaintext and the result is
	// flagged as downgraded.
	Secure bool
}

// AddResult reports the outcome of Add.
type AddResult struct {
	ID int64

	// Downgraded is true when Secure was requested but no key was held,
	// so the content went in as plaintext. Callers must surface this as
	// a warning.
	Downgraded bool
}

// SnippetService implements the snippet store operations backed by a local
// SQL database.
type SnippetService struct {
	db  *sql.DB
	log logging.Logger
}

// NewSnippetService constructs a SnippetService bound to the given database.
func NewSnippetService(db *sql.DB, log logging.Logger) *SnippetService {
	return &SnippetService{db: db, log: log}
}

func (s *SnippetService) getSnippetRepo() snippets.Repository {
	return snippets.NewSQLiteRepository(s.db)
}

func (s *SnippetService) getConfigRepo() configrepo.Repository {
	return configrepo.NewSQLiteRepository(s.db)
}

// Add creates a snippet. Content is encrypted iff p.Secure is set and a key
// is held; a secure request without a key is downgraded to plaintext, never
// rejected.
func (s *SnippetService) Add(ctx context.Context, p AddParams, key []byte) (*AddResult, error) {
	if p.Title == "" {
		return nil, ErrEmptyTitle
	}

	encrypt := p.Secure && key != nil
	downgraded := p.Secure && key == nil

	content := p.Content
	if encrypt {
		blob, err := cryptox.Encrypt(key, p.Content)
		if err != nil {
			return nil, fmt.Errorf("encryption error: %w", err)
		}
		content = blob
	}

	snippet := &models.Snippet{
		Title:       p.Title,
		Content:     content,
		Language:    p.Language,
		Tags:        p.Tags,
		Description: p.Description,
		IsEncrypted: encrypt,
	}

	id, err := s.getSnippetRepo().Insert(ctx, snippet)
	if err != nil {
		return nil, fmt.Errorf("saving error: %w", err)
	}

	if downgraded {
		s.log.Warn(ctx, "secure flag ignored, no encryption key held", "id", id)
	}

	return &AddResult{ID: id, Downgraded: downgraded}, nil
}

// Get returns one snippet with content already decrypted when possible.
func (s *SnippetService) Get(ctx context.Context, id int64, key []byte) (*models.Snippet, error) {
	snippet, err := s.getSnippetRepo().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.openContent(ctx, snippet, key)
	return snippet, nil
}

// List returns snippets matching the filter, newest-created first. A decrypt
// failure on one record substitutes the placeholder and never blocks the rest
// of the result set.
func (s *SnippetService) List(ctx context.Context, filter models.ListFilter, key []byte) ([]models.Snippet, error) {
	rows, err := s.getSnippetRepo().List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		s.openContent(ctx, &rows[i], key)
	}
	return rows, nil
}

// Update applies a partial update. New content for an encrypted record is
// re-encrypted with the held key; updating such content without a key fails
// with common.ErrKeyRequired so plaintext never lands in an encrypted row.
func (s *SnippetService) Update(ctx context.Context, id int64, fields snippets.UpdateFields, key []byte) error {
	repo := s.getSnippetRepo()

	current, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if fields.Content != nil && current.IsEncrypted {
		if key == nil {
			return common.ErrKeyRequired
		}
		blob, err := cryptox.Encrypt(key, *fields.Content)
		if err != nil {
			return fmt.Errorf("encryption error: %w", err)
		}
		fields.Content = &blob
	}

	return repo.Update(ctx, id, fields)
}

// Delete removes a snippet.
func (s *SnippetService) Delete(ctx context.Context, id int64) error {
	return s.getSnippetRepo().Delete(ctx, id)
}

// Stats aggregates store totals.
func (s *SnippetService) Stats(ctx context.Context) (*models.Stats, error) {
	counts, err := s.getSnippetRepo().Counts(ctx)
	if err != nil {
		return nil, err
	}

	enabled, err := s.IsEncryptionEnabled(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Stats{
		TotalSnippets:     counts.Total,
		Languages:         counts.ByLanguage,
		EncryptedSnippets: counts.Encrypted,
		EncryptionEnabled: enabled,
	}, nil
}

// IsEncryptionEnabled reports the persisted encryption-enabled flag.
func (s *SnippetService) IsEncryptionEnabled(ctx context.Context) (bool, error) {
	v, ok, err := s.getConfigRepo().Get(ctx, keyEncryptionEnabled)
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}

// EnableEncryption generates a fresh random salt, derives the key from the
// password, and persists salt, key verifier, and the enabled flag in a single
// transaction so a failure cannot leave partial state. Existing records are
// not touched: the flag governs availability, not a default.
func (s *SnippetService) EnableEncryption(ctx context.Context, password []byte) ([]byte, error) {
	salt, err := cryptox.MakeSalt()
	if err != nil {
		return nil, err
	}
	key := cryptox.DeriveKey(password, salt)
	verifier := cryptox.MakeVerifier(key)

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := configrepo.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyEncryptionSalt, base64.StdEncoding.EncodeToString(salt)); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyEncryptionVerifier, base64.StdEncoding.EncodeToString(verifier)); err != nil {
			return err
		}
		return repo.Set(ctx, keyEncryptionEnabled, "true")
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "encryption enabled")
	return key, nil
}

// DisableEncryption turns the flag off and removes the salt and verifier in
// a single transaction. Encrypted rows stay as they are; without the salt the
// old key is no longer re-derivable, so their content is permanently opaque.
// That loss is intentional.
func (s *SnippetService) DisableEncryption(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := configrepo.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyEncryptionEnabled, "false"); err != nil {
			return err
		}
		if err := repo.Delete(ctx, keyEncryptionSalt); err != nil {
			return err
		}
		return repo.Delete(ctx, keyEncryptionVerifier)
	})
	if err != nil {
		return err
	}

	s.log.Info(ctx, "encryption disabled")
	return nil
}

// Authenticate derives a candidate key from the password and the persisted
// salt and checks it against the persisted verifier. The check is independent
// of the record set: rows sealed under an earlier salt era (stores that were
// disabled and re-enabled) can never lock the correct current password out,
// they simply render as the placeholder.
func (s *SnippetService) Authenticate(ctx context.Context, password []byte) ([]byte, error) {
	enabled, err := s.IsEncryptionEnabled(ctx)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return nil, common.ErrEncryptionDisabled
	}

	repo := s.getConfigRepo()

	saltB64, ok, err := repo.Get(ctx, keyEncryptionSalt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrEncryptionDisabled
	}
	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return nil, fmt.Errorf("corrupted salt: %w", err)
	}

	verifierB64, ok, err := repo.Get(ctx, keyEncryptionVerifier)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.ErrEncryptionDisabled
	}
	verifier, err := base64.StdEncoding.DecodeString(verifierB64)
	if err != nil {
		return nil, fmt.Errorf("corrupted verifier: %w", err)
	}

	key := cryptox.DeriveKey(password, salt)
	candidate := cryptox.MakeVerifier(key)

	if subtle.ConstantTimeCompare(verifier, candidate) == 0 {
		return nil, common.ErrAuthenticationFailed
	}
	return key, nil
}

// openContent decrypts a record's content in place. Missing key or a failed
// decrypt yields the placeholder; plaintext records pass through untouched.
func (s *SnippetService) openContent(ctx context.Context, snippet *models.Snippet, key []byte) {
	if !snippet.IsEncrypted {
		return
	}
	if key == nil {
		snippet.Content = DecryptFailedPlaceholder
		return
	}

	plaintext, err := cryptox.Decrypt(key, snippet.Content)
	if err != nil {
		s.log.Warn(ctx, "failed to decrypt snippet content", "id", snippet.ID)
		snippet.Content = DecryptFailedPlaceholder
		return
	}
	snippet.Content = plaintext
}
