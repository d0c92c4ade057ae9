// Package models holds the data types shared between the snippet
// repositories, services, and CLI.
package models

import (
	"strings"
	"time"
)

// Snippet is a stored unit of reusable text with metadata. Content holds
// either plaintext or an opaque base64 ciphertext blob depending on
// IsEncrypted; the flag is fixed at creation time and never changes for an
// existing record.
type Snippet struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Language    string    `json:"language,omitempty"`
	Tags        []string  `json:"tags"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	IsEncrypted bool      `json:"is_encrypted"`
}

// JoinTags renders tags in their canonical comma-joined storage form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SplitTags reverses JoinTags. An empty blob yields an empty slice.
func SplitTags(blob string) []string {
	if blob == "" {
		return []string{}
	}
	return strings.Split(blob, ",")
}

// ListFilter narrows a listing. Zero values mean "no constraint".
// Tags are combined with logical AND: every supplied tag must be present.
// Offset is only honored when Limit is positive.
type ListFilter struct {
	Search   string
	Language string
	Tags     []string
	Limit    int
	Offset   int
}

// Stats is a summary of the store contents.
type Stats struct {
	TotalSnippets     int            `json:"total_snippets"`
	Languages         map[string]int `json:"languages"`
	EncryptedSnippets int            `json:"encrypted_snippets"`
	EncryptionEnabled bool           `json:"encryption_enabled"`
}

// ExportFormat enumerates the supported export encodings.
type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportMarkdown ExportFormat = "markdown"
)

// ParseExportFormat normalizes a user-supplied format name. The second
// return value is false for unknown formats.
func ParseExportFormat(s string) (ExportFormat, bool) {
	switch strings.ToLower(s) {
	case "json":
		return ExportJSON, true
	case "md", "markdown":
		return ExportMarkdown, true
	default:
		return "", false
	}
}
