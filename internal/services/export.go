package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"snippy/internal/common"
	"snippy/internal/models"
)

// Export renders the full record set in the requested format, with content
// decrypted for the caller's key where it validates. Unknown formats are a
// reported error, not a crash.
func (s *SnippetService) Export(ctx context.Context, format models.ExportFormat, key []byte) (string, error) {
	rows, err := s.List(ctx, models.ListFilter{}, key)
	if err != nil {
		return "", err
	}

	switch format {
	case models.ExportJSON:
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal snippets: %w", err)
		}
		return string(data), nil

	case models.ExportMarkdown:
		return renderMarkdown(rows), nil

	default:
		return "", common.ErrInvalidExportFormat
	}
}

// renderMarkdown produces a human-readable document: a header followed by
// one section per snippet with its metadata and a fenced code block.
func renderMarkdown(rows []models.Snippet) string {
	var b strings.Builder

	b.WriteString("# Code Snippets\n\n")
	fmt.Fprintf(&b, "Exported on %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	for _, s := range rows {
		fmt.Fprintf(&b, "## %s\n\n", s.Title)

		if s.Description != "" {
			fmt.Fprintf(&b, "%s\n\n", s.Description)
		}

		lang := s.Language
		if lang == "" {
			lang = "text"
		}
		tags := "None"
		if len(s.Tags) > 0 {
			tags = strings.Join(s.Tags, ", ")
		}
		fmt.Fprintf(&b, "**Language:** %s  \n", lang)
		fmt.Fprintf(&b, "**Tags:** %s  \n", tags)
		fmt.Fprintf(&b, "**Created:** %s  \n\n", s.CreatedAt.Format("2006-01-02 15:04:05"))

		fmt.Fprintf(&b, "```%s\n%s\n```\n\n", s.Language, s.Content)
		b.WriteString("---\n\n")
	}

	return b.String()
}
