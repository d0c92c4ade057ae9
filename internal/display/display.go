// Package display renders snippet listings, detail views, and status
// messages for the terminal. This is presentation glue over structured
// results coming out of the service layer.
package display

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"snippy/internal/models"
)

// StyleConfig defines visual styles.
type StyleConfig struct {
	TitleColor   lipgloss.Color
	SubtleColor  lipgloss.Color
	ErrorColor   lipgloss.Color
	SuccessColor lipgloss.Color
	WarningColor lipgloss.Color
	LangColor    lipgloss.Color
	TagColor     lipgloss.Color
}

// DefaultStyleConfig returns the default style configuration.
func DefaultStyleConfig() *StyleConfig {
	return &StyleConfig{
		TitleColor:   lipgloss.Color("10"),  // green
		SubtleColor:  lipgloss.Color("241"), // grey
		ErrorColor:   lipgloss.Color("9"),   // red
		SuccessColor: lipgloss.Color("10"),  // green
		WarningColor: lipgloss.Color("11"),  // yellow
		LangColor:    lipgloss.Color("12"),  // blue
		TagColor:     lipgloss.Color("11"),  // yellow
	}
}

// Renderer writes formatted output to w.
type Renderer struct {
	w     io.Writer
	style *StyleConfig

	success lipgloss.Style
	errs    lipgloss.Style
	warning lipgloss.Style
	subtle  lipgloss.Style
	title   lipgloss.Style
	lang    lipgloss.Style
	tags    lipgloss.Style
}

// NewRenderer creates a renderer with default styles.
func NewRenderer(w io.Writer) *Renderer {
	cfg := DefaultStyleConfig()
	return &Renderer{
		w:       w,
		style:   cfg,
		success: lipgloss.NewStyle().Foreground(cfg.SuccessColor),
		errs:    lipgloss.NewStyle().Foreground(cfg.ErrorColor),
		warning: lipgloss.NewStyle().Foreground(cfg.WarningColor),
		subtle:  lipgloss.NewStyle().Foreground(cfg.SubtleColor),
		title:   lipgloss.NewStyle().Foreground(cfg.TitleColor).Bold(true),
		lang:    lipgloss.NewStyle().Foreground(cfg.LangColor),
		tags:    lipgloss.NewStyle().Foreground(cfg.TagColor),
	}
}

func (r *Renderer) Success(msg string) {
	fmt.Fprintln(r.w, r.success.Render("✓ "+msg))
}

func (r *Renderer) Error(msg string) {
	fmt.Fprintln(r.w, r.errs.Render("✗ "+msg))
}

func (r *Renderer) Warning(msg string) {
	fmt.Fprintln(r.w, r.warning.Render("! "+msg))
}

func (r *Renderer) Info(msg string) {
	fmt.Fprintln(r.w, msg)
}

// SnippetList renders snippets as a compact table. With verbose set, a
// one-line content preview is appended per row.
func (r *Renderer) SnippetList(rows []models.Snippet, verbose bool) {
	if len(rows) == 0 {
		r.Warning("No snippets found.")
		return
	}

	fmt.Fprintf(r.w, "%-5s %-32s %-10s %-20s %s\n",
		"ID", "Title", "Language", "Tags", "Created")
	fmt.Fprintln(r.w, r.subtle.Render(strings.Repeat("─", 86)))

	for _, s := range rows {
		lang := s.Language
		if lang == "" {
			lang = "text"
		}
		fmt.Fprintf(r.w, "%-5d %-32s %-10s %-20s %s\n",
			s.ID,
			truncate(s.Title, 30),
			r.lang.Render(truncate(lang, 10)),
			r.tags.Render(truncate(strings.Join(s.Tags, ","), 20)),
			r.subtle.Render(s.CreatedAt.Format("2006-01-02")))

		if verbose {
			fmt.Fprintf(r.w, "      %s\n", r.subtle.Render(truncate(firstLine(s.Content), 70)))
		}
	}
}

// SnippetDetail renders a single snippet with its full content.
func (r *Renderer) SnippetDetail(s *models.Snippet) {
	fmt.Fprintf(r.w, "%s %s\n", r.subtle.Render(fmt.Sprintf("#%d", s.ID)), r.title.Render(s.Title))

	if s.Description != "" {
		fmt.Fprintln(r.w, s.Description)
	}

	lang := s.Language
	if lang == "" {
		lang = "text"
	}
	meta := fmt.Sprintf("language: %s  tags: %s  created: %s",
		lang, strings.Join(s.Tags, ","), s.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(r.w, r.subtle.Render(meta))

	fmt.Fprintln(r.w, r.subtle.Render(strings.Repeat("─", 60)))
	fmt.Fprintln(r.w, s.Content)
	fmt.Fprintln(r.w, r.subtle.Render(strings.Repeat("─", 60)))
}

// Stats renders the store summary.
func (r *Renderer) Stats(stats *models.Stats) {
	fmt.Fprintln(r.w, r.title.Render("Snippet store"))
	fmt.Fprintf(r.w, "Total snippets:     %d\n", stats.TotalSnippets)
	fmt.Fprintf(r.w, "Encrypted snippets: %d\n", stats.EncryptedSnippets)

	state := "disabled"
	if stats.EncryptionEnabled {
		state = "enabled"
	}
	fmt.Fprintf(r.w, "Encryption:         %s\n", state)

	if len(stats.Languages) > 0 {
		fmt.Fprintln(r.w, "Languages:")
		for lang, n := range stats.Languages {
			fmt.Fprintf(r.w, "  %-12s %d\n", lang, n)
		}
	}
}

// truncate shortens s to max characters. It counts runes, not bytes, so a
// multi-byte title is never cut mid-sequence.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max]) + "…"
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
