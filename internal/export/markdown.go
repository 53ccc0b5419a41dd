// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/report"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter writes the chat log, or a table, as Markdown.
type MarkdownExporter struct {
	// IncludeMetadata adds a YAML front matter block.
	IncludeMetadata bool
	// IncludeTimestamps adds the time to each message heading.
	IncludeTimestamps bool

	now func() time.Time
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{IncludeMetadata: true, IncludeTimestamps: true, now: time.Now}
}

// Export converts the chat log to Markdown.
func (e *MarkdownExporter) Export(msgs []chat.Message) ([]byte, error) {
	if len(msgs) == 0 {
		return nil, ErrNoData
	}

	var sb strings.Builder

	if e.IncludeMetadata {
		sb.WriteString("---\n")
		sb.WriteString("title: Chat history\n")
		sb.WriteString(fmt.Sprintf("messages: %d\n", len(msgs)))
		sb.WriteString(fmt.Sprintf("started: %s\n", msgs[0].Time.Format(time.RFC3339)))
		sb.WriteString(fmt.Sprintf("exported: %s\n", e.now().Format(time.RFC3339)))
		sb.WriteString("generator: estatechat\n")
		sb.WriteString("---\n\n")
	}

	sb.WriteString("# Chat history\n\n")

	for i, msg := range msgs {
		label := msg.Sender.DisplayName()
		if e.IncludeTimestamps && !msg.Time.IsZero() {
			sb.WriteString(fmt.Sprintf("### %s <sub>%s</sub>\n\n", label, msg.Time.Local().Format("15:04:05")))
		} else {
			sb.WriteString(fmt.Sprintf("### %s\n\n", label))
		}

		if msg.Action != nil {
			sb.WriteString(fmt.Sprintf("[%s](%s)\n\n", escapeMarkdown(msg.Action.Label), msg.Action.Route()))
		} else {
			sb.WriteString(strings.TrimSpace(msg.Text))
			sb.WriteString("\n\n")
		}

		if i < len(msgs)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return []byte(sb.String()), nil
}

// Table renders t as a GitHub-flavored Markdown table.
func (e *MarkdownExporter) Table(t report.Table) string {
	if len(t.Columns) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("| " + strings.Join(escapeCells(t.Columns), " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat(" --- |", len(t.Columns)) + "\n")
	for _, row := range t.Strings() {
		sb.WriteString("| " + strings.Join(escapeCells(row), " | ") + " |\n")
	}
	return sb.String()
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes characters that would break link text.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		c = strings.ReplaceAll(c, "|", "\\|")
		out[i] = strings.ReplaceAll(c, "\n", " ")
	}
	return out
}
