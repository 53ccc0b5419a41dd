// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders backend summaries, which often carry bullet lists and
// bold text. Rendering failures fall back to the raw text.
type Markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdown creates a renderer for a glamour standard style ("dark",
// "light", "notty") wrapping at width.
func NewMarkdown(style string, width int) *Markdown {
	m := &Markdown{style: style}
	m.SetWidth(width)
	return m
}

// SetWidth rebuilds the renderer for a new wrap width.
func (m *Markdown) SetWidth(width int) {
	if width < 20 {
		width = 20
	}
	if width == m.width && m.renderer != nil {
		return
	}
	m.width = width
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.renderer = nil
		return
	}
	m.renderer = r
}

// Render renders text, trimming glamour's surrounding blank lines.
func (m *Markdown) Render(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if m.renderer == nil {
		return text
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
