// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/estatechat-tui/internal/ui/styles"
)

// init matches lipgloss to the terminal, so piped output stays plain.
func init() {
	lipgloss.SetColorProfile(ColorProfile())
}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for report headings.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Cyan)

	// SectionStyle is used for headings within a report.
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Purple)

	// UserStyle labels the user's lines in chat output.
	UserStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Cyan)

	// BotStyle labels the bot's lines in chat output.
	BotStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Purple)

	// ActionStyle renders action buttons as text.
	ActionStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// DimStyle is used for timestamps and hints.
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)

// RenderSeparator renders a horizontal rule of width w.
func RenderSeparator(w int) string {
	if w <= 0 {
		w = 60
	}
	return DimStyle.Render(strings.Repeat("─", w))
}
