// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/estatechat-tui/internal/ui/styles"
	"github.com/jeranaias/estatechat-tui/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the one-line title bar: brand, page title, backend address.
type Header struct {
	Title   string
	Backend string
	Width   int
	theme   *styles.Theme
}

// NewHeader creates a Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{Width: 80, theme: theme}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the header.
func (h *Header) View() string {
	width := h.Width
	if width < 40 {
		width = 40
	}

	brand := h.theme.HeaderBrand.Render("🏠 estatechat")
	title := ""
	if h.Title != "" {
		title = h.theme.HeaderTitle.Render(" · " + h.Title)
	}
	left := brand + title

	right := ""
	if h.Backend != "" {
		right = h.theme.Timestamp.Render(util.Clip(h.Backend, width/3))
	}

	gap := width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return h.theme.Header.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// =============================================================================
// FOOTER COMPONENT
// =============================================================================

// Footer shows a status line above the key help.
type Footer struct {
	Status string
	IsErr  bool
	Width  int
	help   help.Model
	theme  *styles.Theme
}

// NewFooter creates a Footer.
func NewFooter(theme *styles.Theme) *Footer {
	h := help.New()
	h.Styles.ShortKey = theme.ShortcutKey
	h.Styles.ShortDesc = theme.ShortcutDsc
	h.Styles.FullKey = theme.ShortcutKey
	h.Styles.FullDesc = theme.ShortcutDsc
	return &Footer{Width: 80, help: h, theme: theme}
}

// SetWidth updates the footer width.
func (f *Footer) SetWidth(width int) {
	f.Width = width
	f.help.Width = width
}

// SetStatus sets the status line. Errors are shown with an indicator so
// they do not rely on color.
func (f *Footer) SetStatus(status string, isErr bool) {
	f.Status = status
	f.IsErr = isErr
}

// ToggleFull switches between the short and full key help.
func (f *Footer) ToggleFull() {
	f.help.ShowAll = !f.help.ShowAll
}

// View renders the footer for keys.
func (f *Footer) View(keys help.KeyMap) string {
	var lines []string
	if f.Status != "" {
		if f.IsErr {
			lines = append(lines, f.theme.ErrorStyle.Render(styles.StatusIndicators.Error+" "+f.Status))
		} else {
			lines = append(lines, f.theme.InfoStyle.Render(f.Status))
		}
	}
	lines = append(lines, f.help.View(keys))
	return f.theme.Footer.Width(f.Width).Render(strings.Join(lines, "\n"))
}
