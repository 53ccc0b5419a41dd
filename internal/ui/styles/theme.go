// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER AND FOOTER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderBrand lipgloss.Style
	Footer      lipgloss.Style
	ShortcutKey lipgloss.Style
	ShortcutDsc lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble   lipgloss.Style
	BotBubble    lipgloss.Style
	SenderLabel  lipgloss.Style
	Timestamp    lipgloss.Style
	Action       lipgloss.Style
	ActionActive lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPrompt      lipgloss.Style
	InputPlaceholder lipgloss.Style

	// ==========================================================================
	// REPORT STYLES
	// ==========================================================================

	PageTitle    lipgloss.Style
	SectionTitle lipgloss.Style
	Summary      lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	CardMeta     lipgloss.Style
	CardPrice    lipgloss.Style
	CardSelected lipgloss.Style
	ChartAxis    lipgloss.Style
	ChartLabel   lipgloss.Style
	Empty        lipgloss.Style

	// ==========================================================================
	// STATUS STYLES
	// ==========================================================================

	Spinner      lipgloss.Style
	LoadingText  lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	LinkStyle    lipgloss.Style
}

// NewTheme creates a theme for mode ("auto", "dark" or "light"). Auto asks
// the terminal for its background.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case ModeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// SetSize records the terminal size.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GlamourStyle returns the glamour standard style matching the background.
func (t *Theme) GlamourStyle() string {
	if t.ColorProfile == termenv.Ascii {
		return "notty"
	}
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.HeaderBrand = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.Footer = lipgloss.NewStyle().Foreground(TextMuted).Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.ShortcutDsc = lipgloss.NewStyle().Foreground(TextSecondary)

	// Message bubbles
	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)
	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1)
	t.SenderLabel = lipgloss.NewStyle().Bold(true).Foreground(TextSecondary)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted)
	t.Action = lipgloss.NewStyle().
		Foreground(Cyan).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)
	t.ActionActive = t.Action.
		Bold(true).
		Background(SelectionBg).
		BorderForeground(Purple)

	// Input
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.InputPlaceholder = lipgloss.NewStyle().Foreground(TextMuted)

	// Reports
	t.PageTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary).MarginBottom(1)
	t.SectionTitle = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.Summary = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderRight(false).
		BorderTop(false).
		BorderBottom(false).
		BorderForeground(Purple).
		PaddingLeft(1)
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.CardSelected = t.Card.BorderForeground(Cyan)
	t.CardTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.CardMeta = lipgloss.NewStyle().Foreground(TextSecondary)
	t.CardPrice = lipgloss.NewStyle().Bold(true).Foreground(Amber)
	t.ChartAxis = lipgloss.NewStyle().Foreground(TextMuted)
	t.ChartLabel = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Empty = lipgloss.NewStyle().Italic(true).Foreground(TextMuted)

	// Status
	t.Spinner = lipgloss.NewStyle().Foreground(Purple)
	t.LoadingText = lipgloss.NewStyle().Foreground(Amber)
	t.SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(Emerald)
	t.ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(Rose)
	t.WarningStyle = lipgloss.NewStyle().Foreground(Amber)
	t.InfoStyle = lipgloss.NewStyle().Foreground(Cyan)
	t.LinkStyle = lipgloss.NewStyle().Underline(true).Foreground(Cyan)
}
