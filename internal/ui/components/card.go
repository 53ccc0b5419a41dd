// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/estatechat-tui/internal/config"
	"github.com/jeranaias/estatechat-tui/internal/ui/styles"
	"github.com/jeranaias/estatechat-tui/internal/util"
)

// =============================================================================
// PROPERTY CARD COMPONENT
// =============================================================================

// PropertyCard renders one featured listing. Prices are shown as given with
// a rupee prefix.
type PropertyCard struct {
	Listing  config.Listing
	Width    int
	Selected bool
	theme    *styles.Theme
}

// NewPropertyCard creates a card for l.
func NewPropertyCard(theme *styles.Theme, l config.Listing) *PropertyCard {
	return &PropertyCard{Listing: l, Width: 30, theme: theme}
}

// Price returns the display price.
func (c *PropertyCard) Price() string {
	return "₹ " + c.Listing.Price
}

// View renders the card.
func (c *PropertyCard) View() string {
	inner := c.Width - 4
	if inner < 10 {
		inner = 10
	}

	box := c.theme.Card
	if c.Selected {
		box = c.theme.CardSelected
	}

	lines := []string{
		c.theme.CardTitle.Render(util.Clip(c.Listing.Title, inner)),
		c.theme.CardMeta.Render(util.Clip(c.Listing.Location, inner)),
		c.theme.CardPrice.Render(c.Price()),
	}
	if c.Listing.Image != "" {
		lines = append(lines, c.theme.LinkStyle.Render(util.Clip(c.Listing.Image, inner)))
	}
	return box.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

// CardRow lays cards side by side, wrapping to new rows when width runs out.
func CardRow(cards []*PropertyCard, width int) string {
	if len(cards) == 0 {
		return ""
	}
	var rows []string
	var current []string
	used := 0
	for _, card := range cards {
		view := card.View()
		w := lipgloss.Width(view)
		if used > 0 && used+w+1 > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current, used = nil, 0
		}
		if used > 0 {
			current = append(current, " ")
			used++
		}
		current = append(current, view)
		used += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
