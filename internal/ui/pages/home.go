// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pages

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/estatechat-tui/internal/route"
	"github.com/jeranaias/estatechat-tui/internal/ui/components"
)

const (
	homeHeadline = "Find your next home with data, not guesswork."
	homeTagline  = "Ask about an area, compare localities or follow price growth over the years."
)

// HomeKeyMap holds the home screen bindings.
type HomeKeyMap struct {
	Left  key.Binding
	Right key.Binding
	Open  key.Binding
	Chat  key.Binding
}

// DefaultHomeKeyMap returns the home screen bindings.
func DefaultHomeKeyMap() HomeKeyMap {
	return HomeKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "analyze area"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c", "tab"),
			key.WithHelp("c", "open chat"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k HomeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Open, k.Chat}
}

// FullHelp implements help.KeyMap.
func (k HomeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right}, {k.Open, k.Chat}}
}

// Home is the landing screen.
type Home struct {
	deps     Deps
	selected int
	keys     HomeKeyMap
	width    int
	height   int
}

// NewHome creates the landing screen.
func NewHome(deps Deps) *Home {
	return &Home{deps: deps, keys: DefaultHomeKeyMap(), width: 80, height: 20}
}

// Init implements Page.
func (h *Home) Init() tea.Cmd { return nil }

// Update moves the card selection. Enter opens the full report of the
// selected listing's area.
func (h *Home) Update(msg tea.Msg) (Page, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}
	n := len(h.deps.Featured)
	switch {
	case key.Matches(km, h.keys.Left):
		if n > 0 {
			h.selected = (h.selected - 1 + n) % n
		}
	case key.Matches(km, h.keys.Right):
		if n > 0 {
			h.selected = (h.selected + 1) % n
		}
	case key.Matches(km, h.keys.Chat):
		return h, Navigate(route.Chat())
	case key.Matches(km, h.keys.Open):
		if area := h.selectedArea(); area != "" {
			return h, Navigate(route.FullReport(area))
		}
		return h, Navigate(route.Chat())
	}
	return h, nil
}

// selectedArea derives the area from the listing location ("Wakad, Pune").
func (h *Home) selectedArea() string {
	if h.selected >= len(h.deps.Featured) {
		return ""
	}
	loc := h.deps.Featured[h.selected].Location
	if i := strings.IndexByte(loc, ','); i >= 0 {
		loc = loc[:i]
	}
	return strings.ToLower(strings.TrimSpace(loc))
}

// View renders the page.
func (h *Home) View() string {
	t := h.deps.Theme
	var sb strings.Builder
	sb.WriteString(render(t, pageTitleStyle, homeHeadline))
	sb.WriteString("\n")
	sb.WriteString(homeTagline)
	sb.WriteString("\n\n")

	if len(h.deps.Featured) == 0 {
		sb.WriteString(render(t, emptyStyle, "No featured properties."))
		return sb.String()
	}

	sb.WriteString(render(t, sectionStyle, "Featured properties"))
	sb.WriteString("\n")
	cards := make([]*components.PropertyCard, len(h.deps.Featured))
	for i, l := range h.deps.Featured {
		cards[i] = components.NewPropertyCard(t, l)
		cards[i].Selected = i == h.selected
	}
	sb.WriteString(components.CardRow(cards, h.width))
	return sb.String()
}

// SetSize implements Page.
func (h *Home) SetSize(width, height int) {
	h.width, h.height = width, height
}

// Title implements Page.
func (h *Home) Title() string { return "Home" }

// Keys implements Page.
func (h *Home) Keys() help.KeyMap { return h.keys }

// Capturing implements Page.
func (h *Home) Capturing() bool { return false }
