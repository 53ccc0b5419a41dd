// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the bindings that work on every page.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	Home      key.Binding
}

// DefaultKeyMap returns the global bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Home: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "home"),
		),
	}
}

// pageKeys merges a page's bindings with the global ones for the footer.
type pageKeys struct {
	page   help.KeyMap
	global KeyMap
}

func (k pageKeys) ShortHelp() []key.Binding {
	return append(k.page.ShortHelp(), k.global.Help, k.global.ForceQuit)
}

func (k pageKeys) FullHelp() [][]key.Binding {
	return append(k.page.FullHelp(), []key.Binding{k.global.Home, k.global.Quit, k.global.ForceQuit})
}
