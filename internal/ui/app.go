// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/config"
	"github.com/jeranaias/estatechat-tui/internal/logging"
	"github.com/jeranaias/estatechat-tui/internal/route"
	"github.com/jeranaias/estatechat-tui/internal/ui/components"
	"github.com/jeranaias/estatechat-tui/internal/ui/pages"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a config file change to the running program.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Model is the root Bubble Tea model.
type Model struct {
	deps pages.Deps

	page    pages.Page
	current route.Route
	// history holds the routes behind the current one, for esc.
	history []route.Route

	header *components.Header
	footer *components.Footer
	keys   KeyMap
	logger *zap.Logger

	width  int
	height int
}

// New creates the root model with start as the first page.
func New(deps pages.Deps, start route.Route, backendURL string) *Model {
	header := components.NewHeader(deps.Theme)
	header.Backend = backendURL

	m := &Model{
		deps:   deps,
		header: header,
		footer: components.NewFooter(deps.Theme),
		keys:   DefaultKeyMap(),
		logger: logging.OrNop(deps.Logger).With(zap.String("component", "ui")),
		width:  80,
		height: 24,
	}
	m.open(start)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.page.Init()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.deps.Theme != nil {
			m.deps.Theme.SetSize(msg.Width, msg.Height)
		}
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}

	case pages.NavigateMsg:
		m.history = append(m.history, m.current)
		m.footer.SetStatus("", false)
		return m, m.open(msg.Route)

	case pages.BackMsg:
		prev := route.Home()
		if n := len(m.history); n > 0 {
			prev = m.history[n-1]
			m.history = m.history[:n-1]
		} else if m.current.Page == route.PageHome {
			return m, nil
		}
		m.footer.SetStatus("", false)
		return m, m.open(prev)

	case pages.StatusMsg:
		m.footer.SetStatus(msg.Text, msg.IsErr)
		m.layout()
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg)
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.page, cmd = m.page.Update(msg)
	return m, cmd
}

// handleGlobalKey handles keys that work everywhere. Letter shortcuts are
// left to pages that take text input.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Home):
		if m.current.Page == route.PageHome {
			return nil, true
		}
		m.history = append(m.history, m.current)
		return m.open(route.Home()), true
	}
	if m.page.Capturing() {
		return nil, false
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keys.Help):
		m.footer.ToggleFull()
		m.layout()
		return nil, true
	}
	return nil, false
}

// open replaces the current page. Report pages fetch on open.
func (m *Model) open(r route.Route) tea.Cmd {
	m.logger.Debug("open", zap.String("route", r.String()))
	m.current = r
	m.page = pages.New(r, m.deps)
	m.header.Title = m.page.Title()
	m.layout()
	return m.page.Init()
}

func (m *Model) applyConfig(msg ConfigReloadedMsg) {
	if msg.Err != nil {
		m.logger.Warn("config reload failed", zap.Error(msg.Err))
		m.footer.SetStatus("Config reload failed", true)
		return
	}
	if m.deps.Session != nil {
		m.deps.Session.SetKnownAreas(msg.Config.Areas.Known)
	}
	m.deps.Featured = msg.Config.UI.Featured
	m.footer.SetStatus("Configuration reloaded", false)
}

// layout hands the page whatever the header and footer leave over.
func (m *Model) layout() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	used := lipgloss.Height(m.header.View()) + lipgloss.Height(m.footer.View(m.helpKeys()))
	m.page.SetSize(m.width-2, max(m.height-used, 3))
}

func (m *Model) helpKeys() pageKeys {
	return pageKeys{page: m.page.Keys(), global: m.keys}
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.header.View()
	footer := m.footer.View(m.helpKeys())

	body := m.page.View()
	if m.deps.Theme != nil {
		body = m.deps.Theme.Container.Render(body)
	}
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Route returns the route of the open page.
func (m *Model) Route() route.Route { return m.current }

// Page returns the open page.
func (m *Model) Page() pages.Page { return m.page }
