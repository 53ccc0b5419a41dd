// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/estatechat-tui/internal/api"
	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/config"
	"github.com/jeranaias/estatechat-tui/internal/route"
	"github.com/jeranaias/estatechat-tui/internal/storage"
	"github.com/jeranaias/estatechat-tui/internal/ui/pages"
	"github.com/jeranaias/estatechat-tui/internal/ui/styles"
)

// offlineBackend fails every request.
type offlineBackend struct{}

var errOffline = errors.New("offline")

func (offlineBackend) Query(context.Context, string) (*api.QueryResponse, error) {
	return nil, errOffline
}

func (offlineBackend) Compare(context.Context, []string) (*api.ComparisonResult, error) {
	return nil, errOffline
}

func (offlineBackend) PriceGrowth(context.Context, string) (*api.GrowthResult, error) {
	return nil, errOffline
}

func newTestModel(t *testing.T, start route.Route) *Model {
	t.Helper()
	history := chat.NewStoreHistory(storage.NewMemoryStore(), config.HistoryKey)
	session := chat.NewSession(chat.NewLog(history, nil), offlineBackend{}, config.DefaultAreas, nil)
	session.Start(context.Background())

	m := New(pages.Deps{
		Theme:    styles.NewTheme(styles.ModeDark),
		Backend:  offlineBackend{},
		Session:  session,
		Featured: config.Default().UI.Featured,
	}, start, "http://127.0.0.1:8000")
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func TestModel_NavigateAndBack(t *testing.T) {
	m := newTestModel(t, route.Home())
	assert.Equal(t, route.PageHome, m.Route().Page)

	m.Update(pages.NavigateMsg{Route: route.PriceGrowth("wakad")})
	assert.Equal(t, route.PriceGrowth("wakad"), m.Route())
	assert.Equal(t, "Price Growth", m.Page().Title())

	m.Update(pages.BackMsg{})
	assert.Equal(t, route.PageHome, m.Route().Page)

	// Back from an empty history stays home.
	m.Update(pages.BackMsg{})
	assert.Equal(t, route.PageHome, m.Route().Page)
}

func TestModel_BackFromDeepLinkGoesHome(t *testing.T) {
	m := newTestModel(t, route.FullReport("wakad"))
	m.Update(pages.BackMsg{})
	assert.Equal(t, route.PageHome, m.Route().Page)
}

func TestModel_QuitKey(t *testing.T) {
	m := newTestModel(t, route.Home())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_QuitKeyTypesIntoChat(t *testing.T) {
	m := newTestModel(t, route.Chat())
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, route.PageChat, m.Route().Page)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_StatusShownInFooter(t *testing.T) {
	m := newTestModel(t, route.Home())
	m.Update(pages.StatusMsg{Text: "Saved wakad.csv"})
	assert.Contains(t, m.View(), "Saved wakad.csv")

	m.Update(pages.NavigateMsg{Route: route.Chat()})
	assert.NotContains(t, m.View(), "Saved wakad.csv")
}

func TestModel_ConfigReloadUpdatesKnownAreas(t *testing.T) {
	m := newTestModel(t, route.Home())

	cfg := config.Default()
	cfg.Areas.Known = []string{"viman nagar"}
	m.Update(ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, []string{"viman nagar"}, m.deps.Session.KnownAreas())
	assert.Contains(t, m.View(), "Configuration reloaded")

	m.Update(ConfigReloadedMsg{Err: errors.New("bad toml")})
	assert.Equal(t, []string{"viman nagar"}, m.deps.Session.KnownAreas())
	assert.Contains(t, m.View(), "Config reload failed")
}

func TestModel_ViewHasHeader(t *testing.T) {
	m := newTestModel(t, route.Chat())
	view := m.View()
	assert.Contains(t, view, "estatechat")
	assert.Contains(t, view, "Chat")
	assert.Contains(t, view, chat.GreetingHello)
}
