// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pages

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/api"
	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/config"
	"github.com/jeranaias/estatechat-tui/internal/export"
	"github.com/jeranaias/estatechat-tui/internal/logging"
	"github.com/jeranaias/estatechat-tui/internal/route"
	"github.com/jeranaias/estatechat-tui/internal/ui/styles"
)

// =============================================================================
// PAGE INTERFACE
// =============================================================================

// Page is one screen of the TUI.
type Page interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Page, tea.Cmd)
	View() string

	// SetSize gives the page the area between header and footer.
	SetSize(width, height int)
	// Title is shown in the header.
	Title() string
	// Keys lists the page's bindings for the footer help.
	Keys() help.KeyMap
	// Capturing reports whether the page consumes plain letter keys, so the
	// root model must not treat them as global shortcuts.
	Capturing() bool
}

// Backend is the part of api.Client the pages call.
type Backend interface {
	Query(ctx context.Context, query string) (*api.QueryResponse, error)
	Compare(ctx context.Context, areas []string) (*api.ComparisonResult, error)
	PriceGrowth(ctx context.Context, area string) (*api.GrowthResult, error)
}

// Deps is what pages are built from.
type Deps struct {
	Theme    *styles.Theme
	Backend  Backend
	Session  *chat.Session
	Featured []config.Listing

	// Export configures the 'e', 'x' and 'p' downloads. Format is the table
	// format used by 'e'.
	Export *export.Options
	Format string

	Logger *zap.Logger

	// Context bounds every request. Nil means context.Background().
	Context context.Context
}

func (d Deps) ctx() context.Context {
	if d.Context == nil {
		return context.Background()
	}
	return d.Context
}

func (d Deps) logger() *zap.Logger {
	return logging.OrNop(d.Logger)
}

func (d Deps) exportOptions() *export.Options {
	if d.Export == nil {
		return export.DefaultOptions()
	}
	return d.Export
}

// =============================================================================
// NAVIGATION MESSAGES
// =============================================================================

// NavigateMsg asks the root model to open a route.
type NavigateMsg struct {
	Route route.Route
}

// BackMsg asks the root model to return to the previous page.
type BackMsg struct{}

// StatusMsg sets the footer status line.
type StatusMsg struct {
	Text  string
	IsErr bool
}

// Navigate returns a command that opens r.
func Navigate(r route.Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: r} }
}

// Back returns a command that closes the current page.
func Back() tea.Cmd {
	return func() tea.Msg { return BackMsg{} }
}

// Status returns a command that sets the footer status line.
func Status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text, IsErr: isErr} }
}

// =============================================================================
// FACTORY
// =============================================================================

var pageSeq atomic.Int64

// nextID tags a page instance so late fetch results can be matched to it.
func nextID() int64 {
	return pageSeq.Add(1)
}

// New opens the page for r.
func New(r route.Route, deps Deps) Page {
	switch r.Page {
	case route.PageChat:
		return NewChat(deps)
	case route.PageFullReport:
		return NewFullReport(deps, r.Area())
	case route.PageComparison:
		return NewComparison(deps, r.Areas)
	case route.PagePriceGrowth:
		return NewPriceGrowth(deps, r.Area())
	default:
		return NewHome(deps)
	}
}
