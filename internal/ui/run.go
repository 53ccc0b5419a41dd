// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/config"
	"github.com/jeranaias/estatechat-tui/internal/logging"
	"github.com/jeranaias/estatechat-tui/internal/route"
	"github.com/jeranaias/estatechat-tui/internal/ui/pages"
	"github.com/jeranaias/estatechat-tui/internal/ui/styles"
)

// reloadDebounce collapses the burst of events an editor save produces.
const reloadDebounce = 300 * time.Millisecond

// Options configures Run.
type Options struct {
	Deps  pages.Deps
	Start route.Route

	// BackendURL is shown in the header.
	BackendURL string

	// ConfigPath is watched for changes when set; reloads update the known
	// area list and the featured listings.
	ConfigPath string

	// ThemeMode is used when Deps.Theme is nil.
	ThemeMode string
}

// Run starts the TUI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	logger := logging.OrNop(opts.Deps.Logger)
	if opts.Deps.Theme == nil {
		opts.Deps.Theme = styles.NewTheme(opts.ThemeMode)
	}
	if opts.Deps.Context == nil {
		opts.Deps.Context = ctx
	}

	m := New(opts.Deps, opts.Start, opts.BackendURL)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, reloadDebounce, func(cfg *config.Config, err error) {
			p.Send(ConfigReloadedMsg{Config: cfg, Err: err})
		})
		if err != nil {
			logger.Warn("config watch unavailable", zap.String("path", opts.ConfigPath), zap.Error(err))
		} else {
			w.Start()
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
