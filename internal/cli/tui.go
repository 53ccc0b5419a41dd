// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/route"
	"github.com/jeranaias/estatechat-tui/internal/ui"
	"github.com/jeranaias/estatechat-tui/internal/ui/pages"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the full screen UI (the default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, route.Home())
		},
	}
}

func newOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Start the UI on a screen, e.g. /full-report?area=wakad",
		Long: `Open starts the full screen UI on the screen a path names:

  /                          home
  /chat                      chat
  /full-report?area=<a>      full market report
  /compare?areas=<a>,<b>     area comparison
  /price-growth?area=<a>     price growth

Pressing esc on a screen opened this way returns to home.`,
		Example: `  estatechat open /chat
  estatechat open "/compare?areas=wakad,baner"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			r, err := route.Parse(path)
			if err != nil {
				return &UsageError{Reason: err.Error(), Example: "estatechat open /full-report?area=wakad"}
			}
			return runTUI(cmd, r)
		},
	}
}

// runTUI opens the chat session and runs the full screen UI on r.
func runTUI(cmd *cobra.Command, r route.Route) error {
	if err := RequiresTTY("the full screen UI"); err != nil {
		return err
	}
	env := getEnv(cmd)
	ctx := cmd.Context()

	session, closeFn, err := env.openSession(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	format := env.cfg.Export.Format
	if env.flags.format != "" {
		format = env.format()
	}

	env.logger.Info("tui started", zap.String("route", r.String()))
	return ui.Run(ctx, ui.Options{
		Deps: pages.Deps{
			Backend:  env.client,
			Session:  session,
			Featured: env.cfg.UI.Featured,
			Export:   env.exportOptions(),
			Format:   format,
			Logger:   env.logger,
			Context:  ctx,
		},
		Start:      r,
		BackendURL: env.client.BaseURL(),
		ConfigPath: env.configPath,
		ThemeMode:  env.cfg.UI.Theme,
	})
}
