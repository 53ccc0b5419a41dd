// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/api"
	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/config"
	"github.com/jeranaias/estatechat-tui/internal/logging"
	"github.com/jeranaias/estatechat-tui/internal/route"
	"github.com/jeranaias/estatechat-tui/internal/storage"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// =============================================================================
// GLOBAL FLAGS AND ENVIRONMENT
// =============================================================================

// flags holds the persistent flags shared by all commands.
type flags struct {
	configPath string
	baseURL    string
	format     string
	out        string
	chart      bool
	verbose    bool
}

// appEnv is what a command runs with: loaded config, logger and backend
// client. It is built once per invocation in PersistentPreRunE.
type appEnv struct {
	cfg        *config.Config
	configPath string
	logger     *zap.Logger
	client     *api.Client
	flags      *flags
}

type envKey struct{}

// getEnv retrieves the environment from the command context.
func getEnv(cmd *cobra.Command) *appEnv {
	if e, ok := cmd.Context().Value(envKey{}).(*appEnv); ok {
		return e
	}
	cfg := config.Default()
	return &appEnv{
		cfg:    cfg,
		logger: zap.NewNop(),
		client: api.NewClientWithConfig(&api.ClientConfig{BaseURL: cfg.Backend.BaseURL, Timeout: cfg.Timeout()}),
		flags:  &flags{},
	}
}

// loadEnv reads the config, applies flag overrides and builds the logger and
// client.
func loadEnv(f *flags) (*appEnv, error) {
	var (
		cfg  *config.Config
		err  error
		path = f.configPath
	)
	if path != "" {
		cfg, err = config.LoadFromPath(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.Load()
		if cfg == nil {
			return nil, err
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		path, _ = config.ConfigPathTOML()
	}

	if f.baseURL != "" {
		cfg.Backend.BaseURL = f.baseURL
	}
	if f.out != "" {
		cfg.Export.Dir = f.out
	}

	logOpts := logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if f.verbose {
		logOpts = logging.Options{Level: "debug", Format: "console", Path: logging.Stderr}
	} else if logOpts.Path, err = cfg.LogPath(); err != nil {
		return nil, err
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		// Logging is never a reason to fail a command.
		logger = zap.NewNop()
	}

	return &appEnv{
		cfg:        cfg,
		configPath: path,
		logger:     logger,
		client: api.NewClientWithConfig(&api.ClientConfig{
			BaseURL: cfg.Backend.BaseURL,
			Timeout: cfg.Timeout(),
			Logger:  logger,
		}),
		flags: f,
	}, nil
}

// format returns the --format flag, defaulting to a table.
func (e *appEnv) format() string {
	if f := strings.ToLower(strings.TrimSpace(e.flags.format)); f != "" {
		return f
	}
	return "table"
}

// openHistory opens the configured history store. The returned func closes
// it.
func (e *appEnv) openHistory() (*chat.StoreHistory, func(), error) {
	path, err := e.cfg.HistoryPath()
	if err != nil {
		return nil, nil, err
	}
	if e.cfg.History.Backend != "memory" {
		if err := config.EnsureConfigDir(); err != nil {
			return nil, nil, err
		}
	}
	store, err := storage.Open(e.cfg.History.Backend, path)
	if err != nil {
		return nil, nil, fmt.Errorf("open history: %w", err)
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			e.logger.Warn("close history store", zap.Error(err))
		}
	}
	return chat.NewStoreHistory(store, e.cfg.History.Key), closeFn, nil
}

// openSession opens the history and a chat session over it, loading saved
// messages or greeting.
func (e *appEnv) openSession(ctx context.Context) (*chat.Session, func(), error) {
	history, closeFn, err := e.openHistory()
	if err != nil {
		return nil, nil, err
	}
	log := chat.NewLog(history, e.logger)
	session := chat.NewSession(log, e.client, e.cfg.Areas.Known, e.logger)
	session.Start(ctx)
	return session, closeFn, nil
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// runState is shared between the command tree and Execute.
type runState struct {
	flags flags
	env   *appEnv
}

// NewRootCmd creates the estatechat command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&runState{})
}

func newRootCmd(state *runState) *cobra.Command {
	f := &state.flags

	rootCmd := &cobra.Command{
		Use:   "estatechat",
		Short: "Real-estate market chat for the terminal",
		Long: `estatechat asks a real-estate analysis backend about localities and shows
the answers as chat replies, reports, comparisons and price-growth series.

Run without a subcommand to start the full screen UI.`,
		Version: Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			env, err := loadEnv(f)
			if err != nil {
				return err
			}
			state.env = env
			cmd.SetContext(context.WithValue(cmd.Context(), envKey{}, env))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, route.Home())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default: ~/.estatechat/config.toml)")
	pf.StringVar(&f.baseURL, "base-url", "", "backend base URL (overrides config)")
	pf.StringVarP(&f.format, "format", "f", "", "output format: table|json|csv|md|xlsx")
	pf.StringVarP(&f.out, "out", "o", "", "directory for downloaded files (overrides export.dir)")
	pf.BoolVar(&f.chart, "chart", false, "also save the chart as PNG")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log to stderr at debug level")

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "csv", "md", "xlsx"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(
		newTUICommand(),
		newOpenCommand(),
		newAskCommand(),
		newQueryCommand(),
		newReportCommand(),
		newCompareCommand(),
		newGrowthCommand(),
		newChatCommand(),
		newHistoryCommand(),
		newConfigCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	state := &runState{}
	err := newRootCmd(state).ExecuteContext(ctx)
	if state.env != nil {
		_ = state.env.logger.Sync()
	}
	if err != nil {
		displayError(os.Stderr, err)
	}
	return ExitCode(err)
}
