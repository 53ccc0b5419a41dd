// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/export"
)

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show, export or clear the saved conversation",
	}
	cmd.AddCommand(newHistoryShowCommand(), newHistoryExportCommand(), newHistoryClearCommand())
	return cmd
}

// loadHistory returns the saved messages. No saved conversation is
// chat.ErrNoHistory.
func loadHistory(cmd *cobra.Command) ([]chat.Message, error) {
	history, closeFn, err := getEnv(cmd).openHistory()
	if err != nil {
		return nil, err
	}
	defer closeFn()
	msgs, err := history.Load(cmd.Context())
	if err == nil && len(msgs) == 0 {
		err = chat.ErrNoHistory
	}
	return msgs, err
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msgs, err := loadHistory(cmd)
			if errors.Is(err, chat.ErrNoHistory) {
				fmt.Fprintln(cmd.OutOrStdout(), DimStyle.Render("No saved conversation."))
				return nil
			}
			if err != nil {
				return err
			}
			if getEnv(cmd).format() == "json" {
				return NewJSONResponse("history show", msgs).Write(cmd.OutOrStdout())
			}
			printMessages(cmd.OutOrStdout(), msgs)
			return nil
		},
	}
}

func newHistoryExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Save the conversation as Markdown (default) or JSON",
		Example: `  estatechat history export
  estatechat history export --format json -o ./downloads`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := getEnv(cmd)

			var exporter export.TranscriptExporter
			switch env.flags.format {
			case "", "md", "markdown":
				exporter = export.NewMarkdownExporter()
			case "json":
				exporter = export.NewJSONExporter().Transcript()
			default:
				return &UsageError{Reason: fmt.Sprintf("history export supports md and json, not %q", env.flags.format)}
			}

			msgs, err := loadHistory(cmd)
			if err != nil {
				return &CommandError{Command: "history export", Reason: "nothing to export", Err: err}
			}
			path, err := export.WriteTranscript("chat_history", msgs, exporter, env.exportOptions())
			if err != nil {
				return &CommandError{Command: "history export", Reason: "download failed", Err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Saved "+path))
			return nil
		},
	}
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved conversation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, closeFn, err := getEnv(cmd).openHistory()
			if err != nil {
				return err
			}
			defer closeFn()
			if err := history.Clear(cmd.Context()); err != nil {
				return &CommandError{Command: "history clear", Reason: "could not delete history", Err: err}
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("Conversation cleared."))
			return nil
		},
	}
}
