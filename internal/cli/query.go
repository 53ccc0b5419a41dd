// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/report"
)

func newQueryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query <text>",
		Short: "Send free text to the backend and print the raw answer",
		Long: `Query skips the chat rules and posts the text to the backend query endpoint.
Whatever comes back is shown: the summary, per-area summaries, the rows and
the chart. Nothing is added to the chat history.`,
		Example: `  estatechat query "wakad price trend"
  estatechat query "compare wakad and baner" --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := getEnv(cmd)
			text := strings.TrimSpace(strings.Join(args, " "))
			if text == "" {
				return &UsageError{Reason: "query text is empty", Example: `estatechat query "wakad"`}
			}

			resp, err := env.client.Query(cmd.Context(), text)
			if err != nil {
				env.logger.Error("query failed", zap.String("text", text), zap.Error(err))
				return &CommandError{Command: "query", Reason: "backend request failed", Err: err}
			}

			v := report.NewQueryView(text, resp)
			if v.Table.Empty() && v.Chart.Empty() && len(v.Summaries) == 0 && env.format() != "json" {
				if v.Summary == "" {
					v.Summary = "No data returned."
				}
				fmt.Fprintln(cmd.OutOrStdout(), v.Summary)
				return nil
			}
			return env.render(cmd, view{
				Title:     "🔎 " + text,
				Summary:   v.Summary,
				Summaries: v.Summaries,
				Table:     v.Table,
				Chart:     v.Chart,
				FileName:  v.FileName(),
			})
		},
	}
}
