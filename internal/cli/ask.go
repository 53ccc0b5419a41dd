// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/chat"
)

func newAskCommand() *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one chat message and print the reply",
		Long: `Ask sends one message through the chat, exactly as if it had been typed in
the UI, and prints the bot's reply. The exchange is added to the saved history.

Replies that offer a screen ("View Full Comparison", "View Price Growth")
print the command that opens it. With --follow the screen is loaded and
printed right away.`,
		Example: `  estatechat ask "Analyze Wakad"
  estatechat ask "compare wakad and baner" --follow --format csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := getEnv(cmd)
			ctx := cmd.Context()
			text := strings.Join(args, " ")

			session, closeFn, err := env.openSession(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			msgs, sendErr := session.Send(ctx, text)
			if len(msgs) == 0 && sendErr == nil {
				return &UsageError{Reason: "nothing to send", Example: `estatechat ask "Analyze Wakad"`}
			}

			w := cmd.OutOrStdout()
			if env.format() == "json" {
				if err := NewJSONResponse(cmd.Name(), msgs).Write(w); err != nil {
					return err
				}
			} else {
				printMessages(w, msgs)
			}
			if sendErr != nil {
				env.logger.Warn("reply failed", zap.String("text", text), zap.Error(sendErr))
				return reported(sendErr)
			}

			for _, m := range msgs {
				if !m.IsAction() {
					continue
				}
				r := m.Action.Route()
				if !follow {
					fmt.Fprintln(cmd.ErrOrStderr(), DimStyle.Render(fmt.Sprintf("→ estatechat open %q", r.String())))
					continue
				}
				if err := env.showRoute(cmd, r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&follow, "follow", false, "load and print the screens the reply links to")
	return cmd
}

// printMessages writes a transcript for people.
func printMessages(w io.Writer, msgs []chat.Message) {
	for _, m := range msgs {
		fmt.Fprintln(w, formatMessage(m))
	}
}

func formatMessage(m chat.Message) string {
	stamp := m.Time.Local().Format("15:04")
	switch {
	case m.IsAction():
		return fmt.Sprintf("%s %s", DimStyle.Render(stamp), ActionStyle.Render("▶ "+m.Action.Label))
	case m.Sender == chat.SenderUser:
		return fmt.Sprintf("%s %s %s", DimStyle.Render(stamp), UserStyle.Render(m.Sender.DisplayName()+":"), m.Text)
	default:
		return fmt.Sprintf("%s %s %s", DimStyle.Render(stamp), BotStyle.Render(m.Sender.DisplayName()+":"), m.Text)
	}
}
