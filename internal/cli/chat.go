// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/config"
)

// =============================================================================
// LINE INPUT
// =============================================================================

// lineReader is what the REPL reads from. liner in a terminal, a scripted
// reader in tests.
type lineReader interface {
	ReadInput(prompt string) (string, error)
}

// ChatCLI provides input history and line editing for the chat REPL.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI whose input history lives in the config dir.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	c := &ChatCLI{line: line, historyFile: filepath.Join(dir, "input_history")}
	c.LoadHistory()
	return c
}

// LoadHistory loads previous input lines.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line. Non-empty lines are added to the input history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory writes the input history, readable by the owner only.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// COMMAND
// =============================================================================

func newChatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat in a line-based prompt instead of the full screen UI",
		Long: `Chat starts a prompt that answers like the chat screen. Type a message and
press enter. Replies that link to a screen are numbered; type /open <n> to
print that screen.

Commands:
  /help          show this list
  /history       print the conversation so far
  /open <n>      print the screen behind action n
  /clear         clear the conversation
  /quit          leave (also exit, quit, ctrl+d)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := RequiresTTY("chat"); err != nil {
				return err
			}
			env := getEnv(cmd)
			ctx := cmd.Context()

			session, closeFn, err := env.openSession(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			input := NewChatCLI()
			defer input.Close()

			return newREPL(env, session, cmd).run(ctx, input)
		},
	}
}

// =============================================================================
// REPL
// =============================================================================

type repl struct {
	env     *appEnv
	session *chat.Session
	cmd     *cobra.Command
	out     io.Writer
	actions []chat.Action
}

func newREPL(env *appEnv, session *chat.Session, cmd *cobra.Command) *repl {
	return &repl{env: env, session: session, cmd: cmd, out: cmd.OutOrStdout()}
}

// run reads lines until the user quits, the input ends or ctx is done.
func (r *repl) run(ctx context.Context, in lineReader) error {
	r.show(r.session.Log().Messages())
	fmt.Fprintln(r.out, DimStyle.Render("Type /help for commands."))

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := in.ReadInput("estatechat> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.EqualFold(line, "exit"), strings.EqualFold(line, "quit"):
			return nil
		case strings.HasPrefix(line, "/"):
			if !r.command(ctx, line) {
				return nil
			}
		default:
			r.send(ctx, line)
		}
	}
}

func (r *repl) send(ctx context.Context, text string) {
	msgs, err := r.session.Send(ctx, text)
	if err != nil {
		r.env.logger.Warn("reply failed", zap.String("text", text), zap.Error(err))
	}
	// The user's line is already on screen.
	var replies []chat.Message
	for _, m := range msgs {
		if m.Sender != chat.SenderUser {
			replies = append(replies, m)
		}
	}
	r.show(replies)
}

// show prints messages, numbering actions so /open can refer to them.
func (r *repl) show(msgs []chat.Message) {
	for _, m := range msgs {
		if m.IsAction() {
			r.actions = append(r.actions, *m.Action)
			fmt.Fprintf(r.out, "%s %s\n",
				ActionStyle.Render(fmt.Sprintf("[%d] ▶ %s", len(r.actions), m.Action.Label)),
				DimStyle.Render("(/open "+strconv.Itoa(len(r.actions))+")"))
			continue
		}
		fmt.Fprintln(r.out, formatMessage(m))
	}
}

// command runs a slash command and reports whether the loop continues.
func (r *repl) command(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/exit", "/q":
		return false
	case "/help", "/?":
		fmt.Fprintln(r.out, r.cmd.Long)
	case "/history":
		r.actions = nil
		r.show(r.session.Log().Messages())
	case "/clear":
		if err := r.session.Clear(ctx); err != nil {
			fmt.Fprintln(r.out, ErrorStyle.Render("Could not clear history: "+err.Error()))
			return true
		}
		r.actions = nil
		fmt.Fprintln(r.out, SuccessStyle.Render("Conversation cleared."))
		r.show(r.session.Log().Messages())
	case "/open":
		r.open(fields[1:])
	default:
		fmt.Fprintln(r.out, ErrorStyle.Render("Unknown command "+fields[0]+". Type /help."))
	}
	return true
}

func (r *repl) open(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(r.out, ErrorStyle.Render("Usage: /open <n>"))
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(r.actions) {
		fmt.Fprintln(r.out, ErrorStyle.Render("No action "+args[0]+"."))
		return
	}
	if err := r.env.showRoute(r.cmd, r.actions[n-1].Route()); err != nil {
		displayError(r.out, err)
	}
}
