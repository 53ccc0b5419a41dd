// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pages

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/ui/components"
)

const chatPlaceholder = "Ask about an area, e.g. Compare Wakad and Baner"

// =============================================================================
// KEYS
// =============================================================================

// ChatKeyMap holds the chat screen bindings.
type ChatKeyMap struct {
	Submit     key.Binding
	NextAction key.Binding
	PrevAction key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Clear      key.Binding
	Back       key.Binding
}

// DefaultChatKeyMap returns the chat screen bindings.
func DefaultChatKeyMap() ChatKeyMap {
	return ChatKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send / open"),
		),
		NextAction: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next action"),
		),
		PrevAction: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous action"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear chat"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k ChatKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextAction, k.Clear, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ChatKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.NextAction, k.PrevAction},
		{k.PageUp, k.PageDown},
		{k.Clear, k.Back},
	}
}

// =============================================================================
// CHAT PAGE
// =============================================================================

// chatReplyMsg is sent when the bot's answer to one message is in the log.
type chatReplyMsg struct {
	page int64
	rule string
	err  error
	took time.Duration
}

// chatClearedMsg is sent after the log was cleared and re-greeted.
type chatClearedMsg struct {
	page int64
	err  error
}

// Chat is the conversation screen.
type Chat struct {
	id   int64
	deps Deps

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	keys     ChatKeyMap

	// pending counts replies still being produced.
	pending int
	// focused is the log index of the selected action, or -1.
	focused int

	width  int
	height int
}

// NewChat creates the conversation screen over deps.Session.
func NewChat(deps Deps) *Chat {
	in := textinput.New()
	in.Placeholder = chatPlaceholder
	in.Prompt = "› "
	in.CharLimit = 500
	if deps.Theme != nil {
		in.PromptStyle = deps.Theme.InputPrompt
		in.PlaceholderStyle = deps.Theme.InputPlaceholder
	}
	in.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	if deps.Theme != nil {
		sp.Style = deps.Theme.Spinner
	}

	c := &Chat{
		id:       nextID(),
		deps:     deps,
		input:    in,
		viewport: viewport.New(80, 16),
		spinner:  sp,
		keys:     DefaultChatKeyMap(),
		focused:  -1,
		width:    80,
		height:   20,
	}
	c.refresh()
	return c
}

// Init implements Page.
func (c *Chat) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keys, replies and the spinner.
func (c *Chat) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		if msg.page != c.id {
			return c, nil
		}
		c.pending--
		if msg.err != nil {
			// The apology is already in the log; the cause is for the log file.
			c.deps.logger().Warn("chat reply failed",
				zap.String("rule", msg.rule),
				zap.Duration("took", msg.took),
				zap.Error(msg.err))
		}
		c.refresh()
		return c, nil

	case chatClearedMsg:
		if msg.page != c.id {
			return c, nil
		}
		c.focused = -1
		c.refresh()
		if msg.err != nil {
			c.deps.logger().Warn("clear history failed", zap.Error(msg.err))
		}
		return c, nil

	case spinner.TickMsg:
		if c.pending == 0 {
			return c, nil
		}
		var cmd tea.Cmd
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd

	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *Chat) handleKey(msg tea.KeyMsg) (Page, tea.Cmd) {
	switch {
	case key.Matches(msg, c.keys.Back):
		if c.focused >= 0 {
			c.focused = -1
			c.refresh()
			return c, nil
		}
		return c, Back()

	case key.Matches(msg, c.keys.NextAction):
		c.moveFocus(1)
		return c, nil

	case key.Matches(msg, c.keys.PrevAction):
		c.moveFocus(-1)
		return c, nil

	case key.Matches(msg, c.keys.Clear):
		id, s, ctx := c.id, c.deps.Session, c.deps.ctx()
		return c, func() tea.Msg {
			return chatClearedMsg{page: id, err: s.Clear(ctx)}
		}

	case key.Matches(msg, c.keys.PageUp):
		c.viewport.HalfViewUp()
		return c, nil

	case key.Matches(msg, c.keys.PageDown):
		c.viewport.HalfViewDown()
		return c, nil

	case key.Matches(msg, c.keys.Submit):
		if strings.TrimSpace(c.input.Value()) == "" && c.focused >= 0 {
			return c, c.openFocused()
		}
		return c, c.submit()
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// submit posts the input line and starts the reply.
func (c *Chat) submit() tea.Cmd {
	text := c.input.Value()
	c.input.Reset()

	ctx := c.deps.ctx()
	d, ok := c.deps.Session.Post(ctx, text)
	if !ok {
		return nil
	}
	c.pending++
	c.focused = -1
	c.refresh()

	id, s := c.id, c.deps.Session
	reply := func() tea.Msg {
		start := time.Now()
		_, err := s.Reply(ctx, d)
		return chatReplyMsg{page: id, rule: d.Rule, err: err, took: time.Since(start)}
	}
	if c.pending == 1 {
		return tea.Batch(c.spinner.Tick, reply)
	}
	return reply
}

func (c *Chat) openFocused() tea.Cmd {
	msgs := c.deps.Session.Log().Messages()
	if c.focused >= len(msgs) || msgs[c.focused].Action == nil {
		c.focused = -1
		return nil
	}
	return Navigate(msgs[c.focused].Action.Route())
}

// moveFocus steps through action messages, newest first on the first press.
func (c *Chat) moveFocus(dir int) {
	msgs := c.deps.Session.Log().Messages()
	var actions []int
	for i, m := range msgs {
		if m.IsAction() {
			actions = append(actions, i)
		}
	}
	if len(actions) == 0 {
		c.focused = -1
		return
	}

	pos := -1
	for i, idx := range actions {
		if idx == c.focused {
			pos = i
		}
	}
	switch {
	case pos < 0:
		pos = len(actions) - 1
	case dir > 0:
		pos = (pos + 1) % len(actions)
	default:
		pos = (pos - 1 + len(actions)) % len(actions)
	}
	c.focused = actions[pos]
	c.refresh()
}

// refresh re-renders the log into the viewport and follows the bottom
// unless an action is focused.
func (c *Chat) refresh() {
	if c.deps.Session == nil || c.deps.Theme == nil {
		return
	}
	msgs := c.deps.Session.Log().Messages()
	c.viewport.SetContent(components.MessageList(c.deps.Theme, msgs, c.viewport.Width, c.focused))
	if c.focused < 0 {
		c.viewport.GotoBottom()
	}
}

// SetSize implements Page. Three lines go to the input box and one to the
// typing indicator.
func (c *Chat) SetSize(width, height int) {
	c.width, c.height = width, height
	c.viewport.Width = width
	c.viewport.Height = max(height-4, 3)
	c.input.Width = max(width-6, 10)
	c.refresh()
}

// View renders the page.
func (c *Chat) View() string {
	t := c.deps.Theme
	status := ""
	if c.pending > 0 {
		status = c.spinner.View() + " " + render(t, loadingStyle, "Bot is typing...")
	}
	input := c.input.View()
	if t != nil {
		input = t.InputContainer.Width(max(c.width-2, 10)).Render(input)
	}
	return c.viewport.View() + "\n" + status + "\n" + input
}

// Title implements Page.
func (c *Chat) Title() string { return "Chat" }

// Keys implements Page.
func (c *Chat) Keys() help.KeyMap { return c.keys }

// Capturing implements Page.
func (c *Chat) Capturing() bool { return true }

// Pending reports how many replies are outstanding.
func (c *Chat) Pending() int { return c.pending }

// Focused returns the focused action message, if any.
func (c *Chat) Focused() (chat.Message, bool) {
	msgs := c.deps.Session.Log().Messages()
	if c.focused < 0 || c.focused >= len(msgs) {
		return chat.Message{}, false
	}
	return msgs[c.focused], true
}
