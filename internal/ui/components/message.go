// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE BUBBLE COMPONENT
// =============================================================================

// MessageBubble renders one chat message. User messages sit on the right,
// bot messages on the left; action messages render as buttons.
type MessageBubble struct {
	Message chat.Message
	Width   int
	// Focused marks the action button the cursor is on.
	Focused bool
	theme   *styles.Theme
}

// NewMessageBubble creates a bubble for msg.
func NewMessageBubble(theme *styles.Theme, msg chat.Message, width int) *MessageBubble {
	return &MessageBubble{Message: msg, Width: width, theme: theme}
}

// View renders the bubble.
func (b *MessageBubble) View() string {
	width := b.Width
	if width < 20 {
		width = 20
	}
	maxBubble := width * 3 / 4

	if b.Message.Action != nil {
		style := b.theme.Action
		label := "▶ " + b.Message.Action.Label
		if b.Focused {
			style = b.theme.ActionActive
		}
		return lipgloss.NewStyle().Width(width).Render(style.Render(label))
	}

	style := b.theme.BotBubble
	align := lipgloss.Left
	if b.Message.Sender == chat.SenderUser {
		style = b.theme.UserBubble
		align = lipgloss.Right
	}

	text := strings.TrimSpace(b.Message.Text)
	if lipgloss.Width(text)+4 > maxBubble {
		style = style.Width(maxBubble)
	}

	meta := b.theme.SenderLabel.Render(b.Message.Sender.DisplayName())
	if !b.Message.Time.IsZero() {
		meta += " " + b.theme.Timestamp.Render(b.Message.Time.Local().Format("15:04"))
	}

	block := lipgloss.JoinVertical(align, meta, style.Render(text))
	return lipgloss.NewStyle().Width(width).Align(align).Render(block)
}

// MessageList renders msgs top to bottom. focused is the index of the
// focused action message, or -1.
func MessageList(theme *styles.Theme, msgs []chat.Message, width, focused int) string {
	views := make([]string, 0, len(msgs))
	for i, m := range msgs {
		b := NewMessageBubble(theme, m, width)
		b.Focused = i == focused
		views = append(views, b.View())
	}
	return strings.Join(views, "\n")
}
