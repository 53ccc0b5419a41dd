// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/estatechat-tui/internal/route"
)

// =============================================================================
// SENDER
// =============================================================================

// Sender identifies who wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderBot:
		return "Bot"
	default:
		return string(s)
	}
}

// =============================================================================
// ACTION
// =============================================================================

// ActionKind selects the screen an action opens.
type ActionKind string

const (
	ActionViewReport     ActionKind = "view_report"
	ActionViewComparison ActionKind = "view_comparison"
	ActionViewGrowth     ActionKind = "view_growth"
)

// Action is an interactive element in the transcript, such as a "View Full
// Comparison" button. It is plain data so it survives a save and reload.
type Action struct {
	Kind  ActionKind `json:"kind"`
	Label string     `json:"label"`
	Areas []string   `json:"areas,omitempty"`
}

// Route returns the screen the action opens.
func (a Action) Route() route.Route {
	switch a.Kind {
	case ActionViewReport:
		return route.FullReport(first(a.Areas))
	case ActionViewGrowth:
		return route.PriceGrowth(first(a.Areas))
	case ActionViewComparison:
		return route.Comparison(a.Areas...)
	default:
		return route.Chat()
	}
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is one entry of the chat log. Exactly one of Text and Action is
// normally set.
type Message struct {
	ID     string    `json:"id"`
	Sender Sender    `json:"sender"`
	Text   string    `json:"text,omitempty"`
	Action *Action   `json:"action,omitempty"`
	Time   time.Time `json:"time"`
}

// now is replaced in tests.
var now = time.Now

func stamp() time.Time {
	// UTC without a monotonic reading, so a message equals itself after a
	// JSON round trip.
	return now().UTC().Round(0)
}

// NewUserMessage creates a message typed by the user.
func NewUserMessage(text string) Message {
	return Message{ID: uuid.NewString(), Sender: SenderUser, Text: text, Time: stamp()}
}

// NewBotMessage creates a plain text reply.
func NewBotMessage(text string) Message {
	return Message{ID: uuid.NewString(), Sender: SenderBot, Text: text, Time: stamp()}
}

// NewActionMessage creates a bot message carrying an action.
func NewActionMessage(kind ActionKind, label string, areas ...string) Message {
	return Message{
		ID:     uuid.NewString(),
		Sender: SenderBot,
		Action: &Action{Kind: kind, Label: label, Areas: append([]string(nil), areas...)},
		Time:   stamp(),
	}
}

// IsAction reports whether the message carries an action.
func (m Message) IsAction() bool {
	return m.Action != nil
}
