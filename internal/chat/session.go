// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/api"
	"github.com/jeranaias/estatechat-tui/internal/intent"
	"github.com/jeranaias/estatechat-tui/internal/logging"
)

// Fixed bot texts.
const (
	GreetingHello = "Hi 👋"
	GreetingHelp  = "How can I help you today?"

	MsgAnalyzeFailed = "❌ Failed to analyze the area. Please try again."
	MsgBackendDown   = "❌ Unable to connect to backend server."
	MsgNotUnderstood = "Sorry, I couldn't understand. Please mention the area name."
	MsgGrowthFailed  = "Failed to load price growth data."

	LabelFullComparison = "View Full Comparison"
	LabelPriceGrowth    = "View Price Growth"
)

// Backend is the part of api.Client a session calls.
type Backend interface {
	Query(ctx context.Context, query string) (*api.QueryResponse, error)
	PriceGrowth(ctx context.Context, area string) (*api.GrowthResult, error)
}

// Session owns a chat log and answers user messages through the intent
// dispatcher and the backend.
type Session struct {
	log        *Log
	backend    Backend
	dispatcher atomic.Pointer[intent.Dispatcher]
	logger     *zap.Logger
}

// NewSession creates a session over log. known is the area list handed to
// the dispatcher.
func NewSession(log *Log, backend Backend, known []string, logger *zap.Logger) *Session {
	s := &Session{
		log:     log,
		backend: backend,
		logger:  logging.OrNop(logger).With(zap.String("component", "chat.session")),
	}
	s.dispatcher.Store(intent.NewDispatcher(known))
	return s
}

// Log returns the session's message log.
func (s *Session) Log() *Log {
	return s.log
}

// SetKnownAreas swaps the area list, e.g. after a config reload.
func (s *Session) SetKnownAreas(known []string) {
	s.dispatcher.Store(intent.NewDispatcher(known))
	s.logger.Info("known areas updated", zap.Int("count", len(known)))
}

// KnownAreas returns the area list in use.
func (s *Session) KnownAreas() []string {
	return s.dispatcher.Load().KnownAreas()
}

// Start loads saved history, or seeds the greeting when there is none.
func (s *Session) Start(ctx context.Context) {
	ok, _ := s.log.Load(ctx)
	if ok {
		return
	}
	s.log.Append(ctx, NewBotMessage(GreetingHello), NewBotMessage(GreetingHelp))
}

// Post classifies text and appends it as a user message. It reports false
// for blank input, which is ignored.
func (s *Session) Post(ctx context.Context, text string) (intent.Decision, bool) {
	d := s.dispatcher.Load().Decide(text)
	if d.Kind == intent.KindNone {
		return d, false
	}
	s.log.Append(ctx, NewUserMessage(d.Raw))
	return d, true
}

// Reply produces and appends the bot's answer to d. The returned error is
// the backend failure, if any; the user-facing apology is already in the
// log by then.
func (s *Session) Reply(ctx context.Context, d intent.Decision) ([]Message, error) {
	s.logger.Debug("dispatching", zap.String("rule", d.Rule), zap.Strings("areas", d.Areas))

	var (
		msgs []Message
		err  error
	)
	switch d.Kind {
	case intent.KindNone:
		return nil, nil
	case intent.KindThanks, intent.KindAcknowledge, intent.KindAskArea:
		msgs = []Message{NewBotMessage(d.Reply)}
	case intent.KindPriceGrowth:
		msgs, err = s.priceGrowth(ctx, d.Areas[0])
	case intent.KindAnalyze:
		msgs, err = s.analyze(ctx, d.Areas[0])
	case intent.KindCompare:
		msgs = s.compare(d.Areas)
	default:
		msgs, err = s.fallback(ctx, d.Text)
	}

	s.log.Append(ctx, msgs...)
	return msgs, err
}

// Send posts text and replies to it.
func (s *Session) Send(ctx context.Context, text string) ([]Message, error) {
	d, ok := s.Post(ctx, text)
	if !ok {
		return nil, nil
	}
	return s.Reply(ctx, d)
}

// Clear empties the log and re-seeds the greeting.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.log.Clear(ctx); err != nil {
		return err
	}
	s.log.Append(ctx, NewBotMessage(GreetingHello), NewBotMessage(GreetingHelp))
	return nil
}

// =============================================================================
// BRANCHES
// =============================================================================

func (s *Session) analyze(ctx context.Context, area string) ([]Message, error) {
	resp, err := s.backend.Query(ctx, area)
	if err != nil {
		return []Message{NewBotMessage(MsgAnalyzeFailed)}, fmt.Errorf("analyze %s: %w", area, err)
	}
	return []Message{
		NewBotMessage(AnalysisSummary(resp, area)),
		NewActionMessage(ActionViewReport, LabelFullComparison, area),
	}, nil
}

func (s *Session) priceGrowth(ctx context.Context, area string) ([]Message, error) {
	g, err := s.backend.PriceGrowth(ctx, area)
	if err != nil {
		return []Message{NewBotMessage(MsgGrowthFailed)}, fmt.Errorf("price growth %s: %w", area, err)
	}
	if g.Empty || len(g.Points) == 0 {
		return []Message{NewBotMessage("No price growth data available for " + area)}, nil
	}
	summary := g.Summary
	if summary == "" {
		summary = "Price growth analysis for " + area
	}
	return []Message{
		NewBotMessage(summary),
		NewActionMessage(ActionViewGrowth, LabelPriceGrowth, area),
	}, nil
}

func (s *Session) compare(areas []string) []Message {
	return []Message{
		NewBotMessage(fmt.Sprintf("I have analyzed %s.", strings.Join(areas, " and "))),
		NewActionMessage(ActionViewComparison, LabelFullComparison, areas...),
	}
}

func (s *Session) fallback(ctx context.Context, text string) ([]Message, error) {
	resp, err := s.backend.Query(ctx, text)
	switch {
	case err == nil:
		if resp.Response != "" {
			return []Message{NewBotMessage(resp.Response)}, nil
		}
		return []Message{NewBotMessage(MsgNotUnderstood)}, nil
	case errors.Is(err, api.ErrBadStatus):
		// The backend answered, it just had nothing for this text.
		return []Message{NewBotMessage(MsgNotUnderstood)}, err
	default:
		return []Message{NewBotMessage(MsgBackendDown)}, err
	}
}

// AnalysisSummary picks the text shown for a single-area analysis.
func AnalysisSummary(resp *api.QueryResponse, area string) string {
	switch {
	case resp == nil:
	case resp.Basic != nil && resp.Basic.Summary != "":
		return resp.Basic.Summary
	case resp.Summary != "":
		return resp.Summary
	case resp.Response != "":
		return resp.Response
	}
	return "Here is a short analysis for " + area
}
