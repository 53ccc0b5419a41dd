// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/logging"
)

// =============================================================================
// HISTORY STORE
// =============================================================================

// ErrNoHistory is returned by HistoryStore.Load when nothing was saved yet.
var ErrNoHistory = errors.New("chat: no saved history")

// HistoryStore persists the whole log. Save receives the full list every
// time and overwrites whatever was stored.
type HistoryStore interface {
	Load(ctx context.Context) ([]Message, error)
	Save(ctx context.Context, msgs []Message) error
	Clear(ctx context.Context) error
}

// =============================================================================
// LOG
// =============================================================================

// Log is the append-only, ordered list of chat messages. Every change is
// mirrored to the HistoryStore; persistence failures are logged and never
// surface to the caller, the in-memory log stays authoritative.
//
// Log is safe for concurrent use. Appends from overlapping requests land in
// the order they arrive.
type Log struct {
	mu       sync.RWMutex
	messages []Message
	store    HistoryStore
	log      *zap.Logger

	// version counts changes so savers can skip stale snapshots.
	version uint64
	saveMu  sync.Mutex
	saved   uint64
}

// NewLog creates an empty log. store may be nil for an unsaved log.
func NewLog(store HistoryStore, logger *zap.Logger) *Log {
	return &Log{
		store: store,
		log:   logging.OrNop(logger).With(zap.String("component", "chat.log")),
	}
}

// Load replaces the in-memory log with the stored history. It reports whether
// history existed. A corrupt history counts as none.
func (l *Log) Load(ctx context.Context) (bool, error) {
	if l.store == nil {
		return false, nil
	}
	msgs, err := l.store.Load(ctx)
	if errors.Is(err, ErrNoHistory) {
		return false, nil
	}
	if err != nil {
		l.log.Warn("discarding unreadable chat history", zap.Error(err))
		return false, err
	}

	l.mu.Lock()
	l.messages = append([]Message(nil), msgs...)
	l.version++
	l.mu.Unlock()

	l.log.Debug("chat history loaded", zap.Int("messages", len(msgs)))
	return len(msgs) > 0, nil
}

// Append adds msgs to the end of the log and saves the result.
func (l *Log) Append(ctx context.Context, msgs ...Message) {
	if len(msgs) == 0 {
		return
	}
	l.mu.Lock()
	l.messages = append(l.messages, msgs...)
	l.version++
	snapshot, version := l.snapshotLocked()
	l.mu.Unlock()

	l.persist(ctx, snapshot, version)
}

// Clear empties the log and deletes the stored history.
func (l *Log) Clear(ctx context.Context) error {
	l.mu.Lock()
	l.messages = nil
	l.version++
	l.mu.Unlock()

	if l.store == nil {
		return nil
	}
	return l.store.Clear(ctx)
}

// Messages returns a copy of the log.
func (l *Log) Messages() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]Message(nil), l.messages...)
}

// Len returns the number of messages.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

func (l *Log) snapshotLocked() ([]Message, uint64) {
	return append([]Message(nil), l.messages...), l.version
}

// persist writes snapshot unless a newer one has already been written.
func (l *Log) persist(ctx context.Context, snapshot []Message, version uint64) {
	if l.store == nil {
		return
	}
	l.saveMu.Lock()
	defer l.saveMu.Unlock()
	if version <= l.saved {
		return
	}
	if err := l.store.Save(ctx, snapshot); err != nil {
		l.log.Warn("failed to save chat history", zap.Error(err), zap.Int("messages", len(snapshot)))
		return
	}
	l.saved = version
}
