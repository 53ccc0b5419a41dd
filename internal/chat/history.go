// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jeranaias/estatechat-tui/internal/storage"
)

// StoreHistory keeps the log as a JSON array under one key of a
// storage.Store.
type StoreHistory struct {
	store storage.Store
	key   string
}

// NewStoreHistory returns a HistoryStore writing to key in store.
func NewStoreHistory(store storage.Store, key string) *StoreHistory {
	return &StoreHistory{store: store, key: key}
}

func (h *StoreHistory) Load(ctx context.Context) ([]Message, error) {
	data, err := h.store.Get(ctx, h.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoHistory
	}
	if err != nil {
		return nil, err
	}
	var msgs []Message
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil, fmt.Errorf("chat: decode %s: %w", h.key, err)
	}
	return msgs, nil
}

func (h *StoreHistory) Save(ctx context.Context, msgs []Message) error {
	if msgs == nil {
		msgs = []Message{}
	}
	data, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("chat: encode %s: %w", h.key, err)
	}
	return h.store.Set(ctx, h.key, data)
}

func (h *StoreHistory) Clear(ctx context.Context) error {
	return h.store.Delete(ctx, h.key)
}
