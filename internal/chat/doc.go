// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat runs the conversation with the real-estate bot.

A Session owns an append-only Log. Each user message is classified by an
intent.Dispatcher and answered either with a canned reply or through the
backend. Every change to the Log is mirrored to a HistoryStore, so a later
Session over the same store resumes the same transcript.

Usage:

	store, _ := storage.Open("file", path)
	log := chat.NewLog(chat.NewStoreHistory(store, config.HistoryKey), logger)
	s := chat.NewSession(log, api.NewClient(baseURL), cfg.Areas.Known, logger)
	s.Start(ctx)
	replies, err := s.Send(ctx, "Compare Wakad and Baner")
*/
package chat
