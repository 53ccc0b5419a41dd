// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage is a small key/value store for client state.
//
// It plays the part browser local storage plays for a web client: a handful
// of named blobs, each overwritten whole. Three backends are available:
//
//   - FileStore: one JSON document on disk, replaced atomically on each write
//   - SQLiteStore: a single kv table in a SQLite database (pure Go driver)
//   - MemoryStore: process memory, for tests and --no-history runs
//
// All backends return ErrNotFound for a missing key.
package storage
