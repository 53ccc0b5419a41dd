// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the estatechat packages.
//
// # Key Functions
//
//   - WriteFileAtomic: crash-safe file replacement with fsync
//   - Clip / PadRight: display-width aware string fitting for tables and cards
//   - FormatNumber: compact rendering of prices and metrics
package util
