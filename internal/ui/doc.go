// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui is the Bubble Tea application: a root model that owns the
// header, the footer and one open page, and routes between pages the way the
// browser client routes between paths.
//
// Subpackages:
//   - styles: colors and the lipgloss theme
//   - components: stateless renderers (tables, charts, cards, bubbles)
//   - pages: the screens
package ui
