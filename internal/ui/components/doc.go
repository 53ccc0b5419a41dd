// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the rendering pieces the screens are built from.

Components are plain renderers: they take data and a width and return a
string. None of them talk to the backend or hold Bubble Tea state.

# Components

DataTable (table.go) - Bordered table of report rows, via go-pretty.

ChartView (chart.go) - Horizontal bars and sparklines for report charts.

PropertyCard (card.go) - A featured listing: image link, title, location, price.

Markdown (markdown.go) - glamour rendering of summaries with a plain fallback.

Header and Footer (header.go) - Title bar and key help line.

MessageBubble (message.go) - One chat message, or an action button.
*/
package components
