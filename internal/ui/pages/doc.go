// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package pages implements the screens of the estatechat TUI.

Every screen is a Page. The root model owns exactly one open page at a time,
forwards messages to it and swaps it when a NavigateMsg arrives.

# Screens

  - Home: intro text, featured property cards, entry into the chat.
  - Chat: the message log, an input line and the action buttons.
  - FullReport, Comparison, PriceGrowth: fetch once when opened, then show
    a summary, a chart and a table that can be saved to disk.

# Fetching

Pages never block. Opening a report page returns a tea.Cmd that performs the
single backend call and reports back with a message tagged with the page's
instance id; results for a page that is no longer open are dropped.
*/
package pages
