// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes what a screen shows to files on disk.
//
// # Key Types
//
//   - TableExporter: turns a report.Table into CSV, XLSX or JSON bytes
//   - TranscriptExporter: turns the chat log into Markdown or JSON
//   - Options: output directory and whether to open the file afterwards
//
// # Usage
//
// Export the table of a comparison screen:
//
//	exp, _ := export.ForFormat("csv")
//	path, err := export.WriteTable(cmp.FileName(), cmp.Table, exp, opts)
//
// Render a chart to PNG:
//
//	path, err := export.WriteChart(growth.FileName(), growth.Chart, opts)
package export
