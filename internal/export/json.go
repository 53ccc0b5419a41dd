// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"

	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/report"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter writes tables as an array of objects in column order, and
// transcripts in the same shape the history store keeps them.
type JSONExporter struct{}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export converts a table to JSON.
func (e *JSONExporter) Export(t report.Table) ([]byte, error) {
	return json.MarshalIndent(t.Objects(), "", "  ")
}

// ExportTranscript converts the chat log to JSON.
func (e *JSONExporter) ExportTranscript(msgs []chat.Message) ([]byte, error) {
	return json.MarshalIndent(msgs, "", "  ")
}

// Transcript adapts e to TranscriptExporter.
func (e *JSONExporter) Transcript() TranscriptExporter {
	return jsonTranscript{e}
}

type jsonTranscript struct{ e *JSONExporter }

func (j jsonTranscript) Export(msgs []chat.Message) ([]byte, error) {
	return j.e.ExportTranscript(msgs)
}
func (j jsonTranscript) FileExtension() string { return j.e.FileExtension() }
func (j jsonTranscript) MimeType() string { return j.e.MimeType() }

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
