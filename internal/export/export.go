// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/report"
	"github.com/jeranaias/estatechat-tui/internal/util"
)

// ErrNoData is returned when there is nothing to export.
var ErrNoData = errors.New("no data to download")

// =============================================================================
// EXPORT INTERFACES
// =============================================================================

// TableExporter converts a table to a file format.
type TableExporter interface {
	// Export converts the table to the target format and returns the content.
	Export(t report.Table) ([]byte, error)

	// FileExtension returns the file extension, e.g. ".csv".
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// TranscriptExporter converts the chat log to a file format.
type TranscriptExporter interface {
	Export(msgs []chat.Message) ([]byte, error)
	FileExtension() string
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// SheetName names the worksheet of XLSX exports.
	SheetName string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir: ".",
		SheetName: "Data",
	}
}

// ForFormat returns the table exporter for "csv", "xlsx" or "json".
func ForFormat(format string, opts *Options) (TableExporter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "csv":
		return NewCSVExporter(), nil
	case "xlsx":
		return NewXLSXExporter(opts), nil
	case "json":
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// WriteTable exports t to <OutputDir>/<name><ext> and returns the path. An
// empty table is refused with ErrNoData.
func WriteTable(name string, t report.Table, exporter TableExporter, opts *Options) (string, error) {
	if t.Empty() {
		return "", ErrNoData
	}
	content, err := exporter.Export(t)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	return WriteFile(name+exporter.FileExtension(), content, opts)
}

// WriteTranscript exports the chat log and returns the path.
func WriteTranscript(name string, msgs []chat.Message, exporter TranscriptExporter, opts *Options) (string, error) {
	if len(msgs) == 0 {
		return "", ErrNoData
	}
	content, err := exporter.Export(msgs)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}
	return WriteFile(name+exporter.FileExtension(), content, opts)
}

func WriteFile(filename string, content []byte, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(dir, SanitizeFilename(filename))
	if err := util.WriteFileAtomic(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		// The file exists either way; a missing viewer is not an export failure.
		_ = openFile(outputPath)
	}
	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// SanitizeFilename removes or replaces characters that are invalid in
// filenames. Spaces become underscores, so "pimple saudagar.csv" is written
// as "pimple_saudagar.csv".
func SanitizeFilename(s string) string {
	const maxLen = 120
	runes := []rune(s)
	if len(runes) > maxLen {
		s = string(runes[:maxLen])
	}

	replacer := map[rune]rune{
		'/':  '-',
		'\\': '-',
		':':  '-',
		'*':  '-',
		'?':  '-',
		'"':  '-',
		'<':  '-',
		'>':  '-',
		'|':  '-',
		' ':  '_',
		'\t': '_',
		'\n': '_',
		'\r': '_',
	}

	result := []rune{}
	for _, r := range s {
		if replacement, found := replacer[r]; found {
			result = append(result, replacement)
		} else if r < 32 || r == 127 {
			result = append(result, '-')
		} else {
			result = append(result, r)
		}
	}

	out := strings.TrimLeft(string(result), ".")
	if out == "" {
		return "export"
	}
	return out
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
