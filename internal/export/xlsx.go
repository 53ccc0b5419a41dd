// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jeranaias/estatechat-tui/internal/api"
	"github.com/jeranaias/estatechat-tui/internal/report"
	"github.com/jeranaias/estatechat-tui/internal/util"
)

// XLSXExporter writes a single-sheet workbook. Numeric cells stay numbers so
// the sheet can be charted in a spreadsheet.
type XLSXExporter struct {
	sheet string
}

// NewXLSXExporter creates a new XLSX exporter.
func NewXLSXExporter(opts *Options) *XLSXExporter {
	sheet := "Data"
	if opts != nil && opts.SheetName != "" {
		sheet = opts.SheetName
	}
	return &XLSXExporter{sheet: sheet}
}

// Export converts the table to an XLSX workbook.
func (e *XLSXExporter) Export(t report.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", e.sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	for i, header := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(e.sheet, cell, header); err != nil {
			return nil, err
		}
		col, _, _ := excelize.SplitCellName(cell)
		width := float64(util.Width(header) + 4)
		if width < 12 {
			width = 12
		}
		if err := f.SetColWidth(e.sheet, col, col, width); err != nil {
			return nil, err
		}
	}

	for r, row := range t.Rows {
		for c := range t.Columns {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(e.sheet, cell, cellValue(row, c)); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// cellValue keeps JSON numbers numeric and renders everything else as text.
func cellValue(row []any, col int) any {
	if col >= len(row) {
		return ""
	}
	v := row[col]
	if api.IsNumber(v) {
		f, _ := api.Float(v)
		return f
	}
	return api.Text(v)
}

// FileExtension returns the file extension for XLSX.
func (e *XLSXExporter) FileExtension() string {
	return ".xlsx"
}

// MimeType returns the MIME type for XLSX.
func (e *XLSXExporter) MimeType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
