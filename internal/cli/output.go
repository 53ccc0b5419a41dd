// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/api"
	"github.com/jeranaias/estatechat-tui/internal/export"
	"github.com/jeranaias/estatechat-tui/internal/report"
	"github.com/jeranaias/estatechat-tui/internal/ui/components"
	"github.com/jeranaias/estatechat-tui/internal/util"
)

// view is what report-style commands print: a heading, a summary, a table
// and a chart, plus the base name used for downloads.
type view struct {
	Title     string
	Summary   string
	Summaries []report.AreaSummary
	Table     report.Table
	Chart     *report.Chart
	FileName  string
}

// jsonView is the --format json payload of a view.
type jsonView struct {
	Title     string               `json:"title"`
	Summary   string               `json:"summary"`
	Summaries []report.AreaSummary `json:"area_summaries,omitempty"`
	Columns   []string             `json:"columns"`
	Rows      []api.Object         `json:"rows"`
}

// render writes v in the selected format. csv and md go to stdout unless
// --out is set; xlsx always goes to a file. --chart additionally saves a PNG.
func (e *appEnv) render(cmd *cobra.Command, v view) error {
	w := cmd.OutOrStdout()
	opts := e.exportOptions()
	name := export.SanitizeFilename(v.FileName)

	switch format := e.format(); format {
	case "table", "text":
		e.renderText(w, v)
	case "json":
		payload := jsonView{
			Title:     v.Title,
			Summary:   v.Summary,
			Summaries: v.Summaries,
			Columns:   v.Table.Columns,
			Rows:      v.Table.Objects(),
		}
		if err := NewJSONResponse(cmd.Name(), payload).Write(w); err != nil {
			return err
		}
	case "md", "markdown":
		text := export.NewMarkdownExporter().Table(v.Table)
		if err := e.writeOrSave(w, name+".md", []byte(text), opts); err != nil {
			return err
		}
	case "csv":
		if v.Table.Empty() {
			return &CommandError{Command: cmd.Name(), Reason: "no table data", Err: export.ErrNoData}
		}
		data, err := export.NewCSVExporter().Export(v.Table)
		if err != nil {
			return err
		}
		if err := e.writeOrSave(w, name+".csv", append(data, '\n'), opts); err != nil {
			return err
		}
	case "xlsx":
		path, err := export.WriteTable(name, v.Table, export.NewXLSXExporter(opts), opts)
		if err != nil {
			return &CommandError{Command: cmd.Name(), Reason: "download failed", Err: err}
		}
		fmt.Fprintln(cmd.ErrOrStderr(), SuccessStyle.Render("Saved "+path))
	default:
		return &UsageError{Reason: fmt.Sprintf("unknown format %q", format), Example: "--format table|json|csv|md|xlsx"}
	}

	if e.flags.chart {
		if v.Chart.Empty() {
			fmt.Fprintln(cmd.ErrOrStderr(), DimStyle.Render("No chart data available."))
			return nil
		}
		path, err := export.WriteChart(name, v.Chart, opts)
		if err != nil {
			return &CommandError{Command: cmd.Name(), Reason: "chart export failed", Err: err}
		}
		fmt.Fprintln(cmd.ErrOrStderr(), SuccessStyle.Render("Saved "+path))
	}
	return nil
}

// writeOrSave writes data to w, or to a file when --out was given.
func (e *appEnv) writeOrSave(w io.Writer, filename string, data []byte, opts *export.Options) error {
	if e.flags.out == "" {
		_, err := w.Write(data)
		return err
	}
	path, err := export.WriteFile(filename, data, opts)
	if err != nil {
		return err
	}
	e.logger.Info("saved", zap.String("path", path))
	return nil
}

func (e *appEnv) exportOptions() *export.Options {
	opts := export.DefaultOptions()
	if e.cfg.Export.Dir != "" {
		opts.OutputDir = e.cfg.Export.Dir
	}
	return opts
}

// renderText prints a view for people: heading, summary, chart, table.
func (e *appEnv) renderText(w io.Writer, v view) {
	width := TerminalWidth(w)

	if v.Title != "" {
		fmt.Fprintln(w, TitleStyle.Render(v.Title))
		fmt.Fprintln(w)
	}
	if v.Summary != "" {
		md := components.NewMarkdown(glamourStyle(w), width-2)
		fmt.Fprintln(w, md.Render(v.Summary))
		fmt.Fprintln(w)
	}
	for _, s := range v.Summaries {
		fmt.Fprintf(w, "%s %s\n", SectionStyle.Render(s.Area+":"), s.Summary)
	}
	if len(v.Summaries) > 0 {
		fmt.Fprintln(w)
	}
	if !v.Chart.Empty() {
		chart := components.NewChartView(nil)
		chart.SetWidth(width)
		fmt.Fprintln(w, chart.Render(v.Chart))
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, prettyTable(v.Table, width))
}

// prettyTable lays out t with go-pretty. Cells are clipped so wide tables
// stay readable.
func prettyTable(t report.Table, width int) string {
	if t.Empty() {
		return DimStyle.Render(components.EmptyTableText)
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.SetAllowedRowLength(width)

	header := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	tw.AppendHeader(header)
	for _, row := range t.Strings() {
		r := make(table.Row, len(row))
		for i, c := range row {
			r[i] = util.Clip(strings.ReplaceAll(c, "\n", " "), 30)
		}
		tw.AppendRow(r)
	}
	return tw.Render()
}
