// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"strings"

	"github.com/jeranaias/estatechat-tui/internal/api"
)

// Messages shown when a screen's request fails.
const (
	ErrLoadReport     = "Failed to load report."
	ErrLoadComparison = "Failed to load comparison."
	ErrLoadGrowth     = "Failed to load price growth data."
)

// =============================================================================
// FULL REPORT
// =============================================================================

// FullReport is the detailed view of one area.
type FullReport struct {
	Area    string
	Summary string
	Table   Table
	Chart   *Chart
}

// NewFullReport shapes a /api/query/ answer for area.
func NewFullReport(area string, resp *api.QueryResponse) *FullReport {
	r := &FullReport{Area: area}
	if resp == nil {
		return r
	}
	r.Chart = trendChart(resp.Chart)

	switch {
	case resp.TableFull != nil:
		r.Table = TableFromObjects(resp.TableFull)
	case resp.TableSample != nil:
		r.Table = TableFromObjects(resp.TableSample)
	case resp.Rows != nil:
		r.Table = TableFromObjects(resp.Rows)
	}

	if resp.Basic != nil && resp.Basic.Summary != "" {
		r.Summary = resp.Basic.Summary
	} else {
		r.Summary = resp.Summary
	}
	return r
}

// Title is the screen heading.
func (r *FullReport) Title() string {
	if r.Area == "" {
		return "📊 Full Market Report"
	}
	return "📊 Full Market Report - " + r.Area
}

// FileName is the export name without extension.
func (r *FullReport) FileName() string {
	if r.Area == "" {
		return "report"
	}
	return r.Area
}

// =============================================================================
// COMPARISON
// =============================================================================

// Comparison is the side-by-side view of several areas.
type Comparison struct {
	Areas   []string
	Summary string
	// Table has a Metric column followed by one column per area. It is empty
	// when the backend returned nothing comparable.
	Table Table
	Chart *Chart
}

// NewComparison shapes a /api/compare/ answer.
//
// The metrics come from "comparison" when it is non-empty, else from every
// other top-level key except "summary".
func NewComparison(areas []string, res *api.ComparisonResult) *Comparison {
	c := &Comparison{
		Areas:   append([]string(nil), areas...),
		Summary: "Comparison generated for " + strings.Join(areas, ", "),
	}
	if res == nil {
		return c
	}
	if res.Summary != "" {
		c.Summary = res.Summary
	}

	metrics := res.Comparison
	if metrics.Len() == 0 {
		metrics = api.Object{}
		for _, k := range res.Fields.Keys {
			if k == "summary" {
				continue
			}
			raw, _ := res.Fields.Raw(k)
			metrics.Set(k, raw)
		}
	}
	if metrics.Len() == 0 {
		return c
	}

	c.Table.Columns = append([]string{"Metric"}, areas...)
	for _, metric := range metrics.Keys {
		row := make([]any, 0, len(areas)+1)
		row = append(row, metric)
		perArea, _ := metrics.Object(metric)
		for _, a := range areas {
			v := perArea.Value(a)
			if v == nil {
				v = Missing
			}
			row = append(row, v)
		}
		c.Table.Rows = append(c.Table.Rows, row)
	}
	c.Chart = comparisonChart(areas, metrics)
	return c
}

// comparisonChart draws the first metric that is numeric for every area.
func comparisonChart(areas []string, metrics api.Object) *Chart {
	if len(areas) == 0 {
		return nil
	}
	for _, metric := range metrics.Keys {
		perArea, ok := metrics.Object(metric)
		if !ok {
			continue
		}
		s := Series{Name: "Average Price"}
		for _, a := range areas {
			v := perArea.Value(a)
			if !api.IsNumber(v) {
				break
			}
			f, _ := api.Float(v)
			s.Points = append(s.Points, Point{Value: f, Present: true})
		}
		if len(s.Points) == len(areas) {
			return &Chart{Title: metric, Kind: ChartBar, Labels: append([]string(nil), areas...), Series: []Series{s}}
		}
	}
	return nil
}

// Title is the screen heading.
func (c *Comparison) Title() string {
	return "📊 Area Comparison"
}

// FileName is the export name without extension.
func (c *Comparison) FileName() string {
	return "comparison_" + strings.Join(c.Areas, "_")
}

// =============================================================================
// PRICE GROWTH
// =============================================================================

// Growth is the year-by-year price series of one area.
type Growth struct {
	Area    string
	Summary string
	Table   Table
	Chart   *Chart
}

// NewGrowth shapes a /api/price_growth/ answer.
func NewGrowth(area string, g *api.GrowthResult) *Growth {
	out := &Growth{Area: area}
	if g == nil || g.Empty || len(g.Points) == 0 {
		out.Summary = "No price growth data available for " + area
		return out
	}
	out.Summary = g.Summary
	if out.Summary == "" {
		out.Summary = "Price growth analysis for " + area
	}

	out.Table.Columns = []string{"Year", "Price"}
	ch := &Chart{Title: "Price", Kind: ChartBar, Series: []Series{{Name: "Price"}}}
	for _, p := range g.Points {
		out.Table.Rows = append(out.Table.Rows, []any{p.Year, p.Price})
		ch.Labels = append(ch.Labels, p.Year)
		f, ok := api.Float(p.Price)
		ch.Series[0].Points = append(ch.Series[0].Points, Point{Value: f, Present: ok})
	}
	out.Chart = ch
	return out
}

// Title is the screen heading.
func (g *Growth) Title() string {
	return "📈 Price Growth - " + g.Area
}

// FileName is the export name without extension.
func (g *Growth) FileName() string {
	return "price_growth_" + g.Area
}

// =============================================================================
// FREE QUERY
// =============================================================================

// AreaSummary is one line of a multi-area answer.
type AreaSummary struct {
	Area    string `json:"area"`
	Summary string `json:"summary"`
}

// QueryView is the result of a free-text query: a summary, rows and a chart,
// for one area or several.
type QueryView struct {
	Query     string
	Summary   string
	Summaries []AreaSummary
	Table     Table
	Chart     *Chart
}

// NewQueryView shapes a /api/query/ answer to a free-text question.
func NewQueryView(query string, resp *api.QueryResponse) *QueryView {
	v := &QueryView{Query: query}
	if resp == nil {
		return v
	}
	v.Summary = resp.Summary
	if v.Summary == "" {
		v.Summary = resp.Response
	}
	for _, c := range resp.Compare {
		v.Summaries = append(v.Summaries, AreaSummary{Area: c.Area, Summary: c.Summary})
	}

	switch {
	case resp.Table != nil:
		v.Table = TableFromObjects(resp.Table)
	case resp.Compare != nil:
		v.Table = compareTable(resp.Compare)
	}

	if resp.Chart != nil {
		v.Chart = trendChart(resp.Chart)
	} else {
		v.Chart = compareChart(resp.Compare)
	}
	return v
}

// compareTable concatenates per-area rows, prefixed with an area column.
func compareTable(results []api.AreaResult) Table {
	var t Table
	for _, r := range results {
		if len(r.Table) == 0 {
			continue
		}
		if t.Columns == nil {
			t.Columns = []string{"area"}
			for _, k := range r.Table[0].Keys {
				if k != "area" {
					t.Columns = append(t.Columns, k)
				}
			}
		}
		for _, row := range r.Table {
			cells := make([]any, len(t.Columns))
			cells[0] = r.Area
			for j, col := range t.Columns[1:] {
				cells[j+1] = row.Value(col)
			}
			t.Rows = append(t.Rows, cells)
		}
	}
	return t
}

// FileName is the export name without extension.
func (v *QueryView) FileName() string {
	return "filtered_data"
}
