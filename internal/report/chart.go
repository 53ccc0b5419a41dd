// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"github.com/jeranaias/estatechat-tui/internal/api"
)

// ChartKind selects how a chart is drawn.
type ChartKind int

const (
	// ChartLine plots every series against the shared labels.
	ChartLine ChartKind = iota
	// ChartBar draws one bar per label from the first series.
	ChartBar
)

// Point is one value of a series. Absent points are skipped when drawn.
type Point struct {
	Value   float64
	Present bool
}

// Series is a named run of points aligned with Chart.Labels by index.
type Series struct {
	Name   string
	Points []Point
}

// Chart is a renderer-independent chart description.
type Chart struct {
	Title  string
	Kind   ChartKind
	Labels []string
	Series []Series
}

// Empty reports whether there is nothing to draw.
func (c *Chart) Empty() bool {
	if c == nil || len(c.Labels) == 0 {
		return true
	}
	for _, s := range c.Series {
		for _, p := range s.Points {
			if p.Present {
				return false
			}
		}
	}
	return true
}

// Range returns the smallest and largest present value.
func (c *Chart) Range() (lo, hi float64, ok bool) {
	if c == nil {
		return 0, 0, false
	}
	for _, s := range c.Series {
		for _, p := range s.Points {
			if !p.Present {
				continue
			}
			if !ok || p.Value < lo {
				lo = p.Value
			}
			if !ok || p.Value > hi {
				hi = p.Value
			}
			ok = true
		}
	}
	return lo, hi, ok
}

// seriesOf aligns values with n labels. Values past the end are dropped and
// missing or non-numeric values are absent.
func seriesOf(name string, values []any, n int) Series {
	s := Series{Name: name, Points: make([]Point, n)}
	for i := 0; i < n && i < len(values); i++ {
		if f, ok := api.Float(values[i]); ok {
			s.Points[i] = Point{Value: f, Present: true}
		}
	}
	return s
}

func labelsOf(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = api.Text(v)
	}
	return out
}

// trendChart plots the price and demand of a single-area chart.
func trendChart(c *api.Chart) *Chart {
	if c == nil || len(c.Years) == 0 {
		return nil
	}
	n := len(c.Years)
	return &Chart{
		Title:  "Price & Demand Trends",
		Kind:   ChartLine,
		Labels: labelsOf(c.Years),
		Series: []Series{
			seriesOf("Price", c.Price, n),
			seriesOf("Demand", c.Demand, n),
		},
	}
}

// compareChart overlays the price and demand of every area, on the years of
// the first area.
func compareChart(results []api.AreaResult) *Chart {
	if len(results) == 0 || results[0].Chart == nil {
		return nil
	}
	years := results[0].Chart.Years
	n := len(years)
	ch := &Chart{Title: "Price & Demand Trends", Kind: ChartLine, Labels: labelsOf(years)}
	for _, r := range results {
		if r.Chart == nil {
			continue
		}
		ch.Series = append(ch.Series,
			seriesOf(r.Area+" Price", r.Chart.Price, n),
			seriesOf(r.Area+" Demand", r.Chart.Demand, n),
		)
	}
	return ch
}
