// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/jeranaias/estatechat-tui/internal/report"
)

// Default PNG size.
const (
	ChartWidth  = 900
	ChartHeight = 420
)

var palette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	chart.ColorOrange,
	chart.ColorAlternateGray,
}

// RenderChart draws c as a PNG into w.
func RenderChart(c *report.Chart, w io.Writer) error {
	if c.Empty() {
		return ErrNoData
	}
	if c.Kind == report.ChartBar {
		return renderBars(c, w)
	}
	return renderLines(c, w)
}

// WriteChart renders c to <OutputDir>/<name>.png and returns the path.
func WriteChart(name string, c *report.Chart, opts *Options) (string, error) {
	var buf bytes.Buffer
	if err := RenderChart(c, &buf); err != nil {
		return "", err
	}
	return WriteFile(name+".png", buf.Bytes(), opts)
}

func renderBars(c *report.Chart, w io.Writer) error {
	s := c.Series[0]
	var bars []chart.Value
	maxY := 0.0
	for i, label := range c.Labels {
		if i >= len(s.Points) || !s.Points[i].Present {
			continue
		}
		v := s.Points[i].Value
		bars = append(bars, chart.Value{
			Label: label,
			Value: v,
			Style: chart.Style{FillColor: palette[2], StrokeColor: palette[2]},
		})
		maxY = math.Max(maxY, v)
	}
	if maxY <= 0 {
		maxY = 1
	}

	bc := chart.BarChart{
		Title:      c.Title,
		Width:      ChartWidth,
		Height:     ChartHeight,
		BarWidth:   40,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.1}},
		Bars:       bars,
	}
	if err := bc.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

func renderLines(c *report.Chart, w io.Writer) error {
	ticks := make([]chart.Tick, len(c.Labels))
	for i, label := range c.Labels {
		ticks[i] = chart.Tick{Value: float64(i), Label: label}
	}

	var series []chart.Series
	for i, s := range c.Series {
		var xs, ys []float64
		for j, p := range s.Points {
			if p.Present {
				xs = append(xs, float64(j))
				ys = append(ys, p.Value)
			}
		}
		if len(xs) == 0 {
			continue
		}
		col := palette[i%len(palette)]
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: col, StrokeWidth: 2, DotColor: col, DotWidth: 3},
		})
	}

	lo, hi, _ := c.Range()
	if hi <= lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	// A fixed X range keeps single-year charts renderable.
	xRange := &chart.ContinuousRange{Min: -0.5, Max: float64(len(c.Labels)) - 0.5}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      ChartWidth,
		Height:     ChartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 28}},
		XAxis:      chart.XAxis{Ticks: ticks, Range: xRange},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render line chart: %w", err)
	}
	return nil
}
