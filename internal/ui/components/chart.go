// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/estatechat-tui/internal/report"
	"github.com/jeranaias/estatechat-tui/internal/ui/styles"
	"github.com/jeranaias/estatechat-tui/internal/util"
)

// EmptyChartText is shown when there is nothing to plot.
const EmptyChartText = "No chart data available."

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// =============================================================================
// CHART COMPONENT
// =============================================================================

// ChartView draws report charts with block characters: bar charts as one
// horizontal bar per label, line charts as one sparkline per series.
type ChartView struct {
	Width int
	theme *styles.Theme
}

// NewChartView creates a chart renderer.
func NewChartView(theme *styles.Theme) *ChartView {
	return &ChartView{Width: 80, theme: theme}
}

// SetWidth updates the available width.
func (v *ChartView) SetWidth(width int) {
	v.Width = width
}

// Render draws c.
func (v *ChartView) Render(c *report.Chart) string {
	if c.Empty() {
		return v.style(func(t *styles.Theme) lipgloss.Style { return t.Empty }).Render(EmptyChartText)
	}

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(v.style(func(t *styles.Theme) lipgloss.Style { return t.SectionTitle }).Render(c.Title))
		sb.WriteString("\n")
	}
	if c.Kind == report.ChartBar {
		sb.WriteString(v.bars(c))
	} else {
		sb.WriteString(v.lines(c))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (v *ChartView) bars(c *report.Chart) string {
	s := c.Series[0]
	labelW := 0
	for _, l := range c.Labels {
		labelW = max(labelW, util.Width(l))
	}
	_, hi, _ := c.Range()

	barMax := v.Width - labelW - 16
	if barMax < 10 {
		barMax = 10
	}

	barStyle := lipgloss.NewStyle().Foreground(styles.Emerald)
	label := v.style(func(t *styles.Theme) lipgloss.Style { return t.ChartLabel })

	var sb strings.Builder
	for i, l := range c.Labels {
		sb.WriteString(label.Render(util.PadRight(l, labelW)))
		sb.WriteString(" ")
		if i < len(s.Points) && s.Points[i].Present {
			p := s.Points[i].Value
			n := 0
			if hi > 0 && p > 0 {
				n = int(p / hi * float64(barMax))
			}
			if p > 0 && n == 0 {
				n = 1
			}
			sb.WriteString(barStyle.Render(strings.Repeat("█", n)))
			sb.WriteString(" " + util.FormatNumber(p))
		} else {
			sb.WriteString(report.Missing)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (v *ChartView) lines(c *report.Chart) string {
	nameW := 0
	for _, s := range c.Series {
		nameW = max(nameW, util.Width(s.Name))
	}
	axis := v.style(func(t *styles.Theme) lipgloss.Style { return t.ChartAxis })

	var sb strings.Builder
	for i, s := range c.Series {
		color := styles.SeriesColors[i%len(styles.SeriesColors)]
		line, lo, hi, ok := sparkline(s.Points)
		if !ok {
			continue
		}
		sb.WriteString(util.PadRight(s.Name, nameW))
		sb.WriteString(" ")
		sb.WriteString(lipgloss.NewStyle().Foreground(color).Render(line))
		sb.WriteString(axis.Render("  " + util.FormatNumber(lo) + " – " + util.FormatNumber(hi)))
		sb.WriteString("\n")
	}
	if len(c.Labels) > 0 {
		sb.WriteString(strings.Repeat(" ", nameW+1))
		sb.WriteString(axis.Render(c.Labels[0] + " … " + c.Labels[len(c.Labels)-1]))
		sb.WriteString("\n")
	}
	return sb.String()
}

// sparkline maps present points onto eight block heights; absent points
// are blanks.
func sparkline(points []report.Point) (string, float64, float64, bool) {
	var lo, hi float64
	ok := false
	for _, p := range points {
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
	if !ok {
		return "", 0, 0, false
	}

	var sb strings.Builder
	for _, p := range points {
		if !p.Present {
			sb.WriteRune(' ')
			continue
		}
		idx := len(sparkLevels) - 1
		if hi > lo {
			idx = int((p.Value - lo) / (hi - lo) * float64(len(sparkLevels)-1))
		}
		sb.WriteRune(sparkLevels[idx])
	}
	return sb.String(), lo, hi, true
}

func (v *ChartView) style(pick func(*styles.Theme) lipgloss.Style) lipgloss.Style {
	if v.theme == nil {
		return lipgloss.NewStyle()
	}
	return pick(v.theme)
}
