// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/estatechat-tui/internal/chat"
	"github.com/jeranaias/estatechat-tui/internal/config"
	"github.com/jeranaias/estatechat-tui/internal/report"
	"github.com/jeranaias/estatechat-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme(styles.ModeDark)
}

func TestDataTable_Empty(t *testing.T) {
	out := NewDataTable(testTheme()).Render(report.Table{})
	assert.Contains(t, out, EmptyTableText)
}

func TestDataTable_RendersHeaderAndRows(t *testing.T) {
	tbl := report.Table{
		Columns: []string{"year", "price"},
		Rows:    [][]any{{"2021", "7000"}, {"2022", "7600"}},
	}
	d := NewDataTable(testTheme())
	d.Width = 0
	out := d.Render(tbl)

	assert.Contains(t, strings.ToUpper(out), "YEAR")
	assert.Contains(t, out, "7600")
	assert.NotContains(t, out, "rows")
}

func TestDataTable_Window(t *testing.T) {
	tbl := report.Table{Columns: []string{"n"}}
	for _, v := range []string{"r1", "r2", "r3", "r4", "r5"} {
		tbl.Rows = append(tbl.Rows, []any{v})
	}
	d := NewDataTable(nil)
	d.MaxRows = 2

	d.Scroll(1, tbl.Len())
	out := d.Render(tbl)
	assert.Contains(t, out, "r2")
	assert.Contains(t, out, "r3")
	assert.NotContains(t, out, "r4")
	assert.Contains(t, out, "rows 2-3 of 5")

	d.Scroll(100, tbl.Len())
	assert.Equal(t, 3, d.Offset)
	d.Scroll(-100, tbl.Len())
	assert.Equal(t, 0, d.Offset)
}

func TestDataTable_ClipsCells(t *testing.T) {
	tbl := report.Table{Columns: []string{"c"}, Rows: [][]any{{strings.Repeat("x", 50)}}}
	d := NewDataTable(nil)
	d.CellWidth = 8
	out := d.Render(tbl)
	assert.NotContains(t, out, strings.Repeat("x", 9))
}

func TestChartView(t *testing.T) {
	v := NewChartView(testTheme())

	assert.Contains(t, v.Render(nil), EmptyChartText)

	bars := &report.Chart{
		Title:  "pricing",
		Kind:   report.ChartBar,
		Labels: []string{"wakad", "baner"},
		Series: []report.Series{{Name: "pricing", Points: []report.Point{{Value: 9000, Present: true}, {}}}},
	}
	out := v.Render(bars)
	assert.Contains(t, out, "pricing")
	assert.Contains(t, out, "█")
	assert.Contains(t, out, report.Missing)

	lines := &report.Chart{
		Labels: []string{"2020", "2021", "2022"},
		Series: []report.Series{{Name: "price", Points: []report.Point{
			{Value: 1, Present: true}, {Value: 2, Present: true}, {Value: 3, Present: true},
		}}},
	}
	out = v.Render(lines)
	assert.Contains(t, out, "▁▄█")
	assert.Contains(t, out, "2020 … 2022")
}

func TestSparkline_FlatSeries(t *testing.T) {
	line, lo, hi, ok := sparkline([]report.Point{{Value: 5, Present: true}, {}, {Value: 5, Present: true}})
	assert.True(t, ok)
	assert.Equal(t, "█ █", line)
	assert.Equal(t, 5.0, lo)
	assert.Equal(t, 5.0, hi)

	_, _, _, ok = sparkline([]report.Point{{}})
	assert.False(t, ok)
}

func TestPropertyCard(t *testing.T) {
	card := NewPropertyCard(testTheme(), config.Listing{
		Title:    "2 BHK Apartment",
		Location: "Wakad, Pune",
		Price:    "78 L",
		Image:    "https://example.com/a.jpg",
	})
	assert.Equal(t, "₹ 78 L", card.Price())

	out := card.View()
	assert.Contains(t, out, "2 BHK Apartment")
	assert.Contains(t, out, "Wakad, Pune")
	assert.Contains(t, out, "₹ 78 L")
}

func TestCardRow_Wraps(t *testing.T) {
	theme := testTheme()
	var cards []*PropertyCard
	for _, title := range []string{"one", "two", "three"} {
		cards = append(cards, NewPropertyCard(theme, config.Listing{Title: title, Price: "1"}))
	}
	wide := CardRow(cards, 200)
	narrow := CardRow(cards, 40)
	assert.Greater(t, strings.Count(narrow, "\n"), strings.Count(wide, "\n"))
	assert.Empty(t, CardRow(nil, 80))
}

func TestMarkdown(t *testing.T) {
	md := NewMarkdown("notty", 60)
	assert.Empty(t, md.Render("  "))
	out := md.Render("**Wakad** is growing")
	assert.Contains(t, out, "Wakad")
	assert.False(t, strings.HasPrefix(out, "\n"))
}

func TestHeader(t *testing.T) {
	h := NewHeader(testTheme())
	h.Title = "Chat"
	h.Backend = "http://127.0.0.1:8000"
	out := h.View()
	assert.Contains(t, out, "estatechat")
	assert.Contains(t, out, "Chat")
	assert.Contains(t, out, "127.0.0.1")
}

type testKeys struct{ quit key.Binding }

func (k testKeys) ShortHelp() []key.Binding  { return []key.Binding{k.quit} }
func (k testKeys) FullHelp() [][]key.Binding { return [][]key.Binding{{k.quit}} }

func TestFooter(t *testing.T) {
	f := NewFooter(testTheme())
	keys := testKeys{quit: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))}

	f.SetStatus("Saved filtered_data.csv", false)
	out := f.View(keys)
	assert.Contains(t, out, "Saved filtered_data.csv")
	assert.Contains(t, out, "quit")

	f.SetStatus("Failed to export", true)
	assert.Contains(t, f.View(keys), styles.StatusIndicators.Error)
}

func TestMessageBubble(t *testing.T) {
	theme := testTheme()
	user := chat.Message{Sender: chat.SenderUser, Text: "compare wakad and baner", Time: time.Now()}
	out := NewMessageBubble(theme, user, 80).View()
	assert.Contains(t, out, "You")
	assert.Contains(t, out, "compare wakad and baner")

	bot := chat.Message{Sender: chat.SenderBot, Text: "Hi 👋"}
	out = NewMessageBubble(theme, bot, 80).View()
	assert.Contains(t, out, "Bot")

	action := chat.NewActionMessage(chat.ActionViewComparison, "View Full Comparison", "wakad", "baner")
	out = NewMessageBubble(theme, action, 80).View()
	assert.Contains(t, out, "▶ View Full Comparison")
}

func TestMessageList(t *testing.T) {
	msgs := []chat.Message{
		{Sender: chat.SenderUser, Text: "first"},
		{Sender: chat.SenderBot, Text: "second"},
	}
	out := MessageList(testTheme(), msgs, 60, -1)
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
}
