// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package pages

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/export"
	"github.com/jeranaias/estatechat-tui/internal/report"
	"github.com/jeranaias/estatechat-tui/internal/ui/components"
	"github.com/jeranaias/estatechat-tui/internal/ui/styles"
)

// =============================================================================
// KEYS
// =============================================================================

// ReportKeyMap holds the bindings of the report screens.
type ReportKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	RowsUp   key.Binding
	RowsDown key.Binding
	Export   key.Binding
	XLSX     key.Binding
	Chart    key.Binding
	Reload   key.Binding
	Back     key.Binding
}

// DefaultReportKeyMap returns the report screen bindings.
func DefaultReportKeyMap() ReportKeyMap {
	return ReportKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		RowsUp: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous rows"),
		),
		RowsDown: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next rows"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "download table"),
		),
		XLSX: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "download xlsx"),
		),
		Chart: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "save chart png"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k ReportKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Export, k.XLSX, k.Chart, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ReportKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.RowsUp, k.RowsDown},
		{k.Export, k.XLSX, k.Chart},
		{k.Reload, k.Back},
	}
}

// =============================================================================
// REPORT PAGE
// =============================================================================

// reportContent is what a report screen displays once loaded.
type reportContent struct {
	Heading  string
	Summary  string
	Table    report.Table
	Chart    *report.Chart
	FileName string
}

// fetchFunc performs a report screen's single backend call.
type fetchFunc func(ctx context.Context) (*reportContent, error)

// reportLoadedMsg carries a fetch result back to the page that asked.
type reportLoadedMsg struct {
	page    int64
	content *reportContent
	err     error
	took    time.Duration
}

// exportDoneMsg reports a finished download.
type exportDoneMsg struct {
	page int64
	path string
	err  error
}

// ReportPage is the shared model of FullReport, Comparison and PriceGrowth.
// They differ only in the request they make and how the answer is shaped.
type ReportPage struct {
	id       int64
	deps     Deps
	title    string
	endpoint string
	errText  string
	fetch    fetchFunc

	loading bool
	err     string
	content *reportContent

	spinner  spinner.Model
	viewport viewport.Model
	table    *components.DataTable
	chart    *components.ChartView
	markdown *components.Markdown
	keys     ReportKeyMap

	width  int
	height int
}

func newReportPage(deps Deps, title, endpoint, errText string, fetch fetchFunc) *ReportPage {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	if deps.Theme != nil {
		sp.Style = deps.Theme.Spinner
	}
	style := "notty"
	if deps.Theme != nil {
		style = deps.Theme.GlamourStyle()
	}
	table := components.NewDataTable(deps.Theme)
	table.MaxRows = 15
	return &ReportPage{
		id:       nextID(),
		deps:     deps,
		title:    title,
		endpoint: endpoint,
		errText:  errText,
		fetch:    fetch,
		loading:  true,
		spinner:  sp,
		viewport: viewport.New(80, 20),
		table:    table,
		chart:    components.NewChartView(deps.Theme),
		markdown: components.NewMarkdown(style, 76),
		keys:     DefaultReportKeyMap(),
		width:    80,
		height:   20,
	}
}

// NewFullReport opens the detailed report of one area.
func NewFullReport(deps Deps, area string) *ReportPage {
	return newReportPage(deps, "Full Report", "query", report.ErrLoadReport,
		func(ctx context.Context) (*reportContent, error) {
			resp, err := deps.Backend.Query(ctx, area)
			if err != nil {
				return nil, err
			}
			r := report.NewFullReport(area, resp)
			return &reportContent{
				Heading:  r.Title(),
				Summary:  r.Summary,
				Table:    r.Table,
				Chart:    r.Chart,
				FileName: r.FileName(),
			}, nil
		})
}

// NewComparison opens the side-by-side view of areas.
func NewComparison(deps Deps, areas []string) *ReportPage {
	areas = append([]string(nil), areas...)
	return newReportPage(deps, "Comparison", "compare", report.ErrLoadComparison,
		func(ctx context.Context) (*reportContent, error) {
			res, err := deps.Backend.Compare(ctx, areas)
			if err != nil {
				return nil, err
			}
			c := report.NewComparison(areas, res)
			return &reportContent{
				Heading:  c.Title(),
				Summary:  c.Summary,
				Table:    c.Table,
				Chart:    c.Chart,
				FileName: c.FileName(),
			}, nil
		})
}

// NewPriceGrowth opens the price series of one area.
func NewPriceGrowth(deps Deps, area string) *ReportPage {
	return newReportPage(deps, "Price Growth", "price_growth", report.ErrLoadGrowth,
		func(ctx context.Context) (*reportContent, error) {
			g, err := deps.Backend.PriceGrowth(ctx, area)
			if err != nil {
				return nil, err
			}
			v := report.NewGrowth(area, g)
			return &reportContent{
				Heading:  v.Title(),
				Summary:  v.Summary,
				Table:    v.Table,
				Chart:    v.Chart,
				FileName: v.FileName(),
			}, nil
		})
}

// Init starts the fetch.
func (p *ReportPage) Init() tea.Cmd {
	return tea.Batch(p.spinner.Tick, p.load())
}

func (p *ReportPage) load() tea.Cmd {
	id, fetch, ctx := p.id, p.fetch, p.deps.ctx()
	return func() tea.Msg {
		start := time.Now()
		c, err := fetch(ctx)
		return reportLoadedMsg{page: id, content: c, err: err, took: time.Since(start)}
	}
}

// Update handles fetch results, downloads and keys.
func (p *ReportPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		if msg.page != p.id {
			return p, nil
		}
		p.loading = false
		if msg.err != nil {
			p.deps.logger().Warn("report fetch failed",
				zap.String("endpoint", p.endpoint),
				zap.Duration("took", msg.took),
				zap.Error(msg.err))
			p.err = p.errText
			p.content = nil
		} else {
			p.deps.logger().Debug("report loaded",
				zap.String("endpoint", p.endpoint),
				zap.Duration("took", msg.took),
				zap.Int("rows", msg.content.Table.Len()))
			p.err = ""
			p.content = msg.content
		}
		p.refresh()
		return p, nil

	case exportDoneMsg:
		if msg.page != p.id {
			return p, nil
		}
		if msg.err != nil {
			text := "Download failed"
			if errors.Is(msg.err, export.ErrNoData) {
				text = "Nothing to download"
			}
			p.deps.logger().Warn("download failed", zap.Error(msg.err))
			return p, Status(text, true)
		}
		return p, Status("Saved "+msg.path, false)

	case spinner.TickMsg:
		if !p.loading {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd

	case tea.KeyMsg:
		return p.handleKey(msg)
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *ReportPage) handleKey(msg tea.KeyMsg) (Page, tea.Cmd) {
	switch {
	case key.Matches(msg, p.keys.Back):
		return p, Back()
	case key.Matches(msg, p.keys.Reload):
		if p.loading {
			return p, nil
		}
		p.loading = true
		p.err = ""
		p.refresh()
		return p, tea.Batch(p.spinner.Tick, p.load())
	case key.Matches(msg, p.keys.RowsUp), key.Matches(msg, p.keys.RowsDown):
		if p.content == nil {
			return p, nil
		}
		step := p.table.MaxRows
		if key.Matches(msg, p.keys.RowsUp) {
			step = -step
		}
		p.table.Scroll(step, p.content.Table.Len())
		p.refresh()
		return p, nil
	case key.Matches(msg, p.keys.Export):
		return p, p.download(p.deps.Format)
	case key.Matches(msg, p.keys.XLSX):
		return p, p.download("xlsx")
	case key.Matches(msg, p.keys.Chart):
		return p, p.saveChart()
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

// download writes the displayed table in format.
func (p *ReportPage) download(format string) tea.Cmd {
	if p.content == nil {
		return Status("Nothing to download", true)
	}
	id, c, opts := p.id, p.content, p.deps.exportOptions()
	return func() tea.Msg {
		exp, err := export.ForFormat(format, opts)
		if err != nil {
			return exportDoneMsg{page: id, err: err}
		}
		path, err := export.WriteTable(export.SanitizeFilename(c.FileName), c.Table, exp, opts)
		return exportDoneMsg{page: id, path: path, err: err}
	}
}

func (p *ReportPage) saveChart() tea.Cmd {
	if p.content == nil || p.content.Chart.Empty() {
		return Status("No chart to save", true)
	}
	id, c, opts := p.id, p.content, p.deps.exportOptions()
	return func() tea.Msg {
		path, err := export.WriteChart(export.SanitizeFilename(c.FileName), c.Chart, opts)
		return exportDoneMsg{page: id, path: path, err: err}
	}
}

// SetSize resizes the page.
func (p *ReportPage) SetSize(width, height int) {
	p.width, p.height = width, height
	p.viewport.Width = width
	p.viewport.Height = height
	p.table.SetWidth(width - 2)
	p.chart.SetWidth(width - 2)
	p.markdown.SetWidth(width - 4)
	p.refresh()
}

// refresh re-renders the content into the viewport.
func (p *ReportPage) refresh() {
	p.viewport.SetContent(p.body())
}

func (p *ReportPage) body() string {
	t := p.deps.Theme
	if p.content == nil {
		return ""
	}
	c := p.content

	var sections []string
	sections = append(sections, render(t, pageTitleStyle, c.Heading))
	if c.Summary != "" {
		sections = append(sections, render(t, summaryStyle, p.markdown.Render(c.Summary)))
	}
	sections = append(sections,
		render(t, sectionStyle, "Chart"),
		p.chart.Render(c.Chart),
		render(t, sectionStyle, "Data"),
		p.table.Render(c.Table),
	)
	return strings.Join(sections, "\n\n")
}

// View renders the page.
func (p *ReportPage) View() string {
	t := p.deps.Theme
	switch {
	case p.loading:
		return p.spinner.View() + " " + render(t, loadingStyle, "Loading "+strings.ToLower(p.title)+"...")
	case p.err != "":
		return render(t, errorStyle, p.err)
	default:
		return p.viewport.View()
	}
}

// Title implements Page.
func (p *ReportPage) Title() string { return p.title }

// Keys implements Page.
func (p *ReportPage) Keys() help.KeyMap { return p.keys }

// Capturing implements Page.
func (p *ReportPage) Capturing() bool { return false }

// Loading reports whether the fetch is still outstanding.
func (p *ReportPage) Loading() bool { return p.loading }

// Err returns the user-facing error, or "".
func (p *ReportPage) Err() string { return p.err }

// =============================================================================
// STYLE HELPERS
// =============================================================================

type stylePick int

const (
	pageTitleStyle stylePick = iota
	sectionStyle
	summaryStyle
	loadingStyle
	errorStyle
	emptyStyle
)

// render applies a theme style. Pages built without a theme render plain.
func render(t *styles.Theme, s stylePick, text string) string {
	if t == nil {
		return text
	}
	var style lipgloss.Style
	switch s {
	case pageTitleStyle:
		style = t.PageTitle
	case sectionStyle:
		style = t.SectionTitle
	case summaryStyle:
		style = t.Summary
	case loadingStyle:
		style = t.LoadingText
	case errorStyle:
		style = t.ErrorStyle
	default:
		style = t.Empty
	}
	return style.Render(text)
}
