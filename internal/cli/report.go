// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jeranaias/estatechat-tui/internal/intent"
	"github.com/jeranaias/estatechat-tui/internal/report"
	"github.com/jeranaias/estatechat-tui/internal/route"
)

// =============================================================================
// VIEW LOADERS
// =============================================================================

// fullReportView fetches the detailed report of one area.
func (e *appEnv) fullReportView(ctx context.Context, area string) (view, error) {
	resp, err := e.client.Query(ctx, area)
	if err != nil {
		return view{}, err
	}
	r := report.NewFullReport(area, resp)
	return view{Title: r.Title(), Summary: r.Summary, Table: r.Table, Chart: r.Chart, FileName: r.FileName()}, nil
}

// comparisonView fetches the side-by-side comparison of areas.
func (e *appEnv) comparisonView(ctx context.Context, areas []string) (view, error) {
	res, err := e.client.Compare(ctx, areas)
	if err != nil {
		return view{}, err
	}
	c := report.NewComparison(areas, res)
	return view{Title: c.Title(), Summary: c.Summary, Table: c.Table, Chart: c.Chart, FileName: c.FileName()}, nil
}

// growthView fetches the price series of one area.
func (e *appEnv) growthView(ctx context.Context, area string) (view, error) {
	g, err := e.client.PriceGrowth(ctx, area)
	if err != nil {
		return view{}, err
	}
	r := report.NewGrowth(area, g)
	return view{Title: r.Title(), Summary: r.Summary, Table: r.Table, Chart: r.Chart, FileName: r.FileName()}, nil
}

// routeView loads the screen a route names.
func (e *appEnv) routeView(ctx context.Context, r route.Route) (view, string, error) {
	switch r.Page {
	case route.PageFullReport:
		v, err := e.fullReportView(ctx, r.Area())
		return v, report.ErrLoadReport, err
	case route.PageComparison:
		v, err := e.comparisonView(ctx, r.Areas)
		return v, report.ErrLoadComparison, err
	case route.PagePriceGrowth:
		v, err := e.growthView(ctx, r.Area())
		return v, report.ErrLoadGrowth, err
	default:
		return view{}, "", &UsageError{Reason: fmt.Sprintf("%s has no printable view", r), Example: "estatechat report wakad"}
	}
}

// showRoute loads and renders a route. A failed load prints the screen's
// fixed error text and is logged with its cause.
func (e *appEnv) showRoute(cmd *cobra.Command, r route.Route) error {
	start := time.Now()
	v, failText, err := e.routeView(cmd.Context(), r)
	if err != nil {
		if failText == "" {
			return err
		}
		e.logger.Error("load failed",
			zap.String("route", r.String()),
			zap.Duration("took", time.Since(start)),
			zap.Error(err))
		if e.format() == "json" {
			_ = NewJSONErrorResponse(cmd.Name(), failText).Write(cmd.OutOrStdout())
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render(failText))
		}
		return reported(err)
	}
	e.logger.Debug("loaded", zap.String("route", r.String()), zap.Duration("took", time.Since(start)))
	return e.render(cmd, v)
}

// normalizeAreas lowercases and trims area arguments, dropping blanks.
func normalizeAreas(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			if n := intent.Normalize(part); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

// =============================================================================
// COMMANDS
// =============================================================================

func newReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report <area>",
		Short: "Show the full market report of an area",
		Example: `  estatechat report wakad
  estatechat report "pimple saudagar" --format csv > pimple.csv
  estatechat report baner --format xlsx --chart`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			area := intent.Normalize(strings.Join(args, " "))
			return getEnv(cmd).showRoute(cmd, route.FullReport(area))
		},
		ValidArgsFunction: completeAreas,
	}
}

func newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <area> <area> [area...]",
		Short: "Compare two or more areas side by side",
		Example: `  estatechat compare wakad baner
  estatechat compare wakad,baner,aundh --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			areas := normalizeAreas(args)
			if len(areas) < 2 {
				return &UsageError{Reason: "compare needs at least two areas", Example: "estatechat compare wakad baner"}
			}
			return getEnv(cmd).showRoute(cmd, route.Comparison(areas...))
		},
		ValidArgsFunction: completeAreas,
	}
}

func newGrowthCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "growth <area>",
		Aliases: []string{"price-growth"},
		Short:   "Show the year-by-year price growth of an area",
		Example: `  estatechat growth wakad
  estatechat growth hinjewadi --chart -o ./downloads`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			area := intent.Normalize(strings.Join(args, " "))
			return getEnv(cmd).showRoute(cmd, route.PriceGrowth(area))
		},
		ValidArgsFunction: completeAreas,
	}
}

// completeAreas offers the configured areas for shell completion.
func completeAreas(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, a := range getEnv(cmd).cfg.Areas.Known {
		if strings.HasPrefix(a, strings.ToLower(toComplete)) {
			out = append(out, a)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
