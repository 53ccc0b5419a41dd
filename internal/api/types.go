// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// QueryRequest is the body of POST /api/query/.
type QueryRequest struct {
	Query string `json:"query"`
}

// CompareRequest is the body of POST /api/compare/.
type CompareRequest struct {
	Areas []string `json:"areas"`
}

// PriceGrowthRequest is the body of POST /api/price_growth/.
type PriceGrowthRequest struct {
	Area string `json:"area"`
}

// =============================================================================
// QUERY RESPONSE
// =============================================================================

// Basic is the headline block of a single-area analysis.
type Basic struct {
	Area    string
	City    string
	Summary string
}

// Chart is a year-indexed price/demand series. Price and Demand are aligned
// with Years by index and may be shorter than it.
type Chart struct {
	Years  []any
	Price  []any
	Demand []any
}

// AreaResult is one entry of a multi-area query response.
type AreaResult struct {
	Area    string
	Summary string
	Chart   *Chart
	Table   []Object
}

// QueryResponse is whatever /api/query/ returned, read defensively: every
// field is optional and fields of the wrong type are treated as absent.
type QueryResponse struct {
	Summary     string
	Response    string
	Basic       *Basic
	Chart       *Chart
	Table       []Object
	TableFull   []Object
	TableSample []Object
	Compare     []AreaResult

	// Rows holds the payload when the backend answered with a bare array.
	Rows []Object

	// Fields is the raw top-level object.
	Fields Object
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *QueryResponse) UnmarshalJSON(data []byte) error {
	*r = QueryResponse{}
	if isKind(data, '[') {
		r.Rows = decodeObjects(data)
		return nil
	}

	var o Object
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	r.Fields = o
	r.Summary = o.String("summary")
	r.Response = o.String("response")
	if basic, ok := o.Object("basic"); ok {
		r.Basic = &Basic{
			Area:    basic.String("area"),
			City:    basic.String("city"),
			Summary: basic.String("summary"),
		}
	}
	if chart, ok := o.Object("chart"); ok {
		r.Chart = chartFrom(chart)
	}
	r.Table = o.Objects("table")
	r.TableFull = o.Objects("table_full")
	r.TableSample = o.Objects("table_sample")
	for _, c := range o.Objects("compare") {
		ar := AreaResult{
			Area:    c.String("area"),
			Summary: c.String("summary"),
			Table:   c.Objects("table"),
		}
		if chart, ok := c.Object("chart"); ok {
			ar.Chart = chartFrom(chart)
		}
		r.Compare = append(r.Compare, ar)
	}
	return nil
}

func chartFrom(o Object) *Chart {
	years, ok := o.Array("years")
	if !ok {
		return nil
	}
	price, _ := o.Array("price")
	demand, _ := o.Array("demand")
	return &Chart{Years: years, Price: price, Demand: demand}
}

// =============================================================================
// COMPARISON RESULT
// =============================================================================

// ComparisonResult is the answer of /api/compare/.
type ComparisonResult struct {
	// Comparison maps metric -> area -> value, in backend key order.
	Comparison Object
	Summary    string
	// Fields is the raw top-level object, used when Comparison is empty.
	Fields Object
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ComparisonResult) UnmarshalJSON(data []byte) error {
	*c = ComparisonResult{}
	if !isKind(data, '{') {
		return nil
	}
	var o Object
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	c.Fields = o
	c.Summary = o.String("summary")
	if cmp, ok := o.Object("comparison"); ok {
		c.Comparison = cmp
	}
	return nil
}

// =============================================================================
// GROWTH RESULT
// =============================================================================

// GrowthPoint is one year of a price-growth series.
type GrowthPoint struct {
	Year  string
	Price any
}

// GrowthResult is the answer of /api/price_growth/.
//
// Two shapes are accepted: a flat {"<year>": price, ..., "summary": s} map,
// and {"area", "price_col", "growth": [{"year": y, "<price_col>": p}]}.
type GrowthResult struct {
	Area        string
	PriceColumn string
	Summary     string
	Points      []GrowthPoint
	// Empty is set when the backend answered with an empty object.
	Empty bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *GrowthResult) UnmarshalJSON(data []byte) error {
	*g = GrowthResult{}
	if !isKind(data, '{') {
		g.Empty = len(bytes.TrimSpace(data)) == 0 || string(bytes.TrimSpace(data)) == "null"
		return nil
	}
	var o Object
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	g.Empty = o.Len() == 0
	g.Summary = o.String("summary")

	if rows := o.Objects("growth"); o.Has("growth") {
		g.Area = o.String("area")
		g.PriceColumn = o.String("price_col")
		for _, row := range rows {
			g.Points = append(g.Points, GrowthPoint{
				Year:  Text(row.Value("year")),
				Price: growthPrice(row, g.PriceColumn),
			})
		}
		return nil
	}

	for _, k := range o.Keys {
		if k == "summary" {
			continue
		}
		g.Points = append(g.Points, GrowthPoint{Year: k, Price: o.Value(k)})
	}
	sortYears(g.Points)
	return nil
}

// growthPrice picks the price out of a growth row: the named column, then
// "price", then the first numeric field other than year.
func growthPrice(row Object, col string) any {
	if col != "" && row.Has(col) {
		return row.Value(col)
	}
	if row.Has("price") {
		return row.Value("price")
	}
	for _, k := range row.Keys {
		if k == "year" {
			continue
		}
		if v := row.Value(k); IsNumber(v) {
			return v
		}
	}
	return nil
}

// sortYears puts integer-like keys first in ascending order and keeps the
// rest in arrival order, matching how the backend's year maps enumerate.
func sortYears(points []GrowthPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		a, aerr := strconv.ParseUint(points[i].Year, 10, 32)
		b, berr := strconv.ParseUint(points[j].Year, 10, 32)
		switch {
		case aerr == nil && berr == nil:
			return a < b
		case aerr == nil:
			return true
		default:
			return false
		}
	})
}
