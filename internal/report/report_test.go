// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/estatechat-tui/internal/api"
)

func decode[T any](t *testing.T, body string) *T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return &v
}

func TestTableFromObjects_FirstRowDecidesColumns(t *testing.T) {
	rows := decode[[]api.Object](t, `[{"b": 1, "a": "x,y"}, {"a": "z", "c": true}]`)
	tbl := TableFromObjects(*rows)

	assert.Equal(t, []string{"b", "a"}, tbl.Columns)
	assert.Equal(t, [][]string{{"1", "x,y"}, {"", "z"}}, tbl.Strings())
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, "", tbl.Text(5, 0))
}

func TestTable_Objects(t *testing.T) {
	tbl := Table{Columns: []string{"year", "price"}, Rows: [][]any{{"2021", json.Number("7000")}}}
	out, err := json.Marshal(tbl.Objects())
	require.NoError(t, err)
	assert.Equal(t, `[{"year":"2021","price":7000}]`, string(out))
}

func TestNewFullReport(t *testing.T) {
	resp := decode[api.QueryResponse](t, `{
		"summary": "top",
		"basic": {"summary": "Wakad is steady"},
		"chart": {"years": [2020, 2021, 2022], "price": [7000, null], "demand": [100, 110, 120]},
		"table_sample": [{"year": 2020}],
		"table_full": [{"year": 2020, "final location": "wakad"}, {"year": 2021, "final location": "wakad"}]
	}`)

	r := NewFullReport("wakad", resp)
	assert.Equal(t, "Wakad is steady", r.Summary)
	assert.Equal(t, 2, r.Table.Len())
	assert.Equal(t, []string{"year", "final location"}, r.Table.Columns)
	assert.Equal(t, "wakad", r.FileName())
	assert.Contains(t, r.Title(), "wakad")

	require.NotNil(t, r.Chart)
	assert.Equal(t, []string{"2020", "2021", "2022"}, r.Chart.Labels)
	price := r.Chart.Series[0]
	assert.Equal(t, "Price", price.Name)
	assert.Equal(t, []Point{{7000, true}, {}, {}}, price.Points)
	lo, hi, ok := r.Chart.Range()
	assert.True(t, ok)
	assert.Equal(t, 100.0, lo)
	assert.Equal(t, 7000.0, hi)
}

func TestNewFullReport_Fallbacks(t *testing.T) {
	sample := NewFullReport("", decode[api.QueryResponse](t, `{"summary": "s", "table_sample": [{"x": 1}]}`))
	assert.Equal(t, "s", sample.Summary)
	assert.Equal(t, 1, sample.Table.Len())
	assert.True(t, sample.Chart.Empty())
	assert.Equal(t, "report", sample.FileName())

	array := NewFullReport("baner", decode[api.QueryResponse](t, `[{"x": 1}, {"x": 2}]`))
	assert.Equal(t, 2, array.Table.Len())
	assert.Empty(t, array.Summary)
}

func TestNewComparison(t *testing.T) {
	res := decode[api.ComparisonResult](t, `{
		"summary": "Baner is pricier",
		"comparison": {
			"city": {"wakad": "Pune", "baner": "Pune"},
			"pricing": {"wakad": 9000, "baner": 11000},
			"demand": {"wakad": 120}
		}
	}`)

	c := NewComparison([]string{"wakad", "baner"}, res)
	assert.Equal(t, "Baner is pricier", c.Summary)
	assert.Equal(t, []string{"Metric", "wakad", "baner"}, c.Table.Columns)
	assert.Equal(t, [][]string{
		{"city", "Pune", "Pune"},
		{"pricing", "9000", "11000"},
		{"demand", "120", "-"},
	}, c.Table.Strings())
	assert.Equal(t, "comparison_wakad_baner", c.FileName())

	require.NotNil(t, c.Chart)
	assert.Equal(t, ChartBar, c.Chart.Kind)
	assert.Equal(t, "pricing", c.Chart.Title)
	assert.Equal(t, []Point{{9000, true}, {11000, true}}, c.Chart.Series[0].Points)
}

func TestNewComparison_TopLevelFallback(t *testing.T) {
	res := decode[api.ComparisonResult](t, `{"pricing": {"wakad": 1, "baner": "n/a"}, "note": "x", "summary": "s"}`)
	c := NewComparison([]string{"wakad", "baner"}, res)

	assert.Equal(t, [][]string{
		{"pricing", "1", "n/a"},
		{"note", "-", "-"},
	}, c.Table.Strings())
	assert.Nil(t, c.Chart, "no metric is numeric for every area")
}

func TestNewComparison_Empty(t *testing.T) {
	c := NewComparison([]string{"wakad", "baner"}, decode[api.ComparisonResult](t, `{}`))
	assert.True(t, c.Table.Empty())
	assert.Equal(t, "Comparison generated for wakad, baner", c.Summary)
}

func TestNewGrowth(t *testing.T) {
	g := NewGrowth("wakad", decode[api.GrowthResult](t, `{"2022": 7600, "2021": 7000}`))
	assert.Equal(t, "Price growth analysis for wakad", g.Summary)
	assert.Equal(t, [][]string{{"2021", "7000"}, {"2022", "7600"}}, g.Table.Strings())
	assert.Equal(t, []string{"2021", "2022"}, g.Chart.Labels)
	assert.Equal(t, "price_growth_wakad", g.FileName())

	empty := NewGrowth("ravet", decode[api.GrowthResult](t, `{}`))
	assert.Equal(t, "No price growth data available for ravet", empty.Summary)
	assert.True(t, empty.Table.Empty())
	assert.Nil(t, empty.Chart)
}

func TestNewQueryView_Compare(t *testing.T) {
	resp := decode[api.QueryResponse](t, `{"compare": [
		{"area": "wakad", "summary": "w", "chart": {"years": [2021, 2022], "price": [1, 2], "demand": [3, 4]}, "table": [{"year": 2021, "price": 1}]},
		{"area": "baner", "summary": "b", "chart": {"years": [2021, 2022], "price": [5, 6], "demand": [7, 8]}, "table": [{"year": 2021, "price": 5}]}
	]}`)

	v := NewQueryView("compare wakad and baner", resp)
	assert.Empty(t, v.Summary)
	assert.Equal(t, []AreaSummary{{"wakad", "w"}, {"baner", "b"}}, v.Summaries)
	assert.Equal(t, []string{"area", "year", "price"}, v.Table.Columns)
	assert.Equal(t, [][]string{{"wakad", "2021", "1"}, {"baner", "2021", "5"}}, v.Table.Strings())

	require.NotNil(t, v.Chart)
	var names []string
	for _, s := range v.Chart.Series {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"wakad Price", "wakad Demand", "baner Price", "baner Demand"}, names)
	assert.Equal(t, "filtered_data", v.FileName())
}

func TestNewQueryView_Single(t *testing.T) {
	v := NewQueryView("wakad", decode[api.QueryResponse](t, `{"summary": "s", "table": [{"a": 1}], "chart": {"years": [2020], "price": [9]}}`))
	assert.Equal(t, "s", v.Summary)
	assert.Equal(t, 1, v.Table.Len())
	assert.False(t, v.Chart.Empty())
}

func TestChart_EmptyAndRange(t *testing.T) {
	var nilChart *Chart
	assert.True(t, nilChart.Empty())
	_, _, ok := nilChart.Range()
	assert.False(t, ok)

	c := &Chart{Labels: []string{"a"}, Series: []Series{{Points: []Point{{}}}}}
	assert.True(t, c.Empty())
}
