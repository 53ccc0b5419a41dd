// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_PreservesKeyOrder(t *testing.T) {
	var o Object
	require.NoError(t, json.Unmarshal([]byte(`{"zeta": 1, "alpha": "two", "mid": null}`), &o))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, o.Keys)
	assert.True(t, o.Has("mid"))
	assert.Nil(t, o.Value("mid"))
	assert.Equal(t, "two", o.String("alpha"))
	assert.Equal(t, "", o.String("zeta"), "numbers are not strings")

	out, err := json.Marshal(o)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zeta": 1, "alpha": "two", "mid": null}`, string(out))
	assert.Equal(t, `{"zeta":1,"alpha":"two","mid":null}`, string(out))
}

func TestObject_DuplicateKeysKeepFirstPosition(t *testing.T) {
	var o Object
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1, "b": 2, "a": 3}`), &o))
	assert.Equal(t, []string{"a", "b"}, o.Keys)
	assert.Equal(t, json.Number("3"), o.Value("a"))
}

func TestObject_RejectsNonObject(t *testing.T) {
	var o Object
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &o))
	require.NoError(t, json.Unmarshal([]byte(`null`), &o))
	assert.Zero(t, o.Len())
}

func TestNewObject(t *testing.T) {
	o := NewObject("a", 1, "b", "x,y")
	assert.Equal(t, []string{"a", "b"}, o.Keys)
	assert.Equal(t, "x,y", o.String("b"))
}

func TestFloat(t *testing.T) {
	tests := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{json.Number("7200.5"), 7200.5, true},
		{"  42 ", 42, true},
		{"n/a", 0, false},
		{nil, 0, false},
		{true, 0, false},
		{3.5, 3.5, true},
	}
	for _, tt := range tests {
		got, ok := Float(tt.in)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.in)
		assert.Equal(t, tt.want, got, "%v", tt.in)
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "x,y", Text("x,y"))
	assert.Equal(t, "1", Text(json.Number("1")))
	assert.Equal(t, "true", Text(true))
	assert.Equal(t, `{"a":1}`, Text(map[string]any{"a": json.Number("1")}))
	assert.Equal(t, `[1,"b"]`, Text([]any{json.Number("1"), "b"}))
}

func TestQueryResponse_LenientFields(t *testing.T) {
	var r QueryResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"summary": 12,
		"response": "Area not found. Try: Analyze Wakad",
		"chart": {"price": [1, 2]},
		"table": "not a table",
		"compare": [
			{"area": "wakad", "summary": "w", "chart": {"years": [2020], "price": [1], "demand": [2]}, "table": [{"x": 1}]},
			"garbage",
			{"area": "baner", "table": [{"x": 2}, 5]}
		]
	}`), &r))

	assert.Equal(t, "", r.Summary, "a non-string summary is absent")
	assert.Equal(t, "Area not found. Try: Analyze Wakad", r.Response)
	assert.Nil(t, r.Chart, "a chart without years is absent")
	assert.Nil(t, r.Table)
	require.Len(t, r.Compare, 2)
	assert.Equal(t, "wakad", r.Compare[0].Area)
	require.NotNil(t, r.Compare[0].Chart)
	assert.Nil(t, r.Compare[1].Chart)
	assert.Len(t, r.Compare[1].Table, 1)
}

func TestQueryResponse_TopLevelArray(t *testing.T) {
	var r QueryResponse
	require.NoError(t, json.Unmarshal([]byte(`[{"b": 1, "a": 2}, {"b": 3, "a": 4}]`), &r))
	require.Len(t, r.Rows, 2)
	assert.Equal(t, []string{"b", "a"}, r.Rows[0].Keys)
}

func TestComparisonResult(t *testing.T) {
	var c ComparisonResult
	require.NoError(t, json.Unmarshal([]byte(`{"summary": "s", "pricing": {"wakad": 1}}`), &c))
	assert.Zero(t, c.Comparison.Len())
	assert.Equal(t, []string{"summary", "pricing"}, c.Fields.Keys)
}

func TestGrowthResult_Shapes(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantYears  []string
		wantPrices []any
		wantArea   string
	}{
		{
			name:       "year map",
			body:       `{"summary": "s", "2022": 7600, "2021": 7000}`,
			wantYears:  []string{"2021", "2022"},
			wantPrices: []any{json.Number("7000"), json.Number("7600")},
		},
		{
			name:       "growth rows with price column",
			body:       `{"area": "Wakad", "price_col": "flat - weighted average rate", "growth": [{"year": 2021, "flat - weighted average rate": 7000.5}, {"year": 2022, "flat - weighted average rate": 7600}]}`,
			wantYears:  []string{"2021", "2022"},
			wantPrices: []any{json.Number("7000.5"), json.Number("7600")},
			wantArea:   "Wakad",
		},
		{
			name:       "growth rows without price column",
			body:       `{"growth": [{"year": 2020, "avg": 10}, {"year": 2021, "price": 12}]}`,
			wantYears:  []string{"2020", "2021"},
			wantPrices: []any{json.Number("10"), json.Number("12")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g GrowthResult
			require.NoError(t, json.Unmarshal([]byte(tt.body), &g))

			var years []string
			var prices []any
			for _, p := range g.Points {
				years = append(years, p.Year)
				prices = append(prices, p.Price)
			}
			assert.Equal(t, tt.wantYears, years)
			assert.Equal(t, tt.wantPrices, prices)
			assert.Equal(t, tt.wantArea, g.Area)
			assert.False(t, g.Empty)
		})
	}
}

func TestGrowthResult_Empty(t *testing.T) {
	var g GrowthResult
	require.NoError(t, json.Unmarshal([]byte(`{}`), &g))
	assert.True(t, g.Empty)
	assert.Empty(t, g.Points)
}
