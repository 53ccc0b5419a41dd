// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var knownAreas = []string{
	"wakad", "aundh", "akurdi", "baner", "hinjewadi", "kothrud",
	"pimple saudagar", "ambegoan budruk", "hadapsar", "pimple nilakh", "ravet",
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "compare wakad and baner", Normalize("  Compare WAKAD and Baner \n"))
	// "E" + combining acute composes to a single rune.
	assert.Equal(t, "caf\u00e9", Normalize("CAFE\u0301"))
}

func TestExtractAreas(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"none", "what is the weather", nil},
		{"one", "analyze wakad", []string{"wakad"}},
		{"known-list order", "baner vs wakad", []string{"wakad", "baner"}},
		{"deduplicated", "wakad wakad wakad and baner", []string{"wakad", "baner"}},
		{"multi word", "pimple saudagar or pimple nilakh", []string{"pimple saudagar", "pimple nilakh"}},
		{"substring", "wakadroad", []string{"wakad"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractAreas(tt.text, knownAreas))
		})
	}
}

func TestExtractAreas_NormalizesKnownList(t *testing.T) {
	got := ExtractAreas("wakad", []string{" Wakad ", "wakad", ""})
	assert.Equal(t, []string{"wakad"}, got)
}

func TestDispatcher_Decide(t *testing.T) {
	d := NewDispatcher(knownAreas)

	tests := []struct {
		input     string
		wantKind  Kind
		wantAreas []string
		wantReply string
	}{
		{"Thank you!", KindThanks, nil, ReplyThanks},
		{"thanks for wakad info", KindThanks, []string{"wakad"}, ReplyThanks},
		{"OK", KindAcknowledge, nil, ReplyAcknowledge},
		{"okay", KindAcknowledge, nil, ReplyAcknowledge},
		{"k", KindAcknowledge, nil, ReplyAcknowledge},
		{"okkk sure", KindAcknowledge, nil, ReplyAcknowledge},
		{"ok wakad", KindAnalyze, []string{"wakad"}, ""},
		{"I want information", KindAskArea, nil, ReplyAskArea},
		{"i want to know about area", KindAskArea, nil, ReplyAskArea},
		{"Show price growth for Wakad", KindPriceGrowth, []string{"wakad"}, ""},
		{"price growth of baner and aundh", KindCompare, []string{"aundh", "baner"}, ""},
		{"Analyze Wakad", KindAnalyze, []string{"wakad"}, ""},
		{"Compare Wakad and Baner", KindCompare, []string{"wakad", "baner"}, ""},
		{"ravet hadapsar kothrud", KindCompare, []string{"kothrud", "hadapsar", "ravet"}, ""},
		{"What is the best locality?", KindFallback, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := d.Decide(tt.input)
			assert.Equal(t, tt.wantKind, got.Kind, "rule %s", got.Rule)
			assert.Equal(t, tt.wantAreas, got.Areas)
			assert.Equal(t, tt.wantReply, got.Reply)
		})
	}
}

func TestDispatcher_FallbackCarriesLowercasedText(t *testing.T) {
	d := NewDispatcher(knownAreas)
	got := d.Decide("  Which Area Has Best ROI?  ")
	assert.Equal(t, KindFallback, got.Kind)
	assert.Equal(t, "fallback", got.Rule)
	assert.Equal(t, "which area has best roi?", got.Text)
	assert.Equal(t, "Which Area Has Best ROI?", got.Raw)
}

func TestDispatcher_Blank(t *testing.T) {
	got := NewDispatcher(knownAreas).Decide(" \t ")
	assert.Equal(t, KindNone, got.Kind)
}

func TestDispatcher_CustomRulesRunInOrder(t *testing.T) {
	rules := []Rule{
		{Name: "first", Kind: KindThanks, Match: func(Input) bool { return true }},
		{Name: "second", Kind: KindCompare, Match: func(Input) bool { return true }},
	}
	got := NewDispatcher(knownAreas, rules...).Decide("anything")
	assert.Equal(t, "first", got.Rule)
}

func TestDispatcher_KnownAreasIsCopy(t *testing.T) {
	areas := []string{"wakad"}
	d := NewDispatcher(areas)
	areas[0] = "baner"
	assert.Equal(t, []string{"wakad"}, d.KnownAreas())
	assert.Equal(t, KindAnalyze, d.Decide("wakad").Kind)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "price_growth", KindPriceGrowth.String())
	assert.Equal(t, "none", Kind(42).String())
}
