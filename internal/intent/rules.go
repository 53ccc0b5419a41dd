// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package intent

import "strings"

// ============================================================================
// RULE TABLE
// ============================================================================

// Rule is one (predicate, action) pair of the dispatch table.
type Rule struct {
	Name  string
	Kind  Kind
	Match func(in Input) bool
	// Reply is copied into the Decision for canned-reply rules.
	Reply string
}

// infoPhrases ask for area information without naming an area.
var infoPhrases = []string{
	"i want information",
	"i want to know about",
	"i want info",
	"information of area",
	"information about area",
	"i want to know information",
	"know about area",
}

var growthPhrases = []string{
	"price growth",
	"price growth for",
	"show price growth",
}

// DefaultRules is the dispatch table in priority order:
//  1. thanks: contains "thank"
//  2. acknowledge: exactly ok/okay/k, or contains "okk"
//  3. ask_area: an "I want info about an area" phrase
//  4. price_growth: one area and a price growth phrase
//  5. analyze: one area
//  6. compare: two or more areas
//
// Anything else falls back to a free-text backend query.
var DefaultRules = []Rule{
	{
		Name:  "thanks",
		Kind:  KindThanks,
		Reply: ReplyThanks,
		Match: func(in Input) bool { return strings.Contains(in.Text, "thank") },
	},
	{
		Name:  "acknowledge",
		Kind:  KindAcknowledge,
		Reply: ReplyAcknowledge,
		Match: func(in Input) bool {
			switch in.Text {
			case "ok", "okay", "k":
				return true
			}
			return strings.Contains(in.Text, "okk")
		},
	},
	{
		Name:  "ask_area",
		Kind:  KindAskArea,
		Reply: ReplyAskArea,
		Match: func(in Input) bool { return containsAny(in.Text, infoPhrases) },
	},
	{
		Name: "price_growth",
		Kind: KindPriceGrowth,
		Match: func(in Input) bool {
			return len(in.Areas) == 1 && containsAny(in.Text, growthPhrases)
		},
	},
	{
		Name:  "analyze",
		Kind:  KindAnalyze,
		Match: func(in Input) bool { return len(in.Areas) == 1 },
	},
	{
		Name:  "compare",
		Kind:  KindCompare,
		Match: func(in Input) bool { return len(in.Areas) >= 2 },
	},
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// ============================================================================
// DISPATCHER
// ============================================================================

// Dispatcher evaluates a rule table against messages. It is immutable and
// safe for concurrent use.
type Dispatcher struct {
	known []string
	rules []Rule
}

// NewDispatcher returns a dispatcher over the known areas. With no rules,
// DefaultRules is used.
func NewDispatcher(known []string, rules ...Rule) *Dispatcher {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Dispatcher{
		known: append([]string(nil), known...),
		rules: append([]Rule(nil), rules...),
	}
}

// KnownAreas returns a copy of the area list.
func (d *Dispatcher) KnownAreas() []string {
	return append([]string(nil), d.known...)
}

// Decide classifies one message.
func (d *Dispatcher) Decide(text string) Decision {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return Decision{Kind: KindNone, Rule: "none"}
	}

	in := Input{Text: Normalize(raw)}
	in.Areas = ExtractAreas(in.Text, d.known)

	for _, r := range d.rules {
		if r.Match != nil && r.Match(in) {
			return Decision{
				Kind:  r.Kind,
				Rule:  r.Name,
				Raw:   raw,
				Text:  in.Text,
				Areas: in.Areas,
				Reply: r.Reply,
			}
		}
	}
	return Decision{Kind: KindFallback, Rule: "fallback", Raw: raw, Text: in.Text, Areas: in.Areas}
}
