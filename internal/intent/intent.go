// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package intent decides what a chat message is asking for.
//
// A message is normalized, scanned for known area names, then run through an
// ordered rule table. The first rule whose predicate matches decides the
// outcome; a message no rule claims is forwarded to the backend verbatim.
package intent

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ============================================================================
// DECISION TYPES
// ============================================================================

// Kind is the outcome of dispatching one message.
type Kind int

const (
	// KindNone is returned for blank input; nothing should happen.
	KindNone Kind = iota
	KindThanks
	KindAcknowledge
	KindAskArea
	KindPriceGrowth
	KindAnalyze
	KindCompare
	KindFallback
)

func (k Kind) String() string {
	switch k {
	case KindThanks:
		return "thanks"
	case KindAcknowledge:
		return "acknowledge"
	case KindAskArea:
		return "ask_area"
	case KindPriceGrowth:
		return "price_growth"
	case KindAnalyze:
		return "analyze"
	case KindCompare:
		return "compare"
	case KindFallback:
		return "fallback"
	default:
		return "none"
	}
}

// Canned replies.
const (
	ReplyThanks      = "You're welcome 😊"
	ReplyAcknowledge = "Alright 👍 Let me know what you’d like to know next."
	ReplyAskArea     = "Great! Tell me the name of the area?"
)

// Input is what rule predicates see.
type Input struct {
	// Text is the normalized message.
	Text string
	// Areas are the known areas found in Text, in known-list order.
	Areas []string
}

// Decision is the result of Dispatcher.Decide.
type Decision struct {
	Kind Kind
	// Rule names the rule that matched, or "fallback".
	Rule string
	// Raw is the trimmed message as typed.
	Raw string
	// Text is the normalized message; fallback queries send this.
	Text  string
	Areas []string
	// Reply is set for canned-reply kinds.
	Reply string
}

// ============================================================================
// NORMALIZATION AND AREA MATCHING
// ============================================================================

// Normalize composes text to NFC, lowercases it and trims surrounding space,
// so "Baner" typed with a combining accent or in caps still matches.
func Normalize(text string) string {
	return strings.TrimSpace(strings.ToLower(norm.NFC.String(text)))
}

// ExtractAreas returns the known areas that occur in text as substrings.
// text should already be normalized. The result is deduplicated and ordered
// by position in known, not by position in text.
func ExtractAreas(text string, known []string) []string {
	var found []string
	seen := make(map[string]bool, len(known))
	for _, area := range known {
		a := Normalize(area)
		if a == "" || seen[a] {
			continue
		}
		if strings.Contains(text, a) {
			seen[a] = true
			found = append(found, a)
		}
	}
	return found
}
