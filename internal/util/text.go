// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Clip shortens s to at most width display columns, ending with an ellipsis
// when something was cut. Wide runes (CJK, emoji) count as two columns.
func Clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight clips s to width and pads it with spaces to exactly width columns.
func PadRight(s string, width int) string {
	s = Clip(s, width)
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// Width reports the display width of s.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// FormatNumber renders f without a trailing ".00" for whole numbers and with
// two decimals otherwise. NaN and Inf render as "-".
func FormatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "-"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}
