package tui

import (
	"strings"
	"time"
	"unicode/utf8"
)

// formatDate renders a post date in the short date/time form, e.g. "02/01/2026 15:04".
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("02/01/2006 15:04")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// oneLine collapses newlines and whitespace runs for single-line displays.
func oneLine(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// center pads s with leading spaces so it sits in the middle of width.
func center(s string, visible, width int) string {
	pad := (width - visible) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}
