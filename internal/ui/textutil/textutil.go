// Package textutil fits plain (unstyled) text into terminal columns.
package textutil

import "github.com/mattn/go-runewidth"

// TruncateEllipsis marks text that was cut.
const TruncateEllipsis = "…"

// VisualWidth is the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s to at most maxWidth columns, ending with an ellipsis
// when anything was removed.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxWidth, TruncateEllipsis)
}

// Fit truncates or right-pads s to exactly width columns.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.FillRight(Truncate(s, width), width)
}
