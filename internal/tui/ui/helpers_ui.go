package ui

import "github.com/mattn/go-runewidth"

// truncateString shortens plain text to maxLen display cells, ending with "…" when cut.
// Style the result afterwards; escape sequences would be counted as text.
func truncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(s, maxLen, "…")
}
