package formatter

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// FormatSize renders a byte count in megabytes with two decimals.
// Example: 5242880 -> "5.00MB"
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2fMB", float64(bytes)/1024/1024)
}

// FormatSeconds renders a duration as seconds with one decimal.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1f", d.Seconds())
}

// Truncate shortens s to at most n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
