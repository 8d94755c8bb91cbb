package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatCompact renders follower-like counts the way the calendar grid shows
// them: 1.2M, 245.0K, 999.
func FormatCompact(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}

// FormatThousands renders n with thousands separators (4,027,000).
func FormatThousands(n int64) string {
	return humanize.Comma(n)
}
