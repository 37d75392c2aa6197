// Package utils provides common formatting and normalization helpers for
// AlphaVault.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatUSD formats a dollar amount with US grouping ($1,234,567.89).
func FormatUSD(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	cents := int64(math.Round(amount * 100))
	formatted := groupThousands(cents/100) + fmt.Sprintf(".%02d", cents%100)

	if negative {
		return "-$" + formatted
	}
	return "$" + formatted
}

// FormatUSDCompact formats a raw dollar amount in compact notation.
// e.g., 1500000 → "$1.5M", 2300000000 → "$2.3B"
func FormatUSDCompact(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	prefix := "$"
	if negative {
		prefix = "-$"
	}

	switch {
	case amount >= 1e12:
		return fmt.Sprintf("%s%sT", prefix, formatWithDecimals(amount/1e12))
	case amount >= 1e9:
		return fmt.Sprintf("%s%sB", prefix, formatWithDecimals(amount/1e9))
	case amount >= 1e6:
		return fmt.Sprintf("%s%sM", prefix, formatWithDecimals(amount/1e6))
	case amount >= 1e3:
		return fmt.Sprintf("%s%sK", prefix, formatWithDecimals(amount/1e3))
	default:
		return fmt.Sprintf("%s%.2f", prefix, amount)
	}
}

// FormatMillions formats an amount expressed in millions of USD, the unit
// parsed filings use. e.g., 1500 → "$1.5B", 52.5 → "$52.5M"
func FormatMillions(millions float64) string {
	return FormatUSDCompact(millions * 1e6)
}

// FormatPct formats a percentage value with sign and suffix.
// e.g., 2.45 → "+2.45%", -1.23 → "-1.23%"
func FormatPct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatVolume formats share volume compactly.
// e.g., 1500000 → "1.50M", 25000 → "25.00K"
func FormatVolume(volume int64) string {
	v := float64(volume)
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%d", volume)
	}
}

// groupThousands formats a non-negative integer with comma separators.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// formatWithDecimals formats a number with up to 2 decimal places,
// removing trailing zeros.
func formatWithDecimals(n float64) string {
	s := fmt.Sprintf("%.2f", n)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
