package services

import (
	"fmt"
	"strings"
)

// FormatINR formats an amount as whole Indian Rupees using the Indian
// numbering system, where after the rightmost 3 digits the digits are grouped
// in pairs (e.g., ₹1,23,45,678). Fractions are rounded half up, the same
// way totals are computed.
func FormatINR(amount float64) string {
	rounded := roundHalfUp(amount)
	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	result := "₹" + applyIndianGrouping(fmt.Sprintf("%.0f", rounded))
	if negative {
		result = "-" + result
	}
	return result
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	// The last 3 digits stay together.
	result := s[n-3:]
	remaining := s[:n-3]

	// Group remaining digits in pairs from the right.
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}

// FormatPercent renders a percentage without trailing zeros ("18%", "12.5%").
func FormatPercent(p float64) string {
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", p), "0"), ".")
	return s + "%"
}
