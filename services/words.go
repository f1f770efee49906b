package services

import (
	"math"
	"strconv"
	"strings"
)

// WordsOverflow is returned by AmountToWords for amounts above 9 digits.
const WordsOverflow = "overflow"

// indianGroups are the fixed-width digit groups of a 9-digit amount, most
// significant first.
var indianGroups = []struct {
	width int
	label string
}{
	{2, "Crore"},
	{2, "Lakh"},
	{2, "Thousand"},
	{1, "Hundred"},
	{2, ""},
}

// AmountToWords renders the rounded amount in Indian English words, e.g.
// 12803 → "Twelve Thousand Eight Hundred and Three". An amount whose
// written form, minus sign included, is longer than nine characters renders
// as WordsOverflow. Zero and the remaining negative amounts render as the
// empty string.
func AmountToWords(amount float64) string {
	r := roundHalfUp(amount)
	switch {
	case math.IsNaN(r):
		return ""
	case r >= 1e9 || r <= -1e8:
		return WordsOverflow
	case r < 0:
		return ""
	}
	digits := strconv.FormatInt(int64(r), 10)
	digits = strings.Repeat("0", 9-len(digits)) + digits

	var parts []string
	pos := 0
	for _, g := range indianGroups {
		value, _ := strconv.Atoi(digits[pos : pos+g.width])
		pos += g.width
		if value == 0 {
			continue
		}
		if g.label == "" {
			if len(parts) > 0 {
				parts = append(parts, "and")
			}
			parts = append(parts, convertUnder100(value))
			continue
		}
		parts = append(parts, convertUnder100(value), g.label)
	}

	return strings.Join(parts, " ")
}

// RupeesInWords wraps AmountToWords in the phrasing printed under totals.
func RupeesInWords(amount float64) string {
	words := AmountToWords(amount)
	if words == "" {
		words = "Zero"
	}
	return "Rupees " + words + " Only"
}

func convertUnder100(n int) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
