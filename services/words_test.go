package services

import (
	"math"
	"testing"
)

func TestAmountToWords(t *testing.T) {
	tests := []struct {
		amount float64
		expect string
	}{
		{0, ""},
		{1, "One"},
		{19, "Nineteen"},
		{20, "Twenty"},
		{21, "Twenty One"},
		{100, "One Hundred"},
		{105, "One Hundred and Five"},
		{1062, "One Thousand and Sixty Two"},
		{2242, "Two Thousand Two Hundred and Forty Two"},
		{12803, "Twelve Thousand Eight Hundred and Three"},
		{100000, "One Lakh"},
		{250000, "Two Lakh Fifty Thousand"},
		{10000000, "One Crore"},
		{123456789, "Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred and Eighty Nine"},
		{999999999, "Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred and Ninety Nine"},
		{1000000000, WordsOverflow},
		{12802.5, "Twelve Thousand Eight Hundred and Three"},
		{12802.4, "Twelve Thousand Eight Hundred and Two"},
		{-5, ""},
		{-12345678, ""},
		{-99999999.4, ""},
		{-99999999.6, WordsOverflow},
		{-123456789, WordsOverflow},
		{-1234567890, WordsOverflow},
		{1e20, WordsOverflow},
	}

	for _, tt := range tests {
		t.Run(FormatINR(tt.amount), func(t *testing.T) {
			if got := AmountToWords(tt.amount); got != tt.expect {
				t.Errorf("AmountToWords(%v) = %q, want %q", tt.amount, got, tt.expect)
			}
		})
	}
}

func TestAmountToWords_NaN(t *testing.T) {
	if got := AmountToWords(math.NaN()); got != "" {
		t.Errorf("AmountToWords(NaN) = %q, want empty", got)
	}
}

func TestRupeesInWords(t *testing.T) {
	tests := []struct {
		amount float64
		expect string
	}{
		{12803, "Rupees Twelve Thousand Eight Hundred and Three Only"},
		{0, "Rupees Zero Only"},
		{5, "Rupees Five Only"},
	}
	for _, tt := range tests {
		if got := RupeesInWords(tt.amount); got != tt.expect {
			t.Errorf("RupeesInWords(%v) = %q, want %q", tt.amount, got, tt.expect)
		}
	}
}
