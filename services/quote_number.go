package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
)

// QuoteNumberPrefix starts every saved quote number.
const QuoteNumberPrefix = "BC-Q"

// GetFiscalYear returns the Indian fiscal year string for a given date.
// Indian fiscal year runs April to March.
// Jan 2026 → "25-26", May 2026 → "26-27"
func GetFiscalYear(t time.Time) string {
	startYear := t.Year()
	if t.Month() < time.April {
		startYear--
	}
	return fmt.Sprintf("%02d-%02d", startYear%100, (startYear+1)%100)
}

func formatQuoteNumber(fiscalYear string, sequence int) string {
	return fmt.Sprintf("%s-%s-%03d", QuoteNumberPrefix, fiscalYear, sequence)
}

// GenerateQuoteNumber creates the next quote number for the fiscal year of now.
// Format: BC-Q-{fiscal_year}-{sequence}
// - fiscal_year: Indian fiscal year (Apr-Mar), e.g., "25-26"
// - sequence: 3-digit zero-padded, one above the highest used this fiscal year
func GenerateQuoteNumber(app *pocketbase.PocketBase, now time.Time) (string, error) {
	fiscalYear := GetFiscalYear(now)
	prefix := fmt.Sprintf("%s-%s-", QuoteNumberPrefix, fiscalYear)

	existing, err := app.FindRecordsByFilter(
		"saved_quotes",
		"quote_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		return "", fmt.Errorf("generate quote number: %w", err)
	}

	highest := 0
	for _, r := range existing {
		seq, err := strconv.Atoi(strings.TrimPrefix(r.GetString("quote_number"), prefix))
		if err == nil && seq > highest {
			highest = seq
		}
	}

	return formatQuoteNumber(fiscalYear, highest+1), nil
}
