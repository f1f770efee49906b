package services

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SectionKind names one of the two printed sections.
type SectionKind string

const (
	SectionHardware     SectionKind = "hardware"
	SectionSubscription SectionKind = "subscription"
)

// SectionOrder is the order in which the two sections are printed.
type SectionOrder [2]SectionKind

// DefaultSectionOrder prints the one-time section first.
var DefaultSectionOrder = SectionOrder{SectionHardware, SectionSubscription}

// ParseSectionOrder builds the order from the section that should come first.
// Anything other than "subscription" keeps the hardware section first.
func ParseSectionOrder(first string) SectionOrder {
	if SectionKind(strings.ToLower(strings.TrimSpace(first))) == SectionSubscription {
		return SectionOrder{SectionSubscription, SectionHardware}
	}
	return DefaultSectionOrder
}

// UnmarshalJSON accepts the stored two-element array naming each section
// once. On error o is left unchanged.
func (o *SectionOrder) UnmarshalJSON(data []byte) error {
	var kinds []SectionKind
	if err := json.Unmarshal(data, &kinds); err != nil {
		return err
	}
	if len(kinds) != 2 {
		return fmt.Errorf("section order needs 2 entries, got %d", len(kinds))
	}
	for _, k := range kinds {
		if k != SectionHardware && k != SectionSubscription {
			return fmt.Errorf("unknown section %q", k)
		}
	}
	if kinds[0] == kinds[1] {
		return fmt.Errorf("section order must name both sections, got %q twice", kinds[0])
	}
	*o = SectionOrder{kinds[0], kinds[1]}
	return nil
}

const (
	hardwareSectionTitle     = "Hardware Only - One time Charges"
	subscriptionSectionTitle = "Subscription - Monthly ( Hardware + Software)"
)

// QuoteSection is one priced ledger as it appears on the document.
type QuoteSection struct {
	Kind            SectionKind
	Title           string
	Lines           []QuoteLine
	Totals          Totals
	DiscountPercent float64
	Recurring       bool
}

// BuildSections partitions and prices lines, returning the non-empty
// sections in the requested order.
func BuildSections(lines []QuoteLine, hardwareDiscount, subscriptionDiscount, taxPercent float64, order SectionOrder) []QuoteSection {
	oneTime, subscription := PartitionLines(lines)

	var sections []QuoteSection
	for _, kind := range order {
		switch kind {
		case SectionHardware:
			if len(oneTime) == 0 {
				continue
			}
			sections = append(sections, QuoteSection{
				Kind:            SectionHardware,
				Title:           hardwareSectionTitle,
				Lines:           oneTime,
				Totals:          ComputeTotals(oneTime, hardwareDiscount, taxPercent),
				DiscountPercent: hardwareDiscount,
			})
		case SectionSubscription:
			if len(subscription) == 0 {
				continue
			}
			sections = append(sections, QuoteSection{
				Kind:            SectionSubscription,
				Title:           subscriptionSectionTitle,
				Lines:           subscription,
				Totals:          ComputeTotals(subscription, subscriptionDiscount, taxPercent),
				DiscountPercent: subscriptionDiscount,
				Recurring:       true,
			})
		}
	}
	return sections
}

// ShowsTax reports whether tax and total rows are printed for a document
// with the given title. Proforma invoices stop at the taxable amount.
func ShowsTax(docTitle string) bool {
	return docTitle != ProformaInvoiceTitle
}

// WordsBasis picks the amount spelled out under a section.
func WordsBasis(docTitle string, t Totals) float64 {
	if !ShowsTax(docTitle) {
		return t.TaxableAmount
	}
	return t.Total
}

// ProformaTaxNote is the notice printed instead of tax rows on a proforma.
func ProformaTaxNote(taxRate float64) string {
	return fmt.Sprintf("* GST @%s will be applicable as per government norms and added in the final invoice", FormatPercent(taxRate))
}
