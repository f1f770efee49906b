package services

import "time"

// Date layouts used on printed quotes.
const (
	quoteDateLayout   = "2/1/2006"
	historyDateLayout = "2 Jan 2006"
)

// QuoteValidity is how long a quote stays valid after its date.
const QuoteValidity = 30 * 24 * time.Hour

// QuoteExportLine holds a single line as printed.
type QuoteExportLine struct {
	SINo           int
	Name           string
	Description    string
	Category       string
	Qty            int
	UnitPrice      float64
	DiscountedUnit float64
	Discount       float64
	Discounted     bool
	LineTotal      float64
}

// QuoteExportSection holds one ledger as printed.
type QuoteExportSection struct {
	Title           string
	Recurring       bool
	Lines           []QuoteExportLine
	DiscountPercent float64
	Totals          Totals
	TotalLabel      string
	AmountInWords   string
}

// QuoteExportData holds all data needed to render a quote.
type QuoteExportData struct {
	DocTitle    string
	QuoteNumber string
	Company     CompanyInfo
	Customer    Customer
	Date        string
	ValidUntil  string

	Sections []QuoteExportSection
	TaxRate  float64
	ShowTax  bool
	TaxNote  string

	Aggregate Totals
	Bank      BankDetails

	SubscriptionTerms string
	Notes             string
}

// BuildQuoteExportData lays out the session for printing with the given
// settings. number may be empty for an unsaved quote.
func BuildQuoteExportData(s *Session, settings Settings, number string, now time.Time) *QuoteExportData {
	data := &QuoteExportData{
		DocTitle:    settings.DocTitle,
		QuoteNumber: number,
		Company:     settings.Company,
		Customer:    s.Customer,
		Date:        now.Format(quoteDateLayout),
		ValidUntil:  now.Add(QuoteValidity).Format(quoteDateLayout),
		TaxRate:     s.TaxRate,
		ShowTax:     ShowsTax(settings.DocTitle),
		Aggregate:   s.Totals().Aggregate,
		Bank:        settings.Bank,
		Notes:       s.Notes,
	}
	if !data.ShowTax {
		data.TaxNote = ProformaTaxNote(s.TaxRate)
	}

	lines := s.Lines()
	sections := BuildSections(lines, s.HardwareDiscount, s.SubscriptionDiscount, s.TaxRate, settings.SectionOrder)
	for _, sec := range sections {
		es := QuoteExportSection{
			Title:           sec.Title,
			Recurring:       sec.Recurring,
			DiscountPercent: sec.DiscountPercent,
			Totals:          sec.Totals,
			TotalLabel:      "Total (One-time)",
			AmountInWords:   RupeesInWords(WordsBasis(settings.DocTitle, sec.Totals)),
		}
		if sec.Recurring {
			es.TotalLabel = "Total (Monthly)"
			data.SubscriptionTerms = settings.SubscriptionTerms
		}
		for i, l := range sec.Lines {
			discounted := l.Price * (1 - l.Discount/100)
			es.Lines = append(es.Lines, QuoteExportLine{
				SINo:           i + 1,
				Name:           l.Name,
				Description:    l.Description,
				Category:       l.Category,
				Qty:            l.Quantity,
				UnitPrice:      l.Price,
				DiscountedUnit: discounted,
				Discount:       l.Discount,
				Discounted:     l.Discount > 0,
				LineTotal:      float64(l.Quantity) * discounted,
			})
		}
		data.Sections = append(data.Sections, es)
	}

	return data
}

// FormatHistoryDate renders a saved quote date for listings.
func FormatHistoryDate(t time.Time) string {
	return t.Format(historyDateLayout)
}
