package services

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfMuted    = &props.Color{Red: 100, Green: 100, Blue: 100}
	pdfDark     = &props.Color{Red: 33, Green: 37, Blue: 41}
	pdfWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
	pdfGreen    = &props.Color{Red: 22, Green: 163, Blue: 74}
	pdfRed      = &props.Color{Red: 220, Green: 38, Blue: 38}
	pdfTermsBg  = &props.Color{Red: 239, Green: 246, Blue: 255}
	pdfStripeBg = &props.Color{Red: 248, Green: 249, Blue: 250}
)

// GenerateQuotePDF creates a PDF document for a quote using maroto/v2.
// It returns the raw PDF bytes or an error.
func GenerateQuotePDF(data *QuoteExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data)
	addQuoteParties(m, data)
	for _, sec := range data.Sections {
		addQuoteSection(m, data, sec)
	}
	addQuoteTaxNote(m, data)
	addQuoteBankDetails(m, data)
	addQuoteSubscriptionTerms(m, data)
	addQuoteNotes(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate quote PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addQuoteHeader adds the brand on the left and the document title with the
// vendor block on the right.
func addQuoteHeader(m core.Maroto, data *QuoteExportData) {
	right := props.Text{Size: 8, Align: align.Right, Color: pdfMuted}

	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(text.New(data.Company.Name, props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(6).Add(text.New(data.DocTitle, props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Right,
				Color: pdfDark,
			})),
		),
	)

	if data.QuoteNumber != "" {
		m.AddRows(row.New(6).Add(
			col.New(12).Add(text.New(fmt.Sprintf("Quote #: %s", data.QuoteNumber), props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		))
	}

	for _, line := range []string{
		data.Company.Address,
		joinNonEmpty([]string{data.Company.Email, data.Company.Phone}, " | "),
		fmtField("GSTIN", data.Company.GSTIN),
	} {
		if line == "" {
			continue
		}
		m.AddRows(row.New(5).Add(col.New(12).Add(text.New(line, right))))
	}

	m.AddRows(row.New(4))
}

// addQuoteParties adds the customer block and the quote dates.
func addQuoteParties(m core.Maroto, data *QuoteExportData) {
	label := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: pdfMuted}
	rightLabel := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right, Color: pdfMuted}
	value := props.Text{Size: 8, Align: align.Left}
	rightValue := props.Text{Size: 8, Align: align.Right}

	m.AddRows(row.New(6).Add(
		col.New(6).Add(text.New("QUOTE FOR", label)),
		col.New(6).Add(text.New("QUOTE DETAILS", rightLabel)),
	))
	m.AddRows(row.New(7).Add(
		col.New(6).Add(text.New(data.Customer.Name, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Left})),
		col.New(3).Add(text.New("Date:", rightLabel)),
		col.New(3).Add(text.New(data.Date, rightValue)),
	))
	m.AddRows(row.New(6).Add(
		col.New(6).Add(text.New(data.Customer.Address, value)),
		col.New(3).Add(text.New("Valid Until:", rightLabel)),
		col.New(3).Add(text.New(data.ValidUntil, rightValue)),
	))

	for _, line := range []string{data.Customer.Contact, data.Customer.Email, data.Customer.Phone} {
		if line == "" {
			continue
		}
		m.AddRows(row.New(5).Add(col.New(6).Add(text.New(line, value))))
	}

	m.AddRows(row.New(4))
}

// addQuoteSection adds one ledger: its title, the line table and the totals.
func addQuoteSection(m core.Maroto, data *QuoteExportData, sec QuoteExportSection) {
	m.AddRows(row.New(8).Add(
		col.New(12).Add(text.New(sec.Title, props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: pdfDark,
		})),
	))

	headerText := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Center, Color: pdfWhite}
	headerLeft := headerText
	headerLeft.Align = align.Left
	headerRight := headerText
	headerRight.Align = align.Right
	headerCell := &props.Cell{BackgroundColor: pdfDark}

	m.AddRows(row.New(7).Add(
		col.New(1).Add(text.New("#", headerText)).WithStyle(headerCell),
		col.New(6).Add(text.New("Description", headerLeft)).WithStyle(headerCell),
		col.New(1).Add(text.New("Qty", headerText)).WithStyle(headerCell),
		col.New(2).Add(text.New("Unit Price", headerRight)).WithStyle(headerCell),
		col.New(2).Add(text.New("Total", headerRight)).WithStyle(headerCell),
	))

	for i, l := range sec.Lines {
		center := props.Text{Size: 7, Align: align.Center}
		left := props.Text{Size: 7, Align: align.Left, Style: fontstyle.Bold}
		small := props.Text{Size: 6, Align: align.Left, Color: pdfMuted, Top: 4}
		rightText := props.Text{Size: 7, Align: align.Right}

		unit := FormatINR(l.UnitPrice)
		if l.Discounted {
			unit = fmt.Sprintf("%s (was %s)", FormatINR(l.DiscountedUnit), FormatINR(l.UnitPrice))
		}

		descCol := col.New(6).Add(text.New(l.Name, left))
		if l.Description != "" {
			descCol = descCol.Add(text.New(l.Description, small))
		}
		cols := []core.Col{
			col.New(1).Add(text.New(strconv.Itoa(l.SINo), center)),
			descCol,
			col.New(1).Add(text.New(strconv.Itoa(l.Qty), center)),
			col.New(2).Add(text.New(unit, rightText)),
			col.New(2).Add(text.New(FormatINR(l.LineTotal), rightText)),
		}
		if i%2 == 1 {
			for j := range cols {
				cols[j] = cols[j].WithStyle(&props.Cell{BackgroundColor: pdfStripeBg})
			}
		}
		m.AddRows(row.New(10).Add(cols...))
	}

	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
	valueStyle := props.Text{Size: 8, Align: align.Right}
	addTotalRow := func(label, value string, lStyle, vStyle props.Text) {
		m.AddRows(row.New(6).Add(
			col.New(9).Add(text.New(label, lStyle)),
			col.New(3).Add(text.New(value, vStyle)),
		))
	}

	m.AddRows(row.New(2))
	addTotalRow("Subtotal:", FormatINR(sec.Totals.Subtotal), labelStyle, valueStyle)
	if sec.DiscountPercent > 0 {
		green := valueStyle
		green.Color = pdfGreen
		greenLabel := labelStyle
		greenLabel.Color = pdfGreen
		addTotalRow(fmt.Sprintf("Discount (%s):", FormatPercent(sec.DiscountPercent)),
			"-"+FormatINR(sec.Totals.DiscountAmount), greenLabel, green)
	}
	bold := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	addTotalRow("Taxable Amount:", FormatINR(sec.Totals.TaxableAmount), bold, bold)

	if data.ShowTax {
		addTotalRow(fmt.Sprintf("GST (%s):", FormatPercent(data.TaxRate)), FormatINR(sec.Totals.TaxAmount), labelStyle, valueStyle)

		grand := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Color: pdfWhite}
		grandCell := &props.Cell{BackgroundColor: pdfDark}
		m.AddRows(row.New(8).Add(
			col.New(9).Add(text.New(sec.TotalLabel+":", grand)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatINR(sec.Totals.Total), grand)).WithStyle(grandCell),
		))
	}

	m.AddRows(row.New(6).Add(
		col.New(12).Add(text.New(sec.AmountInWords, props.Text{
			Size:  7,
			Style: fontstyle.BoldItalic,
			Align: align.Right,
		})),
	))
	if sec.Recurring {
		m.AddRows(row.New(5).Add(
			col.New(12).Add(text.New("* Includes monthly subscription items", props.Text{
				Size:  6,
				Align: align.Right,
				Color: pdfMuted,
			})),
		))
	}

	m.AddRows(row.New(4))
}

// addQuoteTaxNote adds the GST notice printed on proforma invoices.
func addQuoteTaxNote(m core.Maroto, data *QuoteExportData) {
	if data.TaxNote == "" {
		return
	}
	m.AddRows(row.New(7).Add(
		col.New(12).Add(text.New(data.TaxNote, props.Text{
			Size:  7,
			Style: fontstyle.Bold,
			Align: align.Left,
			Color: pdfRed,
		})),
	))
	m.AddRows(row.New(3))
}

// addQuoteBankDetails adds the payee bank details section.
func addQuoteBankDetails(m core.Maroto, data *QuoteExportData) {
	b := data.Bank
	if b.AccountName == "" && b.BankName == "" && b.AccountNo == "" && b.IFSC == "" {
		return
	}

	sectionLabel := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left, Color: pdfDark}
	fieldLabel := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Left, Color: pdfMuted}
	fieldValue := props.Text{Size: 8, Align: align.Left}

	m.AddRows(row.New(7).Add(col.New(12).Add(text.New("BANK DETAILS", sectionLabel))))
	if b.AccountName != "" {
		m.AddRows(row.New(6).Add(col.New(12).Add(text.New(b.AccountName, props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Align: align.Left,
		}))))
	}

	for _, br := range []struct{ label, value string }{
		{"Bank", b.BankName},
		{"A/C No", b.AccountNo},
		{"IFSC", b.IFSC},
		{"Branch", b.Branch},
	} {
		if br.value == "" {
			continue
		}
		m.AddRows(row.New(6).Add(
			col.New(2).Add(text.New(br.label, fieldLabel)),
			col.New(10).Add(text.New(br.value, fieldValue)),
		))
	}

	m.AddRows(row.New(3))
}

// addQuoteSubscriptionTerms adds the renewal notice when the quote has
// subscription lines.
func addQuoteSubscriptionTerms(m core.Maroto, data *QuoteExportData) {
	if data.SubscriptionTerms == "" {
		return
	}
	m.AddRows(row.New(7).Add(col.New(12).Add(text.New("SUBSCRIPTION TERMS", props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: pdfDark,
	}))))
	m.AddRows(row.New(14).Add(
		col.New(12).Add(text.New(data.SubscriptionTerms, props.Text{
			Size:  7,
			Align: align.Left,
			Left:  2,
			Top:   2,
			Right: 2,
		})).WithStyle(&props.Cell{BackgroundColor: pdfTermsBg}),
	))
	m.AddRows(row.New(3))
}

// addQuoteNotes adds the free-text terms and notes.
func addQuoteNotes(m core.Maroto, data *QuoteExportData) {
	if data.Notes == "" {
		return
	}
	m.AddRows(row.New(7).Add(col.New(12).Add(text.New("TERMS & NOTES", props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: pdfDark,
	}))))
	m.AddRows(row.New(10).Add(col.New(12).Add(text.New(data.Notes, props.Text{
		Size:  8,
		Align: align.Left,
	}))))
}

// joinNonEmpty joins non-empty strings with the given separator.
func joinNonEmpty(parts []string, sep string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	result := ""
	for i, p := range nonEmpty {
		if i > 0 {
			result += sep
		}
		result += p
	}
	return result
}

// fmtField returns "label: value" if value is non-empty, otherwise empty string.
func fmtField(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", label, value)
}
