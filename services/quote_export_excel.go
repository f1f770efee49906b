package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateQuoteExcel creates an Excel workbook from the given quote export
// data and returns the file contents as a byte slice.
func GenerateQuoteExcel(data *QuoteExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Quote"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	lastCol := columns[len(columns)-1]
	widths := []float64{6, 42, 14, 8, 16, 12, 18}
	for i, c := range columns {
		if err := f.SetColWidth(sheetName, c, c, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 12},
		Border: []excelize.Border{{Type: "bottom", Color: "#333333", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	lineStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 10},
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
		Border:    thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create line style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	noteStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Size: 9, Color: "#DC2626"},
		Alignment: &excelize.Alignment{WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("create note style: %w", err)
	}

	row := 1
	cell := func(c string) string { return fmt.Sprintf("%s%d", c, row) }
	mergedLine := func(value string, style int) error {
		if err := f.MergeCell(sheetName, cell("A"), cell(lastCol)); err != nil {
			return fmt.Errorf("merge row %d: %w", row, err)
		}
		f.SetCellValue(sheetName, cell("A"), sanitizeExcelCell(value))
		if style != 0 {
			f.SetCellStyle(sheetName, cell("A"), cell(lastCol), style)
		}
		row++
		return nil
	}
	summary := func(label, value string) {
		f.SetCellValue(sheetName, cell("F"), label)
		f.SetCellStyle(sheetName, cell("F"), cell("F"), summaryLabelStyle)
		f.SetCellValue(sheetName, cell("G"), value)
		f.SetCellStyle(sheetName, cell("G"), cell("G"), summaryValueStyle)
		row++
	}

	// ── Header ──────────────────────────────────────────────────────────

	if err := mergedLine(data.DocTitle, titleStyle); err != nil {
		return nil, err
	}
	header := []string{
		data.Company.Name,
		data.Company.Address,
		joinNonEmpty([]string{data.Company.Email, data.Company.Phone}, " | "),
		fmtField("GSTIN", data.Company.GSTIN),
		fmtField("Quote #", data.QuoteNumber),
		fmt.Sprintf("Date: %s    Valid Until: %s", data.Date, data.ValidUntil),
	}
	for _, h := range header {
		if h == "" {
			continue
		}
		if err := mergedLine(h, 0); err != nil {
			return nil, err
		}
	}
	row++

	customer := []string{
		fmtField("Quote For", data.Customer.Name),
		data.Customer.Address,
		data.Customer.Contact,
		data.Customer.Email,
		data.Customer.Phone,
	}
	for _, c := range customer {
		if c == "" {
			continue
		}
		if err := mergedLine(c, 0); err != nil {
			return nil, err
		}
	}
	row++

	// ── Sections ────────────────────────────────────────────────────────

	headers := []string{"#", "Description", "Category", "Qty", "Unit Price", "Discount", "Total"}
	for _, sec := range data.Sections {
		if err := mergedLine(sec.Title, sectionStyle); err != nil {
			return nil, err
		}

		for i, h := range headers {
			f.SetCellValue(sheetName, cell(columns[i]), h)
		}
		f.SetCellStyle(sheetName, cell("A"), cell(lastCol), headerStyle)
		row++

		for _, l := range sec.Lines {
			desc := l.Name
			if l.Description != "" {
				desc += "\n" + l.Description
			}
			f.SetCellValue(sheetName, cell("A"), l.SINo)
			f.SetCellValue(sheetName, cell("B"), sanitizeExcelCell(desc))
			f.SetCellValue(sheetName, cell("C"), sanitizeExcelCell(l.Category))
			f.SetCellValue(sheetName, cell("D"), l.Qty)
			f.SetCellValue(sheetName, cell("E"), FormatINR(l.UnitPrice))
			if l.Discounted {
				f.SetCellValue(sheetName, cell("F"), FormatPercent(l.Discount))
			}
			f.SetCellValue(sheetName, cell("G"), FormatINR(l.LineTotal))
			f.SetCellStyle(sheetName, cell("A"), cell(lastCol), lineStyle)
			row++
		}
		row++

		summary("Subtotal:", FormatINR(sec.Totals.Subtotal))
		if sec.DiscountPercent > 0 {
			summary(fmt.Sprintf("Discount (%s):", FormatPercent(sec.DiscountPercent)), "-"+FormatINR(sec.Totals.DiscountAmount))
		}
		summary("Taxable Amount:", FormatINR(sec.Totals.TaxableAmount))
		if data.ShowTax {
			summary(fmt.Sprintf("GST (%s):", FormatPercent(data.TaxRate)), FormatINR(sec.Totals.TaxAmount))
			summary(sec.TotalLabel+":", FormatINR(sec.Totals.Total))
		}
		if err := mergedLine(sec.AmountInWords, 0); err != nil {
			return nil, err
		}
		row++
	}

	if data.TaxNote != "" {
		if err := mergedLine(data.TaxNote, noteStyle); err != nil {
			return nil, err
		}
		row++
	}

	// ── Footer ──────────────────────────────────────────────────────────

	b := data.Bank
	bankLines := []string{
		b.AccountName,
		fmtField("Bank", b.BankName),
		fmtField("A/C No", b.AccountNo),
		fmtField("IFSC", b.IFSC),
		fmtField("Branch", b.Branch),
	}
	if joinNonEmpty(bankLines, "") != "" {
		if err := mergedLine("Bank Details", sectionStyle); err != nil {
			return nil, err
		}
		for _, l := range bankLines {
			if l == "" {
				continue
			}
			if err := mergedLine(l, 0); err != nil {
				return nil, err
			}
		}
		row++
	}

	if data.SubscriptionTerms != "" {
		if err := mergedLine("Subscription Terms", sectionStyle); err != nil {
			return nil, err
		}
		if err := mergedLine(data.SubscriptionTerms, 0); err != nil {
			return nil, err
		}
		row++
	}

	if data.Notes != "" {
		if err := mergedLine("Terms & Notes", sectionStyle); err != nil {
			return nil, err
		}
		if err := mergedLine(data.Notes, 0); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
