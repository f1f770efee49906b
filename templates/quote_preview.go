package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"quotebuilder/services"
)

// QuotePreview renders the printable quote document.
func QuotePreview(data *services.QuoteExportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<article class="quote-document">`)
		h.raw(`<div class="quote-actions no-print">`)
		h.raw(`<a class="btn" href="/quote/export/pdf">Download PDF</a>`)
		h.raw(`<a class="btn" href="/quote/export/excel">Download Excel</a>`)
		h.raw(`<button class="btn" onclick="window.print()">Print</button></div>`)

		h.raw(`<section class="quote-header"><div class="company">`)
		h.tag("h2", "", data.Company.Name)
		h.tag("p", "", data.Company.Address)
		if data.Company.Email != "" || data.Company.Phone != "" {
			h.tag("p", "", data.Company.Email+" "+data.Company.Phone)
		}
		if data.Company.GSTIN != "" {
			h.tag("p", "", "GSTIN: "+data.Company.GSTIN)
		}
		h.raw(`</div><div class="doc-meta">`)
		h.tag("h1", "", data.DocTitle)
		if data.QuoteNumber != "" {
			h.tag("p", "", "Quote #: "+data.QuoteNumber)
		}
		h.tag("p", "", "Date: "+data.Date)
		h.tag("p", "", "Valid Until: "+data.ValidUntil)
		h.raw(`</div></section>`)

		h.raw(`<section class="quote-customer"><h3>Quote For</h3>`)
		h.tag("p", `class="customer-name"`, data.Customer.Name)
		for _, v := range []string{data.Customer.Contact, data.Customer.Address, data.Customer.Phone, data.Customer.Email} {
			if v != "" {
				h.tag("p", "", v)
			}
		}
		h.raw(`</section>`)

		if len(data.Sections) == 0 {
			h.raw(`<p class="empty">No items added to the quote yet.</p>`)
		}
		for _, sec := range data.Sections {
			previewSection(h, data, sec)
		}

		if data.TaxNote != "" {
			h.tag("p", `class="tax-note"`, data.TaxNote)
		}

		b := data.Bank
		if b.AccountName != "" || b.AccountNo != "" {
			h.raw(`<section class="bank-details"><h3>Bank Details</h3>`)
			h.tag("p", "", b.AccountName)
			for _, f := range [][2]string{{"Bank", b.BankName}, {"A/C No", b.AccountNo}, {"IFSC", b.IFSC}, {"Branch", b.Branch}} {
				if f[1] != "" {
					h.tag("p", "", f[0]+": "+f[1])
				}
			}
			h.raw(`</section>`)
		}
		if data.SubscriptionTerms != "" {
			h.raw(`<section class="subscription-terms"><h3>Subscription Terms</h3>`)
			h.tag("p", "", data.SubscriptionTerms)
			h.raw(`</section>`)
		}
		if data.Notes != "" {
			h.raw(`<section class="notes"><h3>Terms &amp; Notes</h3>`)
			h.tag("p", "", data.Notes)
			h.raw(`</section>`)
		}
		h.raw(`</article>`)
		return h.err
	})
}

func previewSection(h *htmlWriter, data *services.QuoteExportData, sec services.QuoteExportSection) {
	h.raw(`<section class="quote-section">`)
	h.tag("h3", "", sec.Title)
	h.raw(`<table><thead><tr><th>#</th><th>Description</th><th>Qty</th><th>Unit Price</th><th>Total</th></tr></thead><tbody>`)
	for _, l := range sec.Lines {
		h.raw(`<tr>`)
		h.tag("td", "", fmt.Sprint(l.SINo))
		h.raw(`<td>`)
		h.tag("strong", "", l.Name)
		if l.Description != "" {
			h.tag("div", `class="muted"`, l.Description)
		}
		if l.Category != "" {
			h.tag("span", `class="category"`, l.Category)
		}
		h.raw(`</td>`)
		h.tag("td", "", fmt.Sprint(l.Qty))
		h.raw(`<td>`)
		if l.Discounted {
			h.tag("s", `class="muted"`, services.FormatINR(l.UnitPrice))
			h.raw(` `)
			h.text(services.FormatINR(l.DiscountedUnit))
			h.tag("span", `class="discount"`, " (-"+services.FormatPercent(l.Discount)+")")
		} else {
			h.text(services.FormatINR(l.UnitPrice))
		}
		h.raw(`</td>`)
		h.tag("td", "", services.FormatINR(l.LineTotal))
		h.raw(`</tr>`)
	}
	h.raw(`</tbody></table><dl class="totals">`)

	row := func(label, value string) {
		h.tag("dt", "", label)
		h.tag("dd", "", value)
	}
	row("Subtotal", services.FormatINR(sec.Totals.Subtotal))
	if sec.DiscountPercent > 0 {
		row(fmt.Sprintf("Discount (%s)", services.FormatPercent(sec.DiscountPercent)), "-"+services.FormatINR(sec.Totals.DiscountAmount))
	}
	row("Taxable Amount", services.FormatINR(sec.Totals.TaxableAmount))
	if data.ShowTax {
		row(fmt.Sprintf("GST (%s)", services.FormatPercent(data.TaxRate)), services.FormatINR(sec.Totals.TaxAmount))
		row(sec.TotalLabel, services.FormatINR(sec.Totals.Total))
	}
	h.raw(`</dl>`)
	h.tag("p", `class="amount-words"`, sec.AmountInWords)
	if sec.Recurring {
		h.raw(`<p class="muted">* Includes monthly subscription items</p>`)
	}
	h.raw(`</section>`)
}
