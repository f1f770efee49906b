package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"quotebuilder/services"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return buf.String()
}

func previewData() *services.QuoteExportData {
	return &services.QuoteExportData{
		DocTitle:    "Quotation",
		QuoteNumber: "BC-Q-26-27-001",
		Company:     services.CompanyInfo{Name: "BotClub Private Limited"},
		Customer:    services.Customer{Name: "Green <Valley> School"},
		Date:        "16/10/2026",
		ValidUntil:  "15/11/2026",
		ShowTax:     true,
		TaxRate:     18,
		Sections: []services.QuoteExportSection{{
			Title:     "Subscription - Monthly ( Hardware + Software)",
			Recurring: true,
			Lines: []services.QuoteExportLine{
				{SINo: 1, Name: "Physical models", Qty: 1, UnitPrice: 5450, DiscountedUnit: 5450, LineTotal: 5450},
				{SINo: 2, Name: "Presentation app", Qty: 2, UnitPrice: 3000, DiscountedUnit: 2700, Discount: 10, Discounted: true, LineTotal: 5400},
			},
			Totals:        services.Totals{Subtotal: 10850, TaxableAmount: 10850, TaxAmount: 1953, Total: 12803},
			TotalLabel:    "Total (Monthly)",
			AmountInWords: "Rupees Twelve Thousand Eight Hundred and Three Only",
		}},
	}
}

func TestQuotePreview(t *testing.T) {
	html := render(t, QuotePreview(previewData()))

	for _, want := range []string{
		"<h1>Quotation</h1>",
		"Quote #: BC-Q-26-27-001",
		"Green &lt;Valley&gt; School",
		"<s class=\"muted\">₹3,000</s> ₹2,700",
		"GST (18%)",
		"Total (Monthly)",
		"₹12,803",
		"Rupees Twelve Thousand Eight Hundred and Three Only",
		"* Includes monthly subscription items",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("preview missing %q", want)
		}
	}
	if strings.Contains(html, "Discount (") {
		t.Error("no section discount row expected")
	}
}

func TestQuotePreview_Proforma(t *testing.T) {
	data := previewData()
	data.ShowTax = false
	data.TaxNote = services.ProformaTaxNote(18)

	html := render(t, QuotePreview(data))
	if strings.Contains(html, "GST (18%)") {
		t.Error("proforma preview should not show a GST row")
	}
	if !strings.Contains(html, "* GST @18% will be applicable") {
		t.Error("proforma preview should show the GST note")
	}
}

func TestQuotePreview_Empty(t *testing.T) {
	html := render(t, QuotePreview(&services.QuoteExportData{DocTitle: "Quotation"}))
	if !strings.Contains(html, "No items added to the quote yet.") {
		t.Error("expected empty state")
	}
}

func TestQuoteHistory(t *testing.T) {
	html := render(t, QuoteHistory(QuoteHistoryData{Quotes: []QuoteHistoryItem{
		{ID: "abc123", Number: "BC-Q-26-27-002", Customer: "Green Valley School", Date: "16 Oct 2026", ItemCount: 3, Total: "₹12,803"},
		{ID: "def456", Number: "BC-Q-26-27-001", Date: "15 Oct 2026", ItemCount: 1, Total: "₹1,062"},
	}}))

	for _, want := range []string{
		"BC-Q-26-27-002",
		"Green Valley School",
		"Unnamed customer",
		`hx-post="/api/quotes/abc123/load"`,
		`hx-delete="/api/quotes/def456"`,
		"₹12,803",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("history missing %q", want)
		}
	}
	if strings.Index(html, "BC-Q-26-27-002") > strings.Index(html, "BC-Q-26-27-001") {
		t.Error("quotes should keep the given order")
	}
}

func TestQuoteHistory_Empty(t *testing.T) {
	html := render(t, QuoteHistory(QuoteHistoryData{}))
	if !strings.Contains(html, "No saved quotes yet.") {
		t.Error("expected empty state")
	}
}

func TestPage(t *testing.T) {
	nav := NavData{CompanyName: "BotClub", ActivePath: "/quotes", ItemCount: 4, DraftTotal: "₹12,803"}
	html := render(t, Page("Saved Quotes", nav, QuoteHistory(QuoteHistoryData{})))

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Saved Quotes</title>",
		`<a class="nav-link active" href="/quotes">`,
		"4 items · ₹12,803",
		"No saved quotes yet.",
		"</html>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
