package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// QuoteHistoryItem is one saved quote in the history list.
type QuoteHistoryItem struct {
	ID        string
	Number    string
	Customer  string
	Date      string
	ItemCount int
	Total     string
}

// QuoteHistoryData holds the saved quotes, newest first.
type QuoteHistoryData struct {
	Quotes []QuoteHistoryItem
}

// QuoteHistory renders the saved quote list with load and delete actions.
func QuoteHistory(data QuoteHistoryData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="quote-history"><h1>Saved Quotes</h1>`)
		if len(data.Quotes) == 0 {
			h.raw(`<p class="empty">No saved quotes yet.</p></section>`)
			return h.err
		}

		h.raw(`<table><thead><tr><th>Quote #</th><th>Customer</th><th>Date</th><th>Items</th><th>Total</th><th></th></tr></thead><tbody>`)
		for _, q := range data.Quotes {
			id := templ.EscapeString(q.ID)
			h.rawf(`<tr id="quote-%s">`, id)
			h.tag("td", "", q.Number)
			customer := q.Customer
			if customer == "" {
				customer = "Unnamed customer"
			}
			h.tag("td", "", customer)
			h.tag("td", "", q.Date)
			h.tag("td", "", fmt.Sprint(q.ItemCount))
			h.tag("td", "", q.Total)
			h.raw(`<td class="actions">`)
			h.rawf(`<button hx-post="/api/quotes/%s/load">Load</button>`, id)
			h.rawf(`<button hx-delete="/api/quotes/%s" hx-target="#quote-%s" hx-swap="outerHTML" hx-confirm="Delete this quote?">Delete</button>`, id, id)
			h.raw(`</td></tr>`)
		}
		h.raw(`</tbody></table></section>`)
		return h.err
	})
}
