package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
	"quotebuilder/templates"
)

// renderPage renders content alone for HTMX requests and inside the page
// shell otherwise.
func renderPage(e *core.RequestEvent, st *QuoteState, title string, content templ.Component) error {
	component := content
	if !isHTMX(e) {
		component = templates.Page(title, BuildNavData(e.Request, st), content)
	}
	return component.Render(e.Request.Context(), e.Response)
}

// HandleQuotePreview renders the working quote as a printable document.
// Route: GET /quote/preview
func HandleQuotePreview(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		st, err := quoteState(app, e)
		if err != nil {
			log.Printf("quote_preview: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load the working quote")
		}

		data := services.BuildQuoteExportData(st.Session, st.Settings, "", time.Now())
		return renderPage(e, st, data.DocTitle, templates.QuotePreview(data))
	}
}

// HandleQuoteHistory renders the saved quote list.
// Route: GET /quotes
func HandleQuoteHistory(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		st, err := quoteState(app, e)
		if err != nil {
			log.Printf("quote_history: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Could not load the working quote")
		}

		quotes, err := services.ListSavedQuotes(app)
		if err != nil {
			log.Printf("quote_history: could not list quotes: %v", err)
			quotes = nil
		}

		var data templates.QuoteHistoryData
		for _, q := range quotes {
			data.Quotes = append(data.Quotes, templates.QuoteHistoryItem{
				ID:        q.ID,
				Number:    q.Number,
				Customer:  q.Customer.Name,
				Date:      services.FormatHistoryDate(q.Date),
				ItemCount: q.ItemCount(),
				Total:     services.FormatINR(q.Totals.Aggregate.Total),
			})
		}

		return renderPage(e, st, "Saved Quotes", templates.QuoteHistory(data))
	}
}
