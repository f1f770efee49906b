package handlers

import (
	"net/http"

	"quotebuilder/services"
	"quotebuilder/templates"
)

// BuildNavData constructs the page header from the request's quote state.
func BuildNavData(r *http.Request, st *QuoteState) templates.NavData {
	data := templates.NavData{ActivePath: r.URL.Path}
	if st == nil {
		return data
	}
	data.CompanyName = st.Settings.Company.Name
	data.ItemCount = st.Session.ItemCount()
	data.DraftTotal = services.FormatINR(st.Session.Totals().Aggregate.Total)
	return data
}
