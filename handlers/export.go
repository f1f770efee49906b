package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// exportFilename names a download after the quote number, or the customer
// and date for an unsaved quote.
func exportFilename(data *services.QuoteExportData, now time.Time, ext string) string {
	if data.QuoteNumber != "" {
		return fmt.Sprintf("%s.%s", sanitizeFilename(data.QuoteNumber), ext)
	}
	name := "Quote"
	if data.Customer.Name != "" {
		name += "_" + sanitizeFilename(data.Customer.Name)
	}
	return fmt.Sprintf("%s_%s.%s", name, now.Format("2006-01-02"), ext)
}

// buildExportData lays out the saved quote named by the {id} path value,
// or the working quote when the route has none.
func buildExportData(app *pocketbase.PocketBase, e *core.RequestEvent) (*services.QuoteExportData, time.Time, error) {
	st, err := quoteState(app, e)
	if err != nil {
		return nil, time.Time{}, err
	}

	id := e.Request.PathValue("id")
	if id == "" {
		now := time.Now()
		return services.BuildQuoteExportData(st.Session, st.Settings, "", now), now, nil
	}

	q, err := services.GetSavedQuote(app, id)
	if err != nil {
		return nil, time.Time{}, err
	}
	return services.BuildQuoteExportData(q.Session(st.Deps), st.Settings, q.Number, q.Date), q.Date, nil
}

func exportError(e *core.RequestEvent, area string, err error) error {
	if errors.Is(err, services.ErrQuoteNotFound) {
		return ErrorToast(e, http.StatusNotFound, "Quote not found")
	}
	log.Printf("%s: %v", area, err)
	return ErrorToast(e, http.StatusInternalServerError, "Could not load the quote")
}

// HandleQuoteExportExcel downloads the quote as an Excel workbook.
// Routes: GET /quote/export/excel, GET /quotes/{id}/export/excel
func HandleQuoteExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, date, err := buildExportData(app, e)
		if err != nil {
			return exportError(e, "export_excel", err)
		}

		xlsxBytes, err := services.GenerateQuoteExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, date, "xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleQuoteExportPDF downloads the quote as a PDF.
// Routes: GET /quote/export/pdf, GET /quotes/{id}/export/pdf
func HandleQuoteExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, date, err := buildExportData(app, e)
		if err != nil {
			return exportError(e, "export_pdf", err)
		}

		pdfBytes, err := services.GenerateQuotePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(data, date, "pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}
