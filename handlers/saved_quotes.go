package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// HandleSavedQuoteList returns saved quotes, newest first.
// Route: GET /api/quotes
func HandleSavedQuoteList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quotes, err := services.ListSavedQuotes(app)
		if err != nil {
			log.Printf("quote_list: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load saved quotes")
		}
		return e.JSON(http.StatusOK, quotes)
	}
}

// HandleSavedQuoteSave snapshots the working quote under a new number.
// Route: POST /api/quotes
func HandleSavedQuoteSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		st, err := quoteState(app, e)
		if err != nil {
			log.Printf("quote_save: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load the working quote")
		}

		q, err := services.SaveQuote(app, st.Session, time.Now())
		if err != nil {
			if errors.Is(err, services.ErrEmptyQuote) {
				return ErrorJSON(e, http.StatusBadRequest, "Add at least one product before saving")
			}
			log.Printf("quote_save: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("quote_save: saved %s (%s)", q.Number, q.ID)
		SetToast(e, "success", fmt.Sprintf("Quote %s saved", q.Number))
		return e.JSON(http.StatusCreated, q)
	}
}

// HandleSavedQuoteLoad replaces the working quote with a copy of a saved one.
// Route: POST /api/quotes/{id}/load
func HandleSavedQuoteLoad(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorJSON(e, http.StatusBadRequest, "Missing quote ID")
		}

		q, err := services.GetSavedQuote(app, id)
		if err != nil {
			if errors.Is(err, services.ErrQuoteNotFound) {
				return ErrorJSON(e, http.StatusNotFound, "Quote not found")
			}
			log.Printf("quote_load: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not read the saved quote")
		}

		deps, err := services.LoadDependencies(app)
		if err != nil {
			log.Printf("quote_load: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load dependency rules")
		}

		s := q.Session(deps)
		if err := services.SaveDraft(app, s); err != nil {
			log.Printf("quote_load: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not save the working quote")
		}

		log.Printf("quote_load: loaded %s into the working quote", q.Number)
		SetToast(e, "success", fmt.Sprintf("Quote %s loaded", q.Number))

		if isHTMX(e) {
			e.Response.Header().Set("HX-Redirect", "/quote/preview")
			return e.String(http.StatusOK, "")
		}
		return e.JSON(http.StatusOK, newQuoteResponse(s))
	}
}

// HandleSavedQuoteDelete removes a saved quote.
// Route: DELETE /api/quotes/{id}
func HandleSavedQuoteDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		id := e.Request.PathValue("id")
		if id == "" {
			return ErrorJSON(e, http.StatusBadRequest, "Missing quote ID")
		}

		if err := services.DeleteSavedQuote(app, id); err != nil {
			if errors.Is(err, services.ErrQuoteNotFound) {
				return ErrorJSON(e, http.StatusNotFound, "Quote not found")
			}
			log.Printf("quote_delete: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		log.Printf("quote_delete: deleted quote %s", id)
		SetToast(e, "success", "Quote deleted")

		// An empty 200 lets HTMX swap the row away.
		if isHTMX(e) {
			return e.String(http.StatusOK, "")
		}
		return e.NoContent(http.StatusNoContent)
	}
}
