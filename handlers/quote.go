package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// quoteResponse is the working quote as returned by the API.
type quoteResponse struct {
	services.Draft
	Totals    services.QuoteTotals `json:"totals"`
	ItemCount int                  `json:"itemCount"`
}

func newQuoteResponse(s *services.Session) quoteResponse {
	return quoteResponse{
		Draft:     s.Draft(),
		Totals:    s.Totals(),
		ItemCount: s.ItemCount(),
	}
}

// saveAndRespond persists the draft and returns the updated quote.
func saveAndRespond(app *pocketbase.PocketBase, e *core.RequestEvent, area string, s *services.Session) error {
	if err := services.SaveDraft(app, s); err != nil {
		log.Printf("%s: %v", area, err)
		return ErrorJSON(e, http.StatusInternalServerError, "Could not save the working quote")
	}
	return e.JSON(http.StatusOK, newQuoteResponse(s))
}

// HandleQuoteGet returns the working quote with its totals.
// Route: GET /api/quote
func HandleQuoteGet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		st, err := quoteState(app, e)
		if err != nil {
			log.Printf("quote_get: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load the working quote")
		}
		return e.JSON(http.StatusOK, newQuoteResponse(st.Session))
	}
}

type quoteUpdateRequest struct {
	Customer             *services.Customer `json:"customer"`
	HardwareDiscount     *rawInput          `json:"hardwareDiscount"`
	SubscriptionDiscount *rawInput          `json:"subscriptionDiscount"`
	TaxRate              *rawInput          `json:"taxRate"`
	Notes                *string            `json:"notes"`
}

// HandleQuoteUpdate changes the customer, section discounts, tax rate or
// notes. Fields left out of the body are kept.
// Route: PATCH /api/quote
func HandleQuoteUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req quoteUpdateRequest
		if err := decodeJSON(e, &req); err != nil {
			return ErrorJSON(e, http.StatusBadRequest, err.Error())
		}

		st, err := quoteState(app, e)
		if err != nil {
			log.Printf("quote_update: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load the working quote")
		}

		s := st.Session
		if req.Customer != nil {
			s.Customer = *req.Customer
		}
		if req.HardwareDiscount != nil {
			s.HardwareDiscount = services.ParseNumeric(string(*req.HardwareDiscount))
		}
		if req.SubscriptionDiscount != nil {
			s.SubscriptionDiscount = services.ParseNumeric(string(*req.SubscriptionDiscount))
		}
		if req.TaxRate != nil {
			s.TaxRate = services.ParseNumeric(string(*req.TaxRate))
		}
		if req.Notes != nil {
			s.Notes = *req.Notes
		}

		return saveAndRespond(app, e, "quote_update", s)
	}
}

// HandleQuoteReset starts a new quote from the settings defaults.
// Route: DELETE /api/quote
func HandleQuoteReset(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		st, err := quoteState(app, e)
		if err != nil {
			log.Printf("quote_reset: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load the working quote")
		}

		st.Session.Reset(st.Settings)
		SetToast(e, "info", "Started a new quote")
		return saveAndRespond(app, e, "quote_reset", st.Session)
	}
}

// HandleLineAdd adds one unit of a catalog product to the working quote.
// Route: POST /api/quote/lines
func HandleLineAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			ProductID int64 `json:"productId"`
		}
		if err := decodeJSON(e, &req); err != nil {
			return ErrorJSON(e, http.StatusBadRequest, err.Error())
		}

		p, err := services.FindProduct(app, req.ProductID)
		if err != nil {
			return ErrorJSON(e, http.StatusNotFound, "Product not found")
		}

		st, err := quoteState(app, e)
		if err != nil {
			log.Printf("line_add: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load the working quote")
		}

		if _, err := st.Session.AddToQuote(p); err != nil {
			if errors.Is(err, services.ErrDependencyUnmet) {
				return ErrorJSON(e, http.StatusConflict, err.Error())
			}
			log.Printf("line_add: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		return saveAndRespond(app, e, "line_add", st.Session)
	}
}

type lineUpdateRequest struct {
	Quantity *rawInput `json:"quantity"`
	Discount *rawInput `json:"discount"`
}

// HandleLineUpdate sets a line's quantity and/or discount from user input.
// Route: PATCH /api/quote/lines/{uid}
func HandleLineUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		uid := e.Request.PathValue("uid")
		var req lineUpdateRequest
		if err := decodeJSON(e, &req); err != nil {
			return ErrorJSON(e, http.StatusBadRequest, err.Error())
		}

		st, err := quoteState(app, e)
		if err != nil {
			log.Printf("line_update: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load the working quote")
		}

		s := st.Session
		found := true
		if req.Quantity != nil {
			found = s.SetQuantity(uid, string(*req.Quantity))
		}
		if found && req.Discount != nil {
			found = s.SetDiscount(uid, string(*req.Discount))
		}
		if !found {
			return ErrorJSON(e, http.StatusNotFound, "Line not found")
		}

		return saveAndRespond(app, e, "line_update", s)
	}
}

// HandleLineDelete removes a line from the working quote.
// Route: DELETE /api/quote/lines/{uid}
func HandleLineDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		st, err := quoteState(app, e)
		if err != nil {
			log.Printf("line_delete: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load the working quote")
		}

		if !st.Session.RemoveLine(e.Request.PathValue("uid")) {
			return ErrorJSON(e, http.StatusNotFound, "Line not found")
		}

		return saveAndRespond(app, e, "line_delete", st.Session)
	}
}

// HandleLineReorder moves a line to a new position.
// Route: POST /api/quote/lines/reorder
func HandleLineReorder(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req struct {
			From int `json:"from"`
			To   int `json:"to"`
		}
		if err := decodeJSON(e, &req); err != nil {
			return ErrorJSON(e, http.StatusBadRequest, err.Error())
		}

		st, err := quoteState(app, e)
		if err != nil {
			log.Printf("line_reorder: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load the working quote")
		}

		if err := st.Session.ReorderLine(req.From, req.To); err != nil {
			return ErrorJSON(e, http.StatusBadRequest, err.Error())
		}

		return saveAndRespond(app, e, "line_reorder", st.Session)
	}
}
