package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

// HandleWords spells out ?amount= in Indian English.
// Route: GET /api/words
func HandleWords(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		raw := strings.TrimSpace(e.Request.URL.Query().Get("amount"))
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
			return ErrorJSON(e, http.StatusBadRequest, "amount must be a number")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"amount": amount,
			"words":  services.AmountToWords(amount),
			"rupees": services.RupeesInWords(amount),
		})
	}
}
