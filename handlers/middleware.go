package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/services"
)

type contextKey string

const QuoteStateKey contextKey = "quoteState"

// QuoteState is what every quote handler works on: the settings, the
// dependency rules and the working quote.
type QuoteState struct {
	Settings services.Settings
	Deps     services.DependencyTable
	Session  *services.Session
}

// LoadQuoteState reads settings, rules and the working draft from the store.
func LoadQuoteState(app *pocketbase.PocketBase) (*QuoteState, error) {
	settings, err := services.LoadSettings(app)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	deps, err := services.LoadDependencies(app)
	if err != nil {
		return nil, fmt.Errorf("load dependencies: %w", err)
	}
	session, err := services.LoadDraft(app, deps, settings)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	return &QuoteState{Settings: settings, Deps: deps, Session: session}, nil
}

// GetQuoteState extracts the state stored by QuoteStateMiddleware.
func GetQuoteState(r *http.Request) *QuoteState {
	if val, ok := r.Context().Value(QuoteStateKey).(*QuoteState); ok {
		return val
	}
	return nil
}

// quoteState returns the request's state, loading it when the middleware
// did not run.
func quoteState(app *pocketbase.PocketBase, e *core.RequestEvent) (*QuoteState, error) {
	if st := GetQuoteState(e.Request); st != nil {
		return st, nil
	}
	return LoadQuoteState(app)
}

// QuoteStateMiddleware loads the quote state once per request and stores it
// in the request context so handlers and page chrome share it.
func QuoteStateMiddleware(app *pocketbase.PocketBase) func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		st, err := LoadQuoteState(app)
		if err != nil {
			log.Printf("middleware: could not load quote state: %v", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Could not load the working quote")
		}

		ctx := context.WithValue(e.Request.Context(), QuoteStateKey, st)
		e.Request = e.Request.WithContext(ctx)

		return e.Next()
	}
}
