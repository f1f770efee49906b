package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quotebuilder/testhelpers"
)

func TestGetQuoteState_NoMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if st := GetQuoteState(req); st != nil {
		t.Errorf("expected nil state, got %+v", st)
	}
}

func TestQuoteStateMiddleware(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	addLine(t, app, 1)

	req := httptest.NewRequest(http.MethodGet, "/quote/preview", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := QuoteStateMiddleware(app)(e); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}

	st := GetQuoteState(e.Request)
	if st == nil {
		t.Fatal("expected state in request context")
	}
	if st.Session.ItemCount() != 1 {
		t.Errorf("ItemCount = %d, want 1", st.Session.ItemCount())
	}
	if len(st.Deps) == 0 {
		t.Error("expected dependency rules to be loaded")
	}
	if st.Settings.TaxRate != 18 {
		t.Errorf("TaxRate = %v, want 18", st.Settings.TaxRate)
	}
}

func TestBuildNavData(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	addLine(t, app, 1)

	st, err := LoadQuoteState(app)
	if err != nil {
		t.Fatalf("LoadQuoteState() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	nav := BuildNavData(req, st)
	if nav.ActivePath != "/quotes" || nav.CompanyName != "BotClub Private Limited" {
		t.Errorf("unexpected nav %+v", nav)
	}
	if nav.ItemCount != 1 || nav.DraftTotal != "₹6,431" {
		t.Errorf("ItemCount = %d, DraftTotal = %q", nav.ItemCount, nav.DraftTotal)
	}

	empty := BuildNavData(req, nil)
	if empty.CompanyName != "" || empty.ItemCount != 0 {
		t.Errorf("nil state should give an empty header, got %+v", empty)
	}
}
