package handlers

import (
	"net/http"
	"testing"

	"quotebuilder/testhelpers"
)

func TestHandleWords(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		query  string
		status int
		words  string
		rupees string
	}{
		{"12803", http.StatusOK, "Twelve Thousand Eight Hundred and Three", "Rupees Twelve Thousand Eight Hundred and Three Only"},
		{"0", http.StatusOK, "", "Rupees Zero Only"},
		{"1000000000", http.StatusOK, "overflow", "Rupees overflow Only"},
		{"abc", http.StatusBadRequest, "", ""},
		{"NaN", http.StatusBadRequest, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := serveJSON(t, app, HandleWords(app), http.MethodGet, "/api/words?amount="+tt.query, nil, nil)
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if tt.status != http.StatusOK {
				return
			}
			var body map[string]any
			decodeBody(t, rec, &body)
			if body["words"] != tt.words || body["rupees"] != tt.rupees {
				t.Errorf("unexpected body %v", body)
			}
		})
	}
}
