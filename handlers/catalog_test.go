package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotebuilder/services"
	"quotebuilder/testhelpers"
)

func TestHandleCatalogList_LockFlags(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)

	rec := serveJSON(t, app, HandleCatalogList(app), http.MethodGet, "/api/catalog", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []catalogItem
	decodeBody(t, rec, &items)
	if len(items) != 8 {
		t.Fatalf("expected 8 products, got %d", len(items))
	}

	locked := map[int64]string{}
	for _, it := range items {
		if it.Locked {
			locked[it.ID] = it.Requires
		}
	}
	want := map[int64]string{
		3: "Classroom presentation application",
		6: "Classroom presentation application",
		7: "Classroom presentation application",
		8: "Physical models (x32 models)",
	}
	if len(locked) != len(want) {
		t.Errorf("locked = %v, want %v", locked, want)
	}
	for id, name := range want {
		if locked[id] != name {
			t.Errorf("product %d requires %q, want %q", id, locked[id], name)
		}
	}
}

func TestHandleCatalogList_CategoryFilter(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)

	rec := serveJSON(t, app, HandleCatalogList(app), http.MethodGet, "/api/catalog?category=software", nil, nil)

	var items []catalogItem
	decodeBody(t, rec, &items)
	if len(items) != 3 {
		t.Fatalf("expected 3 software products, got %d", len(items))
	}
	for _, it := range items {
		if it.Category != "Software" {
			t.Errorf("unexpected category %q", it.Category)
		}
	}
}

func TestHandleCatalogAdd(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)

	rec := serveJSON(t, app, HandleCatalogAdd(app), http.MethodPost, "/api/catalog",
		map[string]any{"name": "  Drone kit ", "category": "Hardware", "price": 12000, "paymentType": "One-time Payment"}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var p services.Product
	decodeBody(t, rec, &p)
	if p.ID != 9 || p.Name != "Drone kit" {
		t.Errorf("unexpected product %+v", p)
	}
	if _, err := services.FindProduct(app, 9); err != nil {
		t.Errorf("product was not stored: %v", err)
	}
}

func TestHandleCatalogAdd_Invalid(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	tests := []struct {
		name string
		body any
	}{
		{"missing name", map[string]any{"price": 10}},
		{"negative price", map[string]any{"name": "Kit", "price": -1}},
		{"bad payment type", map[string]any{"name": "Kit", "paymentType": "Annual"}},
		{"not json", "just a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveJSON(t, app, HandleCatalogAdd(app), http.MethodPost, "/api/catalog", tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestHandleCatalogDelete(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"existing", "5", http.StatusNoContent},
		{"already deleted", "5", http.StatusNotFound},
		{"not a number", "abc", http.StatusBadRequest},
		{"zero", "0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveJSON(t, app, HandleCatalogDelete(app), http.MethodDelete, "/api/catalog/"+tt.id, nil,
				map[string]string{"productId": tt.id})
			if rec.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, rec.Code)
			}
		})
	}
}

func newUploadRequest(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/catalog/import", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHandleCatalogImport(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	csv := "Name,Category,Price,Payment Type\nDrone kit,Hardware,12000,One-time Payment\nCoding app,Software,499,\n"

	rec := httptest.NewRecorder()
	if err := HandleCatalogImport(app)(newTestRequestEvent(app, newUploadRequest(t, "new.csv", []byte(csv)), rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	products, _ := services.LoadCatalog(app)
	if len(products) != 10 {
		t.Errorf("expected 10 products after import, got %d", len(products))
	}
	if products[9].Name != "Coding app" || products[9].PaymentType != services.PaymentSubscription {
		t.Errorf("unexpected imported product %+v", products[9])
	}
}

func TestHandleCatalogImport_RowErrors(t *testing.T) {
	app := testhelpers.NewSeededTestApp(t)
	csv := "Name,Price\nDrone kit,12000\n,50\n"

	rec := httptest.NewRecorder()
	if err := HandleCatalogImport(app)(newTestRequestEvent(app, newUploadRequest(t, "bad.csv", []byte(csv)), rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var result services.CatalogImportResult
	decodeBody(t, rec, &result)
	if result.ErrorRows != 1 || len(result.Errors) != 1 || result.Errors[0].Row != 3 {
		t.Errorf("unexpected result %+v", result)
	}

	products, _ := services.LoadCatalog(app)
	if len(products) != 8 {
		t.Errorf("nothing should be imported, catalog has %d products", len(products))
	}
}

func TestHandleCatalogImport_Unsupported(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	rec := httptest.NewRecorder()
	if err := HandleCatalogImport(app)(newTestRequestEvent(app, newUploadRequest(t, "catalog.pdf", []byte("%PDF-")), rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleCatalogTemplate(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	rec := serveJSON(t, app, HandleCatalogTemplate(app), http.MethodGet, "/api/catalog/template", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected a workbook body")
	}
}

func TestHandleCatalogOptions(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	rec := serveJSON(t, app, HandleCatalogOptions(app), http.MethodGet, "/api/catalog/options", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Categories   []string  `json:"categories"`
		PaymentTypes []string  `json:"paymentTypes"`
		TaxRates     []float64 `json:"taxRates"`
		Sections     []string  `json:"sections"`
	}
	decodeBody(t, rec, &body)
	if len(body.PaymentTypes) != 2 || body.PaymentTypes[0] != "Subscription" {
		t.Errorf("paymentTypes = %v", body.PaymentTypes)
	}
	if len(body.Sections) != 2 || body.Sections[0] != "hardware" {
		t.Errorf("sections = %v", body.Sections)
	}
	if len(body.TaxRates) != 5 || body.TaxRates[3] != 18 {
		t.Errorf("taxRates = %v", body.TaxRates)
	}
	if len(body.Categories) == 0 {
		t.Error("expected categories")
	}
}
