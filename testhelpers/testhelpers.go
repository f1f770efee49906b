// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"quotebuilder/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// NewSeededTestApp is NewTestApp plus the default catalog, dependency rules
// and settings.
func NewSeededTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := NewTestApp(t)
	if err := collections.Seed(app, nil); err != nil {
		t.Fatalf("failed to seed test app: %v", err)
	}
	return app
}

// CreateTestProduct creates a catalog product and returns its record.
func CreateTestProduct(t *testing.T, app *pocketbase.PocketBase, id int, name string, price float64, paymentType string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		t.Fatalf("failed to find products collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("product_id", id)
	record.Set("name", name)
	record.Set("category", "Hardware")
	record.Set("price", price)
	record.Set("description", name+" description")
	record.Set("payment_type", paymentType)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test product: %v", err)
	}

	return record
}

// CreateTestDependency records that productID requires requiredID.
func CreateTestDependency(t *testing.T, app *pocketbase.PocketBase, productID, requiredID int, requiredName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("dependency_rules")
	if err != nil {
		t.Fatalf("failed to find dependency_rules collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("product_id", productID)
	record.Set("required_id", requiredID)
	record.Set("required_name", requiredName)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test dependency rule: %v", err)
	}

	return record
}

// CreateTestSetting stores a raw app_settings value.
func CreateTestSetting(t *testing.T, app *pocketbase.PocketBase, key string, value any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("app_settings")
	if err != nil {
		t.Fatalf("failed to find app_settings collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("key", key)
	record.Set("value", value)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test setting: %v", err)
	}

	return record
}

// CreateTestSavedQuote stores a saved quote with a single subscription line
// of the given price.
func CreateTestSavedQuote(t *testing.T, app *pocketbase.PocketBase, number, customer string, created time.Time, price float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("saved_quotes")
	if err != nil {
		t.Fatalf("failed to find saved_quotes collection: %v", err)
	}

	date, err := types.ParseDateTime(created)
	if err != nil {
		t.Fatalf("failed to convert quote date: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("quote_key", created.UnixMilli())
	record.Set("quote_number", number)
	record.Set("quote_date", date)
	record.Set("customer_name", customer)
	record.Set("lines", []map[string]any{{
		"uid":         "line-1",
		"id":          1,
		"name":        "Test product",
		"category":    "Hardware",
		"price":       price,
		"paymentType": "Subscription",
		"quantity":    1,
		"discount":    0,
	}})
	record.Set("tax_rate", 18)
	record.Set("totals", map[string]any{
		"aggregate": map[string]any{"subtotal": price, "taxableAmount": price, "total": price},
	})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test quote: %v", err)
	}

	return record
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHXRedirect checks that the response has an HX-Redirect header with the expected URL.
func AssertHXRedirect(t *testing.T, headerVal, expectedURL string) {
	t.Helper()

	if headerVal != expectedURL {
		t.Errorf("expected HX-Redirect %q, got %q", expectedURL, headerVal)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
