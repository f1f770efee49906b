package collections_test

import (
	"testing"

	"quotebuilder/collections"
	"quotebuilder/config"
	"quotebuilder/testhelpers"
)

func TestSeed_CreatesData(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app, nil); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	productsCol, _ := app.FindCollectionByNameOrId("products")
	products, err := app.FindAllRecords(productsCol)
	if err != nil {
		t.Fatalf("query products error: %v", err)
	}
	if len(products) != 8 {
		t.Fatalf("expected 8 products, got %d", len(products))
	}

	first, err := app.FindFirstRecordByData("products", "product_id", 1)
	if err != nil {
		t.Fatalf("product 1 not found: %v", err)
	}
	if first.GetString("name") != "Physical models (x32 models)" {
		t.Errorf("product 1 name = %q", first.GetString("name"))
	}
	if first.GetFloat("price") != 5450 {
		t.Errorf("product 1 price = %v, want 5450", first.GetFloat("price"))
	}

	rulesCol, _ := app.FindCollectionByNameOrId("dependency_rules")
	rules, _ := app.FindAllRecords(rulesCol)
	if len(rules) != 4 {
		t.Errorf("expected 4 dependency rules, got %d", len(rules))
	}

	rule, err := app.FindFirstRecordByData("dependency_rules", "product_id", 8)
	if err != nil {
		t.Fatalf("rule for product 8 not found: %v", err)
	}
	if rule.GetInt("required_id") != 1 {
		t.Errorf("product 8 requires %d, want 1", rule.GetInt("required_id"))
	}

	settingsCol, _ := app.FindCollectionByNameOrId("app_settings")
	settings, _ := app.FindAllRecords(settingsCol)
	if len(settings) != 7 {
		t.Errorf("expected 7 settings, got %d", len(settings))
	}
}

func TestSeed_UsesConfig(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cfg := config.Default()
	cfg.CompanyName = "Acme Robotics"
	cfg.FirstSection = "subscription"

	if err := collections.Seed(app, &cfg); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	company, err := app.FindFirstRecordByData("app_settings", "key", collections.SettingCompanyInfo)
	if err != nil {
		t.Fatalf("company_info not found: %v", err)
	}
	var info struct {
		Name string `json:"name"`
	}
	if err := company.UnmarshalJSONField("value", &info); err != nil {
		t.Fatalf("unmarshal company_info: %v", err)
	}
	if info.Name != "Acme Robotics" {
		t.Errorf("company name = %q, want %q", info.Name, "Acme Robotics")
	}

	order, err := app.FindFirstRecordByData("app_settings", "key", collections.SettingSectionOrder)
	if err != nil {
		t.Fatalf("section_order not found: %v", err)
	}
	var sections []string
	if err := order.UnmarshalJSONField("value", &sections); err != nil {
		t.Fatalf("unmarshal section_order: %v", err)
	}
	if len(sections) != 2 || sections[0] != "subscription" || sections[1] != "hardware" {
		t.Errorf("section order = %v, want [subscription hardware]", sections)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app, nil); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app, nil); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	for name, want := range map[string]int{"products": 8, "dependency_rules": 4, "app_settings": 7} {
		col, _ := app.FindCollectionByNameOrId(name)
		records, _ := app.FindAllRecords(col)
		if len(records) != want {
			t.Errorf("%s: expected %d records after idempotent seed, got %d", name, want, len(records))
		}
	}
}

func TestSeed_KeepsEditedCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProduct(t, app, 42, "Custom kit", 999, "One-time Payment")

	if err := collections.Seed(app, nil); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	col, _ := app.FindCollectionByNameOrId("products")
	products, _ := app.FindAllRecords(col)
	if len(products) != 1 {
		t.Errorf("expected the existing catalog to be left alone, got %d products", len(products))
	}
}
