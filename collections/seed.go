package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotebuilder/config"
)

// ── Definition structs ───────────────────────────────────────────────────

type productDef struct {
	id          int
	name        string
	category    string
	price       float64
	description string
	paymentType string
}

type dependencyDef struct {
	productID    int
	requiredID   int
	requiredName string
}

const (
	presentationApp = "Classroom presentation application"
	physicalModels  = "Physical models (x32 models)"
)

var defaultCatalog = []productDef{
	{1, physicalModels, "Hardware", 5450, "Comprehensive set of 32 physical learning models for hands-on activities.", PaymentSubscription},
	{2, presentationApp, "Software", 3000, "Interactive software for classroom smart boards. (Monthly License)", PaymentSubscription},
	{3, "Teacher pro dashboard", "Software", 1500, "Advanced analytics and class management tools for teachers. (Monthly License)", PaymentSubscription},
	{4, "Principal pro dashboard", "Software", 500, "High-level oversight and reporting module for school administration. (Monthly License)", PaymentSubscription},
	{5, "TV", "Add-ons", 834, "Display unit for classroom content.", PaymentSubscription},
	{6, "Module for TV screens", "Add-ons", 625, "Hardware interface module to connect TV with learning system.", PaymentSubscription},
	{7, "Tablet (with pre-installed software)", "Add-ons", 625, "Student tablet device pre-loaded with educational apps.", PaymentSubscription},
	{8, "Storage racks", "Add-ons", 625, "Durable racks for organizing physical models and kits.", PaymentSubscription},
}

var defaultDependencies = []dependencyDef{
	{3, 2, presentationApp},
	{6, 2, presentationApp},
	{7, 2, presentationApp},
	{8, 1, physicalModels},
}

// Setting keys in the app_settings collection.
const (
	SettingCompanyInfo       = "company_info"
	SettingBankDetails       = "bank_details"
	SettingSubscriptionTerms = "subscription_terms"
	SettingDefaultNotes      = "default_notes"
	SettingDocTitle          = "doc_title"
	SettingSectionOrder      = "section_order"
	SettingQuoteDefaults     = "quote_defaults"
)

// Seed populates the catalog, the dependency rules and the settings from
// cfg. It is safe to call on every startup because each part is skipped
// once it holds records.
func Seed(app *pocketbase.PocketBase, cfg *config.Config) error {
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}

	productsCol, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return fmt.Errorf("seed: could not find products collection: %w", err)
	}
	rulesCol, err := app.FindCollectionByNameOrId("dependency_rules")
	if err != nil {
		return fmt.Errorf("seed: could not find dependency_rules collection: %w", err)
	}
	settingsCol, err := app.FindCollectionByNameOrId("app_settings")
	if err != nil {
		return fmt.Errorf("seed: could not find app_settings collection: %w", err)
	}

	existing, err := app.FindAllRecords(productsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query products: %w", err)
	}
	if len(existing) == 0 {
		log.Println("seed: products collection is empty – inserting default catalog …")
		for _, d := range defaultCatalog {
			r := core.NewRecord(productsCol)
			r.Set("product_id", d.id)
			r.Set("name", d.name)
			r.Set("category", d.category)
			r.Set("price", d.price)
			r.Set("description", d.description)
			r.Set("payment_type", d.paymentType)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("seed: save product %q: %w", d.name, err)
			}
		}
	}

	rules, err := app.FindAllRecords(rulesCol)
	if err != nil {
		return fmt.Errorf("seed: could not query dependency_rules: %w", err)
	}
	if len(rules) == 0 {
		for _, d := range defaultDependencies {
			r := core.NewRecord(rulesCol)
			r.Set("product_id", d.productID)
			r.Set("required_id", d.requiredID)
			r.Set("required_name", d.requiredName)
			if err := app.Save(r); err != nil {
				return fmt.Errorf("seed: save dependency rule for %d: %w", d.productID, err)
			}
		}
	}

	secondSection := "subscription"
	if cfg.FirstSection == "subscription" {
		secondSection = "hardware"
	}

	settings := []struct {
		key   string
		value any
	}{
		{SettingCompanyInfo, map[string]any{
			"name":    cfg.CompanyName,
			"address": cfg.CompanyAddress,
			"email":   cfg.CompanyEmail,
			"phone":   cfg.CompanyPhone,
			"gstin":   cfg.CompanyGSTIN,
		}},
		{SettingBankDetails, map[string]any{
			"accountName": cfg.BankAccountName,
			"bankName":    cfg.BankName,
			"accountNo":   cfg.BankAccountNo,
			"ifsc":        cfg.BankIFSC,
			"branch":      cfg.BankBranch,
		}},
		{SettingSubscriptionTerms, cfg.SubscriptionTerms},
		{SettingDefaultNotes, cfg.DefaultNotes},
		{SettingDocTitle, cfg.DocTitle},
		{SettingSectionOrder, []string{cfg.FirstSection, secondSection}},
		{SettingQuoteDefaults, map[string]any{
			"hardwareDiscount":     cfg.HardwareDiscount,
			"subscriptionDiscount": cfg.SubscriptionDiscount,
			"taxRate":              cfg.TaxRate,
		}},
	}

	for _, s := range settings {
		found, err := app.FindFirstRecordByData(settingsCol, "key", s.key)
		if err == nil && found != nil {
			continue
		}
		r := core.NewRecord(settingsCol)
		r.Set("key", s.key)
		r.Set("value", s.value)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save setting %q: %w", s.key, err)
		}
	}

	return nil
}
