package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

var (
	// ErrEmptyQuote is returned when saving a quote without lines.
	ErrEmptyQuote = errors.New("cannot save an empty quote")
	// ErrProductNotFound is returned when no catalog product has the id.
	ErrProductNotFound = errors.New("product not found")
	// ErrQuoteNotFound is returned when no saved quote has the id.
	ErrQuoteNotFound = errors.New("saved quote not found")
)

// Setting keys in the app_settings collection.
const (
	settingCompanyInfo       = "company_info"
	settingBankDetails       = "bank_details"
	settingSubscriptionTerms = "subscription_terms"
	settingDefaultNotes      = "default_notes"
	settingDocTitle          = "doc_title"
	settingSectionOrder      = "section_order"
	settingQuoteDefaults     = "quote_defaults"
)

// currentDraftKey is the single working quote kept in quote_drafts.
const currentDraftKey = "current"

// ── Catalog ──────────────────────────────────────────────────────────────

func productFromRecord(r *core.Record) Product {
	return Product{
		ID:          int64(r.GetInt("product_id")),
		Name:        r.GetString("name"),
		Category:    r.GetString("category"),
		Price:       r.GetFloat("price"),
		Description: r.GetString("description"),
		PaymentType: PaymentType(r.GetString("payment_type")).Normalize(),
	}
}

// LoadCatalog returns every product ordered by id.
func LoadCatalog(app *pocketbase.PocketBase) ([]Product, error) {
	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return nil, fmt.Errorf("products collection not found: %w", err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	products := make([]Product, 0, len(records))
	for _, r := range records {
		products = append(products, productFromRecord(r))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func findProductRecord(app core.App, id int64) (*core.Record, error) {
	r, err := app.FindFirstRecordByData("products", "product_id", id)
	if err != nil {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return r, nil
}

// FindProduct looks a product up by its catalog id.
func FindProduct(app *pocketbase.PocketBase, id int64) (Product, error) {
	r, err := findProductRecord(app, id)
	if err != nil {
		return Product{}, err
	}
	return productFromRecord(r), nil
}

// AddProduct validates p and stores it under the next free id. The id on p
// is ignored.
func AddProduct(app *pocketbase.PocketBase, p Product) (Product, error) {
	return addProduct(app, p)
}

func addProduct(app core.App, p Product) (Product, error) {
	p.PaymentType = p.PaymentType.Normalize()
	if err := ValidateProduct(p); err != nil {
		return Product{}, err
	}

	col, err := app.FindCollectionByNameOrId("products")
	if err != nil {
		return Product{}, fmt.Errorf("products collection not found: %w", err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return Product{}, fmt.Errorf("load catalog: %w", err)
	}
	var maxID int64
	for _, r := range records {
		if id := int64(r.GetInt("product_id")); id > maxID {
			maxID = id
		}
	}
	p.ID = maxID + 1

	record := core.NewRecord(col)
	record.Set("product_id", p.ID)
	record.Set("name", p.Name)
	record.Set("category", p.Category)
	record.Set("price", p.Price)
	record.Set("description", p.Description)
	record.Set("payment_type", string(p.PaymentType))
	if err := app.Save(record); err != nil {
		return Product{}, fmt.Errorf("save product: %w", err)
	}
	return p, nil
}

// DeleteProduct removes a product from the catalog. Lines already on a quote
// keep their copy.
func DeleteProduct(app *pocketbase.PocketBase, id int64) error {
	r, err := findProductRecord(app, id)
	if err != nil {
		return err
	}
	if err := app.Delete(r); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}

// ImportCatalog adds products in one transaction. Either all are stored or
// none are.
func ImportCatalog(app *pocketbase.PocketBase, products []Product) ([]Product, error) {
	added := make([]Product, 0, len(products))
	err := app.RunInTransaction(func(txApp core.App) error {
		for i, p := range products {
			saved, err := addProduct(txApp, p)
			if err != nil {
				return fmt.Errorf("product %d (%s): %w", i+1, p.Name, err)
			}
			added = append(added, saved)
		}
		return nil
	})
	if err != nil {
		log.Printf("quote_store: ImportCatalog: rolled back: %v", err)
		return nil, err
	}
	return added, nil
}

// LoadDependencies builds the dependency table from dependency_rules.
func LoadDependencies(app *pocketbase.PocketBase) (DependencyTable, error) {
	col, err := app.FindCollectionByNameOrId("dependency_rules")
	if err != nil {
		return nil, fmt.Errorf("dependency_rules collection not found: %w", err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return nil, fmt.Errorf("load dependency rules: %w", err)
	}

	rules := make([]DependencyRule, 0, len(records))
	for _, r := range records {
		rules = append(rules, DependencyRule{
			ProductID:    int64(r.GetInt("product_id")),
			RequiredID:   int64(r.GetInt("required_id")),
			RequiredName: r.GetString("required_name"),
		})
	}
	return NewDependencyTable(rules), nil
}

// ── Settings ─────────────────────────────────────────────────────────────

// LoadSettings reads app_settings over DefaultSettings. Missing keys keep
// their defaults; an unreadable value is logged and skipped.
func LoadSettings(app *pocketbase.PocketBase) (Settings, error) {
	s := DefaultSettings()

	col, err := app.FindCollectionByNameOrId("app_settings")
	if err != nil {
		return s, fmt.Errorf("app_settings collection not found: %w", err)
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		return s, fmt.Errorf("load settings: %w", err)
	}

	for _, r := range records {
		var target any
		switch r.GetString("key") {
		case settingCompanyInfo:
			target = &s.Company
		case settingBankDetails:
			target = &s.Bank
		case settingSubscriptionTerms:
			target = &s.SubscriptionTerms
		case settingDefaultNotes:
			target = &s.DefaultNotes
		case settingDocTitle:
			target = &s.DocTitle
		case settingSectionOrder:
			target = &s.SectionOrder
		case settingQuoteDefaults:
			target = &s.QuoteDefaults
		default:
			continue
		}
		if err := r.UnmarshalJSONField("value", target); err != nil {
			log.Printf("quote_store: LoadSettings: skip %q: %v", r.GetString("key"), err)
		}
	}
	return s, nil
}

// SaveSettings validates s and writes every key.
func SaveSettings(app *pocketbase.PocketBase, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	values := map[string]any{
		settingCompanyInfo:       s.Company,
		settingBankDetails:       s.Bank,
		settingSubscriptionTerms: s.SubscriptionTerms,
		settingDefaultNotes:      s.DefaultNotes,
		settingDocTitle:          s.DocTitle,
		settingSectionOrder:      s.SectionOrder,
		settingQuoteDefaults:     s.QuoteDefaults,
	}

	col, err := app.FindCollectionByNameOrId("app_settings")
	if err != nil {
		return fmt.Errorf("app_settings collection not found: %w", err)
	}

	return app.RunInTransaction(func(txApp core.App) error {
		for key, value := range values {
			r, err := txApp.FindFirstRecordByData(col, "key", key)
			if err != nil {
				r = core.NewRecord(col)
				r.Set("key", key)
			}
			r.Set("value", value)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("save setting %q: %w", key, err)
			}
		}
		return nil
	})
}

// ── Working quote ────────────────────────────────────────────────────────

// LoadDraft restores the working quote. Without a stored draft a new
// session is started from settings.
func LoadDraft(app *pocketbase.PocketBase, deps DependencyTable, settings Settings) (*Session, error) {
	r, err := app.FindFirstRecordByData("quote_drafts", "key", currentDraftKey)
	if err != nil {
		return NewSession(deps, settings), nil
	}

	var d Draft
	if err := r.UnmarshalJSONField("data", &d); err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	return RestoreSession(d, deps), nil
}

// SaveDraft persists the working quote.
func SaveDraft(app *pocketbase.PocketBase, s *Session) error {
	col, err := app.FindCollectionByNameOrId("quote_drafts")
	if err != nil {
		return fmt.Errorf("quote_drafts collection not found: %w", err)
	}

	r, err := app.FindFirstRecordByData(col, "key", currentDraftKey)
	if err != nil {
		r = core.NewRecord(col)
		r.Set("key", currentDraftKey)
	}
	r.Set("data", s.Draft())
	if err := app.Save(r); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// ── Saved quotes ─────────────────────────────────────────────────────────

// SavedQuote is an immutable snapshot of a quote.
type SavedQuote struct {
	ID                   string      `json:"id"`
	Key                  int64       `json:"key"`
	Number               string      `json:"number"`
	Date                 time.Time   `json:"date"`
	Customer             Customer    `json:"customer"`
	Lines                []QuoteLine `json:"lines"`
	HardwareDiscount     float64     `json:"hardwareDiscount"`
	SubscriptionDiscount float64     `json:"subscriptionDiscount"`
	TaxRate              float64     `json:"taxRate"`
	Notes                string      `json:"notes"`
	Totals               QuoteTotals `json:"totals"`
}

// ItemCount is the sum of line quantities.
func (q *SavedQuote) ItemCount() int {
	return countItems(q.Lines)
}

// Session opens a copy of the saved quote for editing.
func (q *SavedQuote) Session(deps DependencyTable) *Session {
	return RestoreSession(Draft{
		Customer:             q.Customer,
		Lines:                q.Lines,
		HardwareDiscount:     q.HardwareDiscount,
		SubscriptionDiscount: q.SubscriptionDiscount,
		TaxRate:              q.TaxRate,
		Notes:                q.Notes,
	}, deps)
}

func savedQuoteFromRecord(r *core.Record) (*SavedQuote, error) {
	q := &SavedQuote{
		ID:     r.Id,
		Key:    int64(r.GetInt("quote_key")),
		Number: r.GetString("quote_number"),
		Date:   r.GetDateTime("quote_date").Time(),
		Customer: Customer{
			Name:    r.GetString("customer_name"),
			Contact: r.GetString("customer_contact"),
			Phone:   r.GetString("customer_phone"),
			Email:   r.GetString("customer_email"),
			Address: r.GetString("customer_address"),
		},
		HardwareDiscount:     r.GetFloat("hardware_discount"),
		SubscriptionDiscount: r.GetFloat("subscription_discount"),
		TaxRate:              r.GetFloat("tax_rate"),
		Notes:                r.GetString("notes"),
	}
	if err := r.UnmarshalJSONField("lines", &q.Lines); err != nil {
		return nil, fmt.Errorf("read lines of quote %s: %w", r.Id, err)
	}
	if raw := r.GetString("totals"); raw != "" && raw != "null" {
		if err := json.Unmarshal([]byte(raw), &q.Totals); err != nil {
			return nil, fmt.Errorf("read totals of quote %s: %w", r.Id, err)
		}
	}
	return q, nil
}

// SaveQuote snapshots the session as a new saved quote dated now.
func SaveQuote(app *pocketbase.PocketBase, s *Session, now time.Time) (*SavedQuote, error) {
	if s.Len() == 0 {
		return nil, ErrEmptyQuote
	}

	col, err := app.FindCollectionByNameOrId("saved_quotes")
	if err != nil {
		return nil, fmt.Errorf("saved_quotes collection not found: %w", err)
	}

	number, err := GenerateQuoteNumber(app, now)
	if err != nil {
		return nil, err
	}
	date, err := types.ParseDateTime(now)
	if err != nil {
		return nil, fmt.Errorf("quote date: %w", err)
	}

	q := &SavedQuote{
		Key:                  now.UnixMilli(),
		Number:               number,
		Date:                 now,
		Customer:             s.Customer,
		Lines:                s.Lines(),
		HardwareDiscount:     s.HardwareDiscount,
		SubscriptionDiscount: s.SubscriptionDiscount,
		TaxRate:              s.TaxRate,
		Notes:                s.Notes,
		Totals:               s.Totals(),
	}

	record := core.NewRecord(col)
	record.Set("quote_key", q.Key)
	record.Set("quote_number", q.Number)
	record.Set("quote_date", date)
	record.Set("customer_name", q.Customer.Name)
	record.Set("customer_contact", q.Customer.Contact)
	record.Set("customer_phone", q.Customer.Phone)
	record.Set("customer_email", q.Customer.Email)
	record.Set("customer_address", q.Customer.Address)
	record.Set("lines", q.Lines)
	record.Set("hardware_discount", q.HardwareDiscount)
	record.Set("subscription_discount", q.SubscriptionDiscount)
	record.Set("tax_rate", q.TaxRate)
	record.Set("notes", q.Notes)
	record.Set("totals", q.Totals)
	if err := app.Save(record); err != nil {
		return nil, fmt.Errorf("save quote: %w", err)
	}

	q.ID = record.Id
	return q, nil
}

// ListSavedQuotes returns saved quotes newest first.
func ListSavedQuotes(app *pocketbase.PocketBase) ([]*SavedQuote, error) {
	records, err := app.FindRecordsByFilter("saved_quotes", "quote_key > 0", "-quote_key", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list saved quotes: %w", err)
	}

	quotes := make([]*SavedQuote, 0, len(records))
	for _, r := range records {
		q, err := savedQuoteFromRecord(r)
		if err != nil {
			log.Printf("quote_store: ListSavedQuotes: skip %s: %v", r.Id, err)
			continue
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// GetSavedQuote loads one saved quote by record id.
func GetSavedQuote(app *pocketbase.PocketBase, id string) (*SavedQuote, error) {
	r, err := app.FindRecordById("saved_quotes", id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	return savedQuoteFromRecord(r)
}

// DeleteSavedQuote removes a saved quote.
func DeleteSavedQuote(app *pocketbase.PocketBase, id string) error {
	r, err := app.FindRecordById("saved_quotes", id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}
	if err := app.Delete(r); err != nil {
		return fmt.Errorf("delete quote %s: %w", id, err)
	}
	return nil
}
