package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Payment type values stored on products.
const (
	PaymentSubscription = "Subscription"
	PaymentOneTime      = "One-time Payment"
)

// Setup programmatically creates/ensures the products, dependency_rules,
// app_settings, quote_drafts and saved_quotes collections exist.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "products", func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "product_id", Required: true, OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "category", Required: false})
		c.Fields.Add(&core.NumberField{Name: "price", Required: false})
		c.Fields.Add(&core.TextField{Name: "description", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "payment_type",
			Required:  false,
			Values:    []string{PaymentSubscription, PaymentOneTime},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_products_product_id", true, "product_id", "")
	})

	ensureCollection(app, "dependency_rules", func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "product_id", Required: true, OnlyInt: true})
		c.Fields.Add(&core.NumberField{Name: "required_id", Required: true, OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "required_name", Required: true})
	})

	ensureCollection(app, "app_settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.JSONField{Name: "value", Required: false})
		c.AddIndex("idx_app_settings_key", true, "key", "")
	})

	ensureCollection(app, "quote_drafts", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "key", Required: true})
		c.Fields.Add(&core.JSONField{Name: "data", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "saved_quotes", func(c *core.Collection) {
		c.Fields.Add(&core.NumberField{Name: "quote_key", Required: true, OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: true})
		c.Fields.Add(&core.DateField{Name: "quote_date", Required: true})
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_contact", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_phone", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_email", Required: false})
		c.Fields.Add(&core.TextField{Name: "customer_address", Required: false})
		c.Fields.Add(&core.JSONField{Name: "lines", Required: true})
		c.Fields.Add(&core.NumberField{Name: "hardware_discount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "subscription_discount", Required: false})
		c.Fields.Add(&core.NumberField{Name: "tax_rate", Required: false})
		c.Fields.Add(&core.TextField{Name: "notes", Required: false})
		c.Fields.Add(&core.JSONField{Name: "totals", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
