// Package services provides the quote pricing engine, the working quote
// session, persistence on top of PocketBase records and document exports.
package services

import "strings"

// PaymentType decides which ledger a product is priced in.
type PaymentType string

const (
	PaymentSubscription PaymentType = "Subscription"
	PaymentOneTime      PaymentType = "One-time Payment"
)

// Normalize maps an empty payment type to Subscription.
func (p PaymentType) Normalize() PaymentType {
	if strings.TrimSpace(string(p)) == "" {
		return PaymentSubscription
	}
	return p
}

// IsOneTime reports whether the product belongs to the one-time ledger.
// Anything that is not exactly One-time Payment is billed as a subscription.
func (p PaymentType) IsOneTime() bool {
	return p == PaymentOneTime
}

// Product is a sellable catalog entry.
type Product struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Category    string      `json:"category"`
	Price       float64     `json:"price" validate:"gte=0"`
	Description string      `json:"description"`
	PaymentType PaymentType `json:"paymentType" validate:"omitempty,oneof=Subscription 'One-time Payment'"`
}

// DependencyRule states that ProductID may only be quoted once RequiredID is
// already on the quote.
type DependencyRule struct {
	ProductID    int64  `json:"productId"`
	RequiredID   int64  `json:"requiredId"`
	RequiredName string `json:"name"`
}

// DependencyTable maps a product id to its prerequisite rule.
type DependencyTable map[int64]DependencyRule

// NewDependencyTable indexes rules by product id. A later rule for the same
// product replaces an earlier one.
func NewDependencyTable(rules []DependencyRule) DependencyTable {
	table := make(DependencyTable, len(rules))
	for _, r := range rules {
		table[r.ProductID] = r
	}
	return table
}

// Rule returns the prerequisite rule for productID, if any.
func (d DependencyTable) Rule(productID int64) (DependencyRule, bool) {
	r, ok := d[productID]
	return r, ok
}
