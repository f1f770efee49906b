package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ProformaInvoiceTitle is the document title for which tax rows are left
// off the printed quote.
const ProformaInvoiceTitle = "Proforma Invoice"

// CompanyInfo is the vendor block printed on every quote.
type CompanyInfo struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	GSTIN   string `json:"gstin"`
}

// BankDetails is printed in the payment block.
type BankDetails struct {
	AccountName string `json:"accountName"`
	BankName    string `json:"bankName"`
	AccountNo   string `json:"accountNo"`
	IFSC        string `json:"ifsc"`
	Branch      string `json:"branch"`
}

// QuoteDefaults are the rates a new quote starts with.
type QuoteDefaults struct {
	HardwareDiscount     float64 `json:"hardwareDiscount"`
	SubscriptionDiscount float64 `json:"subscriptionDiscount"`
	TaxRate              float64 `json:"taxRate" validate:"gte=0"`
}

// Settings is the editable configuration of the quote builder.
type Settings struct {
	Company           CompanyInfo  `json:"company"`
	Bank              BankDetails  `json:"bank"`
	SubscriptionTerms string       `json:"subscriptionTerms"`
	DefaultNotes      string       `json:"defaultNotes"`
	DocTitle          string       `json:"docTitle" validate:"required"`
	SectionOrder      SectionOrder `json:"sectionOrder" validate:"dive,oneof=hardware subscription"`

	QuoteDefaults
}

// DefaultSettings is used for any key missing from storage.
func DefaultSettings() Settings {
	return Settings{
		DocTitle:      ProformaInvoiceTitle,
		SectionOrder:  DefaultSectionOrder,
		QuoteDefaults: QuoteDefaults{TaxRate: 18},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the settings before they are stored.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %s", describeValidation(err))
	}
	if s.SectionOrder[0] == s.SectionOrder[1] {
		return fmt.Errorf("invalid settings: section order must name both sections")
	}
	return nil
}

// ValidateProduct checks a catalog entry before it is stored.
func ValidateProduct(p Product) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid product: %s", describeValidation(err))
	}
	return nil
}

// describeValidation turns validator errors into "field: rule" pairs.
func describeValidation(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
