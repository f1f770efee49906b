// Package config loads the seed defaults for a fresh quote builder install
// from the environment (and an optional .env file).
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from every recognised variable name.
const EnvPrefix = "QUOTE_"

// Config holds the values written to app_settings the first time the
// application starts against an empty data directory.
type Config struct {
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string
	CompanyGSTIN   string

	BankAccountName string
	BankName        string
	BankAccountNo   string
	BankIFSC        string
	BankBranch      string

	DocTitle          string
	SubscriptionTerms string
	DefaultNotes      string
	FirstSection      string

	TaxRate              float64
	HardwareDiscount     float64
	SubscriptionDiscount float64
}

// Default returns the built-in values used when nothing is configured.
func Default() Config {
	return Config{
		CompanyName:    "BotClub Private Limited",
		CompanyAddress: "Wing-3, APIS, ITSEZ, Hill no-3, Rushikonda, Visakhapatnam, A.P - 530045",
		CompanyEmail:   "contact@botclub.in",
		CompanyPhone:   "+91 8919292103",
		CompanyGSTIN:   "37AAGCB8306B1ZZ",

		BankAccountName: "BOTCLUB PRIVATE LIMITED",
		BankName:        "IDFC FIRST",
		BankAccountNo:   "10173843631",
		BankIFSC:        "IDFB0080412",
		BankBranch:      "Visakhapatnam - Daba Garden Branch",

		DocTitle:          "Proforma Invoice",
		SubscriptionTerms: "Notice: The pricing for products listed in this quotation reflects monthly subscription costs. By accepting this quote, the client agrees to a minimum 24-month renewal commitment for all subscription-based services.",
		DefaultNotes:      "Quote valid for 30 days. Payment terms: 50% advance, 50% on delivery.",
		FirstSection:      "hardware",

		TaxRate: 18,
	}
}

// Load reads QUOTE_* variables over the defaults. A missing .env file is not
// an error; a malformed number is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	provider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(provider, nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	cfg.CompanyName = valueOrDefault(k.String("company_name"), cfg.CompanyName)
	cfg.CompanyAddress = valueOrDefault(k.String("company_address"), cfg.CompanyAddress)
	cfg.CompanyEmail = valueOrDefault(k.String("company_email"), cfg.CompanyEmail)
	cfg.CompanyPhone = valueOrDefault(k.String("company_phone"), cfg.CompanyPhone)
	cfg.CompanyGSTIN = valueOrDefault(k.String("company_gstin"), cfg.CompanyGSTIN)
	cfg.BankAccountName = valueOrDefault(k.String("bank_account_name"), cfg.BankAccountName)
	cfg.BankName = valueOrDefault(k.String("bank_name"), cfg.BankName)
	cfg.BankAccountNo = valueOrDefault(k.String("bank_account_no"), cfg.BankAccountNo)
	cfg.BankIFSC = valueOrDefault(k.String("bank_ifsc"), cfg.BankIFSC)
	cfg.BankBranch = valueOrDefault(k.String("bank_branch"), cfg.BankBranch)
	cfg.DocTitle = valueOrDefault(k.String("doc_title"), cfg.DocTitle)
	cfg.SubscriptionTerms = valueOrDefault(k.String("subscription_terms"), cfg.SubscriptionTerms)
	cfg.DefaultNotes = valueOrDefault(k.String("default_notes"), cfg.DefaultNotes)
	cfg.FirstSection = valueOrDefault(strings.ToLower(k.String("first_section")), cfg.FirstSection)

	var err error
	if cfg.TaxRate, err = parseFloat(k.String("tax_rate"), cfg.TaxRate); err != nil {
		return nil, fmt.Errorf("QUOTE_TAX_RATE: %w", err)
	}
	if cfg.HardwareDiscount, err = parseFloat(k.String("hardware_discount"), cfg.HardwareDiscount); err != nil {
		return nil, fmt.Errorf("QUOTE_HARDWARE_DISCOUNT: %w", err)
	}
	if cfg.SubscriptionDiscount, err = parseFloat(k.String("subscription_discount"), cfg.SubscriptionDiscount); err != nil {
		return nil, fmt.Errorf("QUOTE_SUBSCRIPTION_DISCOUNT: %w", err)
	}

	if cfg.FirstSection != "hardware" && cfg.FirstSection != "subscription" {
		return nil, fmt.Errorf("QUOTE_FIRST_SECTION must be hardware or subscription, got %q", cfg.FirstSection)
	}

	return &cfg, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseFloat(value string, fallback float64) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}
