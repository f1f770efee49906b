package services

// CategoryOptions lists the known catalog categories. The set is open; other
// values are accepted.
var CategoryOptions = []string{"Hardware", "Software", "Add-ons", "Services"}

// PaymentTypeOptions lists the selectable payment types.
var PaymentTypeOptions = []PaymentType{PaymentSubscription, PaymentOneTime}

// TaxRateOptions returns the list of GST percentage options.
var TaxRateOptions = []float64{0, 5, 12, 18, 28}

// SectionOptions lists the sections that can be printed first.
var SectionOptions = []SectionKind{SectionHardware, SectionSubscription}
