package services

import "math"

// Totals is the derived price breakdown for a set of quote lines.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discountAmount"`
	TaxableAmount  float64 `json:"taxableAmount"`
	TaxAmount      float64 `json:"taxAmount"`
	Total          float64 `json:"total"`
}

// Add sums two breakdowns field by field.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Subtotal:       t.Subtotal + o.Subtotal,
		DiscountAmount: t.DiscountAmount + o.DiscountAmount,
		TaxableAmount:  t.TaxableAmount + o.TaxableAmount,
		TaxAmount:      t.TaxAmount + o.TaxAmount,
		Total:          t.Total + o.Total,
	}
}

// QuoteTotals holds the one-time and subscription ledgers and their sum.
type QuoteTotals struct {
	OneTime      Totals `json:"oneTime"`
	Subscription Totals `json:"subscription"`
	Aggregate    Totals `json:"aggregate"`
}

// roundHalfUp rounds to the nearest whole currency unit with halves going
// towards +Inf, matching the rounding of the printed documents.
func roundHalfUp(x float64) float64 {
	return math.Floor(x + 0.5)
}

// LineGross is the undiscounted value of a line.
func LineGross(l QuoteLine) float64 {
	return l.Price * float64(l.Quantity)
}

// LineNet is the line value after its own discount, rounded per line.
func LineNet(l QuoteLine) float64 {
	return roundHalfUp(LineGross(l) * (1 - (l.Discount / 100)))
}

// ComputeTotals prices lines with a section discount and a tax rate, both in
// percent. Every step is rounded to whole units; out-of-range percentages are
// not rejected and simply flow through the arithmetic.
func ComputeTotals(lines []QuoteLine, discountPercent, taxPercent float64) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += LineNet(l)
	}

	discountAmount := roundHalfUp(subtotal * (discountPercent / 100))
	taxableAmount := subtotal - discountAmount
	taxAmount := roundHalfUp(taxableAmount * (taxPercent / 100))

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableAmount:  taxableAmount,
		TaxAmount:      taxAmount,
		Total:          taxableAmount + taxAmount,
	}
}

// PartitionLines splits lines into the one-time and subscription ledgers,
// preserving their relative order.
func PartitionLines(lines []QuoteLine) (oneTime, subscription []QuoteLine) {
	for _, l := range lines {
		if l.PaymentType.IsOneTime() {
			oneTime = append(oneTime, l)
		} else {
			subscription = append(subscription, l)
		}
	}
	return oneTime, subscription
}

// ComputeQuoteTotals prices each ledger independently, each with its own
// discount, then sums them for the headline figures.
func ComputeQuoteTotals(lines []QuoteLine, hardwareDiscount, subscriptionDiscount, taxPercent float64) QuoteTotals {
	oneTime, subscription := PartitionLines(lines)
	qt := QuoteTotals{
		OneTime:      ComputeTotals(oneTime, hardwareDiscount, taxPercent),
		Subscription: ComputeTotals(subscription, subscriptionDiscount, taxPercent),
	}
	qt.Aggregate = qt.OneTime.Add(qt.Subscription)
	return qt
}
