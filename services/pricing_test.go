package services

import "testing"

func line(id int64, price float64, qty int, discount float64, pt PaymentType) QuoteLine {
	return QuoteLine{UID: "uid", ProductID: id, Price: price, Quantity: qty, Discount: discount, PaymentType: pt}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		lines    []QuoteLine
		discount float64
		tax      float64
		expect   Totals
	}{
		{
			name: "two subscription lines with line discount",
			lines: []QuoteLine{
				line(1, 5450, 1, 0, PaymentSubscription),
				line(2, 3000, 2, 10, PaymentSubscription),
			},
			discount: 0,
			tax:      18,
			expect:   Totals{Subtotal: 10850, DiscountAmount: 0, TaxableAmount: 10850, TaxAmount: 1953, Total: 12803},
		},
		{
			name:     "section discount",
			lines:    []QuoteLine{line(1, 1000, 1, 0, PaymentOneTime)},
			discount: 10,
			tax:      18,
			expect:   Totals{Subtotal: 1000, DiscountAmount: 100, TaxableAmount: 900, TaxAmount: 162, Total: 1062},
		},
		{
			name:   "no lines",
			lines:  nil,
			tax:    18,
			expect: Totals{},
		},
		{
			name:   "half rounds up per line",
			lines:  []QuoteLine{line(1, 0.5, 1, 0, PaymentSubscription), line(2, 2.5, 1, 0, PaymentSubscription)},
			expect: Totals{Subtotal: 4, TaxableAmount: 4, Total: 4},
		},
		{
			name:   "zero quantity contributes nothing",
			lines:  []QuoteLine{line(1, 999, 0, 0, PaymentSubscription)},
			tax:    18,
			expect: Totals{},
		},
		{
			name:     "discount above 100 is not clamped",
			lines:    []QuoteLine{line(1, 100, 1, 0, PaymentSubscription)},
			discount: 150,
			expect:   Totals{Subtotal: 100, DiscountAmount: 150, TaxableAmount: -50, Total: -50},
		},
		{
			name:   "line discount of 100 zeroes the line",
			lines:  []QuoteLine{line(1, 625, 3, 100, PaymentSubscription)},
			tax:    18,
			expect: Totals{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lines, tt.discount, tt.tax)
			if got != tt.expect {
				t.Errorf("ComputeTotals() = %+v, want %+v", got, tt.expect)
			}
		})
	}
}

func TestComputeTotals_Idempotent(t *testing.T) {
	lines := []QuoteLine{
		line(1, 5450, 3, 7.5, PaymentSubscription),
		line(5, 834, 11, 0, PaymentOneTime),
	}
	first := ComputeTotals(lines, 12.5, 18)
	for i := 0; i < 3; i++ {
		if got := ComputeTotals(lines, 12.5, 18); got != first {
			t.Fatalf("run %d: ComputeTotals() = %+v, want %+v", i, got, first)
		}
	}
	if lines[0].Quantity != 3 || lines[0].Discount != 7.5 {
		t.Error("ComputeTotals() modified its input")
	}
}

func TestComputeTotals_Invariants(t *testing.T) {
	lines := []QuoteLine{
		line(1, 1234.56, 3, 12.5, PaymentSubscription),
		line(2, 99.99, 7, 0, PaymentSubscription),
	}
	got := ComputeTotals(lines, 8, 18)

	if got.TaxableAmount != got.Subtotal-got.DiscountAmount {
		t.Errorf("taxable %v != subtotal %v - discount %v", got.TaxableAmount, got.Subtotal, got.DiscountAmount)
	}
	if got.Total != got.TaxableAmount+got.TaxAmount {
		t.Errorf("total %v != taxable %v + tax %v", got.Total, got.TaxableAmount, got.TaxAmount)
	}
	for _, v := range []float64{got.Subtotal, got.DiscountAmount, got.TaxAmount} {
		if v != float64(int64(v)) {
			t.Errorf("expected whole-unit amount, got %v", v)
		}
	}
}

func TestPartitionLines(t *testing.T) {
	lines := []QuoteLine{
		{UID: "a", PaymentType: PaymentOneTime},
		{UID: "b", PaymentType: PaymentSubscription},
		{UID: "c", PaymentType: ""},
		{UID: "d", PaymentType: PaymentOneTime},
		{UID: "e", PaymentType: "Annual"},
	}

	oneTime, subscription := PartitionLines(lines)

	if len(oneTime) != 2 || oneTime[0].UID != "a" || oneTime[1].UID != "d" {
		t.Errorf("oneTime = %+v, want [a d]", oneTime)
	}
	if len(subscription) != 3 || subscription[0].UID != "b" || subscription[1].UID != "c" || subscription[2].UID != "e" {
		t.Errorf("subscription = %+v, want [b c e]", subscription)
	}
}

func TestComputeQuoteTotals_Partitioned(t *testing.T) {
	lines := []QuoteLine{
		line(1, 1000, 1, 0, PaymentOneTime),
		line(2, 1000, 1, 0, PaymentSubscription),
	}

	got := ComputeQuoteTotals(lines, 10, 0, 18)

	wantOneTime := Totals{Subtotal: 1000, DiscountAmount: 100, TaxableAmount: 900, TaxAmount: 162, Total: 1062}
	wantSub := Totals{Subtotal: 1000, DiscountAmount: 0, TaxableAmount: 1000, TaxAmount: 180, Total: 1180}
	if got.OneTime != wantOneTime {
		t.Errorf("OneTime = %+v, want %+v", got.OneTime, wantOneTime)
	}
	if got.Subscription != wantSub {
		t.Errorf("Subscription = %+v, want %+v", got.Subscription, wantSub)
	}
	if got.Aggregate.Total != 2242 {
		t.Errorf("Aggregate.Total = %v, want 2242", got.Aggregate.Total)
	}
	if got.Aggregate != wantOneTime.Add(wantSub) {
		t.Errorf("Aggregate = %+v, want field-wise sum", got.Aggregate)
	}
}

func TestComputeQuoteTotals_RoundingDiffersFromSinglePass(t *testing.T) {
	lines := []QuoteLine{
		line(1, 25, 1, 0, PaymentOneTime),
		line(2, 25, 1, 0, PaymentSubscription),
	}

	partitioned := ComputeQuoteTotals(lines, 0, 0, 18)
	single := ComputeTotals(lines, 0, 18)

	if partitioned.Aggregate.TaxAmount != 10 {
		t.Errorf("partitioned tax = %v, want 10", partitioned.Aggregate.TaxAmount)
	}
	if single.TaxAmount != 9 {
		t.Errorf("single pass tax = %v, want 9", single.TaxAmount)
	}
	if partitioned.Aggregate.Subtotal != single.Subtotal {
		t.Errorf("subtotals differ: %v vs %v", partitioned.Aggregate.Subtotal, single.Subtotal)
	}
}

func TestComputeQuoteTotals_EqualRatesWithoutRounding(t *testing.T) {
	lines := []QuoteLine{
		line(1, 1000, 2, 0, PaymentOneTime),
		line(2, 3000, 1, 0, PaymentSubscription),
	}

	partitioned := ComputeQuoteTotals(lines, 10, 10, 18)
	single := ComputeTotals(lines, 10, 18)

	if partitioned.Aggregate != single {
		t.Errorf("partitioned %+v != single pass %+v", partitioned.Aggregate, single)
	}
}

func TestLineNet(t *testing.T) {
	tests := []struct {
		name   string
		line   QuoteLine
		expect float64
	}{
		{"plain", line(1, 3000, 2, 0, PaymentSubscription), 6000},
		{"ten percent", line(1, 3000, 2, 10, PaymentSubscription), 5400},
		{"rounds half up", line(1, 1.25, 2, 0, PaymentSubscription), 3},
		{"rounds down", line(1, 10.4, 1, 0, PaymentSubscription), 10},
		{"negative discount raises price", line(1, 100, 1, -10, PaymentSubscription), 110},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineNet(tt.line); got != tt.expect {
				t.Errorf("LineNet() = %v, want %v", got, tt.expect)
			}
		})
	}
}
