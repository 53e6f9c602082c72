package pricing

import "testing"

func TestComputeCartTotals(t *testing.T) {
	// One item at Rs 1000.00, qty 2, discount Rs 500.00, 10% tax.
	items := []Item{{Qty: 2, UnitPrice: 100_000}}
	got := Compute(items, 50_000, 1000)
	if got.Subtotal != 200_000 {
		t.Fatalf("expected subtotal 200000, got %d", got.Subtotal)
	}
	if got.Discount != 50_000 {
		t.Fatalf("expected discount 50000, got %d", got.Discount)
	}
	if got.Tax != 15_000 {
		t.Fatalf("expected tax 15000, got %d", got.Tax)
	}
	if got.Total != 165_000 {
		t.Fatalf("expected total 165000, got %d", got.Total)
	}
}

func TestComputeClampsDiscountToSubtotal(t *testing.T) {
	items := []Item{{Qty: 1, UnitPrice: 5_000}}
	got := Compute(items, 99_999, 1500)
	if got.Discount != got.Subtotal {
		t.Fatalf("expected discount clamped to subtotal %d, got %d", got.Subtotal, got.Discount)
	}
	if got.Total != 0 {
		t.Fatalf("expected zero total after full discount, got %d", got.Total)
	}
}

func TestComputeNegativeDiscountIgnored(t *testing.T) {
	got := Compute([]Item{{Qty: 3, UnitPrice: 1_000}}, -500, 0)
	if got.Discount != 0 {
		t.Fatalf("expected zero discount, got %d", got.Discount)
	}
	if got.Total != 3_000 {
		t.Fatalf("expected total 3000, got %d", got.Total)
	}
}

func TestComputeSkipsNonPositiveQuantities(t *testing.T) {
	items := []Item{
		{Qty: 0, UnitPrice: 10_000},
		{Qty: -2, UnitPrice: 10_000},
		{Qty: 1, UnitPrice: 2_500},
	}
	got := Compute(items, 0, 0)
	if got.Subtotal != 2_500 {
		t.Fatalf("expected subtotal 2500, got %d", got.Subtotal)
	}
}

func TestComputeIsPure(t *testing.T) {
	items := []Item{{Qty: 4, UnitPrice: 7_331}}
	first := Compute(items, 1_000, 1750)
	second := Compute(items, 1_000, 1750)
	if first != second {
		t.Fatalf("expected identical summaries, got %+v and %+v", first, second)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[Money]string{
		0:       "0.00",
		500:     "5.00",
		165_000: "1650.00",
		-1_205:  "-12.05",
		9:       "0.09",
	}
	for amount, want := range cases {
		if got := FormatMoney(amount); got != want {
			t.Fatalf("FormatMoney(%d) = %q, want %q", amount, got, want)
		}
	}
}
