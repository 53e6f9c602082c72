package pricing

import "fmt"

// Money represents a monetary value stored in minor units.
type Money = int64

// Item describes a cart line used for totals calculation. UnitPrice is the
// snapshot taken when the line was added, so later catalog edits do not
// retroactively change an open cart.
type Item struct {
	Qty       int
	UnitPrice Money
}

// Summary aggregates computed cart pricing components.
type Summary struct {
	Subtotal Money `json:"subtotal"`
	Discount Money `json:"discountAmount"`
	Tax      Money `json:"taxAmount"`
	Total    Money `json:"total"`
}

// Compute calculates cart totals given the provided inputs. The requested
// discount is clamped to the subtotal and tax applies only to the
// post-discount amount.
func Compute(items []Item, discount Money, taxBps int) Summary {
	var subtotal Money
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal += Money(it.Qty) * it.UnitPrice
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		discount = 0
	}
	taxable := subtotal - discount
	tax := (taxable * Money(taxBps)) / 10000
	return Summary{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    taxable + tax,
	}
}

// FormatMoney renders a minor-unit amount as a two-decimal display string.
func FormatMoney(m Money) string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)
}
