package reports

import (
	"sort"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/invoice"
	"github.com/superiorbooks/backend-pos/internal/ledger"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// DailySales is one calendar day's aggregated register activity.
type DailySales struct {
	Day        string        `json:"day"`
	Orders     int           `json:"orders"`
	Revenue    pricing.Money `json:"revenue"`
	Refunds    pricing.Money `json:"refunds"`
	NetRevenue pricing.Money `json:"netRevenue"`
}

// TopItem is one catalog item ranked by quantity sold.
type TopItem struct {
	SKU     string        `json:"sku"`
	Name    string        `json:"name"`
	QtySold int           `json:"qtySold"`
	Revenue pricing.Money `json:"revenue"`
}

// Service derives dashboard figures from the sale ledger. Everything the
// register ever recorded counts here, closed or not; the accrual summary is
// the reconciled view.
type Service struct {
	Ledger *ledger.Store
}

// SalesRange aggregates ledger activity per day inside the range, refunds
// attributed to the refunded sale's day.
func (s *Service) SalesRange(dateRange common.DateRange) []DailySales {
	byDay := make(map[string]*DailySales)
	day := func(key string) *DailySales {
		if d, ok := byDay[key]; ok {
			return d
		}
		d := &DailySales{Day: key}
		byDay[key] = d
		return d
	}

	for sale := range s.Ledger.QuerySales(ledger.SaleFilter{Range: dateRange}) {
		d := day(common.Day(sale.Date))
		d.Orders++
		d.Revenue += sale.Total
	}
	for ref := range s.Ledger.QueryRefunds(ledger.RefundFilter{}) {
		original, err := s.Ledger.GetSale(ref.OriginalSaleID)
		if err != nil || !dateRange.Contains(original.Date) {
			continue
		}
		day(common.Day(original.Date)).Refunds += ref.Amount
	}

	out := make([]DailySales, 0, len(byDay))
	for _, d := range byDay {
		d.NetRevenue = d.Revenue - d.Refunds
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// TopItems ranks catalog items by quantity sold across POS sales in the
// range.
func (s *Service) TopItems(dateRange common.DateRange, limit int) []TopItem {
	if limit <= 0 {
		limit = 10
	}
	bySKU := make(map[string]*TopItem)
	for sale := range s.Ledger.QuerySales(ledger.SaleFilter{Range: dateRange}) {
		if sale.Kind != invoice.KindPOS || sale.POS == nil {
			continue
		}
		for _, line := range sale.POS.Items {
			item, ok := bySKU[line.SKU]
			if !ok {
				item = &TopItem{SKU: line.SKU, Name: line.Name}
				bySKU[line.SKU] = item
			}
			item.QtySold += line.Qty
			item.Revenue += pricing.Money(line.Qty) * line.UnitPrice
		}
	}

	out := make([]TopItem, 0, len(bySKU))
	for _, item := range bySKU {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QtySold != out[j].QtySold {
			return out[i].QtySold > out[j].QtySold
		}
		return out[i].SKU < out[j].SKU
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
