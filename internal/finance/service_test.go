package finance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/superiorbooks/backend-pos/internal/closure"
	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/invoice"
	"github.com/superiorbooks/backend-pos/internal/ledger"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

type fixture struct {
	ledger   *ledger.Store
	closures *closure.Service
	finance  *Service
	operator common.Operator
}

func newFixture(at time.Time) *fixture {
	store := ledger.NewStore()
	closures := &closure.Service{
		Ledger:   store,
		Closures: closure.NewStore(),
		Now:      func() time.Time { return at },
	}
	return &fixture{
		ledger:   store,
		closures: closures,
		finance: &Service{
			Ledger:   store,
			Closures: closures.Closures,
			Expenses: NewExpenseStore(),
			Now:      func() time.Time { return at },
		},
		operator: common.Operator{ID: "op-1", Name: "Ayesha"},
	}
}

func (f *fixture) sale(t *testing.T, at time.Time, total pricing.Money) invoice.Invoice {
	t.Helper()
	items := []invoice.CartLine{{SKU: "BK-001", Name: "Notebook", UnitPrice: total, Qty: 1}}
	totals := pricing.Compute([]pricing.Item{{Qty: 1, UnitPrice: total}}, 0, 0)
	inv, err := invoice.NewPOS(at, f.operator, "", items, totals)
	require.NoError(t, err)
	inv = inv.AsFinalized()
	require.NoError(t, f.ledger.RecordSale(inv))
	return inv
}

func (f *fixture) closeAndReceive(t *testing.T, at time.Time) closure.DailyClosure {
	t.Helper()
	f.closures.Now = func() time.Time { return at }
	c, err := f.closures.Create(context.Background(), f.operator)
	require.NoError(t, err)
	received, err := f.closures.Receive(context.Background(), common.Operator{ID: "fin-1", Name: "Fatima"}, c.ID)
	require.NoError(t, err)
	return received
}

func TestSummaryCountsOnlyReceivedClosures(t *testing.T) {
	day1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(day1)

	f.sale(t, day1, 100_000)
	sum := f.finance.Summarize(common.DateRange{})
	require.Zero(t, sum.TotalRevenue)

	// Pending closures do not count either.
	c, err := f.closures.Create(context.Background(), f.operator)
	require.NoError(t, err)
	sum = f.finance.Summarize(common.DateRange{})
	require.Zero(t, sum.TotalRevenue)

	_, err = f.closures.Receive(context.Background(), common.Operator{ID: "fin-1"}, c.ID)
	require.NoError(t, err)
	sum = f.finance.Summarize(common.DateRange{})
	require.Equal(t, pricing.Money(100_000), sum.TotalRevenue)
	require.Equal(t, 1, sum.SalesCount)
}

func TestRefundAttributedToOriginalSaleDate(t *testing.T) {
	day1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	day3 := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)
	f := newFixture(day1)

	sale := f.sale(t, day1, 100_000)
	require.NoError(t, f.ledger.RecordRefund(ledger.Refund{
		ID: "RF-1", OriginalSaleID: sale.ID, Kind: ledger.RefundCancel,
		Amount: 30_000, Date: day3, OperatorID: f.operator.ID,
	}))
	f.closeAndReceive(t, day3)

	// Querying day one alone sees both the sale and its later refund.
	sum := f.finance.Summarize(common.DateRange{Start: "2024-06-01", End: "2024-06-01"})
	require.Equal(t, pricing.Money(100_000), sum.TotalRevenue)
	require.Equal(t, pricing.Money(30_000), sum.TotalRefunds)
	require.Equal(t, pricing.Money(70_000), sum.NetRevenue)

	// Day three alone sees neither.
	sum = f.finance.Summarize(common.DateRange{Start: "2024-06-03", End: "2024-06-03"})
	require.Zero(t, sum.TotalRevenue)
	require.Zero(t, sum.TotalRefunds)
}

func TestExpensesAttributedByOwnDate(t *testing.T) {
	day1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(day1)

	_, err := f.finance.RecordExpense(context.Background(), f.operator, Expense{
		Category: "rent", Description: "June rent", Amount: 500_000, Date: "2024-06-01",
	})
	require.NoError(t, err)
	_, err = f.finance.RecordExpense(context.Background(), f.operator, Expense{
		Category: "supplies", Amount: 20_000, Date: "2024-06-05",
	})
	require.NoError(t, err)

	sum := f.finance.Summarize(common.DateRange{Start: "2024-06-01", End: "2024-06-01"})
	require.Equal(t, pricing.Money(500_000), sum.TotalExpenses)
	require.Equal(t, 1, sum.ExpensesCount)
	require.Equal(t, pricing.Money(-500_000), sum.NetProfit)
}

func TestExpenseDateDefaultsToToday(t *testing.T) {
	at := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	f := newFixture(at)

	e, err := f.finance.RecordExpense(context.Background(), f.operator, Expense{Category: "tea", Amount: 1_000})
	require.NoError(t, err)
	require.Equal(t, "2024-06-02", e.Date)
}

func TestSummaryNetProfit(t *testing.T) {
	day1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	f := newFixture(day1)

	f.sale(t, day1, 200_000)
	f.closeAndReceive(t, day1)
	_, err := f.finance.RecordExpense(context.Background(), f.operator, Expense{
		Category: "supplies", Amount: 50_000, Date: "2024-06-01",
	})
	require.NoError(t, err)

	sum := f.finance.Summarize(common.DateRange{Start: "2024-06-01", End: "2024-06-01"})
	require.Equal(t, pricing.Money(200_000), sum.TotalRevenue)
	require.Equal(t, pricing.Money(150_000), sum.NetProfit)
}
