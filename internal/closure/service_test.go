package closure

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/invoice"
	"github.com/superiorbooks/backend-pos/internal/ledger"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

func newClosureService(store *ledger.Store, at time.Time) *Service {
	return &Service{
		Ledger:   store,
		Closures: NewStore(),
		Now:      func() time.Time { return at },
	}
}

func recordSale(t *testing.T, store *ledger.Store, op common.Operator, at time.Time, unitPrice pricing.Money) invoice.Invoice {
	t.Helper()
	items := []invoice.CartLine{{SKU: "BK-001", Name: "Notebook", UnitPrice: unitPrice, Qty: 1}}
	totals := pricing.Compute([]pricing.Item{{Qty: 1, UnitPrice: unitPrice}}, 0, 0)
	inv, err := invoice.NewPOS(at, op, "", items, totals)
	require.NoError(t, err)
	inv = inv.AsFinalized()
	require.NoError(t, store.RecordSale(inv))
	return inv
}

func TestCreateSweepsUnclosedActivity(t *testing.T) {
	store := ledger.NewStore()
	op := common.Operator{ID: "op-1", Name: "Ayesha"}
	at := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	svc := newClosureService(store, at)

	sale := recordSale(t, store, op, at, 100_000)
	require.NoError(t, store.RecordRefund(ledger.Refund{
		ID: "RF-1", OriginalSaleID: sale.ID, Kind: ledger.RefundCancel,
		Amount: 40_000, Date: at, OperatorID: op.ID,
	}))

	preview := svc.Preview(op.ID)
	require.Equal(t, pricing.Money(100_000), preview.TotalSales)
	require.Equal(t, pricing.Money(40_000), preview.TotalRefunds)
	require.Equal(t, pricing.Money(60_000), preview.NetCash)

	c, err := svc.Create(context.Background(), op)
	require.NoError(t, err)
	require.Equal(t, StatusPending, c.Status)
	require.Equal(t, "2024-06-01", c.Date)
	require.Equal(t, 1, c.SalesCount)
	require.Equal(t, 1, c.RefundsCount)
	require.Equal(t, []string{sale.ID}, c.SalesInvoices)

	// The swept sale now carries the closure id in the ledger.
	got, err := store.GetSale(sale.ID)
	require.NoError(t, err)
	require.Equal(t, c.ID, got.ClosureID)
}

func TestCreateWithNothingToClose(t *testing.T) {
	svc := newClosureService(ledger.NewStore(), time.Now())
	_, err := svc.Create(context.Background(), common.Operator{ID: "op-1"})
	require.ErrorIs(t, err, ErrNothingToClose)
}

func TestSecondClosureOnlySweepsNewActivity(t *testing.T) {
	store := ledger.NewStore()
	op := common.Operator{ID: "op-1", Name: "Ayesha"}
	day1 := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	svc := newClosureService(store, day1)

	recordSale(t, store, op, day1, 100_000)
	first, err := svc.Create(context.Background(), op)
	require.NoError(t, err)

	day2 := day1.Add(24 * time.Hour)
	svc.Now = func() time.Time { return day2 }
	recordSale(t, store, op, day2, 70_000)
	second, err := svc.Create(context.Background(), op)
	require.NoError(t, err)

	require.NotEqual(t, first.ID, second.ID)
	require.Equal(t, pricing.Money(70_000), second.TotalSales)
	require.Equal(t, 1, second.SalesCount)
}

func TestReceiveIsTerminal(t *testing.T) {
	store := ledger.NewStore()
	op := common.Operator{ID: "op-1", Name: "Ayesha"}
	finance := common.Operator{ID: "fin-1", Name: "Fatima"}
	at := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	svc := newClosureService(store, at)

	recordSale(t, store, op, at, 100_000)
	c, err := svc.Create(context.Background(), op)
	require.NoError(t, err)

	received, err := svc.Receive(context.Background(), finance, c.ID)
	require.NoError(t, err)
	require.Equal(t, StatusReceived, received.Status)
	require.Equal(t, "Fatima", received.ReceivedBy)

	// A second receive fails and leaves every field unchanged.
	again, err := svc.Receive(context.Background(), finance, c.ID)
	require.ErrorIs(t, err, ErrAlreadyReceived)
	require.Equal(t, received, again)
}

func TestReceiveUnknownClosure(t *testing.T) {
	svc := newClosureService(ledger.NewStore(), time.Now())
	_, err := svc.Receive(context.Background(), common.Operator{ID: "fin-1"}, "CL-missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListFilters(t *testing.T) {
	store := ledger.NewStore()
	op := common.Operator{ID: "op-1", Name: "Ayesha"}
	at := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	svc := newClosureService(store, at)

	recordSale(t, store, op, at, 100_000)
	_, err := svc.Create(context.Background(), op)
	require.NoError(t, err)

	require.Len(t, svc.Closures.List(Filter{Status: StatusPending}), 1)
	require.Empty(t, svc.Closures.Received())
	require.Len(t, svc.Closures.List(Filter{Search: "ayesha"}), 1)
	require.Empty(t, svc.Closures.List(Filter{Search: "nobody"}))
	require.Len(t, svc.Closures.List(Filter{From: "2024-06-01", To: "2024-06-01"}), 1)
	require.Empty(t, svc.Closures.List(Filter{From: "2024-06-02"}))
}
