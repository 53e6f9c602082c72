package invoice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

var testOperator = common.Operator{ID: "op-1", Name: "Ayesha"}

func TestNewPOSRejectsEmptyCart(t *testing.T) {
	_, err := NewPOS(time.Now(), testOperator, "", nil, pricing.Summary{})
	require.ErrorIs(t, err, ErrInvalidInvoiceState)
}

func TestNewPOSFreezesTotals(t *testing.T) {
	items := []pricing.Item{{Qty: 2, UnitPrice: 100_000}}
	totals := pricing.Compute(items, 50_000, 1000)
	lines := []CartLine{{SKU: "BK-001", Name: "Atlas", UnitPrice: 100_000, Qty: 2}}

	inv, err := NewPOS(time.Now(), testOperator, "", lines, totals)
	require.NoError(t, err)
	require.Equal(t, KindPOS, inv.Kind)
	require.Equal(t, pricing.Money(165_000), inv.Total)
	require.Equal(t, "Walk-in Customer", inv.CustomerName)
	require.False(t, inv.Finalized)

	// Mutating the caller's slice must not leak into the frozen invoice.
	lines[0].Qty = 99
	require.Equal(t, 2, inv.POS.Items[0].Qty)
}

func TestNewServiceRejectsZeroTotal(t *testing.T) {
	form := pricing.ServiceForm{Kind: pricing.ServiceScan}
	_, err := NewService(time.Now(), testOperator, form, pricing.ServiceTotals{})
	require.ErrorIs(t, err, ErrInvalidInvoiceState)
}

func TestNewServiceCarriesBreakdown(t *testing.T) {
	form := pricing.ServiceForm{Kind: pricing.ServiceScan, ScanPages: 4, CustomerName: "Bilal"}
	totals := pricing.ServiceTotals{
		Breakdown: []pricing.BreakdownLine{{Label: "Scanning (4 pages)", Cost: 800}},
		Total:     800,
	}
	inv, err := NewService(time.Now(), testOperator, form, totals)
	require.NoError(t, err)
	require.Equal(t, KindService, inv.Kind)
	require.Equal(t, "Bilal", inv.CustomerName)
	require.Len(t, inv.Service.Breakdown, 1)
}

func TestClosureLinkIsOneWay(t *testing.T) {
	inv, err := NewPrint(time.Now(), testOperator, "Dania", pricing.PrintSpec{Pages: 1, Copies: 1}, pricing.PrintTotals{Total: 1_000}, "Bank Transfer")
	require.NoError(t, err)

	linked, err := inv.WithClosure("CL-op-1-1")
	require.NoError(t, err)
	require.Equal(t, "CL-op-1-1", linked.ClosureID)

	_, err = linked.WithClosure("CL-op-1-2")
	require.ErrorIs(t, err, ErrAlreadyClosed)
}

func TestFinalizedFieldsStayFrozen(t *testing.T) {
	items := []CartLine{{SKU: "BK-002", Name: "Ledger Pad", UnitPrice: 2_500, Qty: 1}}
	inv, err := NewPOS(time.Now(), testOperator, "Walk-in", items, pricing.Summary{Subtotal: 2_500, Total: 2_500})
	require.NoError(t, err)

	final := inv.AsFinalized()
	require.True(t, final.Finalized)
	require.Equal(t, inv.Total, final.Total)
	require.Equal(t, inv.POS.Subtotal, final.POS.Subtotal)
	require.False(t, inv.Finalized, "finalization returns a copy")
}
