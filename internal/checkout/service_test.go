package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/superiorbooks/backend-pos/internal/catalog"
	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/ledger"
	"github.com/superiorbooks/backend-pos/internal/pricing"
	"github.com/superiorbooks/backend-pos/internal/settings"
)

func newCheckoutService(at time.Time) *Service {
	cfg := settings.NewStore()
	cfg.SetPOS(settings.POSSettings{DefaultTaxBps: 1000, LowStockThreshold: 5})
	return &Service{
		Catalog:  catalog.NewSeededStore(),
		Settings: cfg,
		Ledger:   ledger.NewStore(),
		Now:      func() time.Time { return at },
	}
}

func TestQuoteCartUsesCatalogPrices(t *testing.T) {
	svc := newCheckoutService(time.Now())

	quote, err := svc.QuoteCart(CartRequest{
		Lines:    []CartLineRequest{{SKU: "STN-NB-A5", Qty: 2}},
		Discount: 5_000,
	})
	require.NoError(t, err)
	require.Equal(t, pricing.Money(50_000), quote.Summary.Subtotal)
	require.Equal(t, pricing.Money(5_000), quote.Summary.Discount)
	require.Equal(t, pricing.Money(4_500), quote.Summary.Tax)
	require.Equal(t, pricing.Money(49_500), quote.Summary.Total)
	require.Equal(t, "A5 Notebook", quote.Items[0].Name)
}

func TestQuoteCartRejectsUnknownAndOverStock(t *testing.T) {
	svc := newCheckoutService(time.Now())

	_, err := svc.QuoteCart(CartRequest{Lines: []CartLineRequest{{SKU: "XX-404", Qty: 1}}})
	require.ErrorIs(t, err, catalog.ErrNotFound)

	_, err = svc.QuoteCart(CartRequest{Lines: []CartLineRequest{{SKU: "STN-NB-A5", Qty: 41}}})
	require.ErrorIs(t, err, catalog.ErrInsufficientStock)
}

func TestCheckoutPOSDecrementsStockAndRecordsSale(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newCheckoutService(at)
	op := common.Operator{ID: "op-1", Name: "Ayesha"}

	inv, err := svc.CheckoutPOS(context.Background(), op, CartRequest{
		Lines: []CartLineRequest{{SKU: "STN-NB-A5", Qty: 3}},
	})
	require.NoError(t, err)
	require.True(t, inv.Finalized)

	item, err := svc.Catalog.Get("STN-NB-A5")
	require.NoError(t, err)
	require.Equal(t, 37, item.Stock)

	recorded, err := svc.Ledger.GetSale(inv.ID)
	require.NoError(t, err)
	require.Equal(t, inv.Total, recorded.Total)
}

func TestCheckoutPOSWalkInCustomer(t *testing.T) {
	svc := newCheckoutService(time.Now())
	inv, err := svc.CheckoutPOS(context.Background(), common.Operator{ID: "op-1"}, CartRequest{
		Lines: []CartLineRequest{{SKU: "STN-PEN-BL", Qty: 1}},
	})
	require.NoError(t, err)
	require.Equal(t, "Walk-in Customer", inv.CustomerName)
}

func TestCheckoutServiceHasNoStockEffect(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := newCheckoutService(at)
	op := common.Operator{ID: "op-1", Name: "Ayesha"}
	before := svc.Catalog.List()

	inv, err := svc.CheckoutService(context.Background(), op, pricing.ServiceForm{
		Kind:      pricing.ServicePhotocopy,
		PaperSize: "a4",
		PaperType: "standard",
		BWPages:   10,
		Copies:    2,
	})
	require.NoError(t, err)
	require.Equal(t, pricing.Money(10_000), inv.Total)
	require.Equal(t, before, svc.Catalog.List())

	_, err = svc.Ledger.GetSale(inv.ID)
	require.NoError(t, err)
}

func TestCheckoutServiceRejectsZeroQuote(t *testing.T) {
	svc := newCheckoutService(time.Now())
	_, err := svc.CheckoutService(context.Background(), common.Operator{ID: "op-1"}, pricing.ServiceForm{
		Kind: pricing.ServiceScan,
	})
	require.Error(t, err)
}
