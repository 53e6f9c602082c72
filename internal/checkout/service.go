package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/superiorbooks/backend-pos/internal/catalog"
	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/events"
	"github.com/superiorbooks/backend-pos/internal/invoice"
	"github.com/superiorbooks/backend-pos/internal/ledger"
	"github.com/superiorbooks/backend-pos/internal/pricing"
	"github.com/superiorbooks/backend-pos/internal/settings"
)

// ErrEmptyCart rejects quoting or finalizing an empty cart.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// CartLineRequest is one requested cart line. Prices come from the catalog,
// never from the client.
type CartLineRequest struct {
	SKU string `json:"sku" validate:"required"`
	Qty int    `json:"quantity" validate:"gt=0"`
}

// CartRequest is a cart awaiting quote or finalization.
type CartRequest struct {
	Lines        []CartLineRequest `json:"lines" validate:"required,min=1,dive"`
	Discount     pricing.Money     `json:"discountAmount" validate:"min=0"`
	CustomerName string            `json:"customerName"`
}

// CartQuote pairs the priced lines with their computed totals.
type CartQuote struct {
	Items   []invoice.CartLine `json:"items"`
	Summary pricing.Summary    `json:"summary"`
}

// Service drives the register: quoting carts and service jobs, and
// finalizing them into ledger sales.
type Service struct {
	Catalog  *catalog.Store
	Settings *settings.Store
	Ledger   *ledger.Store
	Events   *events.Bus
	Now      func() time.Time
}

// QuoteCart resolves catalog prices for the cart and computes its totals.
// Each line must reference a known item with sufficient stock.
func (s *Service) QuoteCart(req CartRequest) (CartQuote, error) {
	if len(req.Lines) == 0 {
		return CartQuote{}, ErrEmptyCart
	}
	items := make([]invoice.CartLine, 0, len(req.Lines))
	priced := make([]pricing.Item, 0, len(req.Lines))
	for _, line := range req.Lines {
		it, err := s.Catalog.Get(line.SKU)
		if err != nil {
			return CartQuote{}, err
		}
		if line.Qty > it.Stock {
			return CartQuote{}, fmt.Errorf("%w: %s has %d, requested %d", catalog.ErrInsufficientStock, it.SKU, it.Stock, line.Qty)
		}
		items = append(items, invoice.CartLine{SKU: it.SKU, Name: it.Name, UnitPrice: it.Price, Qty: line.Qty})
		priced = append(priced, pricing.Item{Qty: line.Qty, UnitPrice: it.Price})
	}
	summary := pricing.Compute(priced, req.Discount, s.Settings.POS().DefaultTaxBps)
	return CartQuote{Items: items, Summary: summary}, nil
}

// CheckoutPOS finalizes a cart: the quote is frozen into an invoice, stock is
// decremented, and the sale is recorded in the ledger. A ledger failure
// restores the decremented stock.
func (s *Service) CheckoutPOS(ctx context.Context, op common.Operator, req CartRequest) (invoice.Invoice, error) {
	quote, err := s.QuoteCart(req)
	if err != nil {
		return invoice.Invoice{}, err
	}
	inv, err := invoice.NewPOS(s.now(), op, req.CustomerName, quote.Items, quote.Summary)
	if err != nil {
		return invoice.Invoice{}, err
	}
	inv = inv.AsFinalized()

	decrements := make([]catalog.StockDecrement, len(quote.Items))
	for i, item := range quote.Items {
		decrements[i] = catalog.StockDecrement{SKU: item.SKU, Qty: item.Qty}
	}
	if err := s.Catalog.DecrementStock(decrements); err != nil {
		return invoice.Invoice{}, err
	}
	if err := s.Ledger.RecordSale(inv); err != nil {
		for _, d := range decrements {
			s.Catalog.Restock(d.SKU, d.Qty)
		}
		return invoice.Invoice{}, err
	}

	if err := s.Events.Emit(ctx, events.Event{
		Topic:      events.TopicSaleFinalized,
		Operator:   op,
		ResourceID: inv.ID,
		Kind:       string(inv.Kind),
		Detail:     fmt.Sprintf("Completed POS sale %s, total Rs %s", inv.ID, pricing.FormatMoney(inv.Total)),
	}); err != nil {
		return inv, err
	}
	return inv, nil
}

// QuoteService prices a service-center job against the current tariff.
func (s *Service) QuoteService(form pricing.ServiceForm) pricing.ServiceTotals {
	return pricing.ComputeService(form, s.Settings.ServicePriceList())
}

// CheckoutService finalizes a service-center job into a ledger sale. Service
// jobs have no stock effect.
func (s *Service) CheckoutService(ctx context.Context, op common.Operator, form pricing.ServiceForm) (invoice.Invoice, error) {
	totals := s.QuoteService(form)
	inv, err := invoice.NewService(s.now(), op, form, totals)
	if err != nil {
		return invoice.Invoice{}, err
	}
	inv = inv.AsFinalized()
	if err := s.Ledger.RecordSale(inv); err != nil {
		return invoice.Invoice{}, err
	}

	if err := s.Events.Emit(ctx, events.Event{
		Topic:      events.TopicSaleFinalized,
		Operator:   op,
		ResourceID: inv.ID,
		Kind:       string(inv.Kind),
		Detail:     fmt.Sprintf("Completed %s sale %s, total Rs %s", form.Kind, inv.ID, pricing.FormatMoney(inv.Total)),
	}); err != nil {
		return inv, err
	}
	return inv, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
