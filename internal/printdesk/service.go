package printdesk

import (
	"context"
	"fmt"
	"time"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/events"
	"github.com/superiorbooks/backend-pos/internal/invoice"
	"github.com/superiorbooks/backend-pos/internal/pricing"
	"github.com/superiorbooks/backend-pos/internal/settings"
)

// Service runs the print desk: quoting jobs, settling them into invoices, and
// moving orders through the workflow.
type Service struct {
	Orders   *Store
	Settings *settings.Store
	Events   *events.Bus
	Now      func() time.Time
}

// Quote prices a print specification against the current tariff.
func (s *Service) Quote(spec pricing.PrintSpec) pricing.PrintTotals {
	return pricing.ComputePrint(spec, s.Settings.PrintPriceList())
}

// Create quotes the job, settles it through the chosen payment gateway, and
// queues the order as pending. Print orders never enter the sale ledger.
func (s *Service) Create(ctx context.Context, op common.Operator, customer string, spec pricing.PrintSpec, gateway, notes string) (Order, error) {
	if !s.Settings.GatewayEnabled(gateway) {
		return Order{}, ErrGatewayDisabled
	}
	totals := s.Quote(spec)
	now := s.now()
	inv, err := invoice.NewPrint(now, op, customer, spec, totals, gateway)
	if err != nil {
		return Order{}, err
	}
	inv = inv.AsFinalized()

	order := Order{
		ID:        inv.ID,
		Invoice:   inv,
		Status:    StatusPending,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Orders.Add(order)

	if err := s.Events.Emit(ctx, events.Event{
		Topic:      events.TopicPrintOrderCreated,
		Operator:   op,
		ResourceID: order.ID,
		Kind:       string(StatusPending),
		Detail:     fmt.Sprintf("Created print order %s for Rs %s via %s", order.ID, pricing.FormatMoney(inv.Total), gateway),
	}); err != nil {
		return order, err
	}
	return order, nil
}

// Transition moves an order to the requested status.
func (s *Service) Transition(ctx context.Context, op common.Operator, orderID string, to Status) (Order, error) {
	order, err := s.Orders.SetStatus(orderID, to, s.now())
	if err != nil {
		return order, err
	}
	if err := s.Events.Emit(ctx, events.Event{
		Topic:      events.TopicPrintOrderUpdated,
		Operator:   op,
		ResourceID: order.ID,
		Kind:       string(to),
		Detail:     fmt.Sprintf("Print order %s moved to %s", order.ID, to),
	}); err != nil {
		return order, err
	}
	return order, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
