package closure

import (
	"context"
	"fmt"
	"time"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/events"
	"github.com/superiorbooks/backend-pos/internal/ledger"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// Preview is the drawer summary shown before an operator commits a closure.
type Preview struct {
	Date         string        `json:"date"`
	OperatorID   string        `json:"operatorId"`
	TotalSales   pricing.Money `json:"totalSales"`
	SalesCount   int           `json:"salesCount"`
	TotalRefunds pricing.Money `json:"totalRefunds"`
	RefundsCount int           `json:"refundsCount"`
	NetCash      pricing.Money `json:"netCash"`
}

// Service runs the end-of-day closure workflow over the sale ledger.
type Service struct {
	Ledger   *ledger.Store
	Closures *Store
	Events   *events.Bus
	Now      func() time.Time
}

// Preview sums the operator's unclosed activity without committing anything.
func (s *Service) Preview(operatorID string) Preview {
	p := Preview{Date: common.Day(s.now()), OperatorID: operatorID}
	closed := false
	for sale := range s.Ledger.QuerySales(ledger.SaleFilter{OperatorID: operatorID, Closed: &closed}) {
		p.TotalSales += sale.Total
		p.SalesCount++
	}
	for ref := range s.Ledger.QueryRefunds(ledger.RefundFilter{OperatorID: operatorID, Closed: &closed}) {
		p.TotalRefunds += ref.Amount
		p.RefundsCount++
	}
	p.NetCash = p.TotalSales - p.TotalRefunds
	return p
}

// Create sweeps every unclosed sale and refund of the operator into a new
// pending closure. The sweep is atomic: activity recorded after it starts
// lands in the next closure.
func (s *Service) Create(ctx context.Context, op common.Operator) (DailyClosure, error) {
	now := s.now()
	id := fmt.Sprintf("CL-%s-%d", op.ID, now.UnixMilli())
	sales, refunds := s.Ledger.ClaimUnclosed(op.ID, id)
	if len(sales) == 0 && len(refunds) == 0 {
		return DailyClosure{}, ErrNothingToClose
	}

	c := DailyClosure{
		ID:           id,
		Date:         common.Day(now),
		OperatorID:   op.ID,
		OperatorName: op.Name,
		Status:       StatusPending,
	}
	for _, sale := range sales {
		c.TotalSales += sale.Total
		c.SalesCount++
		c.SalesInvoices = append(c.SalesInvoices, sale.ID)
	}
	for _, ref := range refunds {
		c.TotalRefunds += ref.Amount
		c.RefundsCount++
		c.RefundInvoices = append(c.RefundInvoices, ref.ID)
	}
	s.Closures.Add(c)

	if err := s.Events.Emit(ctx, events.Event{
		Topic:      events.TopicClosureCreated,
		Operator:   op,
		ResourceID: c.ID,
		Detail: fmt.Sprintf("Closed day with %d sales (Rs %s) and %d refunds (Rs %s)",
			c.SalesCount, pricing.FormatMoney(c.TotalSales), c.RefundsCount, pricing.FormatMoney(c.TotalRefunds)),
	}); err != nil {
		return c, err
	}
	return c, nil
}

// Receive confirms the handover on the finance side. Receiving is terminal
// and idempotence violations surface as ErrAlreadyReceived with the closure
// unchanged.
func (s *Service) Receive(ctx context.Context, op common.Operator, closureID string) (DailyClosure, error) {
	c, err := s.Closures.MarkReceived(closureID, op.Name)
	if err != nil {
		return c, err
	}
	if err := s.Events.Emit(ctx, events.Event{
		Topic:      events.TopicClosureReceived,
		Operator:   op,
		ResourceID: c.ID,
		Detail:     fmt.Sprintf("Received closure %s, net Rs %s", c.ID, pricing.FormatMoney(c.TotalSales-c.TotalRefunds)),
	}); err != nil {
		return c, err
	}
	return c, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
