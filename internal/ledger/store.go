package ledger

import (
	"errors"
	"iter"
	"sync"
	"time"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/invoice"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

var (
	// ErrDuplicateInvoiceID rejects recording the same sale twice.
	ErrDuplicateInvoiceID = errors.New("ledger: duplicate invoice id")
	// ErrSaleNotFound indicates the referenced sale is not in the ledger.
	ErrSaleNotFound = errors.New("ledger: sale not found")
	// ErrSaleAlreadyClosed rejects adjustments to a sale swept into a closure.
	ErrSaleAlreadyClosed = errors.New("ledger: sale already closed")
	// ErrRefundExceedsRemaining rejects refunds beyond the sale's remaining value.
	ErrRefundExceedsRemaining = errors.New("ledger: refund exceeds remaining value")
	// ErrNotFinalized rejects recording a draft invoice.
	ErrNotFinalized = errors.New("ledger: invoice not finalized")
)

// RefundKind classifies a post-sale adjustment.
type RefundKind string

const (
	// RefundCancel voids the full remaining value of a sale.
	RefundCancel RefundKind = "cancel"
	// RefundReturn refunds specific cart lines at their invoiced share.
	RefundReturn RefundKind = "return"
	// RefundDiscountAdjustment grants an after-the-fact discount increase.
	RefundDiscountAdjustment RefundKind = "discount_adjustment"
)

// Refund is one recorded adjustment against a sale. Like sales, refunds are
// immutable once recorded and may be linked to a closure exactly once.
type Refund struct {
	ID             string        `json:"id"`
	OriginalSaleID string        `json:"originalSaleId"`
	Kind           RefundKind    `json:"kind"`
	Amount         pricing.Money `json:"amount"`
	Date           time.Time     `json:"date"`
	OperatorID     string        `json:"operatorId"`
	OperatorName   string        `json:"operatorName"`
	ClosureID      string        `json:"closureId,omitempty"`
	Reason         string        `json:"reason,omitempty"`
}

// SaleFilter narrows ledger sale queries. Zero fields match everything.
type SaleFilter struct {
	OperatorID string
	Range      common.DateRange
	// Closed filters on closure attachment when set.
	Closed *bool
}

func (f SaleFilter) matches(sale invoice.Invoice) bool {
	if f.OperatorID != "" && sale.OperatorID != f.OperatorID {
		return false
	}
	if !f.Range.Contains(sale.Date) {
		return false
	}
	if f.Closed != nil && *f.Closed != (sale.ClosureID != "") {
		return false
	}
	return true
}

// RefundFilter narrows ledger refund queries. Zero fields match everything.
type RefundFilter struct {
	OperatorID string
	Range      common.DateRange
	Closed     *bool
}

func (f RefundFilter) matches(ref Refund) bool {
	if f.OperatorID != "" && ref.OperatorID != f.OperatorID {
		return false
	}
	if !f.Range.Contains(ref.Date) {
		return false
	}
	if f.Closed != nil && *f.Closed != (ref.ClosureID != "") {
		return false
	}
	return true
}

// Store is the append-only sale ledger. Sales and refunds are stored in
// insertion order; the only in-place mutation ever applied is stamping a
// closure id, which happens exactly once per record.
type Store struct {
	mu        sync.RWMutex
	sales     map[string]*invoice.Invoice
	saleOrder []string
	refunds   []*Refund
	// refunded tracks the running refunded total per sale id.
	refunded map[string]pricing.Money
}

// NewStore returns an empty ledger.
func NewStore() *Store {
	return &Store{
		sales:    make(map[string]*invoice.Invoice),
		refunded: make(map[string]pricing.Money),
	}
}

// RecordSale appends a finalized sale invoice. Draft invoices and duplicate
// ids are rejected.
func (s *Store) RecordSale(inv invoice.Invoice) error {
	if !inv.Finalized {
		return ErrNotFinalized
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sales[inv.ID]; ok {
		return ErrDuplicateInvoiceID
	}
	stored := inv
	s.sales[inv.ID] = &stored
	s.saleOrder = append(s.saleOrder, inv.ID)
	return nil
}

// GetSale returns the sale by invoice id.
func (s *Store) GetSale(id string) (invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.sales[id]
	if !ok {
		return invoice.Invoice{}, ErrSaleNotFound
	}
	return *sale, nil
}

// RefundedTotal returns the amount already refunded against a sale.
func (s *Store) RefundedTotal(saleID string) pricing.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refunded[saleID]
}

// RecordRefund validates and appends a refund. The original sale must exist,
// must not be closed yet, and the cumulative refunded amount may never exceed
// the sale total.
func (s *Store) RecordRefund(ref Refund) error {
	if ref.Amount <= 0 {
		return ErrRefundExceedsRemaining
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sale, ok := s.sales[ref.OriginalSaleID]
	if !ok {
		return ErrSaleNotFound
	}
	if sale.ClosureID != "" {
		return ErrSaleAlreadyClosed
	}
	if s.refunded[ref.OriginalSaleID]+ref.Amount > sale.Total {
		return ErrRefundExceedsRemaining
	}
	stored := ref
	s.refunds = append(s.refunds, &stored)
	s.refunded[ref.OriginalSaleID] += ref.Amount
	return nil
}

// QuerySales returns a reusable sequence over matching sales in insertion
// order. Each iteration walks a snapshot taken when it starts.
func (s *Store) QuerySales(filter SaleFilter) iter.Seq[invoice.Invoice] {
	return func(yield func(invoice.Invoice) bool) {
		for _, sale := range s.salesSnapshot() {
			if !filter.matches(sale) {
				continue
			}
			if !yield(sale) {
				return
			}
		}
	}
}

// QueryRefunds returns a reusable sequence over matching refunds in insertion
// order.
func (s *Store) QueryRefunds(filter RefundFilter) iter.Seq[Refund] {
	return func(yield func(Refund) bool) {
		for _, ref := range s.refundsSnapshot() {
			if !filter.matches(ref) {
				continue
			}
			if !yield(ref) {
				return
			}
		}
	}
}

// ClaimUnclosed atomically stamps every unclosed sale and refund belonging to
// the operator with the closure id and returns the stamped snapshots. The
// check and the stamp happen under one lock so a concurrent refund can never
// land between them.
func (s *Store) ClaimUnclosed(operatorID, closureID string) (sales []invoice.Invoice, refunds []Refund) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.saleOrder {
		sale := s.sales[id]
		if sale.OperatorID != operatorID || sale.ClosureID != "" {
			continue
		}
		sale.ClosureID = closureID
		sales = append(sales, *sale)
	}
	for _, ref := range s.refunds {
		if ref.OperatorID != operatorID || ref.ClosureID != "" {
			continue
		}
		ref.ClosureID = closureID
		refunds = append(refunds, *ref)
	}
	return sales, refunds
}

func (s *Store) salesSnapshot() []invoice.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]invoice.Invoice, 0, len(s.saleOrder))
	for _, id := range s.saleOrder {
		out = append(out, *s.sales[id])
	}
	return out
}

func (s *Store) refundsSnapshot() []Refund {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Refund, 0, len(s.refunds))
	for _, ref := range s.refunds {
		out = append(out, *ref)
	}
	return out
}
