package invoice

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// ErrInvalidInvoiceState is returned when building an invoice from an empty
// cart or a zero-value quote.
var ErrInvalidInvoiceState = errors.New("invoice: empty or zero-value draft")

// ErrAlreadyClosed indicates the invoice is already attached to a closure.
var ErrAlreadyClosed = errors.New("invoice: already attached to a closure")

// Kind discriminates the invoice variants.
type Kind string

const (
	// KindPOS is a point-of-sale cart invoice.
	KindPOS Kind = "pos"
	// KindService is a service-center (photocopy/scan/id-card) invoice.
	KindService Kind = "photocopy"
	// KindPrint is a print-order invoice settled outside the sale ledger.
	KindPrint Kind = "printing"
)

// CartLine is one invoiced cart row with its price snapshot.
type CartLine struct {
	SKU       string        `json:"sku"`
	Name      string        `json:"name"`
	UnitPrice pricing.Money `json:"unitPrice"`
	Qty       int           `json:"quantity"`
}

// POSDetails carries the cart contents and totals of a POS invoice.
type POSDetails struct {
	Items    []CartLine    `json:"items"`
	Subtotal pricing.Money `json:"subtotal"`
	Discount pricing.Money `json:"discountAmount"`
	Tax      pricing.Money `json:"taxAmount"`
}

// ServiceDetails carries the frozen service form and its quote breakdown.
type ServiceDetails struct {
	Form      pricing.ServiceForm     `json:"form"`
	Breakdown []pricing.BreakdownLine `json:"breakdown"`
}

// PrintDetails carries the print specification, its cost split, and the
// payment-gateway label the order was settled through.
type PrintDetails struct {
	Spec           pricing.PrintSpec   `json:"spec"`
	Totals         pricing.PrintTotals `json:"totals"`
	PaymentGateway string              `json:"paymentGateway,omitempty"`
}

// Invoice is immutable once finalized: monetary fields are frozen and only
// ClosureID may later be attached, exactly once.
type Invoice struct {
	ID           string        `json:"id"`
	Kind         Kind          `json:"type"`
	Date         time.Time     `json:"date"`
	CustomerName string        `json:"customerName"`
	OperatorID   string        `json:"operatorId"`
	OperatorName string        `json:"operatorName"`
	Total        pricing.Money `json:"total"`
	Finalized    bool          `json:"isFinalized"`
	ClosureID    string        `json:"closureId,omitempty"`

	POS     *POSDetails     `json:"pos,omitempty"`
	Service *ServiceDetails `json:"service,omitempty"`
	Print   *PrintDetails   `json:"print,omitempty"`
}

// NewPOS freezes a cart totals computation into a draft POS invoice. The cart
// must not be empty.
func NewPOS(now time.Time, op common.Operator, customer string, items []CartLine, totals pricing.Summary) (Invoice, error) {
	if len(items) == 0 {
		return Invoice{}, ErrInvalidInvoiceState
	}
	frozen := make([]CartLine, len(items))
	copy(frozen, items)
	return Invoice{
		ID:           fmt.Sprintf("INV-%s", uuid.NewString()),
		Kind:         KindPOS,
		Date:         now,
		CustomerName: customerOrWalkIn(customer),
		OperatorID:   op.ID,
		OperatorName: op.Name,
		Total:        totals.Total,
		POS: &POSDetails{
			Items:    frozen,
			Subtotal: totals.Subtotal,
			Discount: totals.Discount,
			Tax:      totals.Tax,
		},
	}, nil
}

// NewService freezes a service quote into a draft service-center invoice. The
// quote total must be positive.
func NewService(now time.Time, op common.Operator, form pricing.ServiceForm, totals pricing.ServiceTotals) (Invoice, error) {
	if totals.Total <= 0 {
		return Invoice{}, ErrInvalidInvoiceState
	}
	breakdown := make([]pricing.BreakdownLine, len(totals.Breakdown))
	copy(breakdown, totals.Breakdown)
	customer := form.CustomerName
	return Invoice{
		ID:           fmt.Sprintf("INV-SC-%s", uuid.NewString()),
		Kind:         KindService,
		Date:         now,
		CustomerName: customerOrWalkIn(customer),
		OperatorID:   op.ID,
		OperatorName: op.Name,
		Total:        totals.Total,
		Service: &ServiceDetails{
			Form:      form,
			Breakdown: breakdown,
		},
	}, nil
}

// NewPrint freezes a print quote into a draft print-order invoice. Print
// invoices settle independently and never enter the sale ledger.
func NewPrint(now time.Time, op common.Operator, customer string, spec pricing.PrintSpec, totals pricing.PrintTotals, gateway string) (Invoice, error) {
	if totals.Total <= 0 {
		return Invoice{}, ErrInvalidInvoiceState
	}
	return Invoice{
		ID:           fmt.Sprintf("PO-%s", uuid.NewString()),
		Kind:         KindPrint,
		Date:         now,
		CustomerName: customerOrWalkIn(customer),
		OperatorID:   op.ID,
		OperatorName: op.Name,
		Total:        totals.Total,
		Print: &PrintDetails{
			Spec:           spec,
			Totals:         totals,
			PaymentGateway: gateway,
		},
	}, nil
}

// AsFinalized returns a copy with the finalized flag set. Finalization is
// one-way; a draft is simply discarded on cancel.
func (inv Invoice) AsFinalized() Invoice {
	inv.Finalized = true
	return inv
}

// WithClosure returns a copy linked to the closure. The link may be set only
// once.
func (inv Invoice) WithClosure(closureID string) (Invoice, error) {
	if inv.ClosureID != "" {
		return inv, ErrAlreadyClosed
	}
	inv.ClosureID = closureID
	return inv, nil
}

func customerOrWalkIn(name string) string {
	if name == "" {
		return "Walk-in Customer"
	}
	return name
}
