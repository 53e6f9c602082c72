package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/events"
	"github.com/superiorbooks/backend-pos/internal/invoice"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// ErrInvalidRefund rejects malformed refund requests, such as returned lines
// that do not match the invoiced cart.
var ErrInvalidRefund = errors.New("ledger: invalid refund request")

// ReturnLine names one cart line being returned.
type ReturnLine struct {
	SKU string `json:"sku" validate:"required"`
	Qty int    `json:"quantity" validate:"gt=0"`
}

// RefundRequest describes a requested adjustment against a sale.
type RefundRequest struct {
	Kind   RefundKind `json:"kind" validate:"required,oneof=cancel return discount_adjustment"`
	Reason string     `json:"reason"`
	// Lines is required for return refunds.
	Lines []ReturnLine `json:"lines,omitempty" validate:"dive"`
	// NewDiscount is the requested total discount for discount adjustments.
	NewDiscount pricing.Money `json:"newDiscount,omitempty"`
}

// Service records refunds against ledger sales, deriving the refundable
// amount from the sale's frozen totals.
type Service struct {
	Ledger *Store
	Events *events.Bus
	Now    func() time.Time
}

// Refund computes, validates, and records the adjustment. Cancel refunds the
// full remaining value. Return refunds the returned lines' share of the sale
// total. Discount adjustments refund the discount increase.
func (s *Service) Refund(ctx context.Context, op common.Operator, saleID string, req RefundRequest) (Refund, error) {
	sale, err := s.Ledger.GetSale(saleID)
	if err != nil {
		return Refund{}, err
	}
	if sale.ClosureID != "" {
		return Refund{}, ErrSaleAlreadyClosed
	}
	remaining := sale.Total - s.Ledger.RefundedTotal(saleID)

	var amount pricing.Money
	switch req.Kind {
	case RefundCancel:
		amount = remaining
	case RefundReturn:
		amount, err = returnAmount(sale, req.Lines)
		if err != nil {
			return Refund{}, err
		}
		if amount > remaining {
			amount = remaining
		}
	case RefundDiscountAdjustment:
		amount, err = discountAdjustmentAmount(sale, req.NewDiscount)
		if err != nil {
			return Refund{}, err
		}
		if amount > remaining {
			return Refund{}, ErrRefundExceedsRemaining
		}
	default:
		return Refund{}, ErrInvalidRefund
	}

	ref := Refund{
		ID:             fmt.Sprintf("RF-%s", uuid.NewString()),
		OriginalSaleID: saleID,
		Kind:           req.Kind,
		Amount:         amount,
		Date:           s.now(),
		OperatorID:     op.ID,
		OperatorName:   op.Name,
		Reason:         req.Reason,
	}
	if err := s.Ledger.RecordRefund(ref); err != nil {
		return Refund{}, err
	}
	if err := s.Events.Emit(ctx, events.Event{
		Topic:      events.TopicRefundRecorded,
		Operator:   op,
		ResourceID: ref.ID,
		Kind:       string(req.Kind),
		Detail:     fmt.Sprintf("Recorded %s refund of Rs %s against %s", req.Kind, pricing.FormatMoney(amount), saleID),
	}); err != nil {
		return Refund{}, err
	}
	return ref, nil
}

// returnAmount prices the returned lines at their pro-rata share of the sale
// total, so cart-level discount and tax scale down with the return.
func returnAmount(sale invoice.Invoice, lines []ReturnLine) (pricing.Money, error) {
	if sale.POS == nil || len(lines) == 0 {
		return 0, ErrInvalidRefund
	}
	if sale.POS.Subtotal <= 0 {
		return 0, ErrInvalidRefund
	}
	bySKU := make(map[string]*invoice.CartLine, len(sale.POS.Items))
	for i := range sale.POS.Items {
		bySKU[sale.POS.Items[i].SKU] = &sale.POS.Items[i]
	}
	var linesSubtotal pricing.Money
	for _, line := range lines {
		sold, ok := bySKU[line.SKU]
		if !ok || line.Qty <= 0 || line.Qty > sold.Qty {
			return 0, ErrInvalidRefund
		}
		linesSubtotal += pricing.Money(line.Qty) * sold.UnitPrice
	}
	return (linesSubtotal * sale.Total) / sale.POS.Subtotal, nil
}

// discountAdjustmentAmount refunds the increase from the invoiced discount to
// the requested one. The new discount must strictly exceed the original and
// stay within the subtotal.
func discountAdjustmentAmount(sale invoice.Invoice, newDiscount pricing.Money) (pricing.Money, error) {
	if sale.POS == nil {
		return 0, ErrInvalidRefund
	}
	if newDiscount <= sale.POS.Discount || newDiscount > sale.POS.Subtotal {
		return 0, ErrInvalidRefund
	}
	return newDiscount - sale.POS.Discount, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
