package printdesk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/pricing"
	"github.com/superiorbooks/backend-pos/internal/settings"
)

func newPrintService(at time.Time) *Service {
	return &Service{
		Orders:   NewStore(),
		Settings: settings.NewStore(),
		Now:      func() time.Time { return at },
	}
}

func spiralSpec() pricing.PrintSpec {
	return pricing.PrintSpec{
		Pages:     20,
		Copies:    2,
		ColorMode: pricing.ColorModeBW,
		PaperType: "glossy",
		Binding:   "spiral",
	}
}

func TestQuoteUsesCurrentTariff(t *testing.T) {
	svc := newPrintService(time.Now())

	totals := svc.Quote(spiralSpec())
	require.Equal(t, pricing.Money(40_000), totals.PrintCost)
	require.Equal(t, pricing.Money(20_000), totals.PaperSurcharge)
	require.Equal(t, pricing.Money(100_000), totals.BindingCost)
	require.Equal(t, pricing.Money(160_000), totals.Total)
}

func TestCreateSettlesThroughEnabledGateway(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newPrintService(at)
	op := common.Operator{ID: "op-1", Name: "Ayesha"}

	order, err := svc.Create(context.Background(), op, "Hamza", spiralSpec(), "jazzcash", "pick up tomorrow")
	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)
	require.Equal(t, pricing.Money(160_000), order.Invoice.Total)
	require.True(t, order.Invoice.Finalized)
	require.Equal(t, "jazzcash", order.Invoice.Print.PaymentGateway)
}

func TestCreateRejectsDisabledGateway(t *testing.T) {
	svc := newPrintService(time.Now())
	_, err := svc.Create(context.Background(), common.Operator{ID: "op-1"}, "", spiralSpec(), "stripe", "")
	require.ErrorIs(t, err, ErrGatewayDisabled)
}

func TestWorkflowMovesForwardOnly(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newPrintService(at)
	op := common.Operator{ID: "op-1", Name: "Ayesha"}

	order, err := svc.Create(context.Background(), op, "", spiralSpec(), "jazzcash", "")
	require.NoError(t, err)

	// pending -> ready skips printing.
	_, err = svc.Transition(context.Background(), op, order.ID, StatusReady)
	require.ErrorIs(t, err, ErrInvalidTransition)

	for _, next := range []Status{StatusPrinting, StatusReady, StatusCompleted} {
		order, err = svc.Transition(context.Background(), op, order.ID, next)
		require.NoError(t, err)
		require.Equal(t, next, order.Status)
	}

	// Completed is terminal.
	_, err = svc.Transition(context.Background(), op, order.ID, StatusCancelled)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelFromAnyActiveState(t *testing.T) {
	svc := newPrintService(time.Now())
	op := common.Operator{ID: "op-1"}

	order, err := svc.Create(context.Background(), op, "", spiralSpec(), "bank_transfer", "")
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), op, order.ID, StatusPrinting)
	require.NoError(t, err)

	cancelled, err := svc.Transition(context.Background(), op, order.ID, StatusCancelled)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, cancelled.Status)
}
