package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/superiorbooks/backend-pos/internal/common"
)

// Topic constants for domain events emitted by the console core.
const (
	TopicSaleFinalized     = "sale.finalized"
	TopicRefundRecorded    = "refund.recorded"
	TopicClosureCreated    = "closure.created"
	TopicClosureReceived   = "closure.received"
	TopicPrintOrderCreated = "print_order.created"
	TopicPrintOrderUpdated = "print_order.updated"
	TopicExpenseRecorded   = "expense.recorded"
)

// Event is one domain occurrence fanned out to notifiers.
type Event struct {
	Topic      string
	OccurredAt time.Time
	Operator   common.Operator
	// ResourceID references the invoice, closure, order, or expense involved.
	ResourceID string
	// Kind further classifies the event inside its topic, such as the
	// invoice kind of a finalized sale or the refund kind.
	Kind string
	// Detail is a human-readable description suitable for the activity log.
	Detail string
}

// Notifier reacts to emitted events (activity log, metrics, etc.).
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Bus dispatches domain events synchronously to all configured handlers.
type Bus struct {
	Notifiers []Notifier
	Now       func() time.Time
}

// Emit stamps the event and delivers it to every notifier, joining failures.
func (b *Bus) Emit(ctx context.Context, event Event) error {
	if b == nil {
		return nil
	}
	if strings.TrimSpace(event.Topic) == "" {
		return errors.New("events: topic is required")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = b.now()
	}
	var joined error
	for _, notifier := range b.Notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, event); err != nil {
			joined = errors.Join(joined, fmt.Errorf("events: notifier: %w", err))
		}
	}
	return joined
}

func (b *Bus) now() time.Time {
	if b != nil && b.Now != nil {
		return b.Now()
	}
	return time.Now()
}
