package obs

import (
	"context"

	"github.com/superiorbooks/backend-pos/internal/events"
)

// MetricsNotifier bumps domain counters from emitted events. It is a no-op
// until MustRegisterDomainMetrics has run.
type MetricsNotifier struct{}

// Notify implements events.Notifier.
func (MetricsNotifier) Notify(_ context.Context, event events.Event) error {
	switch event.Topic {
	case events.TopicSaleFinalized:
		if SalesFinalizedTotal != nil {
			SalesFinalizedTotal.WithLabelValues(event.Kind).Inc()
		}
	case events.TopicRefundRecorded:
		if RefundsRecordedTotal != nil {
			RefundsRecordedTotal.WithLabelValues(event.Kind).Inc()
		}
	case events.TopicClosureCreated:
		if ClosuresTotal != nil {
			ClosuresTotal.WithLabelValues("created").Inc()
		}
	case events.TopicClosureReceived:
		if ClosuresTotal != nil {
			ClosuresTotal.WithLabelValues("received").Inc()
		}
	case events.TopicPrintOrderCreated, events.TopicPrintOrderUpdated:
		if PrintOrdersTotal != nil {
			PrintOrdersTotal.WithLabelValues(event.Kind).Inc()
		}
	}
	return nil
}
