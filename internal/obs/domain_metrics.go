package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// SalesFinalizedTotal counts finalized sales by invoice kind.
	SalesFinalizedTotal *prometheus.CounterVec
	// RefundsRecordedTotal counts recorded refunds by adjustment kind.
	RefundsRecordedTotal *prometheus.CounterVec
	// ClosuresTotal counts closure lifecycle transitions.
	ClosuresTotal *prometheus.CounterVec
	// PrintOrdersTotal counts print-desk orders by status transition.
	PrintOrdersTotal *prometheus.CounterVec
	// SummariesComputedTotal counts financial summary computations.
	SummariesComputedTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers domain-specific
// Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		SalesFinalizedTotal = registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_finalized_total",
			Help:      "Count of finalized sale invoices by kind.",
		}, []string{"kind"}))
		RefundsRecordedTotal = registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunds_recorded_total",
			Help:      "Count of recorded refunds by adjustment kind.",
		}, []string{"kind"}))
		ClosuresTotal = registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "closures_total",
			Help:      "Count of daily closure transitions.",
		}, []string{"transition"}))
		PrintOrdersTotal = registerOrReuse(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "print_orders_total",
			Help:      "Count of print-desk order status transitions.",
		}, []string{"status"}))
		SummariesComputedTotal = registerOrReuse(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "financial_summaries_total",
			Help:      "Count of financial summary computations.",
		}))
	})
}
