package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/events"
)

// Entry is one recorded console action.
type Entry struct {
	ID           string    `json:"id"`
	At           time.Time `json:"timestamp"`
	Action       string    `json:"action"`
	Details      string    `json:"details"`
	OperatorID   string    `json:"operatorId"`
	OperatorName string    `json:"operatorName"`
}

// Log is the append-only activity log. Writes only append; the
// reverse-chronological view is derived at read time.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLog returns an empty activity log.
func NewLog() *Log {
	return &Log{}
}

// Record appends one entry.
func (l *Log) Record(at time.Time, op common.Operator, action, details string) Entry {
	entry := Entry{
		ID:           uuid.NewString(),
		At:           at,
		Action:       action,
		Details:      details,
		OperatorID:   op.ID,
		OperatorName: op.Name,
	}
	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
	return entry
}

// Entries returns the log newest-first.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Notifier records emitted domain events into the activity log.
type Notifier struct {
	Log *Log
}

// Notify implements events.Notifier.
func (n Notifier) Notify(_ context.Context, event events.Event) error {
	if n.Log == nil {
		return nil
	}
	n.Log.Record(event.OccurredAt, event.Operator, actionForTopic(event.Topic), event.Detail)
	return nil
}

func actionForTopic(topic string) string {
	switch topic {
	case events.TopicSaleFinalized:
		return "POS_SALE_COMPLETED"
	case events.TopicRefundRecorded:
		return "POS_REFUND_RECORDED"
	case events.TopicClosureCreated:
		return "POS_DAY_CLOSE"
	case events.TopicClosureReceived:
		return "FINANCE_CLOSURE_RECEIVE"
	case events.TopicPrintOrderCreated:
		return "PRINT_ORDER_CREATE"
	case events.TopicPrintOrderUpdated:
		return "PRINT_ORDER_STATUS_UPDATE"
	case events.TopicExpenseRecorded:
		return "FINANCE_EXPENSE_RECORD"
	default:
		return topic
	}
}
