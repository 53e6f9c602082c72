package printdesk

import (
	"errors"
	"sync"
	"time"

	"github.com/superiorbooks/backend-pos/internal/invoice"
)

var (
	// ErrNotFound indicates the referenced order does not exist.
	ErrNotFound = errors.New("printdesk: order not found")
	// ErrInvalidTransition rejects moving an order backwards or out of a
	// terminal state.
	ErrInvalidTransition = errors.New("printdesk: invalid status transition")
	// ErrGatewayDisabled rejects orders settled through a payment channel
	// that is not enabled.
	ErrGatewayDisabled = errors.New("printdesk: payment gateway disabled")
)

// Status is the print order workflow state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPrinting  Status = "printing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// rank orders the forward path. Terminal states have no successors.
var rank = map[Status]int{
	StatusPending:  0,
	StatusPrinting: 1,
	StatusReady:    2,
}

// CanTransition reports whether an order may move from one status to another.
// The workflow only moves forward; completed and cancelled are terminal, and
// cancellation is allowed from any active state.
func CanTransition(from, to Status) bool {
	if from == StatusCompleted || from == StatusCancelled {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	if to == StatusCompleted {
		return from == StatusReady
	}
	fromRank, ok := rank[from]
	if !ok {
		return false
	}
	toRank, ok := rank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}

// Order is one print job and its settled invoice.
type Order struct {
	ID        string          `json:"id"`
	Invoice   invoice.Invoice `json:"invoice"`
	Status    Status          `json:"status"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store keeps print orders in memory.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*Order
	order  []string
}

// NewStore returns an empty order store.
func NewStore() *Store {
	return &Store{orders: make(map[string]*Order)}
}

// Add records a new order.
func (s *Store) Add(o Order) {
	s.mu.Lock()
	stored := o
	s.orders[o.ID] = &stored
	s.order = append(s.order, o.ID)
	s.mu.Unlock()
}

// Get returns an order by id.
func (s *Store) Get(id string) (Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return *o, nil
}

// SetStatus applies a workflow transition under the store lock.
func (s *Store) SetStatus(id string, to Status, at time.Time) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if !CanTransition(o.Status, to) {
		return *o, ErrInvalidTransition
	}
	o.Status = to
	o.UpdatedAt = at
	return *o, nil
}

// List returns orders in insertion order, optionally filtered by status.
func (s *Store) List(status Status) []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, len(s.order))
	for _, id := range s.order {
		o := s.orders[id]
		if status != "" && o.Status != status {
			continue
		}
		out = append(out, *o)
	}
	return out
}
