package closure

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/superiorbooks/backend-pos/internal/pricing"
)

var (
	// ErrNothingToClose indicates the operator has no unclosed activity.
	ErrNothingToClose = errors.New("closure: nothing to close")
	// ErrAlreadyReceived rejects receiving a closure twice.
	ErrAlreadyReceived = errors.New("closure: already received")
	// ErrNotFound indicates the referenced closure does not exist.
	ErrNotFound = errors.New("closure: not found")
)

// Status is the closure handover state.
type Status string

const (
	// StatusPending means the drawer total awaits finance confirmation.
	StatusPending Status = "pending"
	// StatusReceived means finance confirmed the handover. Received is
	// terminal; only received closures feed financial summaries.
	StatusReceived Status = "received"
)

// DailyClosure is one operator's end-of-day handover record. Once created
// its monetary fields never change; only the status moves, pending to
// received, exactly once.
type DailyClosure struct {
	ID             string        `json:"id"`
	Date           string        `json:"date"`
	OperatorID     string        `json:"operatorId"`
	OperatorName   string        `json:"operatorName"`
	TotalSales     pricing.Money `json:"totalSales"`
	SalesCount     int           `json:"salesCount"`
	TotalRefunds   pricing.Money `json:"totalRefunds"`
	RefundsCount   int           `json:"refundsCount"`
	SalesInvoices  []string      `json:"salesInvoices"`
	RefundInvoices []string      `json:"refundInvoices"`
	Status         Status        `json:"status"`
	ReceivedBy     string        `json:"receivedBy,omitempty"`
}

// Store keeps closures in memory, keyed by id.
type Store struct {
	mu       sync.RWMutex
	closures map[string]*DailyClosure
	order    []string
}

// NewStore returns an empty closure store.
func NewStore() *Store {
	return &Store{closures: make(map[string]*DailyClosure)}
}

// Add records a new closure.
func (s *Store) Add(c DailyClosure) {
	s.mu.Lock()
	stored := c
	s.closures[c.ID] = &stored
	s.order = append(s.order, c.ID)
	s.mu.Unlock()
}

// Get returns a closure by id.
func (s *Store) Get(id string) (DailyClosure, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.closures[id]
	if !ok {
		return DailyClosure{}, ErrNotFound
	}
	return *c, nil
}

// MarkReceived transitions a pending closure to received. Every other field
// stays untouched.
func (s *Store) MarkReceived(id, receivedBy string) (DailyClosure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.closures[id]
	if !ok {
		return DailyClosure{}, ErrNotFound
	}
	if c.Status == StatusReceived {
		return *c, ErrAlreadyReceived
	}
	c.Status = StatusReceived
	c.ReceivedBy = receivedBy
	return *c, nil
}

// Filter narrows closure listings. Zero fields match everything.
type Filter struct {
	OperatorID string
	Status     Status
	From       string
	To         string
	// Search matches closure id or operator name, case-insensitively.
	Search string
}

func (f Filter) matches(c DailyClosure) bool {
	if f.OperatorID != "" && c.OperatorID != f.OperatorID {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.From != "" && c.Date < f.From {
		return false
	}
	if f.To != "" && c.Date > f.To {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.ID), needle) &&
			!strings.Contains(strings.ToLower(c.OperatorName), needle) {
			return false
		}
	}
	return true
}

// List returns matching closures newest-first.
func (s *Store) List(f Filter) []DailyClosure {
	s.mu.RLock()
	out := make([]DailyClosure, 0, len(s.order))
	for _, id := range s.order {
		c := s.closures[id]
		if f.matches(*c) {
			out = append(out, *c)
		}
	}
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// Received returns every received closure.
func (s *Store) Received() []DailyClosure {
	return s.List(Filter{Status: StatusReceived})
}
