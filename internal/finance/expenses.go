package finance

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// ErrExpenseNotFound indicates the referenced expense does not exist.
var ErrExpenseNotFound = errors.New("finance: expense not found")

// Expense is one recorded operating cost. Date is the day the cost belongs
// to, which is what summaries attribute it by.
type Expense struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Category     string        `json:"category"`
	Description  string        `json:"description"`
	Amount       pricing.Money `json:"amount"`
	OperatorID   string        `json:"operatorId"`
	OperatorName string        `json:"operatorName"`
}

// ExpenseStore keeps expenses in memory.
type ExpenseStore struct {
	mu       sync.RWMutex
	expenses map[string]Expense
	order    []string
}

// NewExpenseStore returns an empty expense store.
func NewExpenseStore() *ExpenseStore {
	return &ExpenseStore{expenses: make(map[string]Expense)}
}

// Add records an expense, assigning its id.
func (s *ExpenseStore) Add(e Expense) Expense {
	e.ID = uuid.NewString()
	s.mu.Lock()
	s.expenses[e.ID] = e
	s.order = append(s.order, e.ID)
	s.mu.Unlock()
	return e
}

// Update replaces an existing expense's mutable fields.
func (s *ExpenseStore) Update(id string, e Expense) (Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.expenses[id]
	if !ok {
		return Expense{}, ErrExpenseNotFound
	}
	cur.Date = e.Date
	cur.Category = e.Category
	cur.Description = e.Description
	cur.Amount = e.Amount
	s.expenses[id] = cur
	return cur, nil
}

// Delete removes an expense.
func (s *ExpenseStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return ErrExpenseNotFound
	}
	delete(s.expenses, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns expenses in insertion order.
func (s *ExpenseStore) List() []Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Expense, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.expenses[id])
	}
	return out
}
