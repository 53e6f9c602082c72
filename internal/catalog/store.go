package catalog

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// ErrNotFound indicates the requested item is not in the catalog.
var ErrNotFound = errors.New("catalog: item not found")

// ErrDuplicateSKU indicates an item with the same stock-keeping code exists.
var ErrDuplicateSKU = errors.New("catalog: duplicate sku")

// ErrInsufficientStock indicates a requested quantity exceeds available stock.
var ErrInsufficientStock = errors.New("catalog: insufficient stock")

// Item is one sellable catalog entry. Stock is never negative.
type Item struct {
	SKU   string        `json:"sku"`
	Name  string        `json:"name"`
	Price pricing.Money `json:"unitPrice"`
	Stock int           `json:"stock"`
}

// StockDecrement is one line of a finalization stock movement.
type StockDecrement struct {
	SKU string
	Qty int
}

// Store is the in-memory inventory. A mutex guards it so the store stays
// correct if the single-writer execution model is ever relaxed.
type Store struct {
	mu    sync.RWMutex
	items map[string]Item
}

// NewStore returns an empty inventory store.
func NewStore() *Store {
	return &Store{items: map[string]Item{}}
}

// NewSeededStore returns an inventory pre-loaded with demo stock.
func NewSeededStore() *Store {
	s := NewStore()
	for _, it := range []Item{
		{SKU: "978-0199535569", Name: "Pride and Prejudice", Price: 95_000, Stock: 12},
		{SKU: "978-0547928227", Name: "The Hobbit", Price: 145_000, Stock: 8},
		{SKU: "STN-NB-A5", Name: "A5 Notebook", Price: 25_000, Stock: 40},
		{SKU: "STN-PEN-BL", Name: "Ballpoint Pen (Blue)", Price: 3_500, Stock: 200},
		{SKU: "STN-MARKER", Name: "Whiteboard Marker", Price: 12_000, Stock: 35},
	} {
		s.items[it.SKU] = it
	}
	return s
}

// List returns all items ordered by SKU.
func (s *Store) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// Get returns the item with the given SKU.
func (s *Store) Get(sku string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[sku]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

// Create adds a new item, rejecting duplicate SKUs and negative fields.
func (s *Store) Create(item Item) error {
	if item.SKU == "" || item.Price < 0 || item.Stock < 0 {
		return fmt.Errorf("catalog: invalid item %q", item.SKU)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.SKU]; ok {
		return ErrDuplicateSKU
	}
	s.items[item.SKU] = item
	return nil
}

// Update replaces an existing item's name, price, and stock.
func (s *Store) Update(item Item) error {
	if item.Price < 0 || item.Stock < 0 {
		return fmt.Errorf("catalog: invalid item %q", item.SKU)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.SKU]; !ok {
		return ErrNotFound
	}
	s.items[item.SKU] = item
	return nil
}

// Restock increases an item's stock by the provided quantity.
func (s *Store) Restock(sku string, qty int) (Item, error) {
	if qty <= 0 {
		return Item{}, fmt.Errorf("catalog: restock quantity must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[sku]
	if !ok {
		return Item{}, ErrNotFound
	}
	it.Stock += qty
	s.items[sku] = it
	return it, nil
}

// DecrementStock applies a finalization stock movement. All lines are
// validated before any write so a failure leaves stock untouched.
func (s *Store) DecrementStock(lines []StockDecrement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, line := range lines {
		it, ok := s.items[line.SKU]
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, line.SKU)
		}
		if line.Qty <= 0 {
			return fmt.Errorf("catalog: invalid quantity %d for %s", line.Qty, line.SKU)
		}
		if it.Stock < line.Qty {
			return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, line.SKU, it.Stock, line.Qty)
		}
	}
	for _, line := range lines {
		it := s.items[line.SKU]
		it.Stock -= line.Qty
		s.items[line.SKU] = it
	}
	return nil
}
