package domain

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// StockKeeper is the custody capability a cart needs from the stock ledger.
type StockKeeper interface {
	// Reserve takes amount units out of stock. It never partially reserves.
	Reserve(ctx context.Context, id ProductID, amount int) error
	// Restock returns or adds amount units, creating the entry when absent.
	Restock(ctx context.Context, id ProductID, amount int) error
}

// StockLevel is one row of the ledger.
type StockLevel struct {
	ProductID ProductID
	Quantity  int
}

// Store is the authoritative in-memory stock ledger. Each product's quantity
// is its own critical section, so reservations on different products never
// contend and check-then-decrement on one product is atomic.
type Store struct {
	mu      sync.RWMutex
	entries map[ProductID]*stockEntry
}

type stockEntry struct {
	mu       sync.Mutex
	quantity int
}

var _ StockKeeper = (*Store)(nil)

func NewStore() *Store {
	return &Store{entries: map[ProductID]*stockEntry{}}
}

func (s *Store) Reserve(_ context.Context, id ProductID, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: reserve %d of %s", ErrInvalidQuantity, amount, id)
	}
	entry := s.entry(id)
	if entry == nil {
		return fmt.Errorf("%w: %s is not stocked", ErrNotFound, id)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if amount > entry.quantity {
		return fmt.Errorf("%w: requested %d of %s, %d available", ErrInsufficientStock, amount, id, entry.quantity)
	}
	entry.quantity -= amount
	return nil
}

func (s *Store) Restock(_ context.Context, id ProductID, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: restock %d of %s", ErrInvalidQuantity, amount, id)
	}
	entry := s.entry(id)
	if entry == nil {
		s.mu.Lock()
		entry = s.entries[id]
		if entry == nil {
			s.entries[id] = &stockEntry{quantity: amount}
			s.mu.Unlock()
			return nil
		}
		s.mu.Unlock()
	}
	entry.mu.Lock()
	entry.quantity += amount
	entry.mu.Unlock()
	return nil
}

// Quantity reports the units on hand for a stocked product.
func (s *Store) Quantity(_ context.Context, id ProductID) (int, error) {
	entry := s.entry(id)
	if entry == nil {
		return 0, fmt.Errorf("%w: %s is not stocked", ErrNotFound, id)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.quantity, nil
}

// Levels returns a snapshot of every stocked product ordered by id.
func (s *Store) Levels(_ context.Context) ([]StockLevel, error) {
	s.mu.RLock()
	levels := make([]StockLevel, 0, len(s.entries))
	for id, entry := range s.entries {
		entry.mu.Lock()
		levels = append(levels, StockLevel{ProductID: id, Quantity: entry.quantity})
		entry.mu.Unlock()
	}
	s.mu.RUnlock()
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ProductID.String() < levels[j].ProductID.String()
	})
	return levels, nil
}

func (s *Store) entry(id ProductID) *stockEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[id]
}
