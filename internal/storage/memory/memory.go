package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"expenses/internal/core"
	"expenses/internal/storage"
)

// Store keeps expenses in process memory. It mirrors the SQLite repository's
// ordering and no-op semantics.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Expense
}

var _ storage.Store = (*Store)(nil)

// New returns a store seeded with the given expenses. Seed ids are ignored
// and reassigned in order.
func New(seed ...core.Expense) *Store {
	s := &Store{nextID: 1}
	for _, e := range seed {
		s.insert(e)
	}
	return s
}

func (s *Store) insert(e core.Expense) int64 {
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e.ID
}

// Create stores the expense and returns its id.
func (s *Store) Create(_ context.Context, e core.Expense) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(e), nil
}

// ListOrdered returns a copy of all expenses, date descending.
func (s *Store) ListOrdered(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]core.Expense(nil), s.items...)
	// items are kept in id order, so a stable sort preserves it for ties
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out, nil
}

func (s *Store) Get(_ context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], nil
	}
	return core.Expense{}, fmt.Errorf("get expense %d: %w", id, storage.ErrNotFound)
}

func (s *Store) Update(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(e.ID); i >= 0 {
		s.items[i] = e
	}
	return nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	return nil
}

// SummaryByCategory totals amounts per category, sorted by category.
func (s *Store) SummaryByCategory(_ context.Context) ([]core.CategoryTotal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sums := map[string]float64{}
	for _, e := range s.items {
		sums[e.Category] += e.Amount
	}
	out := make([]core.CategoryTotal, 0, len(sums))
	for cat, total := range sums {
		out = append(out, core.CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}

func (s *Store) Close() error { return nil }

func (s *Store) indexOf(id int64) int {
	for i, e := range s.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}
