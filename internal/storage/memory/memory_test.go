package memory

import (
	"context"
	"testing"

	"expenses/internal/core"
	"expenses/internal/storage"
	"expenses/internal/storage/storetest"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return New()
	})
}

func TestNewSeedsAndReassignsIDs(t *testing.T) {
	s := New(
		core.Expense{ID: 99, Date: "2024-01-01", Category: "A", Amount: 1},
		core.Expense{ID: 99, Date: "2024-01-02", Category: "B", Amount: 2},
	)
	list, err := s.ListOrdered(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 seeded records, got %d", len(list))
	}
	if list[0].ID != 2 || list[1].ID != 1 {
		t.Fatalf("expected ids reassigned in seed order, got %+v", list)
	}

	id, _ := s.Create(context.Background(), core.Expense{Date: "x"})
	if id != 3 {
		t.Fatalf("expected next id 3, got %d", id)
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := New(core.Expense{Date: "2024-01-01", Category: "A"})
	list, _ := s.ListOrdered(context.Background())
	list[0].Category = "mutated"

	got, err := s.Get(context.Background(), list[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Category != "A" {
		t.Fatalf("store state leaked through ListOrdered: %+v", got)
	}
}
