// Package storetest holds behavioural tests shared by every storage.Store
// implementation.
package storetest

import (
	"context"
	"errors"
	"math"
	"testing"

	"expenses/internal/core"
	"expenses/internal/storage"
)

// Run exercises the Store contract against stores built by newStore. Each
// subtest gets a fresh, empty store.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()

	t.Run("create then list round trips", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		in := core.Expense{Date: "2024-05-01", Category: "Food", Description: "Groceries at market", Amount: 42.75}

		id, err := s.Create(ctx, in)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		id2, err := s.Create(ctx, in)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if id == id2 {
			t.Fatalf("expected unique ids, got %d twice", id)
		}

		list, err := s.ListOrdered(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 2 {
			t.Fatalf("expected 2 records, got %d", len(list))
		}
		in.ID = id
		if list[0] != in {
			t.Fatalf("unexpected record: got %+v want %+v", list[0], in)
		}
	})

	t.Run("list orders dates lexically descending", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		for _, d := range []string{"2024-01-01", "2024-03-01", "2024-02-01", "9/1/2024", "10/1/2024"} {
			mustCreate(t, s, core.Expense{Date: d, Category: "c", Description: "d", Amount: 1})
		}

		list, err := s.ListOrdered(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		want := []string{"9/1/2024", "2024-03-01", "2024-02-01", "2024-01-01", "10/1/2024"}
		for i, w := range want {
			if list[i].Date != w {
				t.Fatalf("position %d: got %q want %q (all: %v)", i, list[i].Date, w, dates(list))
			}
		}
	})

	t.Run("equal dates keep insertion order", func(t *testing.T) {
		s := newStore(t)
		first := mustCreate(t, s, core.Expense{Date: "2024-01-01", Description: "first"})
		second := mustCreate(t, s, core.Expense{Date: "2024-01-01", Description: "second"})

		list, err := s.ListOrdered(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if list[0].ID != first || list[1].ID != second {
			t.Fatalf("unexpected order: %+v", list)
		}
	})

	t.Run("get returns the record or ErrNotFound", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		id := mustCreate(t, s, core.Expense{Date: "2024-01-01", Category: "Travel", Description: "Bus", Amount: 2.5})

		got, err := s.Get(ctx, id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != id || got.Category != "Travel" || got.Amount != 2.5 {
			t.Fatalf("unexpected record: %+v", got)
		}

		if _, err := s.Get(ctx, id+100); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update replaces every field and is idempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		id := mustCreate(t, s, core.Expense{Date: "2024-01-01", Category: "Food", Description: "Lunch", Amount: 10})
		other := mustCreate(t, s, core.Expense{Date: "2024-01-02", Category: "Misc", Description: "Pen", Amount: 1})

		upd := core.Expense{ID: id, Date: "2024-02-02", Category: "Travel", Description: "Taxi", Amount: 99.99}
		for i := 0; i < 2; i++ {
			if err := s.Update(ctx, upd); err != nil {
				t.Fatalf("update %d: %v", i, err)
			}
			got, err := s.Get(ctx, id)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if got != upd {
				t.Fatalf("after update %d: got %+v want %+v", i, got, upd)
			}
		}

		untouched, err := s.Get(ctx, other)
		if err != nil {
			t.Fatalf("get other: %v", err)
		}
		if untouched.Description != "Pen" {
			t.Fatalf("update leaked into another record: %+v", untouched)
		}
	})

	t.Run("update of missing id is a silent no-op", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		mustCreate(t, s, core.Expense{Date: "2024-01-01", Amount: 1})

		if err := s.Update(ctx, core.Expense{ID: 4242, Date: "x"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if n := mustCount(t, s); n != 1 {
			t.Fatalf("expected 1 record, got %d", n)
		}
	})

	t.Run("delete removes exactly one", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		a := mustCreate(t, s, core.Expense{Date: "2024-01-01", Amount: 1})
		mustCreate(t, s, core.Expense{Date: "2024-01-02", Amount: 2})

		if err := s.Delete(ctx, a); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if n := mustCount(t, s); n != 1 {
			t.Fatalf("expected 1 record after delete, got %d", n)
		}
		if err := s.Delete(ctx, a); err != nil {
			t.Fatalf("second delete: %v", err)
		}
		if n := mustCount(t, s); n != 1 {
			t.Fatalf("deleting a missing id changed the count to %d", n)
		}
		if _, err := s.Get(ctx, a); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected deleted record to be gone, got %v", err)
		}
	})

	t.Run("largest finite amount round trips", func(t *testing.T) {
		s := newStore(t)
		id := mustCreate(t, s, core.Expense{Date: "2024-01-01", Category: "Big", Amount: math.MaxFloat64})

		got, err := s.Get(context.Background(), id)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Amount != math.MaxFloat64 {
			t.Fatalf("expected %v, got %v", math.MaxFloat64, got.Amount)
		}
	})

	t.Run("summary groups by exact category", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		empty, err := s.SummaryByCategory(ctx)
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		if len(empty) != 0 {
			t.Fatalf("expected empty summary, got %v", empty)
		}

		mustCreate(t, s, core.Expense{Date: "1", Category: "Food", Amount: 10})
		mustCreate(t, s, core.Expense{Date: "2", Category: "Travel", Amount: 20})
		mustCreate(t, s, core.Expense{Date: "3", Category: "Food", Amount: 5})
		mustCreate(t, s, core.Expense{Date: "4", Category: "food", Amount: 1})

		got, err := s.SummaryByCategory(ctx)
		if err != nil {
			t.Fatalf("summary: %v", err)
		}
		want := []core.CategoryTotal{
			{Category: "Food", Total: 15},
			{Category: "Travel", Total: 20},
			{Category: "food", Total: 1},
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d categories, got %v", len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("category %d: got %+v want %+v", i, got[i], want[i])
			}
		}
	})
}

func mustCreate(t *testing.T, s storage.Store, e core.Expense) int64 {
	t.Helper()
	id, err := s.Create(context.Background(), e)
	if err != nil {
		t.Fatalf("create %+v: %v", e, err)
	}
	return id
}

func mustCount(t *testing.T, s storage.Store) int {
	t.Helper()
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func dates(list []core.Expense) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Date
	}
	return out
}
