package session

import (
	"errors"
	"testing"

	"expenses/internal/core"
)

func TestIndexResolve(t *testing.T) {
	var x Index

	// Empty index resolves nothing.
	for _, rank := range []int{0, 1, -1} {
		if _, err := x.Resolve(rank); !errors.Is(err, ErrNotFound) {
			t.Fatalf("empty index rank %d: expected ErrNotFound, got %v", rank, err)
		}
	}

	x.Rebuild([]core.Expense{{ID: 7}, {ID: 3}, {ID: 11}})
	if x.Len() != 3 {
		t.Fatalf("expected len 3, got %d", x.Len())
	}
	cases := []struct {
		rank int
		id   int64
		ok   bool
	}{
		{0, 7, true},
		{1, 3, true},
		{2, 11, true},
		{3, 0, false},
		{-1, 0, false},
		{100, 0, false},
	}
	for _, tc := range cases {
		id, err := x.Resolve(tc.rank)
		if tc.ok {
			if err != nil || id != tc.id {
				t.Fatalf("rank %d: expected %d, got %d (err=%v)", tc.rank, tc.id, id, err)
			}
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("rank %d: expected ErrNotFound, got %v", tc.rank, err)
		}
	}
}

func TestIndexRebuildReplaces(t *testing.T) {
	var x Index
	x.Rebuild([]core.Expense{{ID: 1}, {ID: 2}, {ID: 3}})
	x.Rebuild([]core.Expense{{ID: 9}})

	if id, err := x.Resolve(0); err != nil || id != 9 {
		t.Fatalf("expected rank 0 -> 9, got %d (err=%v)", id, err)
	}
	if _, err := x.Resolve(1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("rank from previous build must not resolve, got %v", err)
	}
}

func TestIndexRebuildCopies(t *testing.T) {
	var x Index
	records := []core.Expense{{ID: 1}}
	x.Rebuild(records)
	records[0].ID = 42

	if id, _ := x.Resolve(0); id != 1 {
		t.Fatalf("index should not alias the caller's slice, got %d", id)
	}
}

func TestSessionInvalidate(t *testing.T) {
	s := New()
	s.Rebuild([]core.Expense{{ID: 5}})
	s.Invalidate()
	if _, err := s.Resolve(0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected stale resolve to fail, got %v", err)
	}
}

func TestSessionEdit(t *testing.T) {
	s := New()
	if _, ok := s.EditingID(); ok {
		t.Fatal("new session should not be editing")
	}

	s.BeginEdit(12)
	if id, ok := s.EditingID(); !ok || id != 12 {
		t.Fatalf("expected editing 12, got %d %v", id, ok)
	}

	s.Rebuild([]core.Expense{{ID: 12}})
	s.Reset()
	if _, ok := s.EditingID(); ok {
		t.Fatal("reset should end the edit")
	}
	if s.Len() != 0 {
		t.Fatal("reset should clear the index")
	}
}
