// Package session holds the transient state behind the expense list: which
// record sits at each rendered position, and which record is being edited.
package session

import (
	"errors"
	"fmt"

	"expenses/internal/core"
)

var ErrNotFound = errors.New("no expense at that position")

// Index maps a rank in the last rendered list to a record id. It is rebuilt
// from scratch on every list and never patched.
type Index struct {
	ids []int64
}

// Rebuild replaces the mapping with records in the order given.
func (x *Index) Rebuild(records []core.Expense) {
	ids := make([]int64, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	x.ids = ids
}

// Resolve returns the id at rank, or ErrNotFound when rank is outside the
// last rebuilt list.
func (x *Index) Resolve(rank int) (int64, error) {
	if rank < 0 || rank >= len(x.ids) {
		return 0, fmt.Errorf("resolve rank %d of %d: %w", rank, len(x.ids), ErrNotFound)
	}
	return x.ids[rank], nil
}

// Clear empties the index so every Resolve fails until the next Rebuild.
func (x *Index) Clear() {
	x.ids = nil
}

func (x *Index) Len() int {
	return len(x.ids)
}
