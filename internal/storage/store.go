package storage

import (
	"context"
	"errors"

	"expenses/internal/core"
)

var ErrNotFound = errors.New("expense not found")

// Store is the persistent collection of expense records.
//
// ListOrdered returns records by date descending using byte-wise string
// comparison, ties in insertion order. Update and Delete succeed silently when
// the id does not exist; Get reports ErrNotFound.
type Store interface {
	Create(ctx context.Context, e core.Expense) (int64, error)
	ListOrdered(ctx context.Context) ([]core.Expense, error)
	Get(ctx context.Context, id int64) (core.Expense, error)
	Update(ctx context.Context, e core.Expense) error
	Delete(ctx context.Context, id int64) error
	SummaryByCategory(ctx context.Context) ([]core.CategoryTotal, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
