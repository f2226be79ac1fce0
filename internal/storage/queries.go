package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the statements run against the expenses table.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Expense is a row of the expenses table.
type Expense struct {
	ID          int64
	Date        string
	Category    string
	Description string
	Amount      float64
}

// CategorySum is one row of the per-category aggregate.
type CategorySum struct {
	Category    string
	TotalAmount float64
}

const createExpense = `INSERT INTO expenses (date, category, description, amount)
VALUES (?, ?, ?, ?)
RETURNING id, date, category, description, amount`

type CreateExpenseParams struct {
	Date        string
	Category    string
	Description string
	Amount      float64
}

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (Expense, error) {
	row := q.db.QueryRowContext(ctx, createExpense, arg.Date, arg.Category, arg.Description, arg.Amount)
	var i Expense
	err := row.Scan(&i.ID, &i.Date, &i.Category, &i.Description, &i.Amount)
	return i, err
}

// Columns may hold NULL in databases written by other tools.
const listExpenses = `SELECT id, COALESCE(date, ''), COALESCE(category, ''), COALESCE(description, ''), COALESCE(amount, 0)
FROM expenses
ORDER BY date DESC, id ASC`

func (q *Queries) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expense
	for rows.Next() {
		var i Expense
		if err := rows.Scan(&i.ID, &i.Date, &i.Category, &i.Description, &i.Amount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getExpense = `SELECT id, COALESCE(date, ''), COALESCE(category, ''), COALESCE(description, ''), COALESCE(amount, 0)
FROM expenses
WHERE id = ?`

func (q *Queries) GetExpense(ctx context.Context, id int64) (Expense, error) {
	row := q.db.QueryRowContext(ctx, getExpense, id)
	var i Expense
	err := row.Scan(&i.ID, &i.Date, &i.Category, &i.Description, &i.Amount)
	return i, err
}

const updateExpense = `UPDATE expenses
SET date = ?, category = ?, description = ?, amount = ?
WHERE id = ?`

type UpdateExpenseParams struct {
	Date        string
	Category    string
	Description string
	Amount      float64
	ID          int64
}

func (q *Queries) UpdateExpense(ctx context.Context, arg UpdateExpenseParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateExpense, arg.Date, arg.Category, arg.Description, arg.Amount, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteExpense = `DELETE FROM expenses WHERE id = ?`

func (q *Queries) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteExpense, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const getCategorySums = `SELECT COALESCE(category, ''), COALESCE(SUM(amount), 0)
FROM expenses
GROUP BY category
ORDER BY category`

func (q *Queries) GetCategorySums(ctx context.Context) ([]CategorySum, error) {
	rows, err := q.db.QueryContext(ctx, getCategorySums)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CategorySum
	for rows.Next() {
		var i CategorySum
		if err := rows.Scan(&i.Category, &i.TotalAmount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countExpenses = `SELECT COUNT(*) FROM expenses`

func (q *Queries) CountExpenses(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countExpenses)
	var count int64
	err := row.Scan(&count)
	return count, err
}
