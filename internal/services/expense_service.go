package services

import (
	"context"
	"errors"
	"fmt"

	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/session"
	"expenses/internal/storage"
)

// ErrNoSelection is returned when an action needs a selected expense and the
// selection is missing, out of range, or refers to a record that no longer
// exists.
var ErrNoSelection = errors.New("no expense selected")

// Form is the text of the four input fields.
type Form struct {
	Date        string
	Category    string
	Description string
	Amount      string
}

// Row is one rendered list line and the record behind it.
type Row struct {
	Rank    int
	Expense core.Expense
	Text    string
}

// ExpenseService runs every user action as: resolve selection, store
// operation, then rebuild the index and rows from the store.
type ExpenseService struct {
	store   storage.Store
	session *session.Session
	logger  *applog.Logger
}

func NewExpenseService(store storage.Store, logger *applog.Logger) *ExpenseService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &ExpenseService{
		store:   store,
		session: session.New(),
		logger:  logger.WithComponent(applog.ComponentExpense),
	}
}

// Load lists every expense and rebuilds the index from that listing.
func (s *ExpenseService) Load(ctx context.Context) ([]Row, error) {
	records, err := s.store.ListOrdered(ctx)
	if err != nil {
		s.session.Invalidate()
		s.logFailure(ctx, applog.OpList, err)
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	s.session.Rebuild(records)
	rows := make([]Row, len(records))
	for i, e := range records {
		rows[i] = Row{Rank: i, Expense: e, Text: core.FormatRow(e)}
	}

	s.logger.DebugContext(ctx, "Expenses loaded", applog.FieldCount, len(rows))
	return rows, nil
}

// Add validates the form and creates a new expense. Any edit in progress is
// abandoned since the form has been used for a new record.
func (s *ExpenseService) Add(ctx context.Context, f Form) ([]Row, error) {
	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		s.logFailure(ctx, applog.OpCreate, err)
		return nil, err
	}

	e := core.Expense{}.WithFields(f.Date, f.Category, f.Description, amount)

	s.session.Invalidate()
	s.session.EndEdit()
	id, err := s.store.Create(ctx, e)
	if err != nil {
		s.logFailure(ctx, applog.OpCreate, err)
		return s.reloadAfterFailure(ctx, fmt.Errorf("add expense: %w", err))
	}

	s.logger.InfoContext(ctx, "Expense added",
		applog.NewFields().WithOperation(applog.OpCreate).WithExpense(id, e.Date, e.Category, e.Amount).ToSlice()...)
	return s.Load(ctx)
}

// BeginEdit resolves rank through the index, fetches the authoritative record
// and marks it as being edited. The returned form holds its current values.
func (s *ExpenseService) BeginEdit(ctx context.Context, rank int) (Form, error) {
	e, err := s.selected(ctx, rank)
	if err != nil {
		s.logFailure(ctx, applog.OpLoadEdit, err, applog.NewFields().WithRank(rank).ToSlice()...)
		return Form{}, err
	}

	s.session.BeginEdit(e.ID)
	fields := applog.NewFields().WithOperation(applog.OpLoadEdit).WithRank(rank)
	fields[applog.FieldExpenseID] = e.ID
	s.logger.DebugContext(ctx, "Expense loaded for edit", fields.ToSlice()...)

	return Form{
		Date:        e.Date,
		Category:    e.Category,
		Description: e.Description,
		Amount:      core.AmountText(e.Amount),
	}, nil
}

// SaveEdit replaces every field of the expense loaded by BeginEdit.
func (s *ExpenseService) SaveEdit(ctx context.Context, f Form) ([]Row, error) {
	id, ok := s.session.EditingID()
	if !ok {
		err := fmt.Errorf("save edit: %w", ErrNoSelection)
		s.logFailure(ctx, applog.OpUpdate, err)
		return nil, err
	}

	amount, err := core.ParseAmount(f.Amount)
	if err != nil {
		s.logFailure(ctx, applog.OpUpdate, err, applog.FieldExpenseID, id)
		return nil, err
	}

	e := core.Expense{ID: id}.WithFields(f.Date, f.Category, f.Description, amount)

	s.session.Invalidate()
	if err := s.store.Update(ctx, e); err != nil {
		s.logFailure(ctx, applog.OpUpdate, err, applog.FieldExpenseID, id)
		return s.reloadAfterFailure(ctx, fmt.Errorf("save expense: %w", err))
	}
	s.session.EndEdit()

	s.logger.InfoContext(ctx, "Expense updated",
		applog.NewFields().WithOperation(applog.OpUpdate).WithExpense(id, e.Date, e.Category, e.Amount).ToSlice()...)
	return s.Load(ctx)
}

// Delete removes the expense at rank.
func (s *ExpenseService) Delete(ctx context.Context, rank int) ([]Row, error) {
	id, err := s.session.Resolve(rank)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrNoSelection, err)
		s.logFailure(ctx, applog.OpDelete, err, applog.NewFields().WithRank(rank).ToSlice()...)
		return nil, err
	}

	s.session.Invalidate()
	if err := s.store.Delete(ctx, id); err != nil {
		s.logFailure(ctx, applog.OpDelete, err, applog.FieldExpenseID, id)
		return s.reloadAfterFailure(ctx, fmt.Errorf("delete expense: %w", err))
	}
	if editing, ok := s.session.EditingID(); ok && editing == id {
		s.session.EndEdit()
	}

	fields := applog.NewFields().WithOperation(applog.OpDelete).WithRank(rank)
	fields[applog.FieldExpenseID] = id
	s.logger.InfoContext(ctx, "Expense deleted", fields.ToSlice()...)
	return s.Load(ctx)
}

// CancelEdit forgets the expense loaded by BeginEdit.
func (s *ExpenseService) CancelEdit() {
	s.session.EndEdit()
}

// Editing reports the id loaded by BeginEdit, if any.
func (s *ExpenseService) Editing() (int64, bool) {
	return s.session.EditingID()
}

// Summary totals amounts per category. An empty result means there are no
// expenses.
func (s *ExpenseService) Summary(ctx context.Context) ([]core.CategoryTotal, error) {
	totals, err := s.store.SummaryByCategory(ctx)
	if err != nil {
		s.logFailure(ctx, applog.OpSummary, err)
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}
	return totals, nil
}

func (s *ExpenseService) selected(ctx context.Context, rank int) (core.Expense, error) {
	id, err := s.session.Resolve(rank)
	if err != nil {
		return core.Expense{}, fmt.Errorf("%w: %w", ErrNoSelection, err)
	}
	e, err := s.store.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return core.Expense{}, fmt.Errorf("%w: %w", ErrNoSelection, err)
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("fetch expense: %w", err)
	}
	return e, nil
}

// reloadAfterFailure refreshes the listing after a failed mutation so the
// caller never keeps showing rows the store may no longer match. The original
// error is always returned.
func (s *ExpenseService) reloadAfterFailure(ctx context.Context, cause error) ([]Row, error) {
	rows, err := s.Load(ctx)
	if err != nil {
		return nil, cause
	}
	return rows, cause
}

func (s *ExpenseService) logFailure(ctx context.Context, op string, err error, args ...any) {
	errorType := applog.ErrorTypeDatabase
	switch {
	case core.IsValidation(err):
		errorType = applog.ErrorTypeValidation
	case errors.Is(err, ErrNoSelection):
		errorType = applog.ErrorTypeSelection
	}
	fields := applog.NewFields().WithOperation(op).WithError(err, errorType).ToSlice()
	if errorType == applog.ErrorTypeDatabase {
		s.logger.ErrorContext(ctx, "Expense operation failed", append(fields, args...)...)
		return
	}
	s.logger.WarnContext(ctx, "Expense action rejected", append(fields, args...)...)
}

// Close drops the session state and closes the underlying store.
func (s *ExpenseService) Close() error {
	s.session.Reset()
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		return fmt.Errorf("close expense service: %w", err)
	}
	return nil
}

// UserMessage turns an action error into text for the user. action completes
// "Please select an expense to ...".
func UserMessage(action string, err error) string {
	switch {
	case err == nil:
		return ""
	case core.IsValidation(err):
		return "Amount must be a valid number"
	case errors.Is(err, ErrNoSelection):
		return "Please select an expense to " + action
	default:
		return "Something went wrong: " + err.Error()
	}
}
