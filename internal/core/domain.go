package core

import (
	"errors"
	"fmt"
)

type (
	// Expense is one persisted expense entry. Date, Category and
	// Description are free-form text; ID is assigned by the store.
	Expense struct {
		ID          int64
		Date        string
		Category    string
		Description string
		Amount      float64
	}

	// CategoryTotal is the sum of all amounts recorded under one category.
	CategoryTotal struct {
		Category string
		Total    float64
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
)

// ValidationError reports user input that was rejected before reaching storage.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// WithFields returns a copy of e carrying the given fields, keeping its ID.
func (e Expense) WithFields(date, category, description string, amount float64) Expense {
	e.Date = date
	e.Category = category
	e.Description = description
	e.Amount = amount
	return e
}
