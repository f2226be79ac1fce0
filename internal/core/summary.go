package core

import (
	"fmt"
	"strings"
)

// NoExpensesMessage is shown in place of an empty summary.
const NoExpensesMessage = "No expenses found."

// FormatRow renders one list line: date, category and description in padded
// columns followed by the formatted amount.
func FormatRow(e Expense) string {
	return fmt.Sprintf("%-15s   %-15s   %-20s   %s", e.Date, e.Category, e.Description, FormatAmount(e.Amount))
}

// FormatSummary renders per-category totals, one per line.
func FormatSummary(totals []CategoryTotal) string {
	if len(totals) == 0 {
		return NoExpensesMessage
	}
	var b strings.Builder
	b.WriteString("Summary:\n")
	for _, t := range totals {
		fmt.Fprintf(&b, "%s: %s\n", t.Category, FormatTotal(t.Total))
	}
	return b.String()
}

// GrandTotal sums every category total.
func GrandTotal(totals []CategoryTotal) float64 {
	var sum float64
	for _, t := range totals {
		sum += t.Total
	}
	return sum
}
