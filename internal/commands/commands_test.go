package commands

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/google/subcommands"

	"expenses/internal/core"
	"expenses/internal/services"
	"expenses/internal/storage/memory"
)

func newEnv(seed ...core.Expense) (*Env, *memory.Store, *bytes.Buffer, *bytes.Buffer) {
	store := memory.New(seed...)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Env{
		Service: services.NewExpenseService(store, nil),
		Out:     out,
		Err:     errOut,
	}
	return env, store, out, errOut
}

// run executes args through a fresh commander, the way main does.
func run(t *testing.T, env *Env, args ...string) subcommands.ExitStatus {
	t.Helper()
	fs := flag.NewFlagSet("expenses", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "expenses")
	for _, c := range Commands(env) {
		commander.Register(c, "")
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return commander.Execute(context.Background())
}

func TestAddAndList(t *testing.T) {
	env, store, out, _ := newEnv()

	status := run(t, env, "add", "-date", "2024-01-31", "-category", "Food", "-description", "Lunch", "-amount", "12.50")
	if status != subcommands.ExitSuccess {
		t.Fatalf("add failed with %v", status)
	}
	if n, _ := store.Count(context.Background()); n != 1 {
		t.Fatalf("expected 1 record, got %d", n)
	}

	out.Reset()
	if status := run(t, env, "list"); status != subcommands.ExitSuccess {
		t.Fatalf("list failed with %v", status)
	}
	if !strings.Contains(out.String(), "Rs. 12.50") || !strings.Contains(out.String(), "Lunch") {
		t.Fatalf("list output missing the expense:\n%s", out.String())
	}
}

func TestAddRejectsBadAmount(t *testing.T) {
	env, store, _, errOut := newEnv()

	status := run(t, env, "add", "-date", "2024-01-31", "-amount", "abc")
	if status != subcommands.ExitFailure {
		t.Fatalf("expected failure, got %v", status)
	}
	if got := strings.TrimSpace(errOut.String()); got != "Amount must be a valid number" {
		t.Fatalf("unexpected error output %q", got)
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Fatalf("nothing should be stored, got %d", n)
	}
}

func TestEditKeepsOmittedFields(t *testing.T) {
	env, store, _, _ := newEnv(
		core.Expense{Date: "2024-01-01", Category: "Food", Description: "Dinner", Amount: 40},
		core.Expense{Date: "2024-03-01", Category: "Rent", Description: "March", Amount: 900},
	)

	// rank 1 is the older record
	status := run(t, env, "edit", "-rank", "1", "-amount", "45", "-description", "")
	if status != subcommands.ExitSuccess {
		t.Fatalf("edit failed with %v", status)
	}

	got, err := store.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := core.Expense{ID: 1, Date: "2024-01-01", Category: "Food", Description: "", Amount: 45}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestEditAndDeleteOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"edit", []string{"edit", "-rank", "3"}, "Please select an expense to edit"},
		{"edit without rank", []string{"edit"}, "Please select an expense to edit"},
		{"delete", []string{"delete", "-rank", "5"}, "Please select an expense to delete"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _, _, errOut := newEnv(core.Expense{Date: "d", Amount: 1})
			if status := run(t, env, tt.args...); status != subcommands.ExitFailure {
				t.Fatalf("expected failure, got %v", status)
			}
			if got := strings.TrimSpace(errOut.String()); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	env, store, _, _ := newEnv(
		core.Expense{Date: "2024-01-01", Description: "keep"},
		core.Expense{Date: "2024-02-01", Description: "drop"},
	)

	if status := run(t, env, "delete", "-rank", "0"); status != subcommands.ExitSuccess {
		t.Fatalf("delete failed with %v", status)
	}
	list, _ := store.ListOrdered(context.Background())
	if len(list) != 1 || list[0].Description != "keep" {
		t.Fatalf("unexpected remaining records: %+v", list)
	}
}

func TestSummary(t *testing.T) {
	env, _, out, _ := newEnv()
	if status := run(t, env, "summary"); status != subcommands.ExitSuccess {
		t.Fatalf("summary failed with %v", status)
	}
	if got := strings.TrimSpace(out.String()); got != core.NoExpensesMessage {
		t.Fatalf("got %q", got)
	}

	env, _, out, _ = newEnv(
		core.Expense{Date: "1", Category: "Food", Amount: 10},
		core.Expense{Date: "2", Category: "Food", Amount: 5.25},
	)
	run(t, env, "summary")
	want := "Summary:\nFood: Rs. 15.25\n"
	if out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}

	out.Reset()
	run(t, env, "summary", "-total")
	if want += "Total: Rs. 15.25\n"; out.String() != want {
		t.Fatalf("got %q, want %q", out.String(), want)
	}
}

func TestNeedsStore(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"ui", true},
		{"add", true},
		{"list", true},
		{"edit", true},
		{"delete", true},
		{"summary", true},
		{"help", false},
		{"flags", false},
		{"bogus", false},
	}
	for _, tt := range tests {
		if got := NeedsStore(tt.name); got != tt.want {
			t.Fatalf("NeedsStore(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAddRejectsOverflowingAmount(t *testing.T) {
	env, store, _, errOut := newEnv()

	status := run(t, env, "add", "-date", "2024-01-31", "-amount", strings.Repeat("9", 400))
	if status != subcommands.ExitFailure {
		t.Fatalf("expected failure, got %v", status)
	}
	if got := strings.TrimSpace(errOut.String()); got != "Amount must be a valid number" {
		t.Fatalf("unexpected error output %q", got)
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Fatalf("nothing should be stored, got %d", n)
	}
	if status := run(t, env, "list"); status != subcommands.ExitSuccess {
		t.Fatalf("list failed with %v", status)
	}
}
