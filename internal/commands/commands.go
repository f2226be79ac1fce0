// Package commands implements the expenses subcommands.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/subcommands"

	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/services"
	"expenses/internal/tui"
)

// Env is shared by every command.
type Env struct {
	Service *services.ExpenseService
	Out     io.Writer
	Err     io.Writer
	// ProgramOptions are passed to tea.NewProgram by the ui command.
	ProgramOptions []tea.ProgramOption
}

// Commands returns every subcommand bound to env.
func Commands(env *Env) []subcommands.Command {
	return []subcommands.Command{
		&uiCmd{env: env},
		&addCmd{env: env},
		&listCmd{env: env},
		&editCmd{env: env},
		&deleteCmd{env: env},
		&summaryCmd{env: env},
	}
}

// NeedsStore reports whether the named subcommand works on expenses. The
// commander's built-in help and flags commands, and unknown names, do not.
func NeedsStore(name string) bool {
	for _, c := range Commands(&Env{}) {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// fail prints the user-facing message for err and reports failure.
func (e *Env) fail(ctx context.Context, action string, err error) subcommands.ExitStatus {
	applog.FromContext(ctx).WithComponent(applog.ComponentCLI).DebugContext(ctx, "Command failed", applog.FieldOperation, action, applog.FieldError, err)
	fmt.Fprintln(e.Err, services.UserMessage(action, err))
	return subcommands.ExitFailure
}

func (e *Env) printRows(rows []services.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(e.Out, "No expenses yet.")
		return
	}
	for _, r := range rows {
		fmt.Fprintf(e.Out, "%4d  %s\n", r.Rank, r.Text)
	}
}

type uiCmd struct {
	env *Env
}

func (*uiCmd) Name() string     { return "ui" }
func (*uiCmd) Synopsis() string { return "open the interactive expense form (default)" }
func (*uiCmd) Usage() string {
	return `ui:
  Open the interactive expense form.
`
}
func (*uiCmd) SetFlags(*flag.FlagSet) {}

func (c *uiCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return RunUI(ctx, c.env)
}

// RunUI runs the interactive form until the user quits.
func RunUI(ctx context.Context, env *Env) subcommands.ExitStatus {
	logger := applog.FromContext(ctx)
	model := tui.New(ctx, env.Service, logger)
	if _, err := tea.NewProgram(model, env.ProgramOptions...).Run(); err != nil {
		logger.ErrorContext(ctx, "UI stopped with error", applog.FieldError, err)
		fmt.Fprintf(env.Err, "error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type addCmd struct {
	env  *Env
	form services.Form
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a new expense" }
func (*addCmd) Usage() string {
	return `add -date <text> -category <text> -description <text> -amount <number>:
  Record a new expense.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.form.Date, "date", "", "date text, e.g. 2024-01-31")
	f.StringVar(&c.form.Category, "category", "", "category")
	f.StringVar(&c.form.Description, "description", "", "description")
	f.StringVar(&c.form.Amount, "amount", "", "non-negative amount, e.g. 12.50")
}

func (c *addCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rows, err := c.env.Service.Add(ctx, c.form)
	if err != nil {
		return c.env.fail(ctx, "add", err)
	}
	fmt.Fprintln(c.env.Out, "Expense added")
	c.env.printRows(rows)
	return subcommands.ExitSuccess
}

type listCmd struct {
	env *Env
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list expenses, newest date first" }
func (*listCmd) Usage() string {
	return `list:
  Print every expense with its rank. Ranks are what edit and delete take.
`
}
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rows, err := c.env.Service.Load(ctx)
	if err != nil {
		return c.env.fail(ctx, "list", err)
	}
	c.env.printRows(rows)
	return subcommands.ExitSuccess
}

type editCmd struct {
	env         *Env
	rank        int
	date        optionalString
	category    optionalString
	description optionalString
	amount      optionalString
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change the expense at a rank" }
func (*editCmd) Usage() string {
	return `edit -rank <n> [-date <text>] [-category <text>] [-description <text>] [-amount <number>]:
  Replace fields of the expense shown at rank n by list. Omitted fields keep
  their current value.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.rank, "rank", -1, "rank as printed by list")
	f.Var(&c.date, "date", "new date text")
	f.Var(&c.category, "category", "new category")
	f.Var(&c.description, "description", "new description")
	f.Var(&c.amount, "amount", "new amount")
}

func (c *editCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc := c.env.Service
	if _, err := svc.Load(ctx); err != nil {
		return c.env.fail(ctx, "edit", err)
	}
	form, err := svc.BeginEdit(ctx, c.rank)
	if err != nil {
		return c.env.fail(ctx, "edit", err)
	}
	c.date.apply(&form.Date)
	c.category.apply(&form.Category)
	c.description.apply(&form.Description)
	c.amount.apply(&form.Amount)

	rows, err := svc.SaveEdit(ctx, form)
	if err != nil {
		svc.CancelEdit()
		return c.env.fail(ctx, "edit", err)
	}
	fmt.Fprintln(c.env.Out, "Expense updated")
	c.env.printRows(rows)
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	env  *Env
	rank int
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete the expense at a rank" }
func (*deleteCmd) Usage() string {
	return `delete -rank <n>:
  Delete the expense shown at rank n by list.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.rank, "rank", -1, "rank as printed by list")
}

func (c *deleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc := c.env.Service
	if _, err := svc.Load(ctx); err != nil {
		return c.env.fail(ctx, "delete", err)
	}
	rows, err := svc.Delete(ctx, c.rank)
	if err != nil {
		return c.env.fail(ctx, "delete", err)
	}
	fmt.Fprintln(c.env.Out, "Expense deleted")
	c.env.printRows(rows)
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	env   *Env
	total bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "total expenses per category" }
func (*summaryCmd) Usage() string {
	return `summary [-total]:
  Print the total amount recorded under each category.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.total, "total", false, "also print the sum over all categories")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	totals, err := c.env.Service.Summary(ctx)
	if err != nil {
		return c.env.fail(ctx, "summarize", err)
	}
	fmt.Fprintln(c.env.Out, strings.TrimRight(core.FormatSummary(totals), "\n"))
	if c.total && len(totals) > 0 {
		fmt.Fprintf(c.env.Out, "Total: %s\n", core.FormatTotal(core.GrandTotal(totals)))
	}
	return subcommands.ExitSuccess
}

// optionalString is a flag value that remembers whether it was set, so an
// explicit empty string can clear a field.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(v string) error {
	o.value, o.set = v, true
	return nil
}

func (o *optionalString) apply(dst *string) {
	if o.set {
		*dst = o.value
	}
}
