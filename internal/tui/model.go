// Package tui is the interactive expense form: four inputs, a date-descending
// list and the add, edit, save, delete and summary actions.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"expenses/internal/core"
	applog "expenses/internal/log"
	"expenses/internal/services"
)

const (
	fieldDate = iota
	fieldCategory
	fieldDescription
	fieldAmount
	fieldCount
)

var fieldLabels = [fieldCount]string{"Date", "Category", "Description", "Amount"}

type statusKind int

const (
	statusInfo statusKind = iota
	statusError
)

// Model is the bubbletea model for the expense form.
type Model struct {
	ctx    context.Context
	svc    *services.ExpenseService
	logger *applog.Logger

	inputs [fieldCount]textinput.Model
	focus  int

	rows    []services.Row
	cursor  int
	offset  int
	editing bool

	status     string
	statusKind statusKind
	summary    string
	busy       bool

	width  int
	height int
}

type (
	rowsMsg struct {
		rows      []services.Row
		editing   bool
		clearForm bool
		notice    string
	}
	editLoadedMsg struct {
		form services.Form
	}
	summaryMsg struct {
		text string
	}
	actionErrMsg struct {
		action  string
		err     error
		rows    []services.Row
		editing bool
		// stale is set when the store failed and no fresh listing exists
		stale   bool
	}
)

func New(ctx context.Context, svc *services.ExpenseService, logger *applog.Logger) *Model {
	if logger == nil {
		logger = applog.Discard()
	}
	m := &Model{
		ctx:    ctx,
		svc:    svc,
		logger: logger.WithComponent(applog.ComponentTUI),
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = fieldLabels[i]
		in.Prompt = ""
		in.CharLimit = 200
		in.Width = 30
		m.inputs[i] = in
	}
	m.inputs[fieldDate].Placeholder = "YYYY-MM-DD"
	m.inputs[fieldAmount].Placeholder = "0.00"
	m.inputs[fieldAmount].CharLimit = 32
	m.inputs[m.focus].Focus()
	return m
}

func (m *Model) Init() tea.Cmd {
	m.busy = true
	return m.loadCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampScroll()
		return m, nil

	case rowsMsg:
		m.busy = false
		m.setRows(msg.rows)
		m.editing = msg.editing
		if msg.clearForm {
			m.clearForm()
		}
		if msg.notice != "" {
			m.setStatus(statusInfo, msg.notice)
		}
		return m, nil

	case editLoadedMsg:
		m.busy = false
		m.editing = true
		m.setForm(msg.form)
		m.setStatus(statusInfo, "Editing selected expense. ctrl+s saves, esc cancels.")
		return m, m.focusField(fieldDate)

	case summaryMsg:
		m.busy = false
		m.summary = msg.text
		return m, nil

	case actionErrMsg:
		m.busy = false
		if msg.rows != nil {
			m.setRows(msg.rows)
			m.editing = msg.editing
		} else if msg.stale {
			m.setRows(nil)
		}
		m.setStatus(statusError, services.UserMessage(msg.action, msg.err))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateFocused(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.summary != "" {
		switch key {
		case "esc", "enter", "q":
			m.summary = ""
		}
		return m, nil
	}

	switch key {
	case "tab", "enter":
		return m, m.focusField((m.focus + 1) % fieldCount)
	case "shift+tab":
		return m, m.focusField((m.focus + fieldCount - 1) % fieldCount)
	case "up":
		m.moveCursor(-1)
		return m, nil
	case "down":
		m.moveCursor(1)
		return m, nil
	case "pgup":
		m.moveCursor(-m.listHeight())
		return m, nil
	case "pgdown":
		m.moveCursor(m.listHeight())
		return m, nil
	}

	if cmd, ok := m.action(key); ok {
		return m, cmd
	}

	return m, m.updateFocused(msg)
}

// action starts the command bound to key. While another action is running,
// keys are swallowed so store calls never overlap.
func (m *Model) action(key string) (tea.Cmd, bool) {
	var start func() tea.Cmd
	switch key {
	case "ctrl+a":
		start = m.addCmd
	case "ctrl+e":
		start = m.editCmd
	case "ctrl+s":
		start = m.saveCmd
	case "ctrl+d":
		start = m.deleteCmd
	case "ctrl+t":
		start = m.summaryCmd
	case "esc":
		if m.busy {
			return nil, true
		}
		m.escape()
		return nil, true
	default:
		return nil, false
	}

	if m.busy {
		return nil, true
	}
	m.busy = true
	m.status = ""
	return start(), true
}

func (m *Model) escape() {
	if m.editing {
		m.svc.CancelEdit()
		m.editing = false
		m.clearForm()
		m.setStatus(statusInfo, "Edit cancelled")
		return
	}
	m.status = ""
}

func (m *Model) loadCmd() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		rows, err := svc.Load(ctx)
		_, editing := svc.Editing()
		if err != nil {
			return actionErrMsg{action: "load", err: err, stale: true}
		}
		return rowsMsg{rows: rows, editing: editing}
	}
}

func (m *Model) addCmd() tea.Cmd {
	ctx, svc, form := m.ctx, m.svc, m.form()
	return func() tea.Msg {
		rows, err := svc.Add(ctx, form)
		_, editing := svc.Editing()
		if err != nil {
			return actionErrMsg{action: "add", err: err, rows: rows, editing: editing, stale: storageFailed(rows, err)}
		}
		return rowsMsg{rows: rows, editing: editing, clearForm: true, notice: "Expense added"}
	}
}

func (m *Model) editCmd() tea.Cmd {
	ctx, svc, rank := m.ctx, m.svc, m.selectedRank()
	return func() tea.Msg {
		form, err := svc.BeginEdit(ctx, rank)
		if err != nil {
			return actionErrMsg{action: "edit", err: err}
		}
		return editLoadedMsg{form: form}
	}
}

func (m *Model) saveCmd() tea.Cmd {
	ctx, svc, form := m.ctx, m.svc, m.form()
	return func() tea.Msg {
		rows, err := svc.SaveEdit(ctx, form)
		_, editing := svc.Editing()
		if err != nil {
			return actionErrMsg{action: "edit", err: err, rows: rows, editing: editing, stale: storageFailed(rows, err)}
		}
		return rowsMsg{rows: rows, editing: editing, clearForm: true, notice: "Expense updated"}
	}
}

func (m *Model) deleteCmd() tea.Cmd {
	ctx, svc, rank := m.ctx, m.svc, m.selectedRank()
	return func() tea.Msg {
		rows, err := svc.Delete(ctx, rank)
		_, editing := svc.Editing()
		if err != nil {
			return actionErrMsg{action: "delete", err: err, rows: rows, editing: editing, stale: storageFailed(rows, err)}
		}
		return rowsMsg{rows: rows, editing: editing, notice: "Expense deleted"}
	}
}

func (m *Model) summaryCmd() tea.Cmd {
	ctx, svc := m.ctx, m.svc
	return func() tea.Msg {
		totals, err := svc.Summary(ctx)
		if err != nil {
			return actionErrMsg{action: "summarize", err: err}
		}
		return summaryMsg{text: core.FormatSummary(totals)}
	}
}

// storageFailed reports an error that was neither bad input nor a bad
// selection and left no listing to show.
func storageFailed(rows []services.Row, err error) bool {
	return rows == nil && !core.IsValidation(err) && !errors.Is(err, services.ErrNoSelection)
}

// selectedRank is the highlighted list position, or -1 with an empty list.
func (m *Model) selectedRank() int {
	if len(m.rows) == 0 {
		return -1
	}
	return m.cursor
}

func (m *Model) form() services.Form {
	return services.Form{
		Date:        m.inputs[fieldDate].Value(),
		Category:    m.inputs[fieldCategory].Value(),
		Description: m.inputs[fieldDescription].Value(),
		Amount:      m.inputs[fieldAmount].Value(),
	}
}

func (m *Model) setForm(f services.Form) {
	m.inputs[fieldDate].SetValue(f.Date)
	m.inputs[fieldCategory].SetValue(f.Category)
	m.inputs[fieldDescription].SetValue(f.Description)
	m.inputs[fieldAmount].SetValue(f.Amount)
}

func (m *Model) clearForm() {
	m.setForm(services.Form{})
}

func (m *Model) setRows(rows []services.Row) {
	m.rows = rows
	m.clampScroll()
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
	if kind == statusError {
		m.logger.Debug("Showing error", applog.FieldError, text)
	}
}

func (m *Model) focusField(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[m.focus].Focus()
}

func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampScroll()
}

func (m *Model) clampScroll() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if last := len(m.rows) - h; m.offset > last {
		m.offset = last
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight is the number of list rows that fit under the form.
func (m *Model) listHeight() int {
	const chrome = 16
	if m.height == 0 {
		return 8
	}
	if h := m.height - chrome; h > 3 {
		return h
	}
	return 3
}
