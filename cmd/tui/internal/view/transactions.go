package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/form"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/parse"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateTimeframe
	txStateForm
	txStateConfirmDelete
)

// txDraft holds the form inputs as typed; it lives on the heap so the form
// keeps writing to it while the model is copied around.
type txDraft struct {
	Date        string
	Description string
	Amount      string
	Type        transaction.Type
	Category    transaction.Category
	Notes       string
}

func newTxDraft(today civil.Date) *txDraft {
	return &txDraft{
		Date:     today.String(),
		Type:     transaction.TypeExpense,
		Category: transaction.CategoryOther,
	}
}

func draftFrom(tx *transaction.Transaction) *txDraft {
	p := transaction.ParamsFrom(tx)

	return &txDraft{
		Date:        p.Date.String(),
		Description: p.Description,
		Amount:      p.Amount.StringFixed(2),
		Type:        p.Type,
		Category:    p.Category,
		Notes:       p.Notes,
	}
}

func (d *txDraft) params() (transaction.CreateParams, error) {
	date, err := parse.Date(d.Date)
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("invalid date %q", d.Date)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(d.Amount))
	if err != nil {
		return transaction.CreateParams{}, fmt.Errorf("invalid amount %q", d.Amount)
	}

	return transaction.CreateParams{
		Date:        date,
		Description: d.Description,
		Amount:      amount,
		Type:        d.Type,
		Category:    d.Category,
		Notes:       d.Notes,
	}, nil
}

type TransactionsModel struct {
	CommonModel
	txService *transaction.Service

	state           txState
	table           table.Model
	txs             []*transaction.Transaction
	timeframePicker TimeframePicker

	filter      transaction.ListFilter
	categoryIdx int

	form     *huh.Form
	mode     form.Mode
	draft    *txDraft
	confirm  *huh.Form
	deleting *bool

	loading bool
	err     error
	status  string
}

func NewTransactionsModel(txSvc *transaction.Service) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 13},
		{Title: "Description", Width: 32},
		{Title: "Category", Width: 14},
		{Title: "Amount", Width: 12},
		{Title: "Notes", Width: 28},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return TransactionsModel{
		txService:       txSvc,
		table:           t,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek),
		loading:         true,
	}
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateForm:
		return "Navigate form | Esc: cancel"
	case txStateTimeframe:
		return "Esc: back | Enter: select"
	case txStateConfirmDelete:
		return "Enter: confirm | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | x: delete | c: category | t: timeframe | s: sort | r: refresh"
}

func (m TransactionsModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadTxsMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.txs = msg.txs
			m.refreshTable()
		}

		return m, nil

	case txSavedMsg:
		m.state = txStateBrowse
		m.form, m.confirm = nil, nil
		m.table.Focus()

		if msg.notice != nil {
			m.status = renderNotices([]notify.Notice{*msg.notice})
		}

		if msg.err != nil {
			if msg.notice == nil {
				m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
			}

			return m, nil
		}

		return m, m.loadTxsCmd()

	case TimeframeSelectedMsg:
		m.filter.From, m.filter.To = msg.From, msg.To
		m.state = txStateBrowse
		m.table.Focus()

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(5, msg.Height-12))
		return m, nil
	}

	switch m.state {
	case txStateBrowse:
		return m.updateBrowse(msg)
	case txStateTimeframe:
		return m.updateTimeframe(msg)
	case txStateForm:
		return m.updateForm(msg)
	case txStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "a":
			return m.openForm(form.Creating(), newTxDraft(civil.DateOf(time.Now())))
		case "e", "enter":
			if tx := m.selected(); tx != nil {
				return m.openForm(form.Editing(tx.ID), draftFrom(tx))
			}

			return m, nil
		case "x":
			return m.confirmDelete()
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % (len(transaction.Categories) + 1)
			m.applyCategory()

			return m, m.loadTxsCmd()
		case "s":
			m.filter.Sort = nextSort(m.filter.Sort)
			return m, m.loadTxsCmd()
		case "t":
			m.state = txStateTimeframe
			m.timeframePicker.Reset()
			m.table.Blur()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			m.state = txStateBrowse
			m.table.Focus()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m TransactionsModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	return m.txs[idx]
}

func (m *TransactionsModel) applyCategory() {
	if m.categoryIdx == 0 {
		m.filter.Category = nil
		return
	}

	c := transaction.Categories[m.categoryIdx-1]
	m.filter.Category = &c
}

func nextSort(o transaction.SortOrder) transaction.SortOrder {
	switch o {
	case "", transaction.SortDateDesc:
		return transaction.SortDateAsc
	case transaction.SortDateAsc:
		return transaction.SortAmountDesc
	case transaction.SortAmountDesc:
		return transaction.SortAmountAsc
	default:
		return transaction.SortDateDesc
	}
}

func (m TransactionsModel) openForm(mode form.Mode, draft *txDraft) (tea.Model, tea.Cmd) {
	categories := make([]huh.Option[transaction.Category], len(transaction.Categories))
	for i, c := range transaction.Categories {
		categories[i] = huh.NewOption(string(c), c)
	}

	m.mode = mode
	m.draft = draft
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&draft.Date).
				Validate(func(s string) error {
					if _, err := parse.Date(s); err != nil {
						return errors.New("enter a date like 2024-01-31")
					}

					return nil
				}),

			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&draft.Description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("description cannot be empty")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&draft.Amount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil || !d.IsPositive() {
						return errors.New("amount must be a positive number")
					}

					return nil
				}),

			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				).
				Value(&draft.Type),

			huh.NewSelect[transaction.Category]().
				Key("category").
				Title("Category").
				Options(categories...).
				Value(&draft.Category),

			huh.NewText().
				Key("notes").
				Title("Notes (optional)").
				Lines(2).
				Value(&draft.Notes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = txStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m TransactionsModel) confirmDelete() (tea.Model, tea.Cmd) {
	tx := m.selected()
	if tx == nil {
		return m, nil
	}

	m.deleting = new(bool)
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q (%s)?", tx.Description, FormatAmount(tx.Amount))).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.deleting),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = txStateConfirmDelete
	m.table.Blur()

	return m, m.confirm.Init()
}

func (m TransactionsModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = txStateBrowse
		m.confirm = nil
		m.table.Focus()

		return m, nil
	}

	f, cmd := m.confirm.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.confirm = f
	}

	if m.confirm.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.deleting {
		m.state = txStateBrowse
		m.confirm = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd(m.selected())
}

func (m TransactionsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.state == txStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	}

	category := "All"
	if m.filter.Category != nil {
		category = string(*m.filter.Category)
	}

	sortLabel := m.filter.Sort
	if sortLabel == "" {
		sortLabel = transaction.SortDateDesc
	}

	header := fmt.Sprintf(
		"Filter: [c] Category: %s | [t] Dates: %s | [s] Sort: %s",
		activeStyle(category),
		activeStyle(rangeLabel(m.filter.From, m.filter.To)),
		activeStyle(string(sortLabel)),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	switch {
	case m.err != nil:
		content += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	case len(m.txs) == 0:
		content += "\n" + faintStyle.Render("No transactions found.")
	}

	switch {
	case m.state == txStateForm && m.form != nil:
		title := "Add Transaction"
		if m.mode.IsEditing() {
			title = "Edit Transaction"
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content,
			panelStyle.Width(54).Render(titleStyle.Render(title)+"\n\n"+m.form.View()))
	case m.state == txStateConfirmDelete && m.confirm != nil:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(54).Render(m.confirm.View()))
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *TransactionsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			tx.Description,
			string(tx.Category),
			FormatAmount(tx.Amount),
			tx.Notes,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

// Messages

type loadTxsMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m TransactionsModel) loadTxsCmd() tea.Cmd {
	svc, filter := m.txService, m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := svc.List(ctx, filter)

		return loadTxsMsg{txs: txs, err: err}
	}
}

// txSavedMsg carries the last notice the service raised, if any.
type txSavedMsg struct {
	notice *notify.Notice
	err    error
}

func savedMsg(rec *notify.Recorder, err error) txSavedMsg {
	msg := txSavedMsg{err: err}
	if n, ok := rec.Last(); ok {
		msg.notice = &n
	}

	return msg
}

func (m TransactionsModel) saveCmd() tea.Cmd {
	svc, mode, draft := m.txService, m.mode, *m.draft

	return func() tea.Msg {
		params, err := draft.params()
		if err != nil {
			return txSavedMsg{err: err}
		}

		ctx, cancel, rec := recordingCtx()
		defer cancel()

		_, err = svc.Submit(ctx, mode, params)

		return savedMsg(rec, err)
	}
}

func (m TransactionsModel) deleteCmd(tx *transaction.Transaction) tea.Cmd {
	if tx == nil {
		return nil
	}

	svc, id := m.txService, tx.ID

	return func() tea.Msg {
		ctx, cancel, rec := recordingCtx()
		defer cancel()

		return savedMsg(rec, svc.Delete(ctx, id))
	}
}
