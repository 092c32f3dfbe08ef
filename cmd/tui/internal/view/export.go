package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const defaultExportDir = "./exports"

type exportStep int

const (
	exportPickRange exportStep = iota
	exportPickDir
	exportRunning
	exportFinished
)

var exportHelp = map[exportStep]string{
	exportPickRange: "Esc: back | Enter: choose",
	exportPickDir:   "Esc: change timeframe | Enter: export",
	exportRunning:   "Exporting...",
	exportFinished:  "Esc: back to menu",
}

// ExportModel writes the transactions of a chosen timeframe to a CSV file and
// shows a per-category summary of what was written.
type ExportModel struct {
	CommonModel
	exports *export.Service
	txs     *transaction.Service

	step    exportStep
	picker  TimeframePicker
	filter  transaction.ListFilter
	dir     *string
	form    *huh.Form
	spinner spinner.Model
	done    *exportDoneMsg
}

func NewExportModel(svc *export.Service, txSvc *transaction.Service) ExportModel {
	dir := defaultExportDir

	return ExportModel{
		exports: svc,
		txs:     txSvc,
		picker:  NewTimeframePicker(TimeframeThisMonth),
		dir:     &dir,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("205"))),
		),
	}
}

func (m ExportModel) Title() string     { return "Export Transactions" }
func (m ExportModel) ShortHelp() string { return exportHelp[m.step] }
func (m ExportModel) Init() tea.Cmd     { return nil }

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.filter = transaction.ListFilter{From: msg.From, To: msg.To, Sort: transaction.SortDateAsc}
		m.form = huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Output directory").
					Description("Created when missing").
					Placeholder(defaultExportDir).
					Value(m.dir),
			),
		).WithWidth(50).WithShowHelp(false)
		m.step = exportPickDir

		return m, m.form.Init()

	case exportDoneMsg:
		m.step = exportFinished
		m.done = &msg

		return m, nil

	case spinner.TickMsg:
		if m.step != exportRunning {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		// The picker closes its own custom range form.
		if msg.Type == tea.KeyEsc && (m.step != exportPickRange || m.picker.IsSelecting()) {
			return m.back()
		}
	}

	switch m.step {
	case exportPickRange:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd

	case exportPickDir:
		f, cmd := m.form.Update(msg)
		if f, ok := f.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.step = exportRunning

		return m, tea.Batch(m.spinner.Tick, m.exportCmd(*m.dir))
	}

	return m, nil
}

func (m ExportModel) back() (tea.Model, tea.Cmd) {
	switch m.step {
	case exportPickDir:
		m.step = exportPickRange
		m.picker.Reset()

		return m, nil
	case exportRunning:
		return m, nil
	}

	return m, Back
}

func (m ExportModel) View() string {
	var body string

	switch m.step {
	case exportPickRange:
		body = m.picker.View()
	case exportPickDir:
		body = faintStyle.Render("Exporting "+rangeLabel(m.filter.From, m.filter.To)) + "\n\n" + m.form.View()
	case exportRunning:
		body = m.spinner.View() + " Writing CSV..."
	case exportFinished:
		body = m.done.view()
	}

	return lipgloss.NewStyle().Padding(1).Render(body)
}

type exportDoneMsg struct {
	path    string
	count   int
	summary string
	err     error
}

func (d *exportDoneMsg) view() string {
	if d.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", d.err))
	}

	summary := d.summary
	if summary == "" {
		summary = faintStyle.Render("No transactions in this range.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Render(fmt.Sprintf("Wrote %d transactions to %s", d.count, d.path)),
		"",
		titleStyle.Render("Summary"),
		summary,
	)
}

func (m ExportModel) exportCmd(dir string) tea.Cmd {
	exports, txs, filter := m.exports, m.txs, m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		path, n, err := exports.ExportFile(ctx, filter, dir)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		written, err := txs.List(ctx, filter)
		if err != nil {
			return exportDoneMsg{err: err}
		}

		return exportDoneMsg{path: path, count: n, summary: export.Summary(written)}
	}
}
