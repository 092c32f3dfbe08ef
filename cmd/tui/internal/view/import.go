package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/notify"
)

const (
	importTimeout = 2 * time.Minute
	previewRows   = 6
)

type importState int

const (
	importStateFilePick importState = iota
	importStateLoading
	importStateMapping
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service

	state      importState
	filePicker filepicker.Model

	path    string
	preview *importer.Preview
	table   table.Model
	mapping *importer.Mapping
	form    *huh.Form

	notices []notify.Notice
	status  string
	err     error
}

func NewImportModel(impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		filePicker:    fp,
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	switch m.state {
	case importStateMapping:
		return "Navigate form | Esc: pick another file"
	case importStateResult:
		return "Esc: import another file"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case previewMsg:
		m.notices = msg.notices

		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err

			return m, nil
		}

		m.preview = msg.preview
		m.mapping = &msg.preview.Mapping
		m.table = previewTable(msg.preview)
		m.form = m.buildMappingForm()
		m.state = importStateMapping

		return m, m.form.Init()

	case importResultMsg:
		m.state = importStateResult
		m.notices = msg.notices
		m.err = msg.err

		return m, nil
	}

	switch m.state {
	case importStateFilePick:
		return m.updateFilePick(msg)
	case importStateMapping:
		return m.updateMapping(msg)
	}

	return m, nil
}

func (m ImportModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.path = path
		m.state = importStateLoading
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.previewCmd(path)
	}

	return m, cmd
}

func (m ImportModel) updateMapping(msg tea.Msg) (tea.Model, tea.Cmd) {
	f, cmd := m.form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = importStateLoading
	m.status = fmt.Sprintf("Importing from %s...", m.path)

	return m, m.importCmd(m.path, *m.mapping)
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateMapping, importStateResult:
		m.state = importStateFilePick
		m.preview, m.mapping, m.form = nil, nil, nil
		m.notices, m.err, m.status = nil, nil, ""

		return m, m.filePicker.Init()
	case importStateLoading:
		return m, nil
	}

	return m, Back
}

func (m ImportModel) buildMappingForm() *huh.Form {
	header := m.preview.Rows[0]

	options := make([]huh.Option[int], len(header))
	for i, name := range header {
		label := fmt.Sprintf("Column %d", i+1)
		if name = strings.TrimSpace(name); name != "" {
			label += ": " + name
		}

		options[i] = huh.NewOption(label, i)
	}

	field := func(title string, v *int) huh.Field {
		return huh.NewSelect[int]().Title(title).Options(options...).Value(v)
	}

	return huh.NewForm(
		huh.NewGroup(
			field("Date column", &m.mapping.Date),
			field("Description column", &m.mapping.Description),
			field("Amount column", &m.mapping.Amount),
			field("Category column", &m.mapping.Category),
		),
	).WithWidth(40).WithShowHelp(false)
}

func previewTable(p *importer.Preview) table.Model {
	width := 14
	if p.Columns > 0 {
		width = max(10, min(24, 100/p.Columns))
	}

	columns := make([]table.Column, p.Columns)
	for i := range columns {
		title := fmt.Sprintf("%d", i+1)
		if i < len(p.Rows[0]) {
			title = p.Rows[0][i]
		}

		columns[i] = table.Column{Title: title, Width: width}
	}

	rows := make([]table.Row, 0, len(p.Rows))
	for _, r := range p.Rows[1:] {
		row := make(table.Row, p.Columns)
		copy(row, r)
		rows = append(rows, row)
	}

	return table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select a CSV file to import:\n\n" + m.filePicker.View(),
		)
	case importStateLoading:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateMapping:
		return m.viewMapping()
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewMapping() string {
	info := fmt.Sprintf("%s  %s",
		titleStyle.Render("Preview"),
		faintStyle.Render(fmt.Sprintf("%d rows including header", m.preview.Total)),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if notices := renderNotices(m.notices); notices != "" {
		info += "\n" + notices
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		info,
		tableView,
		"",
		panelStyle.Render(titleStyle.Render("Map Columns")+"\n\n"+m.form.View()),
	))
}

func (m ImportModel) viewResult() string {
	body := renderNotices(m.notices)
	if body == "" && m.err != nil {
		body = errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(2).Render(body + "\n\n" + faintStyle.Render("(Esc to import another file)"))
}

// Messages

type previewMsg struct {
	preview *importer.Preview
	notices []notify.Notice
	err     error
}

type importResultMsg struct {
	result  *importer.Result
	notices []notify.Notice
	err     error
}

func (m ImportModel) previewCmd(path string) tea.Cmd {
	svc := m.importService

	return func() tea.Msg {
		ctx, cancel, rec := importCtx()
		defer cancel()

		f, r, err := importer.OpenFile(path)
		if err != nil {
			return previewMsg{err: err}
		}
		defer r.Close()

		p, err := svc.Preview(ctx, f, r, previewRows)

		return previewMsg{preview: p, notices: rec.Notices(), err: err}
	}
}

func (m ImportModel) importCmd(path string, mapping importer.Mapping) tea.Cmd {
	svc := m.importService

	return func() tea.Msg {
		ctx, cancel, rec := importCtx()
		defer cancel()

		f, r, err := importer.OpenFile(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer r.Close()

		result, err := svc.Import(ctx, f, r, mapping)

		return importResultMsg{result: result, notices: rec.Notices(), err: err}
	}
}

func importCtx() (context.Context, context.CancelFunc, *notify.Recorder) {
	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	rec := &notify.Recorder{}

	return notify.WithRecorder(ctx, rec), cancel, rec
}
