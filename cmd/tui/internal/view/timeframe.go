package view

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/tally/internal/parse"
)

// TimeframeSelectedMsg is emitted when the user has selected a valid date range.
// From and To are nil when the whole history was chosen.
type TimeframeSelectedMsg struct {
	From *civil.Date
	To   *civil.Date
}

// TimeframePicker lists the presets from a starting one onwards. Choosing
// Custom Range opens a form for the two bounds.
type TimeframePicker struct {
	presets []Timeframe
	cursor  int
	today   func() civil.Date

	bounds *rangeDraft
	custom *huh.Form
	err    error
}

type rangeDraft struct {
	Start string
	End   string
}

func NewTimeframePicker(first Timeframe) TimeframePicker {
	var presets []Timeframe
	for tf := first; tf <= TimeframeCustom; tf++ {
		presets = append(presets, tf)
	}

	return TimeframePicker{
		presets: presets,
		today:   func() civil.Date { return civil.DateOf(time.Now()) },
	}
}

// IsSelecting reports whether the preset list is showing, as opposed to the custom range form.
func (m TimeframePicker) IsSelecting() bool {
	return m.custom == nil
}

func (m *TimeframePicker) Reset() {
	m.cursor = 0
	m.bounds, m.custom, m.err = nil, nil, nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if m.custom != nil {
		return m.updateCustom(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.cursor = max(0, m.cursor-1)
	case "down", "j":
		m.cursor = min(len(m.presets)-1, m.cursor+1)
	case "enter":
		return m.choose(m.presets[m.cursor])
	}

	return m, nil
}

func (m TimeframePicker) choose(tf Timeframe) (TimeframePicker, tea.Cmd) {
	switch tf {
	case TimeframeCustom:
		m.bounds = &rangeDraft{}
		m.custom = m.rangeForm()

		return m, m.custom.Init()
	case TimeframeAll:
		return m, selectRange(nil, nil)
	}

	from, to := TimeframeRange(tf, m.today())

	return m, selectRange(&from, &to)
}

func (m TimeframePicker) updateCustom(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.bounds, m.custom, m.err = nil, nil, nil
		return m, nil
	}

	f, cmd := m.custom.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.custom = f
	}

	if m.custom.State != huh.StateCompleted {
		return m, cmd
	}

	from, to, err := customRange(m.bounds.Start, m.bounds.End)
	if err != nil {
		m.err = err
		m.custom = m.rangeForm()

		return m, m.custom.Init()
	}

	m.bounds, m.custom, m.err = nil, nil, nil

	return m, selectRange(from, to)
}

func (m TimeframePicker) rangeForm() *huh.Form {
	date := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}

		_, err := parse.Date(s)

		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("From").Placeholder("YYYY-MM-DD, blank for open").Value(&m.bounds.Start).Validate(date),
			huh.NewInput().Title("To").Placeholder("YYYY-MM-DD, blank for open").Value(&m.bounds.End).Validate(date),
		),
	).WithWidth(40).WithShowHelp(false)
}

func selectRange(from, to *civil.Date) tea.Cmd {
	return func() tea.Msg { return TimeframeSelectedMsg{From: from, To: to} }
}

// customRange parses the two bounds. Either may be left empty for an open bound.
func customRange(start, end string) (*civil.Date, *civil.Date, error) {
	var from, to *civil.Date

	if s := strings.TrimSpace(start); s != "" {
		d, err := parse.Date(s)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start date %q", s)
		}

		from = &d
	}

	if s := strings.TrimSpace(end); s != "" {
		d, err := parse.Date(s)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end date %q", s)
		}

		to = &d
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("end date is before start date")
	}

	return from, to, nil
}

func (m TimeframePicker) View() string {
	var sb strings.Builder

	if m.custom != nil {
		sb.WriteString(titleStyle.Render("Custom Range") + "\n\n" + m.custom.View())
	} else {
		sb.WriteString(titleStyle.Render("Timeframe") + "\n\n")

		for i, tf := range m.presets {
			if i == m.cursor {
				sb.WriteString(activeStyle("> "+tf.String()) + "\n")
				continue
			}

			sb.WriteString("  " + tf.String() + "\n")
		}
	}

	if m.err != nil {
		sb.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}

	sb.WriteString("\n" + faintStyle.Render("enter: choose  esc: back"))

	return sb.String()
}
