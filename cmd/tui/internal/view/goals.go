package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/form"
	"github.com/MrJamesThe3rd/tally/internal/goal"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/parse"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

type goalsState int

const (
	goalsStateBrowse goalsState = iota
	goalsStateForm
	goalsStateConfirmDelete
	goalsStateFunds
	goalsStateConfirmOverfund
)

type goalDraft struct {
	Name       string
	Target     string
	TargetDate string
	Saved      string
	Notes      string
}

func draftFromGoal(g *goal.Goal) *goalDraft {
	p := goal.ParamsFrom(g)

	d := &goalDraft{
		Name:   p.Name,
		Target: p.TargetAmount.StringFixed(2),
		Saved:  p.SavedAmount.StringFixed(2),
		Notes:  p.Notes,
	}

	if p.TargetDate != nil {
		d.TargetDate = p.TargetDate.String()
	}

	return d
}

func (d *goalDraft) params() (goal.Params, error) {
	target, err := decimal.NewFromString(strings.TrimSpace(d.Target))
	if err != nil {
		return goal.Params{}, fmt.Errorf("invalid target amount %q", d.Target)
	}

	saved := decimal.Zero
	if s := strings.TrimSpace(d.Saved); s != "" {
		if saved, err = decimal.NewFromString(s); err != nil {
			return goal.Params{}, fmt.Errorf("invalid saved amount %q", d.Saved)
		}
	}

	p := goal.Params{Name: d.Name, TargetAmount: target, SavedAmount: saved, Notes: d.Notes}

	if s := strings.TrimSpace(d.TargetDate); s != "" {
		date, err := parse.Date(s)
		if err != nil {
			return goal.Params{}, fmt.Errorf("invalid target date %q", d.TargetDate)
		}

		p.TargetDate = &date
	}

	return p, nil
}

type GoalsModel struct {
	CommonModel
	goals   *goal.Service
	reports *report.Service

	state  goalsState
	items  []report.GoalSummary
	cursor int
	bar    progress.Model

	form     *huh.Form
	mode     form.Mode
	draft    *goalDraft
	amount   *string
	confirm  *bool
	overfund *goal.ExceedsTargetError

	notices []notify.Notice
	loading bool
	err     error
}

func NewGoalsModel(goals *goal.Service, reports *report.Service) GoalsModel {
	return GoalsModel{
		goals:   goals,
		reports: reports,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		loading: true,
	}
}

func (m GoalsModel) Title() string { return "Savings Goals" }

func (m GoalsModel) ShortHelp() string {
	if m.state != goalsStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | e: edit | f: add funds | x: delete | r: refresh"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m GoalsModel) selected() *goal.Goal {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}

	return m.items[m.cursor].Goal
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.items = msg.items
			m.cursor = min(m.cursor, max(0, len(m.items)-1))
		}

		return m, nil

	case goalSavedMsg:
		m.state = goalsStateBrowse
		m.form = nil
		m.notices = msg.notices

		var exceeds *goal.ExceedsTargetError
		if errors.As(msg.err, &exceeds) {
			return m.confirmOverfund(exceeds)
		}

		if msg.err != nil && len(msg.notices) == 0 {
			m.notices = []notify.Notice{{Message: "Error: " + msg.err.Error(), Severity: notify.SeverityError}}
		}

		return m, m.loadCmd()
	}

	switch m.state {
	case goalsStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m GoalsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "r":
		m.loading = true
		return m, m.loadCmd()
	case "a":
		return m.openGoalForm(form.Creating(), &goalDraft{Saved: "0"})
	case "e", "enter":
		if g := m.selected(); g != nil {
			return m.openGoalForm(form.Editing(g.ID), draftFromGoal(g))
		}
	case "f":
		if g := m.selected(); g != nil {
			return m.openFundsForm(g)
		}
	case "x":
		if g := m.selected(); g != nil {
			return m.openConfirm(goalsStateConfirmDelete, fmt.Sprintf("Delete the %q goal?", g.Name), "Delete", "Keep")
		}
	}

	return m, nil
}

func (m GoalsModel) openGoalForm(mode form.Mode, draft *goalDraft) (tea.Model, tea.Cmd) {
	amount := func(s string) error {
		if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
			return errors.New("enter a number like 250.00")
		}

		return nil
	}

	m.mode = mode
	m.draft = draft
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal name").
				Value(&draft.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}

					return nil
				}),

			huh.NewInput().Title("Target amount").Placeholder("0.00").Value(&draft.Target).Validate(amount),

			huh.NewInput().
				Title("Target date (optional)").
				Placeholder("YYYY-MM-DD").
				Value(&draft.TargetDate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					if _, err := parse.Date(s); err != nil {
						return errors.New("enter a date like 2025-12-31")
					}

					return nil
				}),

			huh.NewInput().Title("Already saved").Placeholder("0.00").Value(&draft.Saved).Validate(amount),

			huh.NewText().Title("Notes (optional)").Lines(2).Value(&draft.Notes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalsStateForm

	return m, m.form.Init()
}

func (m GoalsModel) openFundsForm(g *goal.Goal) (tea.Model, tea.Cmd) {
	m.amount = new(string)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Add funds to %q", g.Name)).
				Description(fmt.Sprintf("%s of %s saved", FormatAmount(g.SavedAmount), FormatAmount(g.TargetAmount))).
				Placeholder("0.00").
				Value(m.amount).
				Validate(func(s string) error {
					d, err := decimal.NewFromString(strings.TrimSpace(s))
					if err != nil || !d.IsPositive() {
						return errors.New("amount must be a positive number")
					}

					return nil
				}),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalsStateFunds

	return m, m.form.Init()
}

func (m GoalsModel) openConfirm(state goalsState, title, yes, no string) (tea.Model, tea.Cmd) {
	m.confirm = new(bool)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title(title).Affirmative(yes).Negative(no).Value(m.confirm),
		),
	).WithWidth(60).WithShowHelp(false)

	m.state = state

	return m, m.form.Init()
}

func (m GoalsModel) confirmOverfund(e *goal.ExceedsTargetError) (tea.Model, tea.Cmd) {
	m.overfund = e
	m.notices = nil

	return m.openConfirm(goalsStateConfirmOverfund,
		fmt.Sprintf("Adding %s would exceed your goal %q by %s. Add anyway?",
			FormatAmount(e.Amount), e.Goal.Name, FormatAmount(e.Excess)),
		"Add anyway", "Cancel")
}

func (m GoalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = goalsStateBrowse
		m.form = nil

		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.state {
	case goalsStateForm:
		return m, m.saveCmd()
	case goalsStateFunds:
		amount, _ := decimal.NewFromString(strings.TrimSpace(*m.amount))
		return m, m.contributeCmd(m.selected(), goal.ContributeParams{Amount: amount})
	case goalsStateConfirmDelete:
		if *m.confirm {
			return m, m.deleteCmd(m.selected())
		}
	case goalsStateConfirmOverfund:
		if *m.confirm && m.overfund != nil {
			return m, m.contributeCmd(m.overfund.Goal, goal.ContributeParams{Amount: m.overfund.Amount, AllowOverfund: true})
		}
	}

	m.state = goalsStateBrowse
	m.form = nil

	return m, nil
}

func (m GoalsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Savings Goals") + "\n\n")

	if m.err != nil {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n")
	}

	if len(m.items) == 0 {
		sb.WriteString(faintStyle.Render("No savings goals yet. Press a to add one.") + "\n")
	}

	for i, gs := range m.items {
		sb.WriteString(m.goalView(gs, i == m.cursor) + "\n")
	}

	content := sb.String()

	if m.state != goalsStateBrowse && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(56).Render(m.form.View()))
	}

	if notices := renderNotices(m.notices); notices != "" {
		content = notices + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m GoalsModel) goalView(gs report.GoalSummary, selected bool) string {
	g, p := gs.Goal, gs.Progress

	name := g.Name
	if selected {
		name = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + name)
	} else {
		name = "  " + name
	}

	status := lipgloss.NewStyle().Foreground(toneColor(p.Status.Tone())).Render(string(p.Status))

	detail := fmt.Sprintf("%s of %s", FormatAmount(g.SavedAmount), FormatAmount(g.TargetAmount))
	if g.TargetDate != nil {
		detail += " by " + FormatDate(*g.TargetDate)
	}

	if p.Expected > 0 {
		detail += fmt.Sprintf(" (expected %d%%)", p.Expected)
	}

	return fmt.Sprintf("%s  %s\n    %s\n    %s\n", name, status, m.bar.ViewAs(float64(p.Percent)/100), faintStyle.Render(detail))
}

// Messages

type goalsLoadedMsg struct {
	items []report.GoalSummary
	err   error
}

type goalSavedMsg struct {
	notices []notify.Notice
	err     error
}

func (m GoalsModel) loadCmd() tea.Cmd {
	svc := m.reports

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		items, err := svc.GoalProgress(ctx)

		return goalsLoadedMsg{items: items, err: err}
	}
}

func (m GoalsModel) saveCmd() tea.Cmd {
	svc, mode, draft := m.goals, m.mode, *m.draft

	return func() tea.Msg {
		p, err := draft.params()
		if err != nil {
			return goalSavedMsg{err: err}
		}

		ctx, cancel, rec := recordingCtx()
		defer cancel()

		_, err = svc.Submit(ctx, mode, p)

		return goalSavedMsg{notices: rec.Notices(), err: err}
	}
}

func (m GoalsModel) contributeCmd(g *goal.Goal, p goal.ContributeParams) tea.Cmd {
	if g == nil {
		return nil
	}

	svc, id := m.goals, g.ID

	return func() tea.Msg {
		ctx, cancel, rec := recordingCtx()
		defer cancel()

		_, err := svc.Contribute(ctx, id, p)

		return goalSavedMsg{notices: rec.Notices(), err: err}
	}
}

func (m GoalsModel) deleteCmd(g *goal.Goal) tea.Cmd {
	if g == nil {
		return nil
	}

	svc, id := m.goals, g.ID

	return func() tea.Msg {
		ctx, cancel, rec := recordingCtx()
		defer cancel()

		err := svc.Delete(ctx, id)

		return goalSavedMsg{notices: rec.Notices(), err: err}
	}
}
