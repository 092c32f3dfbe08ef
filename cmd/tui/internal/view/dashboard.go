package view

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/report"
)

type dashboardState int

const (
	dashboardStateTimeframe dashboardState = iota
	dashboardStateSummary
)

type DashboardModel struct {
	CommonModel
	reports *report.Service

	state           dashboardState
	timeframePicker TimeframePicker
	from, to        *civil.Date

	summary *report.Summary
	bar     progress.Model
	loading bool
	err     error
}

func NewDashboardModel(svc *report.Service) DashboardModel {
	return DashboardModel{
		reports:         svc,
		timeframePicker: NewTimeframePicker(TimeframeThisWeek),
		bar:             progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage()),
	}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string {
	if m.state == dashboardStateTimeframe {
		return "Esc: back | Enter: select"
	}

	return "Esc: back | t: timeframe | r: refresh"
}

func (m DashboardModel) Init() tea.Cmd {
	return nil
}

type dashboardMsg struct {
	summary *report.Summary
	err     error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	svc, from, to := m.reports, m.from, m.to

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := svc.Dashboard(ctx, from, to)

		return dashboardMsg{summary: summary, err: err}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.from, m.to = msg.From, msg.To
		m.state = dashboardStateSummary
		m.loading = true

		return m, m.loadCmd()

	case dashboardMsg:
		m.loading = false
		m.summary, m.err = msg.summary, msg.err

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil
	}

	if m.state == dashboardStateTimeframe {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}

		var cmd tea.Cmd
		m.timeframePicker, cmd = m.timeframePicker.Update(msg)

		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "t":
			m.state = dashboardStateTimeframe
			m.timeframePicker.Reset()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.state == dashboardStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())
	}

	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.summary == nil {
		return ""
	}

	header := titleStyle.Render("Dashboard") + "  " + faintStyle.Render(rangeLabel(m.from, m.to))

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.totalsView()),
		panelStyle.Render(m.expensesView()),
	)

	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(m.recentView()),
		panelStyle.Render(m.goalsView()),
	)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, header, top, bottom))
}

func (m DashboardModel) totalsView() string {
	t := m.summary.Totals

	balance := successStyle.Render(FormatAmount(t.Balance))
	if t.Balance.IsNegative() {
		balance = errorStyle.Render(FormatAmount(t.Balance))
	}

	return fmt.Sprintf(
		"%s\n\nIncome:        %s\nExpenses:      %s\nBalance:       %s\nSavings rate:  %s%%",
		titleStyle.Render("Totals"),
		FormatAmount(t.Income),
		FormatAmount(t.Expenses),
		balance,
		m.summary.SavingsRate.StringFixed(1),
	)
}

func (m DashboardModel) expensesView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Expenses by Category") + "\n\n")

	if len(m.summary.Expenses) == 0 {
		sb.WriteString(faintStyle.Render("No expenses in this period."))
		return sb.String()
	}

	for _, g := range m.summary.Expenses {
		share := 0.0
		if m.summary.Totals.Expenses.IsPositive() {
			share = g.Total.Div(m.summary.Totals.Expenses).InexactFloat64()
		}

		fmt.Fprintf(&sb, "%-14s %10s  %s\n", g.Key, FormatAmount(g.Total), m.bar.ViewAs(share))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (m DashboardModel) recentView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Recent Transactions") + "\n\n")

	if len(m.summary.Recent) == 0 {
		sb.WriteString(faintStyle.Render("No transactions yet."))
		return sb.String()
	}

	for _, tx := range m.summary.Recent {
		fmt.Fprintf(&sb, "%-13s %-24s %10s\n", FormatDate(tx.Date), truncate(tx.Description, 24), FormatAmount(tx.Amount))
	}

	return strings.TrimRight(sb.String(), "\n")
}

func (m DashboardModel) goalsView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Savings Goals") + "\n\n")

	if len(m.summary.Goals) == 0 {
		sb.WriteString(faintStyle.Render("No savings goals yet."))
		return sb.String()
	}

	for _, gs := range m.summary.Goals {
		status := lipgloss.NewStyle().Foreground(toneColor(gs.Progress.Status.Tone())).Render(string(gs.Progress.Status))
		fmt.Fprintf(&sb, "%s  %s\n%s %3d%%\n",
			gs.Goal.Name, status,
			m.bar.ViewAs(float64(gs.Progress.Percent)/100), gs.Progress.Percent,
		)
	}

	return strings.TrimRight(sb.String(), "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
