package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/logger"
)

type model struct {
	app      *app.App
	appName  string
	username string
	size     tea.WindowSizeMsg

	currentView View

	loginView        view.LoginModel
	dashboardView    view.DashboardModel
	transactionsView view.TransactionsModel
	importView       view.ImportModel
	goalsView        view.GoalsModel
	exportView       view.ExportModel
}

type View int

const (
	ViewLogin        View = 0
	ViewMenu         View = 1
	ViewDashboard    View = 2
	ViewTransactions View = 3
	ViewImport       View = 4
	ViewGoals        View = 5
	ViewExport       View = 6
)

func initialModel(a *app.App, cfg *config.Config) model {
	return model{
		app:         a,
		appName:     cfg.App.Name,
		currentView: ViewLogin,
		loginView:   view.NewLoginModel(a.Sessions),
	}
}

func (m model) Init() tea.Cmd {
	return m.loginView.Init()
}

// open replaces the screen for v with a fresh model and returns its Init
// command, so every visit reloads from storage.
func (m *model) open(v View) tea.Cmd {
	m.currentView = v

	var cmd tea.Cmd

	switch v {
	case ViewDashboard:
		m.dashboardView = view.NewDashboardModel(m.app.Reports)
		cmd = m.dashboardView.Init()
	case ViewTransactions:
		m.transactionsView = view.NewTransactionsModel(m.app.Transactions)
		cmd = m.transactionsView.Init()
	case ViewImport:
		m.importView = view.NewImportModel(m.app.Imports)
		cmd = m.importView.Init()
	case ViewGoals:
		m.goalsView = view.NewGoalsModel(m.app.Goals, m.app.Reports)
		cmd = m.goalsView.Init()
	case ViewExport:
		m.exportView = view.NewExportModel(m.app.Exports, m.app.Transactions)
		cmd = m.exportView.Init()
	}

	if m.size.Width > 0 {
		size := m.size
		cmd = tea.Batch(cmd, func() tea.Msg { return size })
	}

	return cmd
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			return m.updateMenu(msg)
		}
	case tea.WindowSizeMsg:
		m.size = msg
	case view.LoggedInMsg:
		m.username = msg.Username
		m.currentView = ViewMenu

		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	var cmd tea.Cmd

	switch m.currentView {
	case ViewLogin:
		var newModel tea.Model
		newModel, cmd = m.loginView.Update(msg)
		m.loginView = newModel.(view.LoginModel)
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewGoals:
		var newModel tea.Model
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		return m, m.open(ViewDashboard)
	case "2":
		return m, m.open(ViewTransactions)
	case "3":
		return m, m.open(ViewImport)
	case "4":
		return m, m.open(ViewGoals)
	case "5":
		return m, m.open(ViewExport)
	case "l":
		ctx, cancel := view.DbCtx()
		defer cancel()

		if err := m.app.Sessions.Logout(ctx); err != nil {
			slog.Error("failed to log out", "error", err)
		}

		m.username = ""
		m.currentView = ViewLogin
		m.loginView = view.NewLoginModel(m.app.Sessions)

		return m, m.loginView.Init()
	}

	return m, nil
}

func (m model) View() string {
	switch m.currentView {
	case ViewLogin:
		return m.loginView.View()
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s  (signed in as %s)\n\n", m.appName, m.username) +
				"1. Dashboard\n" +
				"2. Transactions\n" +
				"3. Import CSV\n" +
				"4. Savings Goals\n" +
				"5. Export Transactions\n\n" +
				"l. Log out\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewTransactions:
		return m.transactionsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewGoals:
		return m.goalsView.View()
	case ViewExport:
		return m.exportView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.Log.File, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(logger.New(logFile, cfg.Log.Level))

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		fmt.Fprintln(os.Stderr, "failed to open storage:", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(initialModel(a, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
