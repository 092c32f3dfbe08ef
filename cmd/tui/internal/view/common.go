package view

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/notify"
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	panelStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// recordingCtx returns a DbCtx whose service notices are collected in the
// returned recorder so the screen can show them.
func recordingCtx() (context.Context, context.CancelFunc, *notify.Recorder) {
	ctx, cancel := DbCtx()
	rec := &notify.Recorder{}

	return notify.WithRecorder(ctx, rec), cancel, rec
}

func renderNotices(notices []notify.Notice) string {
	lines := make([]string, 0, len(notices))

	for _, n := range notices {
		switch n.Severity {
		case notify.SeverityError:
			lines = append(lines, errorStyle.Render(n.Message))
		case notify.SeveritySuccess:
			lines = append(lines, successStyle.Render(n.Message))
		default:
			lines = append(lines, n.Message)
		}
	}

	return strings.Join(lines, "\n")
}
