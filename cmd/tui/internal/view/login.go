package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/session"
)

// LoggedInMsg is emitted once a session exists, either restored or new.
type LoggedInMsg struct {
	Username string
}

type LoginModel struct {
	CommonModel
	sessions *session.Service

	form  *huh.Form
	creds *session.Credentials

	submitting bool
	err        error
}

func NewLoginModel(svc *session.Service) LoginModel {
	m := LoginModel{sessions: svc, creds: &session.Credentials{}}
	m.form = m.buildForm()

	return m
}

func (m LoginModel) Title() string { return "Sign In" }

func (m LoginModel) ShortHelp() string { return "Enter: next | ctrl+c: quit" }

// Init restores a remembered session before showing the form.
func (m LoginModel) Init() tea.Cmd {
	svc := m.sessions

	return tea.Batch(m.form.Init(), func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		sess, err := svc.Current(ctx)
		if err != nil || !sess.RememberMe {
			return nil
		}

		return LoggedInMsg{Username: sess.Username}
	})
}

func (m LoginModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("username").
				Title("Username").
				Value(&m.creds.Username),

			huh.NewInput().
				Key("password").
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.creds.Password),

			huh.NewConfirm().
				Key("remember_me").
				Title("Remember me?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.creds.RememberMe),
		),
	).WithWidth(40).WithShowHelp(false)
}

type loginResultMsg struct {
	username string
	err      error
}

func (m LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(loginResultMsg); ok {
		m.submitting = false

		if msg.err != nil {
			m.err = msg.err
			m.creds.Password = ""
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, func() tea.Msg { return LoggedInMsg{Username: msg.username} }
	}

	if m.submitting {
		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if f, ok := f.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.submitting = true
	creds := *m.creds
	svc := m.sessions

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tok, err := svc.Login(ctx, creds)
		if err != nil {
			return loginResultMsg{err: err}
		}

		return loginResultMsg{username: tok.Username}
	}
}

func (m LoginModel) View() string {
	content := titleStyle.Render("Tally") + "\n" + faintStyle.Render("Sign in to continue") + "\n\n"

	if m.submitting {
		content += "Signing in..."
	} else {
		content += m.form.View()
	}

	if m.err != nil {
		content += "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}
