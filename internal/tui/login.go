package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/naveenspark/campusdesk/pkg/client"
)

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	outcome client.Outcome
}

// credentials is shared with the huh form, which writes through pointers.
type credentials struct {
	username string
	password string
}

type loginModel struct {
	gateway    *client.Gateway
	form       *huh.Form
	creds      *credentials
	submitting bool
	reason     string // failure reason from the last attempt
	notice     string // why the user was sent here
	width      int
}

func newLoginModel(g *client.Gateway, notice string) loginModel {
	creds := &credentials{}
	return loginModel{
		gateway: g,
		form:    newLoginForm(creds),
		creds:   creds,
		notice:  notice,
	}
}

func newLoginForm(creds *credentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&creds.username).
				Validate(required("username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&creds.password).
				Validate(required("password")),
		).Title("Sign in").
			Description("Use your campus account"),
	).WithTheme(formTheme()).WithShowHelp(false)
}

func (m loginModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.form = m.form.WithWidth(min(msg.Width, 60))
		return m, nil

	case loginResultMsg:
		m.submitting = false
		if msg.outcome.Success {
			return m, nil
		}
		m.reason = msg.outcome.Reason
		m.notice = ""
		m.creds.password = ""
		m.form = newLoginForm(m.creds)
		return m, m.form.Init()
	}

	if m.submitting {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.submitting = true
		m.reason = ""
		return m, m.submit()
	}
	return m, cmd
}

func (m loginModel) submit() tea.Cmd {
	g := m.gateway
	username := strings.TrimSpace(m.creds.username)
	password := m.creds.password
	return func() tea.Msg {
		return loginResultMsg{outcome: g.Login(context.Background(), username, password)}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString("  " + warnStyle.Render(m.notice) + "\n\n")
	}
	if m.submitting {
		b.WriteString("  " + dimStyle.Render("signing in as "+m.creds.username+"...") + "\n")
		return b.String()
	}
	b.WriteString(m.form.View())
	if m.reason != "" {
		b.WriteString("\n  " + errorStyle.Render(m.reason) + "\n")
	}
	return b.String()
}
