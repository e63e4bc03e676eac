package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/campusdesk/internal/browser"
	"github.com/naveenspark/campusdesk/pkg/client"
	"github.com/naveenspark/campusdesk/pkg/domain"
)

type view int

const (
	viewLogin view = iota
	viewHome
	viewRecords
	viewCreate
)

// userLoadedMsg carries the result of verifying the stored session.
type userLoadedMsg struct {
	user *domain.User
	err  error
}

// sessionInvalidatedMsg is delivered by the gateway's invalidation handler
// once the session has been cleared.
type sessionInvalidatedMsg struct {
	reason client.InvalidationReason
}

// noticeMsg shows a one-line message under the header.
type noticeMsg string

const expiredNotice = "your session has expired, please sign in again"

// App is the root Bubbletea model.
type App struct {
	gateway *client.Gateway
	webURL  string
	view    view
	login   loginModel
	home    homeModel
	records recordsModel
	create  createModel
	user    *domain.User
	notice  string
	width   int
	height  int
	frame   int // logo shimmer animation frame
}

// NewApp creates the console. It starts on the home view when a session is
// stored and on the login view otherwise.
func NewApp(g *client.Gateway, webURL string) App {
	a := App{
		gateway: g,
		webURL:  webURL,
		login:   newLoginModel(g, ""),
		home:    newHomeModel(g),
		records: newRecordsModel(g, kindStudents),
		create:  newCreateModel(g, kindStudents),
	}
	if g != nil && g.HasSession() {
		a.view = viewHome
		a.notice = "verifying session..."
	}
	return a
}

// NotifyInvalidated returns a gateway invalidation handler that routes p to
// the login view.
func NotifyInvalidated(p *tea.Program) client.InvalidationHandler {
	return func(reason client.InvalidationReason) {
		p.Send(sessionInvalidatedMsg{reason: reason})
	}
}

func (a App) Init() tea.Cmd {
	if a.view == viewLogin {
		return tea.Batch(shimmerTickCmd(), a.login.Init())
	}
	return tea.Batch(shimmerTickCmd(), a.loadUser())
}

func (a App) loadUser() tea.Cmd {
	g := a.gateway
	return func() tea.Msg {
		user, err := g.CurrentUser(context.Background())
		return userLoadedMsg{user: user, err: err}
	}
}

// toLogin resets the console to the login view.
func (a App) toLogin(notice string) (App, tea.Cmd) {
	a.user = nil
	a.home.user = nil
	a.notice = ""
	a.view = viewLogin
	a.login = newLoginModel(a.gateway, notice)
	a.login, _ = a.login.Update(tea.WindowSizeMsg{Width: a.width, Height: a.bodyHeight()})
	return a, a.login.Init()
}

func (a App) toHome() (App, tea.Cmd) {
	a.view = viewHome
	return a, a.home.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: a.bodyHeight()}
		a.login, _ = a.login.Update(bodyMsg)
		a.home, _ = a.home.Update(bodyMsg)
		a.records, _ = a.records.Update(bodyMsg)
		a.create, _ = a.create.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case noticeMsg:
		a.notice = string(msg)
		return a, nil

	case userLoadedMsg:
		switch {
		case msg.err != nil:
			// The token is kept; only a rejected token ends the session.
			a.notice = "could not verify session: " + msg.err.Error()
			return a.toHome()
		case msg.user == nil:
			return a.toLogin(expiredNotice)
		}
		a.notice = ""
		a.user = msg.user
		a.home.user = msg.user
		return a.toHome()

	case loginResultMsg:
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg)
		if !msg.outcome.Success {
			return a, cmd
		}
		a.notice = ""
		a.user = msg.outcome.User
		a.home.user = msg.outcome.User
		return a.toHome()

	case sessionInvalidatedMsg:
		if a.view == viewLogin && a.user == nil {
			return a, nil
		}
		notice := expiredNotice
		if msg.reason == client.ReasonLogout {
			notice = "signed out"
		}
		return a.toLogin(notice)

	case logoutRequestMsg:
		g := a.gateway
		a.notice = "signing out..."
		return a, func() tea.Msg {
			g.Logout(context.Background())
			return sessionInvalidatedMsg{reason: client.ReasonLogout}
		}

	case openRecordsMsg:
		a.view = viewRecords
		a.records = newRecordsModel(a.gateway, msg.kind)
		a.records, _ = a.records.Update(tea.WindowSizeMsg{Width: a.width, Height: a.bodyHeight()})
		a.records.startLoading()
		return a, a.records.Init()

	case openWebMsg:
		section := msg.section
		webURL := a.webURL
		return a, func() tea.Msg {
			u, err := browser.SectionURL(webURL, section)
			if err == nil {
				err = browser.Open(u)
			}
			if err != nil {
				return noticeMsg("could not open browser: " + err.Error())
			}
			return noticeMsg("opened " + u)
		}

	case backToHomeMsg:
		return a.toHome()

	case createRequestMsg:
		a.view = viewCreate
		a.create = newCreateModel(a.gateway, msg.kind)
		a.create, _ = a.create.Update(tea.WindowSizeMsg{Width: a.width, Height: a.bodyHeight()})
		return a, a.create.Init()

	case editRequestMsg:
		a.view = viewCreate
		a.create = newEditModel(a.gateway, msg.kind, msg.id)
		a.create, _ = a.create.Update(tea.WindowSizeMsg{Width: a.width, Height: a.bodyHeight()})
		return a, a.create.Init()

	case createCancelledMsg:
		a.view = viewRecords
		return a, nil

	case recordCreatedMsg:
		if msg.err != nil {
			var cmd tea.Cmd
			a.create, cmd = a.create.Update(msg)
			return a, cmd
		}
		a.view = viewRecords
		a.records.status = fmt.Sprintf("created %s %s", msg.kind.singular(), msg.label)
		a.records.startLoading()
		return a, tea.Batch(a.records.spinner.Tick, a.records.load())

	case recordUpdatedMsg:
		if msg.err != nil {
			var cmd tea.Cmd
			a.create, cmd = a.create.Update(msg)
			return a, cmd
		}
		a.view = viewRecords
		if msg.unchanged {
			a.records.status = "no changes to " + msg.label
			return a, nil
		}
		a.records.status = fmt.Sprintf("updated %s %s", msg.kind.singular(), msg.label)
		a.records.startLoading()
		return a, tea.Batch(a.records.spinner.Tick, a.records.load())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "o":
				if a.view == viewRecords {
					return a, emit(openWebMsg{section: a.records.kind.section()})
				}
			}
		}
	}

	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewHome:
		a.home, cmd = a.home.Update(msg)
	case viewRecords:
		a.records, cmd = a.records.Update(msg)
	case viewCreate:
		a.create, cmd = a.create.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether keys belong to a form or prompt.
func (a App) isEditing() bool {
	switch a.view {
	case viewLogin, viewCreate:
		return true
	case viewRecords:
		return a.records.capturing()
	}
	return false
}

// Chrome: header(2) + notice(1) + help(1) = 4 lines
const chromeLines = 4

func (a App) bodyHeight() int {
	return a.height - chromeLines
}

func (a App) View() string {
	logo := renderShimmerLogo(a.frame)
	pad := (a.width - lipgloss.Width(logo)) / 2
	if pad < 0 {
		pad = 0
	}
	header := strings.Repeat(" ", pad) + logo + "\n"
	if a.user != nil {
		who := dimStyle.Render(a.user.Username) + " " + RoleBadge(a.user.Role())
		wpad := (a.width - lipgloss.Width(who)) / 2
		if wpad < 0 {
			wpad = 0
		}
		header += strings.Repeat(" ", wpad) + who
	}

	var body, help string
	switch a.view {
	case viewLogin:
		body = a.login.View()
		help = helpBar("tab", "next", "enter", "submit", "ctrl+c", "quit")
	case viewHome:
		body = a.home.View()
		help = helpBar("j/k", "nav", "enter", "open", "1-3", "sections", "o", "web", "r", "refresh", "L", "log out", "q", "quit")
	case viewRecords:
		body = a.records.View()
		switch {
		case a.records.finding:
			help = helpBar("enter", "find", "esc", "cancel")
		case a.records.confirm:
			help = helpBar("y", "delete", "any key", "keep")
		default:
			help = helpBar("j/k", "nav", "/", "find", "n", "new", "e", "edit", "d", "delete", "r", "reload", "o", "web", "esc", "back", "q", "quit")
		}
	case viewCreate:
		body = a.create.View()
		if a.create.form == nil {
			help = helpBar("esc", "back")
		} else {
			help = helpBar("tab", "next", "enter", "submit", "esc", "cancel")
		}
	}

	notice := ""
	if a.notice != "" {
		notice = " " + metaStyle.Render(a.notice)
	}

	body = strings.TrimRight(truncateToHeight(body, a.bodyHeight()), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, notice, body, help)
}
