package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/campusdesk/pkg/client"
	"github.com/naveenspark/campusdesk/pkg/domain"
)

type overviewMsg struct {
	overview *client.Overview
}

// Navigation requests raised by the home menu and handled by App.
type (
	openRecordsMsg   struct{ kind recordKind }
	openWebMsg       struct{ section string }
	logoutRequestMsg struct{}
)

type menuItem struct {
	key   string
	label string
	msg   tea.Msg
}

var homeMenu = []menuItem{
	{"1", "Students", openRecordsMsg{kind: kindStudents}},
	{"2", "Teachers", openRecordsMsg{kind: kindTeachers}},
	{"3", "Events", openRecordsMsg{kind: kindEvents}},
	{"o", "Open web console", openWebMsg{}},
	{"L", "Log out", logoutRequestMsg{}},
}

type homeModel struct {
	gateway  *client.Gateway
	user     *domain.User
	overview *client.Overview
	cursor   int
	width    int
	height   int
}

func newHomeModel(g *client.Gateway) homeModel {
	return homeModel{gateway: g}
}

func (m homeModel) Init() tea.Cmd {
	g := m.gateway
	if g == nil {
		return nil
	}
	return func() tea.Msg {
		return overviewMsg{overview: g.Overview(context.Background())}
	}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case overviewMsg:
		m.overview = msg.overview

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "j", "down":
			if m.cursor < len(homeMenu)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			return m, emit(homeMenu[m.cursor].msg)
		case "r":
			return m, m.Init()
		default:
			for _, item := range homeMenu {
				if item.key == key {
					return m, emit(item.msg)
				}
			}
		}
	}
	return m, nil
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func (m homeModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if m.user != nil {
		fmt.Fprintf(&b, "  %s %s %s\n\n",
			dimStyle.Render("signed in as"),
			selectedStyle.Render(m.user.Username),
			RoleBadge(m.user.Role()))
	}

	b.WriteString("  " + sectionHeaderStyle.Render("Sections") + "\n")
	for i, item := range homeMenu {
		prefix := "    "
		label := normalStyle.Render(item.label)
		if i == m.cursor {
			prefix = "  " + accentStyle.Render("> ")
			label = selectedStyle.Render(item.label)
		}
		fmt.Fprintf(&b, "%s%s  %s\n", prefix, metaStyle.Render(item.key), label)
	}

	b.WriteString("\n  " + sectionHeaderStyle.Render("Statistics") + "\n")
	o := m.overview
	if o == nil {
		b.WriteString("    " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}

	if s := o.Staff; s != nil {
		statLine(&b, "staff", fmt.Sprintf("%s students (%d active)   %s teachers (%d active)",
			selectedStyle.Render(fmt.Sprint(s.TotalStudents)), s.ActiveStudents,
			selectedStyle.Render(fmt.Sprint(s.TotalTeachers)), s.ActiveTeachers))
		breakdownLine(&b, "by faculty", s.StudentsByFaculty)
	} else {
		statError(&b, "staff", o.Errors[client.ServiceStaff])
	}

	if s := o.Applicants; s != nil {
		statLine(&b, "applicants", fmt.Sprintf("%s applicants   %d new   %d enrolled",
			selectedStyle.Render(fmt.Sprint(s.TotalApplicants)), s.NewApplicants, s.EnrolledApplicants))
	} else {
		statError(&b, "applicants", o.Errors[client.ServiceApplicants])
	}

	if s := o.Events; s != nil {
		statLine(&b, "events", fmt.Sprintf("%s events   %d published   %d completed",
			selectedStyle.Render(fmt.Sprint(s.TotalEvents)), s.PublishedEvents, s.CompletedEvents))
		breakdownLine(&b, "by category", s.EventsByCategory)
	} else {
		statError(&b, "events", o.Errors[client.ServiceEvents])
	}

	if s := o.Certificates; s != nil {
		statLine(&b, "certificates", fmt.Sprintf("%s certificates   %d pending   %d issued",
			selectedStyle.Render(fmt.Sprint(s.TotalCertificates)), s.PendingCertificates, s.IssuedCertificates))
	} else {
		statError(&b, "certificates", o.Errors[client.ServiceCertificates])
	}

	if s := o.Library; s != nil {
		statLine(&b, "library", fmt.Sprintf("%s books   %d of %d copies available",
			selectedStyle.Render(fmt.Sprint(s.TotalBooks)), s.AvailableCopies, s.TotalCopies))
	} else {
		statError(&b, "library", o.Errors[client.ServiceLibrary])
	}
	return b.String()
}

func statLine(b *strings.Builder, name, text string) {
	fmt.Fprintf(b, "    %s %s\n", metaStyle.Render(fmt.Sprintf("%-13s", name)), text)
}

func statError(b *strings.Builder, name, reason string) {
	statLine(b, name, errorStyle.Render(reason))
}

func breakdownLine(b *strings.Builder, label string, counts map[string]int) {
	if line := countsLine(counts); line != "" {
		fmt.Fprintf(b, "    %s %s\n", strings.Repeat(" ", 13), dimStyle.Render(label+": "+line))
	}
}

// countsLine renders a breakdown as "a 3, b 1" sorted by key.
func countsLine(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}
