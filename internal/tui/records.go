package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/campusdesk/pkg/client"
	"github.com/naveenspark/campusdesk/pkg/domain"
)

type recordKind int

const (
	kindStudents recordKind = iota
	kindTeachers
	kindEvents
)

func (k recordKind) String() string {
	switch k {
	case kindStudents:
		return "students"
	case kindTeachers:
		return "teachers"
	default:
		return "events"
	}
}

func (k recordKind) singular() string {
	return strings.TrimSuffix(k.String(), "s")
}

// section is the web console page that manages this kind of record.
func (k recordKind) section() string {
	if k == kindEvents {
		return "events"
	}
	return "management"
}

// findPrompt names what "/" searches by.
func (k recordKind) findPrompt() string {
	switch k {
	case kindStudents:
		return "student number"
	case kindTeachers:
		return "teacher number"
	default:
		return "event id"
	}
}

func (k recordKind) columns() []table.Column {
	switch k {
	case kindStudents:
		return []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Number", Width: 12},
			{Title: "Name", Width: 24},
			{Title: "Group", Width: 10},
			{Title: "Course", Width: 6},
			{Title: "Status", Width: 10},
			{Title: "Added", Width: 9},
		}
	case kindTeachers:
		return []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Number", Width: 12},
			{Title: "Name", Width: 24},
			{Title: "Department", Width: 18},
			{Title: "Status", Width: 10},
			{Title: "Added", Width: 9},
		}
	default:
		return []table.Column{
			{Title: "ID", Width: 5},
			{Title: "Title", Width: 28},
			{Title: "Date", Width: 10},
			{Title: "Category", Width: 12},
			{Title: "Status", Width: 10},
			{Title: "Seats", Width: 7},
		}
	}
}

// recordsLoadedMsg carries a listing or find result. ids[i] is the record id
// of rows[i].
type recordsLoadedMsg struct {
	kind recordKind
	rows []table.Row
	ids  []int
	find string
	err  error
}

type recordDeletedMsg struct {
	kind  recordKind
	id    int
	label string
	err   error
}

// Navigation requests raised by the records view and handled by App.
type (
	createRequestMsg struct{ kind recordKind }
	backToHomeMsg    struct{}
)

// editRequestMsg asks App to open the form for an existing record.
type editRequestMsg struct {
	kind recordKind
	id   int
}

type recordsModel struct {
	gateway  *client.Gateway
	kind     recordKind
	table    table.Model
	spinner  spinner.Model
	find     textinput.Model
	ids      []int
	loading  bool
	finding  bool
	confirm  bool // waiting for y/n on delete
	filtered string
	status   string
	err      string
	width    int
	height   int
}

func newRecordsModel(g *client.Gateway, kind recordKind) recordsModel {
	t := table.New(
		table.WithColumns(kind.columns()),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#e4e4ec")).
		Background(lipgloss.Color("#1e3a5f")).
		Bold(false)
	t.SetStyles(styles)

	ti := textinput.New()
	ti.Placeholder = kind.findPrompt()
	ti.Prompt = "/ "
	ti.CharLimit = 32

	return recordsModel{
		gateway: g,
		kind:    kind,
		table:   t,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		find:    ti,
	}
}

func (m recordsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// capturing reports whether the view is consuming keys that would otherwise
// be global.
func (m recordsModel) capturing() bool {
	return m.finding || m.confirm
}

func (m *recordsModel) startLoading() {
	m.loading = true
	m.err = ""
}

func (m recordsModel) load() tea.Cmd {
	g, kind := m.gateway, m.kind
	return func() tea.Msg {
		ctx := context.Background()
		msg := recordsLoadedMsg{kind: kind}
		switch kind {
		case kindStudents:
			list, err := g.ListStudents(ctx, domain.StudentFilter{Limit: 100})
			msg.rows, msg.ids, msg.err = studentRows(list), studentIDs(list), err
		case kindTeachers:
			list, err := g.ListTeachers(ctx, domain.TeacherFilter{Limit: 100})
			msg.rows, msg.ids, msg.err = teacherRows(list), teacherIDs(list), err
		default:
			list, err := g.ListEvents(ctx, domain.EventFilter{Limit: 100})
			msg.rows, msg.ids, msg.err = eventRows(list), eventIDs(list), err
		}
		return msg
	}
}

func (m recordsModel) lookup(query string) tea.Cmd {
	g, kind := m.gateway, m.kind
	return func() tea.Msg {
		ctx := context.Background()
		msg := recordsLoadedMsg{kind: kind, find: query}
		switch kind {
		case kindStudents:
			s, err := g.FindStudent(ctx, query)
			if err != nil {
				msg.err = err
				return msg
			}
			msg.rows, msg.ids = studentRows([]domain.Student{*s}), []int{s.ID}
		case kindTeachers:
			t, err := g.FindTeacher(ctx, query)
			if err != nil {
				msg.err = err
				return msg
			}
			msg.rows, msg.ids = teacherRows([]domain.Teacher{*t}), []int{t.ID}
		default:
			id, err := strconv.Atoi(query)
			if err != nil {
				msg.err = errors.New("event id must be a number")
				return msg
			}
			e, err := g.GetEvent(ctx, id)
			if err != nil {
				msg.err = err
				return msg
			}
			msg.rows, msg.ids = eventRows([]domain.Event{*e}), []int{e.ID}
		}
		return msg
	}
}

func (m recordsModel) remove(id int, label string) tea.Cmd {
	g, kind := m.gateway, m.kind
	return func() tea.Msg {
		ctx := context.Background()
		var err error
		switch kind {
		case kindStudents:
			err = g.DeleteStudent(ctx, id)
		case kindTeachers:
			err = g.DeleteTeacher(ctx, id)
		default:
			err = g.DeleteEvent(ctx, id)
		}
		return recordDeletedMsg{kind: kind, id: id, label: label, err: err}
	}
}

// selected returns the id and display label of the highlighted row.
func (m recordsModel) selected() (int, string, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.ids) {
		return 0, "", false
	}
	row := m.table.SelectedRow()
	label := fmt.Sprintf("#%d", m.ids[i])
	if len(row) > 2 {
		label = row[2]
		if m.kind == kindEvents {
			label = row[1]
		}
	}
	return m.ids[i], label, true
}

func (m recordsModel) Update(msg tea.Msg) (recordsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - 6; h > 3 {
			m.table.SetHeight(h)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case recordsLoadedMsg:
		if msg.kind != m.kind {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			if errors.Is(msg.err, client.ErrNotFound) {
				m.err = fmt.Sprintf("no %s with %s %q", m.kind.singular(), m.kind.findPrompt(), msg.find)
			} else {
				m.err = msg.err.Error()
			}
			return m, nil
		}
		m.ids = msg.ids
		m.table.SetRows(msg.rows)
		m.table.SetCursor(0)
		m.filtered = msg.find
		m.err = ""
		return m, nil

	case recordDeletedMsg:
		if msg.kind != m.kind {
			return m, nil
		}
		if msg.err != nil {
			m.err = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.status = "deleted " + msg.label
		m.startLoading()
		return m, tea.Batch(m.spinner.Tick, m.load())

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m recordsModel) updateKeys(msg tea.KeyMsg) (recordsModel, tea.Cmd) {
	if m.finding {
		switch msg.String() {
		case "esc":
			m.finding = false
			m.find.Blur()
			return m, nil
		case "enter":
			query := strings.TrimSpace(m.find.Value())
			m.finding = false
			m.find.Blur()
			if query == "" {
				return m, nil
			}
			m.status = ""
			m.startLoading()
			return m, tea.Batch(m.spinner.Tick, m.lookup(query))
		}
		var cmd tea.Cmd
		m.find, cmd = m.find.Update(msg)
		return m, cmd
	}

	if m.confirm {
		m.confirm = false
		if msg.String() != "y" {
			m.status = "delete cancelled"
			return m, nil
		}
		id, label, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.status = "deleting " + label + "..."
		return m, m.remove(id, label)
	}

	m.status = ""
	switch msg.String() {
	case "esc":
		if m.filtered != "" {
			m.filtered = ""
			m.startLoading()
			return m, tea.Batch(m.spinner.Tick, m.load())
		}
		return m, emit(backToHomeMsg{})
	case "/":
		m.finding = true
		m.find.SetValue("")
		return m, m.find.Focus()
	case "d":
		if _, label, ok := m.selected(); ok {
			m.confirm = true
			m.status = "delete " + label + "? y/n"
		}
		return m, nil
	case "n":
		return m, emit(createRequestMsg{kind: m.kind})
	case "e", "enter":
		if id, _, ok := m.selected(); ok {
			return m, emit(editRequestMsg{kind: m.kind, id: id})
		}
		return m, nil
	case "r":
		m.startLoading()
		return m, tea.Batch(m.spinner.Tick, m.load())
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m recordsModel) View() string {
	var b strings.Builder
	title := sectionHeaderStyle.Render(strings.ToUpper(m.kind.String()))
	if m.filtered != "" {
		title += dimStyle.Render(fmt.Sprintf("  %s %q (esc to clear)", m.kind.findPrompt(), m.filtered))
	}
	b.WriteString("\n  " + title)
	if m.loading {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n\n")

	if len(m.ids) == 0 && !m.loading && m.err == "" {
		b.WriteString("  " + dimStyle.Render("no "+m.kind.String()+" yet. press n to add one") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}

	switch {
	case m.finding:
		b.WriteString("\n  " + m.find.View() + "\n")
	case m.err != "":
		b.WriteString("\n  " + errorStyle.Render(m.err) + "\n")
	case m.confirm:
		b.WriteString("\n  " + warnStyle.Render(m.status) + "\n")
	case m.status != "":
		b.WriteString("\n  " + successStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func studentRows(list []domain.Student) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, s := range list {
		course := "-"
		if s.Course > 0 {
			course = strconv.Itoa(s.Course)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(s.ID),
			s.StudentNumber,
			truncStr(s.Name, 24),
			orDash(s.GroupName),
			course,
			s.Status,
			formatTime(s.CreatedAt),
		})
	}
	return rows
}

func studentIDs(list []domain.Student) []int {
	ids := make([]int, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	return ids
}

func teacherRows(list []domain.Teacher) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, t := range list {
		rows = append(rows, table.Row{
			strconv.Itoa(t.ID),
			t.TeacherNumber,
			truncStr(t.Name, 24),
			truncStr(orDash(t.Department), 18),
			t.Status,
			formatTime(t.CreatedAt),
		})
	}
	return rows
}

func teacherIDs(list []domain.Teacher) []int {
	ids := make([]int, len(list))
	for i, t := range list {
		ids[i] = t.ID
	}
	return ids
}

func eventRows(list []domain.Event) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, e := range list {
		seats := fmt.Sprint(e.ParticipantsCount)
		if e.MaxParticipants > 0 {
			seats = fmt.Sprintf("%d/%d", e.ParticipantsCount, e.MaxParticipants)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(e.ID),
			truncStr(e.Title, 28),
			e.Date,
			e.Category,
			e.Status,
			seats,
		})
	}
	return rows
}

func eventIDs(list []domain.Event) []int {
	ids := make([]int, len(list))
	for i, e := range list {
		ids[i] = e.ID
	}
	return ids
}
