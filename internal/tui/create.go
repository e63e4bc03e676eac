package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/naveenspark/campusdesk/pkg/client"
	"github.com/naveenspark/campusdesk/pkg/domain"
)

// recordCreatedMsg reports the result of a create submission.
type recordCreatedMsg struct {
	kind  recordKind
	label string
	err   error
}

// recordUpdatedMsg reports the result of an edit submission. unchanged is
// set when the form was submitted without changes and nothing was sent.
type recordUpdatedMsg struct {
	kind      recordKind
	label     string
	unchanged bool
	err       error
}

// createCancelledMsg is sent when the user leaves the form.
type createCancelledMsg struct{ kind recordKind }

// formDataMsg delivers what a form needs before it opens: the record being
// edited, if any, and suggestions for the group or department field.
type formDataMsg struct {
	kind    recordKind
	fields  *recordFields
	options []string
	err     error
}

// recordFields backs every create and edit form. huh writes through pointers
// into it.
type recordFields struct {
	number     string
	name       string
	group      string
	email      string
	faculty    string
	course     string
	department string
	position   string
	status     string

	title     string
	date      string
	time      string
	location  string
	category  string
	organizer string
	seats     string
}

// createModel is the create and edit form for one record kind. editID is
// zero when creating.
type createModel struct {
	gateway    *client.Gateway
	kind       recordKind
	editID     int
	form       *huh.Form
	fields     *recordFields
	original   recordFields
	options    []string
	loading    bool
	submitting bool
	err        string
	width      int
}

func newCreateModel(g *client.Gateway, kind recordKind) createModel {
	fields := &recordFields{status: "active"}
	if kind == kindEvents {
		fields.status = "draft"
		fields.category = domain.EventCategories[0]
	}
	m := createModel{
		gateway: g,
		kind:    kind,
		fields:  fields,
	}
	if g != nil && kind != kindEvents {
		m.loading = true
		return m
	}
	m.form = newCreateForm(kind, fields, nil, false)
	return m
}

// newEditModel opens the form for an existing record. The record is fetched
// by Init.
func newEditModel(g *client.Gateway, kind recordKind, id int) createModel {
	return createModel{
		gateway: g,
		kind:    kind,
		editID:  id,
		fields:  &recordFields{},
		loading: true,
	}
}

func (m createModel) editing() bool {
	return m.editID > 0
}

func newCreateForm(kind recordKind, f *recordFields, options []string, editing bool) *huh.Form {
	verb := "New"
	if editing {
		verb = "Edit"
	}
	var group *huh.Group
	switch kind {
	case kindStudents:
		group = huh.NewGroup(
			huh.NewInput().Title("Student number").Value(&f.number).Validate(required("student number")),
			huh.NewInput().Title("Full name").Value(&f.name).Validate(required("name")),
			huh.NewInput().Title("Group").Value(&f.group).Suggestions(options).Validate(required("group")),
			huh.NewInput().Title("Email").Value(&f.email),
			huh.NewInput().Title("Faculty").Value(&f.faculty),
			huh.NewInput().Title("Course").Placeholder("1-6").Value(&f.course).Validate(validCourse),
			huh.NewSelect[string]().Title("Status").Options(huh.NewOptions(domain.StudentStatuses...)...).Value(&f.status),
		).Title(verb + " student")
	case kindTeachers:
		group = huh.NewGroup(
			huh.NewInput().Title("Teacher number").Value(&f.number).Validate(required("teacher number")),
			huh.NewInput().Title("Full name").Value(&f.name).Validate(required("name")),
			huh.NewInput().Title("Department").Value(&f.department).Suggestions(options),
			huh.NewInput().Title("Position").Value(&f.position),
			huh.NewInput().Title("Email").Value(&f.email),
			huh.NewSelect[string]().Title("Status").Options(huh.NewOptions(domain.TeacherStatuses...)...).Value(&f.status),
		).Title(verb + " teacher")
	default:
		group = huh.NewGroup(
			huh.NewInput().Title("Title").Value(&f.title).Validate(required("title")),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&f.date).Validate(validDate),
			huh.NewInput().Title("Time").Placeholder("HH:MM").Value(&f.time).Validate(validClock),
			huh.NewInput().Title("Location").Value(&f.location).Validate(required("location")),
			huh.NewSelect[string]().Title("Category").Options(huh.NewOptions(domain.EventCategories...)...).Value(&f.category),
			huh.NewSelect[string]().Title("Status").Options(huh.NewOptions(domain.EventStatuses...)...).Value(&f.status),
			huh.NewInput().Title("Max participants").Placeholder("optional").Value(&f.seats).Validate(optionalCount),
			huh.NewInput().Title("Organizer").Value(&f.organizer),
		).Title(verb + " event")
	}
	return huh.NewForm(group).WithTheme(formTheme()).WithShowHelp(false)
}

func (m createModel) Init() tea.Cmd {
	if m.loading {
		return m.fetch()
	}
	return m.form.Init()
}

// fetch loads the edited record and the field suggestions. The form opens
// without suggestions when they cannot be loaded.
func (m createModel) fetch() tea.Cmd {
	g, kind, id := m.gateway, m.kind, m.editID
	return func() tea.Msg {
		ctx := context.Background()
		msg := formDataMsg{kind: kind}
		if id > 0 {
			msg.fields, msg.err = loadFields(ctx, g, kind, id)
			if msg.err != nil {
				return msg
			}
		}
		var err error
		switch kind {
		case kindStudents:
			msg.options, err = g.ListGroups(ctx)
		case kindTeachers:
			msg.options, err = g.ListDepartments(ctx)
		}
		if err != nil {
			msg.options = nil
		}
		return msg
	}
}

func loadFields(ctx context.Context, g *client.Gateway, kind recordKind, id int) (*recordFields, error) {
	switch kind {
	case kindStudents:
		s, err := g.GetStudent(ctx, id)
		if err != nil {
			return nil, err
		}
		return studentFields(s), nil
	case kindTeachers:
		t, err := g.GetTeacher(ctx, id)
		if err != nil {
			return nil, err
		}
		return teacherFields(t), nil
	default:
		e, err := g.GetEvent(ctx, id)
		if err != nil {
			return nil, err
		}
		return eventFields(e), nil
	}
}

func (m createModel) Update(msg tea.Msg) (createModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.form != nil {
			m.form = m.form.WithWidth(min(msg.Width, 72))
		}
		return m, nil

	case formDataMsg:
		if msg.kind != m.kind || !m.loading {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = fmt.Sprintf("could not load %s: %v", m.kind.singular(), msg.err)
			return m, nil
		}
		if msg.fields != nil {
			*m.fields = *msg.fields
			m.original = *msg.fields
		}
		m.options = msg.options
		cmd := m.resetForm()
		return m, cmd

	case recordCreatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			cmd := m.resetForm()
			return m, cmd
		}
		return m, nil

	case recordUpdatedMsg:
		m.submitting = false
		if msg.err != nil {
			m.err = msg.err.Error()
			cmd := m.resetForm()
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "esc" && !m.submitting {
			return m, emit(createCancelledMsg{kind: m.kind})
		}
	}

	if m.submitting || m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.submitting = true
		m.err = ""
		return m, m.submit()
	}
	return m, cmd
}

// resetForm rebuilds the form over the current field values.
func (m *createModel) resetForm() tea.Cmd {
	m.form = newCreateForm(m.kind, m.fields, m.options, m.editing())
	if m.width > 0 {
		m.form = m.form.WithWidth(min(m.width, 72))
	}
	return m.form.Init()
}

func (m createModel) submit() tea.Cmd {
	if m.editing() {
		return m.submitEdit()
	}
	g, kind, f := m.gateway, m.kind, *m.fields
	return func() tea.Msg {
		ctx := context.Background()
		switch kind {
		case kindStudents:
			s, err := g.CreateStudent(ctx, f.studentInput())
			if err != nil {
				return recordCreatedMsg{kind: kind, err: err}
			}
			return recordCreatedMsg{kind: kind, label: s.Name}
		case kindTeachers:
			t, err := g.CreateTeacher(ctx, f.teacherInput())
			if err != nil {
				return recordCreatedMsg{kind: kind, err: err}
			}
			return recordCreatedMsg{kind: kind, label: t.Name}
		default:
			e, err := g.CreateEvent(ctx, f.eventInput())
			if err != nil {
				return recordCreatedMsg{kind: kind, err: err}
			}
			return recordCreatedMsg{kind: kind, label: e.Title}
		}
	}
}

// submitEdit sends only the fields that differ from the loaded record.
func (m createModel) submitEdit() tea.Cmd {
	g, kind, id, f, was := m.gateway, m.kind, m.editID, *m.fields, m.original
	unchanged := recordUpdatedMsg{kind: kind, label: f.label(kind), unchanged: true}
	switch kind {
	case kindStudents:
		upd := f.studentUpdate(was)
		if upd.IsZero() {
			return emit(unchanged)
		}
		return func() tea.Msg {
			s, err := g.UpdateStudent(context.Background(), id, upd)
			if err != nil {
				return recordUpdatedMsg{kind: kind, err: err}
			}
			return recordUpdatedMsg{kind: kind, label: s.Name}
		}
	case kindTeachers:
		upd := f.teacherUpdate(was)
		if upd.IsZero() {
			return emit(unchanged)
		}
		return func() tea.Msg {
			t, err := g.UpdateTeacher(context.Background(), id, upd)
			if err != nil {
				return recordUpdatedMsg{kind: kind, err: err}
			}
			return recordUpdatedMsg{kind: kind, label: t.Name}
		}
	default:
		upd := f.eventUpdate(was)
		if upd.IsZero() {
			return emit(unchanged)
		}
		return func() tea.Msg {
			e, err := g.UpdateEvent(context.Background(), id, upd)
			if err != nil {
				return recordUpdatedMsg{kind: kind, err: err}
			}
			return recordUpdatedMsg{kind: kind, label: e.Title}
		}
	}
}

func (m createModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	switch {
	case m.submitting:
		b.WriteString("  " + dimStyle.Render("saving "+m.kind.singular()+"...") + "\n")
		return b.String()
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
		return b.String()
	}
	if m.form != nil {
		b.WriteString(m.form.View())
	}
	if m.err != "" {
		b.WriteString("\n  " + errorStyle.Render(m.err) + "\n")
	}
	return b.String()
}

func studentFields(s *domain.Student) *recordFields {
	return &recordFields{
		number:  s.StudentNumber,
		name:    s.Name,
		group:   s.GroupName,
		email:   s.Email,
		faculty: s.Faculty,
		course:  intField(s.Course),
		status:  s.Status,
	}
}

func teacherFields(t *domain.Teacher) *recordFields {
	return &recordFields{
		number:     t.TeacherNumber,
		name:       t.Name,
		department: t.Department,
		position:   t.Position,
		email:      t.Email,
		status:     t.Status,
	}
}

func eventFields(e *domain.Event) *recordFields {
	return &recordFields{
		title:     e.Title,
		date:      e.Date,
		time:      clockOf(e.Time),
		location:  e.Location,
		category:  e.Category,
		status:    e.Status,
		seats:     intField(e.MaxParticipants),
		organizer: e.Organizer,
	}
}

func intField(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// clockOf trims a stored "15:04:05" time to the form's "15:04".
func clockOf(s string) string {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format("15:04")
	}
	return s
}

func (f recordFields) label(kind recordKind) string {
	if kind == kindEvents {
		return strings.TrimSpace(f.title)
	}
	return strings.TrimSpace(f.name)
}

func (f recordFields) studentInput() domain.StudentInput {
	course, _ := strconv.Atoi(strings.TrimSpace(f.course)) //nolint:errcheck // validated by the form
	return domain.StudentInput{
		StudentNumber: strings.TrimSpace(f.number),
		Name:          strings.TrimSpace(f.name),
		GroupName:     strings.TrimSpace(f.group),
		Email:         strings.TrimSpace(f.email),
		Faculty:       strings.TrimSpace(f.faculty),
		Course:        course,
		Status:        f.status,
	}
}

func (f recordFields) teacherInput() domain.TeacherInput {
	return domain.TeacherInput{
		TeacherNumber: strings.TrimSpace(f.number),
		Name:          strings.TrimSpace(f.name),
		Department:    strings.TrimSpace(f.department),
		Position:      strings.TrimSpace(f.position),
		Email:         strings.TrimSpace(f.email),
		Status:        f.status,
	}
}

func (f recordFields) eventInput() domain.EventInput {
	seats, _ := strconv.Atoi(strings.TrimSpace(f.seats)) //nolint:errcheck // validated by the form
	return domain.EventInput{
		Title:           strings.TrimSpace(f.title),
		Date:            strings.TrimSpace(f.date),
		Time:            strings.TrimSpace(f.time),
		Location:        strings.TrimSpace(f.location),
		Category:        f.category,
		Status:          f.status,
		MaxParticipants: seats,
		Organizer:       strings.TrimSpace(f.organizer),
	}
}

// changed returns the trimmed new value when it is set and differs from
// the old one. Blank fields are left as they are on the server.
func changed(now, was string) *string {
	now = strings.TrimSpace(now)
	if now == "" || now == strings.TrimSpace(was) {
		return nil
	}
	return &now
}

func changedCount(now, was string) *int {
	v := changed(now, was)
	if v == nil {
		return nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		return nil
	}
	return &n
}

func (f recordFields) studentUpdate(was recordFields) domain.StudentUpdate {
	return domain.StudentUpdate{
		StudentNumber: changed(f.number, was.number),
		Name:          changed(f.name, was.name),
		GroupName:     changed(f.group, was.group),
		Email:         changed(f.email, was.email),
		Faculty:       changed(f.faculty, was.faculty),
		Course:        changedCount(f.course, was.course),
		Status:        changed(f.status, was.status),
	}
}

func (f recordFields) teacherUpdate(was recordFields) domain.TeacherUpdate {
	return domain.TeacherUpdate{
		TeacherNumber: changed(f.number, was.number),
		Name:          changed(f.name, was.name),
		Department:    changed(f.department, was.department),
		Position:      changed(f.position, was.position),
		Email:         changed(f.email, was.email),
		Status:        changed(f.status, was.status),
	}
}

func (f recordFields) eventUpdate(was recordFields) domain.EventUpdate {
	return domain.EventUpdate{
		Title:           changed(f.title, was.title),
		Date:            changed(f.date, was.date),
		Time:            changed(f.time, was.time),
		Location:        changed(f.location, was.location),
		Category:        changed(f.category, was.category),
		Status:          changed(f.status, was.status),
		MaxParticipants: changedCount(f.seats, was.seats),
		Organizer:       changed(f.organizer, was.organizer),
	}
}

// required returns a validator rejecting blank input.
func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func validCourse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 6 {
		return errors.New("course must be a number from 1 to 6")
	}
	return nil
}

func validDate(s string) error {
	if _, err := time.Parse(domain.EventDateLayout, strings.TrimSpace(s)); err != nil {
		return errors.New("date must look like 2025-09-01")
	}
	return nil
}

func validClock(s string) error {
	if _, err := time.Parse("15:04", strings.TrimSpace(s)); err != nil {
		return errors.New("time must look like 14:30")
	}
	return nil
}

func optionalCount(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return errors.New("must be a whole number")
	}
	return nil
}
