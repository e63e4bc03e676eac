package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/naveenspark/campusdesk/pkg/client"
	"github.com/naveenspark/campusdesk/pkg/domain"
)

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: want a positive number", arg)
	}
	return id, nil
}

var errNoChanges = errors.New("nothing to update: set at least one field flag")

// changedString returns &v when the flag was given on the command line.
func changedString(cmd *cobra.Command, name, v string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func changedInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

// idCommand builds a "<verb> <id>" subcommand.
func idCommand(use, short string, run func(ctx context.Context, id int) int) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return codeErr(run(cmd.Context(), id))
		},
	}
}

// --- students ---

func newStudentsCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "students",
		Aliases: []string{"student"},
		Short:   "List, find, create, update and delete students",
	}

	var filter domain.StudentFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runListStudents(cmd.Context(), appFn(), filter))
		},
	}
	list.Flags().StringVar(&filter.GroupName, "group", "", "Filter by group name")
	list.Flags().StringVar(&filter.Status, "status", "", "Filter by status: active, inactive, graduated, expelled")
	list.Flags().StringVar(&filter.Faculty, "faculty", "", "Filter by faculty")
	list.Flags().IntVar(&filter.Course, "course", 0, "Filter by course")
	list.Flags().IntVar(&filter.Skip, "skip", 0, "Records to skip")
	list.Flags().IntVar(&filter.Limit, "limit", 100, "Maximum records to return")

	find := &cobra.Command{
		Use:   "find <student-number>",
		Short: "Find a student by student number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runFindStudent(cmd.Context(), appFn(), args[0]))
		},
	}

	var in domain.StudentInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a student",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runCreateStudent(cmd.Context(), appFn(), in))
		},
	}
	create.Flags().StringVar(&in.StudentNumber, "number", "", "Student number (required)")
	create.Flags().StringVar(&in.Name, "name", "", "Full name (required)")
	create.Flags().StringVar(&in.GroupName, "group", "", "Group name (required)")
	create.Flags().StringVar(&in.Email, "email", "", "Email address")
	create.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	create.Flags().StringVar(&in.Faculty, "faculty", "", "Faculty")
	create.Flags().StringVar(&in.Specialization, "specialization", "", "Specialization")
	create.Flags().IntVar(&in.Course, "course", 0, "Course (1-6)")
	create.Flags().IntVar(&in.EnrollmentYear, "year", 0, "Enrollment year")
	create.Flags().StringVar(&in.Status, "status", "active", "Status")
	create.MarkFlagRequired("number") //nolint:errcheck
	create.MarkFlagRequired("name")   //nolint:errcheck
	create.MarkFlagRequired("group")  //nolint:errcheck

	var set domain.StudentInput
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a student's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return codeErr(runUpdateStudent(cmd.Context(), appFn(), id, domain.StudentUpdate{
				StudentNumber:  changedString(cmd, "number", set.StudentNumber),
				Name:           changedString(cmd, "name", set.Name),
				GroupName:      changedString(cmd, "group", set.GroupName),
				Email:          changedString(cmd, "email", set.Email),
				Phone:          changedString(cmd, "phone", set.Phone),
				Status:         changedString(cmd, "status", set.Status),
				EnrollmentYear: changedInt(cmd, "year", set.EnrollmentYear),
				Faculty:        changedString(cmd, "faculty", set.Faculty),
				Specialization: changedString(cmd, "specialization", set.Specialization),
				Course:         changedInt(cmd, "course", set.Course),
			}))
		},
	}
	update.Flags().StringVar(&set.StudentNumber, "number", "", "Student number")
	update.Flags().StringVar(&set.Name, "name", "", "Full name")
	update.Flags().StringVar(&set.GroupName, "group", "", "Group name")
	update.Flags().StringVar(&set.Email, "email", "", "Email address")
	update.Flags().StringVar(&set.Phone, "phone", "", "Phone number")
	update.Flags().StringVar(&set.Faculty, "faculty", "", "Faculty")
	update.Flags().StringVar(&set.Specialization, "specialization", "", "Specialization")
	update.Flags().IntVar(&set.Course, "course", 0, "Course (1-6)")
	update.Flags().IntVar(&set.EnrollmentYear, "year", 0, "Enrollment year")
	update.Flags().StringVar(&set.Status, "status", "", "Status: active, inactive, graduated, expelled")

	groups := &cobra.Command{
		Use:   "groups",
		Short: "List student groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			return codeErr(runListNames(cmd.Context(), a, "No groups found.", a.gateway.ListGroups))
		},
	}

	cmd.AddCommand(
		list,
		idCommand("get", "Show a student", func(ctx context.Context, id int) int {
			return runGetStudent(ctx, appFn(), id)
		}),
		find,
		create,
		update,
		groups,
		idCommand("delete", "Delete a student", func(ctx context.Context, id int) int {
			return runDelete(ctx, appFn(), "student", id, appFn().gateway.DeleteStudent)
		}),
	)
	return cmd
}

func runListStudents(ctx context.Context, a *app, f domain.StudentFilter) int {
	students, err := a.gateway.ListStudents(ctx, f)
	if err != nil {
		return a.fail(err)
	}
	if a.json {
		writeJSON(a.out, students) //nolint:errcheck
		return 0
	}
	if len(students) == 0 {
		fmt.Fprintln(a.out, dimStyle.Render("No students found."))
		return 0
	}
	rows := make([][]string, 0, len(students))
	for _, s := range students {
		rows = append(rows, []string{strconv.Itoa(s.ID), s.StudentNumber, s.Name, s.GroupName, intOrDash(s.Course), s.Status})
	}
	writeTable(a.out, []string{"ID", "NUMBER", "NAME", "GROUP", "COURSE", "STATUS"}, rows)
	return 0
}

func runGetStudent(ctx context.Context, a *app, id int) int {
	s, err := a.gateway.GetStudent(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	printStudent(a, s)
	return 0
}

func runFindStudent(ctx context.Context, a *app, number string) int {
	s, err := a.gateway.FindStudent(ctx, number)
	if errors.Is(err, client.ErrNotFound) {
		fmt.Fprintf(a.errOut, "No student with number %q.\n", number)
		return 1
	}
	if err != nil {
		return a.fail(err)
	}
	printStudent(a, s)
	return 0
}

func runCreateStudent(ctx context.Context, a *app, in domain.StudentInput) int {
	s, err := a.gateway.CreateStudent(ctx, in)
	if err != nil {
		return a.fail(err)
	}
	if a.json {
		writeJSON(a.out, s) //nolint:errcheck
		return 0
	}
	fmt.Fprintf(a.out, "Created student %s (id %d).\n", okStyle.Render(s.Name), s.ID)
	return 0
}

func runUpdateStudent(ctx context.Context, a *app, id int, upd domain.StudentUpdate) int {
	if upd.IsZero() {
		return a.fail(errNoChanges)
	}
	s, err := a.gateway.UpdateStudent(ctx, id, upd)
	if err != nil {
		return a.fail(err)
	}
	if a.json {
		writeJSON(a.out, s) //nolint:errcheck
		return 0
	}
	fmt.Fprintf(a.out, "Updated student %s (id %d).\n", okStyle.Render(s.Name), s.ID)
	return 0
}

func printStudent(a *app, s *domain.Student) {
	if a.json {
		writeJSON(a.out, s) //nolint:errcheck
		return
	}
	writeFields(a.out, s.Name,
		"id", strconv.Itoa(s.ID),
		"student number", s.StudentNumber,
		"group", s.GroupName,
		"status", s.Status,
		"faculty", s.Faculty,
		"specialization", s.Specialization,
		"course", intOrEmpty(s.Course),
		"enrolled", intOrEmpty(s.EnrollmentYear),
		"email", s.Email,
		"phone", s.Phone,
	)
}

// --- teachers ---

func newTeachersCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "teachers",
		Aliases: []string{"teacher"},
		Short:   "List, find, create, update and delete teachers",
	}

	var filter domain.TeacherFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List teachers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runListTeachers(cmd.Context(), appFn(), filter))
		},
	}
	list.Flags().StringVar(&filter.Department, "department", "", "Filter by department")
	list.Flags().StringVar(&filter.Status, "status", "", "Filter by status: active, inactive, retired")
	list.Flags().IntVar(&filter.Skip, "skip", 0, "Records to skip")
	list.Flags().IntVar(&filter.Limit, "limit", 100, "Maximum records to return")

	find := &cobra.Command{
		Use:   "find <teacher-number>",
		Short: "Find a teacher by teacher number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runFindTeacher(cmd.Context(), appFn(), args[0]))
		},
	}

	var in domain.TeacherInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a teacher",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runCreateTeacher(cmd.Context(), appFn(), in))
		},
	}
	create.Flags().StringVar(&in.TeacherNumber, "number", "", "Teacher number (required)")
	create.Flags().StringVar(&in.Name, "name", "", "Full name (required)")
	create.Flags().StringVar(&in.Department, "department", "", "Department")
	create.Flags().StringVar(&in.Position, "position", "", "Position")
	create.Flags().StringVar(&in.AcademicDegree, "degree", "", "Academic degree")
	create.Flags().StringVar(&in.Subjects, "subjects", "", "Subjects taught")
	create.Flags().StringVar(&in.Email, "email", "", "Email address")
	create.Flags().StringVar(&in.Phone, "phone", "", "Phone number")
	create.Flags().StringVar(&in.Status, "status", "active", "Status")
	create.MarkFlagRequired("number") //nolint:errcheck
	create.MarkFlagRequired("name")   //nolint:errcheck

	var set domain.TeacherInput
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a teacher's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return codeErr(runUpdateTeacher(cmd.Context(), appFn(), id, domain.TeacherUpdate{
				TeacherNumber:  changedString(cmd, "number", set.TeacherNumber),
				Name:           changedString(cmd, "name", set.Name),
				Email:          changedString(cmd, "email", set.Email),
				Phone:          changedString(cmd, "phone", set.Phone),
				Status:         changedString(cmd, "status", set.Status),
				Department:     changedString(cmd, "department", set.Department),
				Position:       changedString(cmd, "position", set.Position),
				AcademicDegree: changedString(cmd, "degree", set.AcademicDegree),
				Subjects:       changedString(cmd, "subjects", set.Subjects),
			}))
		},
	}
	update.Flags().StringVar(&set.TeacherNumber, "number", "", "Teacher number")
	update.Flags().StringVar(&set.Name, "name", "", "Full name")
	update.Flags().StringVar(&set.Department, "department", "", "Department")
	update.Flags().StringVar(&set.Position, "position", "", "Position")
	update.Flags().StringVar(&set.AcademicDegree, "degree", "", "Academic degree")
	update.Flags().StringVar(&set.Subjects, "subjects", "", "Subjects taught")
	update.Flags().StringVar(&set.Email, "email", "", "Email address")
	update.Flags().StringVar(&set.Phone, "phone", "", "Phone number")
	update.Flags().StringVar(&set.Status, "status", "", "Status: active, inactive, retired")

	departments := &cobra.Command{
		Use:   "departments",
		Short: "List teacher departments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			return codeErr(runListNames(cmd.Context(), a, "No departments found.", a.gateway.ListDepartments))
		},
	}

	cmd.AddCommand(
		list,
		idCommand("get", "Show a teacher", func(ctx context.Context, id int) int {
			return runGetTeacher(ctx, appFn(), id)
		}),
		find,
		create,
		update,
		departments,
		idCommand("delete", "Delete a teacher", func(ctx context.Context, id int) int {
			return runDelete(ctx, appFn(), "teacher", id, appFn().gateway.DeleteTeacher)
		}),
	)
	return cmd
}

func runListTeachers(ctx context.Context, a *app, f domain.TeacherFilter) int {
	teachers, err := a.gateway.ListTeachers(ctx, f)
	if err != nil {
		return a.fail(err)
	}
	if a.json {
		writeJSON(a.out, teachers) //nolint:errcheck
		return 0
	}
	if len(teachers) == 0 {
		fmt.Fprintln(a.out, dimStyle.Render("No teachers found."))
		return 0
	}
	rows := make([][]string, 0, len(teachers))
	for _, t := range teachers {
		rows = append(rows, []string{strconv.Itoa(t.ID), t.TeacherNumber, t.Name, t.Department, t.Position, t.Status})
	}
	writeTable(a.out, []string{"ID", "NUMBER", "NAME", "DEPARTMENT", "POSITION", "STATUS"}, rows)
	return 0
}

func runGetTeacher(ctx context.Context, a *app, id int) int {
	t, err := a.gateway.GetTeacher(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	printTeacher(a, t)
	return 0
}

func runFindTeacher(ctx context.Context, a *app, number string) int {
	t, err := a.gateway.FindTeacher(ctx, number)
	if errors.Is(err, client.ErrNotFound) {
		fmt.Fprintf(a.errOut, "No teacher with number %q.\n", number)
		return 1
	}
	if err != nil {
		return a.fail(err)
	}
	printTeacher(a, t)
	return 0
}

func runCreateTeacher(ctx context.Context, a *app, in domain.TeacherInput) int {
	t, err := a.gateway.CreateTeacher(ctx, in)
	if err != nil {
		return a.fail(err)
	}
	if a.json {
		writeJSON(a.out, t) //nolint:errcheck
		return 0
	}
	fmt.Fprintf(a.out, "Created teacher %s (id %d).\n", okStyle.Render(t.Name), t.ID)
	return 0
}

func runUpdateTeacher(ctx context.Context, a *app, id int, upd domain.TeacherUpdate) int {
	if upd.IsZero() {
		return a.fail(errNoChanges)
	}
	t, err := a.gateway.UpdateTeacher(ctx, id, upd)
	if err != nil {
		return a.fail(err)
	}
	if a.json {
		writeJSON(a.out, t) //nolint:errcheck
		return 0
	}
	fmt.Fprintf(a.out, "Updated teacher %s (id %d).\n", okStyle.Render(t.Name), t.ID)
	return 0
}

func printTeacher(a *app, t *domain.Teacher) {
	if a.json {
		writeJSON(a.out, t) //nolint:errcheck
		return
	}
	writeFields(a.out, t.Name,
		"id", strconv.Itoa(t.ID),
		"teacher number", t.TeacherNumber,
		"status", t.Status,
		"department", t.Department,
		"position", t.Position,
		"degree", t.AcademicDegree,
		"subjects", t.Subjects,
		"email", t.Email,
		"phone", t.Phone,
	)
}

// --- events ---

func newEventsCmd(appFn func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "events",
		Aliases: []string{"event"},
		Short:   "List, create, update and delete campus events",
	}

	var filter domain.EventFilter
	list := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runListEvents(cmd.Context(), appFn(), filter))
		},
	}
	list.Flags().StringVar(&filter.Category, "category", "", "Filter by category")
	list.Flags().StringVar(&filter.Status, "status", "", "Filter by status: draft, published, completed, cancelled")
	list.Flags().StringVar(&filter.DateFrom, "from", "", "Earliest date (YYYY-MM-DD)")
	list.Flags().StringVar(&filter.DateTo, "to", "", "Latest date (YYYY-MM-DD)")
	list.Flags().IntVar(&filter.Skip, "skip", 0, "Records to skip")
	list.Flags().IntVar(&filter.Limit, "limit", 100, "Maximum records to return")

	var in domain.EventInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return codeErr(runCreateEvent(cmd.Context(), appFn(), in))
		},
	}
	create.Flags().StringVar(&in.Title, "title", "", "Title (required)")
	create.Flags().StringVar(&in.Date, "date", "", "Date, YYYY-MM-DD (required)")
	create.Flags().StringVar(&in.Time, "time", "", "Start time, HH:MM (required)")
	create.Flags().StringVar(&in.Location, "location", "", "Location (required)")
	create.Flags().StringVar(&in.Category, "category", "other", "Category")
	create.Flags().StringVar(&in.Description, "description", "", "Description")
	create.Flags().IntVar(&in.MaxParticipants, "max", 0, "Maximum participants")
	create.Flags().StringVar(&in.RegistrationURL, "registration-url", "", "Registration link")
	create.Flags().StringVar(&in.Status, "status", "draft", "Status")
	create.Flags().StringVar(&in.Tags, "tags", "", "Comma-separated tags")
	create.Flags().StringVar(&in.Organizer, "organizer", "", "Organizer")
	for _, f := range []string{"title", "date", "time", "location"} {
		create.MarkFlagRequired(f) //nolint:errcheck
	}

	var set domain.EventInput
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change an event's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return codeErr(runUpdateEvent(cmd.Context(), appFn(), id, domain.EventUpdate{
				Title:           changedString(cmd, "title", set.Title),
				Description:     changedString(cmd, "description", set.Description),
				Date:            changedString(cmd, "date", set.Date),
				Time:            changedString(cmd, "time", set.Time),
				Location:        changedString(cmd, "location", set.Location),
				Category:        changedString(cmd, "category", set.Category),
				MaxParticipants: changedInt(cmd, "max", set.MaxParticipants),
				RegistrationURL: changedString(cmd, "registration-url", set.RegistrationURL),
				Status:          changedString(cmd, "status", set.Status),
				Tags:            changedString(cmd, "tags", set.Tags),
				Organizer:       changedString(cmd, "organizer", set.Organizer),
			}))
		},
	}
	update.Flags().StringVar(&set.Title, "title", "", "Title")
	update.Flags().StringVar(&set.Date, "date", "", "Date, YYYY-MM-DD")
	update.Flags().StringVar(&set.Time, "time", "", "Start time, HH:MM")
	update.Flags().StringVar(&set.Location, "location", "", "Location")
	update.Flags().StringVar(&set.Category, "category", "", "Category")
	update.Flags().StringVar(&set.Description, "description", "", "Description")
	update.Flags().IntVar(&set.MaxParticipants, "max", 0, "Maximum participants")
	update.Flags().StringVar(&set.RegistrationURL, "registration-url", "", "Registration link")
	update.Flags().StringVar(&set.Status, "status", "", "Status: draft, published, completed, cancelled")
	update.Flags().StringVar(&set.Tags, "tags", "", "Comma-separated tags")
	update.Flags().StringVar(&set.Organizer, "organizer", "", "Organizer")

	cmd.AddCommand(
		list,
		idCommand("get", "Show an event", func(ctx context.Context, id int) int {
			return runGetEvent(ctx, appFn(), id)
		}),
		create,
		update,
		idCommand("delete", "Delete an event", func(ctx context.Context, id int) int {
			return runDelete(ctx, appFn(), "event", id, appFn().gateway.DeleteEvent)
		}),
	)
	return cmd
}

func runListEvents(ctx context.Context, a *app, f domain.EventFilter) int {
	events, err := a.gateway.ListEvents(ctx, f)
	if err != nil {
		return a.fail(err)
	}
	if a.json {
		writeJSON(a.out, events) //nolint:errcheck
		return 0
	}
	if len(events) == 0 {
		fmt.Fprintln(a.out, dimStyle.Render("No events found."))
		return 0
	}
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{strconv.Itoa(e.ID), e.Title, e.Date, e.Time, e.Category, e.Status})
	}
	writeTable(a.out, []string{"ID", "TITLE", "DATE", "TIME", "CATEGORY", "STATUS"}, rows)
	return 0
}

func runGetEvent(ctx context.Context, a *app, id int) int {
	e, err := a.gateway.GetEvent(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	if a.json {
		writeJSON(a.out, e) //nolint:errcheck
		return 0
	}
	seats := strconv.Itoa(e.ParticipantsCount)
	if e.MaxParticipants > 0 {
		seats += "/" + strconv.Itoa(e.MaxParticipants)
	}
	writeFields(a.out, e.Title,
		"id", strconv.Itoa(e.ID),
		"when", e.Date+" "+e.Time,
		"location", e.Location,
		"category", e.Category,
		"status", e.Status,
		"participants", seats,
		"organizer", e.Organizer,
		"tags", e.Tags,
		"registration", e.RegistrationURL,
		"description", e.Description,
	)
	return 0
}

func runCreateEvent(ctx context.Context, a *app, in domain.EventInput) int {
	if !domain.ValidEventCategory(in.Category) {
		return a.fail(fmt.Errorf("unknown category %q", in.Category))
	}
	if (domain.Event{Date: in.Date}).ParsedDate().IsZero() {
		return a.fail(fmt.Errorf("invalid date %q: want YYYY-MM-DD", in.Date))
	}
	e, err := a.gateway.CreateEvent(ctx, in)
	if err != nil {
		return a.fail(err)
	}
	if a.json {
		writeJSON(a.out, e) //nolint:errcheck
		return 0
	}
	fmt.Fprintf(a.out, "Created event %s (id %d) on %s.\n", okStyle.Render(e.Title), e.ID, e.Date)
	return 0
}

func runUpdateEvent(ctx context.Context, a *app, id int, upd domain.EventUpdate) int {
	if upd.IsZero() {
		return a.fail(errNoChanges)
	}
	if upd.Category != nil && !domain.ValidEventCategory(*upd.Category) {
		return a.fail(fmt.Errorf("unknown category %q", *upd.Category))
	}
	if upd.Date != nil && (domain.Event{Date: *upd.Date}).ParsedDate().IsZero() {
		return a.fail(fmt.Errorf("invalid date %q: want YYYY-MM-DD", *upd.Date))
	}
	e, err := a.gateway.UpdateEvent(ctx, id, upd)
	if err != nil {
		return a.fail(err)
	}
	if a.json {
		writeJSON(a.out, e) //nolint:errcheck
		return 0
	}
	fmt.Fprintf(a.out, "Updated event %s (id %d).\n", okStyle.Render(e.Title), e.ID)
	return 0
}

// --- shared ---

// runListNames prints names such as groups or departments, one per line.
func runListNames(ctx context.Context, a *app, empty string, fetch func(context.Context) ([]string, error)) int {
	names, err := fetch(ctx)
	if err != nil {
		return a.fail(err)
	}
	if a.json {
		if names == nil {
			names = []string{}
		}
		writeJSON(a.out, names) //nolint:errcheck
		return 0
	}
	if len(names) == 0 {
		fmt.Fprintln(a.out, dimStyle.Render(empty))
		return 0
	}
	for _, n := range names {
		fmt.Fprintln(a.out, n)
	}
	return 0
}

func runDelete(ctx context.Context, a *app, what string, id int, del func(context.Context, int) error) int {
	if err := del(ctx, id); err != nil {
		return a.fail(err)
	}
	fmt.Fprintf(a.out, "Deleted %s %d.\n", what, id)
	return 0
}

func intOrDash(n int) string {
	if n <= 0 {
		return "-"
	}
	return strconv.Itoa(n)
}

func intOrEmpty(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
