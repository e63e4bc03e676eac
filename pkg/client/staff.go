package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/naveenspark/campusdesk/pkg/domain"
)

func (g *Gateway) staffURL(path string) string {
	return g.endpoints.API(ServiceStaff) + "/staff" + path
}

// ListStudents fetches students matching f.
func (g *Gateway) ListStudents(ctx context.Context, f domain.StudentFilter) ([]domain.Student, error) {
	params := url.Values{}
	setString(params, "group_name", f.GroupName)
	setString(params, "status", f.Status)
	setString(params, "faculty", f.Faculty)
	setInt(params, "course", f.Course)
	setString(params, "student_number", f.StudentNumber)
	setInt(params, "skip", f.Skip)
	setInt(params, "limit", f.Limit)

	var students []domain.Student
	if err := g.get(ctx, withQuery(g.staffURL("/students"), params), &students); err != nil {
		return nil, fmt.Errorf("client.ListStudents: %w", err)
	}
	return students, nil
}

// GetStudent fetches a single student by ID.
func (g *Gateway) GetStudent(ctx context.Context, id int) (*domain.Student, error) {
	var s domain.Student
	if err := g.get(ctx, g.staffURL("/students/"+strconv.Itoa(id)), &s); err != nil {
		return nil, fmt.Errorf("client.GetStudent: %w", err)
	}
	return &s, nil
}

// FindStudent looks a student up by student number. It returns ErrNotFound
// when no student has that number.
func (g *Gateway) FindStudent(ctx context.Context, number string) (*domain.Student, error) {
	students, err := g.ListStudents(ctx, domain.StudentFilter{StudentNumber: number})
	if err != nil {
		return nil, fmt.Errorf("client.FindStudent: %w", err)
	}
	if len(students) == 0 {
		return nil, fmt.Errorf("client.FindStudent: student %q: %w", number, ErrNotFound)
	}
	return &students[0], nil
}

// CreateStudent creates a new student.
func (g *Gateway) CreateStudent(ctx context.Context, in domain.StudentInput) (*domain.Student, error) {
	var created domain.Student
	if err := g.post(ctx, g.staffURL("/students"), in, &created); err != nil {
		return nil, fmt.Errorf("client.CreateStudent: %w", err)
	}
	return &created, nil
}

// UpdateStudent changes the fields set in upd and returns the stored
// student.
func (g *Gateway) UpdateStudent(ctx context.Context, id int, upd domain.StudentUpdate) (*domain.Student, error) {
	var updated domain.Student
	if err := g.doJSON(ctx, http.MethodPut, g.staffURL("/students/"+strconv.Itoa(id)), upd, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateStudent: %w", err)
	}
	return &updated, nil
}

// DeleteStudent deletes a student by ID.
func (g *Gateway) DeleteStudent(ctx context.Context, id int) error {
	if err := g.doJSON(ctx, http.MethodDelete, g.staffURL("/students/"+strconv.Itoa(id)), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteStudent: %w", err)
	}
	return nil
}

// ListTeachers fetches teachers matching f.
func (g *Gateway) ListTeachers(ctx context.Context, f domain.TeacherFilter) ([]domain.Teacher, error) {
	params := url.Values{}
	setString(params, "department", f.Department)
	setString(params, "status", f.Status)
	setString(params, "teacher_number", f.TeacherNumber)
	setInt(params, "skip", f.Skip)
	setInt(params, "limit", f.Limit)

	var teachers []domain.Teacher
	if err := g.get(ctx, withQuery(g.staffURL("/teachers"), params), &teachers); err != nil {
		return nil, fmt.Errorf("client.ListTeachers: %w", err)
	}
	return teachers, nil
}

// GetTeacher fetches a single teacher by ID.
func (g *Gateway) GetTeacher(ctx context.Context, id int) (*domain.Teacher, error) {
	var t domain.Teacher
	if err := g.get(ctx, g.staffURL("/teachers/"+strconv.Itoa(id)), &t); err != nil {
		return nil, fmt.Errorf("client.GetTeacher: %w", err)
	}
	return &t, nil
}

// FindTeacher looks a teacher up by teacher number. It returns ErrNotFound
// when no teacher has that number.
func (g *Gateway) FindTeacher(ctx context.Context, number string) (*domain.Teacher, error) {
	teachers, err := g.ListTeachers(ctx, domain.TeacherFilter{TeacherNumber: number})
	if err != nil {
		return nil, fmt.Errorf("client.FindTeacher: %w", err)
	}
	if len(teachers) == 0 {
		return nil, fmt.Errorf("client.FindTeacher: teacher %q: %w", number, ErrNotFound)
	}
	return &teachers[0], nil
}

// CreateTeacher creates a new teacher.
func (g *Gateway) CreateTeacher(ctx context.Context, in domain.TeacherInput) (*domain.Teacher, error) {
	var created domain.Teacher
	if err := g.post(ctx, g.staffURL("/teachers"), in, &created); err != nil {
		return nil, fmt.Errorf("client.CreateTeacher: %w", err)
	}
	return &created, nil
}

// UpdateTeacher changes the fields set in upd and returns the stored
// teacher.
func (g *Gateway) UpdateTeacher(ctx context.Context, id int, upd domain.TeacherUpdate) (*domain.Teacher, error) {
	var updated domain.Teacher
	if err := g.doJSON(ctx, http.MethodPut, g.staffURL("/teachers/"+strconv.Itoa(id)), upd, &updated); err != nil {
		return nil, fmt.Errorf("client.UpdateTeacher: %w", err)
	}
	return &updated, nil
}

// DeleteTeacher deletes a teacher by ID.
func (g *Gateway) DeleteTeacher(ctx context.Context, id int) error {
	if err := g.doJSON(ctx, http.MethodDelete, g.staffURL("/teachers/"+strconv.Itoa(id)), nil, nil); err != nil {
		return fmt.Errorf("client.DeleteTeacher: %w", err)
	}
	return nil
}

// ListGroups returns the distinct student group names.
func (g *Gateway) ListGroups(ctx context.Context) ([]string, error) {
	var body struct {
		Groups []string `json:"groups"`
	}
	if err := g.get(ctx, g.staffURL("/groups"), &body); err != nil {
		return nil, fmt.Errorf("client.ListGroups: %w", err)
	}
	return body.Groups, nil
}

// ListDepartments returns the distinct teacher departments.
func (g *Gateway) ListDepartments(ctx context.Context) ([]string, error) {
	var body struct {
		Departments []string `json:"departments"`
	}
	if err := g.get(ctx, g.staffURL("/departments"), &body); err != nil {
		return nil, fmt.Errorf("client.ListDepartments: %w", err)
	}
	return body.Departments, nil
}

// StaffStatistics returns student and teacher totals.
func (g *Gateway) StaffStatistics(ctx context.Context) (*domain.StaffStatistics, error) {
	var stats domain.StaffStatistics
	if err := g.get(ctx, g.staffURL("/statistics"), &stats); err != nil {
		return nil, fmt.Errorf("client.StaffStatistics: %w", err)
	}
	return &stats, nil
}

func setString(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

func setInt(params url.Values, key string, value int) {
	if value > 0 {
		params.Set(key, strconv.Itoa(value))
	}
}

func withQuery(u string, params url.Values) string {
	if len(params) == 0 {
		return u
	}
	return u + "?" + params.Encode()
}
