package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/naveenspark/campusdesk/pkg/domain"
	"github.com/naveenspark/campusdesk/pkg/session"
)

func loggedInStore() *session.Memory {
	s := session.NewMemory()
	s.Set("T1") //nolint:errcheck
	return s
}

func TestListStudentsQuery(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/staff/students" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]domain.Student{ //nolint:errcheck
			{ID: 1, StudentNumber: "S-001", Name: "Ivan Petrov", GroupName: "IT-21"},
			{ID: 2, StudentNumber: "S-002", Name: "Anna Smirnova", GroupName: "IT-21"},
		})
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, loggedInStore())
	students, err := g.ListStudents(context.Background(), domain.StudentFilter{GroupName: "IT-21", Course: 2, Limit: 50})
	if err != nil {
		t.Fatalf("ListStudents() error: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("got %d students, want 2", len(students))
	}
	if gotQuery != "course=2&group_name=IT-21&limit=50" {
		t.Errorf("query = %q, want %q", gotQuery, "course=2&group_name=IT-21&limit=50")
	}
}

func TestFindStudent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("student_number") == "S-001" {
			json.NewEncoder(w).Encode([]domain.Student{{ID: 1, StudentNumber: "S-001"}}) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode([]domain.Student{}) //nolint:errcheck
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, loggedInStore())
	s, err := g.FindStudent(context.Background(), "S-001")
	if err != nil {
		t.Fatalf("FindStudent() error: %v", err)
	}
	if s.ID != 1 {
		t.Errorf("ID = %d, want 1", s.ID)
	}

	_, err = g.FindStudent(context.Background(), "S-404")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateStudent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var in domain.StudentInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if in.Phone == "123" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"detail":[{"msg":"phone must look like +7XXXXXXXXXX"}]}`)) //nolint:errcheck
			return
		}
		json.NewEncoder(w).Encode(domain.Student{ID: 9, StudentNumber: in.StudentNumber, Name: in.Name}) //nolint:errcheck
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, loggedInStore())
	s, err := g.CreateStudent(context.Background(), domain.StudentInput{StudentNumber: "S-009", Name: "Oleg", GroupName: "IT-22"})
	if err != nil {
		t.Fatalf("CreateStudent() error: %v", err)
	}
	if s.ID != 9 || s.Name != "Oleg" {
		t.Errorf("created = %+v", s)
	}

	_, err = g.CreateStudent(context.Background(), domain.StudentInput{StudentNumber: "S-010", Phone: "123"})
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want *HTTPError", err)
	}
	if httpErr.Message != "phone must look like +7XXXXXXXXXX" {
		t.Errorf("Message = %q", httpErr.Message)
	}
}

func TestDeleteStudentNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/staff/students/42" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Student not found"}) //nolint:errcheck
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, loggedInStore())
	err := g.DeleteStudent(context.Background(), 42)
	if !IsStatus(err, http.StatusNotFound) {
		t.Errorf("err = %v, want HTTP 404", err)
	}
}

func TestTeachersRoundTrip(t *testing.T) {
	deleted := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/staff/teachers":
			if r.URL.Query().Get("teacher_number") == "T-404" {
				json.NewEncoder(w).Encode([]domain.Teacher{}) //nolint:errcheck
				return
			}
			json.NewEncoder(w).Encode([]domain.Teacher{{ID: 3, TeacherNumber: "T-003", Department: "Math"}}) //nolint:errcheck
		case r.Method == http.MethodPost && r.URL.Path == "/api/staff/teachers":
			var in domain.TeacherInput
			json.NewDecoder(r.Body).Decode(&in) //nolint:errcheck
			json.NewEncoder(w).Encode(domain.Teacher{ID: 4, TeacherNumber: in.TeacherNumber}) //nolint:errcheck
		case r.Method == http.MethodDelete && r.URL.Path == "/api/staff/teachers/4":
			deleted = true
			json.NewEncoder(w).Encode(map[string]string{"message": "Teacher deleted successfully"}) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, loggedInStore())
	ctx := context.Background()

	teachers, err := g.ListTeachers(ctx, domain.TeacherFilter{Department: "Math"})
	if err != nil || len(teachers) != 1 {
		t.Fatalf("ListTeachers() = %v, %v", teachers, err)
	}
	if _, err := g.FindTeacher(ctx, "T-404"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindTeacher() err = %v, want ErrNotFound", err)
	}
	created, err := g.CreateTeacher(ctx, domain.TeacherInput{TeacherNumber: "T-004", Name: "Maria"})
	if err != nil {
		t.Fatalf("CreateTeacher() error: %v", err)
	}
	if err := g.DeleteTeacher(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTeacher() error: %v", err)
	}
	if !deleted {
		t.Error("expected delete request to reach the server")
	}
}

func TestStaffStatistics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"total_students":120,"total_teachers":14,"active_students":110,"active_teachers":12,"students_by_course":{"1":40,"2":80},"students_by_faculty":{"IT":120}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, loggedInStore())
	stats, err := g.StaffStatistics(context.Background())
	if err != nil {
		t.Fatalf("StaffStatistics() error: %v", err)
	}
	if stats.TotalStudents != 120 || stats.StudentsByCourse["2"] != 80 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestServiceCallUnauthorizedInvalidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"}) //nolint:errcheck
	}))
	defer srv.Close()

	store := loggedInStore()
	g, iv := newTestGateway(t, srv, store)
	_, err := g.GetTeacher(context.Background(), 1)
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Fatalf("err = %v, want HTTP 401", err)
	}
	if _, ok := store.Token(); ok {
		t.Error("expected session cleared")
	}
	if iv.count() != 1 {
		t.Errorf("invalidation handler called %d times, want 1", iv.count())
	}
}

func TestUpdateStudentSendsOnlySetFields(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody) //nolint:errcheck
		json.NewEncoder(w).Encode(domain.Student{ID: 7, Name: "Ivan Petrov", GroupName: "IT-22", Course: 3}) //nolint:errcheck
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, loggedInStore())
	group, course := "IT-22", 3
	s, err := g.UpdateStudent(context.Background(), 7, domain.StudentUpdate{GroupName: &group, Course: &course})
	if err != nil {
		t.Fatalf("UpdateStudent() error: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/staff/students/7" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if len(gotBody) != 2 || gotBody["group_name"] != "IT-22" || gotBody["course"] != float64(3) {
		t.Errorf("body = %v, want only group_name and course", gotBody)
	}
	if s.GroupName != "IT-22" {
		t.Errorf("updated = %+v", s)
	}
}

func TestUpdateTeacherNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/staff/teachers/99" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Teacher not found"}) //nolint:errcheck
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, loggedInStore())
	position := "Professor"
	_, err := g.UpdateTeacher(context.Background(), 99, domain.TeacherUpdate{Position: &position})
	if !IsStatus(err, http.StatusNotFound) {
		t.Errorf("err = %v, want HTTP 404", err)
	}
	if !strings.Contains(err.Error(), "Teacher not found") {
		t.Errorf("err = %v, want server reason", err)
	}
}

func TestListGroupsAndDepartments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/staff/groups":
			w.Write([]byte(`{"groups":["IT-21","IT-22"]}`)) //nolint:errcheck
		case "/api/staff/departments":
			w.Write([]byte(`{"departments":["Math"]}`)) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	g, _ := newTestGateway(t, srv, loggedInStore())
	groups, err := g.ListGroups(context.Background())
	if err != nil {
		t.Fatalf("ListGroups() error: %v", err)
	}
	if strings.Join(groups, ",") != "IT-21,IT-22" {
		t.Errorf("groups = %v", groups)
	}
	departments, err := g.ListDepartments(context.Background())
	if err != nil {
		t.Fatalf("ListDepartments() error: %v", err)
	}
	if len(departments) != 1 || departments[0] != "Math" {
		t.Errorf("departments = %v", departments)
	}
}
