package domain

import "time"

// Teacher is a teacher record owned by the staff service.
type Teacher struct {
	ID             int       `json:"id"`
	TeacherNumber  string    `json:"teacher_number"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Status         string    `json:"status"`
	Department     string    `json:"department,omitempty"`
	Position       string    `json:"position,omitempty"`
	AcademicDegree string    `json:"academic_degree,omitempty"`
	Subjects       string    `json:"subjects,omitempty"`
	MaxUserID      *int64    `json:"max_user_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TeacherInput is the payload for creating a teacher.
type TeacherInput struct {
	TeacherNumber  string `json:"teacher_number"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Status         string `json:"status,omitempty"`
	Department     string `json:"department,omitempty"`
	Position       string `json:"position,omitempty"`
	AcademicDegree string `json:"academic_degree,omitempty"`
	Subjects       string `json:"subjects,omitempty"`
}

// TeacherUpdate changes some fields of a teacher. Nil fields are left as
// they are.
type TeacherUpdate struct {
	TeacherNumber  *string `json:"teacher_number,omitempty"`
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Status         *string `json:"status,omitempty"`
	Department     *string `json:"department,omitempty"`
	Position       *string `json:"position,omitempty"`
	AcademicDegree *string `json:"academic_degree,omitempty"`
	Subjects       *string `json:"subjects,omitempty"`
}

// IsZero reports whether u changes nothing.
func (u TeacherUpdate) IsZero() bool {
	return u == TeacherUpdate{}
}

// Teacher statuses.
var TeacherStatuses = []string{"active", "inactive", "retired"}

// TeacherFilter narrows a teacher listing. Zero fields are omitted.
type TeacherFilter struct {
	Department    string
	Status        string
	TeacherNumber string
	Skip          int
	Limit         int
}
