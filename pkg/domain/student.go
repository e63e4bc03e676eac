package domain

import "time"

// Student is a student record owned by the staff service.
type Student struct {
	ID             int       `json:"id"`
	StudentNumber  string    `json:"student_number"`
	Name           string    `json:"name"`
	GroupName      string    `json:"group_name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Status         string    `json:"status"`
	EnrollmentYear int       `json:"enrollment_year,omitempty"`
	Faculty        string    `json:"faculty,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Course         int       `json:"course,omitempty"`
	MaxUserID      *int64    `json:"max_user_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// StudentInput is the payload for creating a student.
type StudentInput struct {
	StudentNumber  string `json:"student_number"`
	Name           string `json:"name"`
	GroupName      string `json:"group_name"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Status         string `json:"status,omitempty"`
	EnrollmentYear int    `json:"enrollment_year,omitempty"`
	Faculty        string `json:"faculty,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Course         int    `json:"course,omitempty"`
}

// StudentUpdate changes some fields of a student. Nil fields are left as
// they are.
type StudentUpdate struct {
	StudentNumber  *string `json:"student_number,omitempty"`
	Name           *string `json:"name,omitempty"`
	GroupName      *string `json:"group_name,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Status         *string `json:"status,omitempty"`
	EnrollmentYear *int    `json:"enrollment_year,omitempty"`
	Faculty        *string `json:"faculty,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	Course         *int    `json:"course,omitempty"`
}

// IsZero reports whether u changes nothing.
func (u StudentUpdate) IsZero() bool {
	return u == StudentUpdate{}
}

// Student statuses.
var StudentStatuses = []string{"active", "inactive", "graduated", "expelled"}

// StudentFilter narrows a student listing. Zero fields are omitted.
type StudentFilter struct {
	GroupName     string
	Status        string
	Faculty       string
	Course        int
	StudentNumber string
	Skip          int
	Limit         int
}
