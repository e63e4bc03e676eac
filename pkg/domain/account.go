package domain

import "time"

// Candidate is the payload for registering a new account.
type Candidate struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// WithDefaults returns a copy of c with an empty role set to student and the
// account marked active.
func (c Candidate) WithDefaults() Candidate {
	if c.Role == "" {
		c.Role = RoleStudent
	}
	c.IsActive = true
	return c
}

// Account is the auth service's representation of a registered account.
type Account struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
