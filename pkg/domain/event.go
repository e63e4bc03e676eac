package domain

import "time"

// Event is a campus event owned by the events service.
type Event struct {
	ID                int       `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Date              string    `json:"date"` // YYYY-MM-DD
	Time              string    `json:"time"`
	Location          string    `json:"location"`
	Category          string    `json:"category"`
	ImageURL          string    `json:"image_url,omitempty"`
	MaxParticipants   int       `json:"max_participants,omitempty"`
	RegistrationURL   string    `json:"registration_url,omitempty"`
	Status            string    `json:"status"`
	Tags              string    `json:"tags,omitempty"`
	ParticipantsCount int       `json:"participants_count"`
	Organizer         string    `json:"organizer,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// EventInput is the payload for creating an event.
type EventInput struct {
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	MaxParticipants int    `json:"max_participants,omitempty"`
	RegistrationURL string `json:"registration_url,omitempty"`
	Status          string `json:"status,omitempty"`
	Tags            string `json:"tags,omitempty"`
	Organizer       string `json:"organizer,omitempty"`
}

// EventUpdate changes some fields of an event. Nil fields are left as they
// are.
type EventUpdate struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	Date            *string `json:"date,omitempty"`
	Time            *string `json:"time,omitempty"`
	Location        *string `json:"location,omitempty"`
	Category        *string `json:"category,omitempty"`
	MaxParticipants *int    `json:"max_participants,omitempty"`
	RegistrationURL *string `json:"registration_url,omitempty"`
	Status          *string `json:"status,omitempty"`
	Tags            *string `json:"tags,omitempty"`
	Organizer       *string `json:"organizer,omitempty"`
}

// IsZero reports whether u changes nothing.
func (u EventUpdate) IsZero() bool {
	return u == EventUpdate{}
}

// Event categories.
var EventCategories = []string{"conference", "workshop", "seminar", "competition", "exhibition", "other"}

// Event statuses.
var EventStatuses = []string{"draft", "published", "completed", "cancelled"}

// ValidEventCategory returns true if category is a known event category.
func ValidEventCategory(category string) bool {
	for _, c := range EventCategories {
		if c == category {
			return true
		}
	}
	return false
}

// EventDateLayout is the wire format of Event.Date.
const EventDateLayout = "2006-01-02"

// ParsedDate parses the event's date. It returns the zero time when the date is
// missing or malformed.
func (e Event) ParsedDate() time.Time {
	t, err := time.Parse(EventDateLayout, e.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}

// EventFilter narrows an event listing. Zero fields are omitted.
type EventFilter struct {
	Category string
	Status   string
	DateFrom string
	DateTo   string
	Skip     int
	Limit    int
}
