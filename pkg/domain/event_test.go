package domain

import (
	"testing"
	"time"
)

func TestValidEventCategory(t *testing.T) {
	for _, c := range EventCategories {
		if !ValidEventCategory(c) {
			t.Errorf("ValidEventCategory(%q) = false, want true", c)
		}
	}
	if ValidEventCategory("party") {
		t.Error("ValidEventCategory(\"party\") = true, want false")
	}
}

func TestEventParsedDate(t *testing.T) {
	e := Event{Date: "2025-09-01"}
	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if got := e.ParsedDate(); !got.Equal(want) {
		t.Errorf("ParsedDate() = %v, want %v", got, want)
	}

	if got := (Event{Date: "01.09.2025"}).ParsedDate(); !got.IsZero() {
		t.Errorf("ParsedDate() for malformed date = %v, want zero", got)
	}
}

func TestUpdateIsZero(t *testing.T) {
	status := "inactive"
	course := 2
	tests := []struct {
		name string
		zero bool
		want bool
	}{
		{"empty student", StudentUpdate{}.IsZero(), true},
		{"student status", StudentUpdate{Status: &status}.IsZero(), false},
		{"student course", StudentUpdate{Course: &course}.IsZero(), false},
		{"empty teacher", TeacherUpdate{}.IsZero(), true},
		{"teacher status", TeacherUpdate{Status: &status}.IsZero(), false},
		{"empty event", EventUpdate{}.IsZero(), true},
		{"event status", EventUpdate{Status: &status}.IsZero(), false},
	}
	for _, tc := range tests {
		if tc.zero != tc.want {
			t.Errorf("%s: IsZero() = %v, want %v", tc.name, tc.zero, tc.want)
		}
	}
}
