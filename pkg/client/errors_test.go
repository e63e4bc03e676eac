package client

import (
	"errors"
	"fmt"
	"testing"
)

func TestDetailMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"Invalid credentials"}`, "Invalid credentials"},
		{"validation list", `{"detail":[{"loc":["body","phone"],"msg":"bad phone","type":"value_error"}]}`, "bad phone"},
		{"object detail", `{"detail":{"message":"locked"}}`, "locked"},
		{"error field", `{"error":"boom"}`, "boom"},
		{"empty detail", `{"detail":""}`, ""},
		{"no reason", `{"status":"nope"}`, ""},
		{"not json", `<html>502</html>`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detailMessage([]byte(tt.body)); got != tt.want {
				t.Errorf("detailMessage(%s) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}

func TestIsStatus(t *testing.T) {
	err := fmt.Errorf("client.GetStudent: %w", &HTTPError{StatusCode: 404, Message: "Student not found"})
	if !IsStatus(err, 404) {
		t.Error("expected IsStatus(err, 404) = true through wrapping")
	}
	if IsStatus(err, 401) {
		t.Error("expected IsStatus(err, 401) = false")
	}
	if IsStatus(errors.New("plain"), 404) {
		t.Error("expected IsStatus(plain error) = false")
	}
	if got := err.Error(); got != "client.GetStudent: HTTP 404: Student not found" {
		t.Errorf("Error() = %q", got)
	}
	if got := (&HTTPError{StatusCode: 500}).Error(); got != "HTTP 500" {
		t.Errorf("Error() without message = %q, want %q", got, "HTTP 500")
	}
}
