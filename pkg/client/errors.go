package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by lookups that match no record.
var ErrNotFound = errors.New("not found")

// HTTPError represents a non-2xx HTTP response from a backend service.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// detailMessage extracts a human-readable reason from an error body.
// The services answer {"detail": "..."} or, for validation failures,
// {"detail": [{"msg": "...", "loc": [...]}]}. It returns "" when the body
// carries no usable reason.
func detailMessage(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Detail) > 0 {
		var s string
		if json.Unmarshal(payload.Detail, &s) == nil {
			return strings.TrimSpace(s)
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if json.Unmarshal(payload.Detail, &items) == nil {
			for _, it := range items {
				if msg := strings.TrimSpace(it.Msg); msg != "" {
					return msg
				}
			}
		}
		var obj struct {
			Msg     string `json:"msg"`
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Detail, &obj) == nil {
			if obj.Message != "" {
				return obj.Message
			}
			return obj.Msg
		}
	}
	return strings.TrimSpace(payload.Error)
}
