package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NetworkError means the call never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// AuthError is a 401: the backend rejected the credential.
type AuthError struct {
	Status int
	Detail string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication rejected (HTTP %d): %s", e.Status, e.Detail)
}

// ValidationError is any other 4xx carrying a structured detail payload.
type ValidationError struct {
	Status int
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request rejected (HTTP %d): %s", e.Status, e.Detail)
}

// ServerError is a 5xx.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Detail)
}

// errorDetail extracts the backend's {"detail": ...} payload. FastAPI
// emits either a plain string or a list of field errors.
func errorDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var message string
	if err := json.Unmarshal(envelope.Detail, &message); err == nil {
		return message
	}

	var fields []struct {
		Loc []json.RawMessage `json:"loc"`
		Msg string            `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &fields); err == nil && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			loc := ""
			if n := len(f.Loc); n > 0 {
				var field string
				if json.Unmarshal(f.Loc[n-1], &field) == nil {
					loc = field + ": "
				}
			}
			parts = append(parts, loc+f.Msg)
		}
		return strings.Join(parts, "; ")
	}

	return strings.TrimSpace(string(envelope.Detail))
}
