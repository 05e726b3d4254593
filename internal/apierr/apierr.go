// Package apierr provides the normalized error type returned by the
// request pipeline, so callers can branch on field-level validation
// errors versus generic failures.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors for common failure modes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("service unavailable")
)

// APIError is a failed API call. StatusCode 0 means the request never
// produced an HTTP response (transport failure). Fields carries
// field-keyed validation messages when the server returned them.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string][]string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	if len(e.Fields) > 0 {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.fieldSummary())
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) fieldSummary() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], "; ")))
	}
	return strings.Join(parts, ", ")
}

// Transport wraps a failure that produced no HTTP response.
func Transport(err error) *APIError {
	return &APIError{Message: err.Error(), Err: ErrUnavailable}
}

// Validation builds a client-side validation failure from field-keyed
// messages, in the same shape the server uses.
func Validation(fields map[string][]string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Message:    "validation failed",
		Fields:     fields,
		Err:        ErrInvalidInput,
	}
}

// FromResponse normalizes a non-2xx response into an APIError. Bodies
// in the server's field-error shape ({"field": ["msg", ...]}) populate
// Fields; a {"detail": "..."} or {"message": "..."} body populates
// Message.
func FromResponse(statusCode int, body []byte) *APIError {
	e := &APIError{
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
		Err:        sentinelFor(statusCode),
	}

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(body, &parsed); err != nil {
		return e
	}

	fields := make(map[string][]string)
	for key, raw := range parsed {
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil {
			if key == "detail" || key == "message" {
				e.Message = msg
			} else {
				fields[key] = []string{msg}
			}
			continue
		}
		var msgs []string
		if err := json.Unmarshal(raw, &msgs); err == nil && len(msgs) > 0 {
			fields[key] = msgs
		}
	}
	if len(fields) > 0 {
		e.Fields = fields
	}
	return e
}

func sentinelFor(statusCode int) error {
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return ErrUnauthorized
	case statusCode == http.StatusNotFound:
		return ErrNotFound
	case statusCode >= 500:
		return ErrUnavailable
	case statusCode >= 400:
		return ErrInvalidInput
	}
	return nil
}

// IsAuthFailure reports whether err is a 401/403 authorization failure.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidation reports whether err carries field-keyed validation
// messages.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && len(apiErr.Fields) > 0
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// FieldsOf returns the field-keyed validation messages carried by err,
// or nil.
func FieldsOf(err error) map[string][]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}
