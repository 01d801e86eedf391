package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

// Error is a non-2xx service response. Status 0 means the request never
// reached the service (network failure).
type Error struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// IsConflict reports a 409 resource-commitment conflict.
func IsConflict(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

// IsBadInput reports a 400 with optional field-level errors.
func IsBadInput(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest
}

// IsServerFault reports a 5xx response.
func IsServerFault(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status >= 500
}

// FirstFieldError returns the first non-empty field diagnostic from a 400
// response, or "".
func FirstFieldError(err error) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return ""
	}
	for _, msgs := range apiErr.Fields {
		for _, m := range msgs {
			if strings.TrimSpace(m) != "" {
				return m
			}
		}
	}
	return ""
}

// errorBody is the shape error responses tend to carry; every field is
// optional.
type errorBody struct {
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Title   string              `json:"title"`
	Errors  map[string][]string `json:"errors"`
}

// decodeError turns a non-2xx response body into an *Error, preferring the
// body's own message and falling back to a generic status-code message.
func decodeError(status int, body []byte) *Error {
	apiErr := &Error{
		Status:  status,
		Message: fmt.Sprintf("HTTP %d", status),
	}

	var parsed errorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		switch {
		case parsed.Error != "":
			apiErr.Message = parsed.Error
		case parsed.Message != "":
			apiErr.Message = parsed.Message
		case parsed.Title != "":
			apiErr.Message = parsed.Title
		}
		apiErr.Fields = parsed.Errors
	}
	return apiErr
}
