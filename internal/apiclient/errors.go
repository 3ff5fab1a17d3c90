package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MsgRequestFailed is used when an error response carries no message.
const MsgRequestFailed = "request failed"

// FieldError is one per-field validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned for any non-2xx response.
type Error struct {
	Status    int
	Message   string
	Fields    []FieldError
	RequestID string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// FieldMessage returns the message for field, or "".
func (e *Error) FieldMessage(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool { return StatusOf(err) == http.StatusUnauthorized }

type errorBody struct {
	Message   string       `json:"message"`
	Errors    []FieldError `json:"errors"`
	RequestID string       `json:"request_id"`
}

func newError(resp *http.Response) *Error {
	e := &Error{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		e.Message = body.Message
		e.Fields = body.Errors
		e.RequestID = body.RequestID
	}
	if e.Message == "" && len(e.Fields) > 0 {
		e.Message = e.Fields[0].Message
	}
	if e.Message == "" {
		e.Message = MsgRequestFailed
	}
	return e
}
