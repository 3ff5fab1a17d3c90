// Package apierr writes JSON responses and the API error envelope:
//
//	{"message": "...", "errors": [{"field": "...", "message": "..."}], "request_id": "..."}
package apierr

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/vastusite/internal/app/system/inputval"
	"github.com/dalemusser/vastusite/internal/app/system/requestid"
	"go.uber.org/zap"
)

// Body is the error envelope.
type Body struct {
	Message   string                `json:"message"`
	Errors    []inputval.FieldError `json:"errors,omitempty"`
	RequestID string                `json:"request_id,omitempty"`
}

// Generic messages for each status class.
const (
	MsgBadRequest   = "Invalid request."
	MsgUnauthorized = "Authentication required."
	MsgNotFound     = "Not found."
	MsgTooMany      = "Too many requests. Please try again later."
	MsgInternal     = "Internal server error."
)

// internalBody is sent when a response value cannot be encoded.
var internalBody = []byte(`{"message":"` + MsgInternal + `"}` + "\n")

// JSON writes v with the given status. v is encoded before the header is
// written; a value that cannot be encoded (e.g. a NaN float) becomes a 500.
func JSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = internalBody
	} else {
		body = append(body, '\n')
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Write writes an error envelope.
func Write(w http.ResponseWriter, r *http.Request, status int, msg string, fields []inputval.FieldError) {
	JSON(w, status, Body{
		Message:   msg,
		Errors:    fields,
		RequestID: requestid.From(r.Context()),
	})
}

// Validation writes 400 with the field errors; the message is the first one.
func Validation(w http.ResponseWriter, r *http.Request, res inputval.Result) {
	msg := res.First()
	if msg == "" {
		msg = MsgBadRequest
	}
	Write(w, r, http.StatusBadRequest, msg, res.Errors)
}

// BadRequest writes 400 with a single message.
func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	Write(w, r, http.StatusBadRequest, msg, nil)
}

// Unauthorized writes 401.
func Unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = MsgUnauthorized
	}
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	Write(w, r, http.StatusUnauthorized, msg, nil)
}

// NotFound writes 404.
func NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	if msg == "" {
		msg = MsgNotFound
	}
	Write(w, r, http.StatusNotFound, msg, nil)
}

// Internal logs err and writes 500 without leaking it.
func Internal(w http.ResponseWriter, r *http.Request, log *zap.Logger, msg string, err error) {
	log.Error(msg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("request_id", requestid.From(r.Context())),
	)
	Write(w, r, http.StatusInternalServerError, MsgInternal, nil)
}
