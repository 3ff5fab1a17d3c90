package apierr_test

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/vastusite/internal/app/system/apierr"
	"github.com/dalemusser/vastusite/internal/app/system/inputval"
	"github.com/dalemusser/vastusite/internal/app/system/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) apierr.Body {
	t.Helper()
	var b apierr.Body
	if err := json.Unmarshal(rec.Body.Bytes(), &b); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return b
}

func TestValidation_FirstMessageAndFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/testimonials", nil)
	req = req.WithContext(requestid.With(req.Context(), "rid-00000001"))
	rec := httptest.NewRecorder()

	var res inputval.Result
	res.Add("rating", "Rating must be at most 5.")
	res.Add("name", "Name is required.")
	apierr.Validation(rec, req, res)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	b := decode(t, rec)
	if b.Message != "Rating must be at most 5." {
		t.Errorf("message = %q", b.Message)
	}
	if len(b.Errors) != 2 || b.Errors[0].Field != "rating" {
		t.Errorf("errors = %+v", b.Errors)
	}
	if b.RequestID != "rid-00000001" {
		t.Errorf("request_id = %q", b.RequestID)
	}
}

func TestUnauthorized_DefaultMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.Unauthorized(rec, httptest.NewRequest("POST", "/", nil), "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("missing WWW-Authenticate")
	}
	if b := decode(t, rec); b.Message != apierr.MsgUnauthorized {
		t.Errorf("message = %q", b.Message)
	}
}

func TestInternal_HidesErrorAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	rec := httptest.NewRecorder()
	apierr.Internal(rec, httptest.NewRequest("GET", "/api/news", nil), zap.New(core), "list news failed", errors.New("socket closed"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	b := decode(t, rec)
	if b.Message != apierr.MsgInternal {
		t.Errorf("message = %q", b.Message)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 log entry, got %d", logs.Len())
	}
	if got := logs.All()[0].ContextMap()["path"]; got != "/api/news" {
		t.Errorf("logged path = %v", got)
	}
}

func TestJSON_ContentType(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.JSON(rec, http.StatusCreated, map[string]string{"a": "b"})
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type = %q", ct)
	}
}

func TestJSON_UnencodableValueIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	apierr.JSON(rec, http.StatusOK, []float64{math.Inf(1)})
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if b := decode(t, rec); b.Message != apierr.MsgInternal {
		t.Errorf("message = %q", b.Message)
	}
}
