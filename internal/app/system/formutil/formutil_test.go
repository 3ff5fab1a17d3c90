package formutil_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/dalemusser/vastusite/internal/app/system/formutil"
)

func formRequest(vals url.Values) *http.Request {
	r := httptest.NewRequest("POST", "/admin/products", strings.NewReader(vals.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestBool(t *testing.T) {
	r := formRequest(url.Values{"a": {"on"}, "b": {"true"}, "c": {"0"}})
	if !formutil.Bool(r, "a") || !formutil.Bool(r, "b") {
		t.Error("expected a and b true")
	}
	if formutil.Bool(r, "c") || formutil.Bool(r, "missing") {
		t.Error("expected c and missing false")
	}
}

func TestFloat(t *testing.T) {
	r := formRequest(url.Values{"price": {" 1499.50 "}, "bad": {"abc"}})
	if f, ok := formutil.Float(r, "price"); !ok || f != 1499.5 {
		t.Errorf("Float(price) = %v,%v", f, ok)
	}
	if _, ok := formutil.Float(r, "bad"); ok {
		t.Error("expected abc to fail")
	}
	if f, ok := formutil.Float(r, "missing"); !ok || f != 0 {
		t.Errorf("Float(missing) = %v,%v", f, ok)
	}
}

func TestFloat_RejectsNonFinite(t *testing.T) {
	for _, v := range []string{"Inf", "+Inf", "-Inf", "infinity", "NaN"} {
		r := formRequest(url.Values{"price": {v}})
		if f, ok := formutil.Float(r, "price"); ok {
			t.Errorf("Float(%q) = %v, want rejection", v, f)
		}
	}
}

func TestInt(t *testing.T) {
	r := formRequest(url.Values{"rating": {"5"}, "bad": {"five"}})
	if n, ok := formutil.Int(r, "rating"); !ok || n != 5 {
		t.Errorf("Int(rating) = %v,%v", n, ok)
	}
	if _, ok := formutil.Int(r, "bad"); ok {
		t.Error("expected five to fail")
	}
}

func TestLines(t *testing.T) {
	r := formRequest(url.Values{"features": {"Site visit\r\n\r\n  Report  \nFollow-up"}})
	got := formutil.Lines(r, "features")
	want := []string{"Site visit", "Report", "Follow-up"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines = %q, want %q", got, want)
	}
	if got := formutil.Lines(r, "missing"); got != nil {
		t.Errorf("Lines(missing) = %q, want nil", got)
	}
}
