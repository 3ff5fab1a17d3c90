// Package formutil reads typed values out of submitted admin forms.
//
// Each helper trims whitespace. Numeric helpers report whether the raw
// value parsed so handlers can show a field error instead of silently
// storing zero.
//
//	price, ok := formutil.Float(r, "price")
//	if !ok {
//		res.Add("price", "Price must be a number.")
//	}
package formutil

import (
	"math"
	"net/http"
	"strings"

	"github.com/spf13/cast"
)

// String returns the trimmed form value.
func String(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// Bool reads a checkbox. Missing means false.
func Bool(r *http.Request, key string) bool {
	v := String(r, key)
	if v == "" {
		return false
	}
	if v == "on" {
		return true
	}
	return cast.ToBool(v)
}

// Float parses a finite number. An empty value is (0, true); "Inf" and
// "NaN" are rejected because they cannot be encoded as JSON.
func Float(r *http.Request, key string) (float64, bool) {
	v := String(r, key)
	if v == "" {
		return 0, true
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || !Finite(f) {
		return 0, false
	}
	return f, true
}

// Finite reports whether f is neither infinite nor NaN.
func Finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// Int parses an integer. An empty value is (0, true).
func Int(r *http.Request, key string) (int, bool) {
	v := String(r, key)
	if v == "" {
		return 0, true
	}
	n, err := cast.ToIntE(v)
	return n, err == nil
}

// Lines splits a textarea into its non-blank lines.
func Lines(r *http.Request, key string) []string {
	raw := strings.ReplaceAll(r.FormValue(key), "\r\n", "\n")
	var out []string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
