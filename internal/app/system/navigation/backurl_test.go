package navigation_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/vastusite/internal/app/system/navigation"
)

func TestSafeBackURL(t *testing.T) {
	opts := navigation.AdminBackURL("services")

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"valid return", "/admin/services/new?return=/admin/services", "/admin/services"},
		{"other section rejected", "/admin/services/new?return=/admin/news", "/admin/services"},
		{"edit page rejected", "/admin/services/x?return=/admin/services/abc/edit", "/admin/services"},
		{"external rejected", "/admin/services/x?return=https://evil.example", "/admin/services"},
		{"no return", "/admin/services/new", "/admin/services"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.target, nil)
			if got := navigation.SafeBackURL(r, opts); got != tc.want {
				t.Errorf("SafeBackURL = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSafeBackURL_PreservesParam(t *testing.T) {
	opts := navigation.BackURLOptions{Fallback: "/admin/gallery", PreserveQueryParam: "category"}
	r := httptest.NewRequest("GET", "/admin/gallery/new?category=homes", nil)

	if got := navigation.SafeBackURL(r, opts); got != "/admin/gallery?category=homes" {
		t.Errorf("SafeBackURL = %q", got)
	}
}

func TestLoginReturn(t *testing.T) {
	r := httptest.NewRequest("GET", "/login?return=/admin/products", nil)
	if got := navigation.SafeBackURL(r, navigation.LoginReturn); got != "/admin/products" {
		t.Errorf("SafeBackURL = %q", got)
	}
	r = httptest.NewRequest("GET", "/login?return=/logout", nil)
	if got := navigation.SafeBackURL(r, navigation.LoginReturn); got != "/admin" {
		t.Errorf("SafeBackURL = %q", got)
	}
}
