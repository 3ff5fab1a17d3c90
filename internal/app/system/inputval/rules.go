package inputval

import (
	"net/url"
	"strings"
)

// IsValidHTTPURL reports whether s (trimmed) is an absolute http or https URL
// with a host.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidImageRef accepts an absolute http(s) URL or a site-relative path
// such as /static/img/hero.jpg.
func IsValidImageRef(s string) bool {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return !strings.ContainsAny(s, " \t\r\n")
	}
	return IsValidHTTPURL(s)
}
