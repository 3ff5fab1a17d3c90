// Package htmlsanitize strips unsafe markup from HTML produced by admins
// (rendered markdown) before it is written into a page.
package htmlsanitize

import (
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

func ugc() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").OnElements("table", "tr", "td", "th", "img", "figure", "div", "span")
		p.AllowElements("figure", "figcaption", "mark")
		p.RequireNoReferrerOnLinks(true)
		policy = p
	})
	return policy
}

// Sanitize returns s with scripts, event handlers, iframes and
// javascript: URLs removed.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc().Sanitize(s)
}

// SanitizeToHTML sanitizes s and marks it safe for html/template.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// IsPlainText reports whether s contains no tag-like sequences.
func IsPlainText(s string) bool {
	i := strings.IndexByte(s, '<')
	return i < 0 || !strings.Contains(s[i:], ">")
}
