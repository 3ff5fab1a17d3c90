// internal/app/system/limits/limits.go
package limits

// Request body size limits.
const (
	// MaxJSONBody caps API request bodies.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxFormBody caps admin and login form posts. Markdown content is the
	// largest field a form carries.
	MaxFormBody = 512 << 10 // 512 KB
)
