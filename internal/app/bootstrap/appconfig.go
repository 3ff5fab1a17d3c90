// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// AppConfig is where everything specific to the consultancy site lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: vastusite-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Admin session lifetime

	// API bearer tokens
	JWTSecret string
	JWTTTL    time.Duration

	// Bootstrap admin, created on startup when missing
	AdminEmail    string
	AdminPassword string
	AdminName     string

	// Origins allowed to call /api from a browser. Empty disables CORS.
	APICORSOrigins []string

	// Business details shown in the header, footer and contact page
	SiteName    string
	SiteTagline string
	SitePhone   string
	SiteEmail   string
	SiteAddress string

	// Audit log file (JSON lines, rotated). Empty logs to the app logger only.
	AuditLogFile string

	// Login attempts allowed per client IP per minute (form and API)
	LoginRateLimit int

	// Home page section sizes
	HomeServicesLimit     int
	HomeTestimonialsLimit int
}
