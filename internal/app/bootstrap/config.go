// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const (
	devSessionKey = "dev-only-change-me-please-0123456789ABCDEF"
	devJWTSecret  = "dev-only-jwt-secret-change-me-0123456789ABCDEF"

	minSecretLen = 32
)

// appConfigKeys defines the configuration keys for the site.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: VASTUSITE_MONGO_URI, VASTUSITE_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "vastusite", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},

	{Name: "session_key", Default: devSessionKey, Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "vastusite-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "12h", Desc: "Admin session lifetime (e.g., 12h, 30m)"},

	// API tokens
	{Name: "jwt_secret", Default: devJWTSecret, Desc: "HMAC secret for API bearer tokens (32+ chars in production)"},
	{Name: "jwt_ttl", Default: "24h", Desc: "API token lifetime"},

	// Bootstrap admin
	{Name: "admin_email", Default: "", Desc: "Email of the admin account created on startup if missing"},
	{Name: "admin_password", Default: "", Desc: "Initial password of the bootstrap admin"},
	{Name: "admin_name", Default: "Administrator", Desc: "Display name of the bootstrap admin"},

	{Name: "api_cors_origins", Default: "", Desc: "Comma-separated origins allowed to call /api from a browser"},

	// Site details
	{Name: "site_name", Default: "Vastu Vidya", Desc: "Business name shown in the header"},
	{Name: "site_tagline", Default: "Vastu and astrology consultancy", Desc: "Tagline under the name"},
	{Name: "site_phone", Default: "", Desc: "Contact phone number"},
	{Name: "site_email", Default: "", Desc: "Contact email address"},
	{Name: "site_address", Default: "", Desc: "Postal address for the contact page"},

	// Audit logging
	{Name: "audit_log_file", Default: "", Desc: "Audit log file (JSON lines, rotated); blank logs to the app log only"},

	{Name: "login_rate_limit", Default: 5, Desc: "Login attempts per client IP per minute"},
	{Name: "home_services_limit", Default: 6, Desc: "Services shown on the home page"},
	{Name: "home_testimonials_limit", Default: 3, Desc: "Testimonials shown on the home page"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, VASTUSITE_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "VASTUSITE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 12*time.Hour),

		JWTSecret: appValues.String("jwt_secret"),
		JWTTTL:    appValues.Duration("jwt_ttl", 24*time.Hour),

		AdminEmail:    strings.TrimSpace(appValues.String("admin_email")),
		AdminPassword: appValues.String("admin_password"),
		AdminName:     appValues.String("admin_name"),

		APICORSOrigins: splitList(appValues.String("api_cors_origins")),

		SiteName:    appValues.String("site_name"),
		SiteTagline: appValues.String("site_tagline"),
		SitePhone:   appValues.String("site_phone"),
		SiteEmail:   appValues.String("site_email"),
		SiteAddress: appValues.String("site_address"),

		AuditLogFile: appValues.String("audit_log_file"),

		LoginRateLimit:        appValues.Int("login_rate_limit"),
		HomeServicesLimit:     appValues.Int("home_services_limit"),
		HomeTestimonialsLimit: appValues.Int("home_testimonials_limit"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The MongoDB URI is checked before connecting. In production the session
// key and JWT secret must be set to real values of at least 32 characters.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	return validateApp(coreCfg.Env == "prod", appCfg)
}

func validateApp(prod bool, appCfg AppConfig) error {
	if appCfg.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if prod {
		if appCfg.SessionKey == devSessionKey || len(appCfg.SessionKey) < minSecretLen {
			return fmt.Errorf("session_key must be set to a random value of at least %d characters in production", minSecretLen)
		}
		if appCfg.JWTSecret == devJWTSecret || len(appCfg.JWTSecret) < minSecretLen {
			return fmt.Errorf("jwt_secret must be set to a random value of at least %d characters in production", minSecretLen)
		}
	}
	if appCfg.AdminEmail != "" && appCfg.AdminPassword == "" {
		return errors.New("admin_email is set but admin_password is empty")
	}
	if appCfg.LoginRateLimit < 0 {
		return errors.New("login_rate_limit must not be negative")
	}
	return nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
