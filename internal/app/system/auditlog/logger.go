// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"

	"github.com/dalemusser/vastusite/internal/app/system/ratelimit"
	"github.com/dalemusser/vastusite/internal/app/system/requestid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Event categories
const (
	CategoryAuth    = "auth"
	CategoryContent = "content"
)

// Event types
const (
	EventLoginSuccess        = "login_success"
	EventLoginFailedNotFound = "login_failed_user_not_found"
	EventLoginFailedPassword = "login_failed_wrong_password"
	EventLoginFailedDisabled = "login_failed_user_disabled"
	EventLoginRateLimited    = "login_failed_rate_limit"
	EventLogout              = "logout"
	EventTokenIssued         = "api_token_issued"

	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// Event is one audit record.
type Event struct {
	Category  string
	EventType string
	Actor     string // email or user id of whoever acted
	Resource  string // e.g. "services"
	TargetID  string
	Via       string // "admin" or "api"
	IP        string
	UserAgent string
	Success   bool
	Reason    string
	RequestID string
}

// Config controls where audit events go.
type Config struct {
	// File is the JSON-lines audit file. Empty disables the file sink.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Logger records audit events to a rotating file and mirrors them to the app logger.
// A nil *Logger is a no-op so tests can pass nil.
type Logger struct {
	file   *zap.Logger
	app    *zap.Logger
	closer func() error
}

// New builds an audit logger. app must be non-nil.
func New(app *zap.Logger, cfg Config) *Logger {
	l := &Logger{app: app, closer: func() error { return nil }}
	if cfg.File == "" {
		return l
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    orDefault(cfg.MaxSizeMB, 50),
		MaxBackups: orDefault(cfg.MaxBackups, 10),
		MaxAge:     orDefault(cfg.MaxAgeDays, 90),
		Compress:   true,
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(lj), zapcore.InfoLevel)

	l.file = zap.New(core)
	l.closer = lj.Close
	return l
}

// NewWithCore builds an audit logger over an explicit file core. Tests use it
// with zaptest/observer.
func NewWithCore(app *zap.Logger, core zapcore.Core) *Logger {
	return &Logger{app: app, file: zap.New(core), closer: func() error { return nil }}
}

// Close flushes and closes the audit file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	if l.file != nil {
		_ = l.file.Sync()
	}
	return l.closer()
}

// Log records an event.
func (l *Logger) Log(ctx context.Context, e Event) {
	if l == nil {
		return
	}
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", e.Category),
		zap.String("event_type", e.EventType),
		zap.Bool("success", e.Success),
	}
	fields = appendIf(fields, "actor", e.Actor)
	fields = appendIf(fields, "resource", e.Resource)
	fields = appendIf(fields, "target_id", e.TargetID)
	fields = appendIf(fields, "via", e.Via)
	fields = appendIf(fields, "ip", e.IP)
	fields = appendIf(fields, "user_agent", e.UserAgent)
	fields = appendIf(fields, "failure_reason", e.Reason)
	fields = appendIf(fields, "request_id", e.RequestID)

	if l.file != nil {
		l.file.Info("audit event", fields...)
	}
	if l.app != nil {
		if e.Success {
			l.app.Info("audit event", fields...)
		} else {
			l.app.Warn("audit event", fields...)
		}
	}
}

// --- Authentication Events ---

// LoginSuccess logs a successful admin sign-in.
func (l *Logger) LoginSuccess(ctx context.Context, r *http.Request, email, via string) {
	l.Log(ctx, fromRequest(r, Event{
		Category:  CategoryAuth,
		EventType: EventLoginSuccess,
		Actor:     email,
		Via:       via,
		Success:   true,
	}))
}

// LoginFailed logs a rejected sign-in. eventType is one of the EventLoginFailed* values.
func (l *Logger) LoginFailed(ctx context.Context, r *http.Request, email, via, eventType, reason string) {
	l.Log(ctx, fromRequest(r, Event{
		Category:  CategoryAuth,
		EventType: eventType,
		Actor:     email,
		Via:       via,
		Reason:    reason,
	}))
}

// Logout logs a sign-out.
func (l *Logger) Logout(ctx context.Context, r *http.Request, email string) {
	l.Log(ctx, fromRequest(r, Event{
		Category:  CategoryAuth,
		EventType: EventLogout,
		Actor:     email,
		Via:       "admin",
		Success:   true,
	}))
}

// TokenIssued logs a bearer token handed out by the API.
func (l *Logger) TokenIssued(ctx context.Context, r *http.Request, email string) {
	l.Log(ctx, fromRequest(r, Event{
		Category:  CategoryAuth,
		EventType: EventTokenIssued,
		Actor:     email,
		Via:       "api",
		Success:   true,
	}))
}

// --- Content Events ---

// Mutation logs a create/update/delete on a resource.
func (l *Logger) Mutation(ctx context.Context, r *http.Request, actor, via, resource, eventType, id string) {
	l.Log(ctx, fromRequest(r, Event{
		Category:  CategoryContent,
		EventType: eventType,
		Actor:     actor,
		Resource:  resource,
		TargetID:  id,
		Via:       via,
		Success:   true,
	}))
}

func fromRequest(r *http.Request, e Event) Event {
	if r == nil {
		return e
	}
	e.IP = ratelimit.ClientIP(r)
	e.UserAgent = r.UserAgent()
	e.RequestID = requestid.From(r.Context())
	return e
}

func appendIf(fields []zap.Field, key, val string) []zap.Field {
	if val == "" {
		return fields
	}
	return append(fields, zap.String(key, val))
}

func orDefault(v, d int) int {
	if v <= 0 {
		return d
	}
	return v
}
