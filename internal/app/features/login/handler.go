// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/dalemusser/vastusite/internal/app/features/errors"
	userstore "github.com/dalemusser/vastusite/internal/app/store/users"
	"github.com/dalemusser/vastusite/internal/app/system/auditlog"
	"github.com/dalemusser/vastusite/internal/app/system/auth"
	"github.com/dalemusser/vastusite/internal/app/system/authz"
	"github.com/dalemusser/vastusite/internal/app/system/navigation"
	"github.com/dalemusser/vastusite/internal/app/system/ratelimit"
	"github.com/dalemusser/vastusite/internal/app/system/timeouts"
	"github.com/dalemusser/vastusite/internal/app/system/viewdata"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users      *userstore.Store
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Audit      *auditlog.Logger
	Limiter    *ratelimit.Limiter
	Log        *zap.Logger
}

// NewHandler builds the login handler. A nil limiter allows five attempts
// per client per minute.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, limiter *ratelimit.Limiter, logger *zap.Logger) *Handler {
	if limiter == nil {
		limiter = ratelimit.New(5, time.Minute)
	}
	return &Handler{
		Users:      userstore.New(db),
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Audit:      audit,
		Limiter:    limiter,
		Log:        logger,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Email     string
	ReturnURL string
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if authz.IsAdmin(r) {
		http.Redirect(w, r, navigation.SafeBackURL(r, navigation.LoginReturn), http.StatusSeeOther)
		return
	}
	h.renderForm(w, r, http.StatusOK, "", "")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	ip := ratelimit.ClientIP(r)
	if !h.Limiter.Allow(ip) {
		h.Audit.LoginFailed(r.Context(), r, email, "password", auditlog.EventLoginRateLimited, "rate limited")
		w.Header().Set("Retry-After", "60")
		h.renderForm(w, r, http.StatusTooManyRequests, "Too many sign-in attempts. Please wait a minute and try again.", email)
		return
	}

	if email == "" || password == "" {
		h.renderForm(w, r, http.StatusBadRequest, "Please enter your email and password.", email)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Authenticate(ctx, email, password)
	switch {
	case errors.Is(err, userstore.ErrUnknownEmail):
		h.Audit.LoginFailed(ctx, r, email, "password", auditlog.EventLoginFailedNotFound, "unknown email")
		h.renderForm(w, r, http.StatusUnauthorized, "Invalid email or password.", email)
		return
	case errors.Is(err, userstore.ErrWrongPassword):
		h.Audit.LoginFailed(ctx, r, email, "password", auditlog.EventLoginFailedPassword, "wrong password")
		h.renderForm(w, r, http.StatusUnauthorized, "Invalid email or password.", email)
		return
	case errors.Is(err, userstore.ErrDisabled):
		h.Audit.LoginFailed(ctx, r, email, "password", auditlog.EventLoginFailedDisabled, "account disabled")
		h.renderForm(w, r, http.StatusForbidden, "Your account is currently disabled.", email)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "authenticate", err, "A server error occurred.", "/login")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, userstore.SessionUserOf(u)); err != nil {
		h.Log.Error("save session failed", zap.Error(err), zap.String("email", u.Email))
		h.renderForm(w, r, http.StatusInternalServerError, "Unable to create session. Please try again.", email)
		return
	}

	h.Limiter.Reset(ip)
	if err := h.Users.TouchLastLogin(ctx, u.ID); err != nil {
		h.Log.Warn("touch last login failed", zap.Error(err))
	}
	h.Audit.LoginSuccess(ctx, r, u.Email, "password")

	http.Redirect(w, r, navigation.SafeBackURL(r, navigation.LoginReturn), http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, msg, email string) {
	vm := viewdata.NewBaseVM(w, r, "Sign in", "/")
	vm.Error = msg
	viewdata.RenderStatus(w, r, status, "login", loginFormData{
		BaseVM:    vm,
		Email:     email,
		ReturnURL: navigation.SafeBackURL(r, navigation.LoginReturn),
	})
}
