package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	userstore "github.com/dalemusser/vastusite/internal/app/store/users"
	"github.com/dalemusser/vastusite/internal/app/system/apierr"
	"github.com/dalemusser/vastusite/internal/app/system/auditlog"
	"github.com/dalemusser/vastusite/internal/app/system/inputval"
	"github.com/dalemusser/vastusite/internal/app/system/ratelimit"
	"github.com/dalemusser/vastusite/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type tokenRequest struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

const msgBadCredentials = "Invalid email or password."

// IssueToken exchanges admin credentials for a bearer token.
// POST /api/auth/token
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ClientIP(r)
	if !h.Limiter.Allow(ip) {
		h.Audit.LoginFailed(r.Context(), r, "", "api", auditlog.EventLoginRateLimited, "rate limited")
		w.Header().Set("Retry-After", "60")
		apierr.Write(w, r, http.StatusTooManyRequests, apierr.MsgTooMany, nil)
		return
	}

	var req tokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if res := inputval.Validate(req); res.HasErrors() {
		apierr.Validation(w, r, res)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	users := userstore.New(h.DB)
	u, err := users.Authenticate(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, userstore.ErrUnknownEmail):
		h.Audit.LoginFailed(ctx, r, req.Email, "api", auditlog.EventLoginFailedNotFound, "unknown email")
		apierr.Unauthorized(w, r, msgBadCredentials)
		return
	case errors.Is(err, userstore.ErrWrongPassword):
		h.Audit.LoginFailed(ctx, r, req.Email, "api", auditlog.EventLoginFailedPassword, "wrong password")
		apierr.Unauthorized(w, r, msgBadCredentials)
		return
	case errors.Is(err, userstore.ErrDisabled):
		h.Audit.LoginFailed(ctx, r, req.Email, "api", auditlog.EventLoginFailedDisabled, "account disabled")
		apierr.Unauthorized(w, r, msgBadCredentials)
		return
	case err != nil:
		apierr.Internal(w, r, h.Log, "authenticate", err)
		return
	}

	token, exp, err := h.Tokens.Issue(u.ID.Hex(), u.Email, u.Role)
	if err != nil {
		apierr.Internal(w, r, h.Log, "issue token", err)
		return
	}
	h.Limiter.Reset(ip)
	if err := users.TouchLastLogin(ctx, u.ID); err != nil {
		h.Log.Warn("touch last login failed", zap.Error(err))
	}
	h.Audit.TokenIssued(ctx, r, u.Email)

	apierr.JSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: exp})
}
