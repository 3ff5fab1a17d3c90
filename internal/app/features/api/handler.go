// Package api serves the JSON content API under /api.
package api

import (
	"time"

	"github.com/dalemusser/vastusite/internal/app/system/apitoken"
	"github.com/dalemusser/vastusite/internal/app/system/auditlog"
	"github.com/dalemusser/vastusite/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds the dependencies shared by every API resource.
type Handler struct {
	DB      *mongo.Database
	Tokens  *apitoken.Issuer
	Audit   *auditlog.Logger
	Limiter *ratelimit.Limiter
	Log     *zap.Logger
}

// NewHandler wires the API. A nil limiter allows five token requests per
// client per minute.
func NewHandler(db *mongo.Database, tokens *apitoken.Issuer, audit *auditlog.Logger, limiter *ratelimit.Limiter, logger *zap.Logger) *Handler {
	if limiter == nil {
		limiter = ratelimit.New(5, time.Minute)
	}
	return &Handler{
		DB:      db,
		Tokens:  tokens,
		Audit:   audit,
		Limiter: limiter,
		Log:     logger,
	}
}
