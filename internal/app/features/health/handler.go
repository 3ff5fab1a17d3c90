// Package health serves the liveness endpoint used by load balancers and
// uptime monitors.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/vastusite/internal/app/system/apierr"
	"github.com/dalemusser/vastusite/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler pings Mongo on every request.
type Handler struct {
	Client  *mongo.Client
	Service string
	Started time.Time
	Log     *zap.Logger
}

// NewHandler records the start time for the uptime field.
func NewHandler(client *mongo.Client, service string, logger *zap.Logger) *Handler {
	return &Handler{
		Client:  client,
		Service: service,
		Started: time.Now(),
		Log:     logger,
	}
}

type healthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service,omitempty"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
	Message  string `json:"message,omitempty"`
}

// Serve handles GET and HEAD /health.
//
//	200 {"status":"ok","database":"connected",...}
//	503 {"status":"error","database":"disconnected","message":"Database unavailable",...}
//
// HEAD answers with the status code only.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Cache-Control", "no-store")

	resp := healthResponse{
		Status:   "ok",
		Service:  h.Service,
		Database: "connected",
		Uptime:   time.Since(h.Started).Round(time.Second).String(),
	}
	status := http.StatusOK

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		status = http.StatusServiceUnavailable
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(status)
		return
	}
	apierr.JSON(w, status, resp)
}
