// internal/app/features/admin/handler.go
package admin

import (
	uierrors "github.com/dalemusser/vastusite/internal/app/features/errors"
	"github.com/dalemusser/vastusite/internal/app/system/auditlog"
	"github.com/dalemusser/vastusite/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the admin panel: the dashboard and one list/new/edit/delete
// section per resource.
type Handler struct {
	DB         *mongo.Database
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Audit      *auditlog.Logger
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Audit:      audit,
		Log:        logger,
	}
}
