// internal/app/features/about/handler.go
package about

import (
	"context"
	"net/http"

	contentstore "github.com/dalemusser/vastusite/internal/app/store/content"
	"github.com/dalemusser/vastusite/internal/app/system/timeouts"
	"github.com/dalemusser/vastusite/internal/app/system/viewdata"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const awardsLimit = 6

type pageData struct {
	viewdata.BaseVM
	Awards []models.ContentItem
}

type Handler struct {
	Awards *contentstore.Store
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Awards: contentstore.New(db, models.KindAward), Log: logger}
}

func (h *Handler) ServeAbout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data := pageData{Awards: h.recentAwards(ctx)}
	data.BaseVM = viewdata.NewBaseVM(w, r, "About "+viewdata.Site().Name, "/")
	templates.Render(w, r, "about", data)
}

func (h *Handler) recentAwards(ctx context.Context) []models.ContentItem {
	awards, err := h.Awards.ListActive(ctx, awardsLimit)
	if err != nil {
		h.Log.Error("about: load awards", zap.Error(err))
		return nil
	}
	return awards
}
