// Package content serves the public list and detail pages of the slugged
// content kinds: services, awards, news and workshops.
package content

import (
	"context"
	"errors"
	"html/template"
	"net/http"

	uierrors "github.com/dalemusser/vastusite/internal/app/features/errors"
	"github.com/dalemusser/vastusite/internal/app/store"
	contentstore "github.com/dalemusser/vastusite/internal/app/store/content"
	"github.com/dalemusser/vastusite/internal/app/system/markdown"
	"github.com/dalemusser/vastusite/internal/app/system/timeouts"
	"github.com/dalemusser/vastusite/internal/app/system/viewdata"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves one content kind.
type Handler struct {
	Kind   models.ContentKind
	Store  *contentstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, kind models.ContentKind, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Kind:   kind,
		Store:  contentstore.New(db, kind),
		ErrLog: errLog,
		Log:    logger,
	}
}

type listData struct {
	viewdata.BaseVM
	Path  string
	Items []models.ContentItem
}

type detailData struct {
	viewdata.BaseVM
	Path string
	Item models.ContentItem
	Body template.HTML
}

// GET /<kind>
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := listData{Path: h.Kind.Path(), Items: h.loadActive(ctx)}
	data.BaseVM = viewdata.NewBaseVM(w, r, h.Kind.Plural(), "/")
	templates.Render(w, r, "content_list", data)
}

// loadActive returns the visible items, or none when the fetch fails.
func (h *Handler) loadActive(ctx context.Context) []models.ContentItem {
	items, err := h.Store.ListActive(ctx, 0)
	if err != nil {
		h.Log.Error("load content list", zap.String("kind", string(h.Kind)), zap.Error(err))
		return nil
	}
	return items
}

// GET /<kind>/{slug}
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	item, err := h.findVisible(ctx, chi.URLParam(r, "slug"))
	if errors.Is(err, store.ErrNotFound) {
		uierrors.RenderNotFound(w, r, h.Kind.Singular()+" not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load content item", err, "Could not load this page.", "/"+h.Kind.Path())
		return
	}

	templates.Render(w, r, "content_detail", detailData{
		BaseVM: viewdata.NewBaseVM(w, r, item.Title, "/"+h.Kind.Path()),
		Path:   h.Kind.Path(),
		Item:   item,
		Body:   markdown.MustRender(item.Content),
	})
}

// findVisible looks up an active item by slug. Hidden items are reported
// as not found.
func (h *Handler) findVisible(ctx context.Context, slug string) (models.ContentItem, error) {
	item, err := h.Store.GetBySlug(ctx, slug)
	if err != nil {
		return models.ContentItem{}, err
	}
	if !item.IsActive {
		return models.ContentItem{}, store.ErrNotFound
	}
	return item, nil
}
