package gallery

import (
	"context"
	"net/http"
	"strings"

	gallerystore "github.com/dalemusser/vastusite/internal/app/store/gallery"
	"github.com/dalemusser/vastusite/internal/app/system/normalize"
	"github.com/dalemusser/vastusite/internal/app/system/timeouts"
	"github.com/dalemusser/vastusite/internal/app/system/viewdata"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Store *gallerystore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Store: gallerystore.New(db), Log: logger}
}

// filter is one category tab above the gallery grid.
type filter struct {
	Value  string
	Label  string
	Active bool
}

type pageData struct {
	viewdata.BaseVM
	Category string
	Filters  []filter
	Items    []models.GalleryItem
}

// GET /gallery?category=
func (h *Handler) ServeGallery(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := h.buildPage(ctx, query.Get(r, "category"))
	data.BaseVM = viewdata.NewBaseVM(w, r, "Gallery", "/")
	templates.Render(w, r, "gallery", data)
}

func (h *Handler) buildPage(ctx context.Context, category string) pageData {
	category = normalize.Category(category)
	if category == "all" {
		category = ""
	}

	items, err := h.Store.ListActive(ctx, category, 0)
	if err != nil {
		h.Log.Error("load gallery", zap.String("category", category), zap.Error(err))
		items = nil
	}

	cats, err := h.Store.ActiveCategories(ctx)
	if err != nil {
		h.Log.Error("load gallery categories", zap.Error(err))
		cats = nil
	}

	filters := make([]filter, 0, len(cats)+1)
	filters = append(filters, filter{Value: "", Label: "All", Active: category == ""})
	for _, c := range cats {
		filters = append(filters, filter{Value: c, Label: categoryLabel(c), Active: c == category})
	}

	return pageData{Category: category, Filters: filters, Items: items}
}

// categoryLabel turns "home-interiors" into "Home interiors".
func categoryLabel(c string) string {
	s := strings.ReplaceAll(c, "-", " ")
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
