package products

import (
	"context"
	"net/http"

	productstore "github.com/dalemusser/vastusite/internal/app/store/products"
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
	Store *productstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Store: productstore.New(db), Log: logger}
}

// group is one category heading on the products page.
type group struct {
	Category string
	Label    string
	Items    []models.Product
}

type filter struct {
	Value  string
	Label  string
	Active bool
}

type pageData struct {
	viewdata.BaseVM
	Category string
	Filters  []filter
	Groups   []group
}

// GET /products?category=
func (h *Handler) ServeProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := h.buildPage(ctx, query.Get(r, "category"))
	data.BaseVM = viewdata.NewBaseVM(w, r, "Products", "/")
	templates.Render(w, r, "products", data)
}

// buildPage loads active products, narrowed to one category when it names
// a known one. Anything else lists every category.
func (h *Handler) buildPage(ctx context.Context, category string) pageData {
	category = normalize.Category(category)
	if !models.IsValidProductCategory(category) {
		category = ""
	}

	var (
		items []models.Product
		err   error
	)
	if category == "" {
		items, err = h.Store.ListActive(ctx, 0)
	} else {
		items, err = h.Store.ListActiveByCategory(ctx, category)
	}
	if err != nil {
		h.Log.Error("load products", zap.String("category", category), zap.Error(err))
		items = nil
	}

	filters := make([]filter, 0, len(models.ProductCategories)+1)
	filters = append(filters, filter{Value: "", Label: "All", Active: category == ""})
	for _, c := range models.ProductCategories {
		filters = append(filters, filter{Value: c, Label: models.ProductCategoryLabel(c), Active: c == category})
	}

	return pageData{Category: category, Filters: filters, Groups: groupByCategory(items)}
}

// groupByCategory buckets items in ProductCategories order, keeping the
// newest-first order inside each bucket. Empty categories are omitted.
func groupByCategory(items []models.Product) []group {
	buckets := make(map[string][]models.Product, len(models.ProductCategories))
	for _, p := range items {
		c := p.Category
		if !models.IsValidProductCategory(c) {
			c = models.DefaultProductCategory
		}
		buckets[c] = append(buckets[c], p)
	}

	var out []group
	for _, c := range models.ProductCategories {
		if len(buckets[c]) == 0 {
			continue
		}
		out = append(out, group{Category: c, Label: models.ProductCategoryLabel(c), Items: buckets[c]})
	}
	return out
}
