// internal/app/features/admin/sections.go
package admin

import (
	"net/http"
	"strconv"
	"strings"

	contentstore "github.com/dalemusser/vastusite/internal/app/store/content"
	gallerystore "github.com/dalemusser/vastusite/internal/app/store/gallery"
	productstore "github.com/dalemusser/vastusite/internal/app/store/products"
	testimonialstore "github.com/dalemusser/vastusite/internal/app/store/testimonials"
	"github.com/dalemusser/vastusite/internal/app/system/formutil"
	"github.com/dalemusser/vastusite/internal/app/system/inputval"
	"github.com/dalemusser/vastusite/internal/app/system/rules"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func lower(s string) string { return strings.ToLower(s) }

func (h *Handler) contentSection(kind models.ContentKind) *section[models.ContentItem] {
	s := contentstore.New(h.DB, kind)
	return &section[models.ContentItem]{
		h:        h,
		path:     kind.Path(),
		plural:   kind.Plural(),
		singular: kind.Singular(),
		formTmpl: "admin_content_form",
		listFn:   s.ListAll,
		countFn:  s.Count,
		getFn:    s.GetByID,
		createFn: s.Create,
		updateFn: s.Update,
		deleteFn: s.Delete,
		blank: func() models.ContentItem {
			return models.ContentItem{IsActive: true, Features: []string{}}
		},
		fromForm: func(r *http.Request, c *models.ContentItem) inputval.Result {
			c.Title = formutil.String(r, "title")
			c.Slug = formutil.String(r, "slug")
			c.Description = formutil.String(r, "description")
			c.Content = strings.TrimSpace(r.FormValue("content"))
			c.Image = formutil.String(r, "image")
			c.Category = formutil.String(r, "category")
			c.Features = formutil.Lines(r, "features")
			c.IsActive = formutil.Bool(r, "is_active")
			return inputval.Result{}
		},
		validate: rules.Content,
		idOf:     func(c models.ContentItem) primitive.ObjectID { return c.ID },
		row: func(c models.ContentItem) listRow {
			return listRow{
				ID:        c.ID.Hex(),
				Title:     c.Title,
				Detail:    c.Slug,
				IsActive:  c.IsActive,
				CreatedAt: c.CreatedAt,
				PublicURL: "/" + kind.Path() + "/" + c.Slug,
			}
		},
		decorate: func(r *http.Request, fd *formData[models.ContentItem]) {
			fd.FeaturesText = strings.Join(fd.Item.Features, "\n")
		},
	}
}

func (h *Handler) productSection() *section[models.Product] {
	s := productstore.New(h.DB)
	return &section[models.Product]{
		h:        h,
		path:     "products",
		plural:   "Products",
		singular: "Product",
		formTmpl: "admin_product_form",
		listFn:   s.ListAll,
		countFn:  s.Count,
		getFn:    s.GetByID,
		createFn: s.Create,
		updateFn: s.Update,
		deleteFn: s.Delete,
		blank: func() models.Product {
			return models.Product{IsActive: true, Category: models.DefaultProductCategory}
		},
		fromForm: func(r *http.Request, p *models.Product) inputval.Result {
			var res inputval.Result
			p.Title = formutil.String(r, "title")
			p.Description = strings.TrimSpace(r.FormValue("description"))
			p.Image = formutil.String(r, "image")
			p.Category = formutil.String(r, "category")
			p.IsActive = formutil.Bool(r, "is_active")
			if price, ok := formutil.Float(r, "price"); ok {
				p.Price = price
			} else {
				res.Add("price", "Price must be a number.")
			}
			return res
		},
		validate: rules.Product,
		idOf:     func(p models.Product) primitive.ObjectID { return p.ID },
		row: func(p models.Product) listRow {
			return listRow{
				ID:        p.ID.Hex(),
				Title:     p.Title,
				Detail:    models.ProductCategoryLabel(p.Category) + " · " + strconv.FormatFloat(p.Price, 'f', 2, 64),
				IsActive:  p.IsActive,
				CreatedAt: p.CreatedAt,
				PublicURL: "/products",
			}
		},
		decorate: func(r *http.Request, fd *formData[models.Product]) {
			if r.Method == http.MethodPost {
				fd.PriceText = formutil.String(r, "price")
			} else if !fd.IsNew || fd.Item.Price != 0 {
				fd.PriceText = strconv.FormatFloat(fd.Item.Price, 'f', -1, 64)
			}
			for _, c := range models.ProductCategories {
				fd.Categories = append(fd.Categories, option{
					Value:    c,
					Label:    models.ProductCategoryLabel(c),
					Selected: c == fd.Item.Category,
				})
			}
		},
	}
}

func (h *Handler) testimonialSection() *section[models.Testimonial] {
	s := testimonialstore.New(h.DB)
	return &section[models.Testimonial]{
		h:        h,
		path:     "testimonials",
		plural:   "Testimonials",
		singular: "Testimonial",
		formTmpl: "admin_testimonial_form",
		listFn:   s.ListAll,
		countFn:  s.Count,
		getFn:    s.GetByID,
		createFn: s.Create,
		updateFn: s.Update,
		deleteFn: s.Delete,
		blank: func() models.Testimonial {
			return models.Testimonial{IsActive: true, Rating: models.MaxRating}
		},
		fromForm: func(r *http.Request, t *models.Testimonial) inputval.Result {
			var res inputval.Result
			t.Name = formutil.String(r, "name")
			t.Message = strings.TrimSpace(r.FormValue("message"))
			t.Image = formutil.String(r, "image")
			t.Designation = formutil.String(r, "designation")
			t.IsActive = formutil.Bool(r, "is_active")
			if rating, ok := formutil.Int(r, "rating"); ok {
				t.Rating = rating
			} else {
				res.Add("rating", "Rating must be a whole number from 1 to 5.")
			}
			return res
		},
		validate: rules.Testimonial,
		idOf:     func(t models.Testimonial) primitive.ObjectID { return t.ID },
		row: func(t models.Testimonial) listRow {
			return listRow{
				ID:        t.ID.Hex(),
				Title:     t.Name,
				Detail:    strings.Repeat("★", clampRating(t.Rating)),
				IsActive:  t.IsActive,
				CreatedAt: t.CreatedAt,
				PublicURL: "/testimonials",
			}
		},
	}
}

func (h *Handler) gallerySection() *section[models.GalleryItem] {
	s := gallerystore.New(h.DB)
	return &section[models.GalleryItem]{
		h:        h,
		path:     "gallery",
		plural:   "Gallery",
		singular: "Gallery item",
		formTmpl: "admin_gallery_form",
		listFn:   s.ListAll,
		countFn:  s.Count,
		getFn:    s.GetByID,
		createFn: s.Create,
		updateFn: s.Update,
		deleteFn: s.Delete,
		blank: func() models.GalleryItem {
			return models.GalleryItem{IsActive: true}
		},
		fromForm: func(r *http.Request, g *models.GalleryItem) inputval.Result {
			g.Image = formutil.String(r, "image")
			g.Caption = formutil.String(r, "caption")
			g.Category = formutil.String(r, "category")
			g.IsActive = formutil.Bool(r, "is_active")
			return inputval.Result{}
		},
		validate: rules.GalleryItem,
		idOf:     func(g models.GalleryItem) primitive.ObjectID { return g.ID },
		row: func(g models.GalleryItem) listRow {
			title := g.Caption
			if title == "" {
				title = g.Image
			}
			return listRow{
				ID:        g.ID.Hex(),
				Title:     title,
				Detail:    g.Category,
				IsActive:  g.IsActive,
				CreatedAt: g.CreatedAt,
				PublicURL: "/gallery",
			}
		},
	}
}

func clampRating(n int) int {
	switch {
	case n < 0:
		return 0
	case n > models.MaxRating:
		return models.MaxRating
	}
	return n
}
