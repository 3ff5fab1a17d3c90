package api

import (
	"context"

	contentstore "github.com/dalemusser/vastusite/internal/app/store/content"
	gallerystore "github.com/dalemusser/vastusite/internal/app/store/gallery"
	productstore "github.com/dalemusser/vastusite/internal/app/store/products"
	testimonialstore "github.com/dalemusser/vastusite/internal/app/store/testimonials"
	"github.com/dalemusser/vastusite/internal/app/system/rules"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (h *Handler) contentResource(kind models.ContentKind) *resource[models.ContentItem, contentPatch] {
	s := contentstore.New(h.DB, kind)
	return &resource[models.ContentItem, contentPatch]{
		h:        h,
		name:     kind.Path(),
		singular: kind.Singular(),
		listFn: func(ctx context.Context) ([]models.ContentItem, error) {
			return s.ListActive(ctx, 0)
		},
		getFn:    s.GetByID,
		slugFn:   s.GetBySlug,
		createFn: s.Create,
		updateFn: s.Update,
		deleteFn: s.Delete,
		blank: func() models.ContentItem {
			return models.ContentItem{IsActive: true, Features: []string{}}
		},
		validate: rules.Content,
		idOf:     func(c models.ContentItem) primitive.ObjectID { return c.ID },
	}
}

func (h *Handler) productResource() *resource[models.Product, productPatch] {
	s := productstore.New(h.DB)
	return &resource[models.Product, productPatch]{
		h:        h,
		name:     "products",
		singular: "Product",
		listFn: func(ctx context.Context) ([]models.Product, error) {
			return s.ListActive(ctx, 0)
		},
		getFn:    s.GetByID,
		createFn: s.Create,
		updateFn: s.Update,
		deleteFn: s.Delete,
		blank: func() models.Product {
			return models.Product{IsActive: true, Category: models.DefaultProductCategory}
		},
		validate: rules.Product,
		idOf:     func(p models.Product) primitive.ObjectID { return p.ID },
	}
}

func (h *Handler) testimonialResource() *resource[models.Testimonial, testimonialPatch] {
	s := testimonialstore.New(h.DB)
	return &resource[models.Testimonial, testimonialPatch]{
		h:        h,
		name:     "testimonials",
		singular: "Testimonial",
		listFn: func(ctx context.Context) ([]models.Testimonial, error) {
			return s.ListActive(ctx, 0)
		},
		getFn:    s.GetByID,
		createFn: s.Create,
		updateFn: s.Update,
		deleteFn: s.Delete,
		blank: func() models.Testimonial {
			return models.Testimonial{IsActive: true, Rating: models.MaxRating}
		},
		validate: rules.Testimonial,
		idOf:     func(t models.Testimonial) primitive.ObjectID { return t.ID },
	}
}

func (h *Handler) galleryResource() *resource[models.GalleryItem, galleryPatch] {
	s := gallerystore.New(h.DB)
	return &resource[models.GalleryItem, galleryPatch]{
		h:        h,
		name:     "gallery",
		singular: "Gallery item",
		listFn: func(ctx context.Context) ([]models.GalleryItem, error) {
			return s.ListActive(ctx, "", 0)
		},
		getFn:    s.GetByID,
		createFn: s.Create,
		updateFn: s.Update,
		deleteFn: s.Delete,
		blank: func() models.GalleryItem {
			return models.GalleryItem{IsActive: true}
		},
		validate: rules.GalleryItem,
		idOf:     func(g models.GalleryItem) primitive.ObjectID { return g.ID },
	}
}
