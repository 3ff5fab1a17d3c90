// internal/app/store/products/productstore.go
package productstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalemusser/vastusite/internal/app/store"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(models.CollectionProducts)}
}

func normalize(p *models.Product) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Category == "" {
		p.Category = models.DefaultProductCategory
	}
}

// Create inserts a new product, assigning ID and timestamps.
func (s *Store) Create(ctx context.Context, p models.Product) (models.Product, error) {
	normalize(&p)
	now := store.Now()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

// GetByID returns a product, active or not.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	return store.FindOne[models.Product](ctx, s.c, bson.M{"_id": id})
}

// ListActive returns active products newest first. limit <= 0 means all.
func (s *Store) ListActive(ctx context.Context, limit int64) ([]models.Product, error) {
	return store.FindMany[models.Product](ctx, s.c, store.ActiveFilter(), store.NewestFirst(limit))
}

// ListActiveByCategory narrows ListActive to one category.
func (s *Store) ListActiveByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return store.FindMany[models.Product](ctx, s.c, bson.M{"is_active": true, "category": category}, store.NewestFirst(0))
}

// ListAll returns every product newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Product, error) {
	return store.FindMany[models.Product](ctx, s.c, bson.M{}, store.NewestFirst(0))
}

// Update writes every mutable field and returns the stored result.
func (s *Store) Update(ctx context.Context, p models.Product) (models.Product, error) {
	normalize(&p)
	return store.SetReturning[models.Product](ctx, s.c, p.ID, bson.M{
		"title":       p.Title,
		"description": p.Description,
		"image":       p.Image,
		"price":       p.Price,
		"category":    p.Category,
		"is_active":   p.IsActive,
		"updated_at":  store.Now(),
	})
}

// Delete removes a product permanently.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return store.DeleteByID(ctx, s.c, id)
}

// Count returns the number of products matching filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
