// internal/app/store/testimonials/testimonialstore.go
package testimonialstore

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
	return &Store{c: db.Collection(models.CollectionTestimonials)}
}

// Create inserts a new testimonial, assigning ID and timestamps.
// Rating bounds are checked by callers and by the collection validator.
func (s *Store) Create(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	t.Name = strings.TrimSpace(t.Name)
	now := store.Now()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Testimonial{}, fmt.Errorf("insert testimonial: %w", err)
	}
	return t, nil
}

// GetByID returns a testimonial, active or not.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Testimonial, error) {
	return store.FindOne[models.Testimonial](ctx, s.c, bson.M{"_id": id})
}

// ListActive returns active testimonials newest first. limit <= 0 means all.
func (s *Store) ListActive(ctx context.Context, limit int64) ([]models.Testimonial, error) {
	return store.FindMany[models.Testimonial](ctx, s.c, store.ActiveFilter(), store.NewestFirst(limit))
}

// ListAll returns every testimonial newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Testimonial, error) {
	return store.FindMany[models.Testimonial](ctx, s.c, bson.M{}, store.NewestFirst(0))
}

// Update writes every mutable field and returns the stored result.
func (s *Store) Update(ctx context.Context, t models.Testimonial) (models.Testimonial, error) {
	return store.SetReturning[models.Testimonial](ctx, s.c, t.ID, bson.M{
		"name":        strings.TrimSpace(t.Name),
		"message":     t.Message,
		"image":       t.Image,
		"rating":      t.Rating,
		"designation": t.Designation,
		"is_active":   t.IsActive,
		"updated_at":  store.Now(),
	})
}

// Delete removes a testimonial permanently.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return store.DeleteByID(ctx, s.c, id)
}

// Count returns the number of testimonials matching filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
