// internal/app/store/gallery/gallerystore.go
package gallerystore

import (
	"context"
	"fmt"
	"sort"

	"github.com/dalemusser/vastusite/internal/app/store"
	"github.com/dalemusser/vastusite/internal/app/system/normalize"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(models.CollectionGallery)}
}

// Create inserts a new gallery item, assigning ID and timestamps.
func (s *Store) Create(ctx context.Context, g models.GalleryItem) (models.GalleryItem, error) {
	g.Category = normalize.Category(g.Category)
	now := store.Now()
	g.ID = primitive.NewObjectID()
	g.CreatedAt = now
	g.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.GalleryItem{}, fmt.Errorf("insert gallery item: %w", err)
	}
	return g, nil
}

// GetByID returns an item, active or not.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.GalleryItem, error) {
	return store.FindOne[models.GalleryItem](ctx, s.c, bson.M{"_id": id})
}

// ListActive returns active items newest first. An empty category means all
// categories; limit <= 0 means no limit.
func (s *Store) ListActive(ctx context.Context, category string, limit int64) ([]models.GalleryItem, error) {
	filter := store.ActiveFilter()
	if c := normalize.Category(category); c != "" {
		filter["category"] = c
	}
	return store.FindMany[models.GalleryItem](ctx, s.c, filter, store.NewestFirst(limit))
}

// ListAll returns every item newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.GalleryItem, error) {
	return store.FindMany[models.GalleryItem](ctx, s.c, bson.M{}, store.NewestFirst(0))
}

// ActiveCategories returns the distinct non-empty categories of active items, sorted.
func (s *Store) ActiveCategories(ctx context.Context) ([]string, error) {
	raw, err := s.c.Distinct(ctx, "category", store.ActiveFilter())
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if c, ok := v.(string); ok && c != "" {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Update writes every mutable field and returns the stored result.
func (s *Store) Update(ctx context.Context, g models.GalleryItem) (models.GalleryItem, error) {
	return store.SetReturning[models.GalleryItem](ctx, s.c, g.ID, bson.M{
		"image":      g.Image,
		"caption":    g.Caption,
		"category":   normalize.Category(g.Category),
		"is_active":  g.IsActive,
		"updated_at": store.Now(),
	})
}

// Delete removes an item permanently.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return store.DeleteByID(ctx, s.c, id)
}

// Count returns the number of items matching filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
