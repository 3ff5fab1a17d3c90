// internal/app/store/content/contentstore.go
package contentstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalemusser/vastusite/internal/app/store"
	"github.com/dalemusser/vastusite/internal/app/system/slugs"
	"github.com/dalemusser/vastusite/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Store serves one content kind (services, awards, news or workshops).
type Store struct {
	c    *mongo.Collection
	kind models.ContentKind
}

// New returns the store for kind.
func New(db *mongo.Database, kind models.ContentKind) *Store {
	return &Store{c: db.Collection(kind.Collection()), kind: kind}
}

// Kind returns the content kind this store serves.
func (s *Store) Kind() models.ContentKind { return s.kind }

// ErrBadSlug is returned when no slug can be made from the slug or title.
var ErrBadSlug = errors.New("slug cannot be derived")

// prepare normalizes the slug (deriving it from the title when empty) and
// makes Features non-nil.
func prepare(item *models.ContentItem) error {
	item.Title = strings.TrimSpace(item.Title)
	src := strings.TrimSpace(item.Slug)
	if src == "" {
		src = item.Title
	}
	slug, err := slugs.Normalize(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSlug, err)
	}
	item.Slug = slug
	if item.Features == nil {
		item.Features = []string{}
	}
	return nil
}

// Create inserts a new item, assigning ID and timestamps.
func (s *Store) Create(ctx context.Context, item models.ContentItem) (models.ContentItem, error) {
	if err := prepare(&item); err != nil {
		return models.ContentItem{}, err
	}
	now := store.Now()
	item.ID = primitive.NewObjectID()
	item.CreatedAt = now
	item.UpdatedAt = &now

	if _, err := s.c.InsertOne(ctx, item); err != nil {
		if wafflemongo.IsDup(err) {
			return models.ContentItem{}, store.ErrDuplicateSlug
		}
		return models.ContentItem{}, fmt.Errorf("insert %s: %w", s.kind, err)
	}
	return item, nil
}

// GetByID returns any item, active or not.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.ContentItem, error) {
	return store.FindOne[models.ContentItem](ctx, s.c, bson.M{"_id": id})
}

// GetBySlug returns any item with the slug, active or not.
func (s *Store) GetBySlug(ctx context.Context, slug string) (models.ContentItem, error) {
	return store.FindOne[models.ContentItem](ctx, s.c, bson.M{"slug": strings.TrimSpace(slug)})
}

// ListActive returns active items newest first. limit <= 0 means all.
func (s *Store) ListActive(ctx context.Context, limit int64) ([]models.ContentItem, error) {
	return store.FindMany[models.ContentItem](ctx, s.c, store.ActiveFilter(), store.NewestFirst(limit))
}

// ListAll returns every item newest first, for the admin list.
func (s *Store) ListAll(ctx context.Context) ([]models.ContentItem, error) {
	return store.FindMany[models.ContentItem](ctx, s.c, bson.M{}, store.NewestFirst(0))
}

// Update writes every mutable field of item and returns the stored result.
// CreatedAt is never changed.
func (s *Store) Update(ctx context.Context, item models.ContentItem) (models.ContentItem, error) {
	if err := prepare(&item); err != nil {
		return models.ContentItem{}, err
	}
	now := store.Now()
	set := bson.M{
		"title":       item.Title,
		"slug":        item.Slug,
		"description": item.Description,
		"content":     item.Content,
		"image":       item.Image,
		"category":    item.Category,
		"features":    item.Features,
		"is_active":   item.IsActive,
		"updated_at":  now,
	}
	out, err := store.SetReturning[models.ContentItem](ctx, s.c, item.ID, set)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.ContentItem{}, store.ErrDuplicateSlug
		}
		return models.ContentItem{}, err
	}
	return out, nil
}

// Delete removes an item permanently.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	return store.DeleteByID(ctx, s.c, id)
}

// Count returns the number of items matching filter.
func (s *Store) Count(ctx context.Context, filter bson.M) (int64, error) {
	return s.c.CountDocuments(ctx, filter)
}
