package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
	// clock spaces out created_at so list ordering is deterministic.
	clock time.Time
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t, clock: time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert into %s: %v", coll, err)
	}
}

// CreateAdmin creates an active admin with the given password.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email, password string) models.User {
	f.t.Helper()
	return f.createUser(ctx, fullName, email, password, models.StatusActive)
}

// CreateDisabledAdmin creates an admin who may not sign in.
func (f *Fixtures) CreateDisabledAdmin(ctx context.Context, fullName, email, password string) models.User {
	f.t.Helper()
	return f.createUser(ctx, fullName, email, password, models.StatusDisabled)
}

func (f *Fixtures) createUser(ctx context.Context, fullName, email, password, status string) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	now := f.tick()
	user := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		Email:        text.Fold(email),
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, models.CollectionUsers, user)
	return user
}

// CreateContent creates a content item of the given kind.
func (f *Fixtures) CreateContent(ctx context.Context, kind models.ContentKind, title, slug string, active bool) models.ContentItem {
	f.t.Helper()

	item := models.ContentItem{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Slug:        slug,
		Description: title + " description",
		Content:     "## " + title + "\n\nDetails.",
		Features:    []string{},
		IsActive:    active,
		CreatedAt:   f.tick(),
	}
	f.insert(ctx, kind.Collection(), item)
	return item
}

// CreateProduct creates a product in the default category.
func (f *Fixtures) CreateProduct(ctx context.Context, title string, price float64, active bool) models.Product {
	f.t.Helper()
	return f.CreateProductIn(ctx, models.DefaultProductCategory, title, price, active)
}

// CreateProductIn creates a product in the given category.
func (f *Fixtures) CreateProductIn(ctx context.Context, category, title string, price float64, active bool) models.Product {
	f.t.Helper()

	p := models.Product{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: title + " description",
		Price:       price,
		Category:    category,
		IsActive:    active,
		CreatedAt:   f.tick(),
	}
	f.insert(ctx, models.CollectionProducts, p)
	return p
}

// CreateTestimonial creates a testimonial.
func (f *Fixtures) CreateTestimonial(ctx context.Context, name string, rating int, active bool) models.Testimonial {
	f.t.Helper()

	tm := models.Testimonial{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Message:   "Great advice from " + name,
		Rating:    rating,
		IsActive:  active,
		CreatedAt: f.tick(),
	}
	f.insert(ctx, models.CollectionTestimonials, tm)
	return tm
}

// CreateGalleryItem creates a gallery image.
func (f *Fixtures) CreateGalleryItem(ctx context.Context, caption, category string, active bool) models.GalleryItem {
	f.t.Helper()

	g := models.GalleryItem{
		ID:        primitive.NewObjectID(),
		Image:     "/static/img/" + primitive.NewObjectID().Hex() + ".jpg",
		Caption:   caption,
		Category:  category,
		IsActive:  active,
		CreatedAt: f.tick(),
	}
	f.insert(ctx, models.CollectionGallery, g)
	return g
}
