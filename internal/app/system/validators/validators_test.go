package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/vastusite/internal/app/system/validators"
	"github.com/dalemusser/vastusite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := make(map[string]bool)
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{"users", "services", "awards", "news", "workshops", "products", "testimonials", "gallery"} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestTestimonialsValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	c := db.Collection("testimonials")
	now := time.Now().UTC()

	tests := []struct {
		name    string
		rating  int
		wantErr bool
	}{
		{"rating 5 accepted", 5, false},
		{"rating 1 accepted", 1, false},
		{"rating 6 rejected", 6, true},
		{"rating 0 rejected", 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.InsertOne(ctx, bson.M{
				"name":       "Asha",
				"message":    "Helpful.",
				"rating":     tc.rating,
				"is_active":  true,
				"created_at": now,
			})
			if (err != nil) != tc.wantErr {
				t.Errorf("InsertOne err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestProductsValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	c := db.Collection("products")
	now := time.Now().UTC()

	base := func() bson.M {
		return bson.M{"title": "Sri Yantra", "price": 1499.0, "category": "yantra", "is_active": true, "created_at": now}
	}

	if _, err := c.InsertOne(ctx, base()); err != nil {
		t.Fatalf("valid product rejected: %v", err)
	}

	bad := []struct {
		name  string
		field string
		value any
	}{
		{"string price", "price", "abc"},
		{"negative price", "price", -1.0},
		{"unknown category", "category", "furniture"},
		{"blank title", "title", "   "},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			doc := base()
			doc[tc.field] = tc.value
			if _, err := c.InsertOne(ctx, doc); err == nil {
				t.Errorf("expected validator to reject %s=%v", tc.field, tc.value)
			}
		})
	}
}

func TestContentValidator_RequiresSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	_, err := db.Collection("services").InsertOne(ctx, bson.M{
		"title":      "Home Vastu",
		"is_active":  true,
		"created_at": time.Now().UTC(),
	})
	if err == nil {
		t.Error("expected insert without slug to fail")
	}
}
