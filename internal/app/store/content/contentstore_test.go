package contentstore_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dalemusser/vastusite/internal/app/store"
	contentstore "github.com/dalemusser/vastusite/internal/app/store/content"
	"github.com/dalemusser/vastusite/internal/app/system/indexes"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/vastusite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateThenGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := contentstore.New(db, models.KindService)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := models.ContentItem{
		Title:       "Home Vastu",
		Slug:        "home-vastu",
		Description: "Consultation for homes",
		Content:     "## Scope\n\nFull walkthrough.",
		Image:       "https://example.com/home.jpg",
		Category:    "residential",
		Features:    []string{"Site visit", "Report"},
		IsActive:    true,
	}
	created, err := s.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt == nil {
		t.Error("expected timestamps to be set")
	}

	got, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	assertSameItem(t, got, created)
	if got.Title != in.Title || got.Slug != in.Slug || !reflect.DeepEqual(got.Features, in.Features) {
		t.Errorf("stored item differs from input: %+v", got)
	}
}

func TestStore_Create_DerivesSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := contentstore.New(db, models.KindNews)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, models.ContentItem{Title: "Award Ceremony 2024", IsActive: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Slug == "" {
		t.Fatal("expected slug derived from title")
	}
	if created.Features == nil {
		t.Error("expected Features to be non-nil")
	}

	bySlug, err := s.GetBySlug(ctx, created.Slug)
	if err != nil {
		t.Fatalf("GetBySlug failed: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Errorf("GetBySlug returned %s, want %s", bySlug.ID.Hex(), created.ID.Hex())
	}
}

func TestStore_Create_BadSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := contentstore.New(db, models.KindNews)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := s.Create(ctx, models.ContentItem{Title: "   "})
	if !errors.Is(err, contentstore.ErrBadSlug) {
		t.Errorf("expected ErrBadSlug, got %v", err)
	}
}

func TestStore_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	s := contentstore.New(db, models.KindWorkshop)

	first, err := s.Create(ctx, models.ContentItem{Title: "Basics", Slug: "basics"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := s.Create(ctx, models.ContentItem{Title: "Basics again", Slug: "basics"}); !errors.Is(err, store.ErrDuplicateSlug) {
		t.Errorf("expected ErrDuplicateSlug on create, got %v", err)
	}

	second, err := s.Create(ctx, models.ContentItem{Title: "Advanced", Slug: "advanced"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second.Slug = first.Slug
	if _, err := s.Update(ctx, second); !errors.Is(err, store.ErrDuplicateSlug) {
		t.Errorf("expected ErrDuplicateSlug on update, got %v", err)
	}

	// Same slug in another kind is fine.
	other := contentstore.New(db, models.KindAward)
	if _, err := other.Create(ctx, models.ContentItem{Title: "Basics", Slug: "basics"}); err != nil {
		t.Errorf("slug should be unique per kind only: %v", err)
	}
}

func TestStore_ListActive_OrderAndFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	s := contentstore.New(db, models.KindService)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	oldest := fx.CreateContent(ctx, models.KindService, "Oldest", "oldest", true)
	hidden := fx.CreateContent(ctx, models.KindService, "Hidden", "hidden", false)
	newest := fx.CreateContent(ctx, models.KindService, "Newest", "newest", true)

	items, err := s.ListActive(ctx, 0)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 active items, got %d", len(items))
	}
	if items[0].ID != newest.ID || items[1].ID != oldest.ID {
		t.Errorf("expected newest first, got %s, %s", items[0].Title, items[1].Title)
	}

	limited, err := s.ListActive(ctx, 1)
	if err != nil {
		t.Fatalf("ListActive(1) failed: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != newest.ID {
		t.Errorf("expected only newest with limit 1, got %+v", limited)
	}

	// Inactive items are still retrievable by id and listed for admins.
	if _, err := s.GetByID(ctx, hidden.ID); err != nil {
		t.Errorf("GetByID(inactive) failed: %v", err)
	}
	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 items in ListAll, got %d", len(all))
	}
}

func TestStore_ListActive_EmptyIsNotNil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := contentstore.New(db, models.KindAward)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	items, err := s.ListActive(ctx, 0)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if items == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := contentstore.New(db, models.KindService)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, models.ContentItem{Title: "Office Vastu", IsActive: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	created.Description = "Updated"
	created.IsActive = false
	updated, err := s.Update(ctx, created)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Description != "Updated" || updated.IsActive {
		t.Errorf("update not applied: %+v", updated)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", created.CreatedAt, updated.CreatedAt)
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := contentstore.New(db, models.KindService)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := s.Update(ctx, models.ContentItem{ID: primitive.NewObjectID(), Title: "Ghost"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := contentstore.New(db, models.KindNews)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, models.ContentItem{Title: "Launch"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.GetByID(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_Count(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	s := contentstore.New(db, models.KindWorkshop)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateContent(ctx, models.KindWorkshop, "A", "a", true)
	fx.CreateContent(ctx, models.KindWorkshop, "B", "b", false)

	total, err := s.Count(ctx, bson.M{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	active, err := s.Count(ctx, store.ActiveFilter())
	if err != nil {
		t.Fatalf("Count(active) failed: %v", err)
	}
	if total != 2 || active != 1 {
		t.Errorf("counts = %d/%d, want 2/1", total, active)
	}
}

func assertSameItem(t *testing.T, got, want models.ContentItem) {
	t.Helper()
	if got.ID != want.ID || got.Title != want.Title || got.Slug != want.Slug ||
		got.Description != want.Description || got.Content != want.Content ||
		got.Image != want.Image || got.Category != want.Category ||
		got.IsActive != want.IsActive || !reflect.DeepEqual(got.Features, want.Features) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, want)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}
