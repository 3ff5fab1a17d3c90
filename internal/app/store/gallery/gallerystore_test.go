package gallerystore_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dalemusser/vastusite/internal/app/store"
	gallerystore "github.com/dalemusser/vastusite/internal/app/store/gallery"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/vastusite/internal/testutil"
)

func TestStore_CreateThenGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := gallerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, models.GalleryItem{
		Image:    "https://example.com/site.jpg",
		Caption:  "Site visit",
		Category: " homes ",
		IsActive: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Image != created.Image || got.Caption != "Site visit" || got.Category != "homes" {
		t.Errorf("unexpected item: %+v", got)
	}
}

func TestStore_ListActive_CategoryFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	s := gallerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateGalleryItem(ctx, "Home 1", "homes", true)
	fx.CreateGalleryItem(ctx, "Office 1", "offices", true)
	fx.CreateGalleryItem(ctx, "Home hidden", "homes", false)
	h2 := fx.CreateGalleryItem(ctx, "Home 2", "homes", true)

	all, err := s.ListActive(ctx, "", 0)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 active items, got %d", len(all))
	}

	homes, err := s.ListActive(ctx, "homes", 0)
	if err != nil {
		t.Fatalf("ListActive(homes) failed: %v", err)
	}
	if len(homes) != 2 || homes[0].ID != h2.ID {
		t.Errorf("unexpected homes list: %+v", homes)
	}

	cats, err := s.ActiveCategories(ctx)
	if err != nil {
		t.Fatalf("ActiveCategories failed: %v", err)
	}
	if !reflect.DeepEqual(cats, []string{"homes", "offices"}) {
		t.Errorf("ActiveCategories = %v", cats)
	}
}

func TestStore_UpdateDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	s := gallerystore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fx.CreateGalleryItem(ctx, "Before", "homes", true)
	g.Caption = "After"
	updated, err := s.Update(ctx, g)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Caption != "After" {
		t.Errorf("Caption = %q", updated.Caption)
	}

	if err := s.Delete(ctx, g.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.GetByID(ctx, g.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
