package testimonialstore_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/vastusite/internal/app/store"
	testimonialstore "github.com/dalemusser/vastusite/internal/app/store/testimonials"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/vastusite/internal/testutil"
)

func TestStore_CreateThenGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	s := testimonialstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := s.Create(ctx, models.Testimonial{
		Name:        "  Anita Rao ",
		Message:     "Very practical advice.",
		Rating:      5,
		Designation: "Architect",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Name != "Anita Rao" {
		t.Errorf("Name = %q, want trimmed", created.Name)
	}

	got, err := s.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != created.Name || got.Rating != 5 || got.Designation != "Architect" || got.Message != created.Message {
		t.Errorf("unexpected testimonial: %+v", got)
	}
}

func TestStore_ListActive_Limit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	s := testimonialstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateTestimonial(ctx, "One", 4, true)
	fx.CreateTestimonial(ctx, "Two", 5, true)
	fx.CreateTestimonial(ctx, "Hidden", 5, false)
	three := fx.CreateTestimonial(ctx, "Three", 3, true)

	items, err := s.ListActive(ctx, 2)
	if err != nil {
		t.Fatalf("ListActive failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != three.ID {
		t.Errorf("expected newest first, got %q", items[0].Name)
	}

	all, err := s.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("ListAll returned %d, want 4", len(all))
	}
}

func TestStore_UpdateDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	s := testimonialstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tm := fx.CreateTestimonial(ctx, "Vikram", 4, true)
	tm.Rating = 5
	tm.IsActive = false
	updated, err := s.Update(ctx, tm)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Rating != 5 || updated.IsActive {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.UpdatedAt == nil {
		t.Error("expected UpdatedAt after update")
	}

	if err := s.Delete(ctx, tm.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, tm.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
