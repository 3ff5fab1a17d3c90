package testimonials

import (
	"context"
	"testing"

	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/vastusite/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoad(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	f.CreateTestimonial(ctx, "Asha", 4, true)
	f.CreateTestimonial(ctx, "Hidden", 5, false)

	h := NewHandler(db, zap.NewNop())
	list := h.load(ctx)
	if len(list) != 1 || list[0].Name != "Asha" {
		t.Errorf("load = %+v", list)
	}
}

func TestLoad_Defaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	core, logs := observer.New(zap.ErrorLevel)
	h := NewHandler(db, zap.New(core))

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if got := h.load(ctx); len(got) != 2 {
		t.Errorf("empty collection: %d testimonials, want 2 defaults", len(got))
	}
	if logs.Len() != 0 {
		t.Error("an empty collection is not an error")
	}

	dead, stop := context.WithCancel(context.Background())
	stop()
	if got := h.load(dead); len(got) != 2 {
		t.Errorf("failed fetch: %d testimonials, want 2 defaults", len(got))
	}
	if logs.Len() != 1 {
		t.Errorf("logged %d errors, want 1", logs.Len())
	}
}

func TestCards_Stars(t *testing.T) {
	got := cards([]models.Testimonial{{Name: "A", Rating: 3}})
	if len(got) != 1 || len(got[0].Stars) != models.MaxRating {
		t.Fatalf("cards = %+v", got)
	}
	filled := 0
	for _, s := range got[0].Stars {
		if s {
			filled++
		}
	}
	if filled != 3 {
		t.Errorf("filled stars = %d, want 3", filled)
	}
}
