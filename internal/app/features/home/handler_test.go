package home

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/vastusite/internal/app/system/auth"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/vastusite/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewHandler_DefaultLimits(t *testing.T) {
	h := NewHandler(nil, zap.NewNop(), 0, -1)
	if h.ServicesLimit != DefaultServicesLimit || h.TestimonialsLimit != DefaultTestimonialsLimit {
		t.Errorf("limits = %d/%d", h.ServicesLimit, h.TestimonialsLimit)
	}
}

func TestBuildPage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	for _, title := range []string{"One", "Two", "Three"} {
		f.CreateContent(ctx, models.KindService, title, "", true)
	}
	f.CreateContent(ctx, models.KindService, "Hidden", "hidden", false)
	f.CreateContent(ctx, models.KindNews, "Opening", "opening", true)
	f.CreateTestimonial(ctx, "Asha", 5, true)

	h := NewHandler(db, zap.NewNop(), 2, 3)
	data := h.buildPage(ctx)

	if len(data.Services) != 2 || data.Services[0].Title != "Three" {
		t.Errorf("services = %+v", data.Services)
	}
	if len(data.News) != 1 {
		t.Errorf("news = %d, want 1", len(data.News))
	}
	if len(data.Testimonials) != 1 || data.Testimonials[0].Name != "Asha" {
		t.Errorf("testimonials = %+v", data.Testimonials)
	}
}

func TestBuildPage_FallsBackToDefaultTestimonials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	h := NewHandler(db, zap.NewNop(), 0, 0)
	data := h.buildPage(ctx)

	if len(data.Services) != 0 || len(data.News) != 0 {
		t.Error("empty database should give empty sections")
	}
	if len(data.Testimonials) != len(models.DefaultTestimonials()) {
		t.Errorf("testimonials = %d, want the defaults", len(data.Testimonials))
	}
}

func TestBuildPage_LogsFetchErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	core, logs := observer.New(zap.ErrorLevel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := NewHandler(db, zap.New(core), 0, 0)
	data := h.buildPage(ctx)

	if logs.Len() != 3 {
		t.Errorf("logged %d errors, want 3", logs.Len())
	}
	if len(data.Testimonials) != len(models.DefaultTestimonials()) {
		t.Error("failed testimonials should fall back to the defaults")
	}
}

func TestServeRoot_Admin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := NewHandler(db, zap.NewNop(), 0, 0)

	req := httptest.NewRequest("GET", "/", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID:   primitive.NewObjectID().Hex(),
		Name: "Admin User",
		Role: "admin",
	})
	rec := httptest.NewRecorder()

	// Template rendering may panic without initialized templates.
	func() {
		defer func() { _ = recover() }()
		h.ServeRoot(rec, req)
	}()
}
