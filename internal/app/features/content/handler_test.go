package content

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	uierrors "github.com/dalemusser/vastusite/internal/app/features/errors"
	"github.com/dalemusser/vastusite/internal/app/store"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/vastusite/internal/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newHandler(t *testing.T, kind models.ContentKind) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return NewHandler(db, kind, uierrors.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
}

func TestLoadActive(t *testing.T) {
	h, f := newHandler(t, models.KindAward)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateContent(ctx, models.KindAward, "First", "first", true)
	f.CreateContent(ctx, models.KindAward, "Hidden", "hidden", false)
	f.CreateContent(ctx, models.KindAward, "Second", "second", true)
	f.CreateContent(ctx, models.KindNews, "Elsewhere", "elsewhere", true)

	items := h.loadActive(ctx)
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Title != "Second" || items[1].Title != "First" {
		t.Errorf("order = %q, %q", items[0].Title, items[1].Title)
	}
}

func TestLoadActive_FetchErrorIsEmpty(t *testing.T) {
	h, _ := newHandler(t, models.KindNews)
	core, logs := observer.New(zap.ErrorLevel)
	h.Log = zap.New(core)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if items := h.loadActive(ctx); len(items) != 0 {
		t.Errorf("items = %d, want 0", len(items))
	}
	if logs.Len() != 1 {
		t.Errorf("logged %d errors, want 1", logs.Len())
	}
}

func TestFindVisible(t *testing.T) {
	h, f := newHandler(t, models.KindWorkshop)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f.CreateContent(ctx, models.KindWorkshop, "Open Day", "open-day", true)
	f.CreateContent(ctx, models.KindWorkshop, "Draft", "draft", false)

	got, err := h.findVisible(ctx, "open-day")
	if err != nil || got.Title != "Open Day" {
		t.Errorf("findVisible(open-day) = %+v, %v", got, err)
	}
	for _, slug := range []string{"draft", "missing"} {
		if _, err := h.findVisible(ctx, slug); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("findVisible(%q) err = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestServeDetail_HiddenIsNotFound(t *testing.T) {
	h, f := newHandler(t, models.KindService)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	f.CreateContent(ctx, models.KindService, "Draft", "draft", false)

	req := testutil.WithChiURLParam(httptest.NewRequest(http.MethodGet, "/services/draft", nil), "slug", "draft")
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.ServeDetail(rec, req)
	}()
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
