// internal/app/features/admin/dashboard.go
package admin

import (
	"context"
	"net/http"

	"github.com/dalemusser/vastusite/internal/app/store"
	"github.com/dalemusser/vastusite/internal/app/system/timeouts"
	"github.com/dalemusser/vastusite/internal/app/system/viewdata"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
)

// card is one resource tile on the dashboard.
type card struct {
	Path   string
	Label  string
	Total  int64
	Active int64
}

type dashboardData struct {
	viewdata.BaseVM
	Cards []card
}

// adminSection hides the item type of a section so the dashboard and the
// router can treat them alike.
type adminSection interface {
	mount(r chi.Router)
	summary(ctx context.Context) (card, error)
}

func (s *section[T]) mount(r chi.Router) {
	r.Route("/"+s.path, s.routes)
}

func (s *section[T]) summary(ctx context.Context) (card, error) {
	total, err := s.countFn(ctx, bson.M{})
	if err != nil {
		return card{}, err
	}
	active, err := s.countFn(ctx, store.ActiveFilter())
	if err != nil {
		return card{}, err
	}
	return card{Path: s.path, Label: s.plural, Total: total, Active: active}, nil
}

// sections lists every admin resource in menu order.
func (h *Handler) sections() []adminSection {
	out := make([]adminSection, 0, len(models.ContentKinds)+3)
	for _, k := range models.ContentKinds {
		out = append(out, h.contentSection(k))
	}
	return append(out, h.productSection(), h.testimonialSection(), h.gallerySection())
}

// GET /admin
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	cards, err := h.dashboardCards(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard counts", err, "Could not load the dashboard.", "/")
		return
	}
	templates.Render(w, r, "admin_dashboard", dashboardData{
		BaseVM: viewdata.NewBaseVM(w, r, "Dashboard", "/"),
		Cards:  cards,
	})
}

func (h *Handler) dashboardCards(ctx context.Context) ([]card, error) {
	secs := h.sections()
	cards := make([]card, 0, len(secs))
	for _, s := range secs {
		c, err := s.summary(ctx)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
