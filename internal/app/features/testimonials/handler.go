package testimonials

import (
	"context"
	"net/http"

	testimonialstore "github.com/dalemusser/vastusite/internal/app/store/testimonials"
	"github.com/dalemusser/vastusite/internal/app/system/timeouts"
	"github.com/dalemusser/vastusite/internal/app/system/viewdata"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Store *testimonialstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Store: testimonialstore.New(db), Log: logger}
}

// card is a testimonial with its star rating spelled out for the template.
type card struct {
	models.Testimonial
	Stars []bool
}

type pageData struct {
	viewdata.BaseVM
	Cards []card
}

// GET /testimonials
func (h *Handler) ServeTestimonials(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	templates.Render(w, r, "testimonials", pageData{
		BaseVM: viewdata.NewBaseVM(w, r, "Testimonials", "/"),
		Cards:  cards(h.load(ctx)),
	})
}

// load returns the active testimonials, or the built-in defaults when
// there are none or they cannot be fetched.
func (h *Handler) load(ctx context.Context) []models.Testimonial {
	list, err := h.Store.ListActive(ctx, 0)
	if err != nil {
		h.Log.Error("load testimonials", zap.Error(err))
	}
	if len(list) == 0 {
		return models.DefaultTestimonials()
	}
	return list
}

func cards(list []models.Testimonial) []card {
	out := make([]card, 0, len(list))
	for _, t := range list {
		stars := make([]bool, models.MaxRating)
		for i := range stars {
			stars[i] = i < t.Rating
		}
		out = append(out, card{Testimonial: t, Stars: stars})
	}
	return out
}
