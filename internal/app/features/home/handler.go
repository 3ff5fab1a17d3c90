package home

import (
	"context"
	"net/http"

	contentstore "github.com/dalemusser/vastusite/internal/app/store/content"
	testimonialstore "github.com/dalemusser/vastusite/internal/app/store/testimonials"
	"github.com/dalemusser/vastusite/internal/app/system/timeouts"
	"github.com/dalemusser/vastusite/internal/app/system/viewdata"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Defaults used when the configured limits are not positive.
const (
	DefaultServicesLimit     = 6
	DefaultTestimonialsLimit = 3
	newsLimit                = 3
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	DB                *mongo.Database
	Log               *zap.Logger
	ServicesLimit     int64
	TestimonialsLimit int64
}

func NewHandler(db *mongo.Database, logger *zap.Logger, servicesLimit, testimonialsLimit int) *Handler {
	if servicesLimit <= 0 {
		servicesLimit = DefaultServicesLimit
	}
	if testimonialsLimit <= 0 {
		testimonialsLimit = DefaultTestimonialsLimit
	}
	return &Handler{
		DB:                db,
		Log:               logger,
		ServicesLimit:     int64(servicesLimit),
		TestimonialsLimit: int64(testimonialsLimit),
	}
}

type homeData struct {
	viewdata.BaseVM
	Services     []models.ContentItem
	Testimonials []models.Testimonial
	News         []models.ContentItem
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – landing                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data := h.buildPage(ctx)
	data.BaseVM = viewdata.NewBaseVM(w, r, "Welcome", "/")
	templates.Render(w, r, "home", data)
}

// buildPage loads every section of the landing page. A section that fails
// to load is logged and left empty; testimonials fall back to the defaults.
func (h *Handler) buildPage(ctx context.Context) homeData {
	var data homeData

	services, err := contentstore.New(h.DB, models.KindService).ListActive(ctx, h.ServicesLimit)
	if err != nil {
		h.Log.Error("home: load services", zap.Error(err))
	}
	data.Services = services

	news, err := contentstore.New(h.DB, models.KindNews).ListActive(ctx, newsLimit)
	if err != nil {
		h.Log.Error("home: load news", zap.Error(err))
	}
	data.News = news

	testimonials, err := testimonialstore.New(h.DB).ListActive(ctx, h.TestimonialsLimit)
	if err != nil {
		h.Log.Error("home: load testimonials", zap.Error(err))
	}
	if len(testimonials) == 0 {
		testimonials = models.DefaultTestimonials()
	}
	data.Testimonials = testimonials

	return data
}
