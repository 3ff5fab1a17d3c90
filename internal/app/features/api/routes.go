package api

import (
	"net/http"

	"github.com/dalemusser/vastusite/internal/app/system/apierr"
	"github.com/dalemusser/vastusite/internal/app/system/requestid"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Routes mounts the API. Reads are public; writes need a bearer token.
// An empty origins list disables cross-origin access.
func Routes(h *Handler, origins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	if len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", requestid.Header},
			ExposedHeaders: []string{requestid.Header},
			MaxAge:         300,
		}))
	}

	requireAuth := h.Tokens.RequireBearer(apierr.Unauthorized)

	r.Post("/auth/token", h.IssueToken)

	for _, kind := range models.ContentKinds {
		r.Mount("/"+kind.Path(), h.contentResource(kind).routes(requireAuth))
	}
	r.Mount("/products", h.productResource().routes(requireAuth))
	r.Mount("/testimonials", h.testimonialResource().routes(requireAuth))
	r.Mount("/gallery", h.galleryResource().routes(requireAuth))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		apierr.NotFound(w, req, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		apierr.Write(w, req, http.StatusMethodNotAllowed, "Method not allowed.", nil)
	})
	return r
}
