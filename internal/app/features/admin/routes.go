// internal/app/features/admin/routes.go
package admin

import (
	"github.com/dalemusser/vastusite/internal/app/system/auth"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the admin panel. Every page requires a signed-in admin.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Use(sm.RequireRole(models.RoleAdmin))

	r.Get("/", h.ServeDashboard)
	for _, s := range h.sections() {
		s.mount(r)
	}
	return r
}
