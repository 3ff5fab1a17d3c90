// internal/app/features/contact/handler.go
package contact

import (
	"net/http"
	"strings"

	"github.com/dalemusser/vastusite/internal/app/system/viewdata"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type pageData struct {
	viewdata.BaseVM
	PhoneHref string
	WhatsApp  string
	HasAny    bool
}

type Handler struct {
	Log *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{
		Log: logger,
	}
}

func (h *Handler) ServeContact(w http.ResponseWriter, r *http.Request) {
	data := contactLinks(viewdata.Site())
	data.BaseVM = viewdata.NewBaseVM(w, r, "Contact us", "/")
	templates.Render(w, r, "contact", data)
}

// contactLinks builds the tel: and WhatsApp links from the configured phone.
func contactLinks(site models.SiteInfo) pageData {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, site.Phone)

	var d pageData
	if digits != "" {
		d.PhoneHref = "tel:+" + digits
		if !strings.HasPrefix(strings.TrimSpace(site.Phone), "+") {
			d.PhoneHref = "tel:" + digits
		}
		d.WhatsApp = "https://wa.me/" + digits
	}
	d.HasAny = digits != "" || site.Email != "" || site.Address != ""
	return d
}
