// internal/app/system/viewdata/viewdata.go
package viewdata

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/vastusite/internal/app/system/auth"
	"github.com/dalemusser/vastusite/internal/app/system/authz"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// NavLink is one entry in the header menu.
type NavLink struct {
	Label  string
	Href   string
	Active bool
}

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
//
//	data := myPageData{
//	    BaseVM: viewdata.NewBaseVM(w, r, "Page Title", "/default-back"),
//	}
type BaseVM struct {
	// Site details (from config)
	Site     models.SiteInfo
	SiteName string
	Year     int

	// User context (from auth middleware)
	IsLoggedIn bool
	IsAdmin    bool
	Role       string
	UserName   string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string
	Nav         []NavLink
	AdminNav    []NavLink

	// CSRF protection
	CSRFToken string

	// One-shot notifications and the inline form error
	Flashes []auth.Flash
	Error   string
}

var (
	site     = models.SiteInfo{Name: models.DefaultSiteName}
	sessions *auth.SessionManager
)

// Init sets the site details and the session manager used for flashes.
// Call this once at startup from bootstrap.
func Init(info models.SiteInfo, sm *auth.SessionManager) {
	if strings.TrimSpace(info.Name) == "" {
		info.Name = models.DefaultSiteName
	}
	site = info
	sessions = sm
}

// Site returns the configured site details.
func Site() models.SiteInfo { return site }

// NewBaseVM creates a fully populated BaseVM for a page. Pending flashes are
// consumed, so call it once per response.
func NewBaseVM(w http.ResponseWriter, r *http.Request, title, backDefault string) BaseVM {
	role, name, _, signedIn := authz.UserCtx(r)
	current := httpnav.CurrentPath(r)

	vm := BaseVM{
		Site:        site,
		SiteName:    site.Name,
		Year:        time.Now().Year(),
		IsLoggedIn:  signedIn,
		IsAdmin:     signedIn && role == models.RoleAdmin,
		Role:        role,
		UserName:    name,
		Title:       title,
		BackURL:     httpnav.ResolveBackURL(r, backDefault),
		CurrentPath: current,
		Nav:         publicNav(current),
		CSRFToken:   csrf.Token(r),
	}
	if vm.IsAdmin {
		vm.AdminNav = adminNav(current)
	}
	if sessions != nil && w != nil {
		vm.Flashes = sessions.Flashes(w, r)
	}
	return vm
}

func publicNav(current string) []NavLink {
	links := []NavLink{
		{Label: "Home", Href: "/"},
		{Label: "About", Href: "/about"},
	}
	for _, k := range models.ContentKinds {
		links = append(links, NavLink{Label: k.Plural(), Href: "/" + k.Path()})
	}
	links = append(links,
		NavLink{Label: "Products", Href: "/products"},
		NavLink{Label: "Gallery", Href: "/gallery"},
		NavLink{Label: "Testimonials", Href: "/testimonials"},
		NavLink{Label: "Contact", Href: "/contact"},
	)
	return markActive(links, current)
}

func adminNav(current string) []NavLink {
	links := []NavLink{{Label: "Dashboard", Href: "/admin"}}
	for _, k := range models.ContentKinds {
		links = append(links, NavLink{Label: k.Plural(), Href: "/admin/" + k.Path()})
	}
	links = append(links,
		NavLink{Label: "Products", Href: "/admin/products"},
		NavLink{Label: "Testimonials", Href: "/admin/testimonials"},
		NavLink{Label: "Gallery", Href: "/admin/gallery"},
	)
	return markActive(links, current)
}

// markActive flags the longest link that prefixes current.
func markActive(links []NavLink, current string) []NavLink {
	best := -1
	for i, l := range links {
		match := current == l.Href || (l.Href != "/" && l.Href != "/admin" && strings.HasPrefix(current, l.Href+"/"))
		if match && (best < 0 || len(l.Href) > len(links[best].Href)) {
			best = i
		}
	}
	if best >= 0 {
		links[best].Active = true
	}
	return links
}
