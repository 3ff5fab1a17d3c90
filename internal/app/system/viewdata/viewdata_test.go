package viewdata

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/vastusite/internal/app/system/auth"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewBaseVM_Visitor(t *testing.T) {
	Init(models.SiteInfo{}, nil)
	r := httptest.NewRequest("GET", "/services/home-vastu", nil)

	vm := NewBaseVM(httptest.NewRecorder(), r, "Home Vastu", "/services")

	if vm.SiteName != models.DefaultSiteName {
		t.Errorf("SiteName = %q, want default", vm.SiteName)
	}
	if vm.IsLoggedIn || vm.IsAdmin {
		t.Error("visitor must not be logged in")
	}
	if vm.AdminNav != nil {
		t.Error("visitor must not get admin nav")
	}
	var active []string
	for _, l := range vm.Nav {
		if l.Active {
			active = append(active, l.Href)
		}
	}
	if len(active) != 1 || active[0] != "/services" {
		t.Errorf("active nav = %v, want [/services]", active)
	}
}

func TestNewBaseVM_Admin(t *testing.T) {
	Init(models.SiteInfo{Name: "Test Vastu", Phone: "+91 00000"}, nil)
	defer Init(models.SiteInfo{}, nil)

	r := httptest.NewRequest("GET", "/admin/products/new", nil)
	r = auth.WithTestUser(r, &auth.SessionUser{ID: primitive.NewObjectID().Hex(), Name: "Admin", Role: "admin"})

	vm := NewBaseVM(httptest.NewRecorder(), r, "New product", "/admin/products")

	if !vm.IsAdmin || vm.UserName != "Admin" {
		t.Errorf("expected admin user, got %+v", vm)
	}
	if vm.SiteName != "Test Vastu" || vm.Site.Phone != "+91 00000" {
		t.Errorf("site info not applied: %+v", vm.Site)
	}
	found := false
	for _, l := range vm.AdminNav {
		if l.Active {
			if l.Href != "/admin/products" {
				t.Errorf("unexpected active admin link %q", l.Href)
			}
			found = true
		}
	}
	if !found {
		t.Error("expected an active admin link")
	}
}

func TestMarkActive_Home(t *testing.T) {
	links := markActive([]NavLink{{Href: "/"}, {Href: "/news"}}, "/")
	if !links[0].Active || links[1].Active {
		t.Errorf("unexpected active flags: %+v", links)
	}
	links = markActive([]NavLink{{Href: "/"}, {Href: "/news"}}, "/contact")
	if links[0].Active || links[1].Active {
		t.Errorf("nothing should be active: %+v", links)
	}
}
