// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"
	"time"

	aboutfeature "github.com/dalemusser/vastusite/internal/app/features/about"
	adminfeature "github.com/dalemusser/vastusite/internal/app/features/admin"
	apifeature "github.com/dalemusser/vastusite/internal/app/features/api"
	contactfeature "github.com/dalemusser/vastusite/internal/app/features/contact"
	contentfeature "github.com/dalemusser/vastusite/internal/app/features/content"
	errorsfeature "github.com/dalemusser/vastusite/internal/app/features/errors"
	galleryfeature "github.com/dalemusser/vastusite/internal/app/features/gallery"
	healthfeature "github.com/dalemusser/vastusite/internal/app/features/health"
	homefeature "github.com/dalemusser/vastusite/internal/app/features/home"
	loginfeature "github.com/dalemusser/vastusite/internal/app/features/login"
	logoutfeature "github.com/dalemusser/vastusite/internal/app/features/logout"
	productsfeature "github.com/dalemusser/vastusite/internal/app/features/products"
	testimonialsfeature "github.com/dalemusser/vastusite/internal/app/features/testimonials"
	userstore "github.com/dalemusser/vastusite/internal/app/store/users"
	"github.com/dalemusser/vastusite/internal/app/system/apitoken"
	"github.com/dalemusser/vastusite/internal/app/system/auditlog"
	"github.com/dalemusser/vastusite/internal/app/system/auth"
	"github.com/dalemusser/vastusite/internal/app/system/limits"
	"github.com/dalemusser/vastusite/internal/app/system/ratelimit"
	"github.com/dalemusser/vastusite/internal/app/system/requestid"
	"github.com/dalemusser/vastusite/internal/app/system/viewdata"
	"github.com/dalemusser/vastusite/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// audit is built with the router and closed by Shutdown.
var audit *auditlog.Logger

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. It boots the template engine and then
// mounts the public site, the admin panel, login/logout, health and the API.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	return newRouter(appCfg, deps, coreCfg.Env == "prod", logger)
}

// newRouter wires every feature. secure turns on Secure cookies and the
// strict same-origin checks of the CSRF middleware.
func newRouter(appCfg AppConfig, deps DBDeps, secure bool, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	// Reload the admin on each request so a disabled account loses access at once.
	sessionMgr.SetUserFetcher(userstore.Fetcher{Store: userstore.New(db)})

	tokens, err := apitoken.NewIssuer(appCfg.JWTSecret, appCfg.JWTTTL)
	if err != nil {
		logger.Error("api token issuer init failed", zap.Error(err))
		return nil, err
	}

	viewdata.Init(models.SiteInfo{
		Name:    appCfg.SiteName,
		Tagline: appCfg.SiteTagline,
		Phone:   appCfg.SitePhone,
		Email:   appCfg.SiteEmail,
		Address: appCfg.SiteAddress,
	}, sessionMgr)

	audit = auditlog.New(logger, auditlog.Config{File: appCfg.AuditLogFile})
	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()

	// Set before mounting so feature subrouters inherit it.
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appName, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	// JSON API: bearer tokens, no cookies, no CSRF.
	apiHandler := apifeature.NewHandler(db, tokens, audit, ratelimit.New(appCfg.LoginRateLimit, time.Minute), logger)
	r.Mount("/api", apifeature.Routes(apiHandler, appCfg.APICORSOrigins))

	r.Group(func(site chi.Router) {
		site.Use(requestid.Middleware)
		site.Use(middleware.RequestSize(limits.MaxFormBody))
		if !secure {
			site.Use(plaintextHTTP)
		}
		site.Use(csrfProtect(appCfg.SessionKey, secure))
		site.Use(sessionMgr.LoadSessionUser)

		// Public pages
		homeHandler := homefeature.NewHandler(db, logger, appCfg.HomeServicesLimit, appCfg.HomeTestimonialsLimit)
		site.Mount("/", homefeature.Routes(homeHandler))

		for _, kind := range models.ContentKinds {
			h := contentfeature.NewHandler(db, kind, errLog, logger)
			site.Mount("/"+kind.Path(), contentfeature.Routes(h))
		}

		site.Mount("/products", productsfeature.Routes(productsfeature.NewHandler(db, logger)))
		site.Mount("/testimonials", testimonialsfeature.Routes(testimonialsfeature.NewHandler(db, logger)))
		site.Mount("/gallery", galleryfeature.Routes(galleryfeature.NewHandler(db, logger)))
		site.Mount("/about", aboutfeature.Routes(aboutfeature.NewHandler(db, logger)))
		site.Mount("/contact", contactfeature.Routes(contactfeature.NewHandler(logger)))

		// Authentication
		loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, audit, ratelimit.New(appCfg.LoginRateLimit, time.Minute), logger)
		site.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(sessionMgr, audit, logger)
		site.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

		// Error pages
		site.Get("/forbidden", errorsHandler.Forbidden)
		site.Get("/unauthorized", errorsHandler.Unauthorized)

		// Admin panel
		adminHandler := adminfeature.NewHandler(db, sessionMgr, errLog, audit, logger)
		site.Mount("/admin", adminfeature.Routes(adminHandler, sessionMgr))
	})

	return r, nil
}

// csrfProtect guards every form post on the HTML side. The key is derived
// from the session key so one secret configures both.
func csrfProtect(sessionKey string, secure bool) func(http.Handler) http.Handler {
	key := sha256.Sum256([]byte("csrf:" + sessionKey))
	return csrf.Protect(key[:],
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			errorsfeature.RenderForbidden(w, r, "Your form has expired. Please go back, reload the page and try again.", "/")
		})),
	)
}

// plaintextHTTP marks requests as plain HTTP so the CSRF middleware skips
// its TLS-only origin checks in local development.
func plaintextHTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
