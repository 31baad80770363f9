package handler

import (
	"io/fs"
	"net/http"

	appmiddleware "github.com/cosmic-community/inkwell-blog/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates and configures a new chi router.
func NewRouter(
	siteHandler *SiteHandler,
	seoHandler *SeoHandler,
	errorMiddleware func(appmiddleware.AppHandler) http.Handler,
	staticFS fs.FS,
) *chi.Mux {
	r := chi.NewRouter()

	// A good base middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appmiddleware.Theme)

	// Page routes
	r.Method(http.MethodGet, "/", errorMiddleware(siteHandler.homeHandler))
	r.Method(http.MethodGet, "/posts/{slug}", errorMiddleware(siteHandler.postHandler))
	r.Method(http.MethodGet, "/authors/{slug}", errorMiddleware(siteHandler.authorHandler))
	r.Method(http.MethodGet, "/categories/{slug}", errorMiddleware(siteHandler.categoryHandler))
	r.Method(http.MethodGet, "/about", errorMiddleware(siteHandler.aboutHandler))

	// Theme toggle; persists the flag and bounces back.
	r.Post("/theme", siteHandler.themeHandler)

	// SEO routes
	r.Get("/robots.txt", seoHandler.robotsHandler)
	r.Get("/sitemap.xml", seoHandler.sitemapHandler)

	// Static assets
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	return r
}
