package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/cosmic-community/inkwell-blog/internal/logger"
	"github.com/cosmic-community/inkwell-blog/internal/middleware"
	"github.com/cosmic-community/inkwell-blog/internal/service"
	"github.com/cosmic-community/inkwell-blog/internal/view"

	"github.com/go-chi/chi/v5"
)

// SiteHandler holds the dependencies for the public page handlers.
type SiteHandler struct {
	contentService service.ContentServicer
	view           *view.View
	log            logger.Logger
}

// NewSiteHandler creates a new SiteHandler with the given dependencies.
func NewSiteHandler(cs service.ContentServicer, v *view.View, log logger.Logger) *SiteHandler {
	return &SiteHandler{
		contentService: cs,
		view:           v,
		log:            log,
	}
}

// homeHandler renders the home page. The assembler degrades missing content
// to its empty state, so this page only fails on render errors.
func (h *SiteHandler) homeHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	home, err := h.contentService.Home(r.Context())
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to load home page", Code: http.StatusInternalServerError}
	}

	data := map[string]interface{}{
		"Home": home,
	}
	if err := h.view.Render(w, r, "home.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render home page", Code: http.StatusInternalServerError}
	}
	return nil
}

// postHandler renders a post detail page addressed by slug.
func (h *SiteHandler) postHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	slug := chi.URLParam(r, "slug")

	post, err := h.contentService.Post(r.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return &middleware.AppError{Error: err, Message: "Post not found", Code: http.StatusNotFound}
		}
		return &middleware.AppError{Error: err, Message: "Failed to load post", Code: http.StatusInternalServerError}
	}

	data := map[string]interface{}{
		"Post": post,
	}
	if err := h.view.Render(w, r, "post.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render post", Code: http.StatusInternalServerError}
	}
	return nil
}

// authorHandler renders an author profile page addressed by slug.
func (h *SiteHandler) authorHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	slug := chi.URLParam(r, "slug")

	author, err := h.contentService.Author(r.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return &middleware.AppError{Error: err, Message: "Author not found", Code: http.StatusNotFound}
		}
		return &middleware.AppError{Error: err, Message: "Failed to load author", Code: http.StatusInternalServerError}
	}

	data := map[string]interface{}{
		"Author": author,
	}
	if err := h.view.Render(w, r, "author.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render author", Code: http.StatusInternalServerError}
	}
	return nil
}

// categoryHandler renders a category listing page addressed by slug.
func (h *SiteHandler) categoryHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	slug := chi.URLParam(r, "slug")

	category, err := h.contentService.Category(r.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return &middleware.AppError{Error: err, Message: "Category not found", Code: http.StatusNotFound}
		}
		return &middleware.AppError{Error: err, Message: "Failed to load category", Code: http.StatusInternalServerError}
	}

	data := map[string]interface{}{
		"Category": category,
	}
	if err := h.view.Render(w, r, "category.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render category", Code: http.StatusInternalServerError}
	}
	return nil
}

// aboutHandler renders the static about page.
func (h *SiteHandler) aboutHandler(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	about, err := h.contentService.About(r.Context())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return &middleware.AppError{Error: err, Message: "Page not found", Code: http.StatusNotFound}
		}
		return &middleware.AppError{Error: err, Message: "Failed to load about page", Code: http.StatusInternalServerError}
	}

	data := map[string]interface{}{
		"About": about,
	}
	if err := h.view.Render(w, r, "about.html", data); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to render about page", Code: http.StatusInternalServerError}
	}
	return nil
}

// themeHandler flips the persisted theme cookie and sends the visitor back to
// the page they came from.
func (h *SiteHandler) themeHandler(w http.ResponseWriter, r *http.Request) {
	next := "light"
	if cookie, err := r.Cookie(middleware.ThemeCookie); err != nil || cookie.Value != "dark" {
		next = "dark"
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.ThemeCookie,
		Value:    next,
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	target := r.Referer()
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
