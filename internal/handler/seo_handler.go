package handler

import (
	"encoding/xml"
	"fmt"
	"net/http"

	"github.com/cosmic-community/inkwell-blog/internal/service"
)

const sitemapDateFormat = "2006-01-02"

// SeoHandler holds dependencies for SEO-related handlers.
type SeoHandler struct {
	contentService service.ContentServicer
	baseURL        string
}

// NewSeoHandler creates a new SeoHandler. baseURL is the externally visible
// site root, without a trailing slash.
func NewSeoHandler(cs service.ContentServicer, baseURL string) *SeoHandler {
	return &SeoHandler{contentService: cs, baseURL: baseURL}
}

// robotsHandler serves a static robots.txt file.
func (h *SeoHandler) robotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "User-agent: *")
	fmt.Fprintln(w, "Allow: /")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Sitemap: %s/sitemap.xml\n", h.baseURL)
}

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// sitemapHandler generates and serves a dynamic sitemap.xml.
func (h *SeoHandler) sitemapHandler(w http.ResponseWriter, r *http.Request) {
	entries := h.contentService.Sitemap(r.Context())

	sitemap := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]sitemapURL, len(entries)),
	}
	for i, entry := range entries {
		sitemap.URLs[i] = sitemapURL{
			Loc:     h.baseURL + entry.Path,
			LastMod: entry.LastMod.Format(sitemapDateFormat),
		}
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(sitemap); err != nil {
		http.Error(w, "Failed to generate sitemap XML", http.StatusInternalServerError)
		return
	}
}
