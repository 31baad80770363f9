// Package assets builds imgix transform URLs for stored media references.
package assets

import (
	"fmt"

	"github.com/cosmic-community/inkwell-blog/internal/content"
)

// Variant is a named rendering size. Every image the templates display maps to
// one of the presets below, so the CDN only ever sees a small set of crops.
type Variant struct {
	Width  int
	Height int
}

var (
	// FeaturedHero is the home page featured-post image.
	FeaturedHero = Variant{Width: 1200, Height: 750}
	// PostHero is the post detail header image.
	PostHero = Variant{Width: 1600, Height: 600}
	// PageHero is the static page header image.
	PageHero = Variant{Width: 1600, Height: 500}
	// Card is the post grid card image.
	Card = Variant{Width: 800, Height: 450}
	// AvatarSmall is the byline avatar on post cards.
	AvatarSmall = Variant{Width: 64, Height: 64}
	// AvatarByline is the byline avatar on the featured post and post detail.
	AvatarByline = Variant{Width: 96, Height: 96}
	// AvatarShowcase is the writer card avatar on the about page.
	AvatarShowcase = Variant{Width: 192, Height: 192}
	// AvatarProfile is the large avatar on author detail pages.
	AvatarProfile = Variant{Width: 256, Height: 256}
)

// URL formats a transform URL for the given media at the given variant. The
// second return is false when media is absent; callers must then skip the
// image entirely rather than render a broken URL.
//
// The parameter order (w, h, fit, auto) is part of the CDN contract and is
// kept fixed so identical inputs always yield byte-identical URLs.
func URL(m *content.Media, v Variant) (string, bool) {
	if m == nil || m.ImgixURL == "" {
		return "", false
	}
	return fmt.Sprintf("%s?w=%d&h=%d&fit=crop&auto=format,compress", m.ImgixURL, v.Width, v.Height), true
}
