// Package content defines the typed object model served by the headless CMS
// bucket. All objects are read-only: they are decoded at fetch time, live for
// one page render and are never written back.
package content

import (
	"errors"
	"time"
)

// ErrUnavailable indicates that the content store could not be reached or
// returned a malformed response. Callers decide whether that is fatal for the
// page or degrades to "no content".
var ErrUnavailable = errors.New("content repository unavailable")

// Object type slugs as stored in the bucket.
const (
	TypePosts      = "posts"
	TypeAuthors    = "authors"
	TypeCategories = "categories"
	TypePages      = "pages"
)

// Object is the envelope shared by every record in the bucket. Slug is the
// addressing key for detail pages, ID the addressing key for relation lookups.
type Object struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Media is a stored asset reference: the canonical file URL plus the imgix
// endpoint that accepts transform parameters.
type Media struct {
	URL      string `json:"url"`
	ImgixURL string `json:"imgix_url"`
}

// Post is a long-form article.
type Post struct {
	Object
	Metadata PostMetadata `json:"metadata"`
}

// PostMetadata holds the post-specific fields. Author and Category arrive from
// the API either as bare object ids or as expanded sub-objects, depending on
// the requested depth.
type PostMetadata struct {
	Content       string             `json:"content"`
	Excerpt       string             `json:"excerpt"`
	FeaturedImage *Media             `json:"featured_image"`
	Author        Relation[Author]   `json:"author"`
	Category      Relation[Category] `json:"category"`
}

// Author is a writer profile.
type Author struct {
	Object
	Metadata AuthorMetadata `json:"metadata"`
}

// AuthorMetadata holds the author-specific fields. Name is the only required
// field; everything else may be empty.
type AuthorMetadata struct {
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	ProfilePhoto *Media `json:"profile_photo"`
	SocialLink   string `json:"social_link"`
}

// Category groups posts.
type Category struct {
	Object
	Metadata CategoryMetadata `json:"metadata"`
}

// CategoryMetadata holds the category-specific fields.
type CategoryMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Page is static singleton content keyed by slug, e.g. "about".
type Page struct {
	Object
	Metadata PageMetadata `json:"metadata"`
}

// PageMetadata holds the static-page fields.
type PageMetadata struct {
	Heading   string `json:"heading"`
	Content   string `json:"content"`
	HeroImage *Media `json:"hero_image"`
}
