package service

import (
	"html/template"
	"time"
)

// View models are render-ready snapshots assembled from fetched content. They
// are built fresh for every request and never shared or mutated afterwards.
// Empty string fields mean "omit this element"; templates must never see a
// half-built image URL or an unresolved reference.

// CategoryPill is a category link badge.
type CategoryPill struct {
	Slug string
	Name string
}

// Byline identifies a post's author on cards and headers. PhotoURL is empty
// when the author has no profile photo.
type Byline struct {
	Slug     string
	Name     string
	PhotoURL string
}

// PostCard is one post in a grid or featured slot.
type PostCard struct {
	Slug             string
	Title            string
	Excerpt          string
	ImageURL         string
	PublishedAt      time.Time
	PublishedDisplay string
	Category         *CategoryPill
	Author           *Byline
}

// HomeView is the home page model. Featured is the most recent post; Grid
// holds the rest in recency order. Empty marks a bucket with no posts at all.
type HomeView struct {
	Featured   *PostCard
	Grid       []PostCard
	Categories []CategoryPill
	Empty      bool
}

// RelatedPost is a compact link to a post in the same category.
type RelatedPost struct {
	Slug    string
	Title   string
	Excerpt string
}

// AuthorCard is a writer profile block.
type AuthorCard struct {
	Slug       string
	Name       string
	Bio        string
	PhotoURL   string
	SocialLink string
}

// PostView is the post detail page model.
type PostView struct {
	Slug             string
	Title            string
	Excerpt          string
	Content          template.HTML
	ImageURL         string
	PublishedAt      time.Time
	PublishedDisplay string
	Category         *CategoryPill
	Author           *AuthorCard
	Related          []RelatedPost
}

// AuthorView is the author detail page model. CountLabel is the pluralized
// article count ("1 article", "3 articles").
type AuthorView struct {
	Author     AuthorCard
	Posts      []PostCard
	CountLabel string
}

// CategoryView is the category detail page model.
type CategoryView struct {
	Slug        string
	Name        string
	Description string
	Posts       []PostCard
	CountLabel  string
}

// AboutView is the static about page model. ShowWriters is false when there
// are no authors to showcase, so the section (including its heading) is
// omitted entirely.
type AboutView struct {
	Heading     string
	Content     template.HTML
	HeroURL     string
	Writers     []AuthorCard
	ShowWriters bool
}

// SitemapEntry is one URL in the generated sitemap. Path is relative to the
// site base URL.
type SitemapEntry struct {
	Path    string
	LastMod time.Time
}
