package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"time"

	"github.com/cosmic-community/inkwell-blog/internal/assets"
	"github.com/cosmic-community/inkwell-blog/internal/content"
	"github.com/cosmic-community/inkwell-blog/internal/logger"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound indicates that the slug a page was asked for has no matching
// record. Handlers map it to the standard not-found page.
var ErrNotFound = errors.New("content not found")

// aboutSlug is the fixed slug of the static about page.
const aboutSlug = "about"

// displayDateFormat matches the long en-US date the site renders.
const displayDateFormat = "January 2, 2006"

// ContentRepository defines the read operations the assemblers need from the
// content store. Single lookups return nil for "no match"; only transport or
// store failures produce errors.
type ContentRepository interface {
	Posts(ctx context.Context) ([]content.Post, error)
	PostBySlug(ctx context.Context, slug string) (*content.Post, error)
	PostsByAuthor(ctx context.Context, authorID string) ([]content.Post, error)
	PostsByCategory(ctx context.Context, categoryID string) ([]content.Post, error)
	Authors(ctx context.Context) ([]content.Author, error)
	AuthorBySlug(ctx context.Context, slug string) (*content.Author, error)
	AuthorByID(ctx context.Context, id string) (*content.Author, error)
	Categories(ctx context.Context) ([]content.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*content.Category, error)
	CategoryByID(ctx context.Context, id string) (*content.Category, error)
	PageBySlug(ctx context.Context, slug string) (*content.Page, error)
}

// ContentServicer defines the page view-model assemblers.
type ContentServicer interface {
	Home(ctx context.Context) (*HomeView, error)
	Post(ctx context.Context, slug string) (*PostView, error)
	Author(ctx context.Context, slug string) (*AuthorView, error)
	Category(ctx context.Context, slug string) (*CategoryView, error)
	About(ctx context.Context) (*AboutView, error)
	Sitemap(ctx context.Context) []SitemapEntry
}

// markdown is the shared converter for post and page bodies.
var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks
		extension.Linkify, // linkify raw URLs
	),
)

// ContentService assembles render-ready view models from the content
// repository. It is stateless across requests; every call re-fetches.
type ContentService struct {
	repo      ContentRepository
	sanitizer *bluemonday.Policy
	log       logger.Logger
}

// NewContentService creates a ContentService backed by the given repository.
func NewContentService(repo ContentRepository, log logger.Logger) *ContentService {
	// The CMS content is editor-controlled rather than user-generated, but it
	// still crosses a trust boundary; UGCPolicy keeps formatting and images
	// while stripping script-capable HTML.
	return &ContentService{
		repo:      repo,
		sanitizer: bluemonday.UGCPolicy(),
		log:       log,
	}
}

// Home assembles the home page: all posts and all categories, fetched
// concurrently. Either fetch failing degrades that section rather than
// failing the page, since the home page has no single primary record.
func (s *ContentService) Home(ctx context.Context) (*HomeView, error) {
	var posts []content.Post
	var categories []content.Category

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.repo.Posts(gctx)
		if err != nil {
			s.log.Error(err, "Failed to fetch posts for home page")
			return nil
		}
		posts = items
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.Categories(gctx)
		if err != nil {
			s.log.Error(err, "Failed to fetch categories for home page")
			return nil
		}
		categories = items
		return nil
	})
	_ = g.Wait()

	sortPostsByRecency(posts)

	view := &HomeView{Empty: len(posts) == 0}
	for _, c := range categories {
		view.Categories = append(view.Categories, CategoryPill{Slug: c.Slug, Name: c.Metadata.Name})
	}
	if len(posts) > 0 {
		featured := postCard(posts[0], assets.FeaturedHero, assets.AvatarByline)
		view.Featured = &featured
		for _, p := range posts[1:] {
			view.Grid = append(view.Grid, postCard(p, assets.Card, assets.AvatarSmall))
		}
	}
	return view, nil
}

// Post assembles a post detail page. The post itself is required; the full
// collection fetched to compute related posts is enrichment and degrades to
// no related section.
func (s *ContentService) Post(ctx context.Context, slug string) (*PostView, error) {
	post, err := s.repo.PostBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	resolved := resolvePost(ctx, s.repo, *post)

	view := &PostView{
		Slug:             resolved.Slug,
		Title:            resolved.Title,
		Excerpt:          resolved.Metadata.Excerpt,
		Content:          s.renderMarkdown(resolved.Metadata.Content),
		PublishedAt:      resolved.CreatedAt,
		PublishedDisplay: resolved.CreatedAt.Format(displayDateFormat),
	}
	if url, ok := assets.URL(resolved.Metadata.FeaturedImage, assets.PostHero); ok {
		view.ImageURL = url
	}
	if author, ok := resolved.Metadata.Author.Value(); ok {
		card := authorCard(*author, assets.AvatarByline)
		view.Author = &card
	}
	if category, ok := resolved.Metadata.Category.Value(); ok {
		view.Category = &CategoryPill{Slug: category.Slug, Name: category.Metadata.Name}

		all, err := s.repo.Posts(ctx)
		if err != nil {
			s.log.Error(err, "Failed to fetch posts for related section")
			all = nil
		}
		for _, related := range relatedPosts(all, resolved.Slug, category.Slug) {
			view.Related = append(view.Related, RelatedPost{
				Slug:    related.Slug,
				Title:   related.Title,
				Excerpt: related.Metadata.Excerpt,
			})
		}
	}
	return view, nil
}

// Author assembles an author detail page. The author record is required; the
// article listing degrades to the zero-article state.
func (s *ContentService) Author(ctx context.Context, slug string) (*AuthorView, error) {
	author, err := s.repo.AuthorBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrNotFound
	}

	posts, err := s.repo.PostsByAuthor(ctx, author.ID)
	if err != nil {
		s.log.Error(err, "Failed to fetch posts for author page")
		posts = nil
	}
	sortPostsByRecency(posts)

	view := &AuthorView{
		Author:     authorCard(*author, assets.AvatarProfile),
		CountLabel: articleCountLabel(len(posts)),
	}
	for _, p := range posts {
		view.Posts = append(view.Posts, postCard(p, assets.Card, assets.AvatarSmall))
	}
	return view, nil
}

// Category assembles a category detail page. The category record is required;
// the article listing degrades to the zero-article state.
func (s *ContentService) Category(ctx context.Context, slug string) (*CategoryView, error) {
	category, err := s.repo.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	posts, err := s.repo.PostsByCategory(ctx, category.ID)
	if err != nil {
		s.log.Error(err, "Failed to fetch posts for category page")
		posts = nil
	}
	sortPostsByRecency(posts)

	view := &CategoryView{
		Slug:        category.Slug,
		Name:        category.Metadata.Name,
		Description: category.Metadata.Description,
		CountLabel:  articleCountLabel(len(posts)),
	}
	for _, p := range posts {
		view.Posts = append(view.Posts, postCard(p, assets.Card, assets.AvatarSmall))
	}
	return view, nil
}

// About assembles the static about page plus the writers showcase. The page
// record is required; the authors fetch is enrichment and the whole section
// is omitted when it yields nothing.
func (s *ContentService) About(ctx context.Context) (*AboutView, error) {
	var page *content.Page
	var authors []content.Author

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.repo.PageBySlug(gctx, aboutSlug)
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.Authors(gctx)
		if err != nil {
			s.log.Error(err, "Failed to fetch authors for about page")
			return nil
		}
		authors = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if page == nil {
		return nil, ErrNotFound
	}

	heading := page.Metadata.Heading
	if heading == "" {
		heading = page.Title
	}

	view := &AboutView{
		Heading:     heading,
		Content:     s.renderMarkdown(page.Metadata.Content),
		ShowWriters: len(authors) > 0,
	}
	if url, ok := assets.URL(page.Metadata.HeroImage, assets.PageHero); ok {
		view.HeroURL = url
	}
	for _, a := range authors {
		view.Writers = append(view.Writers, authorCard(a, assets.AvatarShowcase))
	}
	return view, nil
}

// Sitemap lists every addressable page. All fetches are best-effort: an
// unreachable store yields a sitemap with just the fixed routes.
func (s *ContentService) Sitemap(ctx context.Context) []SitemapEntry {
	var posts []content.Post
	var authors []content.Author
	var categories []content.Category

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.repo.Posts(gctx)
		if err != nil {
			s.log.Error(err, "Failed to fetch posts for sitemap")
			return nil
		}
		posts = items
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.Authors(gctx)
		if err != nil {
			s.log.Error(err, "Failed to fetch authors for sitemap")
			return nil
		}
		authors = items
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.Categories(gctx)
		if err != nil {
			s.log.Error(err, "Failed to fetch categories for sitemap")
			return nil
		}
		categories = items
		return nil
	})
	_ = g.Wait()

	now := time.Now()
	entries := []SitemapEntry{
		{Path: "/", LastMod: now},
		{Path: "/about", LastMod: now},
	}
	for _, p := range posts {
		entries = append(entries, SitemapEntry{Path: "/posts/" + p.Slug, LastMod: p.CreatedAt})
	}
	for _, a := range authors {
		entries = append(entries, SitemapEntry{Path: "/authors/" + a.Slug, LastMod: a.CreatedAt})
	}
	for _, c := range categories {
		entries = append(entries, SitemapEntry{Path: "/categories/" + c.Slug, LastMod: c.CreatedAt})
	}
	return entries
}

// renderMarkdown converts markdown content to sanitized HTML.
func (s *ContentService) renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		s.log.Error(err, "Failed to render markdown content")
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(s.sanitizer.SanitizeBytes(buf.Bytes()))
}

// sortPostsByRecency orders posts by created_at descending. The sort is
// stable: posts sharing a timestamp keep their store order.
func sortPostsByRecency(posts []content.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

// relatedPosts picks up to two posts from the same category, most recent
// first, excluding the current post. Posts whose category reference is not
// resolved cannot match.
func relatedPosts(all []content.Post, currentSlug, categorySlug string) []content.Post {
	sortPostsByRecency(all)

	var related []content.Post
	for _, p := range all {
		if p.Slug == currentSlug {
			continue
		}
		category, ok := p.Metadata.Category.Value()
		if !ok || category.Slug != categorySlug {
			continue
		}
		related = append(related, p)
		if len(related) == 2 {
			break
		}
	}
	return related
}

// articleCountLabel pluralizes the article count. Only exactly one article is
// singular; zero takes the plural form.
func articleCountLabel(n int) string {
	if n == 1 {
		return "1 article"
	}
	return fmt.Sprintf("%d articles", n)
}

// postCard builds a card from a post, formatting the featured image and the
// byline avatar at the given variants. Unresolved or absent relations leave
// the corresponding blocks out.
func postCard(p content.Post, image assets.Variant, avatar assets.Variant) PostCard {
	card := PostCard{
		Slug:             p.Slug,
		Title:            p.Title,
		Excerpt:          p.Metadata.Excerpt,
		PublishedAt:      p.CreatedAt,
		PublishedDisplay: p.CreatedAt.Format(displayDateFormat),
	}
	if url, ok := assets.URL(p.Metadata.FeaturedImage, image); ok {
		card.ImageURL = url
	}
	if category, ok := p.Metadata.Category.Value(); ok {
		card.Category = &CategoryPill{Slug: category.Slug, Name: category.Metadata.Name}
	}
	if author, ok := p.Metadata.Author.Value(); ok {
		byline := &Byline{Slug: author.Slug, Name: author.Metadata.Name}
		if url, ok := assets.URL(author.Metadata.ProfilePhoto, avatar); ok {
			byline.PhotoURL = url
		}
		card.Author = byline
	}
	return card
}

// authorCard builds a profile block from an author record.
func authorCard(a content.Author, avatar assets.Variant) AuthorCard {
	card := AuthorCard{
		Slug:       a.Slug,
		Name:       a.Metadata.Name,
		Bio:        a.Metadata.Bio,
		SocialLink: a.Metadata.SocialLink,
	}
	if url, ok := assets.URL(a.Metadata.ProfilePhoto, avatar); ok {
		card.PhotoURL = url
	}
	return card
}
