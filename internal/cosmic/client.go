// Package cosmic implements the read-only content repository over the Cosmic
// bucket HTTP API.
package cosmic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cosmic-community/inkwell-blog/internal/config"
	"github.com/cosmic-community/inkwell-blog/internal/content"
)

// objectProps is the field set requested for every object. Keeping the list
// fixed means every lookup decodes into the same envelopes.
const objectProps = "id,slug,title,type,created_at,metadata"

// Client is a typed accessor over one Cosmic bucket. It performs network reads
// only and holds no mutable state, so a single instance is shared across
// requests.
type Client struct {
	http    *http.Client
	baseURL string
	bucket  string
	readKey string
}

// NewClient creates a Client for the configured bucket. The HTTP client owns
// the timeout policy for all repository calls.
func NewClient(cfg config.CMSConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.APIURL,
		bucket:  cfg.Bucket,
		readKey: cfg.ReadKey,
	}
}

// objectsURL builds the objects endpoint URL for the given query. Relations
// are expanded one level server-side (depth=1); the decoder also accepts the
// bare-id form, so a store without expansion support degrades gracefully.
func (c *Client) objectsURL(query map[string]any) (string, error) {
	q, err := json.Marshal(query)
	if err != nil {
		return "", fmt.Errorf("failed to encode object query: %w", err)
	}

	params := url.Values{}
	params.Set("query", string(q))
	params.Set("props", objectProps)
	params.Set("depth", "1")
	if c.readKey != "" {
		params.Set("read_key", c.readKey)
	}

	return fmt.Sprintf("%s/buckets/%s/objects?%s", c.baseURL, c.bucket, params.Encode()), nil
}

// list fetches every object matching the query. A 404 from the API means the
// query matched nothing and yields an empty slice, not an error.
func list[T any](ctx context.Context, c *Client, query map[string]any) ([]T, error) {
	endpoint, err := c.objectsURL(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build object request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", content.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", content.ErrUnavailable, resp.StatusCode)
	}

	var envelope struct {
		Objects []T `json:"objects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", content.ErrUnavailable, err)
	}
	return envelope.Objects, nil
}

// find fetches the first object matching the query. Not found is signalled by
// a nil result, never by an error.
func find[T any](ctx context.Context, c *Client, query map[string]any) (*T, error) {
	objects, err := list[T](ctx, c, query)
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, nil
	}
	return &objects[0], nil
}

// Posts returns every post in the bucket, in store order.
func (c *Client) Posts(ctx context.Context) ([]content.Post, error) {
	return list[content.Post](ctx, c, map[string]any{"type": content.TypePosts})
}

// PostBySlug returns the post with the given slug, or nil when none matches.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*content.Post, error) {
	return find[content.Post](ctx, c, map[string]any{"type": content.TypePosts, "slug": slug})
}

// PostByID returns the post with the given id, or nil when none matches.
func (c *Client) PostByID(ctx context.Context, id string) (*content.Post, error) {
	return find[content.Post](ctx, c, map[string]any{"type": content.TypePosts, "id": id})
}

// PostsByAuthor returns every post whose author relation equals the given
// author id.
func (c *Client) PostsByAuthor(ctx context.Context, authorID string) ([]content.Post, error) {
	return list[content.Post](ctx, c, map[string]any{"type": content.TypePosts, "metadata.author": authorID})
}

// PostsByCategory returns every post whose category relation equals the given
// category id.
func (c *Client) PostsByCategory(ctx context.Context, categoryID string) ([]content.Post, error) {
	return list[content.Post](ctx, c, map[string]any{"type": content.TypePosts, "metadata.category": categoryID})
}

// Authors returns every author in the bucket.
func (c *Client) Authors(ctx context.Context) ([]content.Author, error) {
	return list[content.Author](ctx, c, map[string]any{"type": content.TypeAuthors})
}

// AuthorBySlug returns the author with the given slug, or nil when none matches.
func (c *Client) AuthorBySlug(ctx context.Context, slug string) (*content.Author, error) {
	return find[content.Author](ctx, c, map[string]any{"type": content.TypeAuthors, "slug": slug})
}

// AuthorByID returns the author with the given id, or nil when none matches.
func (c *Client) AuthorByID(ctx context.Context, id string) (*content.Author, error) {
	return find[content.Author](ctx, c, map[string]any{"type": content.TypeAuthors, "id": id})
}

// Categories returns every category in the bucket.
func (c *Client) Categories(ctx context.Context) ([]content.Category, error) {
	return list[content.Category](ctx, c, map[string]any{"type": content.TypeCategories})
}

// CategoryBySlug returns the category with the given slug, or nil when none matches.
func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*content.Category, error) {
	return find[content.Category](ctx, c, map[string]any{"type": content.TypeCategories, "slug": slug})
}

// CategoryByID returns the category with the given id, or nil when none matches.
func (c *Client) CategoryByID(ctx context.Context, id string) (*content.Category, error) {
	return find[content.Category](ctx, c, map[string]any{"type": content.TypeCategories, "id": id})
}

// Pages returns every static page in the bucket.
func (c *Client) Pages(ctx context.Context) ([]content.Page, error) {
	return list[content.Page](ctx, c, map[string]any{"type": content.TypePages})
}

// PageBySlug returns the static page with the given slug, or nil when none matches.
func (c *Client) PageBySlug(ctx context.Context, slug string) (*content.Page, error) {
	return find[content.Page](ctx, c, map[string]any{"type": content.TypePages, "slug": slug})
}

// PageByID returns the static page with the given id, or nil when none matches.
func (c *Client) PageByID(ctx context.Context, id string) (*content.Page, error) {
	return find[content.Page](ctx, c, map[string]any{"type": content.TypePages, "id": id})
}
