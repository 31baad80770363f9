package cosmic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cosmic-community/inkwell-blog/internal/config"
	"github.com/cosmic-community/inkwell-blog/internal/content"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts a stub bucket API and returns a client pointed at it.
// The handler receives the decoded object query for each request.
func newTestClient(t *testing.T, handler func(w http.ResponseWriter, query map[string]any)) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/buckets/test-bucket/objects", r.URL.Path)
		assert.Equal(t, "secret-read-key", r.URL.Query().Get("read_key"))
		assert.Equal(t, "1", r.URL.Query().Get("depth"))

		var query map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("query")), &query))
		handler(w, query)
	}))
	t.Cleanup(srv.Close)

	return NewClient(config.CMSConfig{
		APIURL:  srv.URL,
		Bucket:  "test-bucket",
		ReadKey: "secret-read-key",
		Timeout: 5 * time.Second,
	})
}

func objectsResponse(w http.ResponseWriter, objects ...any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"objects": objects})
}

func TestClientPosts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, query map[string]any) {
		assert.Equal(t, "posts", query["type"])
		objectsResponse(w,
			map[string]any{
				"id": "p1", "slug": "first", "title": "First", "type": "posts",
				"created_at": "2024-03-01T10:00:00Z",
				"metadata": map[string]any{
					"content": "body",
					"author":  "a1",
					"category": map[string]any{
						"id": "c1", "slug": "travel", "title": "Travel", "type": "categories",
						"metadata": map[string]any{"name": "Travel"},
					},
				},
			},
		)
	})

	posts, err := client.Posts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)

	post := posts[0]
	assert.Equal(t, "first", post.Slug)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), post.CreatedAt)
	assert.Equal(t, content.RelationUnresolved, post.Metadata.Author.State())
	assert.Equal(t, "a1", post.Metadata.Author.ID())
	assert.Equal(t, content.RelationResolved, post.Metadata.Category.State())
}

func TestClientBySlug(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, query map[string]any) {
			assert.Equal(t, "authors", query["type"])
			assert.Equal(t, "jane-doe", query["slug"])
			objectsResponse(w, map[string]any{
				"id": "a1", "slug": "jane-doe", "title": "Jane Doe", "type": "authors",
				"metadata": map[string]any{"name": "Jane Doe"},
			})
		})

		author, err := client.AuthorBySlug(context.Background(), "jane-doe")
		require.NoError(t, err)
		require.NotNil(t, author)
		assert.Equal(t, "Jane Doe", author.Metadata.Name)
	})

	t.Run("no match is nil, not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, query map[string]any) {
			w.WriteHeader(http.StatusNotFound)
		})

		author, err := client.AuthorBySlug(context.Background(), "nobody")
		require.NoError(t, err)
		assert.Nil(t, author)

		page, err := client.PageBySlug(context.Background(), "nothing")
		require.NoError(t, err)
		assert.Nil(t, page)
	})

	t.Run("empty object list is nil, not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, query map[string]any) {
			objectsResponse(w)
		})

		post, err := client.PostBySlug(context.Background(), "missing")
		require.NoError(t, err)
		assert.Nil(t, post)
	})
}

func TestClientByRelation(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, query map[string]any) {
		assert.Equal(t, "posts", query["type"])
		assert.Equal(t, "c1", query["metadata.category"])
		objectsResponse(w,
			map[string]any{"id": "p1", "slug": "one", "title": "One", "type": "posts", "metadata": map[string]any{"content": ""}},
			map[string]any{"id": "p2", "slug": "two", "title": "Two", "type": "posts", "metadata": map[string]any{"content": ""}},
		)
	})

	posts, err := client.PostsByCategory(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestClientByID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, query map[string]any) {
		assert.Equal(t, "c9", query["id"])
		objectsResponse(w, map[string]any{
			"id": "c9", "slug": "lifestyle", "title": "Lifestyle", "type": "categories",
			"metadata": map[string]any{"name": "Lifestyle"},
		})
	})

	category, err := client.CategoryByID(context.Background(), "c9")
	require.NoError(t, err)
	require.NotNil(t, category)
	assert.Equal(t, "Lifestyle", category.Metadata.Name)
}

func TestClientUnavailable(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, query map[string]any) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Posts(context.Background())
		assert.ErrorIs(t, err, content.ErrUnavailable)
	})

	t.Run("malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, query map[string]any) {
			w.Write([]byte("not json"))
		})

		_, err := client.Categories(context.Background())
		assert.ErrorIs(t, err, content.ErrUnavailable)
	})

	t.Run("unreachable host", func(t *testing.T) {
		client := NewClient(config.CMSConfig{
			APIURL:  "http://127.0.0.1:1",
			Bucket:  "test-bucket",
			Timeout: time.Second,
		})

		_, err := client.Authors(context.Background())
		assert.ErrorIs(t, err, content.ErrUnavailable)
	})
}
