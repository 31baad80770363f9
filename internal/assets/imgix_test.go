package assets

import (
	"testing"

	"github.com/cosmic-community/inkwell-blog/internal/content"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	media := &content.Media{
		URL:      "https://cdn.cosmicjs.com/photo.jpg",
		ImgixURL: "https://imgix.cosmicjs.com/photo.jpg",
	}

	t.Run("formats transform parameters", func(t *testing.T) {
		got, ok := URL(media, Card)
		assert.True(t, ok)
		assert.Equal(t, "https://imgix.cosmicjs.com/photo.jpg?w=800&h=450&fit=crop&auto=format,compress", got)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		first, _ := URL(media, FeaturedHero)
		second, _ := URL(media, FeaturedHero)
		assert.Equal(t, first, second)
	})

	t.Run("nil media yields no URL", func(t *testing.T) {
		got, ok := URL(nil, Card)
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("media without imgix endpoint yields no URL", func(t *testing.T) {
		_, ok := URL(&content.Media{URL: "https://cdn.cosmicjs.com/photo.jpg"}, Card)
		assert.False(t, ok)
	})
}
