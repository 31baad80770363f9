package service

import (
	"context"

	"github.com/cosmic-community/inkwell-blog/internal/content"
)

// relationSource is the subset of the repository needed to expand references.
type relationSource interface {
	AuthorByID(ctx context.Context, id string) (*content.Author, error)
	CategoryByID(ctx context.Context, id string) (*content.Category, error)
}

// resolvePost returns a copy of p with its author and category references
// expanded to exactly one level. Already-resolved fields pass through
// untouched, so resolving twice is a no-op. A reference that cannot be
// resolved, whether the lookup fails or the record is gone, is demoted to
// absent rather than reported as an error.
func resolvePost(ctx context.Context, src relationSource, p content.Post) content.Post {
	if p.Metadata.Author.State() == content.RelationUnresolved {
		author, err := src.AuthorByID(ctx, p.Metadata.Author.ID())
		if err == nil && author != nil {
			p.Metadata.Author = content.Resolved(author.ID, *author)
		} else {
			p.Metadata.Author = content.Relation[content.Author]{}
		}
	}

	if p.Metadata.Category.State() == content.RelationUnresolved {
		category, err := src.CategoryByID(ctx, p.Metadata.Category.ID())
		if err == nil && category != nil {
			p.Metadata.Category = content.Resolved(category.ID, *category)
		} else {
			p.Metadata.Category = content.Relation[content.Category]{}
		}
	}

	return p
}
