package ports

import (
	"context"

	"github.com/bookbuddy/library-api/internal/core/domain"
)

// PostFilter narrows a post listing. PublishedOnly restricts to published
// posts sorted by publication date; otherwise all posts sorted by creation.
type PostFilter struct {
	Tag           string
	PublishedOnly bool
	Page          int
	Limit         int
}

// PostPage is one page of a post listing.
type PostPage struct {
	Items []domain.BlogPost
	Total int64
	Page  int
	Pages int
}

// PostStats aggregates blog-wide figures for the dashboard.
type PostStats struct {
	Published  int64
	Drafts     int64
	TotalLikes int64
	Recent     *domain.BlogPost
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error)
	FindByID(ctx context.Context, id string) (*domain.BlogPost, error)
	// FindBySlug returns a published post only.
	FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
	Find(ctx context.Context, filter PostFilter) (*PostPage, error)
	Update(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
	// AddLike atomically increments the like counter if clientKey has not
	// liked the post before; reports whether the like was applied.
	AddLike(ctx context.Context, id, clientKey string) (bool, error)
	Stats(ctx context.Context) (*PostStats, error)
}
