package ports

import (
	"context"

	"github.com/bookbuddy/library-api/internal/core/domain"
)

// PostInput carries the writable fields of a blog post.
type PostInput struct {
	Title   string
	Content map[string]any
	Excerpt string
	Tags    []string
	Status  domain.PostStatus
}

type PostService interface {
	ListPublished(ctx context.Context, tag string, page, limit int) (*PostPage, error)
	ListAll(ctx context.Context, page, limit int) (*PostPage, error)
	GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error)
	GetByID(ctx context.Context, id string) (*domain.BlogPost, error)
	Create(ctx context.Context, authorID string, input PostInput) (*domain.BlogPost, error)
	Update(ctx context.Context, id string, input PostInput) (*domain.BlogPost, error)
	Delete(ctx context.Context, id string) error
	// Like registers a like from clientKey (an IP address); likes are
	// deduplicated per key and the updated post is returned either way.
	Like(ctx context.Context, id, clientKey string) (*domain.BlogPost, error)
}
