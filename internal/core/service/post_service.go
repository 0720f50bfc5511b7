package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
)

const (
	defaultPostLimit = 10
	maxPostLimit     = 100
)

// PostService implements blog post CRUD, publishing and likes.
type PostService struct {
	repo   ports.PostRepository
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

func (s *PostService) ListPublished(ctx context.Context, tag string, page, limit int) (*ports.PostPage, error) {
	return s.repo.Find(ctx, ports.PostFilter{
		Tag:           tag,
		PublishedOnly: true,
		Page:          clampPage(page),
		Limit:         clampLimit(limit),
	})
}

func (s *PostService) ListAll(ctx context.Context, page, limit int) (*ports.PostPage, error) {
	return s.repo.Find(ctx, ports.PostFilter{
		Page:  clampPage(page),
		Limit: clampLimit(limit),
	})
}

func (s *PostService) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *PostService) GetByID(ctx context.Context, id string) (*domain.BlogPost, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, authorID string, input ports.PostInput) (*domain.BlogPost, error) {
	now := time.Now().UTC()
	status := input.Status
	if status == "" {
		status = domain.PostDraft
	}

	post := &domain.BlogPost{
		Title:     input.Title,
		Slug:      domain.Slugify(input.Title, now),
		Content:   input.Content,
		Excerpt:   input.Excerpt,
		Tags:      input.Tags,
		AuthorID:  authorID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == domain.PostPublished {
		post.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", created.ID).Str("slug", created.Slug).Msg("post created")
	return created, nil
}

func (s *PostService) Update(ctx context.Context, id string, input ports.PostInput) (*domain.BlogPost, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post.Title = input.Title
	post.Content = input.Content
	post.Excerpt = input.Excerpt
	post.Tags = input.Tags
	post.UpdatedAt = now

	if input.Status != "" {
		// Stamp publishedAt on the first transition to published.
		if input.Status == domain.PostPublished && post.PublishedAt == nil {
			post.PublishedAt = &now
		}
		post.Status = input.Status
	}

	updated, err := s.repo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", id).Msg("post updated")
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("post_id", id).Msg("post deleted")
	return nil
}

// Like records a like from clientKey. Repeat likes from the same key are
// ignored rather than rejected; the caller always receives the current post.
func (s *PostService) Like(ctx context.Context, id, clientKey string) (*domain.BlogPost, error) {
	applied, err := s.repo.AddLike(ctx, id, clientKey)
	if err != nil {
		return nil, err
	}
	if applied {
		s.logger.Debug().Str("post_id", id).Msg("post liked")
	}
	return s.repo.FindByID(ctx, id)
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultPostLimit
	}
	if limit > maxPostLimit {
		return maxPostLimit
	}
	return limit
}
