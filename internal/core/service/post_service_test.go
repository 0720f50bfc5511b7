package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
)

type stubPostRepo struct {
	posts      map[string]*domain.BlogPost
	nextID     int
	lastFilter ports.PostFilter
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.BlogPost)}
}

func clonePost(p *domain.BlogPost) *domain.BlogPost {
	if p == nil {
		return nil
	}
	clone := *p
	clone.LikedBy = append([]string(nil), p.LikedBy...)
	return &clone
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	copy := clonePost(post)
	r.nextID++
	copy.ID = fmt.Sprintf("post-%d", r.nextID)
	r.posts[copy.ID] = clonePost(copy)
	return copy, nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.BlogPost, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) FindBySlug(_ context.Context, slug string) (*domain.BlogPost, error) {
	for _, p := range r.posts {
		if p.Slug == slug && p.Status == domain.PostPublished {
			return clonePost(p), nil
		}
	}
	return nil, domain.ErrPostNotFound
}

func (r *stubPostRepo) Find(_ context.Context, filter ports.PostFilter) (*ports.PostPage, error) {
	r.lastFilter = filter
	return &ports.PostPage{Page: filter.Page}, nil
}

func (r *stubPostRepo) Update(_ context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	if _, ok := r.posts[post.ID]; !ok {
		return nil, domain.ErrPostNotFound
	}
	r.posts[post.ID] = clonePost(post)
	return clonePost(post), nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) AddLike(_ context.Context, id, clientKey string) (bool, error) {
	p, ok := r.posts[id]
	if !ok {
		return false, domain.ErrPostNotFound
	}
	for _, k := range p.LikedBy {
		if k == clientKey {
			return false, nil
		}
	}
	p.Likes++
	p.LikedBy = append(p.LikedBy, clientKey)
	return true, nil
}

func (r *stubPostRepo) Stats(_ context.Context) (*ports.PostStats, error) {
	return &ports.PostStats{}, nil
}

func newTestPostService(repo ports.PostRepository) *PostService {
	return NewPostService(repo, zerolog.Nop())
}

func TestPostService_Create_GeneratesSlug(t *testing.T) {
	svc := newTestPostService(newStubPostRepo())

	post, err := svc.Create(context.Background(), "author-1", ports.PostInput{
		Title:   "Hello, World! (Again)",
		Content: map[string]any{"type": "doc"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if !strings.HasPrefix(post.Slug, "hello-world-again-") {
		t.Fatalf("unexpected slug %q", post.Slug)
	}
	if post.Status != domain.PostDraft {
		t.Fatalf("expected default draft status, got %s", post.Status)
	}
	if post.PublishedAt != nil {
		t.Fatalf("draft must not carry publishedAt")
	}
}

func TestPostService_Create_PublishedStampsPublishedAt(t *testing.T) {
	svc := newTestPostService(newStubPostRepo())

	post, err := svc.Create(context.Background(), "author-1", ports.PostInput{
		Title:   "Launch Day",
		Content: map[string]any{"type": "doc"},
		Status:  domain.PostPublished,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.PublishedAt == nil {
		t.Fatalf("published post must carry publishedAt")
	}
}

func TestPostService_Update_PublishStampsOnce(t *testing.T) {
	repo := newStubPostRepo()
	svc := newTestPostService(repo)

	post, err := svc.Create(context.Background(), "author-1", ports.PostInput{
		Title:   "Draft First",
		Content: map[string]any{"type": "doc"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	published, err := svc.Update(context.Background(), post.ID, ports.PostInput{
		Title:   "Draft First",
		Content: map[string]any{"type": "doc"},
		Status:  domain.PostPublished,
	})
	if err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatalf("publishedAt not stamped on first publish")
	}
	first := *published.PublishedAt

	time.Sleep(5 * time.Millisecond)

	again, err := svc.Update(context.Background(), post.ID, ports.PostInput{
		Title:   "Draft First (edited)",
		Content: map[string]any{"type": "doc"},
		Status:  domain.PostPublished,
	})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if !again.PublishedAt.Equal(first) {
		t.Fatalf("publishedAt changed on re-publish: %v vs %v", again.PublishedAt, first)
	}
}

func TestPostService_Like_DeduplicatesByClientKey(t *testing.T) {
	repo := newStubPostRepo()
	svc := newTestPostService(repo)

	post, err := svc.Create(context.Background(), "author-1", ports.PostInput{
		Title:   "Likeable",
		Content: map[string]any{"type": "doc"},
		Status:  domain.PostPublished,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	liked, err := svc.Like(context.Background(), post.ID, "203.0.113.7")
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	if liked.Likes != 1 {
		t.Fatalf("likes = %d, want 1", liked.Likes)
	}

	// Second like from the same key is a no-op, not an error.
	again, err := svc.Like(context.Background(), post.ID, "203.0.113.7")
	if err != nil {
		t.Fatalf("repeat like failed: %v", err)
	}
	if again.Likes != 1 {
		t.Fatalf("likes = %d after repeat, want 1", again.Likes)
	}

	other, err := svc.Like(context.Background(), post.ID, "198.51.100.9")
	if err != nil {
		t.Fatalf("like from second key failed: %v", err)
	}
	if other.Likes != 2 {
		t.Fatalf("likes = %d, want 2", other.Likes)
	}
}

func TestPostService_ListLimitsClamped(t *testing.T) {
	repo := newStubPostRepo()
	svc := newTestPostService(repo)

	if _, err := svc.ListPublished(context.Background(), "", 0, 1000); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.Page != 1 {
		t.Fatalf("page = %d, want 1", repo.lastFilter.Page)
	}
	if repo.lastFilter.Limit != maxPostLimit {
		t.Fatalf("limit = %d, want %d", repo.lastFilter.Limit, maxPostLimit)
	}
	if !repo.lastFilter.PublishedOnly {
		t.Fatalf("published listing must be restricted to published posts")
	}

	if _, err := svc.ListAll(context.Background(), 3, 0); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.Limit != defaultPostLimit {
		t.Fatalf("limit = %d, want default %d", repo.lastFilter.Limit, defaultPostLimit)
	}
	if repo.lastFilter.PublishedOnly {
		t.Fatalf("admin listing must include drafts")
	}
}
