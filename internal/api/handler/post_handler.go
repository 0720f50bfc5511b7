package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookbuddy/library-api/internal/api/metrics"
	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
)

// PostHandler exposes the public blog and the authenticated admin surface.
type PostHandler struct {
	postService ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// ListPublished returns published posts, optionally filtered by tag.
//
// @Summary      List published posts
// @Tags         posts
// @Produce      json
// @Router       /api/posts [get]
func (h *PostHandler) ListPublished(c echo.Context) error {
	var q postQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	page, err := h.postService.ListPublished(c.Request().Context(), q.Tag, q.Page, q.Limit)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, page.Items, len(page.Items), page.Total, page.Page, page.Pages)
}

// GetBySlug returns a published post by its slug.
//
// @Summary      Get a published post
// @Tags         posts
// @Produce      json
// @Router       /api/posts/{slug} [get]
func (h *PostHandler) GetBySlug(c echo.Context) error {
	post, err := h.postService.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, post)
}

// Like records an anonymous like, deduplicated by client IP.
//
// @Summary      Like a post
// @Tags         posts
// @Produce      json
// @Router       /api/posts/{id}/like [post]
func (h *PostHandler) Like(c echo.Context) error {
	post, err := h.postService.Like(c.Request().Context(), c.Param("id"), c.RealIP())
	if err != nil {
		return err
	}
	metrics.PostLikesTotal.Inc()
	return respond(c, http.StatusOK, post)
}

// ListAll returns every post including drafts, for the admin console.
//
// @Summary      List all posts
// @Tags         posts
// @Produce      json
// @Router       /api/posts/admin/all [get]
func (h *PostHandler) ListAll(c echo.Context) error {
	var q postQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	page, err := h.postService.ListAll(c.Request().Context(), q.Page, q.Limit)
	if err != nil {
		return err
	}
	return respondList(c, http.StatusOK, page.Items, len(page.Items), page.Total, page.Page, page.Pages)
}

// GetByID returns any post, draft or published, for the admin console.
//
// @Summary      Get a post by id
// @Tags         posts
// @Produce      json
// @Router       /api/posts/admin/{id} [get]
func (h *PostHandler) GetByID(c echo.Context) error {
	post, err := h.postService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, post)
}

// Create adds a new post authored by the caller.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Router       /api/posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	input, err := bindPost(c)
	if err != nil {
		return err
	}

	author := CurrentUser(c)
	if author == nil {
		return domain.ErrUnauthenticated
	}

	post, err := h.postService.Create(c.Request().Context(), author.ID, *input)
	if err != nil {
		return err
	}
	metrics.PostsCreatedTotal.WithLabelValues(string(post.Status)).Inc()

	return respond(c, http.StatusCreated, post)
}

// Update replaces a post's writable fields.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Router       /api/posts/{id} [put]
func (h *PostHandler) Update(c echo.Context) error {
	input, err := bindPost(c)
	if err != nil {
		return err
	}

	post, err := h.postService.Update(c.Request().Context(), c.Param("id"), *input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, post)
}

// Delete removes a post.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Router       /api/posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	if err := h.postService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "Post deleted successfully")
}

func bindPost(c echo.Context) (*ports.PostInput, error) {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	// The rich-text document is opaque, but a structural minimum applies:
	// the editor always emits a top-level "type" field.
	if _, ok := req.Content["type"]; !ok {
		return nil, &ValidationErrors{Fields: []string{"content must be a valid rich-text document"}}
	}

	return &ports.PostInput{
		Title:   req.Title,
		Content: req.Content,
		Excerpt: req.Excerpt,
		Tags:    req.Tags,
		Status:  domain.PostStatus(req.Status),
	}, nil
}
