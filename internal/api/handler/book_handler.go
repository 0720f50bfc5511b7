package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookbuddy/library-api/internal/api/metrics"
	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
	"github.com/bookbuddy/library-api/internal/infrastructure/openlibrary"
)

// BookHandler exposes library browsing (public) and management (authenticated).
type BookHandler struct {
	bookService ports.BookService
	catalog     ports.CatalogClient
}

func NewBookHandler(bookService ports.BookService, catalog ports.CatalogClient) *BookHandler {
	return &BookHandler{bookService: bookService, catalog: catalog}
}

// List returns a filtered, paginated listing.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	var q bookQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	page, err := h.bookService.List(c.Request().Context(), ports.BookFilter{
		Search:    q.Search,
		Genre:     q.Genre,
		Author:    q.Author,
		Status:    domain.ReadingStatus(q.Status),
		MinRating: q.MinRating,
		MaxRating: q.MaxRating,
		Sort:      q.Sort,
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		return err
	}

	return respondList(c, http.StatusOK, page.Items, len(page.Items), page.Total, page.Page, page.Pages)
}

// Get returns a single book.
//
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Router       /api/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.bookService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, book)
}

// Create adds a book to the library.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Router       /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	input, err := h.bindBook(c)
	if err != nil {
		return err
	}

	book, err := h.bookService.Create(c.Request().Context(), *input)
	if err != nil {
		return err
	}
	metrics.BooksCreatedTotal.Inc()

	return respond(c, http.StatusCreated, book)
}

// Update replaces a book's writable fields.
//
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Router       /api/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	input, err := h.bindBook(c)
	if err != nil {
		return err
	}

	book, err := h.bookService.Update(c.Request().Context(), c.Param("id"), *input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, book)
}

// Delete removes a book.
//
// @Summary      Delete a book
// @Tags         books
// @Produce      json
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.bookService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "Book deleted successfully")
}

// CatalogSearch proxies the external catalog to pre-fill book metadata in the
// admin console. Upstream failures surface as 502, never a crash.
//
// @Summary      Search the external catalog
// @Tags         books
// @Produce      json
// @Router       /api/books/api/search [get]
func (h *BookHandler) CatalogSearch(c echo.Context) error {
	var q catalogQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	ctx := c.Request().Context()

	if q.ISBN != "" {
		book, err := h.catalog.ByISBN(ctx, q.ISBN)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, "failed to fetch book data from Open Library")
		}
		return respond(c, http.StatusOK, book)
	}

	books, err := h.catalog.Search(ctx, q.Title, q.Author)
	if err != nil {
		if errors.Is(err, openlibrary.ErrEmptyQuery) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, "failed to fetch book data from Open Library")
	}
	return respond(c, http.StatusOK, books)
}

func (h *BookHandler) bindBook(c echo.Context) (*ports.BookInput, error) {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	return &ports.BookInput{
		Title:           req.Title,
		Author:          req.Author,
		Genre:           req.Genre,
		PublicationYear: req.PublicationYear,
		ISBN:            req.ISBN,
		CoverImage:      req.CoverImage,
		Rating:          req.Rating,
		Notes:           req.Notes,
		Tags:            req.Tags,
		PageCount:       req.PageCount,
		Status:          domain.ReadingStatus(req.Status),
		DateStarted:     req.DateStarted,
		DateFinished:    req.DateFinished,
	}, nil
}
