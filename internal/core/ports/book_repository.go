package ports

import (
	"context"

	"github.com/bookbuddy/library-api/internal/core/domain"
)

// BookFilter narrows and orders a book listing. Search matches title or
// author case-insensitively; rating bounds are inclusive.
type BookFilter struct {
	Search    string
	Genre     string
	Author    string
	Status    domain.ReadingStatus
	MinRating *float64
	MaxRating *float64
	Sort      string
	Page      int
	Limit     int
}

// BookPage is one page of a filtered listing.
type BookPage struct {
	Items []domain.Book
	Total int64
	Page  int
	Pages int
}

// BookStats aggregates shelf-wide figures for the dashboard.
type BookStats struct {
	Total     int64
	Rated     int64
	AvgRating float64
	Recent    *domain.Book
}

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	Find(ctx context.Context, filter BookFilter) (*BookPage, error)
	Update(ctx context.Context, book *domain.Book) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*BookStats, error)
}
