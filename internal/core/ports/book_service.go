package ports

import (
	"context"

	"github.com/bookbuddy/library-api/internal/core/domain"
)

// BookInput carries the writable fields of a book.
type BookInput struct {
	Title           string
	Author          string
	Genre           string
	PublicationYear int
	ISBN            string
	CoverImage      string
	Rating          *float64
	Notes           string
	Tags            []string
	PageCount       int
	Status          domain.ReadingStatus
	DateStarted     string
	DateFinished    string
}

type BookService interface {
	List(ctx context.Context, filter BookFilter) (*BookPage, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	Create(ctx context.Context, input BookInput) (*domain.Book, error)
	Update(ctx context.Context, id string, input BookInput) (*domain.Book, error)
	Delete(ctx context.Context, id string) error
}
