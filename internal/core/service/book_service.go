package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
)

const (
	defaultBookLimit = 20
	maxBookLimit     = 5000
)

// BookService implements library CRUD and filtered listing.
type BookService struct {
	repo   ports.BookRepository
	logger zerolog.Logger
}

func NewBookService(repo ports.BookRepository, logger zerolog.Logger) *BookService {
	return &BookService{repo: repo, logger: logger}
}

func (s *BookService) List(ctx context.Context, filter ports.BookFilter) (*ports.BookPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultBookLimit
	}
	if filter.Limit > maxBookLimit {
		filter.Limit = maxBookLimit
	}
	if filter.Sort == "" {
		filter.Sort = "-createdAt"
	}
	return s.repo.Find(ctx, filter)
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookService) Create(ctx context.Context, input ports.BookInput) (*domain.Book, error) {
	now := time.Now().UTC()
	book := bookFromInput(input)
	book.CreatedAt = now
	book.UpdatedAt = now

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("book_id", created.ID).Str("title", created.Title).Msg("book created")
	return created, nil
}

func (s *BookService) Update(ctx context.Context, id string, input ports.BookInput) (*domain.Book, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book := bookFromInput(input)
	book.ID = existing.ID
	book.CreatedAt = existing.CreatedAt
	book.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("book_id", id).Msg("book updated")
	return updated, nil
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("book_id", id).Msg("book deleted")
	return nil
}

func bookFromInput(input ports.BookInput) *domain.Book {
	status := input.Status
	if status == "" {
		status = domain.StatusWantToRead
	}
	return &domain.Book{
		Title:           input.Title,
		Author:          input.Author,
		Genre:           input.Genre,
		PublicationYear: input.PublicationYear,
		ISBN:            input.ISBN,
		CoverImage:      input.CoverImage,
		Rating:          input.Rating,
		Notes:           input.Notes,
		Tags:            input.Tags,
		PageCount:       input.PageCount,
		Status:          status,
		DateStarted:     parseDate(input.DateStarted),
		DateFinished:    parseDate(input.DateFinished),
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
