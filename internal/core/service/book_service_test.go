package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/ports"
)

type stubBookRepo struct {
	books      map[string]*domain.Book
	nextID     int
	lastFilter ports.BookFilter
}

func newStubBookRepo() *stubBookRepo {
	return &stubBookRepo{books: make(map[string]*domain.Book)}
}

func (r *stubBookRepo) Create(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if book.ISBN != "" {
		for _, existing := range r.books {
			if existing.ISBN == book.ISBN {
				return nil, domain.ErrDuplicateISBN
			}
		}
	}
	clone := *book
	r.nextID++
	clone.ID = fmt.Sprintf("book-%d", r.nextID)
	r.books[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubBookRepo) FindByID(_ context.Context, id string) (*domain.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, domain.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookRepo) Find(_ context.Context, filter ports.BookFilter) (*ports.BookPage, error) {
	r.lastFilter = filter
	return &ports.BookPage{Page: filter.Page}, nil
}

func (r *stubBookRepo) Update(_ context.Context, book *domain.Book) (*domain.Book, error) {
	if _, ok := r.books[book.ID]; !ok {
		return nil, domain.ErrBookNotFound
	}
	clone := *book
	r.books[book.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubBookRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.books[id]; !ok {
		return domain.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}

func (r *stubBookRepo) Stats(_ context.Context) (*ports.BookStats, error) {
	return &ports.BookStats{Total: int64(len(r.books))}, nil
}

func newTestBookService(repo ports.BookRepository) *BookService {
	return NewBookService(repo, zerolog.Nop())
}

func TestBookService_ListDefaults(t *testing.T) {
	repo := newStubBookRepo()
	svc := newTestBookService(repo)

	if _, err := svc.List(context.Background(), ports.BookFilter{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.Limit != defaultBookLimit {
		t.Fatalf("defaults not applied: page=%d limit=%d", repo.lastFilter.Page, repo.lastFilter.Limit)
	}
	if repo.lastFilter.Sort != "-createdAt" {
		t.Fatalf("sort = %q, want -createdAt", repo.lastFilter.Sort)
	}
}

func TestBookService_ListLimitCap(t *testing.T) {
	repo := newStubBookRepo()
	svc := newTestBookService(repo)

	// The shelf view loads the whole collection at once, so the cap is high.
	if _, err := svc.List(context.Background(), ports.BookFilter{Limit: 9999}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.Limit != maxBookLimit {
		t.Fatalf("limit = %d, want %d", repo.lastFilter.Limit, maxBookLimit)
	}

	if _, err := svc.List(context.Background(), ports.BookFilter{Limit: 3000, Sort: "title"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if repo.lastFilter.Limit != 3000 {
		t.Fatalf("limit = %d, want 3000 untouched", repo.lastFilter.Limit)
	}
	if repo.lastFilter.Sort != "title" {
		t.Fatalf("caller sort overridden: %q", repo.lastFilter.Sort)
	}
}

func TestBookService_Create_DefaultsAndDates(t *testing.T) {
	svc := newTestBookService(newStubBookRepo())

	book, err := svc.Create(context.Background(), ports.BookInput{
		Title:        "Dune",
		Author:       "Frank Herbert",
		DateStarted:  "2026-01-15",
		DateFinished: "not-a-date",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if book.Status != domain.StatusWantToRead {
		t.Fatalf("status = %s, want default want-to-read", book.Status)
	}
	if book.DateStarted == nil {
		t.Fatalf("dateStarted not parsed")
	}
	want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	if !book.DateStarted.Equal(want) {
		t.Fatalf("dateStarted = %v, want %v", book.DateStarted, want)
	}
	// Unparseable dates are dropped rather than rejected.
	if book.DateFinished != nil {
		t.Fatalf("dateFinished = %v, want nil", book.DateFinished)
	}
}

func TestBookService_Create_DuplicateISBN(t *testing.T) {
	svc := newTestBookService(newStubBookRepo())

	if _, err := svc.Create(context.Background(), ports.BookInput{
		Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719",
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := svc.Create(context.Background(), ports.BookInput{
		Title: "Dune (reissue)", Author: "Frank Herbert", ISBN: "9780441172719",
	})
	if !errors.Is(err, domain.ErrDuplicateISBN) {
		t.Fatalf("expected ErrDuplicateISBN, got %v", err)
	}
}

func TestBookService_Update_PreservesCreatedAt(t *testing.T) {
	repo := newStubBookRepo()
	svc := newTestBookService(repo)

	book, err := svc.Create(context.Background(), ports.BookInput{Title: "Dune", Author: "Frank Herbert"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(context.Background(), book.ID, ports.BookInput{
		Title: "Dune", Author: "Frank Herbert", Status: domain.StatusRead,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.StatusRead {
		t.Fatalf("status = %s, want read", updated.Status)
	}
	if !updated.CreatedAt.Equal(book.CreatedAt) {
		t.Fatalf("createdAt changed: %v vs %v", updated.CreatedAt, book.CreatedAt)
	}
}

func TestBookService_Delete_Unknown(t *testing.T) {
	svc := newTestBookService(newStubBookRepo())

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}
