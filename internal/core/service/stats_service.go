package service

import (
	"context"

	"github.com/bookbuddy/library-api/internal/core/ports"
)

// StatsService assembles the admin dashboard aggregates.
type StatsService struct {
	books ports.BookRepository
	posts ports.PostRepository
	users ports.UserRepository
}

func NewStatsService(books ports.BookRepository, posts ports.PostRepository, users ports.UserRepository) *StatsService {
	return &StatsService{books: books, posts: posts, users: users}
}

func (s *StatsService) Dashboard(ctx context.Context) (*ports.DashboardStats, error) {
	bookStats, err := s.books.Stats(ctx)
	if err != nil {
		return nil, err
	}
	postStats, err := s.posts.Stats(ctx)
	if err != nil {
		return nil, err
	}
	userCount, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &ports.DashboardStats{
		Books: *bookStats,
		Posts: *postStats,
		Users: userCount,
	}, nil
}
