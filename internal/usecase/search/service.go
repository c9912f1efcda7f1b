package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/search/query"
	"github.com/kailas-cloud/bookshelf/internal/logger"
)

// Params are the optional predicates of a book query. Nil means absent.
type Params struct {
	Author       *string
	Title        *string
	MinWordCount int
	MaxWordCount *int
}

// Service runs compound book queries.
type Service struct {
	repo Repository
}

// New creates a search service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Query composes the predicates and returns the first page of matching books.
func (s *Service) Query(ctx context.Context, p Params) ([]dombook.Book, error) {
	d := query.Compose(p.Author, p.Title, p.MinWordCount, p.MaxWordCount)

	log := logger.FromContext(ctx)
	log.Debug("book query", zap.Stringer("query", d))

	books, total, err := s.repo.Search(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}

	log.Debug("book query completed",
		zap.Int("returned", len(books)),
		zap.Int("total", total),
	)
	return books, nil
}
