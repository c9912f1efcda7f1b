package book

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bookshelf/internal/domain"
	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/book/patch"
	"github.com/kailas-cloud/bookshelf/internal/logger"
	"github.com/kailas-cloud/bookshelf/internal/metrics"
)

// Service handles book CRUD.
type Service struct {
	repo  Repository
	newID func() string
}

// New creates a book service. IDs are random UUIDs.
func New(repo Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString}
}

// WithIDGenerator replaces the ID source.
func (s *Service) WithIDGenerator(fn func() string) *Service {
	if fn != nil {
		s.newID = fn
	}
	return s
}

// Add stores a new book under a generated ID and returns the ID.
func (s *Service) Add(ctx context.Context, b dombook.Book) (string, error) {
	stored := b.WithID(s.newID())
	if err := s.repo.Create(ctx, &stored); err != nil {
		recordWrite("add", "", err)
		return "", fmt.Errorf("create book: %w", err)
	}
	recordWrite("add", dombook.Created, nil)

	logger.FromContext(ctx).Debug("book added",
		zap.String("id", stored.ID()),
		zap.String("title", stored.Title()),
	)
	return stored.ID(), nil
}

// Get retrieves a book by ID. An empty ID is treated as missing.
func (s *Service) Get(ctx context.Context, id string) (dombook.Book, error) {
	if id == "" {
		return dombook.Book{}, domain.ErrBookNotFound
	}
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return dombook.Book{}, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

// Delete removes a book and reports whether it existed.
func (s *Service) Delete(ctx context.Context, id string) (dombook.Result, error) {
	if id == "" {
		return dombook.NotFound, nil
	}
	res, err := s.repo.Delete(ctx, id)
	recordWrite("delete", res, err)
	if err != nil {
		return "", fmt.Errorf("delete book: %w", err)
	}
	return res, nil
}

// Update applies a partial update to an existing book.
// A missing book is an error even when the patch is empty.
func (s *Service) Update(ctx context.Context, id string, p patch.Patch) (dombook.Result, error) {
	if id == "" {
		return "", fmt.Errorf("id is required: %w", domain.ErrInvalidBook)
	}
	if p.IsEmpty() {
		if _, err := s.repo.Get(ctx, id); err != nil {
			return "", fmt.Errorf("get book: %w", err)
		}
		recordWrite("update", dombook.Noop, nil)
		return dombook.Noop, nil
	}

	res, err := s.repo.Patch(ctx, id, p)
	recordWrite("update", res, err)
	if err != nil {
		return "", fmt.Errorf("patch book: %w", err)
	}
	return res, nil
}

func recordWrite(op string, res dombook.Result, err error) {
	label := string(res)
	if err != nil {
		label = "error"
	}
	metrics.BookWritesTotal.WithLabelValues(op, label).Inc()
}
