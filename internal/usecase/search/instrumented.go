package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/search/query"
	"github.com/kailas-cloud/bookshelf/internal/metrics"
)

// InstrumentedRepository wraps Repository with metrics and error logging.
type InstrumentedRepository struct {
	inner  Repository
	logger *zap.Logger
}

// NewInstrumentedRepository wraps a repository with observability.
func NewInstrumentedRepository(inner Repository, logger *zap.Logger) *InstrumentedRepository {
	return &InstrumentedRepository{inner: inner, logger: logger}
}

// Search delegates to the inner repository and records duration, status, and hit count.
func (r *InstrumentedRepository) Search(
	ctx context.Context, d query.Descriptor,
) ([]dombook.Book, int, error) {
	start := time.Now()

	books, total, err := r.inner.Search(ctx, d)

	duration := time.Since(start)
	metrics.SearchRequestDuration.Observe(duration.Seconds())

	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		r.logger.Error("Book query failed",
			zap.Stringer("query", d),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, 0, err
	}

	metrics.SearchRequestsTotal.WithLabelValues("ok").Inc()
	metrics.SearchHits.Observe(float64(total))
	return books, total, nil
}
