package search

import (
	"context"

	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/search/query"
)

// Repository defines the storage contract for book queries.
type Repository interface {
	Search(ctx context.Context, d query.Descriptor) (books []dombook.Book, total int, err error)
}
