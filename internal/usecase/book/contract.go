package book

import (
	"context"

	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/book/patch"
)

// Repository defines the storage contract for books.
type Repository interface {
	Create(ctx context.Context, b *dombook.Book) error
	Get(ctx context.Context, id string) (dombook.Book, error)
	Delete(ctx context.Context, id string) (dombook.Result, error)
	Patch(ctx context.Context, id string, p patch.Patch) (dombook.Result, error)
}
