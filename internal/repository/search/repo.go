package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/bookshelf/internal/db"
	"github.com/kailas-cloud/bookshelf/internal/domain"
	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/search/query"
	bookrepo "github.com/kailas-cloud/bookshelf/internal/repository/book"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.Query) (*db.SearchResult, error)
}

// Repo implements usecase/search.Repository.
type Repo struct {
	store store
	ks    domain.Keyspace
}

// New creates a search repository over the given keyspace.
func New(s store, ks domain.Keyspace) *Repo {
	return &Repo{store: s, ks: ks}
}

// Search runs a composed query against the book index.
// Returns the hits on the requested page and the total number of matches.
func (r *Repo) Search(ctx context.Context, d query.Descriptor) ([]dombook.Book, int, error) {
	q := &db.Query{
		IndexName:    r.ks.IndexName(),
		Descriptor:   d,
		ReturnFields: []string{"$"},
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, 0, fmt.Errorf("search %s: %w", q.IndexName, domain.ErrIndexNotReady)
		}
		return nil, 0, fmt.Errorf("search %s: %w", q.IndexName, err)
	}

	return r.parseResults(sr)
}

// parseResults converts db.SearchResult into books. Keys outside the keyspace are kept verbatim as IDs.
func (r *Repo) parseResults(sr *db.SearchResult) ([]dombook.Book, int, error) {
	if sr == nil || sr.Total == 0 {
		return []dombook.Book{}, 0, nil
	}

	prefix := r.ks.DocPrefix()
	books := make([]dombook.Book, 0, len(sr.Entries))

	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, prefix)
		b, err := bookrepo.Decode(id, []byte(entry.Fields["$"]))
		if err != nil {
			return nil, 0, fmt.Errorf("decode hit %s: %w", entry.Key, err)
		}
		books = append(books, b)
	}

	return books, sr.Total, nil
}
