package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/bookshelf/internal/db"
	"github.com/kailas-cloud/bookshelf/internal/domain"
	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/book/patch"
)

// store is the consumer interface for books (ISP).
type store interface {
	JSONSetNX(ctx context.Context, key, path string, data []byte) error
	JSONSetXX(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	Del(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Repo implements usecase/book.Repository.
type Repo struct {
	store store
	ks    domain.Keyspace
}

// New creates a book repository over the given keyspace.
func New(s store, ks domain.Keyspace) *Repo {
	return &Repo{store: s, ks: ks}
}

// Create stores a new book. The book must already carry its ID.
func (r *Repo) Create(ctx context.Context, b *dombook.Book) error {
	if b.ID() == "" {
		return fmt.Errorf("create book: empty id: %w", domain.ErrInvalidBook)
	}

	key := r.ks.DocKey(b.ID())
	data, err := json.Marshal(toDocument(b))
	if err != nil {
		return fmt.Errorf("marshal book: %w", err)
	}

	if err := r.store.JSONSetNX(ctx, key, "$", data); err != nil {
		if errors.Is(err, db.ErrKeyExists) {
			return fmt.Errorf("book %s: %w", b.ID(), domain.ErrAlreadyExists)
		}
		return fmt.Errorf("json.set %s: %w", key, err)
	}
	return nil
}

// Get returns a book by ID.
func (r *Repo) Get(ctx context.Context, id string) (dombook.Book, error) {
	doc, err := r.load(ctx, id)
	if err != nil {
		return dombook.Book{}, err
	}
	return doc.toBook(id), nil
}

// Delete removes a book. A missing book is reported as NotFound, not an error.
func (r *Repo) Delete(ctx context.Context, id string) (dombook.Result, error) {
	key := r.ks.DocKey(id)
	existed, err := r.store.Del(ctx, key)
	if err != nil {
		return "", fmt.Errorf("del %s: %w", key, err)
	}
	if !existed {
		return dombook.NotFound, nil
	}
	return dombook.Deleted, nil
}

// Patch performs a partial update: JSON.GET, merge fields, JSON.SET XX.
// Returns Noop when the merged document equals the stored one.
// A book deleted between the read and the write stays deleted.
func (r *Repo) Patch(ctx context.Context, id string, p patch.Patch) (dombook.Result, error) {
	current, err := r.load(ctx, id)
	if err != nil {
		return "", err
	}

	merged := applyPatch(current, p)
	if merged == current {
		return dombook.Noop, nil
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return "", fmt.Errorf("marshal patched book: %w", err)
	}

	key := r.ks.DocKey(id)
	if err := r.store.JSONSetXX(ctx, key, "$", data); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return "", domain.ErrBookNotFound
		}
		return "", fmt.Errorf("json.set %s: %w", key, err)
	}
	return dombook.Updated, nil
}

func (r *Repo) load(ctx context.Context, id string) (document, error) {
	key := r.ks.DocKey(id)
	raw, err := r.store.JSONGet(ctx, key, "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return document{}, domain.ErrBookNotFound
		}
		return document{}, fmt.Errorf("json.get %s: %w", key, err)
	}
	return decodeDocument(raw)
}

// applyPatch returns current with the non-nil patch fields replaced.
func applyPatch(current document, p patch.Patch) document {
	if p.Title() != nil {
		current.Title = *p.Title()
	}
	if p.Author() != nil {
		current.Author = *p.Author()
	}
	if p.WordCount() != nil {
		current.WordCount = *p.WordCount()
	}
	if p.PublishDate() != nil {
		current.PublishDate = p.PublishDate().UnixMilli()
	}
	return current
}
