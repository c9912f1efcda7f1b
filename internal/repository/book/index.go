package book

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/bookshelf/internal/db"
	"github.com/kailas-cloud/bookshelf/internal/domain"
)

// buildIndex returns the FT index over every book document in the keyspace.
func buildIndex(ks domain.Keyspace) (*db.IndexDefinition, error) {
	return db.NewIndex(ks.IndexName()).
		OnJSON().
		Prefix(ks.DocPrefix()).
		TextAs("$.title", "title").
		TextAs("$.author", "author").
		NumericAs("$.word_count", "word_count").Sortable().
		NumericAs("$.publish_date", "publish_date").Sortable().
		Build()
}

// EnsureIndex creates the search index if it is missing.
// Returns true when the index was created by this call.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	def, err := buildIndex(r.ks)
	if err != nil {
		return false, fmt.Errorf("build index: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", def.Name, err)
	}
	return true, nil
}

// DropIndex removes the search index. Stored books are kept.
func (r *Repo) DropIndex(ctx context.Context) error {
	name := r.ks.IndexName()
	if err := r.store.DropIndex(ctx, name); err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return fmt.Errorf("drop index %s: %w", name, domain.ErrIndexNotReady)
		}
		return fmt.Errorf("drop index %s: %w", name, err)
	}
	return nil
}

// IndexReady reports whether the search index exists.
func (r *Repo) IndexReady(ctx context.Context) (bool, error) {
	ok, err := r.store.IndexExists(ctx, r.ks.IndexName())
	if err != nil {
		return false, fmt.Errorf("index info %s: %w", r.ks.IndexName(), err)
	}
	return ok, nil
}
