package bookshelf

import (
	"context"
	"fmt"
	"time"

	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/book/patch"
	searchuc "github.com/kailas-cloud/bookshelf/internal/usecase/search"
)

// Add stores a new book and returns its generated ID. b.ID is ignored.
func (c *Client) Add(ctx context.Context, b Book) (id string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("add", start, err) }()

	d, err := dombook.New(b.Title, b.Author, b.WordCount, b.PublishDate)
	if err != nil {
		return "", fmt.Errorf("add: %w", err)
	}
	id, err = c.bookSvc.Add(ctx, d)
	if err != nil {
		return "", fmt.Errorf("add: %w", err)
	}
	return id, nil
}

// Get retrieves a book by ID.
func (c *Client) Get(ctx context.Context, id string) (b Book, err error) {
	start := time.Now()
	defer func() { c.obs.observe("get", start, err) }()

	d, err := c.bookSvc.Get(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	return fromInternalBook(&d), nil
}

// Delete removes a book. A missing book yields ResultNotFound, not an error.
func (c *Client) Delete(ctx context.Context, id string) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("delete", start, err) }()

	r, err := c.bookSvc.Delete(ctx, id)
	if err != nil {
		return "", fmt.Errorf("delete book: %w", err)
	}
	return Result(r), nil
}

// Update applies a partial update. Returns ResultNoop when nothing changes
// and ErrBookNotFound when the book does not exist.
func (c *Client) Update(ctx context.Context, id string, p BookPatch) (res Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("update", start, err) }()

	pp, err := patch.New(p.Title, p.Author, p.WordCount, p.PublishDate)
	if err != nil {
		return "", fmt.Errorf("update: %w", err)
	}
	r, err := c.bookSvc.Update(ctx, id, pp)
	if err != nil {
		return "", fmt.Errorf("update: %w", err)
	}
	return Result(r), nil
}

// Query returns at most ten books matching q.
func (c *Client) Query(ctx context.Context, q Query) (books []Book, err error) {
	start := time.Now()
	defer func() { c.obs.observe("query", start, err) }()

	found, err := c.searchSvc.Query(ctx, toSearchParams(q))
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	books = make([]Book, len(found))
	for i := range found {
		books[i] = fromInternalBook(&found[i])
	}
	return books, nil
}

func toSearchParams(q Query) searchuc.Params {
	p := searchuc.Params{MinWordCount: q.MinWordCount}
	if q.Author != "" {
		author := q.Author
		p.Author = &author
	}
	if q.Title != "" {
		title := q.Title
		p.Title = &title
	}
	if q.MaxWordCount != 0 {
		upper := q.MaxWordCount
		p.MaxWordCount = &upper
	}
	return p
}

func fromInternalBook(b *dombook.Book) Book {
	return Book{
		ID:          b.ID(),
		Title:       b.Title(),
		Author:      b.Author(),
		WordCount:   b.WordCount(),
		PublishDate: b.PublishDate(),
	}
}
