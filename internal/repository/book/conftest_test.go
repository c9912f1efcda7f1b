package book

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/bookshelf/internal/db"
	"github.com/kailas-cloud/bookshelf/internal/domain"
	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	jsonSetXXFn   func(ctx context.Context, key, path string, data []byte) error
	jsonSetNXFn   func(ctx context.Context, key, path string, data []byte) error
	jsonGetFn     func(ctx context.Context, key string, paths ...string) ([]byte, error)
	delFn         func(ctx context.Context, key string) (bool, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	dropIndexFn   func(ctx context.Context, name string) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) JSONSetXX(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetXXFn != nil {
		return m.jsonSetXXFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONSetNX(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSetNXFn != nil {
		return m.jsonSetNXFn(ctx, key, path, data)
	}
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGetFn != nil {
		return m.jsonGetFn(ctx, key, paths...)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Del(ctx context.Context, key string) (bool, error) {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string) error {
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, domain.DefaultKeyspace())
	return repo, ms
}

var testPublishDate = time.Date(1937, time.September, 21, 0, 0, 0, 0, time.UTC)

// storedHobbit is the JSON.GET "$" reply for testBook.
const storedHobbit = `[{"title":"The Hobbit","author":"Tolkien","word_count":95356,"publish_date":-1018656000000}]`

func testBook(t *testing.T) dombook.Book {
	t.Helper()
	return dombook.Reconstruct("b-1", "The Hobbit", "Tolkien", 95356, testPublishDate)
}

func assertBook(t *testing.T, got, want dombook.Book) {
	t.Helper()
	if got.ID() != want.ID() || got.Title() != want.Title() || got.Author() != want.Author() ||
		got.WordCount() != want.WordCount() || !got.PublishDate().Equal(want.PublishDate()) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
