package bookshelf

import (
	"context"

	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/book/patch"
	healthuc "github.com/kailas-cloud/bookshelf/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bookshelf/internal/usecase/search"
)

// --- bookUseCase mock ---

type mockBookUC struct {
	addFn    func(ctx context.Context, b dombook.Book) (string, error)
	getFn    func(ctx context.Context, id string) (dombook.Book, error)
	deleteFn func(ctx context.Context, id string) (dombook.Result, error)
	updateFn func(ctx context.Context, id string, p patch.Patch) (dombook.Result, error)
}

func (m *mockBookUC) Add(ctx context.Context, b dombook.Book) (string, error) {
	return m.addFn(ctx, b)
}

func (m *mockBookUC) Get(ctx context.Context, id string) (dombook.Book, error) {
	return m.getFn(ctx, id)
}

func (m *mockBookUC) Delete(ctx context.Context, id string) (dombook.Result, error) {
	return m.deleteFn(ctx, id)
}

func (m *mockBookUC) Update(ctx context.Context, id string, p patch.Patch) (dombook.Result, error) {
	return m.updateFn(ctx, id, p)
}

// --- searchUseCase mock ---

type mockSearchUC struct {
	queryFn func(ctx context.Context, p searchuc.Params) ([]dombook.Book, error)
}

func (m *mockSearchUC) Query(ctx context.Context, p searchuc.Params) ([]dombook.Book, error) {
	return m.queryFn(ctx, p)
}

// --- indexManager mock ---

type mockIndex struct {
	ensureFn func(ctx context.Context) (bool, error)
	dropFn   func(ctx context.Context) error
}

func (m *mockIndex) EnsureIndex(ctx context.Context) (bool, error) { return m.ensureFn(ctx) }

func (m *mockIndex) DropIndex(ctx context.Context) error { return m.dropFn(ctx) }

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(books bookUseCase, search searchUseCase, index indexManager, obs *observer) *Client {
	return &Client{
		bookSvc:   books,
		searchSvc: search,
		index:     index,
		obs:       obs,
	}
}
