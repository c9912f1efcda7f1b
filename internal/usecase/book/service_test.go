package book

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/bookshelf/internal/domain"
	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/book/patch"
)

// --- Mocks ---

type mockBookRepo struct {
	createErr    error
	created      *dombook.Book
	getResult    dombook.Book
	getErr       error
	getCalled    bool
	deleteResult dombook.Result
	deleteErr    error
	patchResult  dombook.Result
	patchErr     error
	patchCalled  bool
}

func (m *mockBookRepo) Create(_ context.Context, b *dombook.Book) error {
	m.created = b
	return m.createErr
}
func (m *mockBookRepo) Get(_ context.Context, _ string) (dombook.Book, error) {
	m.getCalled = true
	return m.getResult, m.getErr
}
func (m *mockBookRepo) Delete(_ context.Context, _ string) (dombook.Result, error) {
	return m.deleteResult, m.deleteErr
}
func (m *mockBookRepo) Patch(_ context.Context, _ string, _ patch.Patch) (dombook.Result, error) {
	m.patchCalled = true
	return m.patchResult, m.patchErr
}

func makeBook(t *testing.T) dombook.Book {
	t.Helper()
	b, err := dombook.New("Dune", "Herbert", 188000, time.Date(1965, time.August, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("book.New: %v", err)
	}
	return b
}

// --- Add ---

func TestAdd_AssignsID(t *testing.T) {
	repo := &mockBookRepo{}
	svc := New(repo).WithIDGenerator(func() string { return "fixed-id" })

	id, err := svc.Add(context.Background(), makeBook(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("expected fixed-id, got %q", id)
	}
	if repo.created == nil || repo.created.ID() != "fixed-id" {
		t.Fatalf("repo received %+v", repo.created)
	}
	if repo.created.Title() != "Dune" {
		t.Errorf("title lost: %q", repo.created.Title())
	}
}

func TestAdd_DefaultIDIsUUID(t *testing.T) {
	repo := &mockBookRepo{}
	svc := New(repo)

	id, err := svc.Add(context.Background(), makeBook(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected uuid, got %q", id)
	}
}

func TestAdd_RepoError(t *testing.T) {
	svc := New(&mockBookRepo{createErr: domain.ErrAlreadyExists})

	_, err := svc.Add(context.Background(), makeBook(t))
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

// --- Get ---

func TestGet_Success(t *testing.T) {
	b := makeBook(t)
	want := b.WithID("b-1")
	svc := New(&mockBookRepo{getResult: want})

	got, err := svc.Get(context.Background(), "b-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID() != "b-1" || got.Author() != "Herbert" {
		t.Errorf("unexpected book %+v", got)
	}
}

func TestGet_EmptyID(t *testing.T) {
	repo := &mockBookRepo{}
	svc := New(repo)

	_, err := svc.Get(context.Background(), "")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
	if repo.getCalled {
		t.Error("repo should not be called for empty id")
	}
}

func TestGet_NotFound(t *testing.T) {
	svc := New(&mockBookRepo{getErr: domain.ErrBookNotFound})

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

// --- Delete ---

func TestDelete_PassesResultThrough(t *testing.T) {
	for _, want := range []dombook.Result{dombook.Deleted, dombook.NotFound} {
		svc := New(&mockBookRepo{deleteResult: want})
		got, err := svc.Delete(context.Background(), "b-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	}
}

func TestDelete_EmptyID(t *testing.T) {
	svc := New(&mockBookRepo{deleteErr: errors.New("must not be called")})

	got, err := svc.Delete(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != dombook.NotFound {
		t.Errorf("got %s, want %s", got, dombook.NotFound)
	}
}

func TestDelete_RepoError(t *testing.T) {
	svc := New(&mockBookRepo{deleteErr: errors.New("conn reset")})

	if _, err := svc.Delete(context.Background(), "b-1"); err == nil {
		t.Fatal("expected error")
	}
}

// --- Update ---

func TestUpdate_Success(t *testing.T) {
	repo := &mockBookRepo{patchResult: dombook.Updated}
	svc := New(repo)

	title := "Dune Messiah"
	p, _ := patch.New(&title, nil, nil, nil)
	got, err := svc.Update(context.Background(), "b-1", p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != dombook.Updated {
		t.Errorf("got %s, want %s", got, dombook.Updated)
	}
}

func TestUpdate_EmptyPatchIsNoop(t *testing.T) {
	repo := &mockBookRepo{getResult: makeBook(t)}
	svc := New(repo)

	got, err := svc.Update(context.Background(), "b-1", patch.Patch{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != dombook.Noop {
		t.Errorf("got %s, want %s", got, dombook.Noop)
	}
	if repo.patchCalled {
		t.Error("empty patch must not be written")
	}
}

func TestUpdate_EmptyPatchMissingBook(t *testing.T) {
	svc := New(&mockBookRepo{getErr: domain.ErrBookNotFound})

	_, err := svc.Update(context.Background(), "missing", patch.Patch{})
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := New(&mockBookRepo{patchErr: domain.ErrBookNotFound})

	words := 1
	p, _ := patch.New(nil, nil, &words, nil)
	_, err := svc.Update(context.Background(), "missing", p)
	if !errors.Is(err, domain.ErrBookNotFound) {
		t.Errorf("expected ErrBookNotFound, got %v", err)
	}
}

func TestUpdate_EmptyID(t *testing.T) {
	svc := New(&mockBookRepo{})

	_, err := svc.Update(context.Background(), "", patch.Patch{})
	if !errors.Is(err, domain.ErrInvalidBook) {
		t.Errorf("expected ErrInvalidBook, got %v", err)
	}
}
