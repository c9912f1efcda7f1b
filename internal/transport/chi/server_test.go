package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bookshelf/internal/domain"
	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/book/patch"
	"github.com/kailas-cloud/bookshelf/internal/domain/search/query"
	bookuc "github.com/kailas-cloud/bookshelf/internal/usecase/book"
	healthuc "github.com/kailas-cloud/bookshelf/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bookshelf/internal/usecase/search"
)

// --- Fakes ---

type fakeBookRepo struct {
	books     map[string]dombook.Book
	createErr error
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[string]dombook.Book)}
}

func (f *fakeBookRepo) Create(_ context.Context, b *dombook.Book) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.books[b.ID()]; ok {
		return domain.ErrAlreadyExists
	}
	f.books[b.ID()] = *b
	return nil
}

func (f *fakeBookRepo) Get(_ context.Context, id string) (dombook.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return dombook.Book{}, domain.ErrBookNotFound
	}
	return b, nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id string) (dombook.Result, error) {
	if _, ok := f.books[id]; !ok {
		return dombook.NotFound, nil
	}
	delete(f.books, id)
	return dombook.Deleted, nil
}

func (f *fakeBookRepo) Patch(_ context.Context, id string, p patch.Patch) (dombook.Result, error) {
	b, ok := f.books[id]
	if !ok {
		return "", domain.ErrBookNotFound
	}
	title, author, words, date := b.Title(), b.Author(), b.WordCount(), b.PublishDate()
	if p.Title() != nil {
		title = *p.Title()
	}
	if p.Author() != nil {
		author = *p.Author()
	}
	if p.WordCount() != nil {
		words = *p.WordCount()
	}
	if p.PublishDate() != nil {
		date = *p.PublishDate()
	}
	f.books[id] = dombook.Reconstruct(id, title, author, words, date)
	return dombook.Updated, nil
}

type fakeSearchRepo struct {
	books []dombook.Book
	err   error
	last  query.Descriptor
}

func (f *fakeSearchRepo) Search(_ context.Context, d query.Descriptor) ([]dombook.Book, int, error) {
	f.last = d
	return f.books, len(f.books), f.err
}

type fakePinger struct{ err error }

func (f *fakePinger) Ping(_ context.Context) error { return f.err }

type testEnv struct {
	router http.Handler
	books  *fakeBookRepo
	search *fakeSearchRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	books := newFakeBookRepo()
	search := &fakeSearchRepo{}

	bookSvc := bookuc.New(books).WithIDGenerator(func() string { return "new-id" })
	s := NewServer(bookSvc, searchuc.New(search), healthuc.New(&fakePinger{}, nil), zap.NewNop())

	r := chi.NewRouter()
	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)
	s.Routes(r)

	return &testEnv{router: r, books: books, search: search}
}

func (e *testEnv) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, http.NoBody)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) seed(id, title, author string, words int) {
	e.books.books[id] = dombook.Reconstruct(id, title, author, words,
		time.Date(2001, time.March, 4, 5, 6, 7, 0, time.UTC))
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rr.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return v
}

// --- Index ---

func TestIndex(t *testing.T) {
	e := newTestEnv(t)
	rr := e.do("GET", "/", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Body.String() != "index" {
		t.Errorf("unexpected body %q", rr.Body.String())
	}
}

// --- Get ---

func TestGetBook_Found(t *testing.T) {
	e := newTestEnv(t)
	e.seed("b-1", "Dune", "Herbert", 188000)

	rr := e.do("GET", "/book/novel/b-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	got := decodeBody[BookResponse](t, rr)
	want := BookResponse{
		ID:          "b-1",
		Title:       "Dune",
		Author:      "Herbert",
		WordCount:   188000,
		PublishDate: time.Date(2001, time.March, 4, 5, 6, 7, 0, time.UTC).UnixMilli(),
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestGetBook_Missing(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do("GET", "/book/novel/nope", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if body := decodeBody[ErrorResponse](t, rr); body.Code != ErrorCodeBookNotFound {
		t.Errorf("unexpected code %q", body.Code)
	}
}

func TestGetBook_EmptyID(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do("GET", "/book/novel/", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

// --- Add ---

func TestAddBook_Success(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do("POST", "/book/novel/add", url.Values{
		"title":        {"Dune"},
		"author":       {"Herbert"},
		"word_count":   {"188000"},
		"publish_date": {"1965-08-01 00:00:00"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if body := decodeBody[IDResponse](t, rr); body.ID != "new-id" {
		t.Errorf("unexpected id %q", body.ID)
	}

	stored, ok := e.books.books["new-id"]
	if !ok {
		t.Fatal("book was not stored")
	}
	if !stored.PublishDate().Equal(time.Date(1965, time.August, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected publish date %v", stored.PublishDate())
	}
}

func TestAddBook_QueryString(t *testing.T) {
	e := newTestEnv(t)

	target := "/book/novel/add?" + url.Values{
		"title":        {"Dune"},
		"author":       {"Herbert"},
		"word_count":   {"188000"},
		"publish_date": {"1965-08-01 00:00:00"},
	}.Encode()
	rr := e.do("POST", target, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestAddBook_BadParams(t *testing.T) {
	valid := url.Values{
		"title":        {"Dune"},
		"author":       {"Herbert"},
		"word_count":   {"188000"},
		"publish_date": {"1965-08-01 00:00:00"},
	}
	tests := []struct {
		name   string
		mutate func(v url.Values)
		code   ErrorCode
	}{
		{"missing title", func(v url.Values) { v.Del("title") }, ErrorCodeBadRequest},
		{"empty author", func(v url.Values) { v.Set("author", "") }, ErrorCodeBadRequest},
		{"word count not a number", func(v url.Values) { v.Set("word_count", "many") }, ErrorCodeBadRequest},
		{"bad date", func(v url.Values) { v.Set("publish_date", "1965-08-01") }, ErrorCodeBadRequest},
		{"negative word count", func(v url.Values) { v.Set("word_count", "-1") }, ErrorCodeValidationFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEnv(t)
			form := url.Values{}
			for k, v := range valid {
				form[k] = append([]string(nil), v...)
			}
			tc.mutate(form)

			rr := e.do("POST", "/book/novel/add", form)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rr.Code, rr.Body.String())
			}
			if body := decodeBody[ErrorResponse](t, rr); body.Code != tc.code {
				t.Errorf("code: got %q, want %q", body.Code, tc.code)
			}
			if len(e.books.books) != 0 {
				t.Error("nothing should be stored")
			}
		})
	}
}

func TestAddBook_Conflict(t *testing.T) {
	e := newTestEnv(t)
	e.seed("new-id", "Old", "Author", 1)

	rr := e.do("POST", "/book/novel/add", url.Values{
		"title":        {"Dune"},
		"author":       {"Herbert"},
		"word_count":   {"188000"},
		"publish_date": {"1965-08-01 00:00:00"},
	})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}
}

func TestAddBook_InternalErrorIsOpaque(t *testing.T) {
	e := newTestEnv(t)
	e.books.createErr = errors.New("READONLY You can't write against a read only replica")

	rr := e.do("POST", "/book/novel/add", url.Values{
		"title":        {"Dune"},
		"author":       {"Herbert"},
		"word_count":   {"188000"},
		"publish_date": {"1965-08-01 00:00:00"},
	})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	body := decodeBody[ErrorResponse](t, rr)
	if body.Code != ErrorCodeInternalError || body.Message != "internal error" {
		t.Errorf("internal details leaked: %+v", body)
	}
}

// --- Delete ---

func TestDeleteBook(t *testing.T) {
	e := newTestEnv(t)
	e.seed("b-1", "Dune", "Herbert", 188000)

	rr := e.do("DELETE", "/book/novel/b-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := decodeBody[ResultResponse](t, rr); body.Result != dombook.Deleted {
		t.Errorf("got %q, want %q", body.Result, dombook.Deleted)
	}

	rr = e.do("DELETE", "/book/novel/b-1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for missing book, got %d", rr.Code)
	}
	if body := decodeBody[ResultResponse](t, rr); body.Result != dombook.NotFound {
		t.Errorf("got %q, want %q", body.Result, dombook.NotFound)
	}
}

// --- Update ---

func TestUpdateBook_Updated(t *testing.T) {
	e := newTestEnv(t)
	e.seed("b-1", "Dune", "Herbert", 188000)

	rr := e.do("PUT", "/book/novel/update", url.Values{
		"id":         {"b-1"},
		"word_count": {"200000"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if body := decodeBody[ResultResponse](t, rr); body.Result != dombook.Updated {
		t.Errorf("got %q, want %q", body.Result, dombook.Updated)
	}
	if got := e.books.books["b-1"]; got.WordCount() != 200000 || got.Title() != "Dune" {
		t.Errorf("unexpected stored book %+v", got)
	}
}

func TestUpdateBook_NoFieldsIsNoop(t *testing.T) {
	e := newTestEnv(t)
	e.seed("b-1", "Dune", "Herbert", 188000)

	rr := e.do("PUT", "/book/novel/update", url.Values{"id": {"b-1"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := decodeBody[ResultResponse](t, rr); body.Result != dombook.Noop {
		t.Errorf("got %q, want %q", body.Result, dombook.Noop)
	}
}

func TestUpdateBook_Missing(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do("PUT", "/book/novel/update", url.Values{"id": {"nope"}, "title": {"x"}})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestUpdateBook_MissingID(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do("PUT", "/book/novel/update", url.Values{"title": {"x"}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestUpdateBook_BadDate(t *testing.T) {
	e := newTestEnv(t)
	e.seed("b-1", "Dune", "Herbert", 188000)

	rr := e.do("PUT", "/book/novel/update", url.Values{"id": {"b-1"}, "publish_date": {"yesterday"}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

// --- Query ---

func TestQueryBooks_PassesPredicates(t *testing.T) {
	e := newTestEnv(t)
	e.search.books = []dombook.Book{
		dombook.Reconstruct("b-1", "Dune", "Herbert", 188000, time.Unix(0, 0).UTC()),
	}

	rr := e.do("POST", "/book/novel/query", url.Values{
		"author":        {"Herbert"},
		"gt_word_count": {"1000"},
		"lt_word_count": {"500000"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	got := decodeBody[[]BookResponse](t, rr)
	if len(got) != 1 || got[0].ID != "b-1" {
		t.Errorf("unexpected body %+v", got)
	}

	want := "author~\"Herbert\" word_count:[1000 500000] window:0+10"
	if e.search.last.String() != want {
		t.Errorf("descriptor: got %s, want %s", e.search.last, want)
	}
}

func TestQueryBooks_Defaults(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do("POST", "/book/novel/query", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("expected empty array, got %q", rr.Body.String())
	}
	if e.search.last.String() != "word_count:[0 +inf] window:0+10" {
		t.Errorf("unexpected descriptor %s", e.search.last)
	}
}

func TestQueryBooks_EmptyValuesAreAbsent(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do("POST", "/book/novel/query?author=&title=&gt_word_count=&lt_word_count=", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if e.search.last.String() != "word_count:[0 +inf] window:0+10" {
		t.Errorf("unexpected descriptor %s", e.search.last)
	}
}

func TestQueryBooks_ZeroUpperBoundIgnored(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do("POST", "/book/novel/query", url.Values{"gt_word_count": {"100"}, "lt_word_count": {"0"}})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if e.search.last.Filter().Max() != nil {
		t.Errorf("expected open range, got %s", e.search.last)
	}
}

func TestQueryBooks_BadNumber(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do("POST", "/book/novel/query", url.Values{"lt_word_count": {"ten"}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestQueryBooks_IndexNotReady(t *testing.T) {
	e := newTestEnv(t)
	e.search.err = domain.ErrIndexNotReady

	rr := e.do("POST", "/book/novel/query", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

// --- Health / routing ---

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"degraded", errors.New("conn refused"), http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewServer(nil, nil, healthuc.New(&fakePinger{err: tc.err}, nil), zap.NewNop())
			rr := httptest.NewRecorder()
			s.HealthCheck(rr, httptest.NewRequest("GET", "/health", http.NoBody))

			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			if body := decodeBody[HealthResponse](t, rr); body.Status != tc.want {
				t.Errorf("status: got %q, want %q", body.Status, tc.want)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do("GET", "/nowhere", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error, got %q", ct)
	}
}

func TestWrongMethod(t *testing.T) {
	e := newTestEnv(t)

	rr := e.do("PATCH", "/health", nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
	if body := decodeBody[ErrorResponse](t, rr); body.Code != ErrorCodeBadRequest {
		t.Errorf("unexpected code %q", body.Code)
	}
}
