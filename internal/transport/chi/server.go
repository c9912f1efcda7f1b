package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bookshelf/internal/domain"
	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
	"github.com/kailas-cloud/bookshelf/internal/domain/book/patch"
	bookuc "github.com/kailas-cloud/bookshelf/internal/usecase/book"
	healthuc "github.com/kailas-cloud/bookshelf/internal/usecase/health"
	searchuc "github.com/kailas-cloud/bookshelf/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the book API over chi.
type Server struct {
	books         *bookuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	books *bookuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		books:  books,
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrBookNotFound, http.StatusNotFound, ErrorCodeBookNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, ErrorCodeAlreadyExists),
		sentinelHandler(domain.ErrInvalidBook, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrIndexNotReady, http.StatusServiceUnavailable, ErrorCodeIndexNotReady),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/", s.Index)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/book/novel", func(r chi.Router) {
		r.Post("/add", s.AddBook)
		r.Put("/update", s.UpdateBook)
		r.Post("/query", s.QueryBooks)
		r.Get("/{id}", s.GetBook)
		r.Delete("/{id}", s.DeleteBook)
	})
}

// Index handles GET /.
func (s *Server) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("index"))
}

// GetBook handles GET /book/novel/{id}.
func (s *Server) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := bindPathID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, ErrorCodeBookNotFound, domain.ErrBookNotFound.Error())
		return
	}

	b, err := s.books.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, bookToResponse(&b))
}

// AddBook handles POST /book/novel/add.
func (s *Server) AddBook(w http.ResponseWriter, r *http.Request) {
	vals, err := requestValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid request")
		return
	}
	p, err := bindAddParams(vals)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	b, err := dombook.New(p.Title, p.Author, p.WordCount, p.PublishDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	id, err := s.books.Add(r.Context(), b)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, IDResponse{ID: id})
}

// DeleteBook handles DELETE /book/novel/{id}.
// A missing book is reported as NOT_FOUND with status 200.
func (s *Server) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := bindPathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	res, err := s.books.Delete(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ResultResponse{Result: res})
}

// UpdateBook handles PUT /book/novel/update.
func (s *Server) UpdateBook(w http.ResponseWriter, r *http.Request) {
	vals, err := requestValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid request")
		return
	}
	p, err := bindUpdateParams(vals)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	pt, err := patch.New(p.Title, p.Author, p.WordCount, p.PublishDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	res, err := s.books.Update(r.Context(), p.ID, pt)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ResultResponse{Result: res})
}

// QueryBooks handles POST /book/novel/query.
func (s *Server) QueryBooks(w http.ResponseWriter, r *http.Request) {
	vals, err := requestValues(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "invalid request")
		return
	}
	p, err := bindQueryParams(vals)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}

	books, err := s.search.Query(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booksToResponse(books))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// NotFound writes the JSON 404 for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, ErrorCodeBadRequest, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
}

// MethodNotAllowed writes the JSON 405 for known paths with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, fmt.Sprintf("method %s not allowed", r.Method))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrBookNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidBook,
		domain.ErrIndexNotReady,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
