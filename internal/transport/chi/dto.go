package chi

import (
	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeBookNotFound     ErrorCode = "book_not_found"
	ErrorCodeAlreadyExists    ErrorCode = "book_already_exists"
	ErrorCodeIndexNotReady    ErrorCode = "index_not_ready"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the error envelope.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// BookResponse is a stored book. PublishDate is epoch milliseconds.
type BookResponse struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	WordCount   int    `json:"word_count"`
	PublishDate int64  `json:"publish_date"`
}

// IDResponse returns the ID of a created book.
type IDResponse struct {
	ID string `json:"id"`
}

// ResultResponse carries a write result (DELETED, NOT_FOUND, UPDATED, NOOP).
type ResultResponse struct {
	Result dombook.Result `json:"result"`
}

// HealthResponse is the /health body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func bookToResponse(b *dombook.Book) BookResponse {
	return BookResponse{
		ID:          b.ID(),
		Title:       b.Title(),
		Author:      b.Author(),
		WordCount:   b.WordCount(),
		PublishDate: b.PublishDate().UnixMilli(),
	}
}

func booksToResponse(books []dombook.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i := range books {
		out[i] = bookToResponse(&books[i])
	}
	return out
}
