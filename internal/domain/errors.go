package domain

import "errors"

var (
	// ErrBookNotFound signals a missing book.
	ErrBookNotFound = errors.New("book not found")
	// ErrInvalidBook signals a book or patch that failed validation.
	ErrInvalidBook = errors.New("invalid book")
	// ErrAlreadyExists signals a duplicate book ID.
	ErrAlreadyExists = errors.New("already exists")
	// ErrIndexNotReady signals that the search index has not been created.
	ErrIndexNotReady = errors.New("search index not ready")
)
