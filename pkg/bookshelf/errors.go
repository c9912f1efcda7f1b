package bookshelf

import "github.com/kailas-cloud/bookshelf/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrBookNotFound  = domain.ErrBookNotFound
	ErrAlreadyExists = domain.ErrAlreadyExists
	ErrInvalidBook   = domain.ErrInvalidBook
	ErrIndexNotReady = domain.ErrIndexNotReady
)
