package bookshelf

import "time"

// Book is a stored novel.
type Book struct {
	ID          string
	Title       string
	Author      string
	WordCount   int
	PublishDate time.Time
}

// BookPatch is a partial update. Nil fields are left unchanged.
type BookPatch struct {
	Title       *string
	Author      *string
	WordCount   *int
	PublishDate *time.Time
}

// Query selects books. Empty strings are not used as predicates and
// MaxWordCount only bounds the range when it is positive.
type Query struct {
	Author       string
	Title        string
	MinWordCount int
	MaxWordCount int
}

// Result is the outcome of a write: DELETED, NOT_FOUND, UPDATED or NOOP.
type Result string

// Write results.
const (
	ResultDeleted  Result = "DELETED"
	ResultNotFound Result = "NOT_FOUND"
	ResultUpdated  Result = "UPDATED"
	ResultNoop     Result = "NOOP"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // component → "ok"/"error"/"missing"
}
