package patch

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/bookshelf/internal/domain"
)

// Patch is a partial book update. Nil fields are unchanged.
// An empty patch is allowed and results in a no-op.
type Patch struct {
	title       *string
	author      *string
	wordCount   *int
	publishDate *time.Time
}

// New validates and creates a Patch.
func New(title, author *string, wordCount *int, publishDate *time.Time) (Patch, error) {
	if title != nil && *title == "" {
		return Patch{}, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidBook)
	}
	if author != nil && *author == "" {
		return Patch{}, fmt.Errorf("%w: author must not be empty", domain.ErrInvalidBook)
	}
	if wordCount != nil && *wordCount < 0 {
		return Patch{}, fmt.Errorf("%w: word count must not be negative", domain.ErrInvalidBook)
	}
	if publishDate != nil && publishDate.IsZero() {
		return Patch{}, fmt.Errorf("%w: publish date must not be zero", domain.ErrInvalidBook)
	}
	return Patch{title: title, author: author, wordCount: wordCount, publishDate: publishDate}, nil
}

// Title returns the new title, or nil if unchanged.
func (p Patch) Title() *string { return p.title }

// Author returns the new author, or nil if unchanged.
func (p Patch) Author() *string { return p.author }

// WordCount returns the new word count, or nil if unchanged.
func (p Patch) WordCount() *int { return p.wordCount }

// PublishDate returns the new publish date, or nil if unchanged.
func (p Patch) PublishDate() *time.Time { return p.publishDate }

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.title == nil && p.author == nil && p.wordCount == nil && p.publishDate == nil
}
