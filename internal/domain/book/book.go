package book

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/bookshelf/internal/domain"
)

// Field length limits.
const (
	MaxTitleLength  = 1024
	MaxAuthorLength = 512
)

// Book is the book aggregate (immutable value object).
type Book struct {
	id          string
	title       string
	author      string
	wordCount   int
	publishDate time.Time
}

// New validates and creates a Book without an ID. The ID is assigned on insert.
func New(title, author string, wordCount int, publishDate time.Time) (Book, error) {
	if title == "" {
		return Book{}, fmt.Errorf("%w: title is required", domain.ErrInvalidBook)
	}
	if len(title) > MaxTitleLength {
		return Book{}, fmt.Errorf("%w: title too long (max %d)", domain.ErrInvalidBook, MaxTitleLength)
	}
	if author == "" {
		return Book{}, fmt.Errorf("%w: author is required", domain.ErrInvalidBook)
	}
	if len(author) > MaxAuthorLength {
		return Book{}, fmt.Errorf("%w: author too long (max %d)", domain.ErrInvalidBook, MaxAuthorLength)
	}
	if wordCount < 0 {
		return Book{}, fmt.Errorf("%w: word count must not be negative", domain.ErrInvalidBook)
	}
	if publishDate.IsZero() {
		return Book{}, fmt.Errorf("%w: publish date is required", domain.ErrInvalidBook)
	}

	return Book{
		title:       title,
		author:      author,
		wordCount:   wordCount,
		publishDate: publishDate,
	}, nil
}

// Reconstruct creates a Book without validation (storage hydration).
func Reconstruct(id, title, author string, wordCount int, publishDate time.Time) Book {
	return Book{id: id, title: title, author: author, wordCount: wordCount, publishDate: publishDate}
}

// ID returns the book identifier.
func (b *Book) ID() string { return b.id }

// Title returns the book title.
func (b *Book) Title() string { return b.title }

// Author returns the book author.
func (b *Book) Author() string { return b.author }

// WordCount returns the number of words in the book.
func (b *Book) WordCount() int { return b.wordCount }

// PublishDate returns the publication timestamp.
func (b *Book) PublishDate() time.Time { return b.publishDate }

// WithID returns a copy with the given ID set.
func (b *Book) WithID(id string) Book {
	c := *b
	c.id = id
	return c
}
