package book

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/bookshelf/internal/domain"
	dombook "github.com/kailas-cloud/bookshelf/internal/domain/book"
)

// document is the stored JSON shape of a book. publish_date is epoch millis.
type document struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	WordCount   int    `json:"word_count"`
	PublishDate int64  `json:"publish_date"`
}

func toDocument(b *dombook.Book) document {
	return document{
		Title:       b.Title(),
		Author:      b.Author(),
		WordCount:   b.WordCount(),
		PublishDate: b.PublishDate().UnixMilli(),
	}
}

func (d document) toBook(id string) dombook.Book {
	return dombook.Reconstruct(id, d.Title, d.Author, d.WordCount, time.UnixMilli(d.PublishDate).UTC())
}

// Decode parses a stored book document. raw is either a bare JSON object
// or the single-element array returned for the "$" path.
func Decode(id string, raw []byte) (dombook.Book, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		return dombook.Book{}, err
	}
	return doc.toBook(id), nil
}

func decodeDocument(raw []byte) (document, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		var docs []document
		if err := json.Unmarshal(raw, &docs); err != nil {
			return document{}, fmt.Errorf("unmarshal book: %w", err)
		}
		if len(docs) == 0 {
			return document{}, domain.ErrBookNotFound
		}
		return docs[0], nil
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return document{}, fmt.Errorf("unmarshal book: %w", err)
	}
	return doc, nil
}
