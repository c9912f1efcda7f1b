package db

import "github.com/kailas-cloud/bookshelf/internal/domain/search/query"

// Query is the input for a filtered FT.SEARCH.
type Query struct {
	IndexName    string
	Descriptor   query.Descriptor
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
