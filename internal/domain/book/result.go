package book

// Result is the outcome of a write, named the way the search engine reports it.
type Result string

const (
	// Created means a new document was stored.
	Created Result = "CREATED"
	// Updated means an existing document changed.
	Updated Result = "UPDATED"
	// Deleted means the document was removed.
	Deleted Result = "DELETED"
	// NotFound means there was no document to act on.
	NotFound Result = "NOT_FOUND"
	// Noop means the write would not change the stored document.
	Noop Result = "NOOP"
)
