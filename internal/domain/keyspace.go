package domain

// Keyspace names the storage keys and the search index for one document type.
// Books live at <Prefix><Index>:<Type>:<id>, the index is <Prefix><Index>:idx.
type Keyspace struct {
	Prefix string
	Index  string
	Type   string
}

// DefaultKeyspace is the layout used when no configuration overrides it.
func DefaultKeyspace() Keyspace {
	return Keyspace{Prefix: "bookshelf:", Index: "book", Type: "novel"}
}

// DocPrefix returns the key prefix shared by every document of the type.
func (k Keyspace) DocPrefix() string {
	return k.Prefix + k.Index + ":" + k.Type + ":"
}

// DocKey returns the storage key of a document.
func (k Keyspace) DocKey(id string) string {
	return k.DocPrefix() + id
}

// IndexName returns the name of the search index.
func (k Keyspace) IndexName() string {
	return k.Prefix + k.Index + ":idx"
}
