package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Indexed book fields the composer knows about.
const (
	FieldAuthor    = "author"
	FieldTitle     = "title"
	FieldWordCount = "word_count"
)

// Result window. Only the first page is ever requested.
const (
	PageOffset = 0
	PageSize   = 10
)

// Match requires Field to text-match Value.
type Match struct {
	field string
	value string
}

// Field returns the matched field name.
func (m Match) Field() string { return m.field }

// Value returns the text the field must match.
func (m Match) Value() string { return m.value }

// Range is an inclusive numeric filter. A nil upper bound means +inf.
type Range struct {
	field string
	min   int
	max   *int
}

// Field returns the filtered field name.
func (r Range) Field() string { return r.field }

// Min returns the inclusive lower bound.
func (r Range) Min() int { return r.min }

// Max returns the inclusive upper bound, or nil when unbounded.
func (r Range) Max() *int { return r.max }

// Descriptor is a composed book query: every Must clause AND-ed together
// with a single non-scoring range filter.
type Descriptor struct {
	must   []Match
	filter Range
	offset int
	size   int
}

// Must returns the match clauses in the order they were added.
func (d Descriptor) Must() []Match { return d.must }

// Filter returns the range filter.
func (d Descriptor) Filter() Range { return d.filter }

// Offset returns the index of the first hit to return.
func (d Descriptor) Offset() int { return d.offset }

// Size returns the maximum number of hits to return.
func (d Descriptor) Size() int { return d.size }

// Compose builds a Descriptor from optional predicates.
// nil text predicates are skipped. The word count range always starts at
// minWordCount; maxWordCount only bounds it when it is non-nil and positive,
// so zero or negative values leave the range open-ended.
func Compose(author, title *string, minWordCount int, maxWordCount *int) Descriptor {
	var must []Match
	if author != nil {
		must = append(must, Match{field: FieldAuthor, value: *author})
	}
	if title != nil {
		must = append(must, Match{field: FieldTitle, value: *title})
	}

	r := Range{field: FieldWordCount, min: minWordCount}
	if maxWordCount != nil && *maxWordCount > 0 {
		upper := *maxWordCount
		r.max = &upper
	}

	return Descriptor{
		must:   must,
		filter: r,
		offset: PageOffset,
		size:   PageSize,
	}
}

// String returns a debug representation of the query.
func (d Descriptor) String() string {
	parts := make([]string, 0, len(d.must)+2)
	for _, m := range d.must {
		parts = append(parts, fmt.Sprintf("%s~%q", m.field, m.value))
	}
	upper := "+inf"
	if d.filter.max != nil {
		upper = strconv.Itoa(*d.filter.max)
	}
	parts = append(parts,
		fmt.Sprintf("%s:[%d %s]", d.filter.field, d.filter.min, upper),
		fmt.Sprintf("window:%d+%d", d.offset, d.size),
	)
	return strings.Join(parts, " ")
}
