package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/bookshelf/internal/db"
	"github.com/kailas-cloud/bookshelf/internal/domain/search/query"
)

// Search runs a composed query via FT.SEARCH and returns one page of hits.
func (s *Store) Search(ctx context.Context, q *db.Query) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}

	d := q.Descriptor
	rendered, ok := buildQuery(d)
	if !ok {
		// A match clause with no terms can never match, like an analyzed match on blank text.
		return &db.SearchResult{}, nil
	}
	args := []string{q.IndexName, rendered}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	args = append(args,
		"LIMIT", strconv.Itoa(d.Offset()), strconv.Itoa(d.Size()),
		"DIALECT", "2",
	)

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isRedisErr(err, "unknown index name") || isRedisErr(err, "no such index") {
			return nil, db.ErrIndexNotFound
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseSearchResult(raw)
}

// --- Result parsing ---

func parseSearchResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

// --- Query building ---

// buildQuery renders a descriptor as an FT.SEARCH query string.
// Clauses separated by spaces are intersected. ok is false when a match
// clause has no searchable terms, so the query matches nothing.
func buildQuery(d query.Descriptor) (string, bool) {
	parts := make([]string, 0, len(d.Must())+1)
	for _, m := range d.Must() {
		clause := buildMatch(m.Field(), m.Value())
		if clause == "" {
			return "", false
		}
		parts = append(parts, clause)
	}
	parts = append(parts, buildRange(d.Filter()))
	return strings.Join(parts, " "), true
}

// buildMatch renders a text match: any term of value may match the field.
// Returns "" when value holds no terms.
func buildMatch(field, value string) string {
	terms := tokenize(value)
	if len(terms) == 0 {
		return ""
	}
	for i, t := range terms {
		terms[i] = escapeQuery(t)
	}
	return fmt.Sprintf("@%s:(%s)", field, strings.Join(terms, "|"))
}

// textSeparators is the default RediSearch tokenizer separator set.
const textSeparators = ",.<>{}[]\"':;!@#$%^&*()-+=~"

// tokenize splits value the way the indexer splits TEXT fields.
func tokenize(value string) []string {
	return strings.FieldsFunc(value, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(textSeparators, r)
	})
}

func buildRange(r query.Range) string {
	upper := "+inf"
	if r.Max() != nil {
		upper = strconv.Itoa(*r.Max())
	}
	return fmt.Sprintf("@%s:[%d %s]", r.Field(), r.Min(), upper)
}

func escapeQuery(s string) string {
	return queryEscaper.Replace(s)
}

var queryEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	`@`, `\@`,
	`{`, `\{`,
	`}`, `\}`,
	`(`, `\(`,
	`)`, `\)`,
	`|`, `\|`,
	`-`, `\-`,
	`~`, `\~`,
	`*`, `\*`,
	`[`, `\[`,
	`]`, `\]`,
	`!`, `\!`,
	`%`, `\%`,
	`^`, `\^`,
	`$`, `\$`,
	`<`, `\<`,
	`>`, `\>`,
	`=`, `\=`,
	`;`, `\;`,
	`+`, `\+`,
	`:`, `\:`,
)
