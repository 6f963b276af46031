// Package view derives the rows a table should display from a full record
// set: search, then field filters, then sort, then page slice.
//
// Derive is a pure function of its inputs. State layers the page-reset rule
// of an interactive table on top of it.
package view

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// SortDirection is the ordering applied to a sort key.
// The empty direction leaves records in filtered order.
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection accepts "asc", "desc" or "" in any case.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc, true
	case SortDesc:
		return SortDesc, true
	case SortNone:
		return SortNone, true
	}
	return SortNone, false
}

// Sort names the key to order by and its direction.
type Sort struct {
	Key       string        `json:"key"`
	Direction SortDirection `json:"direction"`
}

// Query is everything the user controls on a table.
type Query struct {
	Search   string
	Filters  map[string]string
	Sort     Sort
	Page     int
	PageSize int
}

// Result is the page to render plus pagination metadata.
type Result[T any] struct {
	Rows       []T
	Total      int
	TotalPages int
	Page       int
	PageSize   int
}

// Field describes one column of T.
type Field[T any] struct {
	Key        string
	Text       func(T) string
	Compare    func(a, b T) int
	Searchable bool
	Filterable bool
}

// TextField builds a field compared lexically on its text.
func TextField[T any](key string, text func(T) string, searchable, filterable bool) Field[T] {
	return Field[T]{Key: key, Text: text, Searchable: searchable, Filterable: filterable}
}

// NumberField builds a field compared numerically.
func NumberField[T any](key string, num func(T) float64, text func(T) string) Field[T] {
	return Field[T]{
		Key:     key,
		Text:    text,
		Compare: func(a, b T) int { return cmp.Compare(num(a), num(b)) },
	}
}

// TimeField builds a timestamp field compared as instants rather than strings.
func TimeField[T any](key string, at func(T) time.Time) Field[T] {
	return Field[T]{
		Key:     key,
		Text:    func(r T) string { return at(r).UTC().Format(time.RFC3339Nano) },
		Compare: func(a, b T) int { return at(a).Compare(at(b)) },
	}
}

// Schema is the set of fields a record type exposes to the derivation.
type Schema[T any] struct {
	Fields []Field[T]
}

// Field returns the field named key.
func (s Schema[T]) Field(key string) (Field[T], bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field[T]{}, false
}

// Sortable reports whether key can be used as a sort key.
func (s Schema[T]) Sortable(key string) bool {
	_, ok := s.Field(key)
	return ok
}

// Filterable reports whether key can be used as an equality filter.
func (s Schema[T]) Filterable(key string) bool {
	f, ok := s.Field(key)
	return ok && f.Filterable
}

// Derive applies search, filters, sort and pagination to records.
// records is never modified.
func Derive[T any](records []T, s Schema[T], q Query) Result[T] {
	filtered := Filter(records, s, q.Search, q.Filters)
	SortRecords(filtered, s, q.Sort)
	rows := Paginate(filtered, q.Page, q.PageSize)

	return Result[T]{
		Rows:       rows,
		Total:      len(filtered),
		TotalPages: TotalPages(len(filtered), q.PageSize),
		Page:       q.Page,
		PageSize:   q.PageSize,
	}
}

// Filter returns a new slice with the records matching search and every
// active filter. An empty filter value is inactive; unknown or
// non-filterable keys are ignored.
func Filter[T any](records []T, s Schema[T], search string, filters map[string]string) []T {
	term := strings.ToLower(search)

	type active struct {
		field Field[T]
		value string
	}
	var checks []active
	for key, value := range filters {
		if value == "" {
			continue
		}
		if f, ok := s.Field(key); ok && f.Filterable {
			checks = append(checks, active{field: f, value: value})
		}
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if term != "" && !matchesSearch(r, s, term) {
			continue
		}
		keep := true
		for _, c := range checks {
			if c.field.Text(r) != c.value {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

func matchesSearch[T any](r T, s Schema[T], term string) bool {
	for _, f := range s.Fields {
		if f.Searchable && strings.Contains(strings.ToLower(f.Text(r)), term) {
			return true
		}
	}
	return false
}

// SortRecords orders records in place. Ties keep their relative order.
func SortRecords[T any](records []T, s Schema[T], srt Sort) {
	if srt.Direction == SortNone {
		return
	}
	f, ok := s.Field(srt.Key)
	if !ok {
		return
	}

	compare := f.Compare
	if compare == nil {
		compare = func(a, b T) int { return strings.Compare(f.Text(a), f.Text(b)) }
	}

	slices.SortStableFunc(records, func(a, b T) int {
		c := compare(a, b)
		if srt.Direction == SortDesc {
			return -c
		}
		return c
	})
}

// Paginate returns the 1-indexed page of records. Out-of-range or
// non-positive arguments yield an empty, non-nil slice.
func Paginate[T any](records []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(records) {
		return []T{}
	}
	end := min(start+pageSize, len(records))

	out := make([]T, end-start)
	copy(out, records[start:end])
	return out
}

// TotalPages is ceil(total / pageSize), or 0 for a non-positive page size.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
