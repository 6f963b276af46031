package view

import "maps"

// State holds the inputs of an interactive table and re-derives the visible
// page on demand. The current page goes back to 1 whenever the record set,
// the search term or the filters change; sort, page and page size changes
// keep it.
type State[T any] struct {
	schema  Schema[T]
	records []T
	query   Query
}

// NewState returns a State on page 1 with no search, filters or sort.
func NewState[T any](s Schema[T], pageSize int) *State[T] {
	return &State[T]{
		schema: s,
		query: Query{
			Filters:  map[string]string{},
			Page:     1,
			PageSize: pageSize,
		},
	}
}

// SetRecords replaces the loaded record set.
func (s *State[T]) SetRecords(records []T) {
	s.records = append([]T(nil), records...)
	s.query.Page = 1
}

func (s *State[T]) SetSearch(term string) {
	if term == s.query.Search {
		return
	}
	s.query.Search = term
	s.query.Page = 1
}

// SetFilter sets or, with an empty value, clears the filter on key.
func (s *State[T]) SetFilter(key, value string) {
	if s.query.Filters[key] == value {
		return
	}
	if value == "" {
		delete(s.query.Filters, key)
	} else {
		s.query.Filters[key] = value
	}
	s.query.Page = 1
}

// ClearFilters drops the search term and every filter.
func (s *State[T]) ClearFilters() {
	if s.query.Search == "" && len(s.query.Filters) == 0 {
		return
	}
	s.query.Search = ""
	s.query.Filters = map[string]string{}
	s.query.Page = 1
}

func (s *State[T]) SetSort(key string, dir SortDirection) {
	s.query.Sort = Sort{Key: key, Direction: dir}
}

func (s *State[T]) SetPage(page int) {
	s.query.Page = page
}

func (s *State[T]) SetPageSize(size int) {
	s.query.PageSize = size
}

// Query returns a copy of the current inputs.
func (s *State[T]) Query() Query {
	q := s.query
	q.Filters = maps.Clone(s.query.Filters)
	return q
}

// View derives the rows for the current inputs.
func (s *State[T]) View() Result[T] {
	return Derive(s.records, s.schema, s.Query())
}
