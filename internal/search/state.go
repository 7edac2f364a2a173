package search

import "thrift-deals-service/internal/domain"

// Session owns the mutable query state for one interactive view: the
// text query, the facet filters, the sort key and the pagination cursor.
// The browser original scattered these across free-floating globals
// mutated by many handlers; here every mutation goes through a method,
// and any change that alters the result set resets the cursor.
//
// A Session is not safe for concurrent use. It models a single
// event-driven view where handlers run one at a time.
type Session struct {
	engine  *Engine
	query   string
	filters Filters
	sortKey SortKey

	result *Result // nil until the next LoadMore recomputes
	pager  *Pager
}

// NewSession creates a session with an empty query, no filters and
// relevance ordering.
func (e *Engine) NewSession() *Session {
	return &Session{engine: e, sortKey: SortRelevance}
}

// SetQuery replaces the text query and resets pagination.
func (s *Session) SetQuery(query string) {
	s.query = query
	s.invalidate()
}

// SetFilters replaces the facet set and resets pagination.
func (s *Session) SetFilters(f Filters) {
	s.filters = f
	s.invalidate()
}

// SetSort replaces the sort key and resets pagination.
func (s *Session) SetSort(key SortKey) {
	s.sortKey = key
	s.invalidate()
}

// ClearFilters drops every active facet and resets pagination.
func (s *Session) ClearFilters() {
	s.filters = Filters{}
	s.invalidate()
}

// Query returns the current text query, for URL write-back.
func (s *Session) Query() string { return s.query }

func (s *Session) invalidate() {
	s.result = nil
	s.pager = nil
}

func (s *Session) ensureResult() {
	if s.result == nil {
		s.result = s.engine.Search(s.query, s.filters, s.sortKey)
		s.pager = s.engine.NewPager(s.result)
	}
}

// LoadMore materializes the next page of the current result set,
// recomputing it first if the query state changed since the last call.
func (s *Session) LoadMore() ([]domain.ProductView, bool) {
	s.ensureResult()
	return s.pager.LoadMore()
}

// Reset rewinds pagination without touching query state.
func (s *Session) Reset() {
	if s.pager != nil {
		s.pager.Reset()
	}
}

// Total returns the size of the current result set.
func (s *Session) Total() int {
	s.ensureResult()
	return s.result.Len()
}
