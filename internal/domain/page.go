package domain

// Sort orders accepted by list endpoints. Anything else falls back to SortOldest.
const (
	SortRecent = "recent" // created_at descending
	SortOldest = ""       // id ascending
)

// ListParams carries offset/limit/sort/keyword values from the HTTP layer to
// the repo layer. Offset is zero-based. Limit is capped at 100 by
// NewListParams.
type ListParams struct {
	Offset int
	Limit  int
	// Sort is SortRecent or SortOldest.
	Sort string
	// Query is an optional keyword filter. Every whitespace-separated word
	// must match name or description, case-insensitively.
	Query string
}

// NewListParams builds a ListParams from optional HTTP query params.
// Nil pointers fall back to sane defaults (offset=0, limit=10).
// The limit is capped at 100 to prevent runaway queries.
func NewListParams(offset, limit *int, sort, query string) ListParams {
	p := ListParams{Offset: 0, Limit: 10, Sort: sort, Query: query}
	if offset != nil && *offset >= 0 {
		p.Offset = *offset
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	if p.Sort != SortRecent {
		p.Sort = SortOldest
	}
	return p
}

// CursorParams carries cursor pagination values for comment lists.
// Cursor is the id of the last item of the previous page; nil means start
// from the newest comment.
type CursorParams struct {
	Cursor *int64
	Limit  int
}

// NewCursorParams builds a CursorParams with the same defaults and cap as
// NewListParams.
func NewCursorParams(cursor *int64, limit *int) CursorParams {
	p := CursorParams{Cursor: cursor, Limit: 10}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}
