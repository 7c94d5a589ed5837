package bookmarks

import (
	"strings"

	"github.com/grimwiz/karakeep/internal/errs"
)

// wildcardQuery is the upstream token matching every bookmark.
const wildcardQuery = "*"

const (
	minLimit = 1
	maxLimit = 100
)

// SearchRequest is the heterogeneous caller input for a search. Callers
// may pass the pagination token as either NextCursor or Cursor; Limit 0
// means "use the surface default".
type SearchRequest struct {
	Query      string
	Limit      int
	Cursor     *string
	NextCursor *string
}

// NormalizedQuery is the one canonical triple sent upstream.
type NormalizedQuery struct {
	Query  string
	Limit  int
	Cursor *string
}

// Normalize derives the canonical upstream parameters:
//
//   - cursor aliasing: nextCursor ?? cursor; supplying both fails
//   - query: trimmed; a bare "bookmarks" (any case) means "all bookmarks"
//     and is rewritten to the upstream wildcard
//   - limit: defaulted when zero, then hard-bounded to 1-100
func (r SearchRequest) Normalize(defaultLimit int) (NormalizedQuery, error) {
	if r.NextCursor != nil && r.Cursor != nil {
		return NormalizedQuery{}, &errs.Validation{
			Message: "provide either nextCursor or cursor, not both",
			Details: map[string]string{"cursor": "conflicts with nextCursor"},
		}
	}

	cursor := r.NextCursor
	if cursor == nil {
		cursor = r.Cursor
	}

	query := strings.TrimSpace(r.Query)
	// Natural-language callers ask to "see my bookmarks" without
	// qualifiers; the bare word means everything.
	if strings.EqualFold(query, "bookmarks") {
		query = wildcardQuery
	}

	limit := r.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < minLimit || limit > maxLimit {
		return NormalizedQuery{}, errs.Validationf("limit must be between %d and %d (got %d)", minLimit, maxLimit, r.Limit)
	}

	return NormalizedQuery{Query: query, Limit: limit, Cursor: cursor}, nil
}
