package bookmarks

import (
	"errors"
	"testing"

	"github.com/grimwiz/karakeep/internal/errs"
)

func strPtr(s string) *string { return &s }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		req        SearchRequest
		wantQuery  string
		wantLimit  int
		wantCursor *string
	}{
		{
			name:      "defaults applied",
			req:       SearchRequest{Query: "golang"},
			wantQuery: "golang",
			wantLimit: 100,
		},
		{
			name:      "explicit limit kept",
			req:       SearchRequest{Query: "golang", Limit: 25},
			wantQuery: "golang",
			wantLimit: 25,
		},
		{
			name:      "query trimmed",
			req:       SearchRequest{Query: "  golang  "},
			wantQuery: "golang",
			wantLimit: 100,
		},
		{
			name:      "bookmarks rewritten to wildcard",
			req:       SearchRequest{Query: "bookmarks"},
			wantQuery: "*",
			wantLimit: 100,
		},
		{
			name:      "bookmarks rewrite is case-insensitive",
			req:       SearchRequest{Query: "  BookMarks "},
			wantQuery: "*",
			wantLimit: 100,
		},
		{
			name:      "phrase containing bookmarks untouched",
			req:       SearchRequest{Query: "my bookmarks"},
			wantQuery: "my bookmarks",
			wantLimit: 100,
		},
		{
			name:       "nextCursor passes through",
			req:        SearchRequest{Query: "q", NextCursor: strPtr("abc")},
			wantQuery:  "q",
			wantLimit:  100,
			wantCursor: strPtr("abc"),
		},
		{
			name:       "cursor aliased to the same slot",
			req:        SearchRequest{Query: "q", Cursor: strPtr("abc")},
			wantQuery:  "q",
			wantLimit:  100,
			wantCursor: strPtr("abc"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.req.Normalize(100)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if got.Query != tc.wantQuery {
				t.Errorf("query = %q, want %q", got.Query, tc.wantQuery)
			}
			if got.Limit != tc.wantLimit {
				t.Errorf("limit = %d, want %d", got.Limit, tc.wantLimit)
			}
			switch {
			case tc.wantCursor == nil && got.Cursor != nil:
				t.Errorf("cursor = %q, want nil", *got.Cursor)
			case tc.wantCursor != nil && (got.Cursor == nil || *got.Cursor != *tc.wantCursor):
				t.Errorf("cursor = %v, want %q", got.Cursor, *tc.wantCursor)
			}
		})
	}
}

func TestNormalizeCursorAliasingIsEquivalent(t *testing.T) {
	viaCursor, err := SearchRequest{Query: "q", Cursor: strPtr("tok")}.Normalize(100)
	if err != nil {
		t.Fatalf("cursor form: %v", err)
	}
	viaNext, err := SearchRequest{Query: "q", NextCursor: strPtr("tok")}.Normalize(100)
	if err != nil {
		t.Fatalf("nextCursor form: %v", err)
	}
	if *viaCursor.Cursor != *viaNext.Cursor || viaCursor.Query != viaNext.Query || viaCursor.Limit != viaNext.Limit {
		t.Fatalf("aliased forms diverged: %+v vs %+v", viaCursor, viaNext)
	}
}

func TestNormalizeRejections(t *testing.T) {
	tests := []struct {
		name string
		req  SearchRequest
	}{
		{name: "both cursors", req: SearchRequest{Query: "q", Cursor: strPtr("a"), NextCursor: strPtr("b")}},
		{name: "both cursors same value", req: SearchRequest{Query: "q", Cursor: strPtr("a"), NextCursor: strPtr("a")}},
		{name: "limit too small", req: SearchRequest{Query: "q", Limit: -1}},
		{name: "limit too large", req: SearchRequest{Query: "q", Limit: 101}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.req.Normalize(100)
			var verr *errs.Validation
			if !errors.As(err, &verr) {
				t.Fatalf("want *errs.Validation, got %v", err)
			}
		})
	}
}
