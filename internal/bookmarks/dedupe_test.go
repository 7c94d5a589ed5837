package bookmarks

import (
	"testing"

	"github.com/grimwiz/karakeep/internal/karakeep"
)

func bm(id string) karakeep.Bookmark {
	return karakeep.Bookmark{ID: id, Content: karakeep.Content{Type: karakeep.ContentTypeLink}}
}

func TestDedupeByID(t *testing.T) {
	tests := []struct {
		name        string
		in          []karakeep.Bookmark
		wantIDs     []string
		wantDropped int
	}{
		{name: "empty", in: nil, wantIDs: []string{}},
		{name: "no duplicates", in: []karakeep.Bookmark{bm("a"), bm("b")}, wantIDs: []string{"a", "b"}},
		{
			name:        "first occurrence wins",
			in:          []karakeep.Bookmark{bm("a"), bm("b"), bm("a"), bm("c"), bm("b")},
			wantIDs:     []string{"a", "b", "c"},
			wantDropped: 2,
		},
		{
			name:        "all identical",
			in:          []karakeep.Bookmark{bm("a"), bm("a"), bm("a")},
			wantIDs:     []string{"a"},
			wantDropped: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kept, dropped := DedupeByID(tc.in)
			if dropped != tc.wantDropped {
				t.Errorf("dropped = %d, want %d", dropped, tc.wantDropped)
			}
			if len(kept) != len(tc.wantIDs) {
				t.Fatalf("kept %d bookmarks, want %d", len(kept), len(tc.wantIDs))
			}
			for i, want := range tc.wantIDs {
				if kept[i].ID != want {
					t.Errorf("kept[%d].ID = %q, want %q", i, kept[i].ID, want)
				}
			}
		})
	}
}
