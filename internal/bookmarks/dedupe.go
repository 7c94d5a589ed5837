package bookmarks

import "github.com/grimwiz/karakeep/internal/karakeep"

// DedupeByID drops later occurrences of bookmarks sharing an id,
// preserving the relative order of kept records. Upstream search pages
// have been observed to repeat a record when server-side joins fan out;
// the duplicates are masked here and only reported through the returned
// count.
func DedupeByID(items []karakeep.Bookmark) (kept []karakeep.Bookmark, dropped int) {
	kept = make([]karakeep.Bookmark, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, bm := range items {
		if _, ok := seen[bm.ID]; ok {
			dropped++
			continue
		}
		seen[bm.ID] = struct{}{}
		kept = append(kept, bm)
	}
	return kept, dropped
}
