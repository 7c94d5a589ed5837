package bookmarks

import (
	"fmt"
	"strings"
)

const (
	summaryCap          = 400
	noteCap             = 200
	untitledPlaceholder = "(untitled)"
	ellipsis            = "…"
)

// RenderCompact renders one bookmark as a fixed-order labeled text block.
// Used when exactly one bookmark goes back to a conversational caller.
func RenderCompact(s BookmarkSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %s\n", s.ID)
	fmt.Fprintf(&b, "Created: %s\n", s.CreatedAt)
	writeLabeled(&b, "Title", deref(s.Title))
	writeLabeled(&b, "Summary", deref(s.Summary))
	writeLabeled(&b, "Note", deref(s.Note))

	switch s.Type {
	case "link":
		writeLabeled(&b, "URL", deref(s.URL))
		writeLabeled(&b, "Description", deref(s.Description))
		writeLabeled(&b, "Author", deref(s.Author))
		writeLabeled(&b, "Publisher", deref(s.Publisher))
	case "text":
		writeLabeled(&b, "Source", deref(s.SourceURL))
	case "asset":
		writeLabeled(&b, "Source", deref(s.SourceURL))
		writeLabeled(&b, "Asset ID", deref(s.AssetID))
		writeLabeled(&b, "Asset type", deref(s.AssetType))
	}

	if len(s.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(s.Tags, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderSearchText renders a page of summaries for a conversational
// caller: a header with match count, echoed query and cursor state,
// then one numbered paragraph per bookmark. Optional lines are omitted
// entirely when their source field is absent or blank.
func RenderSearchText(items []BookmarkSummary, query string, nextCursor *string) string {
	if len(items) == 0 {
		return fmt.Sprintf("No bookmarks matched %q.", query)
	}

	var b strings.Builder
	noun := "bookmarks"
	if len(items) == 1 {
		noun = "bookmark"
	}
	fmt.Fprintf(&b, "Found %d %s matching %q.", len(items), noun, query)
	if nextCursor != nil {
		fmt.Fprintf(&b, " More results are available; pass nextCursor %q to continue.", *nextCursor)
	} else {
		b.WriteString(" End of results.")
	}
	b.WriteString("\n")

	for i, s := range items {
		b.WriteString("\n")
		title := strings.TrimSpace(deref(s.Title))
		if title == "" {
			title = untitledPlaceholder
		}
		fmt.Fprintf(&b, "%d. %s (created %s)\n", i+1, title, s.CreatedAt)

		if summary := strings.TrimSpace(deref(s.Summary)); summary != "" {
			fmt.Fprintf(&b, "   Summary: %s\n", truncate(summary, summaryCap))
		}
		if note := strings.TrimSpace(deref(s.Note)); note != "" {
			fmt.Fprintf(&b, "   Note: %s\n", truncate(note, noteCap))
		}
		// Link-type bookmarks carry a URL; text and asset fall back to
		// where their content came from.
		link := deref(s.URL)
		if strings.TrimSpace(link) == "" {
			link = deref(s.SourceURL)
		}
		if strings.TrimSpace(link) != "" {
			fmt.Fprintf(&b, "   Link: %s\n", link)
		}
		if len(s.Tags) > 0 {
			fmt.Fprintf(&b, "   Tags: %s\n", strings.Join(s.Tags, ", "))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// writeLabeled emits "Label: value" and skips the line when the value
// is blank.
func writeLabeled(b *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

// truncate caps s at max runes, trimming trailing whitespace before the
// ellipsis marker.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := strings.TrimRight(string(runes[:max]), " \t\n\r")
	return cut + ellipsis
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
