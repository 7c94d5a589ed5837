package bookmarks

import "strings"

// markdownSignificant is the set of characters backslash-escaped in
// caller-visible text. Bookmark content is caller-controlled; escaping
// keeps it from being interpreted as markdown formatting or, in agent
// contexts, as embedded instructions.
const markdownSignificant = "\\`*_{}[]()#+.!|>~-"

// EscapeMarkdown escapes every markdown-significant character in s,
// character by character.
func EscapeMarkdown(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for _, r := range s {
		if r < 128 && strings.ContainsRune(markdownSignificant, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Escaped returns a copy of the summary with every free-text field
// markdown-escaped. The receiver is left untouched; the copy shares
// values, not identity, with the raw form.
func (s BookmarkSummary) Escaped() BookmarkSummary {
	out := s
	out.Title = escapePtr(s.Title)
	out.Summary = escapePtr(s.Summary)
	out.Note = escapePtr(s.Note)
	out.TaggingStatus = escapePtr(s.TaggingStatus)
	out.SummarizationStatus = escapePtr(s.SummarizationStatus)
	out.URL = escapePtr(s.URL)
	out.Description = escapePtr(s.Description)
	out.Author = escapePtr(s.Author)
	out.Publisher = escapePtr(s.Publisher)
	out.SourceURL = escapePtr(s.SourceURL)

	if s.Tags != nil {
		out.Tags = make([]string, len(s.Tags))
		for i, tag := range s.Tags {
			out.Tags[i] = EscapeMarkdown(tag)
		}
	}
	return out
}

func escapePtr(p *string) *string {
	if p == nil {
		return nil
	}
	escaped := EscapeMarkdown(*p)
	return &escaped
}
