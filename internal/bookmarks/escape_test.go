package bookmarks

import "testing"

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain text untouched", in: "hello world", want: "hello world"},
		{name: "emphasis", in: "*bold*", want: `\*bold\*`},
		{name: "underscore", in: "_it_", want: `\_it\_`},
		{name: "link syntax", in: "[x](y)", want: `\[x\]\(y\)`},
		{name: "heading and list markers", in: "# title - item", want: `\# title \- item`},
		{name: "backslash and backtick", in: "a\\b`c`", want: "a\\\\b\\`c\\`"},
		{name: "table and quote chars", in: "a|b>c~d", want: `a\|b\>c\~d`},
		{name: "dots and bangs", in: "v1.2!", want: `v1\.2\!`},
		{name: "braces and plus", in: "{x}+1", want: `\{x\}\+1`},
		{name: "unicode passthrough", in: "héllo *wörld*", want: `héllo \*wörld\*`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EscapeMarkdown(tc.in); got != tc.want {
				t.Fatalf("EscapeMarkdown(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestEscapedLeavesOriginalIntact(t *testing.T) {
	title := "*bold*"
	url := "https://example.com/a_b"
	s := BookmarkSummary{
		ID:    "bm_1",
		Type:  "link",
		Title: &title,
		URL:   &url,
		Tags:  []string{"go-lang"},
	}

	esc := s.Escaped()

	if got := *esc.Title; got != `\*bold\*` {
		t.Fatalf("escaped title = %q", got)
	}
	if got := *esc.URL; got != `https://example\.com/a\_b` {
		t.Fatalf("escaped url = %q", got)
	}
	if got := esc.Tags[0]; got != `go\-lang` {
		t.Fatalf("escaped tag = %q", got)
	}
	if esc.ID != "bm_1" {
		t.Fatalf("id must not be escaped, got %q", esc.ID)
	}

	// The receiver is a value copy; the raw mirror stays raw.
	if *s.Title != "*bold*" || *s.URL != url || s.Tags[0] != "go-lang" {
		t.Fatal("Escaped mutated the original summary")
	}
}
