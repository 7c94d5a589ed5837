package htmlmd

import (
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		got, err := Convert("   ")
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		if got != "" {
			t.Fatalf("got %q, want empty", got)
		}
	})

	t.Run("basic document", func(t *testing.T) {
		got, err := Convert(`<h1>Title</h1><p>Some <strong>bold</strong> text and a <a href="https://example.com">link</a>.</p>`)
		if err != nil {
			t.Fatalf("Convert: %v", err)
		}
		for _, want := range []string{"# Title", "**bold**", "[link](https://example.com)"} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %q in:\n%s", want, got)
			}
		}
	})
}
