package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/grimwiz/karakeep/internal/bookmarks"
	"github.com/grimwiz/karakeep/internal/karakeep"
	"github.com/grimwiz/karakeep/internal/logger"
)

// stubClient returns canned upstream responses for tool handler tests.
type stubClient struct {
	page *karakeep.SearchPage
	bm   *karakeep.Bookmark
}

func (s *stubClient) SearchBookmarks(context.Context, string, int, *string, bool) (*karakeep.SearchPage, error) {
	return s.page, nil
}

func (s *stubClient) GetBookmark(context.Context, string, bool) (*karakeep.Bookmark, error) {
	return s.bm, nil
}

func (s *stubClient) CreateBookmark(context.Context, karakeep.CreateBookmarkRequest) (*karakeep.Bookmark, error) {
	return s.bm, nil
}

func (s *stubClient) GetLists(context.Context) (*karakeep.ListsPage, error) {
	return &karakeep.ListsPage{}, nil
}

func (s *stubClient) CreateList(context.Context, karakeep.CreateListRequest) (*karakeep.List, error) {
	return &karakeep.List{ID: "l1", Name: "x", Icon: "y"}, nil
}

func (s *stubClient) AddBookmarkToList(context.Context, string, string) error      { return nil }
func (s *stubClient) RemoveBookmarkFromList(context.Context, string, string) error { return nil }
func (s *stubClient) AttachTags(context.Context, string, []string) error           { return nil }
func (s *stubClient) DetachTags(context.Context, string, []string) error           { return nil }

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	var b strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			b.WriteString(tc.Text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func testService(client bookmarks.UpstreamClient) *bookmarks.Service {
	return bookmarks.NewService(client, func(html string) (string, error) {
		return html, nil
	}, logger.Nop(), 100)
}

func TestHandleSearch(t *testing.T) {
	title := "*Hit*"
	svc := testService(&stubClient{page: &karakeep.SearchPage{
		Bookmarks: []karakeep.Bookmark{{
			ID:        "a",
			CreatedAt: "2026-01-01T00:00:00Z",
			Title:     &title,
			Content:   karakeep.Content{Type: karakeep.ContentTypeLink},
		}},
	}})

	res, err := handleSearch(svc)(context.Background(), callRequest("search-bookmarks", map[string]any{
		"query": "hit",
		"limit": float64(5),
	}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}

	text := resultText(t, res)
	if !strings.Contains(text, `Found 1 bookmark matching "hit".`) {
		t.Errorf("missing rendered header:\n%s", text)
	}
	if !strings.Contains(text, `\*Hit\*`) {
		t.Errorf("output must carry escaped titles:\n%s", text)
	}
	if !strings.Contains(text, `"hasMore": false`) {
		t.Errorf("missing json payload:\n%s", text)
	}
}

func TestHandleSearchCursorConflict(t *testing.T) {
	svc := testService(&stubClient{})

	res, err := handleSearch(svc)(context.Background(), callRequest("search-bookmarks", map[string]any{
		"query":      "x",
		"cursor":     "a",
		"nextCursor": "b",
	}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !res.IsError {
		t.Fatal("want a tool error result")
	}

	text := resultText(t, res)
	if !strings.Contains(text, "not both") {
		t.Errorf("missing validation message:\n%s", text)
	}
	if !strings.Contains(text, `"status":400`) {
		t.Errorf("missing normalized error payload:\n%s", text)
	}
}

func TestHandleTagsParsesArray(t *testing.T) {
	svc := testService(&stubClient{})

	res, err := handleTags(svc, "attach")(context.Background(), callRequest("attach-tag-to-bookmark", map[string]any{
		"bookmarkId": "bm_1",
		"tags":       []any{"go", "web"},
	}))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if res.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, res))
	}
	if text := resultText(t, res); !strings.Contains(text, "go, web") {
		t.Errorf("message = %s", text)
	}
}

func TestArgHelpers(t *testing.T) {
	args := map[string]any{
		"s":     "value",
		"empty": "",
		"n":     float64(7),
		"list":  []any{"a", 3, "b"},
	}

	if got := stringArg(args, "s"); got != "value" {
		t.Errorf("stringArg = %q", got)
	}
	if got := stringArg(args, "missing"); got != "" {
		t.Errorf("stringArg missing = %q", got)
	}
	if got := stringPtrArg(args, "empty"); got != nil {
		t.Errorf("stringPtrArg empty = %v", got)
	}
	if got := intArg(args, "n"); got != 7 {
		t.Errorf("intArg = %d", got)
	}
	if got := stringsArg(args, "list"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("stringsArg = %v", got)
	}
}
