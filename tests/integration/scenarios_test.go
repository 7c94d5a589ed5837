package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/grimwiz/karakeep/internal/bookmarks"
	"github.com/grimwiz/karakeep/internal/htmlmd"
	"github.com/grimwiz/karakeep/internal/karakeep"
	"github.com/grimwiz/karakeep/internal/logger"
)

// newService wires the real client, converter and façade against a fake
// upstream API.
func newService(t *testing.T, upstream http.Handler) *bookmarks.Service {
	t.Helper()

	up := httptest.NewServer(upstream)
	t.Cleanup(up.Close)

	client := karakeep.NewClient(karakeep.ClientOptions{
		APIAddr: up.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, logger.Nop())

	return bookmarks.NewService(client, htmlmd.Convert, logger.Nop(), 100)
}

// TestBrowseScenario walks the "show me my bookmarks" flow: wildcard
// rewrite, pagination, and a second page via the returned cursor.
func TestBrowseScenario(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/bookmarks/search", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "*" {
			t.Errorf("q = %q, want wildcard", got)
		}
		if r.URL.Query().Get("cursor") == "" {
			_, _ = w.Write([]byte(`{
				"bookmarks": [{"id": "a", "createdAt": "2026-01-01T00:00:00Z", "title": "First", "content": {"type": "link", "url": "https://example.com/a"}}],
				"nextCursor": "page2"
			}`))
			return
		}
		if got := r.URL.Query().Get("cursor"); got != "page2" {
			t.Errorf("cursor = %q", got)
		}
		_, _ = w.Write([]byte(`{
			"bookmarks": [{"id": "b", "createdAt": "2026-01-02T00:00:00Z", "title": "Second", "content": {"type": "link", "url": "https://example.com/b"}}]
		}`))
	})
	svc := newService(t, mux)
	ctx := context.Background()

	first, err := svc.SearchBookmarks(ctx, bookmarks.SearchRequest{Query: "bookmarks"})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if !first.HasMore || first.NextCursor == nil {
		t.Fatalf("first page pagination = %+v", first.Page)
	}
	if !strings.Contains(first.Text, `pass nextCursor "page2"`) {
		t.Errorf("first page text:\n%s", first.Text)
	}

	second, err := svc.SearchBookmarks(ctx, bookmarks.SearchRequest{Query: "bookmarks", NextCursor: first.NextCursor})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if second.HasMore {
		t.Error("second page must be the last")
	}
	if !strings.Contains(second.Text, "End of results.") {
		t.Errorf("second page text:\n%s", second.Text)
	}
	if second.Cursor == nil || *second.Cursor != "page2" {
		t.Errorf("second page must echo the cursor it was fetched with, got %v", second.Cursor)
	}
}

// TestSaveAndOrganizeScenario walks create, tag, and list membership in
// sequence against one fake upstream.
func TestSaveAndOrganizeScenario(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/bookmarks", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["type"] != "link" {
			t.Errorf("create type = %v", req["type"])
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": "bm_1", "createdAt": "2026-01-01T00:00:00Z", "content": {"type": "link", "url": "https://example.com"}}`))
	})
	mux.HandleFunc("POST /api/v1/bookmarks/bm_1/tags", func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]any{"attached": []string{"t1"}})
		_, _ = w.Write(body)
	})
	mux.HandleFunc("PUT /api/v1/lists/l1/bookmarks/bm_1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	svc := newService(t, mux)
	ctx := context.Background()

	created, err := svc.CreateBookmark(ctx, bookmarks.CreateRequest{Type: "link", Content: "https://example.com"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tagged, err := svc.AttachTags(ctx, created.ID, []string{"reading"})
	if err != nil {
		t.Fatalf("attach tags: %v", err)
	}
	if tagged.Action != "attached" {
		t.Errorf("tag result = %+v", tagged)
	}

	added, err := svc.AddBookmarkToList(ctx, "l1", created.ID)
	if err != nil {
		t.Fatalf("add to list: %v", err)
	}
	if added.Action != "added" {
		t.Errorf("list result = %+v", added)
	}
}

// TestReadContentScenario exercises the real HTML to markdown conversion
// end to end.
func TestReadContentScenario(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/bookmarks/bm_1", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("includeContent"); got != "true" {
			t.Errorf("includeContent = %q", got)
		}
		_, _ = w.Write([]byte(`{
			"id": "bm_1",
			"createdAt": "2026-01-01T00:00:00Z",
			"content": {"type": "link", "url": "https://example.com", "htmlContent": "<h1>Title</h1><p>Body with <strong>emphasis</strong>.</p>"}
		}`))
	})
	svc := newService(t, mux)

	content, err := svc.GetBookmarkContent(context.Background(), "bm_1")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if content.Format != "markdown" {
		t.Errorf("format = %q", content.Format)
	}
	for _, want := range []string{"# Title", "**emphasis**"} {
		if !strings.Contains(content.Content, want) {
			t.Errorf("missing %q in:\n%s", want, content.Content)
		}
	}
}
