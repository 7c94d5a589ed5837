package karakeep

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grimwiz/karakeep/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(ClientOptions{
		APIAddr:   srv.URL,
		APIKey:    "test-key",
		UserAgent: "karakeep-mcp-test",
	}, logger.Nop())
	return client, srv
}

func TestSearchBookmarksRequestShape(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Encode()
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(SearchPage{Bookmarks: []Bookmark{}})
	})

	cursor := "c1"
	if _, err := client.SearchBookmarks(context.Background(), "golang", 25, &cursor, false); err != nil {
		t.Fatalf("SearchBookmarks: %v", err)
	}

	if gotPath != "/api/v1/bookmarks/search" {
		t.Errorf("path = %q, want /api/v1/bookmarks/search", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization = %q", gotAuth)
	}
	want := "cursor=c1&includeContent=false&limit=25&q=golang"
	if gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
}

func TestSearchBookmarksDecodesPage(t *testing.T) {
	next := "cursor-2"
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(SearchPage{
			Bookmarks: []Bookmark{
				{ID: "b1", CreatedAt: "2026-01-01T00:00:00Z", Content: Content{Type: ContentTypeLink}},
				{ID: "b2", CreatedAt: "2026-01-02T00:00:00Z", Content: Content{Type: ContentTypeText}},
			},
			NextCursor: &next,
		})
	})

	page, err := client.SearchBookmarks(context.Background(), "*", 10, nil, false)
	if err != nil {
		t.Fatalf("SearchBookmarks: %v", err)
	}
	if len(page.Bookmarks) != 2 {
		t.Fatalf("got %d bookmarks, want 2", len(page.Bookmarks))
	}
	if page.NextCursor == nil || *page.NextCursor != "cursor-2" {
		t.Errorf("nextCursor = %v, want cursor-2", page.NextCursor)
	}
}

func TestUpstreamErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "full envelope",
			status:     404,
			body:       `{"error":{"message":"bookmark not found","code":"NOT_FOUND"}}`,
			wantStatus: 404,
			wantCode:   "NOT_FOUND",
			wantMsg:    "bookmark not found",
		},
		{
			name:       "envelope without code",
			status:     400,
			body:       `{"error":{"message":"bad request"}}`,
			wantStatus: 400,
			wantMsg:    "bad request",
		},
		{
			name:       "non-json error body",
			status:     502,
			body:       "Bad Gateway",
			wantStatus: 502,
			wantMsg:    "upstream returned status 502",
		},
		{
			name:       "empty error body",
			status:     500,
			body:       "",
			wantStatus: 500,
			wantMsg:    "upstream returned status 500",
		},
		{
			name:       "error envelope on 200",
			status:     200,
			body:       `{"error":{"message":"shadow failure"}}`,
			wantStatus: 500,
			wantMsg:    "shadow failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetBookmark(context.Background(), "b1", false)
			if err == nil {
				t.Fatal("expected error")
			}
			apiErr, ok := err.(*APIError)
			if !ok {
				t.Fatalf("error type = %T, want *APIError", err)
			}
			if apiErr.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if apiErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", apiErr.Code, tt.wantCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestTagMutationBody(t *testing.T) {
	var gotMethod string
	var gotBody tagMutationRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	})

	if err := client.AttachTags(context.Background(), "b1", []string{"work", "urgent"}); err != nil {
		t.Fatalf("AttachTags: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if len(gotBody.Tags) != 2 || gotBody.Tags[0].TagName != "work" || gotBody.Tags[1].TagName != "urgent" {
		t.Errorf("body tags = %+v", gotBody.Tags)
	}

	if err := client.DetachTags(context.Background(), "b1", []string{"work"}); err != nil {
		t.Fatalf("DetachTags: %v", err)
	}
	if gotMethod != http.MethodDelete {
		t.Errorf("method = %s, want DELETE", gotMethod)
	}
}

func TestListMembershipPaths(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	if err := client.AddBookmarkToList(context.Background(), "l1", "b1"); err != nil {
		t.Fatalf("AddBookmarkToList: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/v1/lists/l1/bookmarks/b1" {
		t.Errorf("got %s %s", gotMethod, gotPath)
	}

	if err := client.RemoveBookmarkFromList(context.Background(), "l1", "b1"); err != nil {
		t.Fatalf("RemoveBookmarkFromList: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/v1/lists/l1/bookmarks/b1" {
		t.Errorf("got %s %s", gotMethod, gotPath)
	}
}
