package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/grimwiz/karakeep/internal/bookmarks"
	"github.com/grimwiz/karakeep/internal/errs"
)

func registerTools(srv *server.MCPServer, svc *bookmarks.Service) {
	srv.AddTool(
		mcp.NewTool("search-bookmarks",
			mcp.WithDescription("Search bookmarks by a query string. Use the query \"bookmarks\" (or \"*\") to list everything. Returns a readable summary plus a JSON page; pass the returned nextCursor to fetch the next page."),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Search terms. Matches titles, content, notes and tags."),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum results per page, 1-100 (default 100)."),
			),
			mcp.WithString("nextCursor",
				mcp.Description("Pagination token from a previous search result."),
			),
			mcp.WithString("cursor",
				mcp.Description("Alias of nextCursor. Provide at most one of the two."),
			),
		),
		handleSearch(svc),
	)

	srv.AddTool(
		mcp.NewTool("get-bookmark",
			mcp.WithDescription("Fetch one bookmark by its id, without the content body."),
			mcp.WithString("bookmarkId",
				mcp.Required(),
				mcp.Description("The bookmark id."),
			),
		),
		handleGet(svc),
	)

	srv.AddTool(
		mcp.NewTool("create-bookmark",
			mcp.WithDescription("Create a new bookmark. Type \"link\" saves a URL; type \"text\" saves a note body."),
			mcp.WithString("type",
				mcp.Required(),
				mcp.Description("Either \"link\" or \"text\"."),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("The URL for a link bookmark, or the text body for a text bookmark."),
			),
			mcp.WithString("title",
				mcp.Description("Optional title."),
			),
		),
		handleCreate(svc),
	)

	srv.AddTool(
		mcp.NewTool("get-bookmark-content",
			mcp.WithDescription("Fetch the full content of a bookmark as markdown. Crawled link pages are converted from HTML."),
			mcp.WithString("bookmarkId",
				mcp.Required(),
				mcp.Description("The bookmark id."),
			),
		),
		handleGetContent(svc),
	)

	srv.AddTool(
		mcp.NewTool("get-lists",
			mcp.WithDescription("Fetch all bookmark lists."),
		),
		handleGetLists(svc),
	)

	srv.AddTool(
		mcp.NewTool("create-list",
			mcp.WithDescription("Create a new bookmark list."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("The list name."),
			),
			mcp.WithString("icon",
				mcp.Required(),
				mcp.Description("An emoji used as the list icon."),
			),
			mcp.WithString("parentId",
				mcp.Description("Optional parent list id for nesting."),
			),
		),
		handleCreateList(svc),
	)

	srv.AddTool(
		mcp.NewTool("add-bookmark-to-list",
			mcp.WithDescription("Add a bookmark to a list."),
			mcp.WithString("listId",
				mcp.Required(),
				mcp.Description("The list id."),
			),
			mcp.WithString("bookmarkId",
				mcp.Required(),
				mcp.Description("The bookmark id."),
			),
		),
		handleListMembership(svc, "add"),
	)

	srv.AddTool(
		mcp.NewTool("remove-bookmark-from-list",
			mcp.WithDescription("Remove a bookmark from a list."),
			mcp.WithString("listId",
				mcp.Required(),
				mcp.Description("The list id."),
			),
			mcp.WithString("bookmarkId",
				mcp.Required(),
				mcp.Description("The bookmark id."),
			),
		),
		handleListMembership(svc, "remove"),
	)

	srv.AddTool(
		mcp.NewTool("attach-tag-to-bookmark",
			mcp.WithDescription("Attach one or more tags to a bookmark. Tags are created upstream when they do not exist yet."),
			mcp.WithString("bookmarkId",
				mcp.Required(),
				mcp.Description("The bookmark id."),
			),
			mcp.WithArray("tags",
				mcp.Required(),
				mcp.Description("Tag names to attach."),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		handleTags(svc, "attach"),
	)

	srv.AddTool(
		mcp.NewTool("detach-tag-from-bookmark",
			mcp.WithDescription("Detach one or more tags from a bookmark."),
			mcp.WithString("bookmarkId",
				mcp.Required(),
				mcp.Description("The bookmark id."),
			),
			mcp.WithArray("tags",
				mcp.Required(),
				mcp.Description("Tag names to detach."),
				mcp.Items(map[string]any{"type": "string"}),
			),
		),
		handleTags(svc, "detach"),
	)
}

func handleSearch(svc *bookmarks.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		sr := bookmarks.SearchRequest{
			Query:      stringArg(args, "query"),
			Limit:      intArg(args, "limit"),
			Cursor:     stringPtrArg(args, "cursor"),
			NextCursor: stringPtrArg(args, "nextCursor"),
		}

		result, err := svc.SearchBookmarks(ctx, sr)
		if err != nil {
			return errorResult(err), nil
		}
		return textAndJSON(result.Text, result)
	}
}

func handleGet(svc *bookmarks.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := svc.GetBookmark(ctx, stringArg(req.GetArguments(), "bookmarkId"))
		if err != nil {
			return errorResult(err), nil
		}
		return textAndJSON(result.Text, result)
	}
}

func handleCreate(svc *bookmarks.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		cr := bookmarks.CreateRequest{
			Type:    stringArg(args, "type"),
			Title:   stringPtrArg(args, "title"),
			Content: stringArg(args, "content"),
		}

		result, err := svc.CreateBookmark(ctx, cr)
		if err != nil {
			return errorResult(err), nil
		}
		return textAndJSON(fmt.Sprintf("Created bookmark %s.\n\n%s", result.ID, result.Text), result)
	}
}

func handleGetContent(svc *bookmarks.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := svc.GetBookmarkContent(ctx, stringArg(req.GetArguments(), "bookmarkId"))
		if err != nil {
			return errorResult(err), nil
		}
		if content.Content == "" {
			return mcp.NewToolResultText("This bookmark has no content."), nil
		}
		return mcp.NewToolResultText(content.Content), nil
	}
}

func handleGetLists(svc *bookmarks.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		lists, err := svc.GetLists(ctx)
		if err != nil {
			return errorResult(err), nil
		}
		if len(lists) == 0 {
			return mcp.NewToolResultText("No lists found."), nil
		}
		return jsonResult(map[string]any{"lists": lists})
	}
}

func handleCreateList(svc *bookmarks.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		list, err := svc.CreateList(ctx, stringArg(args, "name"), stringArg(args, "icon"), stringPtrArg(args, "parentId"))
		if err != nil {
			return errorResult(err), nil
		}
		return textAndJSON(fmt.Sprintf("Created list %s (%s).", list.Name, list.ID), list)
	}
}

func handleListMembership(svc *bookmarks.Service, action string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		listID := stringArg(args, "listId")
		bookmarkID := stringArg(args, "bookmarkId")

		var result *bookmarks.ListMutationResult
		var err error
		if action == "add" {
			result, err = svc.AddBookmarkToList(ctx, listID, bookmarkID)
		} else {
			result, err = svc.RemoveBookmarkFromList(ctx, listID, bookmarkID)
		}
		if err != nil {
			return errorResult(err), nil
		}
		return textAndJSON(result.Message, result)
	}
}

func handleTags(svc *bookmarks.Service, action string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		bookmarkID := stringArg(args, "bookmarkId")
		tags := stringsArg(args, "tags")

		var result *bookmarks.TagMutationResult
		var err error
		if action == "attach" {
			result, err = svc.AttachTags(ctx, bookmarkID, tags)
		} else {
			result, err = svc.DetachTags(ctx, bookmarkID, tags)
		}
		if err != nil {
			return errorResult(err), nil
		}
		return textAndJSON(result.Message, result)
	}
}

func stringArg(args map[string]any, name string) string {
	v, _ := args[name].(string)
	return v
}

func stringPtrArg(args map[string]any, name string) *string {
	v, ok := args[name].(string)
	if !ok || v == "" {
		return nil
	}
	return &v
}

// intArg reads a numeric argument. JSON numbers arrive as float64.
func intArg(args map[string]any, name string) int {
	switch v := args[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func stringsArg(args map[string]any, name string) []string {
	raw, ok := args[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// errorResult renders a failure as a tool error: a human message first,
// then the normalized error as JSON for callers that parse it.
func errorResult(err error) *mcp.CallToolResult {
	norm := errs.Normalize(err)
	res := mcp.NewToolResultError(norm.Message)
	if payload, merr := json.Marshal(map[string]any{"error": norm}); merr == nil {
		res.Content = append(res.Content, mcp.NewTextContent(string(payload)))
	}
	return res
}

// textAndJSON pairs a readable text block with the full result as JSON.
func textAndJSON(text string, v any) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	res := mcp.NewToolResultText(text)
	res.Content = append(res.Content, mcp.NewTextContent(string(payload)))
	return res, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(payload)), nil
}
