package bookmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/grimwiz/karakeep/internal/errs"
	"github.com/grimwiz/karakeep/internal/karakeep"
	"github.com/grimwiz/karakeep/internal/logger"
)

// UpstreamClient is the slice of the Karakeep API the façade consumes.
type UpstreamClient interface {
	SearchBookmarks(ctx context.Context, query string, limit int, cursor *string, includeContent bool) (*karakeep.SearchPage, error)
	GetBookmark(ctx context.Context, bookmarkID string, includeContent bool) (*karakeep.Bookmark, error)
	CreateBookmark(ctx context.Context, req karakeep.CreateBookmarkRequest) (*karakeep.Bookmark, error)
	GetLists(ctx context.Context) (*karakeep.ListsPage, error)
	CreateList(ctx context.Context, req karakeep.CreateListRequest) (*karakeep.List, error)
	AddBookmarkToList(ctx context.Context, listID, bookmarkID string) error
	RemoveBookmarkFromList(ctx context.Context, listID, bookmarkID string) error
	AttachTags(ctx context.Context, bookmarkID string, tags []string) error
	DetachTags(ctx context.Context, bookmarkID string, tags []string) error
}

// ConvertHTML turns an HTML document into markdown. The implementation
// is an external collaborator; an empty input must yield an empty output.
type ConvertHTML func(html string) (string, error)

// Service is the operation façade: one method per capability, shared by
// the MCP and HTTP surfaces so behavior is transport-independent.
// It is stateless; every call is a single upstream round trip.
type Service struct {
	client       UpstreamClient
	convert      ConvertHTML
	logger       logger.Logger
	defaultLimit int
}

func NewService(client UpstreamClient, convert ConvertHTML, log logger.Logger, defaultLimit int) *Service {
	if log == nil {
		log = logger.Nop()
	}
	if defaultLimit < minLimit || defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &Service{
		client:       client,
		convert:      convert,
		logger:       log,
		defaultLimit: defaultLimit,
	}
}

// SearchBookmarks normalizes the request, runs the upstream search,
// deduplicates the page and shapes it into raw and escaped mirrors.
func (s *Service) SearchBookmarks(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	nq, err := req.Normalize(s.defaultLimit)
	if err != nil {
		return nil, err
	}

	page, err := s.client.SearchBookmarks(ctx, nq.Query, nq.Limit, nq.Cursor, false)
	if err != nil {
		return nil, upstreamError(err)
	}
	if page == nil {
		return nil, &errs.Service{Message: "upstream returned no payload", Status: http.StatusInternalServerError}
	}

	kept, dropped := DedupeByID(page.Bookmarks)
	if dropped > 0 {
		s.logger.Debug("dropped duplicate bookmarks from search page",
			logger.Int("dropped", dropped),
			logger.Int("kept", len(kept)))
	}

	raw := make([]BookmarkSummary, 0, len(kept))
	escaped := make([]BookmarkSummary, 0, len(kept))
	for _, bm := range kept {
		summary := Summarize(bm)
		raw = append(raw, summary)
		escaped = append(escaped, summary.Escaped())
	}

	hasMore := page.NextCursor != nil
	result := &SearchResult{
		Page: Page{
			Items:      escaped,
			Cursor:     nq.Cursor,
			NextCursor: page.NextCursor,
			HasMore:    hasMore,
		},
		Text: RenderSearchText(escaped, nq.Query, page.NextCursor),
		Raw: Page{
			Items:      raw,
			Cursor:     nq.Cursor,
			NextCursor: page.NextCursor,
			HasMore:    hasMore,
		},
	}
	return result, nil
}

// GetBookmark fetches a single record without its content body.
func (s *Service) GetBookmark(ctx context.Context, bookmarkID string) (*BookmarkResult, error) {
	bm, err := s.fetchBookmark(ctx, bookmarkID, false)
	if err != nil {
		return nil, err
	}
	return shapeBookmark(*bm), nil
}

// CreateRequest is the caller input for bookmark creation. Content is
// the URL for "link" and the body text for "text".
type CreateRequest struct {
	Type    string
	Title   *string
	Content string
}

func (s *Service) CreateBookmark(ctx context.Context, req CreateRequest) (*BookmarkResult, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, errs.NewValidation("content is required")
	}

	upstream := karakeep.CreateBookmarkRequest{Type: req.Type, Title: req.Title}
	switch req.Type {
	case karakeep.ContentTypeLink:
		upstream.URL = req.Content
	case karakeep.ContentTypeText:
		upstream.Text = req.Content
	default:
		return nil, errs.Validationf("type must be %q or %q (got %q)", karakeep.ContentTypeLink, karakeep.ContentTypeText, req.Type)
	}

	bm, err := s.client.CreateBookmark(ctx, upstream)
	if err != nil {
		return nil, upstreamError(err)
	}
	if bm == nil || bm.ID == "" {
		return nil, &errs.Service{Message: "upstream returned no bookmark", Status: http.StatusInternalServerError}
	}
	return shapeBookmark(*bm), nil
}

// GetBookmarkContent fetches the record with its content body and
// converts it to markdown: link content through the HTML converter,
// text verbatim, asset via its extracted text. Anything else is empty.
func (s *Service) GetBookmarkContent(ctx context.Context, bookmarkID string) (*BookmarkContent, error) {
	bm, err := s.fetchBookmark(ctx, bookmarkID, true)
	if err != nil {
		return nil, err
	}

	var content string
	switch bm.Content.Type {
	case karakeep.ContentTypeLink:
		if html := deref(bm.Content.HTMLContent); html != "" {
			content, err = s.convert(html)
			if err != nil {
				return nil, &errs.Unexpected{Err: fmt.Errorf("convert html to markdown: %w", err)}
			}
		}
	case karakeep.ContentTypeText:
		content = deref(bm.Content.Text)
	case karakeep.ContentTypeAsset:
		content = deref(bm.Content.Content)
	}

	return &BookmarkContent{Format: "markdown", Content: content}, nil
}

func (s *Service) GetLists(ctx context.Context) ([]ListSummary, error) {
	page, err := s.client.GetLists(ctx)
	if err != nil {
		return nil, upstreamError(err)
	}
	if page == nil {
		return nil, &errs.Service{Message: "upstream returned no payload", Status: http.StatusInternalServerError}
	}

	lists := make([]ListSummary, 0, len(page.Lists))
	for _, l := range page.Lists {
		lists = append(lists, SummarizeList(l))
	}
	return lists, nil
}

func (s *Service) CreateList(ctx context.Context, name, icon string, parentID *string) (*ListSummary, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValidation("name is required")
	}
	if strings.TrimSpace(icon) == "" {
		return nil, errs.NewValidation("icon is required")
	}

	list, err := s.client.CreateList(ctx, karakeep.CreateListRequest{Name: name, Icon: icon, ParentID: parentID})
	if err != nil {
		return nil, upstreamError(err)
	}
	if list == nil || list.ID == "" {
		return nil, &errs.Service{Message: "upstream returned no list", Status: http.StatusInternalServerError}
	}
	summary := SummarizeList(*list)
	return &summary, nil
}

func (s *Service) AddBookmarkToList(ctx context.Context, listID, bookmarkID string) (*ListMutationResult, error) {
	if err := requireIDs(listID, bookmarkID); err != nil {
		return nil, err
	}
	if err := s.client.AddBookmarkToList(ctx, listID, bookmarkID); err != nil {
		return nil, upstreamError(err)
	}
	return &ListMutationResult{
		ListID:     listID,
		BookmarkID: bookmarkID,
		Action:     "added",
		Message:    fmt.Sprintf("Added bookmark %s to list %s.", bookmarkID, listID),
	}, nil
}

func (s *Service) RemoveBookmarkFromList(ctx context.Context, listID, bookmarkID string) (*ListMutationResult, error) {
	if err := requireIDs(listID, bookmarkID); err != nil {
		return nil, err
	}
	if err := s.client.RemoveBookmarkFromList(ctx, listID, bookmarkID); err != nil {
		return nil, upstreamError(err)
	}
	return &ListMutationResult{
		ListID:     listID,
		BookmarkID: bookmarkID,
		Action:     "removed",
		Message:    fmt.Sprintf("Removed bookmark %s from list %s.", bookmarkID, listID),
	}, nil
}

// AttachTags attaches tags to a bookmark. The result echoes the input
// tag list rather than re-fetching the canonical upstream set.
func (s *Service) AttachTags(ctx context.Context, bookmarkID string, tags []string) (*TagMutationResult, error) {
	if err := validateTagInput(bookmarkID, tags); err != nil {
		return nil, err
	}
	if err := s.client.AttachTags(ctx, bookmarkID, tags); err != nil {
		return nil, upstreamError(err)
	}
	return &TagMutationResult{
		BookmarkID: bookmarkID,
		Tags:       tags,
		Action:     "attached",
		Message:    fmt.Sprintf("Attached tags %s to bookmark %s.", strings.Join(tags, ", "), bookmarkID),
	}, nil
}

func (s *Service) DetachTags(ctx context.Context, bookmarkID string, tags []string) (*TagMutationResult, error) {
	if err := validateTagInput(bookmarkID, tags); err != nil {
		return nil, err
	}
	if err := s.client.DetachTags(ctx, bookmarkID, tags); err != nil {
		return nil, upstreamError(err)
	}
	return &TagMutationResult{
		BookmarkID: bookmarkID,
		Tags:       tags,
		Action:     "detached",
		Message:    fmt.Sprintf("Detached tags %s from bookmark %s.", strings.Join(tags, ", "), bookmarkID),
	}, nil
}

func (s *Service) fetchBookmark(ctx context.Context, bookmarkID string, includeContent bool) (*karakeep.Bookmark, error) {
	if strings.TrimSpace(bookmarkID) == "" {
		return nil, errs.NewValidation("bookmarkId is required")
	}

	bm, err := s.client.GetBookmark(ctx, bookmarkID, includeContent)
	if err != nil {
		return nil, upstreamError(err)
	}
	if bm == nil || bm.ID == "" {
		return nil, &errs.Service{Message: fmt.Sprintf("bookmark %s not found", bookmarkID), Status: http.StatusNotFound}
	}
	return bm, nil
}

func shapeBookmark(bm karakeep.Bookmark) *BookmarkResult {
	raw := Summarize(bm)
	escaped := raw.Escaped()
	return &BookmarkResult{
		BookmarkSummary: escaped,
		Text:            RenderCompact(escaped),
		Raw:             raw,
	}
}

func requireIDs(listID, bookmarkID string) error {
	if strings.TrimSpace(listID) == "" {
		return errs.NewValidation("listId is required")
	}
	if strings.TrimSpace(bookmarkID) == "" {
		return errs.NewValidation("bookmarkId is required")
	}
	return nil
}

func validateTagInput(bookmarkID string, tags []string) error {
	if strings.TrimSpace(bookmarkID) == "" {
		return errs.NewValidation("bookmarkId is required")
	}
	if len(tags) == 0 {
		return errs.NewValidation("tags must not be empty")
	}
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			return errs.NewValidation("tags must not contain blank entries")
		}
	}
	return nil
}

// upstreamError maps a client failure onto the taxonomy: explicit
// upstream rejections become service errors, everything else (network,
// decode defects) is unexpected.
func upstreamError(err error) error {
	var apiErr *karakeep.APIError
	if errors.As(err, &apiErr) {
		var details any
		if len(apiErr.Raw) > 0 {
			details = json.RawMessage(apiErr.Raw)
		}
		return &errs.Service{
			Message: apiErr.Message,
			Status:  apiErr.Status,
			Code:    apiErr.Code,
			Details: details,
		}
	}
	return &errs.Unexpected{Err: err}
}
