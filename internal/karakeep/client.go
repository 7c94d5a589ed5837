// Package karakeep implements the REST client for the upstream Karakeep
// API. It speaks /api/v1 with bearer auth and reports every
// upstream-signaled failure as an *APIError; transport-level failures
// surface as plain errors.
package karakeep

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/grimwiz/karakeep/internal/logger"
)

// APIError is an error the upstream API signaled explicitly: a non-2xx
// status, an {error:{...}} envelope, or an undecodable body. The façade
// maps it to the service-error kind.
type APIError struct {
	Status  int
	Code    string
	Message string
	Raw     json.RawMessage // upstream error payload, kept for diagnostics
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("karakeep: %s (code=%s, status=%d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("karakeep: %s (status=%d)", e.Message, e.Status)
}

// errorEnvelope matches the upstream failure body. All fields optional;
// extraction tolerates any of them missing.
type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

type ClientOptions struct {
	APIAddr   string // base address without the /api/v1 suffix
	APIKey    string
	UserAgent string
	Timeout   time.Duration
}

type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(opts ClientOptions, log logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.APIAddr, "/") + "/api/v1",
		apiKey:     opts.APIKey,
		userAgent:  opts.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// SearchBookmarks runs GET /bookmarks/search. The query is passed through
// verbatim; normalization happens in the façade layer.
func (c *Client) SearchBookmarks(ctx context.Context, query string, limit int, cursor *string, includeContent bool) (*SearchPage, error) {
	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if cursor != nil && *cursor != "" {
		params.Set("cursor", *cursor)
	}
	params.Set("includeContent", strconv.FormatBool(includeContent))

	var page SearchPage
	if err := c.do(ctx, http.MethodGet, "/bookmarks/search", params, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetBookmark(ctx context.Context, bookmarkID string, includeContent bool) (*Bookmark, error) {
	params := url.Values{}
	params.Set("includeContent", strconv.FormatBool(includeContent))

	var bm Bookmark
	if err := c.do(ctx, http.MethodGet, "/bookmarks/"+url.PathEscape(bookmarkID), params, nil, &bm); err != nil {
		return nil, err
	}
	return &bm, nil
}

func (c *Client) CreateBookmark(ctx context.Context, req CreateBookmarkRequest) (*Bookmark, error) {
	var bm Bookmark
	if err := c.do(ctx, http.MethodPost, "/bookmarks", nil, req, &bm); err != nil {
		return nil, err
	}
	return &bm, nil
}

func (c *Client) GetLists(ctx context.Context) (*ListsPage, error) {
	var page ListsPage
	if err := c.do(ctx, http.MethodGet, "/lists", nil, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) CreateList(ctx context.Context, req CreateListRequest) (*List, error) {
	var list List
	if err := c.do(ctx, http.MethodPost, "/lists", nil, req, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) AddBookmarkToList(ctx context.Context, listID, bookmarkID string) error {
	path := "/lists/" + url.PathEscape(listID) + "/bookmarks/" + url.PathEscape(bookmarkID)
	return c.do(ctx, http.MethodPut, path, nil, nil, nil)
}

func (c *Client) RemoveBookmarkFromList(ctx context.Context, listID, bookmarkID string) error {
	path := "/lists/" + url.PathEscape(listID) + "/bookmarks/" + url.PathEscape(bookmarkID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) AttachTags(ctx context.Context, bookmarkID string, tags []string) error {
	path := "/bookmarks/" + url.PathEscape(bookmarkID) + "/tags"
	return c.do(ctx, http.MethodPost, path, nil, tagBody(tags), nil)
}

func (c *Client) DetachTags(ctx context.Context, bookmarkID string, tags []string) error {
	path := "/bookmarks/" + url.PathEscape(bookmarkID) + "/tags"
	return c.do(ctx, http.MethodDelete, path, nil, tagBody(tags), nil)
}

func tagBody(tags []string) tagMutationRequest {
	refs := make([]tagRef, 0, len(tags))
	for _, t := range tags {
		refs = append(refs, tagRef{TagName: t})
	}
	return tagMutationRequest{Tags: refs}
}

// do performs one upstream round trip. No retries: a failed call surfaces
// immediately so both transports report it in the same request.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	fullURL := c.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed",
			logger.String("method", method),
			logger.String("path", path),
			logger.Duration("duration", time.Since(start)),
			logger.Error(err))
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read upstream response: %w", err)
	}

	c.logger.Debug("upstream request",
		logger.String("method", method),
		logger.String("path", path),
		logger.Int("status", resp.StatusCode),
		logger.Int("bytes", len(respBody)),
		logger.Duration("duration", time.Since(start)))

	if apiErr := extractError(resp.StatusCode, respBody); apiErr != nil {
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("decode response: %v", err),
		}
	}
	return nil
}

// extractError is the single routine converting an upstream failure into
// an *APIError. A response fails when its status is non-2xx or when the
// body carries an {error:{...}} envelope; every envelope field may be
// missing.
func extractError(status int, body []byte) *APIError {
	var env errorEnvelope
	if len(body) > 0 {
		// Best effort; a non-JSON error body still yields a usable APIError.
		_ = json.Unmarshal(body, &env)
	}

	if status >= 200 && status < 300 && env.Error == nil {
		return nil
	}

	apiErr := &APIError{Status: status}
	if env.Error != nil {
		apiErr.Message = env.Error.Message
		apiErr.Code = env.Error.Code
		apiErr.Raw = json.RawMessage(body)
		if apiErr.Status >= 200 && apiErr.Status < 300 {
			// Error envelope on a 2xx response; treat as server-side failure.
			apiErr.Status = http.StatusInternalServerError
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("upstream returned status %d", status)
	}
	return apiErr
}
