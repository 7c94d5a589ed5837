// Package bookmarks is the normalization core shared by both transports:
// query normalization, deduplication, response shaping, markdown escaping
// and the operation façade. Everything here is a pure function of its
// input except the façade's upstream calls.
package bookmarks

import (
	"github.com/grimwiz/karakeep/internal/karakeep"
)

// TypeUnknown is the degraded content type for upstream kinds this
// adapter does not recognize. Unknown never fails shaping.
const TypeUnknown = "unknown"

// BookmarkSummary is the caller-facing view of one upstream bookmark.
// Type fully determines which optional fields are populated: url,
// description, author and publisher only for "link"; sourceUrl for
// "text" and "asset"; assetId and assetType only for "asset".
type BookmarkSummary struct {
	ID                  string  `json:"id"`
	CreatedAt           string  `json:"createdAt"`
	ModifiedAt          *string `json:"modifiedAt"`
	Title               *string `json:"title"`
	Summary             *string `json:"summary"`
	Note                *string `json:"note"`
	Archived            bool    `json:"archived"`
	Favourited          bool    `json:"favourited"`
	TaggingStatus       *string `json:"taggingStatus"`
	SummarizationStatus *string `json:"summarizationStatus"`
	Type                string  `json:"type"`

	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
	Author      *string `json:"author,omitempty"`
	Publisher   *string `json:"publisher,omitempty"`

	SourceURL *string `json:"sourceUrl,omitempty"`

	AssetID   *string `json:"assetId,omitempty"`
	AssetType *string `json:"assetType,omitempty"`

	Tags []string `json:"tags"`
}

// Page is one page of summaries plus its pagination state. It doubles as
// the raw (unescaped) mirror inside SearchResult.
type Page struct {
	Items      []BookmarkSummary `json:"items"`
	Cursor     *string           `json:"cursor"`
	NextCursor *string           `json:"nextCursor"`
	HasMore    bool              `json:"hasMore"`
}

// SearchResult is the envelope returned by the search operation. The
// embedded Page holds markdown-escaped summaries; Raw mirrors the same
// page with upstream values untouched. HasMore is always derived from
// NextCursor.
type SearchResult struct {
	Page
	Text string `json:"text"`
	Raw  Page   `json:"raw"`
}

// BookmarkResult wraps a single shaped bookmark with its compact text
// form and the unescaped mirror.
type BookmarkResult struct {
	BookmarkSummary
	Text string          `json:"text"`
	Raw  BookmarkSummary `json:"raw"`
}

type ListSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	ParentID *string `json:"parentId"`
	Type     *string `json:"type,omitempty"`
}

type TagMutationResult struct {
	BookmarkID string   `json:"bookmarkId"`
	Tags       []string `json:"tags"`
	Action     string   `json:"action"` // "attached" | "detached"
	Message    string   `json:"message"`
}

type ListMutationResult struct {
	ListID     string `json:"listId"`
	BookmarkID string `json:"bookmarkId"`
	Action     string `json:"action"` // "added" | "removed"
	Message    string `json:"message"`
}

type BookmarkContent struct {
	Format  string `json:"format"` // always "markdown"
	Content string `json:"content"`
}

// Summarize maps one upstream bookmark record to its caller-facing view.
// It never fails: unrecognized content types come back as "unknown" with
// no type-specific fields set.
func Summarize(bm karakeep.Bookmark) BookmarkSummary {
	s := BookmarkSummary{
		ID:                  bm.ID,
		CreatedAt:           bm.CreatedAt,
		ModifiedAt:          bm.ModifiedAt,
		Title:               bm.Title,
		Summary:             bm.Summary,
		Note:                bm.Note,
		Archived:            bm.Archived,
		Favourited:          bm.Favourited,
		TaggingStatus:       bm.TaggingStatus,
		SummarizationStatus: bm.SummarizationStatus,
		Tags:                tagNames(bm.Tags),
	}

	switch bm.Content.Type {
	case karakeep.ContentTypeLink:
		s.Type = karakeep.ContentTypeLink
		s.URL = bm.Content.URL
		s.Description = bm.Content.Description
		s.Author = bm.Content.Author
		s.Publisher = bm.Content.Publisher
		if s.Title == nil {
			s.Title = bm.Content.Title
		}
	case karakeep.ContentTypeText:
		s.Type = karakeep.ContentTypeText
		s.SourceURL = bm.Content.SourceURL
	case karakeep.ContentTypeAsset:
		s.Type = karakeep.ContentTypeAsset
		s.SourceURL = bm.Content.SourceURL
		s.AssetID = bm.Content.AssetID
		s.AssetType = bm.Content.AssetType
	default:
		s.Type = TypeUnknown
	}

	return s
}

// SummarizeList is a passthrough shape for upstream lists.
func SummarizeList(l karakeep.List) ListSummary {
	return ListSummary{
		ID:       l.ID,
		Name:     l.Name,
		Icon:     l.Icon,
		ParentID: l.ParentID,
		Type:     l.Type,
	}
}

// tagNames keeps upstream order, duplicates included.
func tagNames(tags []karakeep.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}
