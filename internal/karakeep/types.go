package karakeep

// Wire types for the Karakeep REST API (/api/v1). Optional upstream fields
// are pointers so that absent and empty values stay distinguishable.

// ContentTypeLink, ContentTypeText and ContentTypeAsset are the known
// bookmark content kinds. Anything else degrades downstream to "unknown".
const (
	ContentTypeLink  = "link"
	ContentTypeText  = "text"
	ContentTypeAsset = "asset"
)

type Tag struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AttachedBy string `json:"attachedBy,omitempty"`
}

// Content is the type-tagged union inside a bookmark. Which fields are
// populated depends on Type; decoding keeps whatever upstream sent.
type Content struct {
	Type string `json:"type"`

	// link
	URL         *string `json:"url,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Author      *string `json:"author,omitempty"`
	Publisher   *string `json:"publisher,omitempty"`
	HTMLContent *string `json:"htmlContent,omitempty"`

	// text
	Text *string `json:"text,omitempty"`

	// text and asset
	SourceURL *string `json:"sourceUrl,omitempty"`

	// asset
	AssetType *string `json:"assetType,omitempty"`
	AssetID   *string `json:"assetId,omitempty"`
	FileName  *string `json:"fileName,omitempty"`
	Content   *string `json:"content,omitempty"` // extracted text for assets
}

type Bookmark struct {
	ID                  string  `json:"id"`
	CreatedAt           string  `json:"createdAt"`
	ModifiedAt          *string `json:"modifiedAt"`
	Title               *string `json:"title"`
	Archived            bool    `json:"archived"`
	Favourited          bool    `json:"favourited"`
	TaggingStatus       *string `json:"taggingStatus"`
	SummarizationStatus *string `json:"summarizationStatus"`
	Note                *string `json:"note"`
	Summary             *string `json:"summary"`
	Tags                []Tag   `json:"tags"`
	Content             Content `json:"content"`
}

type List struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	ParentID *string `json:"parentId"`
	Type     *string `json:"type,omitempty"`
}

// SearchPage is one page of search results. NextCursor is nil on the
// last page.
type SearchPage struct {
	Bookmarks  []Bookmark `json:"bookmarks"`
	NextCursor *string    `json:"nextCursor"`
}

type ListsPage struct {
	Lists []List `json:"lists"`
}

// CreateBookmarkRequest is the body of POST /bookmarks. Type selects the
// variant: URL for "link", Text for "text".
type CreateBookmarkRequest struct {
	Type  string  `json:"type"`
	URL   string  `json:"url,omitempty"`
	Text  string  `json:"text,omitempty"`
	Title *string `json:"title,omitempty"`
}

type CreateListRequest struct {
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	ParentID *string `json:"parentId,omitempty"`
}

type tagRef struct {
	TagName string `json:"tagName"`
}

type tagMutationRequest struct {
	Tags []tagRef `json:"tags"`
}
