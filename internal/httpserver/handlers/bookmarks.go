package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/grimwiz/karakeep/internal/bookmarks"
	"github.com/grimwiz/karakeep/internal/errs"
	"github.com/grimwiz/karakeep/internal/httpserver/deps"
)

// SearchBookmarks handles GET /api/v1/bookmarks/search. The pagination
// token is accepted as either ?nextCursor= or ?cursor=; sending both is
// rejected.
func SearchBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		req := bookmarks.SearchRequest{Query: q.Get("q")}
		if v := q.Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				writeError(w, r, d, errs.Validationf("limit must be an integer (got %q)", v))
				return
			}
			req.Limit = n
		} else {
			req.Limit = d.SearchLimit
		}
		if v := q.Get("cursor"); v != "" {
			req.Cursor = &v
		}
		if v := q.Get("nextCursor"); v != "" {
			req.NextCursor = &v
		}

		result, err := d.Service.SearchBookmarks(r.Context(), req)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func GetBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := d.Service.GetBookmark(r.Context(), chi.URLParam(r, "bookmarkID"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

type createBookmarkBody struct {
	Type    string  `json:"type"`
	Title   *string `json:"title"`
	Content string  `json:"content"`
}

func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createBookmarkBody
		if err := decodeBody(r, &body); err != nil {
			writeError(w, r, d, err)
			return
		}

		result, err := d.Service.CreateBookmark(r.Context(), bookmarks.CreateRequest{
			Type:    body.Type,
			Title:   body.Title,
			Content: body.Content,
		})
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusCreated, result)
	}
}

func GetBookmarkContent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := d.Service.GetBookmarkContent(r.Context(), chi.URLParam(r, "bookmarkID"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
