package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grimwiz/karakeep/internal/bookmarks"
	"github.com/grimwiz/karakeep/internal/httpserver/deps"
)

type listsBody struct {
	Lists []bookmarks.ListSummary `json:"lists"`
}

func GetLists(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lists, err := d.Service.GetLists(r.Context())
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, listsBody{Lists: lists})
	}
}

type createListBody struct {
	Name     string  `json:"name"`
	Icon     string  `json:"icon"`
	ParentID *string `json:"parentId"`
}

func CreateList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createListBody
		if err := decodeBody(r, &body); err != nil {
			writeError(w, r, d, err)
			return
		}

		list, err := d.Service.CreateList(r.Context(), body.Name, body.Icon, body.ParentID)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusCreated, list)
	}
}

func AddBookmarkToList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := d.Service.AddBookmarkToList(r.Context(),
			chi.URLParam(r, "listID"), chi.URLParam(r, "bookmarkID"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func RemoveBookmarkFromList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := d.Service.RemoveBookmarkFromList(r.Context(),
			chi.URLParam(r, "listID"), chi.URLParam(r, "bookmarkID"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
