package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grimwiz/karakeep/internal/httpserver/deps"
)

type tagsBody struct {
	Tags []string `json:"tags"`
}

func AttachTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body tagsBody
		if err := decodeBody(r, &body); err != nil {
			writeError(w, r, d, err)
			return
		}

		result, err := d.Service.AttachTags(r.Context(), chi.URLParam(r, "bookmarkID"), body.Tags)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func DetachTags(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body tagsBody
		if err := decodeBody(r, &body); err != nil {
			writeError(w, r, d, err)
			return
		}

		result, err := d.Service.DetachTags(r.Context(), chi.URLParam(r, "bookmarkID"), body.Tags)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
