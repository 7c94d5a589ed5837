package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/grimwiz/karakeep/internal/httpserver/deps"
	"github.com/grimwiz/karakeep/internal/httpserver/handlers"
)

func init() { Register(registerTags) }

func registerTags(r chi.Router, d deps.Deps) {
	r.Post("/api/v1/bookmarks/{bookmarkID}/tags", handlers.AttachTags(d))
	r.Delete("/api/v1/bookmarks/{bookmarkID}/tags", handlers.DetachTags(d))
}
