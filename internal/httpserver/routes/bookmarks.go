package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/grimwiz/karakeep/internal/httpserver/deps"
	"github.com/grimwiz/karakeep/internal/httpserver/handlers"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Get("/api/v1/bookmarks/search", handlers.SearchBookmarks(d))
	r.Post("/api/v1/bookmarks", handlers.CreateBookmark(d))
	r.Get("/api/v1/bookmarks/{bookmarkID}", handlers.GetBookmark(d))
	r.Get("/api/v1/bookmarks/{bookmarkID}/content", handlers.GetBookmarkContent(d))
}
