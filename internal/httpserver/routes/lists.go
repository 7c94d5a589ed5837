package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/grimwiz/karakeep/internal/httpserver/deps"
	"github.com/grimwiz/karakeep/internal/httpserver/handlers"
)

func init() { Register(registerLists) }

func registerLists(r chi.Router, d deps.Deps) {
	r.Get("/api/v1/lists", handlers.GetLists(d))
	r.Post("/api/v1/lists", handlers.CreateList(d))
	r.Put("/api/v1/lists/{listID}/bookmarks/{bookmarkID}", handlers.AddBookmarkToList(d))
	r.Delete("/api/v1/lists/{listID}/bookmarks/{bookmarkID}", handlers.RemoveBookmarkFromList(d))
}
