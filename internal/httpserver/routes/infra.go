package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/grimwiz/karakeep/internal/httpserver/deps"
	"github.com/grimwiz/karakeep/internal/httpserver/handlers"
)

func init() { Register(registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/openapi.json", handlers.OpenAPI(d))
}
