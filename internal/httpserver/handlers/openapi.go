package handlers

import (
	"net/http"

	"github.com/grimwiz/karakeep/internal/httpserver/deps"
)

// openapiDocument is maintained by hand; it tracks the routes in
// internal/httpserver/routes.
const openapiDocument = `{
  "openapi": "3.1.0",
  "info": {
    "title": "Karakeep bookmark adapter",
    "description": "JSON surface of the Karakeep bookmark operations. Errors use {\"error\": {\"message\", \"code\", \"status\", \"details\"}} with a matching HTTP status.",
    "version": "1.0"
  },
  "paths": {
    "/api/v1/bookmarks/search": {
      "get": {
        "summary": "Search bookmarks",
        "parameters": [
          {"name": "q", "in": "query", "schema": {"type": "string"}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 100}},
          {"name": "nextCursor", "in": "query", "schema": {"type": "string"}},
          {"name": "cursor", "in": "query", "description": "Alias of nextCursor; sending both is a 400.", "schema": {"type": "string"}}
        ]
      }
    },
    "/api/v1/bookmarks": {
      "post": {"summary": "Create a link or text bookmark"}
    },
    "/api/v1/bookmarks/{bookmarkID}": {
      "get": {"summary": "Fetch one bookmark"}
    },
    "/api/v1/bookmarks/{bookmarkID}/content": {
      "get": {"summary": "Fetch bookmark content as markdown"}
    },
    "/api/v1/bookmarks/{bookmarkID}/tags": {
      "post": {"summary": "Attach tags"},
      "delete": {"summary": "Detach tags"}
    },
    "/api/v1/lists": {
      "get": {"summary": "Fetch all lists"},
      "post": {"summary": "Create a list"}
    },
    "/api/v1/lists/{listID}/bookmarks/{bookmarkID}": {
      "put": {"summary": "Add a bookmark to a list"},
      "delete": {"summary": "Remove a bookmark from a list"}
    },
    "/healthz": {
      "get": {"summary": "Liveness and build info"}
    }
  }
}`

func OpenAPI(deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(openapiDocument))
	}
}
