package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/orgcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/orgcat/internal/httpserver/handlers"
)

func init() { Register(registerCatalog) }

func registerCatalog(r chi.Router, d deps.Deps) {
	r.Get("/api/catalog", handlers.Catalog(d))
	r.Get("/api/filters", handlers.Filters(d))
}
