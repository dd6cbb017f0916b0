package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/orgcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/orgcat/internal/httpserver/handlers"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.Post("/api/reload", handlers.Reload(d))
}
