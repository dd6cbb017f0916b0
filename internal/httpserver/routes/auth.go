package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/orgcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/orgcat/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/orgcat/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             5,
		RefillPerIPPerMin: 10,
		MaxEntries:        10_000,
		TrustProxy:        d.TrustProxy,
	})

	r.With(limit).Post("/api/auth/token", handlers.AuthToken(d))
	r.Delete("/api/auth/token", handlers.AuthSignOut(d))
	r.Get("/api/auth/login-url", handlers.AuthLoginURL(d))
}
