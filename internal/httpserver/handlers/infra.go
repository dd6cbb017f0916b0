package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/orgcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/orgcat/internal/index"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	ReposLoaded *int   `json:"repos_loaded,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	ServiceMode string                     `json:"service_mode"`
	Components  map[string]componentStatus `json:"components"`
}

// Infra reports per-component status for operators.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reposCount := d.CatalogIndex.Count(index.ViewPublic)
		lastReload := d.CatalogIndex.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:          reposCount > 0,
				ReposLoaded: &reposCount,
				LastReload:  lastReloadStr,
			},
			"redis": checkRedis(d),
			"auth": {
				OK:   d.AuthBaseURL != "",
				Mode: authMode(d),
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			ServiceMode: determineServiceMode(components),
			Components:  components,
		})
	}
}

func authMode(d deps.Deps) string {
	if d.AuthBaseURL == "" {
		return "public-only"
	}
	return "oauth-bridge"
}

func determineServiceMode(components map[string]componentStatus) string {
	if catalog, exists := components["catalog"]; exists && !catalog.OK {
		return "critical" // no catalog loaded = nothing to serve
	}
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded" // translation caches won't survive restarts
	}
	return "nominal"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "translation-cache-memory-only",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "translation-cache-not-persisted",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "translation-cache-persisted",
	}
}
