package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/orgcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/orgcat/internal/index"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz reports ready once the public catalog has been loaded.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ready := !d.CatalogIndex.LastReload().IsZero() &&
			d.CatalogIndex.Count(index.ViewPublic) > 0

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{Ready: ready})
	}
}
