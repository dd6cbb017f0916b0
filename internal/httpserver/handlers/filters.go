package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/orgcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/orgcat/internal/index"
)

type filtersResponse struct {
	Languages  []string `json:"languages"`
	Categories []string `json:"categories"`
	Langs      []string `json:"langs"`
}

// Filters serves the filter option lists for the requested view.
func Filters(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := index.ParseView(r.URL.Query().Get("view"))

		if v == index.ViewPrivate && !d.CatalogIndex.PrivateReady() {
			writeError(w, http.StatusUnauthorized, "private view requires a verified token")
			return
		}

		writeJSON(w, http.StatusOK, filtersResponse{
			Languages:  d.CatalogIndex.Languages(v),
			Categories: d.CatalogIndex.Categories(v),
			Langs:      d.SupportedLangs,
		})
	}
}
