package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/orgcat/internal/domain"
	"github.com/MrSnakeDoc/orgcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/orgcat/internal/index"
	"github.com/MrSnakeDoc/orgcat/internal/view"
)

// Catalog serves the filtered, ranked repository list.
//
// Query parameters: q (search), lang, view (public|private), language,
// category, updatedWithinDays, minStars, hasImage, includeArchived.
func Catalog(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := parseCatalogRequest(r, d)
		if err != "" {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		if req.View == index.ViewPrivate && !d.CatalogIndex.PrivateReady() {
			writeError(w, http.StatusUnauthorized, "private view requires a verified token")
			return
		}

		snap := d.Controller.Apply(r.Context(), req)
		writeJSON(w, http.StatusOK, snap)
	}
}

// parseCatalogRequest maps query parameters onto a view request.
// The error return is a client-facing message, empty on success.
func parseCatalogRequest(r *http.Request, d deps.Deps) (view.Request, string) {
	q := r.URL.Query()

	lang := normalizeRequestLang(q.Get("lang"), d)

	req := view.Request{
		Query: strings.TrimSpace(q.Get("q")),
		Lang:  lang,
		View:  index.ParseView(q.Get("view")),
		Criteria: domain.Criteria{
			Language:        strings.TrimSpace(q.Get("language")),
			Category:        strings.TrimSpace(q.Get("category")),
			HasImage:        q.Get("hasImage") == "true",
			IncludeArchived: q.Get("includeArchived") == "true",
		},
	}

	if v := q.Get("updatedWithinDays"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return view.Request{}, "updatedWithinDays must be a non-negative integer"
		}
		req.Criteria.UpdatedWithinDays = days
	}

	if v := q.Get("minStars"); v != "" {
		stars, err := strconv.Atoi(v)
		if err != nil || stars < 0 {
			return view.Request{}, "minStars must be a non-negative integer"
		}
		req.Criteria.MinStars = stars
	}

	return req, ""
}

// normalizeRequestLang folds the requested language onto the supported
// set, falling back to the default.
func normalizeRequestLang(lang string, d deps.Deps) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	if l == "" {
		return d.DefaultLang
	}
	for _, supported := range d.SupportedLangs {
		if strings.EqualFold(supported, l) {
			return l
		}
	}
	return d.DefaultLang
}
