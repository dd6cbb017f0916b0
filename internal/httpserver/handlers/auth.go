package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/orgcat/internal/github"
	"github.com/MrSnakeDoc/orgcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/orgcat/internal/logger"
)

type tokenRequest struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	OK    bool `json:"ok"`
	Count int  `json:"count"`
}

type loginURLResponse struct {
	URL string `json:"url"`
}

// AuthToken verifies an OAuth access token against the organization and
// loads the private repository list into the index.
func AuthToken(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.AuthBaseURL == "" || d.OrgName == "" {
			writeError(w, http.StatusNotFound, "private catalog access is not configured")
			return
		}

		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		token := strings.TrimSpace(req.Token)
		if token == "" {
			writeError(w, http.StatusBadRequest, "token is required")
			return
		}

		ctx := r.Context()
		bridge := d.NewAuthBridge(token)

		if err := bridge.VerifyMembership(ctx, d.OrgName); err != nil {
			d.Logger.Warn("membership verification failed",
				logger.String("org", d.OrgName),
				logger.Error(err))
			writeError(w, http.StatusUnauthorized, "not authorized for this organization")
			return
		}

		repos, err := bridge.ListPrivateRepos(ctx, d.OrgName)
		if err != nil {
			d.Logger.Warn("private repository listing failed",
				logger.String("org", d.OrgName),
				logger.Error(err))
			if errors.Is(err, github.ErrNotAuthorized) {
				writeError(w, http.StatusUnauthorized, "not authorized for this organization")
			} else {
				writeError(w, http.StatusBadGateway, "could not load private repositories")
			}
			return
		}

		d.CatalogIndex.SetPrivate(repos)
		d.Logger.Info("private catalog loaded",
			logger.String("org", d.OrgName),
			logger.Int("repos", len(repos)))

		writeJSON(w, http.StatusOK, tokenResponse{OK: true, Count: len(repos)})
	}
}

// AuthSignOut drops the private repository list.
func AuthSignOut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.CatalogIndex.ClearPrivate()
		d.Logger.Info("private catalog cleared")
		w.WriteHeader(http.StatusNoContent)
	}
}

// AuthLoginURL hands the client the edge handler's login URL for the
// OAuth popup.
func AuthLoginURL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url := github.LoginURL(d.AuthBaseURL, r.URL.Query().Get("returnTo"))
		if url == "" {
			writeError(w, http.StatusNotFound, "private catalog access is not configured")
			return
		}
		writeJSON(w, http.StatusOK, loginURLResponse{URL: url})
	}
}
