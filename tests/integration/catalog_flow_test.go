package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	gh "github.com/google/go-github/v53/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/orgcat/internal/github"
	"github.com/MrSnakeDoc/orgcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/orgcat/internal/httpserver/routes"
	"github.com/MrSnakeDoc/orgcat/internal/index"
	"github.com/MrSnakeDoc/orgcat/internal/logger"
	"github.com/MrSnakeDoc/orgcat/internal/scheduler"
	"github.com/MrSnakeDoc/orgcat/internal/translate"
	"github.com/MrSnakeDoc/orgcat/internal/uilabels"
	"github.com/MrSnakeDoc/orgcat/internal/view"
)

const catalogDoc = `{
	"generatedAt": "2026-08-01T10:00:00Z",
	"org": "acme",
	"repos": [
		{"name": "widget-parser", "description": "Parses widget manifests", "topics": ["parser"], "language": "Go", "stargazersCount": 12, "updatedAt": "2026-07-30T00:00:00Z"},
		{"name": "gadget-ui", "description": "Widget dashboard", "topics": ["ui"], "language": "TypeScript", "stargazersCount": 3, "updatedAt": "2026-01-01T00:00:00Z"},
		{"name": "old-widget", "description": "Legacy widget code", "archived": true, "updatedAt": "2020-01-01T00:00:00Z"}
	]
}`

type stack struct {
	api    *httptest.Server
	idx    *index.CatalogIndex
	svc    *translate.Service
	reload chan struct{}
}

// newStack wires a full service against fake catalog, translation and
// GitHub backends and serves the real router.
func newStack(t *testing.T) *stack {
	t.Helper()

	catalogSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, catalogDoc)
	}))
	t.Cleanup(catalogSrv.Close)

	translateSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			To    string   `json:"to"`
			Texts []string `json:"texts"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		out := make([]string, len(req.Texts))
		for i, text := range req.Texts {
			out[i] = "[" + req.To + "] " + text
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "to": req.To, "translations": out})
	}))
	t.Cleanup(translateSrv.Close)

	githubSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/user/memberships/orgs/"):
			fmt.Fprint(w, `{"state":"active","role":"member"}`)
		case strings.HasPrefix(r.URL.Path, "/orgs/acme/repos"):
			fmt.Fprint(w, `[{"name":"secret-tool","full_name":"acme/secret-tool","private":true,"language":"Go","pushed_at":"2026-08-10T00:00:00Z"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(githubSrv.Close)

	idx := index.NewCatalogIndex()
	labels := uilabels.Defaults()
	svc := translate.NewService(translate.NewClient(translateSrv.URL), nil, "en", logger.Nop())
	for lang, entries := range labels.Builtin {
		svc.Seed(lang, entries)
	}
	ctrl := view.NewController(idx, svc, labels, logger.Nop())

	reload := make(chan struct{}, 1)
	reloader := scheduler.NewCatalogReloader(catalogSrv.URL, idx, logger.Nop(), time.Hour, reload)
	require.NoError(t, reloader.Reload(context.Background()))

	d := deps.Deps{
		Logger:         logger.Nop(),
		StartTime:      time.Now(),
		OrgName:        "acme",
		AuthBaseURL:    "https://auth.example.com",
		DefaultLang:    "en",
		SupportedLangs: []string{"en", "es", "pt", "fr"},
		CatalogIndex:   idx,
		Controller:     ctrl,
		Translator:     svc,
		NewAuthBridge: func(token string) deps.AuthBridge {
			client := gh.NewClient(nil)
			base, err := url.Parse(githubSrv.URL + "/")
			require.NoError(t, err)
			client.BaseURL = base
			return github.NewBridgeWithClient(client)
		},
		ReloadTrigger: reload,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)
	api := httptest.NewServer(r)
	t.Cleanup(api.Close)

	return &stack{api: api, idx: idx, svc: svc, reload: reload}
}

func getJSON(t *testing.T, client *http.Client, url string, out any) int {
	t.Helper()
	res, err := client.Get(url)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

func TestCatalogBrowseFlow(t *testing.T) {
	s := newStack(t)
	client := s.api.Client()

	var snap view.Snapshot
	status := getJSON(t, client, s.api.URL+"/api/catalog", &snap)
	require.Equal(t, 200, status)
	assert.Equal(t, 3, snap.TotalCount)
	require.Len(t, snap.Repos, 2) // archived repo hidden by default
	assert.Equal(t, "acme", snap.Org)
	assert.Equal(t, "2 of 3 public repositories", snap.Status)

	status = getJSON(t, client, s.api.URL+"/api/catalog?q=widget", &snap)
	require.Equal(t, 200, status)
	require.Len(t, snap.Repos, 2)
	assert.Equal(t, "widget-parser", snap.Repos[0].Name)

	var filters struct {
		Languages  []string `json:"languages"`
		Categories []string `json:"categories"`
	}
	status = getJSON(t, client, s.api.URL+"/api/filters", &filters)
	require.Equal(t, 200, status)
	assert.Equal(t, []string{"Go", "TypeScript"}, filters.Languages)
	assert.Contains(t, filters.Categories, "parser")
}

func TestTranslatedBrowseFlow(t *testing.T) {
	s := newStack(t)
	client := s.api.Client()

	var snap view.Snapshot
	status := getJSON(t, client, s.api.URL+"/api/catalog?lang=es", &snap)
	require.Equal(t, 200, status)
	// Seeded chrome labels translate immediately.
	assert.Equal(t, "2 de 3 públicos repositorios", snap.Status)

	// Repo content converges once the background fetch lands.
	require.Eventually(t, func() bool {
		var again view.Snapshot
		if getJSON(t, client, s.api.URL+"/api/catalog?lang=es", &again) != 200 {
			return false
		}
		return len(again.Repos) > 0 && strings.HasPrefix(again.Repos[0].Description, "[es] ")
	}, 3*time.Second, 25*time.Millisecond)
}

func TestPrivateCatalogFlow(t *testing.T) {
	s := newStack(t)
	client := s.api.Client()

	// Locked before a token is verified.
	status := getJSON(t, client, s.api.URL+"/api/catalog?view=private", nil)
	require.Equal(t, 401, status)

	res, err := client.Post(s.api.URL+"/api/auth/token", "application/json",
		strings.NewReader(`{"token":"gho_test"}`))
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	require.Equal(t, 200, res.StatusCode)

	var snap view.Snapshot
	status = getJSON(t, client, s.api.URL+"/api/catalog?view=private", &snap)
	require.Equal(t, 200, status)
	require.Len(t, snap.Repos, 1)
	assert.Equal(t, "secret-tool", snap.Repos[0].Name)

	req, err := http.NewRequest(http.MethodDelete, s.api.URL+"/api/auth/token", nil)
	require.NoError(t, err)
	res, err = client.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, 204, res.StatusCode)

	status = getJSON(t, client, s.api.URL+"/api/catalog?view=private", nil)
	assert.Equal(t, 401, status)
}

func TestReloadEndpoint(t *testing.T) {
	s := newStack(t)
	client := s.api.Client()

	res, err := client.Post(s.api.URL+"/api/reload", "", nil)
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, 202, res.StatusCode)

	// Nobody drains the trigger in this setup, so a second request
	// reports a reload in progress.
	res, err = client.Post(s.api.URL+"/api/reload", "", nil)
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, 429, res.StatusCode)
}
