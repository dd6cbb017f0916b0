package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/orgcat/internal/domain"
	"github.com/MrSnakeDoc/orgcat/internal/httpserver/deps"
	"github.com/MrSnakeDoc/orgcat/internal/index"
	"github.com/MrSnakeDoc/orgcat/internal/logger"
	"github.com/MrSnakeDoc/orgcat/internal/translate"
	"github.com/MrSnakeDoc/orgcat/internal/uilabels"
	"github.com/MrSnakeDoc/orgcat/internal/view"
)

func newTestDeps(t *testing.T) deps.Deps {
	t.Helper()

	idx := index.NewCatalogIndex()
	idx.SetPublic([]*domain.Repository{
		{Name: "widget-parser", Description: "Parses widget manifests", Language: "Go", Stars: 12, UpdatedAt: time.Now().Add(-time.Hour)},
		{Name: "gadget-ui", Description: "Widget dashboard", Language: "TypeScript", Stars: 3, UpdatedAt: time.Now().Add(-time.Hour)},
	}, "acme", time.Now())

	translator := translate.NewService(nil, nil, "en", logger.Nop())
	ctrl := view.NewController(idx, translator, uilabels.Defaults(), logger.Nop())

	return deps.Deps{
		Logger:         logger.Nop(),
		StartTime:      time.Now(),
		OrgName:        "acme",
		DefaultLang:    "en",
		SupportedLangs: []string{"en", "es", "pt", "fr"},
		CatalogIndex:   idx,
		Controller:     ctrl,
		Translator:     translator,
	}
}

func TestCatalogDefaults(t *testing.T) {
	d := newTestDeps(t)

	rec := httptest.NewRecorder()
	Catalog(d)(rec, httptest.NewRequest("GET", "/api/catalog", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalCount":2`)
	assert.Contains(t, rec.Body.String(), `"lang":"en"`)
	assert.Contains(t, rec.Body.String(), "2 of 2 public repositories")
}

func TestCatalogSearchAndFilters(t *testing.T) {
	d := newTestDeps(t)

	rec := httptest.NewRecorder()
	Catalog(d)(rec, httptest.NewRequest("GET", "/api/catalog?q=widget&language=Go", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "widget-parser")
	assert.NotContains(t, body, "gadget-ui")
}

func TestCatalogUnsupportedLangFallsBack(t *testing.T) {
	d := newTestDeps(t)

	rec := httptest.NewRecorder()
	Catalog(d)(rec, httptest.NewRequest("GET", "/api/catalog?lang=de", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `"lang":"en"`)
}

func TestCatalogBadParams(t *testing.T) {
	d := newTestDeps(t)

	for _, target := range []string{
		"/api/catalog?updatedWithinDays=soon",
		"/api/catalog?updatedWithinDays=-1",
		"/api/catalog?minStars=lots",
	} {
		rec := httptest.NewRecorder()
		Catalog(d)(rec, httptest.NewRequest("GET", target, nil))
		assert.Equal(t, 400, rec.Code, target)
	}
}

func TestCatalogPrivateViewRequiresAuth(t *testing.T) {
	d := newTestDeps(t)

	rec := httptest.NewRecorder()
	Catalog(d)(rec, httptest.NewRequest("GET", "/api/catalog?view=private", nil))
	require.Equal(t, 401, rec.Code)

	d.CatalogIndex.SetPrivate([]*domain.Repository{
		{Name: "secret-tool", Private: true, UpdatedAt: time.Now()},
	})

	rec = httptest.NewRecorder()
	Catalog(d)(rec, httptest.NewRequest("GET", "/api/catalog?view=private", nil))
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "secret-tool")
	assert.Contains(t, rec.Body.String(), "private repositories")
}

func TestFilters(t *testing.T) {
	d := newTestDeps(t)

	rec := httptest.NewRecorder()
	Filters(d)(rec, httptest.NewRequest("GET", "/api/filters", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"languages":["Go","TypeScript"]`)
	assert.Contains(t, body, `"langs":["en","es","pt","fr"]`)
}

func TestFiltersPrivateViewRequiresAuth(t *testing.T) {
	d := newTestDeps(t)

	rec := httptest.NewRecorder()
	Filters(d)(rec, httptest.NewRequest("GET", "/api/filters?view=private", nil))
	assert.Equal(t, 401, rec.Code)
}

func TestReadyz(t *testing.T) {
	d := newTestDeps(t)

	rec := httptest.NewRecorder()
	Readyz(d)(rec, httptest.NewRequest("GET", "/readyz", nil))
	assert.Equal(t, 200, rec.Code)

	empty := newTestDeps(t)
	empty.CatalogIndex = index.NewCatalogIndex()
	rec = httptest.NewRecorder()
	Readyz(empty)(rec, httptest.NewRequest("GET", "/readyz", nil))
	assert.Equal(t, 503, rec.Code)
}

func TestReloadTrigger(t *testing.T) {
	d := newTestDeps(t)
	d.ReloadTrigger = make(chan struct{}, 1)

	rec := httptest.NewRecorder()
	Reload(d)(rec, httptest.NewRequest("POST", "/api/reload", nil))
	assert.Equal(t, 202, rec.Code)

	// Trigger still pending, second request is throttled.
	rec = httptest.NewRecorder()
	Reload(d)(rec, httptest.NewRequest("POST", "/api/reload", nil))
	assert.Equal(t, 429, rec.Code)
}
