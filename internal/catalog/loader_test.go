package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
	"generatedAt": "2026-02-01T00:00:00Z",
	"org": "acme",
	"repos": [
		{"name": "sandbox", "fullName": "acme/sandbox", "topics": ["azure"]},
		{"name": "widgets", "fullName": "acme/widgets", "archived": true}
	]
}`

func TestLoaderFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	doc, err := NewLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "acme", doc.Org)
	assert.Len(t, doc.Repos, 2)
	assert.Equal(t, "sandbox", doc.Repos[0].Name)
}

func TestLoaderFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	doc, err := NewLoader(srv.URL + "/catalog.json").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "acme", doc.Org)
}

func TestLoaderHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewLoader(srv.URL).Load(context.Background())
	assert.Error(t, err)
}

func TestLoaderMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewLoader(path).Load(context.Background())
	assert.Error(t, err)
}

func TestLoaderMissingFile(t *testing.T) {
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.json")).Load(context.Background())
	assert.Error(t, err)
}
