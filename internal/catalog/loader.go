package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/MrSnakeDoc/orgcat/internal/utils"
)

const maxCatalogBytes = 32 << 20 // refuse absurdly large documents

// Loader fetches and parses the generated catalog.json.
// The source may be a local file path or an HTTP(S) URL.
type Loader struct {
	source string
	client *http.Client
}

// NewLoader creates a loader for the given source.
func NewLoader(source string) *Loader {
	return &Loader{
		source: source,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Source returns the configured catalog source.
func (l *Loader) Source() string {
	return l.source
}

// Load reads and parses the catalog document.
func (l *Loader) Load(ctx context.Context) (*Document, error) {
	data, err := l.read(ctx)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog json: %w", err)
	}

	return &doc, nil
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(l.source, "http://") || strings.HasPrefix(l.source, "https://") {
		return l.fetch(ctx)
	}

	data, err := os.ReadFile(l.source)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	res, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	defer utils.Close(res.Body)

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog fetch returned HTTP %d", res.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, maxCatalogBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog body: %w", err)
	}
	return data, nil
}
