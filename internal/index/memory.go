package index

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/orgcat/internal/domain"
)

// View selects which repository list an operation works on.
type View string

const (
	ViewPublic  View = "public"
	ViewPrivate View = "private"
)

// ParseView maps a request value to a view, defaulting to public.
func ParseView(s string) View {
	if strings.EqualFold(strings.TrimSpace(s), string(ViewPrivate)) {
		return ViewPrivate
	}
	return ViewPublic
}

// maxCategoryOptions caps the category filter option list.
const maxCategoryOptions = 40

// CatalogIndex is the in-memory catalog store.
//
// It holds the public and private repository lists as immutable
// snapshots: setters replace a whole list, readers get the shared slice
// and must not mutate entries.
type CatalogIndex struct {
	mu           sync.RWMutex
	public       []*domain.Repository
	private      []*domain.Repository
	org          string
	generatedAt  time.Time
	lastReload   time.Time
	privateReady bool
}

// NewCatalogIndex creates an empty catalog index.
func NewCatalogIndex() *CatalogIndex {
	return &CatalogIndex{}
}

// SetPublic replaces the public repository list and catalog metadata.
func (idx *CatalogIndex) SetPublic(repos []*domain.Repository, org string, generatedAt time.Time) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.public = repos
	idx.org = org
	idx.generatedAt = generatedAt
	idx.lastReload = time.Now()
}

// SetPrivate replaces the private repository list.
func (idx *CatalogIndex) SetPrivate(repos []*domain.Repository) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.private = repos
	idx.privateReady = true
}

// ClearPrivate drops the private list (sign-out).
func (idx *CatalogIndex) ClearPrivate() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.private = nil
	idx.privateReady = false
}

// PrivateReady reports whether a private list has been loaded.
func (idx *CatalogIndex) PrivateReady() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.privateReady
}

// Repos returns the stored list for a view.
func (idx *CatalogIndex) Repos(view View) []*domain.Repository {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if view == ViewPrivate {
		return idx.private
	}
	return idx.public
}

// Org returns the organization name from the catalog.
func (idx *CatalogIndex) Org() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.org
}

// GeneratedAt returns the catalog generation instant.
func (idx *CatalogIndex) GeneratedAt() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.generatedAt
}

// LastReload returns the timestamp of the last public catalog load.
func (idx *CatalogIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// Count returns the number of repositories in a view.
func (idx *CatalogIndex) Count(view View) int {
	return len(idx.Repos(view))
}

// Languages returns the distinct languages of a view, sorted.
func (idx *CatalogIndex) Languages(view View) []string {
	repos := idx.Repos(view)

	seen := make(map[string]bool)
	languages := make([]string, 0, 16)
	for _, repo := range repos {
		if repo.Language == "" || seen[repo.Language] {
			continue
		}
		seen[repo.Language] = true
		languages = append(languages, repo.Language)
	}

	sort.Strings(languages)
	return languages
}

// Categories returns the category filter options of a view: derived
// categories when a repo has them, otherwise its topics, ordered by
// frequency (ties alphabetical) and capped.
func (idx *CatalogIndex) Categories(view View) []string {
	repos := idx.Repos(view)

	counts := make(map[string]int)
	for _, repo := range repos {
		values := repo.Categories
		if len(values) == 0 {
			values = repo.Topics
		}
		for _, v := range values {
			counts[v]++
		}
	}

	sorted := make([]string, 0, len(counts))
	for v := range counts {
		sorted = append(sorted, v)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if counts[sorted[i]] != counts[sorted[j]] {
			return counts[sorted[i]] > counts[sorted[j]]
		}
		return sorted[i] < sorted[j]
	})

	if len(sorted) > maxCategoryOptions {
		sorted = sorted[:maxCategoryOptions]
	}
	return sorted
}
