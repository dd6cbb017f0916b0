package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/orgcat/internal/domain"
)

// Mapper normalizes catalog entries into canonical domain repositories.
//
// This is the single defaulting boundary: entries with an empty name are
// dropped, tag lists are de-duplicated case-insensitively with order
// preserved, and timestamps that do not parse become the zero instant.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapRepos converts catalog entries to domain repositories.
func (m *Mapper) MapRepos(entries []RepoEntry) ([]*domain.Repository, error) {
	repos := make([]*domain.Repository, 0, len(entries))

	for _, e := range entries {
		repo := m.mapRepo(e)
		if repo == nil {
			continue
		}
		repos = append(repos, repo)
	}

	if len(repos) == 0 {
		return nil, fmt.Errorf("no valid repositories found in catalog")
	}

	return repos, nil
}

func (m *Mapper) mapRepo(e RepoEntry) *domain.Repository {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return nil
	}

	repo := &domain.Repository{
		Name:        name,
		FullName:    strings.TrimSpace(e.FullName),
		URL:         strings.TrimSpace(e.URL),
		Description: strings.TrimSpace(e.Description),
		Topics:      dedupeFold(e.Topics),
		Categories:  dedupeFold(e.Categories),
		Keywords:    dedupeFold(e.Keywords),
		UpdatedAt:   parseInstant(e.UpdatedAt),
		Archived:    e.Archived,
		Private:     e.Private,
	}

	if e.Language != nil {
		repo.Language = strings.TrimSpace(*e.Language)
	}
	if e.Stars != nil && *e.Stars > 0 {
		repo.Stars = *e.Stars
	}
	if e.ImageURL != nil {
		repo.ImageURL = strings.TrimSpace(*e.ImageURL)
	}

	if len(e.I18n) > 0 {
		repo.I18n = make(map[string]domain.RepoI18n, len(e.I18n))
		for lang, entry := range e.I18n {
			l := strings.ToLower(strings.TrimSpace(lang))
			if l == "" {
				continue
			}
			repo.I18n[l] = domain.RepoI18n{
				Description: entry.Description,
				Topics:      entry.Topics,
			}
		}
	}

	return repo
}

// ParseGeneratedAt parses the document's generation timestamp, zero
// when absent or malformed.
func ParseGeneratedAt(iso string) time.Time {
	return parseInstant(iso)
}

// parseInstant parses an ISO8601 timestamp, returning the zero instant
// for anything that does not parse ("unknown").
func parseInstant(iso string) time.Time {
	s := strings.TrimSpace(iso)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// dedupeFold drops blank and case-insensitively duplicated entries,
// preserving first-seen order and casing.
func dedupeFold(values []string) []string {
	if len(values) == 0 {
		return nil
	}

	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		s := strings.TrimSpace(v)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
