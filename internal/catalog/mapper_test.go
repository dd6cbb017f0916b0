package catalog

import (
	"testing"
	"time"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestMapperMapRepos(t *testing.T) {
	entries := []RepoEntry{
		{
			Name:        "sandbox",
			FullName:    "acme/sandbox",
			URL:         "https://github.com/acme/sandbox",
			Description: "  playground  ",
			Topics:      []string{"azure", "Azure", "", "terraform"},
			Language:    strptr("HCL"),
			UpdatedAt:   "2026-02-10T08:30:00Z",
			Stars:       intptr(7),
		},
		{
			// dropped: no name
			FullName: "acme/ghost",
		},
	}

	mapper := NewMapper()
	repos, err := mapper.MapRepos(entries)
	if err != nil {
		t.Fatalf("MapRepos() error = %v", err)
	}

	if len(repos) != 1 {
		t.Fatalf("MapRepos() returned %d repos, want 1", len(repos))
	}

	repo := repos[0]
	if repo.Name != "sandbox" {
		t.Errorf("Name = %q, want sandbox", repo.Name)
	}
	if repo.Description != "playground" {
		t.Errorf("Description = %q, want trimmed text", repo.Description)
	}
	if len(repo.Topics) != 2 || repo.Topics[0] != "azure" || repo.Topics[1] != "terraform" {
		t.Errorf("Topics = %v, want case-insensitive dedupe preserving order", repo.Topics)
	}
	if repo.Language != "HCL" {
		t.Errorf("Language = %q, want HCL", repo.Language)
	}
	if repo.Stars != 7 {
		t.Errorf("Stars = %d, want 7", repo.Stars)
	}

	want := time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC)
	if !repo.UpdatedAt.Equal(want) {
		t.Errorf("UpdatedAt = %v, want %v", repo.UpdatedAt, want)
	}
}

func TestMapperUnparseableTimestamp(t *testing.T) {
	mapper := NewMapper()
	repos, err := mapper.MapRepos([]RepoEntry{
		{Name: "a", UpdatedAt: "not-a-date"},
		{Name: "b", UpdatedAt: ""},
	})
	if err != nil {
		t.Fatalf("MapRepos() error = %v", err)
	}

	for _, repo := range repos {
		if repo.HasUpdatedAt() {
			t.Errorf("repo %q: unparseable updatedAt should map to the zero instant", repo.Name)
		}
	}
}

func TestMapperMissingOptionals(t *testing.T) {
	mapper := NewMapper()
	repos, err := mapper.MapRepos([]RepoEntry{{Name: "bare"}})
	if err != nil {
		t.Fatalf("MapRepos() error = %v", err)
	}

	repo := repos[0]
	if repo.Language != "" || repo.Stars != 0 || repo.ImageURL != "" {
		t.Error("missing optional fields must default to zero values")
	}
	if repo.Topics != nil || repo.Categories != nil || repo.Keywords != nil {
		t.Error("missing tag lists must stay nil")
	}
}

func TestMapperI18n(t *testing.T) {
	mapper := NewMapper()
	repos, err := mapper.MapRepos([]RepoEntry{
		{
			Name: "sandbox",
			I18n: map[string]I18nEntry{
				"ES": {Description: "entorno de pruebas", Topics: []string{"nube"}},
			},
		},
	})
	if err != nil {
		t.Fatalf("MapRepos() error = %v", err)
	}

	entry, ok := repos[0].I18n["es"]
	if !ok {
		t.Fatal("i18n language codes should be lowercased")
	}
	if entry.Description != "entorno de pruebas" {
		t.Errorf("i18n description = %q", entry.Description)
	}
}

func TestMapperAllInvalid(t *testing.T) {
	mapper := NewMapper()
	if _, err := mapper.MapRepos([]RepoEntry{{Name: "  "}}); err == nil {
		t.Error("MapRepos() should fail when no entry survives normalization")
	}
}
