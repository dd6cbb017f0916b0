package domain

import (
	"testing"
	"time"
)

func TestTokenizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "simple", query: "azure functions", want: []string{"azure", "functions"}},
		{name: "lowercased", query: "Azure FUNCTIONS", want: []string{"azure", "functions"}},
		{name: "collapsed whitespace", query: "  azure \t functions  ", want: []string{"azure", "functions"}},
		{name: "empty", query: "", want: nil},
		{name: "whitespace only", query: "   \t ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeQuery(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("TokenizeQuery(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScoreMatchTiers(t *testing.T) {
	tests := []struct {
		name  string
		repo  *Repository
		token string
		want  float64
	}{
		{name: "exact name", repo: &Repository{Name: "cache"}, token: "cache", want: ScoreNameExact},
		{name: "name prefix", repo: &Repository{Name: "cache-lib"}, token: "cache", want: ScoreNamePrefix},
		{name: "name substring", repo: &Repository{Name: "my-cache-lib"}, token: "cache", want: ScoreNameSubstring},
		{name: "full name", repo: &Repository{Name: "tool", FullName: "acme/cache-tool"}, token: "cache", want: ScoreFullNameMatch},
		{name: "topic", repo: &Repository{Name: "tool", Topics: []string{"caches"}}, token: "cache", want: ScoreTopicMatch},
		{name: "description", repo: &Repository{Name: "tool", Description: "an LRU cache"}, token: "cache", want: ScoreDescMatch},
		{name: "language", repo: &Repository{Name: "tool", Language: "Go"}, token: "go", want: ScoreLanguageMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.repo, []string{tt.token})
			if got != tt.want {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Only the strongest field counts per token; matches are not summed
// across fields.
func TestScoreBestMatchOnly(t *testing.T) {
	repo := &Repository{
		Name:        "cache",
		FullName:    "acme/cache",
		Description: "a cache",
		Topics:      []string{"cache"},
	}

	got := Score(repo, []string{"cache"})
	if got != ScoreNameExact {
		t.Errorf("Score() = %v, want %v (best match only)", got, ScoreNameExact)
	}
}

func TestScoreConjunctiveSemantics(t *testing.T) {
	repo := &Repository{
		Name:     "widget-cli",
		Language: "Go",
	}

	// "widget" matches the name, "rust" matches nothing => excluded.
	if got := Score(repo, []string{"widget", "rust"}); got != ScoreExcluded {
		t.Errorf("Score() = %v, want %v (unmatched token must exclude)", got, ScoreExcluded)
	}

	// Order of tokens must not matter.
	if got := Score(repo, []string{"rust", "widget"}); got != ScoreExcluded {
		t.Errorf("Score() = %v, want %v", got, ScoreExcluded)
	}
}

func TestScoreTokenWeightsSum(t *testing.T) {
	repo := &Repository{
		Name:        "azure-sandbox",
		Description: "experiments with functions",
	}

	// "azure" -> name prefix (70), "functions" -> description (18)
	want := ScoreNamePrefix + ScoreDescMatch
	if got := Score(repo, []string{"azure", "functions"}); got != want {
		t.Errorf("Score() = %v, want %v", got, want)
	}
}

func TestScoreStarsTieBreak(t *testing.T) {
	base := Score(&Repository{Name: "cache"}, []string{"cache"})

	// 30 stars add 3.0
	got := Score(&Repository{Name: "cache", Stars: 30}, []string{"cache"})
	if got != base+3.0 {
		t.Errorf("Score() = %v, want %v", got, base+3.0)
	}

	// contribution caps at 5.0
	got = Score(&Repository{Name: "cache", Stars: 100000}, []string{"cache"})
	if got != base+5.0 {
		t.Errorf("Score() = %v, want %v (stars boost must cap at 5)", got, base+5.0)
	}
}

func TestRankReposOrdering(t *testing.T) {
	exact := &Repository{Name: "cache"}
	substr := &Repository{Name: "my-cache-lib"}
	unrelated := &Repository{Name: "deploy-tool"}

	ranked := RankRepos([]*Repository{substr, unrelated, exact}, []string{"cache"})

	if len(ranked) != 2 {
		t.Fatalf("RankRepos() returned %d repos, want 2", len(ranked))
	}
	if ranked[0] != exact {
		t.Errorf("exact name match should rank first, got %q", ranked[0].Name)
	}
	if ranked[1] != substr {
		t.Errorf("substring match should rank second, got %q", ranked[1].Name)
	}
}

func TestRankReposUpdatedAtTieBreak(t *testing.T) {
	older := &Repository{Name: "cache-a", UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &Repository{Name: "cache-b", UpdatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	unknown := &Repository{Name: "cache-c"}

	ranked := RankRepos([]*Repository{unknown, older, newer}, []string{"cache"})

	if len(ranked) != 3 {
		t.Fatalf("RankRepos() returned %d repos, want 3", len(ranked))
	}
	if ranked[0] != newer || ranked[1] != older || ranked[2] != unknown {
		t.Errorf("tie-break order wrong: got %q, %q, %q",
			ranked[0].Name, ranked[1].Name, ranked[2].Name)
	}
}

// A blank query ranks nothing: the filtered list passes through in its
// original order.
func TestRankReposNoTokens(t *testing.T) {
	a := &Repository{Name: "zzz"}
	b := &Repository{Name: "aaa"}

	ranked := RankRepos([]*Repository{a, b}, nil)

	if len(ranked) != 2 || ranked[0] != a || ranked[1] != b {
		t.Error("empty token list must preserve the input order")
	}
}
