package domain

import (
	"sort"
	"strings"
)

const (
	// Scoring weights, by match type. Per token only the best match
	// counts; matches are not summed across fields.
	ScoreNameExact     = 120.0
	ScoreNamePrefix    = 70.0
	ScoreNameSubstring = 45.0
	ScoreFullNameMatch = 28.0
	ScoreTopicMatch    = 24.0
	ScoreDescMatch     = 18.0
	ScoreLanguageMatch = 14.0

	// ScoreExcluded marks a repository where some token matched nothing.
	ScoreExcluded = -1.0

	// Popularity tie-break: min(stars, starsCap) / starsDivisor,
	// added once per repository, capping the contribution at 5.0.
	starsCap     = 50
	starsDivisor = 10.0
)

// Candidate pairs a repository with its relevance score.
type Candidate struct {
	Repo  *Repository
	Score float64
}

// TokenizeQuery splits a raw query into lowercase tokens.
// A blank query yields no tokens.
func TokenizeQuery(q string) []string {
	return strings.Fields(strings.ToLower(strings.TrimSpace(q)))
}

// Score computes the relevance of repo for a non-empty token list.
//
// Semantics are conjunctive across tokens and best-match across fields:
// every token must match at least one field or the repository is
// excluded (ScoreExcluded); a matching token contributes the weight of
// its strongest field only.
func Score(repo *Repository, tokens []string) float64 {
	if repo == nil || len(tokens) == 0 {
		return 0
	}

	name := strings.ToLower(repo.Name)
	fullName := strings.ToLower(repo.FullName)
	description := strings.ToLower(repo.Description)
	language := strings.ToLower(repo.Language)

	topics := make([]string, len(repo.Topics))
	for i, t := range repo.Topics {
		topics[i] = strings.ToLower(t)
	}

	var total float64

	for _, token := range tokens {
		tokenScore := 0.0

		if name == token {
			tokenScore = max(tokenScore, ScoreNameExact)
		}
		if strings.HasPrefix(name, token) {
			tokenScore = max(tokenScore, ScoreNamePrefix)
		}
		if strings.Contains(name, token) {
			tokenScore = max(tokenScore, ScoreNameSubstring)
		}

		if strings.Contains(fullName, token) {
			tokenScore = max(tokenScore, ScoreFullNameMatch)
		}
		if anyContains(topics, token) {
			tokenScore = max(tokenScore, ScoreTopicMatch)
		}
		if description != "" && strings.Contains(description, token) {
			tokenScore = max(tokenScore, ScoreDescMatch)
		}
		if language != "" && strings.Contains(language, token) {
			tokenScore = max(tokenScore, ScoreLanguageMatch)
		}

		// AND semantics: all tokens must match somewhere
		if tokenScore == 0 {
			return ScoreExcluded
		}

		total += tokenScore
	}

	// Light popularity tie-breaker, applied once
	total += float64(min(repo.Stars, starsCap)) / starsDivisor

	return total
}

func anyContains(haystack []string, token string) bool {
	for _, h := range haystack {
		if strings.Contains(h, token) {
			return true
		}
	}
	return false
}

// RankRepos scores and orders repos for the given tokens.
//
// Excluded repositories are dropped. Ordering is score descending, ties
// broken by UpdatedAt descending with unknown instants last. With no
// tokens the input is returned as-is, unscored and in original order.
func RankRepos(repos []*Repository, tokens []string) []*Repository {
	if len(tokens) == 0 {
		return repos
	}

	candidates := make([]Candidate, 0, len(repos))
	for _, repo := range repos {
		score := Score(repo, tokens)
		if score < 0 {
			continue
		}
		candidates = append(candidates, Candidate{Repo: repo, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Repo.UpdatedAt.After(candidates[j].Repo.UpdatedAt)
	})

	ranked := make([]*Repository, len(candidates))
	for i, c := range candidates {
		ranked[i] = c.Repo
	}
	return ranked
}
