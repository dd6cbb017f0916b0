package domain

import (
	"strings"
	"time"
)

// Criteria describes the structured filters derived from UI state.
// The zero value filters nothing except archived repositories.
type Criteria struct {
	// Language must equal the repository language exactly, as stored.
	// Empty = no constraint.
	Language string

	// Category must be a case-insensitive member of the repository's
	// categories ∪ topics. Empty = no constraint.
	Category string

	// UpdatedWithinDays keeps only repositories updated within the last
	// N days. 0 = unconstrained.
	UpdatedWithinDays int

	// MinStars is the minimum stargazer count. 0 = unconstrained.
	MinStars int

	// HasImage keeps only repositories with a resolved image.
	HasImage bool

	// IncludeArchived keeps archived repositories in the result.
	IncludeArchived bool
}

// PassesFilters reports whether repo satisfies all criteria.
// Pure and deterministic for a fixed now.
func PassesFilters(repo *Repository, c Criteria, now time.Time) bool {
	if repo == nil {
		return false
	}

	if repo.Archived && !c.IncludeArchived {
		return false
	}

	if c.Language != "" && repo.Language != c.Language {
		return false
	}

	if c.HasImage && repo.ImageURL == "" {
		return false
	}

	if c.Category != "" && !hasCategory(repo, c.Category) {
		return false
	}

	if c.MinStars > 0 && repo.Stars < c.MinStars {
		return false
	}

	if c.UpdatedWithinDays > 0 {
		// Unknown update instants cannot satisfy a recency constraint.
		if !repo.HasUpdatedAt() {
			return false
		}
		// Inclusive boundary: a repo updated exactly N days ago passes.
		cutoff := now.Add(-time.Duration(c.UpdatedWithinDays) * 24 * time.Hour)
		if repo.UpdatedAt.Before(cutoff) {
			return false
		}
	}

	return true
}

// hasCategory checks case-insensitive membership against the union of
// categories and topics.
func hasCategory(repo *Repository, category string) bool {
	want := strings.ToLower(category)

	for _, c := range repo.Categories {
		if strings.ToLower(c) == want {
			return true
		}
	}
	for _, t := range repo.Topics {
		if strings.ToLower(t) == want {
			return true
		}
	}
	return false
}
