package domain

import "time"

// RepoI18n holds build-time translated content for one language,
// embedded in the catalog by the generation pipeline.
// When present it takes precedence over runtime translation.
type RepoI18n struct {
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
}

// Repository is the canonical runtime representation of a catalog entry.
//
// It is fully defaulted at ingestion time: every field carries a usable
// value, so filtering, scoring and rendering never re-check optionality.
// A Repository is immutable once ingested; display-time translation
// produces derived copies, never in-place edits.
type Repository struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// Name is the repository name. Never empty; entries without a name
	// are dropped by the catalog mapper.
	Name string `json:"name"`

	// FullName is "org/name".
	FullName string `json:"fullName"`

	// URL is the browse URL of the repository.
	URL string `json:"url"`

	// ─────────────────────────────
	// Descriptive content
	// ─────────────────────────────

	// Description is free text, possibly empty.
	Description string `json:"description"`

	// Topics are the repo-declared tags, de-duplicated
	// case-insensitively with order preserved.
	Topics []string `json:"topics"`

	// Categories and Keywords are derived tag sets from catalog
	// enrichment. May be empty for repos without a README.
	Categories []string `json:"categories,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`

	// Language is the primary language. Empty = unknown.
	Language string `json:"language,omitempty"`

	// ─────────────────────────────
	// State & metrics
	// ─────────────────────────────

	// UpdatedAt is the last push/update instant. The zero value means
	// "unknown": excluded from recency filtering, sorts last.
	UpdatedAt time.Time `json:"updatedAt,omitzero"`

	Archived bool `json:"archived"`
	Private  bool `json:"private"`

	// Stars is the stargazer count. Missing counts are stored as 0.
	Stars int `json:"stargazersCount"`

	// ImageURL is a representative image resolved from the README.
	// Empty = none.
	ImageURL string `json:"imageUrl,omitempty"`

	// ─────────────────────────────
	// Translations
	// ─────────────────────────────

	// I18n maps language codes to build-time translations.
	I18n map[string]RepoI18n `json:"i18n,omitempty"`
}

// HasUpdatedAt reports whether the update instant is known.
func (r *Repository) HasUpdatedAt() bool {
	return !r.UpdatedAt.IsZero()
}
