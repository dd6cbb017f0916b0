package catalog

// Document is the top-level structure of the generated catalog.json.
type Document struct {
	GeneratedAt string      `json:"generatedAt"`
	Org         string      `json:"org"`
	Repos       []RepoEntry `json:"repos"`
}

// RepoEntry is the duck-typed wire shape of one catalog entry.
// The generation pipeline omits fields freely; the mapper turns this
// into a fully-defaulted domain.Repository.
type RepoEntry struct {
	Name        string               `json:"name"`
	FullName    string               `json:"fullName"`
	URL         string               `json:"url"`
	Description string               `json:"description"`
	Topics      []string             `json:"topics"`
	Categories  []string             `json:"categories"`
	Keywords    []string             `json:"keywords"`
	Language    *string              `json:"language"`
	UpdatedAt   string               `json:"updatedAt"`
	Archived    bool                 `json:"archived"`
	Private     bool                 `json:"private"`
	Stars       *int                 `json:"stargazersCount"`
	ImageURL    *string              `json:"imageUrl"`
	I18n        map[string]I18nEntry `json:"i18n"`
}

// I18nEntry carries build-time translated content for one language.
type I18nEntry struct {
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
}
