// Package uilabels holds the translatable UI chrome strings and the
// built-in per-language dictionaries that keep the chrome readable when
// no translation backend is configured.
package uilabels

// LabelSet is the parsed label configuration.
type LabelSet struct {
	// Labels are the chrome strings (buttons, filters, status
	// messages) that ride along with repo enrichment requests.
	Labels []string `yaml:"labels"`

	// Meta are the per-card labels rendered next to repository
	// metadata.
	Meta []string `yaml:"meta"`

	// Builtin maps language code -> source -> translation.
	Builtin map[string]map[string]string `yaml:"builtin"`
}

// Defaults returns the built-in label set used when no labels file is
// configured.
func Defaults() *LabelSet {
	return &LabelSet{
		Labels: []string{
			"Search", "Translate", "Filters", "Public", "Private", "All",
			"Any time", "Last 7 days", "Last 30 days", "Last 90 days", "Last 365 days",
			"of", "repositories", "public", "private",
			"Loading public catalog…",
			"Could not load the catalog.",
			"Could not load private repositories.",
			"Not authorized for this organization.",
		},
		Meta: []string{"Language", "Updated", "Archived"},
		Builtin: map[string]map[string]string{
			"es": {
				"Search": "Buscar", "Translate": "Traducir", "Filters": "Filtros",
				"Public": "Público", "Private": "Privado", "All": "Todos",
				"Language": "Idioma", "Category": "Categoría",
				"Updated": "Actualizado", "Archived": "Archivado",
				"Any time": "Cualquier momento", "Last 7 days": "Últimos 7 días",
				"Last 30 days": "Últimos 30 días", "Last 90 days": "Últimos 90 días",
				"Last 365 days": "Últimos 365 días",
				"of":            "de", "repositories": "repositorios",
				"public": "públicos", "private": "privados",
				"Loading public catalog…": "Cargando catálogo público…",
			},
			"pt": {
				"Search": "Pesquisar", "Translate": "Traduzir", "Filters": "Filtros",
				"Public": "Público", "Private": "Privado", "All": "Todos",
				"Language": "Idioma", "Category": "Categoria",
				"Updated": "Atualizado", "Archived": "Arquivado",
				"Any time": "Qualquer momento", "Last 7 days": "Últimos 7 dias",
				"Last 30 days": "Últimos 30 dias", "Last 90 days": "Últimos 90 dias",
				"Last 365 days": "Últimos 365 dias",
				"of":            "de", "repositories": "repositórios",
				"public": "públicos", "private": "privados",
				"Loading public catalog…": "Carregando catálogo público…",
			},
			"fr": {
				"Search": "Rechercher", "Translate": "Traduire", "Filters": "Filtres",
				"Public": "Public", "Private": "Privé", "All": "Tous",
				"Language": "Langue", "Category": "Catégorie",
				"Updated": "Mis à jour", "Archived": "Archivé",
				"Any time": "N'importe quand", "Last 7 days": "7 derniers jours",
				"Last 30 days": "30 derniers jours", "Last 90 days": "90 derniers jours",
				"Last 365 days": "365 derniers jours",
				"of":            "sur", "repositories": "dépôts",
				"public": "publics", "private": "privés",
				"Loading public catalog…": "Chargement du catalogue public…",
			},
		},
	}
}

// AllTexts returns every translatable chrome string (labels + meta).
func (ls *LabelSet) AllTexts() []string {
	out := make([]string, 0, len(ls.Labels)+len(ls.Meta))
	out = append(out, ls.Labels...)
	out = append(out, ls.Meta...)
	return out
}
