// Package view runs the catalog display pipeline: language projection,
// structured filters, search ranking and the result status line.
package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/orgcat/internal/domain"
	"github.com/MrSnakeDoc/orgcat/internal/index"
	"github.com/MrSnakeDoc/orgcat/internal/logger"
	"github.com/MrSnakeDoc/orgcat/internal/translate"
	"github.com/MrSnakeDoc/orgcat/internal/uilabels"
)

// Request is one catalog query: which list to show, in which language,
// narrowed by search tokens and structured filters.
type Request struct {
	Query    string
	Lang     string
	View     index.View
	Criteria domain.Criteria
}

// Snapshot is the computed result for one request.
type Snapshot struct {
	Repos         []*domain.Repository `json:"repos"`
	FilteredCount int                  `json:"filteredCount"`
	TotalCount    int                  `json:"totalCount"`
	View          index.View           `json:"view"`
	Lang          string               `json:"lang"`
	Org           string               `json:"org"`
	GeneratedAt   time.Time            `json:"generatedAt,omitzero"`
	Status        string               `json:"status"`
}

// Controller computes catalog snapshots and keeps translations
// converging in the background.
//
// A language or view switch bumps an internal generation counter.
// Background translation fetches capture the generation they were
// started under; a fetch that completes under a different generation
// discards its refresh instead of overwriting the newer state.
type Controller struct {
	store      *index.CatalogIndex
	translator *translate.Service
	labels     *uilabels.LabelSet
	logger     logger.Logger

	mu         sync.Mutex
	generation uint64
	lang       string
	view       index.View
	latest     Snapshot
}

// NewController wires the display pipeline over its collaborators.
func NewController(store *index.CatalogIndex, translator *translate.Service, labels *uilabels.LabelSet, log logger.Logger) *Controller {
	return &Controller{
		store:      store,
		translator: translator,
		labels:     labels,
		logger:     log,
		view:       index.ViewPublic,
	}
}

// Apply computes the snapshot for req and kicks off a background
// translation fetch for whatever the cache is still missing. The
// returned snapshot reflects the cache as of now; once the fetch lands,
// the stored snapshot is recomputed and later calls see the
// translations.
func (c *Controller) Apply(ctx context.Context, req Request) Snapshot {
	gen := c.admit(req)

	snap := c.compute(req)

	c.mu.Lock()
	if gen == c.generation {
		c.latest = snap
	}
	c.mu.Unlock()

	if req.Lang != c.translator.DefaultLang() {
		go c.ensureTranslations(context.WithoutCancel(ctx), gen, req)
	}

	return snap
}

// Latest returns the most recently stored snapshot.
func (c *Controller) Latest() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.latest
}

// admit records the request's language and view, bumping the generation
// when either changed, and returns the generation the request runs
// under.
func (c *Controller) admit(req Request) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if req.Lang != c.lang || req.View != c.view {
		c.generation++
		c.lang = req.Lang
		c.view = req.View
	}
	return c.generation
}

// compute runs the full pipeline: project into the request language,
// filter, rank, then build the status line.
func (c *Controller) compute(req Request) Snapshot {
	repos := c.store.Repos(req.View)
	projected := c.translator.ProjectRepos(req.Lang, repos)

	now := time.Now()
	filtered := make([]*domain.Repository, 0, len(projected))
	for _, repo := range projected {
		if domain.PassesFilters(repo, req.Criteria, now) {
			filtered = append(filtered, repo)
		}
	}

	tokens := domain.TokenizeQuery(req.Query)
	results := domain.RankRepos(filtered, tokens)

	return Snapshot{
		Repos:         results,
		FilteredCount: len(results),
		TotalCount:    len(repos),
		View:          req.View,
		Lang:          req.Lang,
		Org:           c.store.Org(),
		GeneratedAt:   c.store.GeneratedAt(),
		Status:        c.statusLine(req.Lang, req.View, len(results), len(repos)),
	}
}

// statusLine renders "N of M public repositories" in the request
// language, word by word from the translation cache.
func (c *Controller) statusLine(lang string, view index.View, shown, total int) string {
	visibility := "public"
	if view == index.ViewPrivate {
		visibility = "private"
	}
	return fmt.Sprintf("%d %s %d %s %s",
		shown,
		c.translator.Translate(lang, "of"),
		total,
		c.translator.Translate(lang, visibility),
		c.translator.Translate(lang, "repositories"))
}

// ensureTranslations fetches missing translations for the request's
// repo list plus the chrome labels, then refreshes the stored snapshot
// when the generation is still current.
func (c *Controller) ensureTranslations(ctx context.Context, gen uint64, req Request) {
	repos := c.store.Repos(req.View)

	var extra []string
	if c.labels != nil {
		extra = c.labels.AllTexts()
	}

	fetched := c.translator.EnsureRepoTranslations(ctx, req.Lang, repos, extra)
	if !fetched {
		return
	}

	c.mu.Lock()
	stale := gen != c.generation
	c.mu.Unlock()

	if stale {
		c.logger.Debug("discarding stale translation refresh",
			logger.String("lang", req.Lang),
			logger.Uint64("generation", gen))
		return
	}

	snap := c.compute(req)

	c.mu.Lock()
	if gen == c.generation {
		c.latest = snap
	}
	c.mu.Unlock()
}
