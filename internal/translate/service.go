package translate

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/orgcat/internal/domain"
	"github.com/MrSnakeDoc/orgcat/internal/logger"
)

// BatchSize is the number of source strings sent per backend request.
// The backend enforces its own ceiling of 100; staying at half keeps
// request bodies small.
const BatchSize = 50

// flightState is the per-language fetch state machine.
type flightState int

const (
	flightIdle flightState = iota
	flightFetching
)

// Persister mirrors freshly fetched translations to a durable store,
// best effort. Memory stays authoritative.
type Persister interface {
	SaveTranslations(ctx context.Context, lang string, entries map[string]string) error
	LoadTranslations(ctx context.Context, lang string) (map[string]string, error)
}

// Service owns the per-language translation caches and coordinates
// background fetches against the translation backend.
//
// One Service is constructed per process. Caches are append-only and
// never expire; Translate never blocks and never triggers a fetch.
type Service struct {
	mu          sync.Mutex
	cacheByLang map[string]map[string]string
	flights     map[string]flightState

	client      *Client // nil when no backend is configured
	persister   Persister
	defaultLang string
	logger      logger.Logger
}

// NewService creates a translation service. client may be nil (runtime
// translation disabled); persister may be nil (memory only).
func NewService(client *Client, persister Persister, defaultLang string, log logger.Logger) *Service {
	if defaultLang == "" {
		defaultLang = "en"
	}
	return &Service{
		cacheByLang: make(map[string]map[string]string),
		flights:     make(map[string]flightState),
		client:      client,
		persister:   persister,
		defaultLang: strings.ToLower(defaultLang),
		logger:      log,
	}
}

// Translate returns the cached translation of text for lang, or text
// unchanged when none is cached. Never blocks, never fetches.
func (s *Service) Translate(lang, text string) string {
	if text == "" {
		return ""
	}
	l := normalizeLang(lang)
	if l == "" || l == s.defaultLang {
		return text
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cache := s.cacheByLang[l]; cache != nil {
		if dst, ok := cache[text]; ok {
			return dst
		}
	}
	return text
}

// Seed merges a built-in dictionary into a language cache,
// set-if-absent: fetched entries are never overwritten.
func (s *Service) Seed(lang string, entries map[string]string) {
	l := normalizeLang(lang)
	if l == "" || l == s.defaultLang || len(entries) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.langCacheLocked(l)
	for src, dst := range entries {
		if src == "" || dst == "" {
			continue
		}
		if _, ok := cache[src]; !ok {
			cache[src] = dst
		}
	}
}

// Warm loads previously persisted translations for lang, best effort.
func (s *Service) Warm(ctx context.Context, lang string) {
	l := normalizeLang(lang)
	if l == "" || l == s.defaultLang || s.persister == nil {
		return
	}

	entries, err := s.persister.LoadTranslations(ctx, l)
	if err != nil {
		s.logger.Warn("failed to warm translation cache",
			logger.String("lang", l),
			logger.Error(err))
		return
	}
	if len(entries) == 0 {
		return
	}

	s.Seed(l, entries)
	s.logger.Info("translation cache warmed",
		logger.String("lang", l),
		logger.Int("entries", len(entries)))
}

// WarmAll warms every given language cache concurrently.
func (s *Service) WarmAll(ctx context.Context, langs []string) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, lang := range langs {
		lang := lang
		g.Go(func() error {
			s.Warm(ctx, lang)
			return nil
		})
	}
	_ = g.Wait()
}

// EnsureRepoTranslations fetches missing translations for the repo
// descriptions, topics and extra texts. Returns true when new
// translations were fetched and merged.
//
// No-ops (returning false) when: lang is the default, no backend is
// configured, nothing is missing, or a fetch for lang is already in
// flight (single-flight per language).
func (s *Service) EnsureRepoTranslations(ctx context.Context, lang string, repos []*domain.Repository, extraTexts []string) bool {
	texts := make([]string, 0, len(extraTexts)+len(repos)*4)
	texts = append(texts, extraTexts...)
	for _, repo := range repos {
		texts = append(texts, repo.Description)
		texts = append(texts, repo.Topics...)
	}
	return s.EnsureTexts(ctx, lang, texts)
}

// EnsureTexts fetches missing translations for the given source texts.
// Same no-op rules as EnsureRepoTranslations.
func (s *Service) EnsureTexts(ctx context.Context, lang string, texts []string) bool {
	l := normalizeLang(lang)
	if l == "" || l == s.defaultLang || s.client == nil {
		return false
	}

	needed := s.acquireFlight(l, texts)
	if needed == nil {
		return false
	}
	// Fetching -> Idle regardless of how the fetch ends.
	defer s.releaseFlight(l)

	fetched := make(map[string]string, len(needed))

	for start := 0; start < len(needed); start += BatchSize {
		end := min(start+BatchSize, len(needed))
		batch := needed[start:end]

		translated, err := s.client.Translate(ctx, l, batch)
		if err != nil {
			// Partial results from earlier batches stay cached.
			s.logger.Warn("translation batch failed",
				logger.String("lang", l),
				logger.Int("batch_size", len(batch)),
				logger.Error(err))
			break
		}

		s.mergeBatch(l, batch, translated, fetched)
	}

	if len(fetched) == 0 {
		return false
	}

	if s.persister != nil {
		if err := s.persister.SaveTranslations(ctx, l, fetched); err != nil {
			s.logger.Warn("failed to persist translations",
				logger.String("lang", l),
				logger.Error(err))
		}
	}

	return true
}

// acquireFlight computes the needed source set and transitions
// Idle -> Fetching atomically. Returns nil when there is nothing to do
// or another fetch for lang is in flight.
func (s *Service) acquireFlight(lang string, texts []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.langCacheLocked(lang)

	seen := make(map[string]bool, len(texts))
	needed := make([]string, 0, len(texts))
	for _, raw := range texts {
		t := strings.TrimSpace(raw)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		if _, ok := cache[t]; ok {
			continue
		}
		needed = append(needed, t)
	}

	if len(needed) == 0 {
		return nil
	}
	if s.flights[lang] == flightFetching {
		return nil
	}

	s.flights[lang] = flightFetching
	return needed
}

func (s *Service) releaseFlight(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flights[lang] = flightIdle
}

// mergeBatch stores one batch of results, falling back to the source
// string for empty translation slots.
func (s *Service) mergeBatch(lang string, batch, translated []string, fetched map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.langCacheLocked(lang)
	for i, src := range batch {
		dst := translated[i]
		if dst == "" {
			dst = src
		}
		cache[src] = dst
		fetched[src] = dst
	}
}

func (s *Service) langCacheLocked(lang string) map[string]string {
	cache := s.cacheByLang[lang]
	if cache == nil {
		cache = make(map[string]string)
		s.cacheByLang[lang] = cache
	}
	return cache
}

// ProjectRepos builds the display projection of repos for lang:
// derived copies with translated descriptions and topics. Build-time
// translations embedded in the catalog win over the runtime cache. The
// default language returns the input unchanged.
func (s *Service) ProjectRepos(lang string, repos []*domain.Repository) []*domain.Repository {
	l := normalizeLang(lang)
	if l == "" || l == s.defaultLang {
		return repos
	}

	out := make([]*domain.Repository, len(repos))
	for i, repo := range repos {
		out[i] = s.projectRepo(l, repo)
	}
	return out
}

func (s *Service) projectRepo(lang string, repo *domain.Repository) *domain.Repository {
	clone := *repo

	if embedded, ok := repo.I18n[lang]; ok {
		if embedded.Description != "" {
			clone.Description = embedded.Description
		} else {
			clone.Description = s.Translate(lang, repo.Description)
		}
		if embedded.Topics != nil {
			clone.Topics = embedded.Topics
		} else {
			clone.Topics = s.translateAll(lang, repo.Topics)
		}
		return &clone
	}

	clone.Description = s.Translate(lang, repo.Description)
	clone.Topics = s.translateAll(lang, repo.Topics)
	return &clone
}

func (s *Service) translateAll(lang string, texts []string) []string {
	if len(texts) == 0 {
		return texts
	}
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = s.Translate(lang, t)
	}
	return out
}

// DefaultLang returns the language that needs no translation.
func (s *Service) DefaultLang() string {
	return s.defaultLang
}

func normalizeLang(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}
