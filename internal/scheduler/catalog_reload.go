// Package scheduler keeps the public catalog fresh: an initial load at
// startup, a periodic reload and a manual trigger for the reload
// endpoint.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/orgcat/internal/catalog"
	"github.com/MrSnakeDoc/orgcat/internal/domain"
	"github.com/MrSnakeDoc/orgcat/internal/index"
	"github.com/MrSnakeDoc/orgcat/internal/logger"
)

// CatalogReloader handles periodic reloading of the published catalog
type CatalogReloader struct {
	loader        *catalog.Loader
	mapper        *catalog.Mapper
	index         *index.CatalogIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader
func NewCatalogReloader(
	source string,
	idx *index.CatalogIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		loader:        catalog.NewLoader(source),
		mapper:        catalog.NewMapper(),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic reload process
func (cr *CatalogReloader) Start(ctx context.Context) error {
	// Load immediately on start
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial catalog reload failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual catalog reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload fetches the published catalog and replaces the public list.
// Private entries in the document are dropped: the public list carries
// only what the publishing pipeline marked public, and the private view
// is fed exclusively through the auth bridge.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	cr.logger.Info("reloading catalog", logger.String("source", cr.loader.Source()))

	doc, err := cr.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	repos, err := cr.mapper.MapRepos(doc.Repos)
	if err != nil {
		return fmt.Errorf("failed to map catalog entries: %w", err)
	}

	public := make([]*domain.Repository, 0, len(repos))
	for _, repo := range repos {
		if repo.Private {
			continue
		}
		public = append(public, repo)
	}

	generatedAt := catalog.ParseGeneratedAt(doc.GeneratedAt)
	cr.index.SetPublic(public, doc.Org, generatedAt)

	cr.logger.Info("catalog loaded",
		logger.String("org", doc.Org),
		logger.Int("repos", len(public)),
		logger.Int("dropped_private", len(repos)-len(public)))

	return nil
}
