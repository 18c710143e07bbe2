package workers

import (
	"context"

	"github.com/boletapp/gastify-sync/internal/config"
	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the server's background workers: currently the
// changelog retention pruner.
func NewWorkers(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewRetentionPruner(storages.ChangelogRepository, cfg.Sync.RetentionWindow, cfg.Workers.PruneInterval, logger),
		},
	}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
