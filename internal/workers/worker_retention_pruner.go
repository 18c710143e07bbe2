// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Boletapp Labs

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/metrics"
	"github.com/boletapp/gastify-sync/internal/store"
)

// retentionPruner deletes changelog entries older than the retention window
// on a ticker. Pruning is what makes the window real: a checkpoint older than
// it points at entries that no longer exist, which is exactly why the read
// path refuses such checkpoints.
type retentionPruner struct {
	changelogRepository store.ChangelogRepository
	retentionWindow     time.Duration
	interval            time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewRetentionPruner(changelogRepository store.ChangelogRepository, retentionWindow, interval time.Duration, logger *logger.Logger) Worker {
	return &retentionPruner{
		changelogRepository: changelogRepository,
		retentionWindow:     retentionWindow,
		interval:            interval,
		logger:              logger,
	}
}

func (p *retentionPruner) Run(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	workerCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		t := time.NewTicker(p.interval)
		defer t.Stop()

		for {
			select {
			case <-workerCtx.Done():
				return
			case <-t.C:
				p.prune(workerCtx)
			}
		}
	}()
}

func (p *retentionPruner) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *retentionPruner) prune(ctx context.Context) {
	before := time.Now().Add(-p.retentionWindow)

	pruned, err := p.changelogRepository.PruneExpired(ctx, before)
	if err != nil {
		p.logger.Err(err).Str("func", "*retentionPruner.prune").Msg("error pruning expired changelog entries")
		return
	}

	if pruned > 0 {
		metrics.EntriesPruned.Add(float64(pruned))
		p.logger.Info().
			Int64("pruned", pruned).
			Time("before", before).
			Msg("expired changelog entries pruned")
	}
}
