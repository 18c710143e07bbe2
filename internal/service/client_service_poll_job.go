package service

import (
	"context"
	"sync"
	"time"
)

// PendingFunc receives the result of every poll probe. It runs on the job's
// goroutine, so it must return quickly.
type PendingFunc func(groupID string, pending bool)

type clientPollJob struct {
	syncService ClientSyncService
	onPending   PendingFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientPollJob creates a clientPollJob that probes every tracked group for
// pending changelog entries on a ticker and reports each result through
// onPending. The job is idle until Start is called.
func NewClientPollJob(syncService ClientSyncService, onPending PendingFunc) ClientPollJob {
	if onPending == nil {
		onPending = func(string, bool) {}
	}
	return &clientPollJob{syncService: syncService, onPending: onPending}
}

// Start implements ClientPollJob. It stops any previously running job, then
// launches a background goroutine that probes every group in groupIDs once per
// interval. If interval is zero or negative it defaults to 1 minute. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *clientPollJob) Start(ctx context.Context, groupIDs []string, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	j.Stop()

	groups := make([]string, len(groupIDs))
	copy(groups, groupIDs)

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.probeAll(jobCtx, groups)
			}
		}
	}()
}

// Stop implements ClientPollJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running (no-op in that case).
func (j *clientPollJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *clientPollJob) probeAll(ctx context.Context, groupIDs []string) {
	for _, groupID := range groupIDs {
		if ctx.Err() != nil {
			return
		}

		pending, err := j.syncService.PollPending(ctx, groupID)
		if err != nil {
			// A failed probe is not actionable from a timer; the next tick
			// retries.
			continue
		}
		j.onPending(groupID, pending)
	}
}
