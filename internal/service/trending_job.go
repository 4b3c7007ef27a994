package service

import (
	"context"
	"sync"
	"time"
)

type trendingJob struct {
	catalog CatalogService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTrendingJob creates a trendingJob that calls catalog.RefreshTrending on a
// ticker. The job is idle until Start is called.
func NewTrendingJob(catalog CatalogService) TrendingJob {
	return &trendingJob{catalog: catalog}
}

// Start implements TrendingJob. It stops any previously running job, then
// launches a background goroutine that refreshes the trending cache every
// interval. If interval is zero or negative it defaults to 30 minutes. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *trendingJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()

		// warm the cache immediately so the search screen has data
		_ = j.catalog.RefreshTrending(jobCtx)

		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				_ = j.catalog.RefreshTrending(jobCtx)
			}
		}
	}()
}

// Stop implements TrendingJob. It cancels the background goroutine's context
// and blocks until the goroutine has fully exited. Safe to call when the job
// is not running (no-op in that case).
func (j *trendingJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
