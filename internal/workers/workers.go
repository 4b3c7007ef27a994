package workers

import (
	"context"

	"movievault/internal/config"
	"movievault/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers wires every background worker the application runs: currently
// only the periodic trending cache refresh.
func NewWorkers(trendingJob service.TrendingJob, cfg config.Workers) *Workers {
	return &Workers{
		workers: []Worker{
			&trendingRefreshWorker{job: trendingJob, cfg: cfg},
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// trendingRefreshWorker starts the trending refresh loop. The loop itself
// lives in the service layer; this worker only adapts it to the Worker
// interface.
type trendingRefreshWorker struct {
	job service.TrendingJob
	cfg config.Workers
}

func (w *trendingRefreshWorker) Run() {
	w.job.Start(context.Background(), w.cfg.TrendingRefreshInterval)
}
