package client

import (
	"context"

	"movievault/internal/logger"
	"movievault/internal/service"
	"movievault/internal/tui"
	"movievault/internal/workers"
)

type App struct {
	services *service.Services
	tui      *tui.TUI
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(services *service.Services, ui *tui.TUI, workers *workers.Workers, logger *logger.Logger) (*App, error) {
	return &App{
		services: services,
		tui:      ui,
		workers:  workers,
		logger:   logger,
	}, nil
}

// Run starts the background workers and blocks in the terminal UI until the
// user quits.
func (a *App) Run() error {
	ctx := context.Background()

	a.workers.Run()
	defer a.services.TrendingJob.Stop()

	return a.tui.MainLoop(ctx)
}
