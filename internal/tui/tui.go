package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"movievault/internal/logger"
	"movievault/internal/service"
)

type TUI struct {
	services *service.Services
}

func New(services *service.Services, _ *logger.Logger) (*TUI, error) {
	return &TUI{services: services}, nil
}

// MainLoop runs the terminal UI until the user quits.
func (t *TUI) MainLoop(ctx context.Context) error {
	model := newAppModel(ctx, t.services)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
