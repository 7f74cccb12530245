package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"igdebugger/pkg/panel"
)

// Run starts the interactive panel and blocks until the user quits or ctx is
// done. Quitting cancels any fetch still in flight.
func Run(ctx context.Context, f panel.Fetcher, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(ctx, f, opts)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
