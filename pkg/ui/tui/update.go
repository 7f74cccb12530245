package tui

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"igdebugger/pkg/logger"
	"igdebugger/pkg/panel"
)

// fetchResultMsg carries the outcome of one attempt back to the event loop
type fetchResultMsg struct {
	attempt panel.Attempt
	data    json.RawMessage
	err     error
}

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchResultMsg:
		if !m.state.Complete(msg.attempt, msg.data, msg.err) {
			m.log.DebugWithFields("discarded stale fetch result", map[string]interface{}{
				"attempt": msg.attempt.ID,
				"seq":     msg.attempt.Seq,
			})
			return m, nil
		}
		m.refresh()
		m.viewport.GotoTop()
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.Next):
		m.state.SelectEndpoint(m.state.Endpoint.Next())
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.state.SelectEndpoint(m.state.Endpoint.Prev())
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.state.Input {
		m.state.EditInput(m.input.Value())
	}
	return m, cmd
}

// submit starts a fetch when the trigger is enabled
func (m *Model) submit() tea.Cmd {
	if !m.state.CanSubmit() {
		return nil
	}
	a, ok := m.state.StartFetch()
	if !ok {
		return nil
	}
	m.refresh()
	return tea.Batch(m.spinner.Tick, fetchCmd(m.ctx, m.fetcher, a, m.log))
}

func fetchCmd(ctx context.Context, f panel.Fetcher, a panel.Attempt, log logger.Logger) tea.Cmd {
	return func() tea.Msg {
		data, err := panel.Run(ctx, f, a, log)
		return fetchResultMsg{attempt: a, data: data, err: err}
	}
}

// layout sizes the viewport to the space between header and footer
func (m *Model) layout() {
	m.help.Width = m.width
	m.input.Width = max(m.width-lipgloss.Width(buttonStyle.Render(panel.LabelLoading))-12, 10)

	available := m.height - lipgloss.Height(m.headerView()) - lipgloss.Height(m.footerView())
	m.viewport.Width = m.width
	m.viewport.Height = max(available, 1)
	m.refresh()
}

// refresh re-renders the scrollable response area from state
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.bodyView())
}
