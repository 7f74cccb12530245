package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"igdebugger/pkg/render"
	"igdebugger/pkg/ui"
)

// View renders the entire TUI
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.viewport.View(),
		m.footerView(),
	)
}

func (m *Model) headerView() string {
	v := render.Build(m.state)

	title := titleStyle.Render(v.Title)

	var button string
	if m.state.Loading {
		button = buttonDisabledStyle.Render(m.spinner.View() + " " + v.Button.Label)
	} else if v.Button.Disabled {
		button = buttonDisabledStyle.Render(v.Button.Label)
	} else {
		button = buttonStyle.Render(v.Button.Label)
	}
	inputRow := lipgloss.JoinHorizontal(lipgloss.Center, inputBoxStyle.Render(m.input.View()), button)

	tabs := make([]string, 0, len(v.Tabs))
	for _, t := range v.Tabs {
		if t.Active {
			tabs = append(tabs, tabActiveStyle.Render(t.Label))
		} else {
			tabs = append(tabs, tabStyle.Render(t.Label))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		inputRow,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
	)
}

// bodyView is the scrollable part: error banner, preview and JSON dump
func (m *Model) bodyView() string {
	v := render.Build(m.state)
	width := max(m.width-2, 20)

	var sections []string
	if v.Error != "" {
		sections = append(sections, errorBannerStyle.Width(width).Render(v.Error))
	}

	if r := v.Response; r != nil {
		sections = append(sections, headingStyle.Render(r.Heading))
		if r.Preview != nil {
			var b strings.Builder
			ui.WritePreview(&b, r.Preview, palette())
			sections = append(sections, strings.TrimRight(b.String(), "\n"))
		}
		sections = append(sections,
			ui.JSONHeading(r, palette()),
			ui.ColorJSON(r.JSON, true),
		)
	} else if v.Error == "" && !m.state.Loading {
		sections = append(sections, mutedStyle.Render("Type a username or profile link and press enter."))
	}

	return lipgloss.NewStyle().Width(width).Render(strings.Join(sections, "\n\n"))
}

func (m *Model) footerView() string {
	scroll := ""
	if m.viewport.TotalLineCount() > m.viewport.Height {
		scroll = mutedStyle.Render(fmt.Sprintf(" %3.f%%", m.viewport.ScrollPercent()*100))
	}
	return helpStyle.Render(m.help.View(m.keys)) + scroll
}
