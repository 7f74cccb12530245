package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"igdebugger/pkg/logger"
	"igdebugger/pkg/panel"
	"igdebugger/pkg/proxyapi"
	"igdebugger/pkg/render"
)

// Options configures a new panel model
type Options struct {
	Endpoint proxyapi.Endpoint
	// Input pre-fills the query field
	Input string
	// AutoRun submits Input as soon as the program starts
	AutoRun bool
	Logger  logger.Logger
}

type keyMap struct {
	Submit   key.Binding
	Next     key.Binding
	Prev     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.Prev, k.PageDown, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Next, k.Prev},
		{k.PageUp, k.PageDown, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "test API")),
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next endpoint")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev endpoint")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "up"), key.WithHelp("pgup", "scroll up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "down"), key.WithHelp("pgdn", "scroll")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// Model is the bubbletea model of the query panel. All panel state lives in
// state and is only changed from Update.
type Model struct {
	ctx     context.Context
	fetcher panel.Fetcher
	log     logger.Logger
	state   *panel.State

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	autoRun bool
	width   int
	height  int
	ready   bool
}

// NewModel creates a panel model that fetches through f
func NewModel(ctx context.Context, f panel.Fetcher, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logger.GetLogger()
	}

	ti := textinput.New()
	ti.Placeholder = render.InputPlaceholder
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Width = 40
	ti.SetValue(opts.Input)
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	state := panel.New(opts.Endpoint)
	state.EditInput(opts.Input)

	return &Model{
		ctx:      ctx,
		fetcher:  f,
		log:      opts.Logger,
		state:    state,
		input:    ti,
		spinner:  s,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     defaultKeyMap(),
		autoRun:  opts.AutoRun,
	}
}

// Init starts the cursor blink and, with AutoRun, the first fetch
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.autoRun {
		cmds = append(cmds, m.submit())
	}
	return tea.Batch(cmds...)
}

// State exposes the panel state for inspection
func (m *Model) State() *panel.State {
	return m.state
}
