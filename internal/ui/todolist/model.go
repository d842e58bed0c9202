package todolist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todoview/internal/fetch"
	"github.com/nhle/todoview/internal/keys"
	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/theme"
)

// ResolvedMsg is emitted once per activation when its fetch result has
// been applied to the view.
type ResolvedMsg struct {
	fetch.ResultMsg
	Endpoint string
}

// Model is the todo list view. Creating it (or calling Activate) is an
// activation: the state resets to loading and one fetch is issued.
type Model struct {
	fetcher    *fetch.Fetcher
	keys       *keys.KeyMap
	list       list.Model
	spinner    spinner.Model
	activation *fetch.Activation
	state      fetch.State
	width      int
	height     int
}

// New creates a new todo list model in its initial loading state. The
// fetch itself starts with the command returned by Init.
func New(f *fetch.Fetcher, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Todos"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		fetcher:    f,
		keys:       k,
		list:       l,
		spinner:    sp,
		activation: f.NewActivation(nil),
		state:      fetch.InitialState(),
		width:      width,
		height:     height,
	}
}

// Init starts the fetch for the activation created by New.
func (m Model) Init() tea.Cmd {
	return m.start()
}

// Activate tears down the current activation and starts a fresh one from
// the initial state.
func (m *Model) Activate() tea.Cmd {
	m.Deactivate()
	m.activation = m.fetcher.NewActivation(nil)
	m.state = fetch.InitialState()
	m.list.SetItems(nil)
	return m.start()
}

// Deactivate detaches the view from its activation; a result arriving
// afterwards is ignored.
func (m *Model) Deactivate() {
	if m.activation != nil {
		m.activation.Deactivate()
		m.activation = nil
	}
}

// start returns the commands for the current activation.
func (m Model) start() tea.Cmd {
	if m.activation == nil {
		return nil
	}
	return tea.Batch(
		m.spinner.Tick,
		fetch.Cmd(m.activation),
	)
}

// Update handles messages for the todo list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetch.ResultMsg:
		// Stale (torn down or replaced) activations and duplicates are no-ops.
		if m.activation == nil || msg.ActivationID != m.activation.ID() || !m.state.IsLoading {
			return m, nil
		}
		m.state = fetch.Resolve(msg.Result)
		cmd := m.list.SetItems(toListItems(m.state.Items))
		resolved := ResolvedMsg{ResultMsg: msg, Endpoint: m.fetcher.Endpoint()}
		return m, tea.Batch(cmd, func() tea.Msg { return resolved })

	case spinner.TickMsg:
		if !m.state.IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state.IsLoading || m.state.Err != nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the todo list, or the loading / error state.
func (m Model) View() string {
	center := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center)

	switch {
	case m.state.IsLoading:
		return center.Render(m.spinner.View() + " Loading todos...")

	case m.state.Err != nil:
		body := lipgloss.JoinVertical(lipgloss.Center,
			theme.ErrorStyle.Render("Failed to load todos"),
			m.state.Err.Error(),
			"",
			theme.HelpStyle.Render(fmt.Sprintf("press %s to reload", m.keys.Reload.Help().Key)),
		)
		return center.Render(body)

	case len(m.state.Items) == 0:
		return center.Foreground(theme.ColorGray).Render("No todos")
	}

	return m.list.View()
}

// State returns the current fetch state.
func (m Model) State() fetch.State {
	return m.state
}

// ActivationID returns the current activation, or "" when deactivated.
func (m Model) ActivationID() string {
	if m.activation == nil {
		return ""
	}
	return m.activation.ID()
}

// SelectedTodo returns the highlighted todo once the list has loaded.
func (m Model) SelectedTodo() (model.TodoItem, bool) {
	if m.state.IsLoading || m.state.Err != nil {
		return model.TodoItem{}, false
	}
	item, ok := m.list.SelectedItem().(TodoListItem)
	if !ok {
		return model.TodoItem{}, false
	}
	return item.Todo, true
}

// StatusSummary is a short header string for the current state.
func (m Model) StatusSummary() string {
	switch {
	case m.state.IsLoading:
		return "loading"
	case m.state.Err != nil:
		return "error"
	default:
		return fmt.Sprintf("%d todos", len(m.state.Items))
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
