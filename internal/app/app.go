package app

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nhle/todoview/internal/fetch"
	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/store"
	"github.com/nhle/todoview/internal/ui"
	"github.com/nhle/todoview/internal/ui/counter"
	"github.com/nhle/todoview/internal/ui/detail"
	helpview "github.com/nhle/todoview/internal/ui/help"
	"github.com/nhle/todoview/internal/ui/history"
	"github.com/nhle/todoview/internal/ui/settings"
	"github.com/nhle/todoview/internal/ui/todolist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewPage ViewState = iota
	ViewDetail
	ViewHistory
	ViewSettings
	ViewHelp
)

// Deps are the collaborators the root model is built from.
type Deps struct {
	Config     *model.AppConfig
	ConfigPath string
	Fetcher    *fetch.Fetcher

	// Journal is nil when fetch history is disabled.
	Journal store.Store

	Logger zerolog.Logger
}

// Model is the root Bubble Tea model: the page (counter + todo list) and
// the auxiliary detail, history, settings and help views.
type Model struct {
	currentView   ViewState
	previousView  ViewState
	layout        ui.Layout
	cfg           *model.AppConfig
	configPath    string
	journal       store.Store
	log           zerolog.Logger
	keys          *KeyMap
	counter       counter.Model
	todoList      todolist.Model
	detailView    detail.Model
	historyView   history.Model
	settingsView  settings.Model
	helpView      helpview.Model
	ready         bool
	statusMessage string
}

// New creates a new root application model.
func New(d Deps) Model {
	keys := DefaultKeyMap()

	cfg := d.Config
	if cfg == nil {
		cfg = model.DefaultAppConfig()
	}

	return Model{
		currentView:  ViewPage,
		cfg:          cfg,
		configPath:   d.ConfigPath,
		journal:      d.Journal,
		log:          d.Logger,
		keys:         keys,
		counter:      counter.New(keys),
		todoList:     todolist.New(d.Fetcher, keys, 80, 20),
		detailView:   detail.New(keys, 80, 20),
		historyView:  history.New(d.Journal, keys, cfg.Journal.Limit, 80, 20),
		settingsView: settings.New(80, 20),
		helpView:     helpview.New(keys, 80, 20),
	}
}

// Init activates the todo list, which issues its single fetch.
func (m Model) Init() tea.Cmd {
	return m.todoList.Init()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.todoList.SetSize(w, h)
		m.detailView.SetSize(w, h)
		m.historyView.SetSize(w, h)
		m.settingsView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		return m.updateActiveView(msg)

	// Fetch progress always belongs to the todo list, whichever view is
	// in front.
	case fetch.ResultMsg, spinner.TickMsg:
		var cmd tea.Cmd
		m.todoList, cmd = m.todoList.Update(msg)
		return m, cmd

	case todolist.ResolvedMsg:
		return m, m.recordFetch(msg)

	case journalWrittenMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Msg("writing fetch journal")
			m.statusMessage = "could not record fetch: " + msg.err.Error()
			return m, nil
		}
		if m.currentView == ViewHistory {
			return m, m.historyView.LoadRecords()
		}
		return m, nil

	case history.RecordsLoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case history.BackMsg, detail.BackMsg:
		m.currentView = ViewPage
		return m, nil

	case settings.SavedMsg:
		m.currentView = ViewPage
		cmd := m.applySettings(msg)
		return m, cmd

	case settings.CancelMsg:
		m.currentView = ViewPage
		return m, nil

	case configSavedMsg:
		if msg.err != nil {
			m.log.Error().Err(msg.err).Str("path", m.configPath).Msg("saving config")
			m.statusMessage = "could not save settings: " + msg.err.Error()
		} else {
			m.statusMessage = "settings saved"
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}

		// The settings form owns the keyboard while it is open.
		if m.currentView == ViewSettings {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.currentView == ViewPage {
				return m.quit()
			}

		case key.Matches(msg, m.keys.Help):
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case key.Matches(msg, m.keys.Back):
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}

		case key.Matches(msg, m.keys.Open):
			if m.currentView == ViewPage {
				if todo, ok := m.todoList.SelectedTodo(); ok {
					m.detailView.SetTodo(todo)
					m.currentView = ViewDetail
					return m, nil
				}
			}

		case key.Matches(msg, m.keys.Increment):
			if m.currentView == ViewPage {
				var cmd tea.Cmd
				m.counter, cmd = m.counter.Update(msg)
				return m, cmd
			}

		case key.Matches(msg, m.keys.Reload):
			if m.currentView == ViewPage {
				m.statusMessage = ""
				return m, m.todoList.Activate()
			}

		case key.Matches(msg, m.keys.History):
			if m.currentView == ViewPage {
				m.previousView = m.currentView
				m.currentView = ViewHistory
				return m, m.historyView.Init()
			}

		case key.Matches(msg, m.keys.Settings):
			if m.currentView == ViewPage {
				m.previousView = m.currentView
				m.currentView = ViewSettings
				return m, m.settingsView.Start(m.cfg)
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// quit tears down the todo list activation and exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.todoList.Deactivate()
	return m, tea.Quit
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewPage:
		m.todoList, cmd = m.todoList.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("todoview", m.todoList.StatusSummary())
	counterRow := m.layout.RenderCounter(m.counter.View())
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderPage(header, counterRow, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewPage:
		return m.todoList.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewHelp:
		return m.helpView.View()
	default:
		return ""
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.statusMessage != "" && m.currentView == ViewPage {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewHistory, ViewDetail:
		return "esc back | j/k scroll"
	case ViewSettings:
		return "enter submit | esc cancel"
	default:
		return m.helpView.ShortView()
	}
}

// CurrentView returns the active view.
func (m Model) CurrentView() ViewState {
	return m.currentView
}

// Count returns the counter value.
func (m Model) Count() int {
	return m.counter.Count()
}

// TodoState returns the todo list's fetch state.
func (m Model) TodoState() fetch.State {
	return m.todoList.State()
}
