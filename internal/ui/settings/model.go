package settings

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/theme"
)

// SavedMsg is dispatched when the user submits the settings form.
type SavedMsg struct {
	JournalEnabled bool
	LogLevel       string
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// logLevels are the selectable zerolog levels.
var logLevels = []string{"debug", "info", "warn", "error"}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	journalEnabled bool
	logLevel       string
}

// Model is the Bubble Tea model for the settings form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a settings form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{journalEnabled: true, logLevel: "info"},
		width:  width,
		height: height,
	}
}

// Start builds the form from the current configuration.
func (m *Model) Start(cfg *model.AppConfig) tea.Cmd {
	m.fb.journalEnabled = cfg.Journal.Enabled
	m.fb.logLevel = cfg.Log.Level
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the settings form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		saved := SavedMsg{
			JournalEnabled: m.fb.journalEnabled,
			LogLevel:       m.fb.logLevel,
		}
		m.form = nil
		return m, func() tea.Msg { return saved }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the settings form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Settings")

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(title + "\n" + m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth())
	}
}

func (m *Model) buildForm() *huh.Form {
	levelOpts := make([]huh.Option[string], 0, len(logLevels))
	for _, l := range logLevels {
		levelOpts = append(levelOpts, huh.NewOption(l, l))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Record fetch history").
				Description("Keep a local journal of each fetch outcome").
				Affirmative("Yes").
				Negative("No").
				Value(&m.fb.journalEnabled),
			huh.NewSelect[string]().
				Title("Log level").
				Options(levelOpts...).
				Value(&m.fb.logLevel),
		),
	).WithWidth(m.formWidth()).WithShowHelp(true)
}

func (m *Model) formWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}
