package counter

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todoview/internal/keys"
	"github.com/nhle/todoview/internal/theme"
)

// Model is a click counter: a number and a "+" button bound to a key.
type Model struct {
	keys  *keys.KeyMap
	count int
}

// New creates a counter starting at zero.
func New(k *keys.KeyMap) Model {
	return Model{keys: k}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update increments the count on the increment binding.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Increment) {
		m.count++
	}
	return m, nil
}

// Count returns the current value.
func (m Model) Count() int {
	return m.count
}

// View renders the value above its button.
func (m Model) View() string {
	return lipgloss.JoinHorizontal(lipgloss.Center,
		theme.CountStyle.Render(strconv.Itoa(m.count)),
		"  ",
		theme.ButtonStyle.Render("+"),
	)
}
