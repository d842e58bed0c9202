package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todoview/internal/keys"
	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// Model is the todo detail view component.
type Model struct {
	todo     *model.TodoItem
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new detail view model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		return m, func() tea.Msg {
			return BackMsg{}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.todo == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No todo selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.todo == nil {
		return ""
	}

	todo := m.todo
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(todo.Title))

	status := todo.Status()
	sections = append(sections, theme.StatusStyle(status).Render(strings.ToUpper(status)))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	sections = append(sections, fmt.Sprintf(
		"%s    %s",
		metaStyle.Render("ID:"),
		valStyle.Render(fmt.Sprintf("%d", todo.ID)),
	))
	sections = append(sections, fmt.Sprintf(
		"%s  %s",
		metaStyle.Render("User:"),
		valStyle.Render(fmt.Sprintf("%d", todo.UserID)),
	))

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	sections = append(sections, "")
	sections = append(sections, sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 0))))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetTodo updates the todo being displayed and re-renders the content.
func (m *Model) SetTodo(todo model.TodoItem) {
	m.todo = &todo
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.todo != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
