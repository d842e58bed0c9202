package todolist

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/theme"
)

// TodoListItem wraps a model.TodoItem so it can be used in a bubbles/list.
type TodoListItem struct {
	Todo model.TodoItem
}

// FilterValue returns the string used for fuzzy filtering.
func (i TodoListItem) FilterValue() string { return i.Todo.Title }

// Title returns the todo title for the list.
func (i TodoListItem) Title() string { return i.Todo.Title }

// Description returns a short summary line for the list.
func (i TodoListItem) Description() string {
	return fmt.Sprintf("#%d | user %d | %s", i.Todo.ID, i.Todo.UserID, i.Todo.Status())
}

// toListItems converts todos in order.
func toListItems(todos []model.TodoItem) []list.Item {
	items := make([]list.Item, len(todos))
	for i, t := range todos {
		items[i] = TodoListItem{Todo: t}
	}
	return items
}

// ItemDelegate implements list.ItemDelegate for rendering todo lines.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single todo line: checkbox, id, title, user.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TodoListItem)
	if !ok {
		return
	}
	todo := ti.Todo

	prefix := "○"
	if todo.Completed {
		prefix = "✓"
	}
	prefix = theme.StatusStyle(todo.Status()).Render(prefix)

	id := theme.DimmedStyle.Render(fmt.Sprintf("#%-3d", todo.ID))
	user := theme.DimmedStyle.Render(fmt.Sprintf("u%d", todo.UserID))

	// Leave room for prefix, id, user and padding.
	maxTitle := m.Width() - lipgloss.Width(prefix) - lipgloss.Width(id) - lipgloss.Width(user) - 8
	title := truncate(todo.Title, maxTitle)

	line := fmt.Sprintf("%s %s %s  %s", prefix, id, title, user)

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(line))
}

// truncate shortens s to at most n runes, adding an ellipsis.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
