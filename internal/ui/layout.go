package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todoview/internal/theme"
)

// Layout manages the page dimensions: a header bar, a counter row, the
// main content area and a status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	CounterHeight   int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		CounterHeight:   2,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height left for the main content area.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.CounterHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// fill pads rendered to the full width using style's background.
func (l Layout) fill(style lipgloss.Style, parts ...string) string {
	used := 0
	for _, p := range parts {
		used += lipgloss.Width(p)
	}

	gap := l.Width - used
	if gap < 0 {
		gap = 0
	}

	return lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")
}

// RenderHeader renders the top bar with a title on the left and the
// fetch status on the right.
func (l Layout) RenderHeader(title string, status string) string {
	titleRendered := theme.HeaderStyle.Render(title)
	statusRendered := theme.HeaderStyle.Align(lipgloss.Right).Render(status)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		l.fill(theme.HeaderStyle, titleRendered, statusRendered),
		statusRendered,
	)
}

// RenderCounter renders the counter row with a bottom margin.
func (l Layout) RenderCounter(counter string) string {
	return lipgloss.NewStyle().
		PaddingLeft(1).
		Height(l.CounterHeight).
		Render(counter)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		rendered,
		l.fill(theme.StatusBarStyle, rendered),
	)
}

// RenderPage vertically joins all page sections.
func (l Layout) RenderPage(header, counter, content, statusBar string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		counter,
		content,
		statusBar,
	)
}
