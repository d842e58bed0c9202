package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todoview/internal/keys"
	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/store"
	"github.com/nhle/todoview/internal/theme"
)

// RecordsLoadedMsg carries journal rows read from the store.
type RecordsLoadedMsg struct {
	Records []model.FetchRecord
	// Total is the number of rows in the journal, which can exceed
	// len(Records) until the next write prunes it.
	Total int
	Err   error
}

// BackMsg is sent when the user leaves the history view.
type BackMsg struct{}

// Model shows the most recent fetch journal entries.
type Model struct {
	store    store.Store
	keys     *keys.KeyMap
	limit    int
	records  []model.FetchRecord
	total    int
	err      error
	loading  bool
	viewport viewport.Model
	width    int
	height   int
}

// New creates a history view. A nil store means the journal is disabled.
func New(s store.Store, k *keys.KeyMap, limit, width, height int) Model {
	vp := viewport.New(width, height-2)
	return Model{
		store:    s,
		keys:     k,
		limit:    limit,
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// Init reloads the journal.
func (m *Model) Init() tea.Cmd {
	if m.store == nil {
		return nil
	}
	m.loading = true
	return m.LoadRecords()
}

// LoadRecords returns a command reading the latest records.
func (m Model) LoadRecords() tea.Cmd {
	s := m.store
	limit := m.limit
	return func() tea.Msg {
		ctx := context.Background()
		records, err := s.GetFetchRecords(ctx, store.FetchRecordFilter{
			Limit: limit,
		})
		if err != nil {
			return RecordsLoadedMsg{Err: err}
		}
		total, err := s.CountFetchRecords(ctx, store.FetchRecordFilter{})
		return RecordsLoadedMsg{Records: records, Total: total, Err: err}
	}
}

// Update handles messages for the history view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RecordsLoadedMsg:
		m.loading = false
		m.records = msg.Records
		m.total = msg.Total
		m.err = msg.Err
		m.viewport.SetContent(m.renderRecords())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the history view.
func (m Model) View() string {
	center := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	switch {
	case m.store == nil:
		return center.Render("Fetch history is disabled (journal.enabled: false)")
	case m.loading:
		return center.Render("Loading history...")
	case m.err != nil:
		return center.Render(theme.ErrorStyle.Render("Failed to read history: " + m.err.Error()))
	case len(m.records) == 0:
		return center.Render("No fetches recorded yet")
	}

	heading := fmt.Sprintf("Fetch history (%d)", len(m.records))
	if m.total > len(m.records) {
		heading = fmt.Sprintf("Fetch history (showing %d of %d)", len(m.records), m.total)
	}
	title := theme.HeaderStyle.Render(heading)
	return lipgloss.JoinVertical(lipgloss.Left, title, "", m.viewport.View())
}

// renderRecords formats one line per record.
func (m Model) renderRecords() string {
	var b strings.Builder
	for i, r := range m.records {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderRecord(r))
	}
	return b.String()
}

// renderRecord formats a single journal row.
func renderRecord(r model.FetchRecord) string {
	when := r.FinishedAt.Local().Format("2006-01-02 15:04:05")
	outcome := theme.OutcomeStyle(r.Outcome).Render(fmt.Sprintf("%-15s", r.Outcome))
	elapsed := r.Duration().Round(time.Millisecond)

	detail := fmt.Sprintf("%d items", r.ItemCount)
	if r.Failed() {
		detail = r.Error
	}

	return fmt.Sprintf("%s %s %8s  %s",
		theme.DimmedStyle.Render(when), outcome, elapsed, detail)
}

// Records returns the loaded records.
func (m Model) Records() []model.FetchRecord {
	return m.records
}

// SetSize updates the history view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
