package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/ui/todolist"
)

// journalWrittenMsg reports the outcome of a journal write.
type journalWrittenMsg struct {
	err error
}

// recordFetch returns a command that appends the resolved activation to
// the journal and trims it to the configured limit. It is nil when the
// journal is disabled.
func (m Model) recordFetch(msg todolist.ResolvedMsg) tea.Cmd {
	if m.journal == nil || !m.cfg.Journal.Enabled {
		return nil
	}

	s := m.journal
	limit := m.cfg.Journal.Limit
	rec := fetchRecord(msg)

	return func() tea.Msg {
		ctx := context.Background()
		if err := s.RecordFetch(ctx, rec); err != nil {
			return journalWrittenMsg{err: err}
		}
		_, err := s.PruneFetchRecords(ctx, limit)
		return journalWrittenMsg{err: err}
	}
}

// fetchRecord converts a resolved activation into a journal row.
func fetchRecord(msg todolist.ResolvedMsg) model.FetchRecord {
	rec := model.FetchRecord{
		ActivationID: msg.ActivationID,
		Endpoint:     msg.Endpoint,
		Outcome:      msg.Result.Outcome(),
		StatusCode:   msg.Result.StatusCode(),
		ItemCount:    len(msg.Result.Items),
		StartedAt:    msg.StartedAt,
		FinishedAt:   msg.FinishedAt,
	}
	if !msg.Result.OK() {
		rec.Error = msg.Result.Failure.Error()
	}
	return rec
}
