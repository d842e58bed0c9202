package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/todoview/internal/logging"
	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/ui/settings"
)

// configSavedMsg reports the outcome of persisting the configuration.
type configSavedMsg struct {
	err error
}

// applySettings updates the live configuration and log level, then
// persists the configuration when a path is known.
func (m *Model) applySettings(msg settings.SavedMsg) tea.Cmd {
	m.cfg.Journal.Enabled = msg.JournalEnabled
	m.cfg.Log.Level = msg.LogLevel
	logging.SetLevel(msg.LogLevel)

	m.log.Info().
		Bool("journal", msg.JournalEnabled).
		Str("level", msg.LogLevel).
		Msg("settings updated")

	if msg.JournalEnabled && m.journal == nil {
		m.statusMessage = "fetch history takes effect after restart"
	}

	if m.configPath == "" {
		return nil
	}

	path := m.configPath
	cfg := *m.cfg
	return func() tea.Msg {
		return configSavedMsg{err: model.SaveConfig(path, &cfg)}
	}
}
