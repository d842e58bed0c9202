package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todoview/internal/model"
)

func TestStartSeedsBindingsFromConfig(t *testing.T) {
	cfg := model.DefaultAppConfig()
	cfg.Journal.Enabled = false
	cfg.Log.Level = "debug"

	m := New(80, 24)
	m.Start(cfg)

	require.NotNil(t, m.form)
	assert.False(t, m.fb.journalEnabled)
	assert.Equal(t, "debug", m.fb.logLevel)
	assert.Contains(t, m.View(), "Settings")
}

func TestCompletedFormEmitsSaved(t *testing.T) {
	m := New(80, 24)
	m.Start(model.DefaultAppConfig())
	m.fb.logLevel = "warn"
	m.form.State = huh.StateCompleted

	m, cmd := m.Update(nil)
	require.NotNil(t, cmd)
	assert.Equal(t, SavedMsg{JournalEnabled: true, LogLevel: "warn"}, cmd())
	assert.Empty(t, m.View())
}

func TestAbortedFormEmitsCancel(t *testing.T) {
	m := New(80, 24)
	m.Start(model.DefaultAppConfig())
	m.form.State = huh.StateAborted

	_, cmd := m.Update(nil)
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}

func TestUpdateWithoutFormIsNoop(t *testing.T) {
	m := New(80, 24)
	_, cmd := m.Update(nil)
	assert.Nil(t, cmd)
}

func TestEscCancelsForm(t *testing.T) {
	m := New(80, 24)
	m.Start(model.DefaultAppConfig())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
	assert.Empty(t, m.View())
}
