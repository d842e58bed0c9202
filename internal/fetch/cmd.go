package fetch

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ResultMsg is the tea.Msg delivered when an activation started by Cmd
// resolves. Consumers compare ActivationID with their current activation
// and drop messages from activations that have since been torn down.
type ResultMsg struct {
	ActivationID string
	Result       Result
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Cmd returns a tea.Cmd that starts a, waits for its fetch and reports
// the result as a ResultMsg. If a is deactivated before the fetch
// resolves the command produces no message.
func Cmd(a *Activation) tea.Cmd {
	return func() tea.Msg {
		a.Start(context.Background())
		<-a.Done()

		res, finishedAt, ok := a.Result()
		if !ok {
			return nil
		}
		return ResultMsg{
			ActivationID: a.ID(),
			Result:       res,
			StartedAt:    a.StartedAt(),
			FinishedAt:   finishedAt,
		}
	}
}
