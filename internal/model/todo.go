package model

// TodoItem is a single todo record as served by the remote endpoint.
// Values are kept exactly as received and never mutated locally.
type TodoItem struct {
	UserID    int    `json:"userId" db:"user_id"`
	ID        int    `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Completed bool   `json:"completed" db:"completed"`
}

// Status returns the display status of the item.
func (t TodoItem) Status() string {
	if t.Completed {
		return TodoStatusComplete
	}
	return TodoStatusOpen
}

// Todo status constants.
const (
	TodoStatusOpen     = "open"
	TodoStatusComplete = "complete"
)
