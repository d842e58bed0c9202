package fetch

import "github.com/nhle/todoview/internal/model"

// State is the observable triple exposed to consumers of an activation.
type State struct {
	Items     []model.TodoItem
	IsLoading bool
	Err       error
}

// InitialState is the state every activation starts from.
func InitialState() State {
	return State{Items: []model.TodoItem{}, IsLoading: true}
}

// Resolve returns the terminal state for res.
func Resolve(res Result) State {
	if res.Failure != nil {
		return State{Items: []model.TodoItem{}, IsLoading: false, Err: res.Failure}
	}
	return State{Items: res.Items, IsLoading: false}
}
