package placeholder

import (
	"context"

	"github.com/nhle/todoview/internal/model"
	"github.com/nhle/todoview/internal/source"
)

// Adapter implements source.Source for JSONPlaceholder.
type Adapter struct {
	client *Client
}

// NewAdapter creates a new JSONPlaceholder source adapter.
func NewAdapter(endpoint string, opts ...Option) *Adapter {
	return &Adapter{client: NewClient(endpoint, opts...)}
}

// Type returns the source type identifier for JSONPlaceholder.
func (a *Adapter) Type() source.SourceType {
	return source.SourceTypePlaceholder
}

// Endpoint returns the URL todos are fetched from.
func (a *Adapter) Endpoint() string {
	return a.client.Endpoint()
}

// FetchTodos retrieves the full todo list in a single request.
func (a *Adapter) FetchTodos(ctx context.Context) ([]model.TodoItem, error) {
	todos, err := a.client.GetTodos(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]model.TodoItem, 0, len(todos))
	for _, t := range todos {
		items = append(items, todoToItem(t))
	}
	return items, nil
}

// todoToItem converts the wire type to a model.TodoItem.
func todoToItem(t Todo) model.TodoItem {
	return model.TodoItem{
		UserID:    t.UserID,
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
	}
}
