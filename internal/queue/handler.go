package queue

import (
	"context"
	"encoding/json"
	"fmt"
)

type (
	// Handler processes tasks of one named type.
	Handler interface {
		Name() string
		Handle(ctx context.Context, payload json.RawMessage) error
	}

	// TaskHandlerFunc is a typed handler function for payloads of type T.
	TaskHandlerFunc[T any] func(ctx context.Context, payload T) error
)

// NewTaskHandler wraps a typed handler function into a Handler, unmarshaling
// the raw task payload into T before invocation.
func NewTaskHandler[T any](name string, fn TaskHandlerFunc[T]) Handler {
	return &taskHandler[T]{name: name, fn: fn}
}

type taskHandler[T any] struct {
	name string
	fn   TaskHandlerFunc[T]
}

func (h *taskHandler[T]) Name() string { return h.name }

func (h *taskHandler[T]) Handle(ctx context.Context, payload json.RawMessage) error {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return fmt.Errorf("failed to unmarshal payload for task %q: %w", h.name, err)
	}
	return h.fn(ctx, v)
}
