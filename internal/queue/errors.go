package queue

import "errors"

var (
	// ErrQueueFull is returned when the task buffer has no free slot.
	ErrQueueFull = errors.New("queue is full")

	// ErrTaskNameEmpty is returned when enqueueing a task without a name.
	ErrTaskNameEmpty = errors.New("task name cannot be empty")

	// ErrHandlerNil is returned when registering a nil handler.
	ErrHandlerNil = errors.New("handler cannot be nil")

	// ErrHandlerAlreadyRegistered is returned on duplicate handler registration.
	ErrHandlerAlreadyRegistered = errors.New("handler already registered")

	// ErrNoHandlers is returned when the queue is started without handlers.
	ErrNoHandlers = errors.New("no task handlers registered")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("queue already started")

	// ErrNotStarted is returned when Stop is called before Start.
	ErrNotStarted = errors.New("queue not started")

	// ErrQueueStopped is returned when enqueueing or starting after Stop.
	ErrQueueStopped = errors.New("queue is stopped")
)
