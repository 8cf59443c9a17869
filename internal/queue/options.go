package queue

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring a queue.
type Option func(*options)

type options struct {
	capacity    int
	workers     int
	taskTimeout time.Duration
	logger      *slog.Logger
}

// WithCapacity sets the task buffer size.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

// WithWorkers sets the number of concurrent workers.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithTaskTimeout bounds the execution time of a single task.
func WithTaskTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.taskTimeout = d
		}
	}
}

// WithLogger sets the logger for the queue.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
