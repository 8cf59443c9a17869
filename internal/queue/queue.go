package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Task is one unit of background work.
type Task struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// Queue is a bounded in-memory task queue consumed by a worker pool.
//
// Enqueue never blocks the caller: when the buffer is full it fails with
// ErrQueueFull so task accumulation stays observable and bounded instead of
// growing an unbounded set of spawned goroutines. Each task is processed by
// exactly one worker; handler failures are contained here and never propagate
// to the enqueuing request path.
type Queue struct {
	tasks    chan Task
	done     chan struct{}
	handlers map[string]Handler
	mu       sync.RWMutex
	stopped  bool

	taskTimeout time.Duration
	workers     int
	logger      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a queue with the given options.
func New(opts ...Option) *Queue {
	options := &options{
		capacity:    256,
		workers:     4,
		taskTimeout: time.Minute,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	return &Queue{
		tasks:       make(chan Task, options.capacity),
		done:        make(chan struct{}),
		handlers:    make(map[string]Handler),
		taskTimeout: options.taskTimeout,
		workers:     options.workers,
		logger:      options.logger,
	}
}

// NewFromConfig creates a queue from environment-driven Config.
func NewFromConfig(cfg Config, opts ...Option) *Queue {
	configOpts := make([]Option, 0, len(opts)+3)
	if cfg.Capacity > 0 {
		configOpts = append(configOpts, WithCapacity(cfg.Capacity))
	}
	if cfg.Workers > 0 {
		configOpts = append(configOpts, WithWorkers(cfg.Workers))
	}
	if cfg.TaskTimeout > 0 {
		configOpts = append(configOpts, WithTaskTimeout(cfg.TaskTimeout))
	}
	configOpts = append(configOpts, opts...)
	return New(configOpts...)
}

// RegisterHandler registers a task handler by its name.
func (q *Queue) RegisterHandler(h Handler) error {
	if h == nil {
		return ErrHandlerNil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.handlers[h.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrHandlerAlreadyRegistered, h.Name())
	}
	q.handlers[h.Name()] = h
	return nil
}

// Enqueue adds a task to the queue without blocking.
// The payload is marshaled to JSON before the task enters the buffer, so the
// caller may freely mutate it afterwards.
func (q *Queue) Enqueue(ctx context.Context, name string, payload any) error {
	if name == "" {
		return ErrTaskNameEmpty
	}

	q.mu.RLock()
	stopped := q.stopped
	q.mu.RUnlock()
	if stopped {
		return fmt.Errorf("%w: task %q dropped", ErrQueueStopped, name)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload for task %q: %w", name, err)
	}

	task := Task{
		ID:         uuid.New(),
		Name:       name,
		Payload:    data,
		EnqueuedAt: time.Now(),
	}

	select {
	case q.tasks <- task:
		return nil
	default:
		return fmt.Errorf("%w: task %q dropped", ErrQueueFull, name)
	}
}

// Start launches the worker pool. It returns an error when no handlers are
// registered or the queue is already running.
func (q *Queue) Start(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		return ErrQueueStopped
	}
	if q.cancel != nil {
		return ErrAlreadyStarted
	}
	if len(q.handlers) == 0 {
		return ErrNoHandlers
	}

	q.ctx, q.cancel = context.WithCancel(ctx)

	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}

	q.logger.Info("queue started",
		slog.Int("workers", q.workers),
		slog.Int("capacity", cap(q.tasks)))

	return nil
}

// Stop shuts the queue down, waiting for in-flight tasks to finish.
// Tasks still buffered are drained before workers exit. The task channel is
// never closed: producers may race graceful shutdown, so a late Enqueue must
// fail with ErrQueueStopped instead of panicking.
func (q *Queue) Stop() error {
	q.mu.Lock()
	if q.cancel == nil {
		q.mu.Unlock()
		return ErrNotStarted
	}
	q.stopped = true
	cancel := q.cancel
	q.cancel = nil
	q.mu.Unlock()

	close(q.done)
	q.wg.Wait()
	cancel()

	q.logger.Info("queue stopped")
	return nil
}

// Run starts the queue and returns a function suitable for errgroup.
func (q *Queue) Run(ctx context.Context) func() error {
	return func() error {
		if err := q.Start(ctx); err != nil {
			return err
		}
		<-ctx.Done()
		return q.Stop()
	}
}

// Len reports the number of buffered tasks awaiting a worker.
func (q *Queue) Len() int {
	return len(q.tasks)
}

func (q *Queue) worker(id int) {
	defer q.wg.Done()

	for {
		select {
		case task := <-q.tasks:
			q.process(id, task)
		case <-q.done:
			// Drain whatever is still buffered, then exit.
			for {
				select {
				case task := <-q.tasks:
					q.process(id, task)
				default:
					return
				}
			}
		}
	}
}

func (q *Queue) process(workerID int, task Task) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			q.logger.Error("task handler panicked",
				slog.Int("worker", workerID),
				slog.String("task_id", task.ID.String()),
				slog.String("task_name", task.Name),
				slog.Any("panic", r))
		}
	}()

	q.mu.RLock()
	handler, ok := q.handlers[task.Name]
	q.mu.RUnlock()

	if !ok {
		q.logger.Error("no handler registered for task",
			slog.Int("worker", workerID),
			slog.String("task_id", task.ID.String()),
			slog.String("task_name", task.Name))
		return
	}

	// The task context is deliberately detached from the queue lifecycle so
	// graceful shutdown lets in-flight tasks complete.
	ctx, cancel := context.WithTimeout(context.Background(), q.taskTimeout)
	defer cancel()

	if err := handler.Handle(ctx, task.Payload); err != nil {
		q.logger.Error("task failed",
			slog.Int("worker", workerID),
			slog.String("task_id", task.ID.String()),
			slog.String("task_name", task.Name),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", err.Error()))
		return
	}

	q.logger.Info("task completed",
		slog.Int("worker", workerID),
		slog.String("task_id", task.ID.String()),
		slog.String("task_name", task.Name),
		slog.Duration("duration", time.Since(start)))
}
