package queue_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/submitd/internal/queue"
)

type testPayload struct {
	Value string `json:"value"`
}

// collector records handled payloads and signals completion.
type collector struct {
	mu       sync.Mutex
	payloads []testPayload
	done     chan struct{}
	expect   int
	err      error
}

func newCollector(expect int) *collector {
	return &collector{done: make(chan struct{}), expect: expect}
}

func (c *collector) handle(ctx context.Context, p testPayload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payloads = append(c.payloads, p)
	if len(c.payloads) == c.expect {
		close(c.done)
	}
	return c.err
}

func (c *collector) wait(t *testing.T) {
	t.Helper()
	select {
	case <-c.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for tasks")
	}
}

func TestQueue_ProcessesEnqueuedTasks(t *testing.T) {
	t.Parallel()

	c := newCollector(3)
	q := queue.New(queue.WithWorkers(2), queue.WithCapacity(8))
	require.NoError(t, q.RegisterHandler(queue.NewTaskHandler("test.task", c.handle)))

	require.NoError(t, q.Start(context.Background()))
	t.Cleanup(func() { _ = q.Stop() })

	for _, v := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(context.Background(), "test.task", testPayload{Value: v}))
	}

	c.wait(t)

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Len(t, c.payloads, 3)
}

func TestQueue_EnqueueFullBuffer(t *testing.T) {
	t.Parallel()

	// One-slot buffer, never started: the second enqueue must fail fast.
	q := queue.New(queue.WithCapacity(1))

	require.NoError(t, q.Enqueue(context.Background(), "test.task", testPayload{}))
	err := q.Enqueue(context.Background(), "test.task", testPayload{})
	assert.ErrorIs(t, err, queue.ErrQueueFull)
	assert.Equal(t, 1, q.Len())
}

func TestQueue_EnqueueValidation(t *testing.T) {
	t.Parallel()

	q := queue.New()

	err := q.Enqueue(context.Background(), "", testPayload{})
	assert.ErrorIs(t, err, queue.ErrTaskNameEmpty)

	err = q.Enqueue(context.Background(), "test.task", func() {})
	assert.Error(t, err)
}

func TestQueue_HandlerRegistration(t *testing.T) {
	t.Parallel()

	q := queue.New()
	h := queue.NewTaskHandler("test.task", func(ctx context.Context, p testPayload) error { return nil })

	require.NoError(t, q.RegisterHandler(h))
	assert.ErrorIs(t, q.RegisterHandler(h), queue.ErrHandlerAlreadyRegistered)
	assert.ErrorIs(t, q.RegisterHandler(nil), queue.ErrHandlerNil)
}

func TestQueue_StartRequiresHandlers(t *testing.T) {
	t.Parallel()

	q := queue.New()
	assert.ErrorIs(t, q.Start(context.Background()), queue.ErrNoHandlers)
}

func TestQueue_StartTwice(t *testing.T) {
	t.Parallel()

	q := queue.New()
	require.NoError(t, q.RegisterHandler(
		queue.NewTaskHandler("test.task", func(ctx context.Context, p testPayload) error { return nil })))

	require.NoError(t, q.Start(context.Background()))
	assert.ErrorIs(t, q.Start(context.Background()), queue.ErrAlreadyStarted)
	require.NoError(t, q.Stop())
}

func TestQueue_StopDrainsBufferedTasks(t *testing.T) {
	t.Parallel()

	c := newCollector(5)
	q := queue.New(queue.WithWorkers(1), queue.WithCapacity(8))
	require.NoError(t, q.RegisterHandler(queue.NewTaskHandler("test.task", c.handle)))

	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(context.Background(), "test.task", testPayload{Value: string(rune('a' + i))}))
	}

	require.NoError(t, q.Start(context.Background()))
	require.NoError(t, q.Stop())

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Len(t, c.payloads, 5)
}

func TestQueue_EnqueueAfterStop(t *testing.T) {
	t.Parallel()

	// A producer racing graceful shutdown must get an error back, never a
	// send on a closed channel.
	q := queue.New(queue.WithWorkers(1))
	require.NoError(t, q.RegisterHandler(
		queue.NewTaskHandler("test.task", func(ctx context.Context, p testPayload) error { return nil })))
	require.NoError(t, q.Start(context.Background()))
	require.NoError(t, q.Stop())

	assert.NotPanics(t, func() {
		err := q.Enqueue(context.Background(), "test.task", testPayload{Value: "late"})
		assert.ErrorIs(t, err, queue.ErrQueueStopped)
	})
	assert.Zero(t, q.Len())

	assert.ErrorIs(t, q.Start(context.Background()), queue.ErrQueueStopped)
}

func TestQueue_HandlerFailureIsContained(t *testing.T) {
	t.Parallel()

	c := newCollector(2)
	c.err = errors.New("handler failed")

	q := queue.New(queue.WithWorkers(1))
	require.NoError(t, q.RegisterHandler(queue.NewTaskHandler("test.task", c.handle)))
	require.NoError(t, q.Start(context.Background()))
	t.Cleanup(func() { _ = q.Stop() })

	require.NoError(t, q.Enqueue(context.Background(), "test.task", testPayload{Value: "a"}))
	require.NoError(t, q.Enqueue(context.Background(), "test.task", testPayload{Value: "b"}))

	// The second task is still processed after the first one fails.
	c.wait(t)
}

func TestQueue_PanicIsRecovered(t *testing.T) {
	t.Parallel()

	c := newCollector(1)
	q := queue.New(queue.WithWorkers(1))
	require.NoError(t, q.RegisterHandler(
		queue.NewTaskHandler("test.panic", func(ctx context.Context, p testPayload) error {
			panic("boom")
		})))
	require.NoError(t, q.RegisterHandler(queue.NewTaskHandler("test.task", c.handle)))
	require.NoError(t, q.Start(context.Background()))
	t.Cleanup(func() { _ = q.Stop() })

	require.NoError(t, q.Enqueue(context.Background(), "test.panic", testPayload{}))
	require.NoError(t, q.Enqueue(context.Background(), "test.task", testPayload{Value: "after"}))

	// The worker survives the panic and keeps processing.
	c.wait(t)
}
