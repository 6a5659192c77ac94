package tasks

import (
	"context"
	"log/slog"
	"sync"

	"fym/proj/internal/metrics"
)

type Task = func()

// BackgroundTasks is a fixed pool of workers draining a bounded queue.
type BackgroundTasks struct {
	log        *slog.Logger
	tasks      chan Task
	maxWorkers int
	wg         *sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func New(log *slog.Logger, maxWorkers int, maxTasksQueueSize int) *BackgroundTasks {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	wg := &sync.WaitGroup{}
	wg.Add(maxWorkers)
	return &BackgroundTasks{
		log:        log,
		maxWorkers: maxWorkers,
		wg:         wg,
		tasks:      make(chan Task, maxTasksQueueSize),
	}
}

func (t *BackgroundTasks) Run() {
	for i := 0; i < t.maxWorkers; i++ {
		go func() {
			defer t.wg.Done()
			log := t.log.With("worker", i)
			for task := range t.tasks {
				metrics.TasksQueued.Set(float64(len(t.tasks)))
				t.run(log, task)
			}
		}()
	}
}

func (t *BackgroundTasks) run(log *slog.Logger, task Task) {
	defer func() {
		if err := recover(); err != nil {
			log.Error("panic", "err", err)
		}
	}()
	task()
}

// Add enqueues task, blocking while the queue is full. It reports false once
// the pool is shut down.
func (t *BackgroundTasks) Add(task Task) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return false
	}
	t.tasks <- task
	metrics.TasksQueued.Set(float64(len(t.tasks)))
	return true
}

// TryAdd enqueues task only if there is room right now.
func (t *BackgroundTasks) TryAdd(task Task) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return false
	}
	select {
	case t.tasks <- task:
		metrics.TasksQueued.Set(float64(len(t.tasks)))
		return true
	default:
		return false
	}
}

func (t *BackgroundTasks) Shutdown(ctx context.Context) error {
	const op = "tasks.BackgroundTasks.Shutdown"
	log := t.log.With("op", op)
	log.Info("shutting down background tasks")
	t.mu.Lock()
	if !t.closed {
		t.closed = true
		close(t.tasks)
	}
	t.mu.Unlock()
	shutdownCh := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(shutdownCh)
	}()
	select {
	case <-ctx.Done():
		log.Warn("graceful shutdown timed out.. forcing exit", "timeout", ctx.Err())
		return ctx.Err()
	case <-shutdownCh:
		log.Info("background tasks successfully stopped")
		return nil
	}
}

func (t *BackgroundTasks) IsEmpty() bool {
	return len(t.tasks) == 0
}
