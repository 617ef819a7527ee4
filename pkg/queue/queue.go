// Package queue runs background jobs for work that must not hold up a
// request, like deleting an orphaned product image after its product is
// removed.
//
//	type RemoveImageJob struct{ Path string }
//	func (j *RemoveImageJob) Handle() error { return storage.Delete(j.Path) }
//
//	queue.Register(queue.TypeName(&RemoveImageJob{}), func() queue.Job { return &RemoveImageJob{} })
//	queue.Dispatch(&RemoveImageJob{Path: "products/123_ring.jpg"})
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lspratas/atelier/pkg/logger"
	"github.com/lspratas/atelier/pkg/workerpool"
)

// Job is one unit of background work. Jobs must round-trip through JSON:
// every exported field survives the queue, nothing else does.
type Job interface {
	Handle() error
}

// FailedJob is a job that exhausted its retries.
type FailedJob struct {
	Job      Job
	Err      error
	FailedAt time.Time
	Attempts int
}

// Driver is the queue storage backend.
type Driver interface {
	Push(payload []byte) error
	Pop(ctx context.Context) ([]byte, error)
}

// TypeName is the registry key for a job value. Register and Dispatch must
// agree on it, so both use this.
func TypeName(j Job) string { return fmt.Sprintf("%T", j) }

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Manager couples a driver with the job registry and a bounded worker pool.
type Manager struct {
	mu       sync.RWMutex
	driver   Driver
	registry map[string]func() Job
	failed   []FailedJob
	maxRetry int
}

var defaultManager = &Manager{
	registry: map[string]func() Job{},
	maxRetry: 3,
	driver:   NewMemoryDriver(),
}

// SetDriver swaps the storage backend. Do this before StartWorkers; jobs
// already sitting in the old driver stay there.
func SetDriver(d Driver) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.driver = d
}

// SetMaxRetry sets how many times a failing job is attempted.
func SetMaxRetry(n int) { defaultManager.maxRetry = n }

// Register makes a job type reconstructable from its serialized form.
// Call once at boot for every job type.
func Register(name string, factory func() Job) {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.registry[name] = factory
}

// Dispatch pushes the job onto the queue immediately.
func Dispatch(job Job) error {
	return defaultManager.push(job)
}

// DispatchAfter pushes the job after a delay. With the memory driver this
// is a sleeping goroutine; the Redis driver keeps a sorted set instead, so
// use PushDelayed directly when durability of the delay matters.
func DispatchAfter(job Job, delay time.Duration) {
	go func() {
		time.Sleep(delay)
		if err := Dispatch(job); err != nil {
			logger.Error("queue: delayed dispatch failed", "error", err)
		}
	}()
}

func (m *Manager) push(job Job) error {
	typeName := TypeName(job)

	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("queue: marshal job %s: %w", typeName, err)
	}

	env, err := json.Marshal(envelope{Type: typeName, Payload: payload})
	if err != nil {
		return fmt.Errorf("queue: marshal envelope: %w", err)
	}

	m.mu.RLock()
	d := m.driver
	m.mu.RUnlock()

	return d.Push(env)
}

// StartWorkers processes jobs with n pooled workers until ctx is cancelled.
// One dispatcher goroutine pops from the driver and feeds the pool, so a
// slow job applies backpressure instead of spawning goroutines.
func StartWorkers(ctx context.Context, n int) {
	pool := workerpool.New(n)

	go func() {
		defer pool.Shutdown()
		defaultManager.dispatchLoop(ctx, pool)
	}()

	logger.Info("queue: workers started", "count", n)
}

func (m *Manager) dispatchLoop(ctx context.Context, pool *workerpool.Pool) {
	for {
		if ctx.Err() != nil {
			return
		}

		m.mu.RLock()
		d := m.driver
		m.mu.RUnlock()

		raw, err := d.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}
		if raw == nil {
			continue
		}

		payload := raw
		if err := pool.SubmitWait(func() { m.process(payload) }); err != nil {
			return // pool closed
		}
	}
}

func (m *Manager) process(raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		logger.Error("queue: bad envelope", "error", err)
		return
	}

	m.mu.RLock()
	factory, ok := m.registry[env.Type]
	m.mu.RUnlock()

	if !ok {
		logger.Warn("queue: unregistered job type", "type", env.Type)
		return
	}

	job := factory()
	if err := json.Unmarshal(env.Payload, job); err != nil {
		logger.Error("queue: unmarshal payload", "type", env.Type, "error", err)
		return
	}

	m.runWithRetry(job, env.Type)
}

func (m *Manager) runWithRetry(job Job, typeName string) {
	var lastErr error
	for attempt := 1; attempt <= m.maxRetry; attempt++ {
		if err := job.Handle(); err != nil {
			lastErr = err
			logger.Warn("queue: job failed, retrying",
				"type", typeName, "attempt", attempt, "error", err)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		logger.Info("queue: job processed", "type", typeName)
		return
	}

	m.persistFailed(job, typeName, lastErr, m.maxRetry)
	logger.Error("queue: job exhausted retries", "type", typeName, "error", lastErr)
}

// FailedJobs returns a snapshot of jobs that exhausted their retries.
func FailedJobs() []FailedJob {
	defaultManager.mu.RLock()
	defer defaultManager.mu.RUnlock()
	out := make([]FailedJob, len(defaultManager.failed))
	copy(out, defaultManager.failed)
	return out
}
