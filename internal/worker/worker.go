// Package worker provides a bounded pool used to run directory listings concurrently.
//
// Submit never blocks: each task gets its own goroutine that waits for one of the
// maxWorkers semaphore slots. A running task may therefore submit follow-up tasks
// (for instance the subdirectories it just listed) without deadlocking the pool,
// and Wait returns once the whole tree of submitted tasks has completed.
package worker

import (
	"sync"
	"sync/atomic"

	"github.com/fcollections/fcollections/internal/errors"
)

// Task represents a unit of work that can be executed
type Task func() error

// Pool manages concurrent task execution with a configurable number of workers
type Pool struct {
	semaphore  chan struct{}
	allErrors  *errors.MultiError
	wg         sync.WaitGroup
	errorsMu   sync.Mutex
	maxWorkers int
	submitted  atomic.Int64
	isStopping atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified maximum number of concurrent workers
func NewWorkerPool(maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}

	return &Pool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		allErrors:  &errors.MultiError{},
	}
}

// MaxWorkers returns the concurrency limit of the pool.
func (wp *Pool) MaxWorkers() int {
	return wp.maxWorkers
}

// Submit schedules a task. Tasks submitted after Stop are dropped.
func (wp *Pool) Submit(task Task) {
	if wp.isStopping.Load() {
		return
	}

	wp.wg.Add(1)
	wp.submitted.Add(1)

	go func() {
		defer wp.wg.Done()

		wp.semaphore <- struct{}{}

		defer func() { <-wp.semaphore }()

		if err := task(); err != nil {
			wp.appendError(err)
		}
	}()
}

// Submitted returns the number of tasks accepted so far.
func (wp *Pool) Submitted() int64 {
	return wp.submitted.Load()
}

// Wait blocks until all tasks, including tasks submitted by other tasks, are completed
// and returns the aggregated errors.
func (wp *Pool) Wait() error {
	wp.wg.Wait()

	wp.errorsMu.Lock()
	defer wp.errorsMu.Unlock()

	return wp.allErrors.ErrorOrNil()
}

// Stop prevents new submissions. Running and already queued tasks still complete.
func (wp *Pool) Stop() {
	wp.isStopping.Store(true)
}

// IsStopping returns whether the pool refuses new tasks.
func (wp *Pool) IsStopping() bool {
	return wp.isStopping.Load()
}

func (wp *Pool) appendError(err error) {
	wp.errorsMu.Lock()
	wp.allErrors = wp.allErrors.Append(err)
	wp.errorsMu.Unlock()
}
