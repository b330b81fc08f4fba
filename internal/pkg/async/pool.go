// Package async runs independent fetch tasks with bounded concurrency.
// The dashboard service uses it to issue the current and comparison
// period report calls in parallel.
package async

import (
	"context"
	"sync"
)

// Task is one named unit of work. The name keys its result.
type Task struct {
	Name    string
	Execute func() (interface{}, error)
}

// Result carries a task's outcome under its name.
type Result struct {
	Name string
	Data interface{}
	Err  error
}

// Pool limits how many tasks run at once. It holds no per-call state,
// so one Pool can serve any number of Execute calls.
type Pool struct {
	limit int
}

func NewPool(limit int) *Pool {
	if limit < 1 {
		limit = 1
	}
	return &Pool{limit: limit}
}

// Execute runs the tasks, at most limit at a time, and collects their
// results keyed by task name. A cancelled context returns whatever
// results arrived before it fired; callers must treat missing names as
// failures. Tasks still in flight at cancellation finish on their own
// goroutines and are discarded.
func (p *Pool) Execute(ctx context.Context, tasks []Task) map[string]Result {
	slots := make(chan struct{}, p.limit)
	outcomes := make(chan Result, len(tasks))

	var wg sync.WaitGroup
	for _, task := range tasks {
		wg.Add(1)
		go func(task Task) {
			defer wg.Done()

			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-slots }()

			data, err := task.Execute()
			outcomes <- Result{Name: task.Name, Data: data, Err: err}
		}(task)
	}

	results := make(map[string]Result, len(tasks))
	for range tasks {
		select {
		case result := <-outcomes:
			results[result.Name] = result
		case <-ctx.Done():
			return results
		}
	}
	wg.Wait()

	return results
}
