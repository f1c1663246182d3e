// Package fanout runs independent tasks concurrently and joins on all of them.
// Unlike a fail-fast group, one task's error never cancels or shortens another.
package fanout

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task is one independent unit of work
type Task[T any] func(ctx context.Context) (T, error)

// Result is the settled outcome of a Task
type Result[T any] struct {
	Value T
	Err   error
}

// PanicError reports a task that panicked instead of returning
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Gather runs every task concurrently, waits for all of them to settle and
// returns their results in task order.
func Gather[T any](ctx context.Context, tasks ...Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))

	// Plain Group: no derived context, so a failure never cancels the others.
	var g errgroup.Group
	for i, task := range tasks {
		i, task := i, task
		g.Go(func() error {
			results[i] = run(ctx, task)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func run[T any](ctx context.Context, task Task[T]) (result Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			result = Result[T]{Err: &PanicError{Value: r}}
		}
	}()

	value, err := task(ctx)
	if err != nil {
		var zero T
		return Result[T]{Value: zero, Err: err}
	}
	return Result[T]{Value: value}
}

// Partition splits settled results into successful values and errors, each in task order
func Partition[T any](results []Result[T]) ([]T, []error) {
	values := make([]T, 0, len(results))
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		values = append(values, r.Value)
	}
	return values, errs
}
