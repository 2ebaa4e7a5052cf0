// Package fanout runs a function over a slice with bounded concurrency and
// returns results in input order. The lifecycle prober uses it for probe
// batches; a panicking item is reported as that item's error instead of
// taking down the process.
package fanout

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
)

// Result holds the outcome of one item: Value on success, Err on failure.
type Result[R any] struct {
	Value R
	Err   error
}

// PanicError is the Result error for an item whose function panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Run calls fn for every item using at most maxWorkers goroutines at a time
// (values below 1 mean 1). It blocks until every item has settled.
//
// An item still waiting for a worker slot when ctx is canceled records
// ctx.Err() without calling fn. Items already running finish; fn is
// responsible for observing ctx. Empty input yields an empty non-nil slice.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	slots := make(chan struct{}, max(maxWorkers, 1))

	var wg sync.WaitGroup
	for i := range items {
		wg.Go(func() {
			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				results[i].Err = ctx.Err()
				return
			}
			defer func() { <-slots }()
			results[i] = call(ctx, items[i], fn)
		})
	}
	wg.Wait()
	return results
}

func call[T, R any](ctx context.Context, item T, fn func(context.Context, T) (R, error)) (res Result[R]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[R]{Err: &PanicError{Value: r, Stack: debug.Stack()}}
		}
	}()
	val, err := fn(ctx, item)
	return Result[R]{Value: val, Err: err}
}
