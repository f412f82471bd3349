package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Task is one input with its outcome.
type Task[T any, R any] struct {
	Input  T
	Result R
	Err    error
}

// ProcessFunc handles a single input.
type ProcessFunc[T any, R any] func(ctx context.Context, input T) (R, error)

// Factory builds the ProcessFunc of one worker. Each worker calls it once, so state the
// returned function closes over is never shared between goroutines.
type Factory[T any, R any] func() ProcessFunc[T, R]

// Pool runs inputs with bounded concurrency.
type Pool[T any, R any] struct {
	workers int
	factory Factory[T, R]
}

// NewPool creates a pool of workers goroutines.
func NewPool[T any, R any](workers int, f Factory[T, R]) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{workers: workers, factory: f}
}

// Execute processes every input and returns the tasks in input order. Inputs not started
// before ctx is cancelled carry ctx.Err().
func (p *Pool[T, R]) Execute(ctx context.Context, inputs []T) []Task[T, R] {
	results := make([]Task[T, R], len(inputs))
	for i, in := range inputs {
		results[i].Input = in
	}
	inputCh := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			process := p.factory()
			for idx := range inputCh {
				result, err := process(ctx, inputs[idx])
				results[idx].Result, results[idx].Err = result, err
				if err != nil {
					log.Error().Err(err).Int("worker", workerID).Int("index", idx).Msg("Task failed")
				}
			}
		}(w)
	}

	sent := 0
feed:
	for ; sent < len(inputs); sent++ {
		select {
		case <-ctx.Done():
			break feed
		case inputCh <- sent:
		}
	}
	close(inputCh)
	wg.Wait()

	for i := sent; i < len(inputs); i++ {
		results[i].Err = ctx.Err()
	}
	return results
}
