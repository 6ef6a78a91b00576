// Package pipeline runs inference requests concurrently while
// delivering completions in submission order.
package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Completion is one finished inference. Input is handed back so the
// consumer keeps access to the frame and submit-time metadata.
type Completion[In, Out any] struct {
	ID     int64
	Input  In
	Output Out
	Err    error
}

type job[In any] struct {
	id int64
	in In
}

// Pipeline fans submitted inputs out to a bounded set of workers and
// reorders their completions back into submission order. Submit and
// Close must be called from a single producer goroutine; Results may
// be consumed concurrently.
type Pipeline[In, Out any] struct {
	infer   func(context.Context, In) (Out, error)
	jobs    chan job[In]
	done    chan Completion[In, Out]
	results chan Completion[In, Out]
	workers *errgroup.Group
	reorder sync.WaitGroup
	nextID  int64
}

// New creates a pipeline with numRequests concurrent in-flight
// inferences, mirroring the async infer-request pool of the original
// demo.
func New[In, Out any](ctx context.Context, infer func(context.Context, In) (Out, error), numRequests int) *Pipeline[In, Out] {
	if numRequests < 1 {
		numRequests = 1
	}

	p := &Pipeline[In, Out]{
		infer: infer,
		jobs:  make(chan job[In], numRequests),
		done:  make(chan Completion[In, Out], numRequests),
		// Queued plus running jobs can reach twice numRequests; sizing
		// the results buffer to match keeps Close from blocking on an
		// unread completion.
		results: make(chan Completion[In, Out], 2*numRequests),
		workers: &errgroup.Group{},
	}

	for i := 0; i < numRequests; i++ {
		p.workers.Go(func() error {
			p.work(ctx)
			return nil
		})
	}

	p.reorder.Add(1)
	go p.reorderLoop()

	go func() {
		_ = p.workers.Wait()
		close(p.done)
	}()

	return p
}

// work consumes jobs until the queue closes. Inference errors travel
// inside the completion; a failed frame must not tear down its peers.
func (p *Pipeline[In, Out]) work(ctx context.Context) {
	for j := range p.jobs {
		out, err := p.infer(ctx, j.in)
		p.done <- Completion[In, Out]{ID: j.id, Input: j.in, Output: out, Err: err}
	}
}

// reorderLoop buffers out-of-order completions until their turn.
func (p *Pipeline[In, Out]) reorderLoop() {
	defer p.reorder.Done()
	defer close(p.results)

	pending := make(map[int64]Completion[In, Out])
	var next int64

	for completion := range p.done {
		pending[completion.ID] = completion
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			p.results <- ready
			next++
		}
	}
}

// TrySubmit queues an input without blocking. It reports false when
// all inference requests are busy.
func (p *Pipeline[In, Out]) TrySubmit(in In) bool {
	select {
	case p.jobs <- job[In]{id: p.nextID, in: in}:
		p.nextID++
		return true
	default:
		return false
	}
}

// Submit queues an input, blocking until a request slot frees up or
// the context is canceled.
func (p *Pipeline[In, Out]) Submit(ctx context.Context, in In) error {
	select {
	case p.jobs <- job[In]{id: p.nextID, in: in}:
		p.nextID++
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Results delivers completions in submission order. The channel closes
// after Close once every in-flight inference has finished.
func (p *Pipeline[In, Out]) Results() <-chan Completion[In, Out] {
	return p.results
}

// Close stops accepting work and waits for in-flight inferences to
// drain into Results.
func (p *Pipeline[In, Out]) Close() {
	close(p.jobs)
	_ = p.workers.Wait()
	p.reorder.Wait()
}
