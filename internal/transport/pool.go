package transport

import (
	"context"
	"sync"
	"sync/atomic"
)

// pool is a bounded worker pool. start spawns min resident workers; when all
// of them are busy, submit grows the pool with one-shot workers up to max.
type pool struct {
	min int
	max int

	jobs  chan func()
	grow  chan struct{}
	quit  chan struct{}
	wg    sync.WaitGroup

	workers atomic.Int64
}

func newPool(min, max int) *pool {
	p := &pool{
		min:  min,
		max:  max,
		jobs: make(chan func()),
		grow: make(chan struct{}, max-min),
		quit: make(chan struct{}),
	}
	for i := 0; i < max-min; i++ {
		p.grow <- struct{}{}
	}
	return p
}

// start spawns the resident workers. It must be called exactly once.
func (p *pool) start() {
	for i := 0; i < p.min; i++ {
		p.wg.Add(1)
		p.workers.Add(1)
		go p.worker()
	}
}

func (p *pool) worker() {
	defer p.wg.Done()
	defer p.workers.Add(-1)
	for {
		select {
		case job := <-p.jobs:
			job()
		case <-p.quit:
			return
		}
	}
}

// submit hands job to an idle worker. If every resident worker is busy and
// the pool has spare capacity, a one-shot worker runs the job. With the pool
// saturated at max, submit blocks until a worker frees up, the context is
// cancelled, or the pool stops.
func (p *pool) submit(ctx context.Context, job func()) error {
	select {
	case p.jobs <- job:
		return nil
	case <-p.quit:
		return ErrClientStopped
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	select {
	case p.jobs <- job:
		return nil
	case <-p.grow:
		p.wg.Add(1)
		p.workers.Add(1)
		go func() {
			defer p.wg.Done()
			defer p.workers.Add(-1)
			job()
			p.grow <- struct{}{}
		}()
		return nil
	case <-p.quit:
		return ErrClientStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// stop signals all workers to exit and waits for in-flight jobs to finish.
func (p *pool) stop() {
	close(p.quit)
	p.wg.Wait()
}

// size reports the number of live workers, resident plus one-shot.
func (p *pool) size() int {
	return int(p.workers.Load())
}
