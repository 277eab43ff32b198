// Package assets loads meshes and textures on a worker pool and delivers the
// results back through a Dispatcher.
package assets

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

const (
	queueSize   = 64
	idleTimeout = time.Second
)

// Callbacks receive the outcome of one load. All of them run on the
// goroutine that drains the pool's Dispatcher. Nil callbacks are skipped.
type Callbacks[T any] struct {
	OnLoad     func(T)
	OnProgress func(loaded, total int64)
	OnError    func(error)
}

// Pool runs load jobs on a dynamic worker pool.
type Pool struct {
	workers    worker.DynamicWorkerPool
	size       int
	dispatcher *Dispatcher

	// The worker pool does not report in-flight tasks reliably, so
	// completion is tracked here.
	wg     sync.WaitGroup
	nextID atomic.Int64
	mu     sync.RWMutex
	closed bool
}

// NewPool starts a pool with up to n workers posting results to d.
func NewPool(n int, d *Dispatcher) *Pool {
	if n <= 0 {
		n = 1
	}
	return &Pool{
		workers:    worker.NewDynamicWorkerPool(n, queueSize, idleTimeout),
		size:       n,
		dispatcher: d,
	}
}

// Dispatcher returns the dispatcher results are posted to.
func (p *Pool) Dispatcher() *Dispatcher {
	return p.dispatcher
}

// Wait blocks until every submitted job has finished and posted its result.
// The posted callbacks still have to be drained.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Close waits for running jobs and stops the workers. Loads requested
// afterwards fail with ErrClosed.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()
	p.workers.ClearTaskQueue()
	p.retireWorkers()
}

// retireWorkers ends every worker goroutine. The pool's Stop sends worker
// ids on a shared channel and a worker discards ids that are not its own,
// so some workers may never see theirs. Instead each worker takes one task
// that waits until all of them are held, then exits its goroutine.
func (p *Pool) retireWorkers() {
	var held, exited sync.WaitGroup
	held.Add(p.size)
	exited.Add(p.size)
	for range p.size {
		p.workers.SubmitTask(worker.Task{
			ID: int(p.nextID.Add(1)),
			Do: func() (any, error) {
				held.Done()
				held.Wait()
				exited.Done()
				runtime.Goexit()
				return nil, nil
			},
		})
	}
	exited.Wait()
}

func (p *Pool) submit(fn func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	p.wg.Add(1)
	p.workers.SubmitTask(worker.Task{
		ID: int(p.nextID.Add(1)),
		Do: func() (any, error) {
			defer p.wg.Done()
			fn()
			return nil, nil
		},
	})
	return true
}

// run executes load on a worker and posts the matching callback.
func run[T any](p *Pool, path string, kind Kind, cb Callbacks[T], load func(progress func(loaded, total int64)) (T, error)) {
	fail := func(err error) {
		lerr := &LoadError{Path: path, Kind: kind, Err: err}
		p.dispatcher.Post(func() {
			if cb.OnError != nil {
				cb.OnError(lerr)
			}
		})
	}

	progress := func(loaded, total int64) {
		if cb.OnProgress == nil {
			return
		}
		p.dispatcher.Post(func() { cb.OnProgress(loaded, total) })
	}

	ok := p.submit(func() {
		v, err := safeLoad(load, progress)
		if err != nil {
			fail(err)
			return
		}
		p.dispatcher.Post(func() {
			if cb.OnLoad != nil {
				cb.OnLoad(v)
			}
		})
	})
	if !ok {
		fail(ErrClosed)
	}
}

// safeLoad turns a panic inside a decoder into an error.
func safeLoad[T any](load func(func(int64, int64)) (T, error), progress func(int64, int64)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return load(progress)
}
