package assets

import "sync"

// Dispatcher queues functions posted from any goroutine so they can be run
// on the goroutine that owns the scene. Drain is expected to be called once
// per frame.
type Dispatcher struct {
	mu    sync.Mutex
	queue []func()
	ready chan struct{}
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{ready: make(chan struct{}, 1)}
}

// Post enqueues fn. It never blocks and never runs fn itself.
func (d *Dispatcher) Post(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.queue = append(d.queue, fn)
	d.mu.Unlock()

	select {
	case d.ready <- struct{}{}:
	default:
	}
}

// Drain runs every function queued before the call, in post order, and
// returns how many ran. Functions posted while draining wait for the next
// call.
func (d *Dispatcher) Drain() int {
	d.mu.Lock()
	queue := d.queue
	d.queue = nil
	d.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
	return len(queue)
}

// Pending returns the number of queued functions.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Ready is signalled after a Post. It is level-triggered for at most one
// waiter; callers should Drain after receiving from it.
func (d *Dispatcher) Ready() <-chan struct{} {
	return d.ready
}
