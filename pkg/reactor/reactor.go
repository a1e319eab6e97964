// Package reactor provides the single-threaded event loop that all request
// handlers and deferred deliveries run on. Exactly one goroutine executes
// tasks, so anything dispatched onto the loop needs no locking, and a task
// that sleeps stalls every task queued behind it.
package reactor

import (
	"sync"
	"time"
)

const defaultQueueSize = 1024

type Reactor struct {
	tasks    chan func()
	quit     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

func New(queueSize int) *Reactor {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Reactor{
		tasks:   make(chan func(), queueSize),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Run executes tasks in dispatch order until Stop is called. It blocks, so
// callers normally start it on its own goroutine. Tasks already queued when
// Stop is called are drained before Run returns.
func (r *Reactor) Run() {
	defer close(r.stopped)
	for {
		select {
		case task := <-r.tasks:
			task()
		case <-r.quit:
			for {
				select {
				case task := <-r.tasks:
					task()
				default:
					return
				}
			}
		}
	}
}

// Dispatch queues task for execution on the loop goroutine. Tasks dispatched
// after Stop are dropped.
func (r *Reactor) Dispatch(task func()) {
	select {
	case <-r.quit:
		return
	default:
	}
	select {
	case r.tasks <- task:
	case <-r.quit:
	}
}

// Schedule runs task on the loop goroutine once delay has elapsed. The timer
// fires off-loop and re-posts the task through Dispatch, so execution order
// across scheduled tasks follows expiry order, not scheduling order.
func (r *Reactor) Schedule(delay time.Duration, task func()) *time.Timer {
	return time.AfterFunc(delay, func() {
		r.Dispatch(task)
	})
}

// Stop shuts the loop down and waits for Run to return. Safe to call more
// than once.
func (r *Reactor) Stop() {
	r.stopOnce.Do(func() {
		close(r.quit)
	})
	<-r.stopped
}
