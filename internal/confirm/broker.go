package confirm

import (
	"sync"

	"github.com/google/uuid"
)

// Request is a pending acknowledgement. It completes exactly once, when the
// user dismisses the modal showing it; there is no cancellation and no
// timeout, the handle is held until user action.
type Request struct {
	id      string
	title   string
	message string

	done chan struct{}
	once sync.Once
}

func (r *Request) ID() string      { return r.id }
func (r *Request) Title() string   { return r.title }
func (r *Request) Message() string { return r.message }

// Done is closed when the request has been dismissed. Callers that must not
// proceed before the user acknowledges block on this channel.
func (r *Request) Done() <-chan struct{} { return r.done }

func (r *Request) complete() {
	r.once.Do(func() { close(r.done) })
}

// Broker serializes user acknowledgement into asynchronous call sites.
// Requests queue FIFO; only the head is visible at a time, and no request is
// ever dropped.
type Broker struct {
	mu    sync.Mutex
	queue []*Request

	changed chan struct{}
}

func NewBroker() *Broker {
	return &Broker{changed: make(chan struct{}, 1)}
}

// Changed returns a coalescing signal fired when the visible request may
// have changed.
func (b *Broker) Changed() <-chan struct{} {
	return b.changed
}

func (b *Broker) notify() {
	select {
	case b.changed <- struct{}{}:
	default:
	}
}

// Confirm enqueues an acknowledgement request and returns its handle.
// It never blocks; the caller decides whether to wait on Done.
func (b *Broker) Confirm(title, message string) *Request {
	r := &Request{
		id:      uuid.New().String(),
		title:   title,
		message: message,
		done:    make(chan struct{}),
	}

	b.mu.Lock()
	b.queue = append(b.queue, r)
	b.mu.Unlock()

	b.notify()
	return r
}

// Current returns the visible request, or nil when none is pending.
func (b *Broker) Current() *Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil
	}
	return b.queue[0]
}

// Pending returns the number of queued requests, the visible one included.
func (b *Broker) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Dismiss completes the visible request and promotes the next one.
// A dismissal with nothing pending is a no-op.
func (b *Broker) Dismiss() {
	b.mu.Lock()
	if len(b.queue) == 0 {
		b.mu.Unlock()
		return
	}
	head := b.queue[0]
	b.queue = b.queue[1:]
	b.mu.Unlock()

	head.complete()
	b.notify()
}
