// Package mailbox provides an unbounded FIFO channel between goroutines.
package mailbox

import (
	"context"
	"sync"

	"pkt.systems/pslog"
)

// Mailbox is an unbounded single-consumer FIFO. Push never blocks; values
// are delivered on Out in push order. Close lets the consumer drain what was
// pushed and then closes Out.
type Mailbox[T any] struct {
	mu     sync.Mutex
	queue  []T
	closed bool
	wake   chan struct{}
	out    chan T
	name   string
	log    pslog.Logger
}

// New starts a mailbox. name is used in debug logs only.
func New[T any](name string, logger pslog.Logger) *Mailbox[T] {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	m := &Mailbox[T]{
		wake: make(chan struct{}, 1),
		out:  make(chan T),
		name: name,
		log:  logger,
	}
	go m.pump()
	return m
}

// Push enqueues v. It reports false when the mailbox is closed.
func (m *Mailbox[T]) Push(v T) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		m.log.Trace("mailbox push after close", "mailbox", m.name)
		return false
	}
	m.queue = append(m.queue, v)
	m.mu.Unlock()
	m.signal()
	return true
}

// Out returns the delivery channel.
func (m *Mailbox[T]) Out() <-chan T {
	return m.out
}

// Len returns the number of values not yet delivered.
func (m *Mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Close stops accepting values. Queued values are still delivered.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	pending := len(m.queue)
	m.mu.Unlock()
	m.log.Debug("mailbox close", "mailbox", m.name, "pending", pending)
	m.signal()
}

// Discard closes the mailbox and drops every value the consumer did not
// read. It returns the number dropped. The caller must be the only reader.
func (m *Mailbox[T]) Discard() int {
	m.Close()
	dropped := 0
	for range m.out {
		dropped++
	}
	return dropped
}

func (m *Mailbox[T]) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Mailbox[T]) pump() {
	defer close(m.out)
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			closed := m.closed
			m.mu.Unlock()
			if closed {
				return
			}
			<-m.wake
			continue
		}
		v := m.queue[0]
		var zero T
		m.queue[0] = zero
		m.queue = m.queue[1:]
		m.mu.Unlock()
		m.out <- v
	}
}
