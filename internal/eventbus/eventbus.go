// Package eventbus carries search progress events from the matcher to the
// command layer over buffered channels. Delivery is best-effort: a publish
// to a subscriber whose buffer is full drops the event instead of stalling
// the search loop, so a slow terminal reader only costs itself updates.
package eventbus

import "sync"

// Subscriber buffer depth. Progress events supersede each other, so a
// shallow buffer is enough.
const subscriberBuffer = 8

// TypedBus fans events of type T out to every subscriber.
type TypedBus[T any] struct {
	mu     sync.RWMutex
	subs   []chan T
	closed bool
}

// NewTyped creates an empty bus.
func NewTyped[T any]() *TypedBus[T] { return &TypedBus[T]{} }

// Subscribe returns a channel that receives every event published after the
// call. The channel is closed when the bus closes; subscribing to a closed
// bus yields an already-closed channel.
func (b *TypedBus[T]) Subscribe() <-chan T {
	ch := make(chan T, subscriberBuffer)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Publish offers the event to every subscriber without blocking. Events a
// full subscriber cannot take are dropped.
func (b *TypedBus[T]) Publish(ev T) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close shuts the bus down and closes every subscriber channel. Closing
// twice is a no-op.
func (b *TypedBus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
