package core

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrEmpty is returned by TryRecv when the subscriber has caught up.
	ErrEmpty = errors.New("broadcast: no pending events")
	// ErrClosed is returned by a subscription after Close.
	ErrClosed = errors.New("broadcast: subscription closed")
	// ErrLagged matches any *LaggedError via errors.Is.
	ErrLagged = errors.New("broadcast: subscriber lagged")
)

// LaggedError reports how many events a slow subscriber lost when the ring
// wrapped past its cursor. The subscription is already repositioned at the
// oldest retained event.
type LaggedError struct {
	Skipped uint64
}

func (e *LaggedError) Error() string {
	return fmt.Sprintf("broadcast: subscriber lagged, %d events skipped", e.Skipped)
}

func (e *LaggedError) Is(target error) bool { return target == ErrLagged }

var closedSignal = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// Broadcast is a bounded multi-producer multi-consumer channel. Every
// subscriber has its own cursor into a shared ring; producers never wait
// for consumers, a consumer that falls more than capacity events behind
// gets a LaggedError instead.
type Broadcast[T any] struct {
	mu     sync.Mutex
	ring   []T
	head   uint64 // sequence number of the next event
	subs   int
	notify chan struct{}
}

func NewBroadcast[T any](capacity int) *Broadcast[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Broadcast[T]{
		ring:   make([]T, capacity),
		notify: make(chan struct{}),
	}
}

// Send publishes v to every live subscriber and returns how many there were.
// With no subscribers the value is dropped.
func (b *Broadcast[T]) Send(v T) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs == 0 {
		return 0
	}
	b.ring[b.head%uint64(len(b.ring))] = v
	b.head++
	close(b.notify)
	b.notify = make(chan struct{})
	return b.subs
}

// Subscribe returns a cursor positioned after the latest event.
func (b *Broadcast[T]) Subscribe() *Subscription[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs++
	return &Subscription[T]{b: b, next: b.head}
}

func (b *Broadcast[T]) ReceiverCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subs
}

func (b *Broadcast[T]) Capacity() int { return len(b.ring) }

// Subscription is a single consumer of a Broadcast. It is not safe for
// concurrent use; one connection owns one subscription.
type Subscription[T any] struct {
	b      *Broadcast[T]
	next   uint64
	closed bool
}

// Ready returns a channel that is closed once an event is pending.
// It must be re-fetched after every receive.
func (s *Subscription[T]) Ready() <-chan struct{} {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if s.closed || s.next < s.b.head {
		return closedSignal
	}
	return s.b.notify
}

// TryRecv returns the next pending event, ErrEmpty, a *LaggedError, or ErrClosed.
func (s *Subscription[T]) TryRecv() (T, error) {
	var zero T
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if s.closed {
		return zero, ErrClosed
	}
	if s.next == s.b.head {
		return zero, ErrEmpty
	}
	capacity := uint64(len(s.b.ring))
	if behind := s.b.head - s.next; behind > capacity {
		skipped := behind - capacity
		s.next += skipped
		return zero, &LaggedError{Skipped: skipped}
	}
	v := s.b.ring[s.next%capacity]
	s.next++
	return v, nil
}

// Send publishes through the subscription's channel.
func (s *Subscription[T]) Send(v T) int { return s.b.Send(v) }

// Close releases the subscription. Safe to call more than once.
func (s *Subscription[T]) Close() {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.b.subs--
}
