// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package event provides the change-notification primitives used across the
// features panel: a typed emitter with explicit subscription handles, and a
// set type that releases a view's subscriptions in one call.
package event

import "sync"

// =============================================================================
// SUBSCRIPTION
// =============================================================================

// Subscription is a handle to an active listener registration.
// Closing it stops delivery; Close is idempotent.
type Subscription interface {
	Close()
}

// subscription is the handle returned by Emitter.Subscribe.
type subscription[T any] struct {
	once    sync.Once
	emitter *Emitter[T]
	id      uint64
}

// Close removes the listener from its emitter.
func (s *subscription[T]) Close() {
	s.once.Do(func() {
		s.emitter.remove(s.id)
	})
}

// =============================================================================
// EMITTER
// =============================================================================

// Handler receives emitted values.
type Handler[T any] func(T)

// Emitter is a typed broadcast channel. Listeners are invoked synchronously,
// in subscription order, on the goroutine that calls Fire. A listener removed
// via its Subscription never sees later events.
type Emitter[T any] struct {
	mu       sync.Mutex
	nextID   uint64
	order    []uint64
	handlers map[uint64]Handler[T]
}

// NewEmitter creates an empty emitter.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{handlers: make(map[uint64]Handler[T])}
}

// Subscribe registers a handler and returns its subscription handle.
func (e *Emitter[T]) Subscribe(h Handler[T]) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextID
	e.nextID++
	e.order = append(e.order, id)
	e.handlers[id] = h

	return &subscription[T]{emitter: e, id: id}
}

// Fire delivers v to every live listener.
func (e *Emitter[T]) Fire(v T) {
	e.mu.Lock()
	ids := make([]uint64, len(e.order))
	copy(ids, e.order)
	e.mu.Unlock()

	for _, id := range ids {
		e.mu.Lock()
		h, ok := e.handlers[id]
		e.mu.Unlock()
		if ok {
			h(v)
		}
	}
}

// ListenerCount returns the number of live listeners.
func (e *Emitter[T]) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

// remove drops the listener with the given id.
func (e *Emitter[T]) remove(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.handlers, id)
	for i, oid := range e.order {
		if oid == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// =============================================================================
// SUBSCRIPTION SET
// =============================================================================

// Set collects subscriptions acquired over a view's lifetime so teardown
// releases them together. The zero value is ready to use.
type Set struct {
	mu     sync.Mutex
	subs   []Subscription
	closed bool
}

// Add tracks a subscription. If the set is already closed the subscription
// is closed immediately.
func (s *Set) Add(sub Subscription) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.Close()
		return
	}
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
}

// Close releases every tracked subscription. Later Add calls close their
// argument on the spot.
func (s *Set) Close() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.closed = true
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
}

// Len returns the number of tracked subscriptions.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
