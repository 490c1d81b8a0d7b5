/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package event provides the small typed publish/subscribe primitives
// the editors are built on: a generic synchronous emitter and a scoped
// keyboard binding table with a single disposal path. String event names
// are reserved for the host-facing boundary; internally everything is
// typed.
package event

// Kind enumerates the lifecycle signals an editor produces for its host.
type Kind int

const (
	Create Kind = iota
	Update
	Delete
	Selection
	Hint
)

// String returns the host-facing name of the lifecycle signal.
func (k Kind) String() string {
	switch k {
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	case Selection:
		return "selection"
	case Hint:
		return "hint"
	default:
		return "unknown"
	}
}

// Emitter dispatches values of type T to subscribers synchronously, in
// the goroutine that calls Emit. The editors are single-threaded and
// event-driven; the emitter adds no buffering and no locking.
type Emitter[T any] struct {
	subs map[int]func(T)
	next int
}

// NewEmitter returns an empty emitter.
func NewEmitter[T any]() *Emitter[T] {
	return &Emitter[T]{subs: make(map[int]func(T))}
}

// Subscribe registers fn and returns a cancel func that removes it.
// Cancel is idempotent.
func (e *Emitter[T]) Subscribe(fn func(T)) (cancel func()) {
	id := e.next
	e.next++
	e.subs[id] = fn
	return func() { delete(e.subs, id) }
}

// Emit delivers v to every subscriber. Delivery order is unspecified.
func (e *Emitter[T]) Emit(v T) {
	for _, fn := range e.subs {
		fn(v)
	}
}

// Len returns the current subscriber count, mainly for leak tests.
func (e *Emitter[T]) Len() int { return len(e.subs) }
