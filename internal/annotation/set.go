/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package annotation

import "golabel/internal/event"

// SetEventKind enumerates the structural changes a Set reports.
type SetEventKind int

const (
	SetAdd SetEventKind = iota
	SetDelete
	SetClear
)

// SetEvent carries a structural change and the affected records.
type SetEvent[T Record] struct {
	Kind    SetEventKind
	Records []T
}

// Set is the authoritative observable collection of annotation records.
// Membership is unique by record id; insertion order is irrelevant.
// Structural events are dispatched synchronously, strictly after the
// mutation. Mutating the set from inside one of its own watchers is
// unsupported; the editors never do it.
type Set[T Record] struct {
	items    map[string]T
	watchers *event.Emitter[SetEvent[T]]
}

// NewSet returns an empty set.
func NewSet[T Record]() *Set[T] {
	return &Set[T]{
		items:    make(map[string]T),
		watchers: event.NewEmitter[SetEvent[T]](),
	}
}

// Add inserts v. It reports false when a record with the same id is
// already a member; the set is left unchanged in that case.
func (s *Set[T]) Add(v T) bool {
	id := v.RecordID()
	if _, ok := s.items[id]; ok {
		return false
	}
	s.items[id] = v
	s.watchers.Emit(SetEvent[T]{Kind: SetAdd, Records: []T{v}})
	return true
}

// Delete removes the record with the given id, returning it.
func (s *Set[T]) Delete(id string) (T, bool) {
	v, ok := s.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	delete(s.items, id)
	s.watchers.Emit(SetEvent[T]{Kind: SetDelete, Records: []T{v}})
	return v, true
}

// Clear removes every record and returns them.
func (s *Set[T]) Clear() []T {
	if len(s.items) == 0 {
		return nil
	}
	removed := make([]T, 0, len(s.items))
	for _, v := range s.items {
		removed = append(removed, v)
	}
	s.items = make(map[string]T)
	s.watchers.Emit(SetEvent[T]{Kind: SetClear, Records: removed})
	return removed
}

// Get looks up a record by id.
func (s *Set[T]) Get(id string) (T, bool) {
	v, ok := s.items[id]
	return v, ok
}

// Contains reports membership by id.
func (s *Set[T]) Contains(id string) bool {
	_, ok := s.items[id]
	return ok
}

// Len returns the member count.
func (s *Set[T]) Len() int { return len(s.items) }

// All returns the members in unspecified order.
func (s *Set[T]) All() []T {
	out := make([]T, 0, len(s.items))
	for _, v := range s.items {
		out = append(out, v)
	}
	return out
}

// Watch subscribes to structural events; the cancel func removes the
// subscription.
func (s *Set[T]) Watch(fn func(SetEvent[T])) (cancel func()) {
	return s.watchers.Subscribe(fn)
}
