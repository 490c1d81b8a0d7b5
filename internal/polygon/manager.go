/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package polygon

import (
	"log/slog"

	"golabel/internal/annotation"
	"golabel/internal/geom"
	applog "golabel/internal/log"
)

// SetManager mirrors the observable polygon set into visual shapes.
// For every record in the set it owns exactly one Shape, one record
// observer, and the selection state. Observer cancel funcs live in a
// side map keyed by record id so that removing a record always removes
// its observer with it.
type SetManager struct {
	set      *annotation.Set[*annotation.Polygon]
	renderer Renderer
	log      *slog.Logger

	shapes    map[string]*Shape
	unobserve map[string]func()
	order     []string // insertion order; last is topmost

	selection   []string
	cancelWatch func()
	closed      bool
}

// NewSetManager attaches to set and materializes shapes for any
// records already present.
func NewSetManager(set *annotation.Set[*annotation.Polygon], r Renderer) *SetManager {
	m := &SetManager{
		set:       set,
		renderer:  r,
		log:       applog.WithComponent("polygon"),
		shapes:    make(map[string]*Shape),
		unobserve: make(map[string]func()),
	}
	for _, rec := range set.All() {
		m.addShape(rec)
	}
	m.cancelWatch = set.Watch(m.onSetEvent)
	r.Render()
	return m
}

func (m *SetManager) onSetEvent(e annotation.SetEvent[*annotation.Polygon]) {
	switch e.Kind {
	case annotation.SetAdd:
		for _, rec := range e.Records {
			m.addShape(rec)
		}
	case annotation.SetDelete, annotation.SetClear:
		for _, rec := range e.Records {
			m.removeShape(rec.RecordID())
		}
	}
	m.renderer.Render()
}

func (m *SetManager) addShape(rec *annotation.Polygon) {
	id := rec.RecordID()
	if _, ok := m.shapes[id]; ok {
		return
	}
	s := newShape(m.renderer, rec.Rings())
	m.shapes[id] = s
	m.order = append(m.order, id)
	m.unobserve[id] = rec.Observe(func() {
		s.setRings(rec.Rings())
		m.renderer.Render()
	})
}

func (m *SetManager) removeShape(id string) {
	s, ok := m.shapes[id]
	if !ok {
		return
	}
	m.unobserve[id]()
	delete(m.unobserve, id)
	s.Destroy()
	delete(m.shapes, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.deselect(id)
}

// ShapeFor returns the shape mirroring the record with the given id.
func (m *SetManager) ShapeFor(id string) (*Shape, bool) {
	s, ok := m.shapes[id]
	return s, ok
}

// RecordAt returns the topmost record whose shape contains p.
func (m *SetManager) RecordAt(p geom.Pt) (*annotation.Polygon, bool) {
	for i := len(m.order) - 1; i >= 0; i-- {
		id := m.order[i]
		if m.shapes[id].HitBody(p) {
			rec, ok := m.set.Get(id)
			return rec, ok
		}
	}
	return nil, false
}

// Selection returns the selected record ids in selection order.
func (m *SetManager) Selection() []string {
	out := make([]string, len(m.selection))
	copy(out, m.selection)
	return out
}

// IsSelected reports whether the record id is selected.
func (m *SetManager) IsSelected(id string) bool {
	for _, s := range m.selection {
		if s == id {
			return true
		}
	}
	return false
}

// Select replaces the selection. Unknown ids are dropped; newly
// selected shapes get the box decoration, deselected ones lose theirs.
func (m *SetManager) Select(ids ...string) {
	prev := m.selection
	m.selection = nil
	for _, id := range ids {
		if _, ok := m.shapes[id]; ok && !m.IsSelected(id) {
			m.selection = append(m.selection, id)
		}
	}
	for _, id := range prev {
		if s, ok := m.shapes[id]; ok && !m.IsSelected(id) {
			s.setDecoration(DecorationBox)
		}
	}
	for _, id := range m.selection {
		if !contains(prev, id) {
			m.shapes[id].setDecoration(DecorationBox)
		}
	}
	m.renderer.Render()
}

// AddToSelection appends one id without touching the rest.
func (m *SetManager) AddToSelection(id string) {
	if _, ok := m.shapes[id]; !ok || m.IsSelected(id) {
		return
	}
	m.selection = append(m.selection, id)
	m.shapes[id].setDecoration(DecorationBox)
	m.renderer.Render()
}

// ClearSelection empties the selection.
func (m *SetManager) ClearSelection() {
	for _, id := range m.selection {
		if s, ok := m.shapes[id]; ok {
			s.setDecoration(DecorationBox)
		}
	}
	m.selection = nil
	m.renderer.Render()
}

func (m *SetManager) deselect(id string) {
	for i, s := range m.selection {
		if s == id {
			m.selection = append(m.selection[:i], m.selection[i+1:]...)
			return
		}
	}
}

// ObservedCount reports how many record observers are live.
func (m *SetManager) ObservedCount() int { return len(m.unobserve) }

// Close detaches the manager from the set and destroys all shapes.
// The records themselves stay untouched. Close is idempotent.
func (m *SetManager) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.cancelWatch()
	for id, cancel := range m.unobserve {
		cancel()
		delete(m.unobserve, id)
	}
	for id, s := range m.shapes {
		s.Destroy()
		delete(m.shapes, id)
	}
	m.order = nil
	m.selection = nil
	m.renderer.Render()
	m.log.Debug("polygon set manager closed")
}

func contains(ids []string, id string) bool {
	for _, s := range ids {
		if s == id {
			return true
		}
	}
	return false
}
