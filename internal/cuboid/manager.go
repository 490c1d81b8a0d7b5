/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cuboid

import (
	"log/slog"

	"golabel/internal/annotation"
	"golabel/internal/geom"
	applog "golabel/internal/log"
)

// SetManager mirrors the observable cuboid set into scene plots, one
// plot and one record observer per member. Observer cancel funcs live
// in a side map keyed by record id so no observer outlives its record.
type SetManager struct {
	set      *annotation.Set[*annotation.Cuboid]
	renderer Renderer
	log      *slog.Logger

	plots       map[string]*Plot
	unobserve   map[string]func()
	cancelWatch func()
	closed      bool
}

// NewSetManager attaches to set and materializes plots for any records
// already present.
func NewSetManager(set *annotation.Set[*annotation.Cuboid], r Renderer) *SetManager {
	m := &SetManager{
		set:       set,
		renderer:  r,
		log:       applog.WithComponent("cuboid"),
		plots:     make(map[string]*Plot),
		unobserve: make(map[string]func()),
	}
	for _, rec := range set.All() {
		m.addPlot(rec)
	}
	m.cancelWatch = set.Watch(m.onSetEvent)
	r.Render()
	return m
}

func (m *SetManager) onSetEvent(e annotation.SetEvent[*annotation.Cuboid]) {
	switch e.Kind {
	case annotation.SetAdd:
		for _, rec := range e.Records {
			m.addPlot(rec)
		}
	case annotation.SetDelete, annotation.SetClear:
		for _, rec := range e.Records {
			m.removePlot(rec.RecordID())
		}
	}
	m.renderer.Render()
}

func (m *SetManager) addPlot(rec *annotation.Cuboid) {
	id := rec.RecordID()
	if _, ok := m.plots[id]; ok {
		return
	}
	p := newPlot(m.renderer, rec.Position(), rec.Size(), rec.Heading())
	m.plots[id] = p
	m.unobserve[id] = rec.Observe(func() {
		p.setPose(rec.Position(), rec.Size(), rec.Heading())
		m.renderer.Render()
	})
}

func (m *SetManager) removePlot(id string) {
	p, ok := m.plots[id]
	if !ok {
		return
	}
	m.unobserve[id]()
	delete(m.unobserve, id)
	p.Destroy()
	delete(m.plots, id)
}

// PlotFor returns the plot mirroring the record with the given id.
func (m *SetManager) PlotFor(id string) (*Plot, bool) {
	p, ok := m.plots[id]
	return p, ok
}

// PickRay casts a ray through every plot and returns the record whose
// plot is hit nearest to the ray origin.
func (m *SetManager) PickRay(ray geom.Ray) (*annotation.Cuboid, bool) {
	var (
		best   *annotation.Cuboid
		bestT  float64
		gotHit bool
	)
	for id, p := range m.plots {
		t, hit := p.Hit(ray)
		if !hit {
			continue
		}
		if !gotHit || t < bestT {
			rec, ok := m.set.Get(id)
			if !ok {
				continue
			}
			best = rec
			bestT = t
			gotHit = true
		}
	}
	return best, gotHit
}

// ObservedCount reports how many record observers are live.
func (m *SetManager) ObservedCount() int { return len(m.unobserve) }

// Close detaches from the set and destroys all plots, leaving the
// records untouched. Idempotent.
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
	for id, p := range m.plots {
		p.Destroy()
		delete(m.plots, id)
	}
	m.renderer.Render()
	m.log.Debug("cuboid set manager closed")
}
