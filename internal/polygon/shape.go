/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package polygon implements the 2D polygon annotation editor: the
// visual shape layer, the set manager keeping shapes and records in
// sync, and the mode controller translating pointer and keyboard
// events into geometric edits. Coordinates live in the normalized
// [0,1]x[0,1] annotation frame.
package polygon

import "golabel/internal/geom"

// Renderer is the external render layer contract. The editor only
// needs attach/detach of shapes and an explicit render trigger; the
// graphics primitives behind it are not its concern.
type Renderer interface {
	Attach(*Shape)
	Detach(*Shape)
	Render()
}

// Decoration selects how a selected shape presents its handles.
type Decoration int

const (
	// DecorationBox shows the simplified whole-shape handle.
	DecorationBox Decoration = iota
	// DecorationNodes exposes every vertex as a draggable handle and
	// every edge midpoint as an insertable handle.
	DecorationNodes
)

// Shape is the visual counterpart of one polygon record, or the single
// transient shape under construction during a create gesture. It is
// visual-only: controllers mutate it, the renderer draws it.
type Shape struct {
	rings     []geom.Ring
	deco      Decoration
	renderer  Renderer
	destroyed bool
}

func newShape(r Renderer, rings []geom.Ring) *Shape {
	s := &Shape{rings: rings, renderer: r}
	r.Attach(s)
	return s
}

// Rings returns the shape's rings. Callers must not retain the slice
// across shape mutations.
func (s *Shape) Rings() []geom.Ring { return s.rings }

// Ring returns the first (or only) ring.
func (s *Shape) Ring() geom.Ring {
	if len(s.rings) == 0 {
		return nil
	}
	return s.rings[0]
}

func (s *Shape) setRings(rings []geom.Ring) { s.rings = rings }

// Simple reports whether the shape has exactly one ring, i.e. node
// editing applies.
func (s *Shape) Simple() bool { return len(s.rings) == 1 }

// Decoration returns the current handle decoration.
func (s *Shape) Decoration() Decoration { return s.deco }

// ToggleDecoration flips between the box and nodes decorations.
func (s *Shape) ToggleDecoration() {
	if s.deco == DecorationBox {
		s.deco = DecorationNodes
	} else {
		s.deco = DecorationBox
	}
}

func (s *Shape) setDecoration(d Decoration) { s.deco = d }

// Midpoints returns the mid-edge handle positions of the first ring.
func (s *Shape) Midpoints() []geom.Pt {
	r := s.Ring()
	if r == nil {
		return nil
	}
	return r.Midpoints()
}

// HitNode returns the index of the vertex handle within radius of p,
// preferring the nearest. Only simple shapes expose node handles.
func (s *Shape) HitNode(p geom.Pt, radius float64) (int, bool) {
	if !s.Simple() {
		return 0, false
	}
	return nearest(ringPts(s.Ring()), p, radius)
}

// HitMidNode returns the edge index of the mid-edge handle within
// radius of p.
func (s *Shape) HitMidNode(p geom.Pt, radius float64) (int, bool) {
	if !s.Simple() {
		return 0, false
	}
	return nearest(s.Ring().Midpoints(), p, radius)
}

// HitBody reports whether p falls inside any of the shape's rings.
func (s *Shape) HitBody(p geom.Pt) bool {
	for _, r := range s.rings {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// Destroy detaches the shape from the render tree. It is safe to call
// more than once.
func (s *Shape) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.renderer.Detach(s)
}

// Destroyed reports whether Destroy ran.
func (s *Shape) Destroyed() bool { return s.destroyed }

func ringPts(r geom.Ring) []geom.Pt {
	out := make([]geom.Pt, r.NumVertices())
	for i := range out {
		out[i] = r.Vertex(i)
	}
	return out
}

func nearest(pts []geom.Pt, p geom.Pt, radius float64) (int, bool) {
	best := -1
	bestD := radius * radius
	for i, q := range pts {
		if d := p.DistSq(q); d <= bestD {
			best = i
			bestD = d
		}
	}
	return best, best >= 0
}
