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
	"golabel/internal/event"
	"golabel/internal/geom"
)

type dragKind int

const (
	dragNode dragKind = iota
	dragMidNode
)

// dragGesture moves one vertex handle of a selected polygon. Mid-node
// drags first insert the midpoint as a real vertex, then behave like a
// node drag. The pre-drag ring is cached; an edit that leaves the ring
// self-intersecting is reverted wholesale on release.
type dragGesture struct {
	c        *Controller
	rec      *annotation.Polygon
	kind     dragKind
	index    int // vertex index, or edge index until inserted
	inserted bool
	cached   geom.Ring
	moved    bool
}

func startNodeDrag(c *Controller, rec *annotation.Polygon, idx int) *dragGesture {
	return &dragGesture{c: c, rec: rec, kind: dragNode, index: idx, cached: rec.Vertices()}
}

func startMidNodeDrag(c *Controller, rec *annotation.Polygon, edge int) *dragGesture {
	return &dragGesture{c: c, rec: rec, kind: dragMidNode, index: edge, cached: rec.Vertices()}
}

// move writes the dragged vertex through to the record; its observer
// keeps the shape in sync.
func (g *dragGesture) move(pos geom.Pt) {
	pos = pos.ClampUnit()
	if g.kind == dragMidNode && !g.inserted {
		g.inserted = true
		g.index++ // the midpoint lands after its edge's start vertex
		ring := geom.InsertMidNode(g.cached, g.index-1)
		ring.SetVertex(g.index, pos)
		g.rec.SetVertices(ring)
		g.moved = true
		return
	}
	ring := g.rec.Vertices()
	ring.SetVertex(g.index, pos)
	g.rec.SetVertices(ring)
	g.moved = true
}

// finish validates the edit. An invalid ring reverts to the cached
// pre-drag geometry; a valid one is reported as an update.
func (g *dragGesture) finish() {
	if !g.moved {
		return
	}
	ring := g.rec.Vertices()
	if !ring.Valid() {
		g.c.log.Warn("drag produced an invalid polygon, reverting",
			slog.String("id", g.rec.RecordID()))
		g.rec.SetVertices(g.cached)
		return
	}
	g.c.emit(Event{Kind: event.Update, Records: []*annotation.Polygon{g.rec}})
}

// cancel restores the cached geometry unconditionally.
func (g *dragGesture) cancel() {
	if g.moved {
		g.rec.SetVertices(g.cached)
	}
}
