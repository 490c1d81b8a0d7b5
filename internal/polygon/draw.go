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
)

// drawGesture builds one polygon vertex by vertex on a transient shape.
// The ring always carries one extra trailing vertex that tracks the
// pointer; it is dropped (or promoted by the next click) so the
// preview edge follows the cursor without committing anything.
type drawGesture struct {
	c    *Controller
	tmp  *Shape
	ring geom.Ring
}

func startDraw(c *Controller, pos geom.Pt) *drawGesture {
	pos = pos.ClampUnit()
	g := &drawGesture{c: c, ring: geom.Ring{pos.X, pos.Y, pos.X, pos.Y}}
	g.tmp = newShape(c.renderer, []geom.Ring{g.ring})
	c.renderer.Render()
	return g
}

// track moves the trailing preview vertex to the pointer.
func (g *drawGesture) track(pos geom.Pt) {
	g.ring.SetVertex(g.ring.NumVertices()-1, pos.ClampUnit())
	g.sync()
}

// addVertex promotes the preview vertex to a real one and starts a new
// preview vertex at the same position.
func (g *drawGesture) addVertex(pos geom.Pt) {
	pos = pos.ClampUnit()
	g.ring.SetVertex(g.ring.NumVertices()-1, pos)
	g.ring = g.ring.Append(pos)
	g.sync()
}

// pop removes the most recently committed vertex. With two committed
// vertices plus the preview the pop is refused: shrinking further would
// leave nothing a later commit could turn into a polygon.
func (g *drawGesture) pop() {
	n := g.ring.NumVertices()
	if n <= 3 {
		return
	}
	g.ring = g.ring.RemoveVertex(n - 2)
	g.sync()
}

func (g *drawGesture) sync() {
	g.tmp.setRings([]geom.Ring{g.ring})
	g.c.renderer.Render()
}

// commit finalizes the gesture. The preview vertex is discarded; a
// ring with fewer than MinRingVertices real vertices is silently
// dropped instead of producing a degenerate record.
func (g *drawGesture) commit() (*annotation.Polygon, bool) {
	g.tmp.Destroy()
	final := g.ring[:len(g.ring)-2].Clone()
	g.c.renderer.Render()
	if final.NumVertices() < geom.MinRingVertices {
		g.c.log.Debug("discarding degenerate draw result",
			slog.Int("vertices", final.NumVertices()))
		return nil, false
	}
	return annotation.NewPolygon(final, g.c.nextColor()), true
}

// abort discards the gesture and its transient shape.
func (g *drawGesture) abort() {
	g.tmp.Destroy()
	g.c.renderer.Render()
}
