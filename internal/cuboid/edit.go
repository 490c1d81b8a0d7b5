/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cuboid

import (
	"math"

	"golabel/internal/annotation"
	"golabel/internal/geom"
)

// minFootprint keeps a resize from collapsing a box edge to nothing.
const minFootprint = 0.1

// editGesture manipulates the current edit target through its handle.
// The controller wires the start/change/stop notifications: orbit off
// on start, pending-update flag on change, flush plus orbit on again
// on stop. Depending on the plot's handle style a drag either
// translates the box on the ground plane or resizes its footprint from
// the grabbed corner.
type editGesture struct {
	c   *Controller
	rec *annotation.Cuboid

	onStart  func()
	onChange func()
	onStop   func()

	dragging    bool
	moved       bool
	startGround geom.Vec3
	startPos    geom.Vec3
	startSize   geom.Vec3
	cornerSign  geom.Pt // which footprint corner was grabbed, in box frame
}

func newEditGesture(c *Controller, rec *annotation.Cuboid, onStart, onChange, onStop func()) *editGesture {
	return &editGesture{c: c, rec: rec, onStart: onStart, onChange: onChange, onStop: onStop}
}

// pointerDown starts a drag when the ray hits the target box.
func (g *editGesture) pointerDown(ray geom.Ray) bool {
	t, ok := ray.IntersectBox(g.rec.Position(), g.rec.Size(), g.rec.Heading())
	if !ok {
		return false
	}
	ground, ok := ray.IntersectGround()
	if !ok {
		// grazing ray; anchor on the hit point's ground projection
		hit := ray.Origin.Add(ray.Dir.Mul(t))
		ground = geom.Vec3{X: hit.X, Y: hit.Y}
	}
	g.dragging = true
	g.moved = false
	g.startGround = ground
	g.startPos = g.rec.Position()
	g.startSize = g.rec.Size()

	local := ground.Sub(g.startPos).RotateZ(-g.rec.Heading())
	g.cornerSign = geom.Pt{X: sign(local.X), Y: sign(local.Y)}
	g.onStart()
	return true
}

// pointerMove applies the drag delta to the record; its observer keeps
// the plot in sync.
func (g *editGesture) pointerMove(ray geom.Ray) {
	if !g.dragging {
		return
	}
	ground, ok := ray.IntersectGround()
	if !ok {
		return
	}
	delta := ground.Sub(g.startGround)
	g.moved = true

	style := StyleMove
	if p, ok := g.c.plots.PlotFor(g.rec.RecordID()); ok {
		style = p.Style()
	}
	switch style {
	case StyleMove:
		pos := g.startPos.Add(geom.Vec3{X: delta.X, Y: delta.Y})
		g.rec.SetPose(pos, g.startSize, g.rec.Heading())
	case StyleResize:
		local := delta.RotateZ(-g.rec.Heading())
		size := g.startSize
		size.X = math.Max(minFootprint, size.X+local.X*g.cornerSign.X)
		size.Y = math.Max(minFootprint, size.Y+local.Y*g.cornerSign.Y)
		// the opposite corner stays put
		shift := geom.Vec3{
			X: (size.X - g.startSize.X) / 2 * g.cornerSign.X,
			Y: (size.Y - g.startSize.Y) / 2 * g.cornerSign.Y,
		}.RotateZ(g.rec.Heading())
		g.rec.SetPose(g.startPos.Add(shift), size, g.rec.Heading())
	}
	g.onChange()
}

// pointerUp ends the drag.
func (g *editGesture) pointerUp() {
	if !g.dragging {
		return
	}
	g.dragging = false
	g.onStop()
}

// destroy ends any in-flight drag without the stop notification; the
// controller's teardown handles flushing itself.
func (g *editGesture) destroy() {
	g.dragging = false
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
