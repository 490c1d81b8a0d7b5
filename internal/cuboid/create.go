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

	"golabel/internal/cloud"
	"golabel/internal/event"
	"golabel/internal/geom"
)

type createState int

const (
	// createPre: a cursor disc follows ground-plane ray casts.
	createPre createState = iota
	// createSelecting: one corner is fixed, the far corner tracks the
	// pointer on a heading-aligned ground rectangle.
	createSelecting
	// createDone: the rectangle is committed.
	createDone
)

// createGesture draws one ground-aligned box. A ground ray cast that
// misses is non-fatal: the visual simply does not advance for that
// event.
type createGesture struct {
	c      *Controller
	state  createState
	cursor *CursorDisc
	rect   *GroundRect
}

func startCreate(c *Controller) *createGesture {
	g := &createGesture{c: c, cursor: newCursorDisc(c.renderer)}
	c.renderer.Render()
	return g
}

func (g *createGesture) ground(screen geom.Pt) (geom.Vec3, bool) {
	hit, ok := g.c.camera.Unproject(screen).IntersectGround()
	if !ok {
		g.c.log.Debug("ground ray cast missed",
			slog.Float64("x", screen.X), slog.Float64("y", screen.Y))
	}
	return hit, ok
}

func (g *createGesture) pointerMove(p Pointer) {
	hit, ok := g.ground(p.Screen)
	if !ok {
		return
	}
	switch g.state {
	case createPre:
		g.cursor.setCenter(hit)
	case createSelecting:
		g.rect.setCorner(hit)
	default:
		return
	}
	g.c.renderer.Render()
}

func (g *createGesture) pointerDown(p Pointer) {
	if g.state != createPre || p.Button != event.ButtonPrimary {
		return
	}
	hit, ok := g.ground(p.Screen)
	if !ok {
		return
	}
	g.state = createSelecting
	g.rect = newGroundRect(g.c.renderer, hit, g.c.camera.Heading())
	g.cursor.Destroy()
	g.c.renderer.Render()
}

func (g *createGesture) pointerUp(p Pointer) {
	if g.state != createSelecting {
		return
	}
	if hit, ok := g.ground(p.Screen); ok {
		g.rect.setCorner(hit)
	}
	g.state = createDone

	center, footprint := g.rect.CenterAndFootprint()
	heading := g.rect.Heading()
	g.destroy()
	if footprint.X < minFootprint || footprint.Y < minFootprint {
		// a stray click without a drag; the resulting box could never be
		// hit by a pick ray again
		g.c.abortCreate(footprint)
		return
	}
	box := cloud.FitBoxAutoZ(g.c.cloud.Points(), center, footprint, heading,
		g.c.cfg.Cuboid.DefaultBoxHeight)
	g.c.finishCreate(box)
}

// destroy releases the transient visuals. Idempotent.
func (g *createGesture) destroy() {
	g.cursor.Destroy()
	if g.rect != nil {
		g.rect.Destroy()
	}
	g.c.renderer.Render()
}
