/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cuboid implements the 3D cuboid annotation editor: box plots
// mirroring cuboid records into the scene, an orbit camera with screen
// ray casting, and the mode controller driving selection, creation and
// handle edits over a read-only point-cloud buffer.
package cuboid

import "golabel/internal/geom"

// Visual is anything the render layer can hold: persistent box plots
// and the transient create-gesture helpers.
type Visual interface{ visual() }

// Renderer is the external render layer contract for the 3D scene.
type Renderer interface {
	Attach(Visual)
	Detach(Visual)
	Render()
}

// Style selects which handle set a selected plot presents.
type Style int

const (
	// StyleMove drags the whole box on the ground plane.
	StyleMove Style = iota
	// StyleResize drags one footprint corner.
	StyleResize
)

// Plot is the visual counterpart of one cuboid record.
type Plot struct {
	center  geom.Vec3
	size    geom.Vec3
	heading float64
	style   Style

	renderer  Renderer
	destroyed bool
}

func (*Plot) visual() {}

func newPlot(r Renderer, center, size geom.Vec3, heading float64) *Plot {
	p := &Plot{center: center, size: size, heading: heading, renderer: r}
	r.Attach(p)
	return p
}

// Pose returns the plot's current box pose.
func (p *Plot) Pose() (center, size geom.Vec3, heading float64) {
	return p.center, p.size, p.heading
}

func (p *Plot) setPose(center, size geom.Vec3, heading float64) {
	p.center = center
	p.size = size
	p.heading = heading
}

// Style returns the current handle style.
func (p *Plot) Style() Style { return p.style }

// ToggleStyle flips between the move and resize handle sets.
func (p *Plot) ToggleStyle() {
	if p.style == StyleMove {
		p.style = StyleResize
	} else {
		p.style = StyleMove
	}
}

// Hit intersects a pick ray with the plot's box, returning the ray
// parameter of the nearest hit.
func (p *Plot) Hit(ray geom.Ray) (float64, bool) {
	return ray.IntersectBox(p.center, p.size, p.heading)
}

// Destroy detaches the plot from the scene. Idempotent.
func (p *Plot) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.renderer.Detach(p)
}

// Destroyed reports whether Destroy ran.
func (p *Plot) Destroyed() bool { return p.destroyed }

// CursorDisc is the transient ground-plane cursor shown while a create
// gesture waits for its first corner.
type CursorDisc struct {
	center geom.Vec3
	radius float64

	renderer  Renderer
	destroyed bool
}

func (*CursorDisc) visual() {}

func newCursorDisc(r Renderer) *CursorDisc {
	d := &CursorDisc{radius: 0.5, renderer: r}
	r.Attach(d)
	return d
}

// Center returns the disc's ground position.
func (d *CursorDisc) Center() geom.Vec3 { return d.center }

func (d *CursorDisc) setCenter(c geom.Vec3) { d.center = c }

// Destroy detaches the disc. Idempotent.
func (d *CursorDisc) Destroy() {
	if d.destroyed {
		return
	}
	d.destroyed = true
	d.renderer.Detach(d)
}

// GroundRect is the transient, heading-aligned ground rectangle grown
// between the create gesture's anchor corner and the pointer.
type GroundRect struct {
	anchor  geom.Vec3
	corner  geom.Vec3
	heading float64

	renderer  Renderer
	destroyed bool
}

func (*GroundRect) visual() {}

func newGroundRect(r Renderer, anchor geom.Vec3, heading float64) *GroundRect {
	g := &GroundRect{anchor: anchor, corner: anchor, heading: heading, renderer: r}
	r.Attach(g)
	return g
}

// Heading returns the rectangle's orientation (yaw about Z).
func (g *GroundRect) Heading() float64 { return g.heading }

// Corners returns the anchor and the tracked far corner.
func (g *GroundRect) Corners() (anchor, corner geom.Vec3) { return g.anchor, g.corner }

func (g *GroundRect) setCorner(c geom.Vec3) { g.corner = c }

// CenterAndFootprint reduces the rectangle to a box footprint: ground
// center and heading-frame extents.
func (g *GroundRect) CenterAndFootprint() (center geom.Pt, footprint geom.Pt) {
	center = g.anchor.Add(g.corner).Mul(0.5).XY()
	local := g.corner.Sub(g.anchor).RotateZ(-g.heading)
	footprint = geom.Pt{X: abs(local.X), Y: abs(local.Y)}
	return center, footprint
}

// Destroy detaches the rectangle. Idempotent.
func (g *GroundRect) Destroy() {
	if g.destroyed {
		return
	}
	g.destroyed = true
	g.renderer.Detach(g)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
