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

	"golabel/internal/geom"
)

// OrbitCamera orbits a target point on a Z-up spherical mount. It owns
// the screen-to-world unprojection the editor ray casts with, and an
// enabled flag the gesture controllers toggle so a handle drag never
// doubles as a camera drag.
type OrbitCamera struct {
	target geom.Vec3
	dist   float64
	yaw    float64 // about Z, radians
	pitch  float64 // above the ground plane, radians

	fovY          float64
	width, height float64

	enabled bool
}

const (
	minPitch = 0.05
	maxPitch = math.Pi/2 - 0.01
	minDist  = 1.0
	maxDist  = 500.0
)

// NewOrbitCamera returns an enabled camera looking at the origin from a
// medium distance.
func NewOrbitCamera(width, height float64) *OrbitCamera {
	return &OrbitCamera{
		dist:    20,
		yaw:     -math.Pi / 2,
		pitch:   math.Pi / 4,
		fovY:    math.Pi / 3,
		width:   width,
		height:  height,
		enabled: true,
	}
}

// SetViewport updates the screen dimensions used for unprojection.
func (c *OrbitCamera) SetViewport(width, height float64) {
	c.width = width
	c.height = height
}

// Enabled reports whether orbit input is currently accepted.
func (c *OrbitCamera) Enabled() bool { return c.enabled }

// SetEnabled switches orbit input on or off.
func (c *OrbitCamera) SetEnabled(on bool) { c.enabled = on }

// Rotate orbits by the given yaw/pitch deltas. Pitch is clamped so the
// camera never crosses the zenith or the ground plane. A disabled
// camera ignores the call.
func (c *OrbitCamera) Rotate(dyaw, dpitch float64) {
	if !c.enabled {
		return
	}
	c.yaw = geom.NormalizeAngle(c.yaw + dyaw)
	c.pitch = math.Max(minPitch, math.Min(maxPitch, c.pitch+dpitch))
}

// Zoom moves the camera along its view axis, clamped to a sane range.
func (c *OrbitCamera) Zoom(delta float64) {
	if !c.enabled {
		return
	}
	c.dist = math.Max(minDist, math.Min(maxDist, c.dist+delta))
}

// Heading returns the camera's yaw about Z, normalized. New ground
// rectangles are oriented with it so a drawn box faces the viewer.
func (c *OrbitCamera) Heading() float64 { return geom.NormalizeAngle(c.yaw) }

// Position returns the camera's world position.
func (c *OrbitCamera) Position() geom.Vec3 {
	cp := math.Cos(c.pitch)
	return geom.Vec3{
		X: c.target.X + c.dist*cp*math.Cos(c.yaw),
		Y: c.target.Y + c.dist*cp*math.Sin(c.yaw),
		Z: c.target.Z + c.dist*math.Sin(c.pitch),
	}
}

// Unproject turns a screen point into a world-space pick ray through a
// pinhole model.
func (c *OrbitCamera) Unproject(screen geom.Pt) geom.Ray {
	pos := c.Position()
	forward := c.target.Sub(pos).Normalize()
	right := forward.Cross(geom.Vec3{Z: 1}).Normalize()
	up := right.Cross(forward)

	ndcX := 2*screen.X/c.width - 1
	ndcY := 1 - 2*screen.Y/c.height
	tanY := math.Tan(c.fovY / 2)
	tanX := tanY * c.width / c.height

	dir := forward.
		Add(right.Mul(ndcX * tanX)).
		Add(up.Mul(ndcY * tanY)).
		Normalize()
	return geom.Ray{Origin: pos, Dir: dir}
}
