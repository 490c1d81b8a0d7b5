/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package cloud holds the read-only point-cloud buffer the 3D editor
// works against, plus the point-selection and box-fitting utilities.
// The editing controllers never mutate the buffer; only the fitting
// helpers read it.
package cloud

import (
	"golabel/internal/geom"
)

// Pose is a 4x4 row-major rigid transform.
type Pose [16]float64

// IdentityPose is the no-op transform.
var IdentityPose = Pose{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// Apply transforms p by the pose.
func (t Pose) Apply(p geom.Vec3) geom.Vec3 {
	return geom.Vec3{
		X: t[0]*p.X + t[1]*p.Y + t[2]*p.Z + t[3],
		Y: t[4]*p.X + t[5]*p.Y + t[6]*p.Z + t[7],
		Z: t[8]*p.X + t[9]*p.Y + t[10]*p.Z + t[11],
	}
}

// Cloud is an immutable point buffer with a cosmetic render point size.
// The point size is the only mutable aspect; it never affects editing
// semantics.
type Cloud struct {
	pts       []geom.Vec3
	pointSize float64

	minPointSize float64
	maxPointSize float64
}

// New wraps pts in a Cloud. The slice is not copied; callers hand over
// ownership.
func New(pts []geom.Vec3) *Cloud {
	return &Cloud{pts: pts, pointSize: 2, minPointSize: 0.5, maxPointSize: 10}
}

// Points returns the backing buffer. Callers must treat it as read-only.
func (c *Cloud) Points() []geom.Vec3 { return c.pts }

// Len returns the number of points.
func (c *Cloud) Len() int { return len(c.pts) }

// PointSize returns the current render point size.
func (c *Cloud) PointSize() float64 { return c.pointSize }

// AdjustPointSize changes the render point size by delta, clamped to the
// configured range.
func (c *Cloud) AdjustPointSize(delta float64) float64 {
	c.pointSize += delta
	if c.pointSize < c.minPointSize {
		c.pointSize = c.minPointSize
	}
	if c.pointSize > c.maxPointSize {
		c.pointSize = c.maxPointSize
	}
	return c.pointSize
}

// Transform returns a new slice with every point transformed by pose.
func Transform(pts []geom.Vec3, pose Pose) []geom.Vec3 {
	out := make([]geom.Vec3, len(pts))
	for i, p := range pts {
		out[i] = pose.Apply(p)
	}
	return out
}

// FilterInBox returns the points falling inside an oriented box given by
// center, full size and heading (yaw about Z).
func FilterInBox(pts []geom.Vec3, center, size geom.Vec3, heading float64) []geom.Vec3 {
	var out []geom.Vec3
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	for _, p := range pts {
		q := p.Sub(center).RotateZ(-heading)
		if q.X >= -hx && q.X <= hx && q.Y >= -hy && q.Y <= hy && q.Z >= -hz && q.Z <= hz {
			out = append(out, p)
		}
	}
	return out
}
