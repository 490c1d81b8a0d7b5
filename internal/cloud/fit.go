/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cloud

import (
	"gonum.org/v1/gonum/floats"

	"golabel/internal/geom"
)

// Box is a fitted cuboid pose.
type Box struct {
	Center  geom.Vec3
	Size    geom.Vec3 // length, width, height
	Heading float64   // normalized into (-pi, pi]
}

// FitBoxAutoZ derives a full 3D box from a 2D ground footprint. Points
// whose ground projection falls inside the footprint (rotated by
// heading) determine the vertical center and height from their z range.
// With zero enclosed points the box gets defaultHeight resting on the
// ground plane; the function never fails and never returns NaN fields.
func FitBoxAutoZ(pts []geom.Vec3, center geom.Pt, footprint geom.Pt, heading, defaultHeight float64) Box {
	heading = geom.NormalizeAngle(heading)
	hx, hy := footprint.X/2, footprint.Y/2

	var zs []float64
	for _, p := range pts {
		q := p.Sub(geom.Vec3{X: center.X, Y: center.Y}).RotateZ(-heading)
		if q.X >= -hx && q.X <= hx && q.Y >= -hy && q.Y <= hy {
			zs = append(zs, p.Z)
		}
	}

	zCenter := defaultHeight / 2
	height := defaultHeight
	if len(zs) > 0 {
		zMin := floats.Min(zs)
		zMax := floats.Max(zs)
		if h := zMax - zMin; h > 0 {
			height = h
		}
		zCenter = (zMin + zMax) / 2
	}

	return Box{
		Center:  geom.Vec3{X: center.X, Y: center.Y, Z: zCenter},
		Size:    geom.Vec3{X: footprint.X, Y: footprint.Y, Z: height},
		Heading: heading,
	}
}
