/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// Ray is a half-line in world space. Dir is expected to be normalized.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// IntersectGround intersects the ray with the ground plane z=0. It
// reports false when the ray is parallel to the plane or points away
// from it.
func (r Ray) IntersectGround() (Vec3, bool) {
	if math.Abs(r.Dir.Z) < 1e-12 {
		return Vec3{}, false
	}
	t := -r.Origin.Z / r.Dir.Z
	if t < 0 {
		return Vec3{}, false
	}
	return r.Origin.Add(r.Dir.Mul(t)), true
}

// IntersectBox intersects the ray with an oriented box described by its
// center, full size (length, width, height) and heading (yaw about Z).
// It returns the ray parameter of the nearest hit. The test transforms
// the ray into the box frame and runs the standard slab test.
func (r Ray) IntersectBox(center, size Vec3, heading float64) (float64, bool) {
	o := r.Origin.Sub(center).RotateZ(-heading)
	d := r.Dir.RotateZ(-heading)
	half := size.Mul(0.5)

	tmin := math.Inf(-1)
	tmax := math.Inf(1)
	for _, axis := range [3][3]float64{
		{o.X, d.X, half.X},
		{o.Y, d.Y, half.Y},
		{o.Z, d.Z, half.Z},
	} {
		oa, da, ha := axis[0], axis[1], axis[2]
		if math.Abs(da) < 1e-12 {
			if oa < -ha || oa > ha {
				return 0, false
			}
			continue
		}
		t1 := (-ha - oa) / da
		t2 := (ha - oa) / da
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}
