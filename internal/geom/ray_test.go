/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"testing"
)

func TestIntersectGround(t *testing.T) {
	r := Ray{Origin: Vec3{0, 0, 10}, Dir: Vec3{0, 0, -1}}
	hit, ok := r.IntersectGround()
	if !ok || hit != (Vec3{0, 0, 0}) {
		t.Fatalf("straight-down ray: %+v ok=%v", hit, ok)
	}

	// parallel to the plane
	if _, ok := (Ray{Origin: Vec3{0, 0, 1}, Dir: Vec3{1, 0, 0}}).IntersectGround(); ok {
		t.Fatalf("parallel ray must miss")
	}

	// pointing away from the plane
	if _, ok := (Ray{Origin: Vec3{0, 0, 1}, Dir: Vec3{0, 0, 1}}).IntersectGround(); ok {
		t.Fatalf("ray pointing away must miss")
	}

	// oblique ray
	r = Ray{Origin: Vec3{1, 2, 4}, Dir: Vec3{0, 0.6, -0.8}}
	hit, ok = r.IntersectGround()
	if !ok || math.Abs(hit.Y-5) > 1e-9 || hit.X != 1 {
		t.Fatalf("oblique hit: %+v ok=%v", hit, ok)
	}
}

func TestIntersectBox(t *testing.T) {
	center := Vec3{0, 0, 0.5}
	size := Vec3{2, 1, 1}

	if _, ok := (Ray{Origin: Vec3{0, -5, 0.5}, Dir: Vec3{0, 1, 0}}).IntersectBox(center, size, 0); !ok {
		t.Fatalf("axis-aligned hit missed")
	}
	if _, ok := (Ray{Origin: Vec3{0, -5, 2}, Dir: Vec3{0, 1, 0}}).IntersectBox(center, size, 0); ok {
		t.Fatalf("ray above box should miss")
	}

	// heading rotates the long side onto the Y axis; a ray offset 0.9 on
	// Y only hits the rotated box
	heading := math.Pi / 2
	if _, ok := (Ray{Origin: Vec3{5, 0.9, 0.5}, Dir: Vec3{-1, 0, 0}}).IntersectBox(center, size, heading); !ok {
		t.Fatalf("rotated box should be hit")
	}
	if _, ok := (Ray{Origin: Vec3{5, 0.9, 0.5}, Dir: Vec3{-1, 0, 0}}).IntersectBox(center, size, 0); ok {
		t.Fatalf("unrotated box should miss at y=0.9")
	}

	// nearest-hit parameter
	tHit, ok := (Ray{Origin: Vec3{-5, 0, 0.5}, Dir: Vec3{1, 0, 0}}).IntersectBox(center, size, 0)
	if !ok || math.Abs(tHit-4) > 1e-9 {
		t.Fatalf("nearest hit t=%v ok=%v, want 4", tHit, ok)
	}
}

func TestVec3Ops(t *testing.T) {
	v := Vec3{1, 0, 0}.RotateZ(math.Pi / 2)
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Y-1) > 1e-12 {
		t.Fatalf("RotateZ: %+v", v)
	}
	if got := (Vec3{3, 4, 0}).Len(); got != 5 {
		t.Fatalf("Len: %v", got)
	}
	if got := (Vec3{0, 0, 0}).Normalize(); got != (Vec3{}) {
		t.Fatalf("Normalize zero: %+v", got)
	}
	up := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	if up != (Vec3{0, 0, 1}) {
		t.Fatalf("Cross: %+v", up)
	}
}
