/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cloud

import (
	"math"
	"testing"

	"golabel/internal/geom"
)

func TestFilterInBox(t *testing.T) {
	pts := []geom.Vec3{
		{0, 0, 0.5},
		{0.9, 0.4, 0.5},
		{1.1, 0, 0.5},   // outside along X
		{0, 0, 1.6},     // above
		{0.4, 0.9, 0.5}, // outside width before rotation
	}
	got := FilterInBox(pts, geom.Vec3{0, 0, 0.75}, geom.Vec3{2, 1, 1.5}, 0)
	if len(got) != 2 {
		t.Fatalf("unrotated filter kept %d points, want 2", len(got))
	}

	// rotating the box by 90 degrees swaps which points fit
	got = FilterInBox(pts, geom.Vec3{0, 0, 0.75}, geom.Vec3{2, 1, 1.5}, math.Pi/2)
	if len(got) != 2 {
		t.Fatalf("rotated filter kept %d points, want 2", len(got))
	}
}

func TestTransform(t *testing.T) {
	pose := IdentityPose
	pose[3] = 10 // translate +10 on X
	out := Transform([]geom.Vec3{{1, 2, 3}}, pose)
	if out[0] != (geom.Vec3{11, 2, 3}) {
		t.Fatalf("transform: %+v", out[0])
	}
}

func TestFitBoxAutoZ(t *testing.T) {
	pts := []geom.Vec3{
		{0.1, 0.2, 0.0},
		{-0.3, 1.0, 1.0},
		{0.5, -1.2, 0.4},
		{8, 8, 3}, // far outside the footprint
	}
	box := FitBoxAutoZ(pts, geom.Pt{0, 0}, geom.Pt{2, 3}, 0, 1.5)
	if box.Size.X != 2 || box.Size.Y != 3 {
		t.Fatalf("footprint size: %+v", box.Size)
	}
	if math.Abs(box.Size.Z-1.0) > 1e-9 {
		t.Fatalf("height from z range: %v, want 1.0", box.Size.Z)
	}
	if math.Abs(box.Center.Z-0.5) > 1e-9 {
		t.Fatalf("z center: %v, want 0.5", box.Center.Z)
	}
}

func TestFitBoxAutoZEmpty(t *testing.T) {
	box := FitBoxAutoZ(nil, geom.Pt{5, 5}, geom.Pt{1, 1}, 7, 2)
	if box.Size.Z != 2 || box.Center.Z != 1 {
		t.Fatalf("default box: %+v", box)
	}
	if box.Heading <= -math.Pi || box.Heading > math.Pi {
		t.Fatalf("heading not normalized: %v", box.Heading)
	}
	if math.IsNaN(box.Center.X) || math.IsNaN(box.Size.X) {
		t.Fatalf("NaN fields in default box")
	}
}

func TestAdjustPointSize(t *testing.T) {
	c := New(nil)
	start := c.PointSize()
	c.AdjustPointSize(0.5)
	if c.PointSize() != start+0.5 {
		t.Fatalf("point size: %v", c.PointSize())
	}
	c.AdjustPointSize(-100)
	if c.PointSize() != 0.5 {
		t.Fatalf("point size not clamped low: %v", c.PointSize())
	}
	c.AdjustPointSize(100)
	if c.PointSize() != 10 {
		t.Fatalf("point size not clamped high: %v", c.PointSize())
	}
}
