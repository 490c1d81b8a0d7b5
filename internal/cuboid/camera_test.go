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
	"testing"

	"golabel/internal/geom"
)

func TestCameraUnprojectRoundTrip(t *testing.T) {
	cam := NewOrbitCamera(800, 600)
	for _, p := range []geom.Vec3{
		{},
		{X: 2, Y: 3},
		{X: -1, Y: 1, Z: 0.5},
	} {
		ray := cam.Unproject(project(cam, p))
		// the ray must pass through p: the rejection of p-origin from
		// the ray direction vanishes
		v := p.Sub(ray.Origin)
		perp := v.Sub(ray.Dir.Mul(v.Dot(ray.Dir)))
		if perp.Len() > 1e-9 {
			t.Fatalf("ray misses %+v by %v", p, perp.Len())
		}
	}
}

func TestCameraPitchClamped(t *testing.T) {
	cam := NewOrbitCamera(800, 600)
	cam.Rotate(0, 100) // way past the zenith
	if got := cam.pitch; got > maxPitch {
		t.Fatalf("pitch above clamp: %v", got)
	}
	cam.Rotate(0, -100)
	if got := cam.pitch; got < minPitch {
		t.Fatalf("pitch below clamp: %v", got)
	}
	// the camera never dips under the ground plane
	if cam.Position().Z <= 0 {
		t.Fatalf("camera below ground: %v", cam.Position().Z)
	}
}

func TestCameraDisabledIgnoresInput(t *testing.T) {
	cam := NewOrbitCamera(800, 600)
	cam.SetEnabled(false)
	yaw, pitch, dist := cam.yaw, cam.pitch, cam.dist
	cam.Rotate(1, 1)
	cam.Zoom(5)
	if cam.yaw != yaw || cam.pitch != pitch || cam.dist != dist {
		t.Fatalf("disabled camera moved")
	}
	cam.SetEnabled(true)
	cam.Zoom(5)
	if cam.dist != dist+5 {
		t.Fatalf("zoom after re-enable: %v", cam.dist)
	}
}

func TestCameraHeadingNormalized(t *testing.T) {
	cam := NewOrbitCamera(800, 600)
	for i := 0; i < 10; i++ {
		cam.Rotate(math.Pi/3, 0)
		if h := cam.Heading(); h <= -math.Pi || h > math.Pi {
			t.Fatalf("heading outside (-pi, pi]: %v", h)
		}
	}
}
