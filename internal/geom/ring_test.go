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

	"github.com/google/go-cmp/cmp"
)

func square() Ring { return Ring{0, 0, 1, 0, 1, 1, 0, 1} }

func TestInsertMidNode(t *testing.T) {
	r := square()
	for edge := 0; edge < r.NumVertices(); edge++ {
		out := InsertMidNode(r, edge)
		if out.NumVertices() != r.NumVertices()+1 {
			t.Fatalf("edge %d: vertex count %d, want %d", edge, out.NumVertices(), r.NumVertices()+1)
		}
		want := r.Vertex(edge).Mid(r.Vertex((edge + 1) % r.NumVertices()))
		got := out.Vertex(edge + 1)
		if got != want {
			t.Fatalf("edge %d: midpoint %+v, want %+v", edge, got, want)
		}
		// all other vertices keep their relative cyclic order
		var rest []Pt
		for i := 0; i < out.NumVertices(); i++ {
			if i != edge+1 {
				rest = append(rest, out.Vertex(i))
			}
		}
		var orig []Pt
		for i := 0; i < r.NumVertices(); i++ {
			orig = append(orig, r.Vertex(i))
		}
		if diff := cmp.Diff(orig, rest); diff != "" {
			t.Fatalf("edge %d: vertex order changed (-want +got):\n%s", edge, diff)
		}
	}
}

func TestInsertMidNodeClosingEdge(t *testing.T) {
	r := Ring{0, 0, 1, 0, 0.5, 1}
	out := InsertMidNode(r, 2) // edge from vertex 2 back to vertex 0
	if out.NumVertices() != 4 {
		t.Fatalf("vertex count %d, want 4", out.NumVertices())
	}
	if got, want := out.Vertex(3), (Pt{0.25, 0.5}); got != want {
		t.Fatalf("closing-edge midpoint %+v, want %+v", got, want)
	}
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{-math.Pi / 2, -math.Pi / 2},
		{2 * math.Pi, 0},
		{-7 * math.Pi / 2, math.Pi / 2},
	}
	for _, c := range cases {
		got := NormalizeAngle(c.in)
		if math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("NormalizeAngle(%v) = %v, want %v", c.in, got, c.want)
		}
		if again := NormalizeAngle(got); again != got {
			t.Fatalf("not idempotent at %v: %v != %v", c.in, again, got)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Fatalf("NormalizeAngle(%v) = %v outside (-pi, pi]", c.in, got)
		}
	}
}

func TestRingValid(t *testing.T) {
	if (Ring{0, 0, 1, 0}).Valid() {
		t.Fatalf("2-vertex ring must be invalid")
	}
	if !square().Valid() {
		t.Fatalf("unit square must be valid")
	}
	// bow-tie self-intersection
	bowtie := Ring{0, 0, 1, 1, 1, 0, 0, 1}
	if bowtie.Valid() {
		t.Fatalf("self-intersecting ring must be invalid")
	}
	// collapsing a square vertex onto an opposite one degenerates the ring
	collapsed := Ring{0, 0, 1, 0, 0, 0, 0, 1}
	if collapsed.Valid() {
		t.Fatalf("degenerate ring must be invalid")
	}
}

func TestRingContains(t *testing.T) {
	r := square()
	if !r.Contains(Pt{0.5, 0.5}) {
		t.Fatalf("center should be inside")
	}
	if r.Contains(Pt{1.5, 0.5}) {
		t.Fatalf("outside point reported inside")
	}
}

func TestRemoveVertex(t *testing.T) {
	r := square()
	out := r.RemoveVertex(1)
	want := Ring{0, 0, 1, 1, 0, 1}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("unexpected ring (-want +got):\n%s", diff)
	}
	if len(r) != 8 {
		t.Fatalf("original ring mutated")
	}
}

func TestClampUnit(t *testing.T) {
	if got := (Pt{-0.5, 1.5}).ClampUnit(); got != (Pt{0, 1}) {
		t.Fatalf("clamp: %+v", got)
	}
}
