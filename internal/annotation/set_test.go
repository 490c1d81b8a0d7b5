/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package annotation

import (
	"math"
	"testing"

	"golabel/internal/geom"
)

func triangle() geom.Ring { return geom.Ring{0.1, 0.1, 0.9, 0.1, 0.5, 0.9} }

func TestSetAddDeleteClearEvents(t *testing.T) {
	s := NewSet[*Polygon]()
	var events []SetEvent[*Polygon]
	cancel := s.Watch(func(e SetEvent[*Polygon]) { events = append(events, e) })
	defer cancel()

	a := NewPolygon(triangle(), "#ff0000")
	b := NewPolygon(triangle(), "#00ff00")
	if !s.Add(a) || !s.Add(b) {
		t.Fatalf("adds should succeed")
	}
	if s.Add(a) {
		t.Fatalf("duplicate add should be rejected")
	}
	if s.Len() != 2 {
		t.Fatalf("len: %d", s.Len())
	}

	if _, ok := s.Delete(a.RecordID()); !ok {
		t.Fatalf("delete failed")
	}
	if _, ok := s.Delete(a.RecordID()); ok {
		t.Fatalf("second delete should fail")
	}

	removed := s.Clear()
	if len(removed) != 1 || removed[0] != b {
		t.Fatalf("clear returned %v", removed)
	}

	wantKinds := []SetEventKind{SetAdd, SetAdd, SetDelete, SetClear}
	if len(events) != len(wantKinds) {
		t.Fatalf("event count %d, want %d", len(events), len(wantKinds))
	}
	for i, k := range wantKinds {
		if events[i].Kind != k {
			t.Fatalf("event %d kind %v, want %v", i, events[i].Kind, k)
		}
	}
	// events are dispatched after the mutation: the delete event carried
	// a record no longer in the set
	if s.Contains(a.RecordID()) {
		t.Fatalf("deleted record still a member")
	}
}

func TestPolygonObserve(t *testing.T) {
	p := NewPolygon(triangle(), "#fff")
	var n int
	cancel := p.Observe(func() { n++ })
	p.SetVertices(geom.Ring{0, 0, 1, 0, 1, 1})
	if n != 1 {
		t.Fatalf("observer not notified: %d", n)
	}
	cancel()
	p.SetVertices(triangle())
	if n != 1 {
		t.Fatalf("observer survived cancel: %d", n)
	}
	if p.ObserverCount() != 0 {
		t.Fatalf("observer leaked")
	}
}

func TestCuboidHeadingAlwaysNormalized(t *testing.T) {
	c := NewCuboid(geom.Vec3{}, geom.Vec3{1, 1, 1}, 3*math.Pi, "#fff")
	if got := c.Heading(); math.Abs(got-math.Pi) > 1e-12 {
		t.Fatalf("constructor heading: %v", got)
	}
	c.SetHeading(c.Heading() - math.Pi/2)
	if got := c.Heading(); got <= -math.Pi || got > math.Pi {
		t.Fatalf("SetHeading left %v outside (-pi, pi]", got)
	}
	c.SetPose(geom.Vec3{1, 2, 3}, geom.Vec3{2, 2, 2}, -5*math.Pi/2)
	if got := c.Heading(); math.Abs(got+math.Pi/2) > 1e-12 {
		t.Fatalf("SetPose heading: %v", got)
	}
}

func TestDerivedIDsAreStable(t *testing.T) {
	ids := []string{"a", "b", "c"}
	if MergedID(ids) != MergedID(ids) {
		t.Fatalf("MergedID not deterministic")
	}
	if MergedID(ids) == MergedID(ids[:2]) {
		t.Fatalf("MergedID ignores inputs")
	}
	if SplitID("x", 0) == SplitID("x", 1) {
		t.Fatalf("SplitID ignores index")
	}
	if NewID() == NewID() {
		t.Fatalf("NewID collided")
	}
}
