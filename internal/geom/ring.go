/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	sf "github.com/peterstace/simplefeatures/geom"
)

// MinRingVertices is the smallest vertex count for a committed polygon ring.
// Rings with fewer vertices are a transient, not-yet-committed state.
const MinRingVertices = 3

// Ring is an ordered, closed vertex ring stored as a flat sequence of
// (x,y) pairs. The closing edge from the last vertex back to the first is
// implicit.
type Ring []float64

// NumVertices returns the number of (x,y) vertices in the ring.
func (r Ring) NumVertices() int { return len(r) / 2 }

// Vertex returns the i-th vertex. i must be in [0, NumVertices).
func (r Ring) Vertex(i int) Pt { return Pt{r[2*i], r[2*i+1]} }

// SetVertex overwrites the i-th vertex in place.
func (r Ring) SetVertex(i int, p Pt) {
	r[2*i] = p.X
	r[2*i+1] = p.Y
}

// Clone returns an independent copy of the ring.
func (r Ring) Clone() Ring {
	if r == nil {
		return nil
	}
	out := make(Ring, len(r))
	copy(out, r)
	return out
}

// Append returns the ring with p appended as a new trailing vertex.
func (r Ring) Append(p Pt) Ring { return append(r, p.X, p.Y) }

// RemoveVertex returns a new ring with the i-th vertex removed. The
// relative order of the remaining vertices is preserved.
func (r Ring) RemoveVertex(i int) Ring {
	out := make(Ring, 0, len(r)-2)
	out = append(out, r[:2*i]...)
	out = append(out, r[2*i+2:]...)
	return out
}

// InsertMidNode returns a new ring with the midpoint of the edge between
// vertex edge and vertex (edge+1) mod n inserted between them. Winding
// order and the relative cyclic order of all other vertices are
// preserved.
func InsertMidNode(r Ring, edge int) Ring {
	n := r.NumVertices()
	a := r.Vertex(edge)
	b := r.Vertex((edge + 1) % n)
	m := a.Mid(b)
	out := make(Ring, 0, len(r)+2)
	out = append(out, r[:2*(edge+1)]...)
	out = append(out, m.X, m.Y)
	out = append(out, r[2*(edge+1):]...)
	return out
}

// Midpoints returns the midpoint of every edge, including the implicit
// closing edge. Index i corresponds to the edge starting at vertex i.
func (r Ring) Midpoints() []Pt {
	n := r.NumVertices()
	out := make([]Pt, n)
	for i := 0; i < n; i++ {
		out[i] = r.Vertex(i).Mid(r.Vertex((i + 1) % n))
	}
	return out
}

// Contains reports whether p lies inside the ring (even-odd rule).
func (r Ring) Contains(p Pt) bool {
	n := r.NumVertices()
	if n < MinRingVertices {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a := r.Vertex(i)
		b := r.Vertex(j)
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Valid reports whether the ring describes a committable simple polygon:
// at least MinRingVertices vertices and a boundary free of
// self-intersection. The simplicity check is delegated to
// simplefeatures so drag edits that collapse or cross the ring are
// rejected consistently.
func (r Ring) Valid() bool {
	n := r.NumVertices()
	if n < MinRingVertices {
		return false
	}
	coords := make([]float64, 0, len(r)+2)
	coords = append(coords, r...)
	// close the ring explicitly; simplefeatures requires it
	coords = append(coords, r[0], r[1])
	seq := sf.NewSequence(coords, sf.DimXY)
	ls, err := sf.NewLineString(seq)
	if err != nil {
		return false
	}
	_, err = sf.NewPolygon([]sf.LineString{ls})
	return err == nil
}
