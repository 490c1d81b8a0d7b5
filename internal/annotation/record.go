/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package annotation defines the observable annotation records (2D
// polygons, 3D cuboids) and the observable set that owns them. Records
// are mutable value objects: every mutator notifies registered
// observers synchronously, strictly after the mutation, so a re-render
// always sees the post-mutation state.
package annotation

import (
	"fmt"

	"github.com/google/uuid"

	"golabel/internal/geom"
)

// Record is anything the observable set can hold.
type Record interface {
	RecordID() string
}

// idNamespace seeds the deterministic ids derived for merge and split
// results.
var idNamespace = uuid.MustParse("7f1ff0c4-9a3e-4b6e-8f12-3a5d1c7b9e21")

// NewID returns a fresh unique annotation id.
func NewID() string { return uuid.NewString() }

// MergedID derives a stable id from the ids of merged source records.
func MergedID(ids []string) string {
	var joined string
	for _, id := range ids {
		joined += id + "|"
	}
	return uuid.NewSHA1(idNamespace, []byte("merge:"+joined)).String()
}

// SplitID derives the id of the i-th ring split out of record id.
func SplitID(id string, i int) string {
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("split:%s:%d", id, i))).String()
}

// observers is the per-record observer registry. Registration returns a
// cancel func; the set manager keeps it in a side map so no observer
// outlives its record.
type observers struct {
	fns  map[int]func()
	next int
}

func (o *observers) observe(fn func()) (cancel func()) {
	if o.fns == nil {
		o.fns = make(map[int]func())
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	return func() { delete(o.fns, id) }
}

func (o *observers) notify() {
	for _, fn := range o.fns {
		fn()
	}
}

func (o *observers) count() int { return len(o.fns) }

// GeometryKind discriminates a polygon record's geometry.
type GeometryKind int

const (
	GeometryPolygon GeometryKind = iota
	GeometryMultiPolygon
)

// Polygon is a 2D region annotation: either a single vertex ring or an
// ordered set of rings sharing one identity (multi-polygon). Vertices
// are normalized to [0,1]x[0,1].
type Polygon struct {
	id    string
	color string
	kind  GeometryKind
	rings []geom.Ring

	obs observers
}

// NewPolygon creates a single-ring polygon record with a fresh id.
func NewPolygon(ring geom.Ring, color string) *Polygon {
	return &Polygon{id: NewID(), color: color, kind: GeometryPolygon, rings: []geom.Ring{ring.Clone()}}
}

// NewMultiPolygon creates a multi-polygon record with the given id.
// rings must be non-empty for the record to be meaningful.
func NewMultiPolygon(id string, rings []geom.Ring, color string) *Polygon {
	cp := make([]geom.Ring, len(rings))
	for i, r := range rings {
		cp[i] = r.Clone()
	}
	return &Polygon{id: id, color: color, kind: GeometryMultiPolygon, rings: cp}
}

// NewPolygonWithID creates a single-ring polygon with a caller-chosen id.
func NewPolygonWithID(id string, ring geom.Ring, color string) *Polygon {
	return &Polygon{id: id, color: color, kind: GeometryPolygon, rings: []geom.Ring{ring.Clone()}}
}

func (p *Polygon) RecordID() string   { return p.id }
func (p *Polygon) Color() string      { return p.color }
func (p *Polygon) Kind() GeometryKind { return p.kind }

// Vertices returns a copy of the single ring. For multi-polygons it
// returns the first ring.
func (p *Polygon) Vertices() geom.Ring {
	if len(p.rings) == 0 {
		return nil
	}
	return p.rings[0].Clone()
}

// Rings returns a copy of all rings.
func (p *Polygon) Rings() []geom.Ring {
	out := make([]geom.Ring, len(p.rings))
	for i, r := range p.rings {
		out[i] = r.Clone()
	}
	return out
}

// SetVertices replaces the geometry with a single ring.
func (p *Polygon) SetVertices(ring geom.Ring) {
	p.kind = GeometryPolygon
	p.rings = []geom.Ring{ring.Clone()}
	p.obs.notify()
}

// Observe registers fn to run after every mutation of this record.
func (p *Polygon) Observe(fn func()) (cancel func()) { return p.obs.observe(fn) }

// Cuboid is a 3D bounding-box annotation: center position, full size
// (length, width, height) and a yaw heading kept normalized in
// (-pi, pi] after every mutation.
type Cuboid struct {
	id      string
	color   string
	pos     geom.Vec3
	size    geom.Vec3
	heading float64

	obs observers
}

// NewCuboid creates a cuboid record with a fresh id.
func NewCuboid(pos, size geom.Vec3, heading float64, color string) *Cuboid {
	return &Cuboid{id: NewID(), color: color, pos: pos, size: size, heading: geom.NormalizeAngle(heading)}
}

func (c *Cuboid) RecordID() string    { return c.id }
func (c *Cuboid) Color() string       { return c.color }
func (c *Cuboid) Position() geom.Vec3 { return c.pos }
func (c *Cuboid) Size() geom.Vec3     { return c.size }
func (c *Cuboid) Heading() float64    { return c.heading }

// SetPose replaces position, size and heading in one mutation.
func (c *Cuboid) SetPose(pos, size geom.Vec3, heading float64) {
	c.pos = pos
	c.size = size
	c.heading = geom.NormalizeAngle(heading)
	c.obs.notify()
}

// SetHeading stores the normalized heading.
func (c *Cuboid) SetHeading(heading float64) {
	c.heading = geom.NormalizeAngle(heading)
	c.obs.notify()
}

// Observe registers fn to run after every mutation of this record.
func (c *Cuboid) Observe(fn func()) (cancel func()) { return c.obs.observe(fn) }

// ObserverCount is exposed for leak tests.
func (c *Cuboid) ObserverCount() int { return c.obs.count() }

// ObserverCount is exposed for leak tests.
func (p *Polygon) ObserverCount() int { return p.obs.count() }
