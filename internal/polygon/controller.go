/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package polygon

import (
	"log/slog"
	"time"

	"golabel/internal/annotation"
	"golabel/internal/config"
	"golabel/internal/event"
	"golabel/internal/geom"
	applog "golabel/internal/log"
)

// Mode is the controller's top-level state.
type Mode int

const (
	// ModeUpdate selects and edits existing polygons.
	ModeUpdate Mode = iota
	// ModeCreate draws a new polygon vertex by vertex.
	ModeCreate
)

func (m Mode) String() string {
	switch m {
	case ModeUpdate:
		return "update"
	case ModeCreate:
		return "create"
	}
	return "unknown"
}

// Pointer is one pointer sample from the host. Pos is in the
// normalized annotation frame; Screen is in raw screen pixels and is
// only used to discriminate double clicks. Additive marks a
// modifier-click (ctrl/shift) that extends the selection instead of
// replacing it.
type Pointer struct {
	Pos      geom.Pt
	Screen   geom.Pt
	Button   event.Button
	Additive bool
}

// Event is what the controller reports to the host after a committed
// change: record lifecycle, selection changes, and user-facing hints.
type Event struct {
	Kind    event.Kind
	Records []*annotation.Polygon
	Hint    string
}

// Controller owns the polygon editing state machine. At most one
// gesture (draw or drag) is active at a time; switching modes tears
// the active gesture down before anything else happens.
type Controller struct {
	cfg      config.InteractionConfig
	set      *annotation.Set[*annotation.Polygon]
	shapes   *SetManager
	renderer Renderer
	events   *event.Emitter[Event]
	keys     *event.KeyTable
	log      *slog.Logger

	mode Mode
	draw *drawGesture
	drag *dragGesture

	// last pointer-down, for double-click detection
	lastDownAt     time.Time
	lastDownScreen geom.Pt
	lastDownSet    bool

	now       func() time.Time
	nextColor func() string
	closed    bool
}

var defaultPalette = []string{"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231", "#911eb4"}

// NewController wires a controller over the given set and renderer.
func NewController(set *annotation.Set[*annotation.Polygon], r Renderer, cfg config.InteractionConfig) *Controller {
	c := &Controller{
		cfg:      cfg,
		set:      set,
		shapes:   NewSetManager(set, r),
		renderer: r,
		events:   event.NewEmitter[Event](),
		keys:     event.NewKeyTable(),
		log:      applog.WithComponent("polygon"),
		mode:     ModeUpdate,
		now:      time.Now,
	}
	var paletteIdx int
	c.nextColor = func() string {
		col := defaultPalette[paletteIdx%len(defaultPalette)]
		paletteIdx++
		return col
	}
	c.keys.Bind(event.KeyEnter, func() {
		if c.draw != nil {
			c.finishDraw()
		}
	})
	c.keys.Bind(event.KeyEscape, func() {
		if c.draw != nil {
			c.abortDraw()
		} else if len(c.shapes.Selection()) > 0 {
			c.shapes.ClearSelection()
			c.emit(Event{Kind: event.Selection})
		}
	})
	c.keys.Bind(event.KeyBackspace, func() {
		if c.draw != nil {
			c.draw.pop()
		}
	})
	return c
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Shapes exposes the set manager, mainly for selection queries.
func (c *Controller) Shapes() *SetManager { return c.shapes }

// OnEvent subscribes the host to controller events.
func (c *Controller) OnEvent(fn func(Event)) (cancel func()) { return c.events.Subscribe(fn) }

// SetMode switches the editing mode. Any active gesture is torn down
// first: an unfinished draw is discarded, an unfinished drag reverted.
func (c *Controller) SetMode(m Mode) {
	if c.mode == m {
		return
	}
	if c.draw != nil {
		c.abortDraw()
	}
	if c.drag != nil {
		c.drag.cancel()
		c.drag = nil
	}
	c.mode = m
	c.log.Debug("mode changed", slog.String("mode", m.String()))
}

// KeyDown feeds one key press into the controller's key table.
func (c *Controller) KeyDown(k event.Key) { c.keys.Dispatch(k) }

// PointerDown routes a pointer press to the active mode.
func (c *Controller) PointerDown(p Pointer) {
	switch c.mode {
	case ModeCreate:
		c.createDown(p)
	case ModeUpdate:
		c.updateDown(p)
	}
}

// PointerMove routes pointer motion into the active gesture.
func (c *Controller) PointerMove(p Pointer) {
	if c.draw != nil {
		c.draw.track(p.Pos)
		return
	}
	if c.drag != nil {
		c.drag.move(p.Pos)
	}
}

// PointerUp finishes an active drag gesture. Draw gestures end on
// double click or Enter, not on release.
func (c *Controller) PointerUp(p Pointer) {
	if c.drag != nil {
		c.drag.finish()
		c.drag = nil
	}
}

func (c *Controller) createDown(p Pointer) {
	if p.Button != event.ButtonPrimary {
		return
	}
	dbl := c.isDoubleClick(p)
	c.rememberDown(p)
	if c.draw == nil {
		c.draw = startDraw(c, p.Pos)
		c.emit(Event{Kind: event.Hint, Hint: "click to add vertices, double-click or Enter to finish"})
		return
	}
	if dbl {
		c.finishDraw()
		return
	}
	c.draw.addVertex(p.Pos)
}

func (c *Controller) updateDown(p Pointer) {
	c.rememberDown(p)

	// Node and mid-node handles exist only on selected simple shapes
	// showing the nodes decoration. Topmost wins.
	for _, id := range c.shapes.Selection() {
		s, ok := c.shapes.ShapeFor(id)
		if !ok || s.Decoration() != DecorationNodes || !s.Simple() {
			continue
		}
		rec, ok := c.set.Get(id)
		if !ok {
			continue
		}
		if idx, hit := s.HitNode(p.Pos, c.cfg.NodeHitRadius); hit {
			if p.Button == event.ButtonSecondary {
				c.deleteVertex(rec, idx)
				return
			}
			c.drag = startNodeDrag(c, rec, idx)
			return
		}
		if p.Button != event.ButtonPrimary {
			continue
		}
		if edge, hit := s.HitMidNode(p.Pos, c.cfg.NodeHitRadius); hit {
			c.drag = startMidNodeDrag(c, rec, edge)
			return
		}
	}

	if p.Button != event.ButtonPrimary {
		return
	}
	rec, ok := c.shapes.RecordAt(p.Pos)
	if !ok {
		if len(c.shapes.Selection()) > 0 {
			c.shapes.ClearSelection()
			c.emit(Event{Kind: event.Selection})
		}
		return
	}
	id := rec.RecordID()
	if p.Additive && !c.shapes.IsSelected(id) {
		c.shapes.AddToSelection(id)
		c.emit(Event{Kind: event.Selection, Records: c.selectedRecords()})
		return
	}
	if c.shapes.IsSelected(id) {
		// Re-clicking a selected shape cycles its decoration.
		if s, ok := c.shapes.ShapeFor(id); ok {
			s.ToggleDecoration()
			c.renderer.Render()
		}
		return
	}
	c.shapes.Select(id)
	c.emit(Event{Kind: event.Selection, Records: []*annotation.Polygon{rec}})
}

// deleteVertex removes one vertex, refusing to shrink a ring below a
// valid polygon.
func (c *Controller) deleteVertex(rec *annotation.Polygon, idx int) {
	ring := rec.Vertices()
	if ring.NumVertices() <= geom.MinRingVertices {
		c.log.Debug("vertex delete refused, ring at minimum",
			slog.String("id", rec.RecordID()))
		return
	}
	rec.SetVertices(ring.RemoveVertex(idx))
	c.emit(Event{Kind: event.Update, Records: []*annotation.Polygon{rec}})
}

// selectedRecords resolves the selection ids back to live records, in
// selection order.
func (c *Controller) selectedRecords() []*annotation.Polygon {
	ids := c.shapes.Selection()
	out := make([]*annotation.Polygon, 0, len(ids))
	for _, id := range ids {
		if rec, ok := c.set.Get(id); ok {
			out = append(out, rec)
		}
	}
	return out
}

func (c *Controller) isDoubleClick(p Pointer) bool {
	if !c.lastDownSet {
		return false
	}
	window := time.Duration(c.cfg.DoubleClickWindowMs) * time.Millisecond
	return c.now().Sub(c.lastDownAt) <= window &&
		p.Screen.DistSq(c.lastDownScreen) < c.cfg.DoubleClickDistSq
}

func (c *Controller) rememberDown(p Pointer) {
	c.lastDownAt = c.now()
	c.lastDownScreen = p.Screen
	c.lastDownSet = true
}

func (c *Controller) finishDraw() {
	g := c.draw
	c.draw = nil
	if rec, ok := g.commit(); ok {
		c.set.Add(rec)
		c.emit(Event{Kind: event.Create, Records: []*annotation.Polygon{rec}})
	}
}

func (c *Controller) abortDraw() {
	c.draw.abort()
	c.draw = nil
	c.emit(Event{Kind: event.Hint, Hint: ""})
}

func (c *Controller) emit(e Event) { c.events.Emit(e) }

// Close tears down the controller: active gestures are discarded, key
// bindings released and the shape layer detached. Idempotent.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	if c.draw != nil {
		c.draw.abort()
		c.draw = nil
	}
	if c.drag != nil {
		c.drag.cancel()
		c.drag = nil
	}
	c.keys.Close()
	c.shapes.Close()
}
