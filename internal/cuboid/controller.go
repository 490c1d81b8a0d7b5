/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package cuboid

import (
	"errors"
	"log/slog"
	"math"

	"golabel/internal/annotation"
	"golabel/internal/cloud"
	"golabel/internal/config"
	"golabel/internal/event"
	"golabel/internal/geom"
	applog "golabel/internal/log"
)

// Mode is the controller's top-level state.
type Mode int

const (
	// ModeNone is idle: orbit navigation and selection only.
	ModeNone Mode = iota
	// ModeEdit manipulates a single target cuboid.
	ModeEdit
	// ModeCreate draws a new ground-aligned box.
	ModeCreate
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeEdit:
		return "edit"
	case ModeCreate:
		return "create"
	}
	return "unknown"
}

var (
	// ErrNoTarget is returned when edit mode is entered without a target.
	ErrNoTarget = errors.New("cuboid: edit mode needs a target record")
	// ErrUnknownTarget is returned when the edit target is not a set member.
	ErrUnknownTarget = errors.New("cuboid: edit target is not in the annotation set")
)

// Pointer is one pointer sample from the host, in screen pixels. World
// positions are derived by ray casting through the camera.
type Pointer struct {
	Screen geom.Pt
	Button event.Button
}

// Event is what the controller reports to the host after a committed
// change.
type Event struct {
	Kind    event.Kind
	Records []*annotation.Cuboid
	Hint    string
}

// Controller owns the cuboid editing state machine. Every mode switch
// runs the same teardown first: destroy gestures, flush a pending
// update, re-enable orbit; only then are the new mode's preconditions
// checked, so a failed precondition can never leak a gesture.
type Controller struct {
	cfg      config.AppConfig
	set      *annotation.Set[*annotation.Cuboid]
	plots    *SetManager
	renderer Renderer
	cloud    *cloud.Cloud
	camera   *OrbitCamera
	events   *event.Emitter[Event]
	keys     *event.KeyTable
	log      *slog.Logger

	mode          Mode
	target        *annotation.Cuboid
	create        *createGesture
	edit          *editGesture
	pendingUpdate bool

	// pointer bookkeeping: click vs camera-drag discrimination
	downScreen  geom.Pt
	lastScreen  geom.Pt
	pointerHeld bool
	orbited     bool

	nextColor func() string
	closed    bool
}

const orbitSpeed = 0.01 // radians per screen pixel

var boxPalette = []string{"#00c853", "#ffd600", "#2962ff", "#d50000", "#aa00ff"}

// NewController wires a controller over the given set, scene renderer,
// point-cloud buffer and camera.
func NewController(set *annotation.Set[*annotation.Cuboid], r Renderer, cl *cloud.Cloud, cam *OrbitCamera, cfg config.AppConfig) *Controller {
	c := &Controller{
		cfg:      cfg,
		set:      set,
		plots:    NewSetManager(set, r),
		renderer: r,
		cloud:    cl,
		camera:   cam,
		events:   event.NewEmitter[Event](),
		keys:     event.NewKeyTable(),
		log:      applog.WithComponent("cuboid"),
		mode:     ModeNone,
	}
	var paletteIdx int
	c.nextColor = func() string {
		col := boxPalette[paletteIdx%len(boxPalette)]
		paletteIdx++
		return col
	}
	c.bindKeys()
	return c
}

func (c *Controller) bindKeys() {
	c.keys.Bind(event.KeySpace, func() {
		// the shortcut acts while idle or editing, never mid-create
		if c.target == nil || c.mode == ModeCreate {
			return
		}
		c.target.SetHeading(c.target.Heading() - math.Pi/2)
		c.emit(Event{Kind: event.Update, Records: []*annotation.Cuboid{c.target}})
	})
	c.keys.Bind(event.KeyEscape, func() {
		had := c.target != nil
		c.teardown()
		c.target = nil
		if had {
			c.emit(Event{Kind: event.Selection})
		}
	})
	c.keys.Bind(event.KeyDelete, func() {
		if c.target == nil {
			return
		}
		rec := c.target
		c.teardown()
		c.target = nil
		c.set.Delete(rec.RecordID())
		c.emit(Event{Kind: event.Delete, Records: []*annotation.Cuboid{rec}})
		c.emit(Event{Kind: event.Selection})
	})
	c.keys.Bind("c", func() {
		_ = c.SetMode(ModeCreate)
	})
	// point-size keys are cosmetic and must never steal mode keys:
	// they only act while idle
	c.keys.Bind("+", func() {
		if c.mode == ModeNone {
			c.cloud.AdjustPointSize(c.cfg.Cuboid.PointSizeStep)
			c.renderer.Render()
		}
	})
	c.keys.Bind("-", func() {
		if c.mode == ModeNone {
			c.cloud.AdjustPointSize(-c.cfg.Cuboid.PointSizeStep)
			c.renderer.Render()
		}
	})
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode { return c.mode }

// Target returns the current edit target, if any.
func (c *Controller) Target() *annotation.Cuboid { return c.target }

// Plots exposes the set manager.
func (c *Controller) Plots() *SetManager { return c.plots }

// OnEvent subscribes the host to controller events.
func (c *Controller) OnEvent(fn func(Event)) (cancel func()) { return c.events.Subscribe(fn) }

// KeyDown feeds one key press into the controller's key table.
func (c *Controller) KeyDown(k event.Key) { c.keys.Dispatch(k) }

// teardown is the uniform mode exit: gestures destroyed, pending
// update flushed, orbit re-enabled. It always leaves the controller in
// ModeNone; the target is preserved so Space/Delete keep working while
// idle.
func (c *Controller) teardown() {
	if c.edit != nil {
		c.flushPending()
		c.edit.destroy()
		c.edit = nil
	}
	if c.create != nil {
		c.create.destroy()
		c.create = nil
	}
	c.camera.SetEnabled(true)
	c.mode = ModeNone
}

func (c *Controller) flushPending() {
	if !c.pendingUpdate || c.target == nil {
		c.pendingUpdate = false
		return
	}
	c.pendingUpdate = false
	c.emit(Event{Kind: event.Update, Records: []*annotation.Cuboid{c.target}})
}

// SetMode switches the top-level mode. Entering ModeEdit requires a
// target previously established via Edit or selection.
func (c *Controller) SetMode(m Mode) error {
	switch m {
	case ModeNone:
		c.teardown()
		return nil
	case ModeCreate:
		c.teardown()
		c.create = startCreate(c)
		c.mode = ModeCreate
		c.emit(Event{Kind: event.Hint, Hint: "drag a ground rectangle to create a box"})
		return nil
	case ModeEdit:
		return c.Edit(c.target)
	}
	return nil
}

// Edit makes rec the edit target and enters ModeEdit. The teardown of
// the previous mode runs before the preconditions are checked, so even
// a failing call leaves no gesture behind.
func (c *Controller) Edit(rec *annotation.Cuboid) error {
	c.teardown()
	if rec == nil {
		return ErrNoTarget
	}
	if !c.set.Contains(rec.RecordID()) {
		return ErrUnknownTarget
	}
	c.target = rec
	c.edit = newEditGesture(c, rec,
		func() { c.camera.SetEnabled(false) },
		func() { c.pendingUpdate = true },
		func() {
			c.flushPending()
			c.camera.SetEnabled(true)
		},
	)
	c.mode = ModeEdit
	return nil
}

// PointerDown starts a gesture or arms the click/camera-drag decision.
func (c *Controller) PointerDown(p Pointer) {
	c.downScreen = p.Screen
	c.lastScreen = p.Screen
	c.pointerHeld = true
	c.orbited = false

	switch {
	case c.create != nil:
		c.create.pointerDown(p)
	case c.edit != nil:
		c.edit.pointerDown(c.camera.Unproject(p.Screen))
	}
}

// PointerMove drives the active gesture, or orbits the camera while a
// button is held and nothing else claims the pointer.
func (c *Controller) PointerMove(p Pointer) {
	if c.create != nil {
		c.create.pointerMove(p)
		return
	}
	if c.edit != nil && c.edit.dragging {
		c.edit.pointerMove(c.camera.Unproject(p.Screen))
		c.lastScreen = p.Screen
		return
	}
	if c.pointerHeld && c.camera.Enabled() {
		dx := p.Screen.X - c.lastScreen.X
		dy := p.Screen.Y - c.lastScreen.Y
		if dx != 0 || dy != 0 {
			c.camera.Rotate(-dx*orbitSpeed, dy*orbitSpeed)
			c.orbited = true
			c.renderer.Render()
		}
	}
	c.lastScreen = p.Screen
}

// PointerUp finishes the active gesture, or — when the press was a
// click rather than a camera drag — resolves a selection ray cast.
func (c *Controller) PointerUp(p Pointer) {
	held := c.pointerHeld
	c.pointerHeld = false

	if c.create != nil {
		c.create.pointerUp(p)
		return
	}
	if c.edit != nil && c.edit.dragging {
		moved := c.edit.moved
		c.edit.pointerUp()
		if moved {
			return
		}
		// a motionless press on the box is a click, not an edit drag
	}
	if !held {
		return
	}
	if c.orbited || p.Screen.DistSq(c.downScreen) > c.cfg.Interaction.DragThresholdPx*c.cfg.Interaction.DragThresholdPx {
		return // tail of a camera drag
	}
	c.selectAt(p.Screen)
}

func (c *Controller) selectAt(screen geom.Pt) {
	ray := c.camera.Unproject(screen)
	rec, ok := c.plots.PickRay(ray)
	if !ok {
		if c.mode == ModeEdit {
			c.teardown()
			c.target = nil
			c.emit(Event{Kind: event.Selection})
		}
		return
	}
	if rec == c.target && c.mode == ModeEdit {
		// second click on the selected target cycles its handle style
		if p, ok := c.plots.PlotFor(rec.RecordID()); ok {
			p.ToggleStyle()
			c.renderer.Render()
		}
		return
	}
	if err := c.Edit(rec); err != nil {
		c.log.Error("selection could not enter edit mode", slog.Any("err", err))
		return
	}
	c.emit(Event{Kind: event.Selection, Records: []*annotation.Cuboid{rec}})
}

// abortCreate discards a degenerate gesture result and returns to idle.
func (c *Controller) abortCreate(footprint geom.Pt) {
	c.create = nil
	c.mode = ModeNone
	c.log.Debug("discarding degenerate box footprint",
		slog.Float64("length", footprint.X), slog.Float64("width", footprint.Y))
	c.emit(Event{Kind: event.Hint, Hint: "drag a larger rectangle to create a box"})
}

// finishCreate commits the gesture result and returns to idle.
func (c *Controller) finishCreate(box cloud.Box) {
	c.create = nil
	c.mode = ModeNone
	rec := annotation.NewCuboid(box.Center, box.Size, box.Heading, c.nextColor())
	c.set.Add(rec)
	c.log.Info("cuboid created",
		slog.String("id", rec.RecordID()),
		slog.Float64("length", box.Size.X),
		slog.Float64("width", box.Size.Y),
		slog.Float64("height", box.Size.Z))
	c.emit(Event{Kind: event.Create, Records: []*annotation.Cuboid{rec}})
}

func (c *Controller) emit(e Event) { c.events.Emit(e) }

// Close tears down the controller, releasing key bindings and plots.
// Idempotent.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.teardown()
	c.target = nil
	c.keys.Close()
	c.plots.Close()
}
