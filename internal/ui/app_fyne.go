//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image/color"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"golabel/internal/annotation"
	"golabel/internal/config"
	"golabel/internal/event"
	"golabel/internal/geom"
	applog "golabel/internal/log"
	"golabel/internal/polygon"
	"golabel/internal/version"
)

var (
	strokeColor  = color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
	nodeColor    = color.NRGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	midNodeColor = color.NRGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0x90}
)

const (
	nodeRadius    = float32(5)
	midNodeRadius = float32(3.5)
)

// Run starts the desktop annotation window. Pass an optional image path
// to load as the annotation backdrop.
func Run(imagePath string) error {
	cfg, err := config.Load()
	if err != nil {
		applog.WithComponent("ui").Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	a := app.NewWithID("io.golabel.app")
	w := a.NewWindow(fmt.Sprintf("GoLabel %s", version.String()))

	ed := newEditor(cfg, imagePath)
	w.SetContent(ed.root())
	w.Resize(fyne.NewSize(1024, 768))
	w.Canvas().SetOnTypedKey(ed.typedKey)
	w.ShowAndRun()

	ed.ctrl.Close()
	return nil
}

// editor wires the polygon controller to a fyne canvas.
type editor struct {
	cfg      config.AppConfig
	set      *annotation.Set[*annotation.Polygon]
	ctrl     *polygon.Controller
	rend     *fyneRenderer
	surface  *editorSurface
	backdrop *canvas.Image
	status   *widget.Label
	log      *slog.Logger
}

func newEditor(cfg config.AppConfig, imagePath string) *editor {
	e := &editor{
		cfg:    cfg,
		set:    annotation.NewSet[*annotation.Polygon](),
		status: widget.NewLabel("select a shape, or switch to Create"),
		log:    applog.WithComponent("ui"),
	}
	if imagePath != "" {
		e.backdrop = canvas.NewImageFromFile(imagePath)
		e.backdrop.FillMode = canvas.ImageFillStretch
	}
	e.surface = newEditorSurface(e)
	e.rend = &fyneRenderer{ed: e, shapes: make(map[*polygon.Shape]struct{})}
	e.ctrl = polygon.NewController(e.set, e.rend, cfg.Interaction)

	e.ctrl.OnEvent(func(ev polygon.Event) {
		switch ev.Kind {
		case event.Hint:
			if ev.Hint != "" {
				e.status.SetText(ev.Hint)
			}
		case event.Create, event.Update, event.Delete:
			e.status.SetText(fmt.Sprintf("%s (%d annotations)", ev.Kind, e.set.Len()))
		case event.Selection:
			e.status.SetText(fmt.Sprintf("%d selected", len(ev.Records)))
		}
	})
	return e
}

func (e *editor) root() fyne.CanvasObject {
	toolbar := container.NewHBox(
		widget.NewButton("Select", func() {
			e.ctrl.SetMode(polygon.ModeUpdate)
			e.status.SetText("select a shape")
		}),
		widget.NewButton("Create", func() {
			e.ctrl.SetMode(polygon.ModeCreate)
		}),
		widget.NewButton("Merge", func() {
			if _, err := e.ctrl.Merge(); err != nil {
				e.status.SetText(err.Error())
			}
		}),
		widget.NewButton("Split", func() {
			if _, err := e.ctrl.Split(); err != nil {
				e.status.SetText(err.Error())
			}
		}),
	)
	return container.NewBorder(toolbar, e.status, nil, nil, e.surface)
}

func (e *editor) typedKey(ev *fyne.KeyEvent) {
	if k, ok := keyFor(ev.Name); ok {
		e.ctrl.KeyDown(k)
	}
}

// keyFor maps fyne key names onto the editor key vocabulary.
func keyFor(name fyne.KeyName) (event.Key, bool) {
	switch name {
	case fyne.KeyReturn, fyne.KeyEnter:
		return event.KeyEnter, true
	case fyne.KeyEscape:
		return event.KeyEscape, true
	case fyne.KeyBackspace:
		return event.KeyBackspace, true
	case fyne.KeyDelete:
		return event.KeyDelete, true
	case fyne.KeySpace:
		return event.KeySpace, true
	}
	return "", false
}

func (e *editor) pointerAt(ev *desktop.MouseEvent) polygon.Pointer {
	sz := e.surface.Size()
	p := polygon.Pointer{
		Screen: geom.Pt{X: float64(ev.AbsolutePosition.X), Y: float64(ev.AbsolutePosition.Y)},
	}
	if sz.Width > 0 && sz.Height > 0 {
		p.Pos = geom.Pt{
			X: float64(ev.Position.X / sz.Width),
			Y: float64(ev.Position.Y / sz.Height),
		}.ClampUnit()
	}
	if ev.Button == desktop.MouseButtonSecondary {
		p.Button = event.ButtonSecondary
	}
	// ctrl/shift-click extends the selection, feeding multi-select for Merge
	if ev.Modifier&(fyne.KeyModifierControl|fyne.KeyModifierShift) != 0 {
		p.Additive = true
	}
	return p
}

// redraw rebuilds the scene objects from the attached shapes.
func (e *editor) redraw() {
	sz := e.surface.Size()
	objs := make([]fyne.CanvasObject, 0, 16)
	if e.backdrop != nil {
		e.backdrop.Resize(sz)
		objs = append(objs, e.backdrop)
	}
	if sz.Width > 0 && sz.Height > 0 {
		for s := range e.rend.shapes {
			objs = e.appendShape(objs, s, sz)
		}
	}
	e.surface.content.Objects = objs
	e.surface.content.Refresh()
}

func (e *editor) appendShape(objs []fyne.CanvasObject, s *polygon.Shape, sz fyne.Size) []fyne.CanvasObject {
	denorm := func(p geom.Pt) fyne.Position {
		return fyne.NewPos(float32(p.X)*sz.Width, float32(p.Y)*sz.Height)
	}
	for _, ring := range s.Rings() {
		n := ring.NumVertices()
		for i := 0; i < n; i++ {
			l := canvas.NewLine(strokeColor)
			l.StrokeWidth = 2
			l.Position1 = denorm(ring.Vertex(i))
			l.Position2 = denorm(ring.Vertex((i + 1) % n))
			objs = append(objs, l)
		}
	}
	if s.Decoration() == polygon.DecorationNodes && s.Simple() {
		ring := s.Ring()
		for i := 0; i < ring.NumVertices(); i++ {
			objs = append(objs, handleCircle(denorm(ring.Vertex(i)), nodeRadius, nodeColor))
		}
		for _, m := range s.Midpoints() {
			objs = append(objs, handleCircle(denorm(m), midNodeRadius, midNodeColor))
		}
	}
	return objs
}

func handleCircle(at fyne.Position, r float32, c color.Color) fyne.CanvasObject {
	circle := canvas.NewCircle(c)
	circle.Move(fyne.NewPos(at.X-r, at.Y-r))
	circle.Resize(fyne.NewSize(2*r, 2*r))
	return circle
}

// fyneRenderer adapts the editor redraw to the polygon Renderer
// contract: shapes register themselves, Render rebuilds the canvas.
type fyneRenderer struct {
	ed     *editor
	shapes map[*polygon.Shape]struct{}
}

func (r *fyneRenderer) Attach(s *polygon.Shape) { r.shapes[s] = struct{}{} }
func (r *fyneRenderer) Detach(s *polygon.Shape) { delete(r.shapes, s) }
func (r *fyneRenderer) Render()                 { r.ed.redraw() }

// editorSurface is the interactive drawing area. It forwards desktop
// mouse traffic to the polygon controller in normalized coordinates.
type editorSurface struct {
	widget.BaseWidget
	ed      *editor
	content *fyne.Container
}

func newEditorSurface(ed *editor) *editorSurface {
	s := &editorSurface{ed: ed, content: container.NewWithoutLayout()}
	s.ExtendBaseWidget(s)
	return s
}

func (s *editorSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.content)
}

func (s *editorSurface) Resize(size fyne.Size) {
	s.BaseWidget.Resize(size)
	s.ed.redraw()
}

func (s *editorSurface) MouseDown(ev *desktop.MouseEvent) {
	s.ed.ctrl.PointerDown(s.ed.pointerAt(ev))
}

func (s *editorSurface) MouseUp(ev *desktop.MouseEvent) {
	s.ed.ctrl.PointerUp(s.ed.pointerAt(ev))
}

func (s *editorSurface) MouseIn(*desktop.MouseEvent) {}

func (s *editorSurface) MouseMoved(ev *desktop.MouseEvent) {
	s.ed.ctrl.PointerMove(s.ed.pointerAt(ev))
}

func (s *editorSurface) MouseOut() {}
