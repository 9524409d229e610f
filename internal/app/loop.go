/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
// Package app wires the drag session, drop zones, ingestors and canvas engine into a
// single loop. The Loop is the only owner of that state; hosts feed it events from one
// goroutine and call Frame once per animation frame.
package app

import (
	"log/slog"

	"spatialcanvas/internal/canvas"
	"spatialcanvas/internal/config"
	"spatialcanvas/internal/domain"
	"spatialcanvas/internal/dragdrop"
	"spatialcanvas/internal/ingest"
	"spatialcanvas/internal/keymap"
	"spatialcanvas/internal/log"
	"spatialcanvas/internal/vector"
	"spatialcanvas/internal/viewport"
)

// Zone ids registered by the loop.
const (
	ZoneCanvas = "canvas"
	ZoneGlobe  = "globe"
)

// Options configures a Loop.
type Options struct {
	Config  config.AppConfig
	Window  vector.Size
	Surface canvas.Surface
	Mirror  canvas.ClipboardMirror
	// OnGlobeDrop receives items released over the globe target.
	OnGlobeDrop func(item dragdrop.DragItem)
	Logger      *slog.Logger
}

// moveEpsilon is the canvas distance below which a widget drag counts as no move.
const moveEpsilon = 1e-6

type gesture int

const (
	gestureNone gesture = iota
	gestureMove
	gestureMarquee
)

// Loop owns one canvas session.
type Loop struct {
	log     *slog.Logger
	cfg     config.AppConfig
	manager *dragdrop.Manager
	engine  *canvas.Engine
	files   *ingest.FileIngestor
	urls    *ingest.URLIngestor

	canvasBounds vector.Rect
	globeBounds  vector.Rect
	onGlobe      func(dragdrop.DragItem)

	pendingOver *ingest.Event
	pendingPtr  *vector.Pt

	gesture     gesture
	gestureFrom vector.Pt
	origins     map[string]vector.Pt
}

// New builds a loop and mounts the canvas in opts.Window. A keymap error from the
// config is logged and the valid bindings are kept.
func New(opts Options, initial ...domain.Widget) *Loop {
	l := log.OrNop(opts.Logger)
	copts, err := canvas.OptionsFromConfig(opts.Config)
	if err != nil {
		l.Warn("keymap has invalid entries", slog.Any("err", err))
	}
	copts.Surface = opts.Surface
	copts.Mirror = opts.Mirror
	copts.Logger = l.With(slog.String("component", "canvas"))

	lp := &Loop{
		log:     l.With(slog.String("component", "app")),
		cfg:     opts.Config,
		manager: dragdrop.NewManager(l.With(slog.String("component", "dragdrop"))),
		engine:  canvas.New(copts, initial...),
		onGlobe: opts.OnGlobeDrop,
	}
	il := l.With(slog.String("component", "ingest"))
	lp.files = ingest.NewFileIngestor(lp.manager, ingest.FileOptions{
		PlaceholderName: opts.Config.DragDrop.PlaceholderName,
		DefaultZone:     ZoneCanvas,
	}, il)
	lp.urls = ingest.NewURLIngestor(lp.manager, il)

	lp.manager.Register(dragdrop.Zone{
		ID:       ZoneCanvas,
		Priority: 0,
		Shape:    dragdrop.RectShape{BoundsFn: func() vector.Rect { return lp.canvasBounds }},
		OnDrop: func(item dragdrop.DragItem, local vector.Pt) {
			lp.engine.HandleExternalDrop(item, local.Add(lp.canvasBounds.Min()))
		},
	})
	lp.manager.Register(dragdrop.Zone{
		ID:       ZoneGlobe,
		Priority: 1,
		Shape:    dragdrop.CircleShape{BoundsFn: func() vector.Rect { return lp.globeBounds }, Inset: opts.Config.DragDrop.GlobeInset},
		OnDrop: func(item dragdrop.DragItem, _ vector.Pt) {
			lp.log.Info("globe drop", slog.String("kind", string(item.Kind)), slog.String("name", item.Name))
			if lp.onGlobe != nil {
				lp.onGlobe(item)
			}
		},
	})

	lp.Resize(opts.Window)
	return lp
}

// Engine exposes the canvas engine.
func (lp *Loop) Engine() *canvas.Engine { return lp.engine }

// Manager exposes the drag session manager.
func (lp *Loop) Manager() *dragdrop.Manager { return lp.manager }

// Resize updates the window size; the canvas drop zone covers the whole window.
func (lp *Loop) Resize(win vector.Size) {
	lp.canvasBounds = vector.Rect{W: win.W, H: win.H}
	lp.engine.Resize(win)
}

// SetGlobeBounds places the circular drop target. Zero bounds disable it.
func (lp *Loop) SetGlobeBounds(r vector.Rect) { lp.globeBounds = r }

// DragEvent routes an OS drag event to the ingestors. Over events are coalesced and
// delivered on the next Frame; every other event first flushes a pending over.
func (lp *Loop) DragEvent(ev ingest.Event) bool {
	if ev.Type == ingest.Over {
		if lp.files.Active() || lp.urls.Active() {
			e := ev
			lp.pendingOver = &e
			return true
		}
		// a url drag only becomes a session on its first over
		return lp.urls.Handle(ev)
	}
	lp.flushOver()
	if lp.files.Handle(ev) {
		return true
	}
	return lp.urls.Handle(ev)
}

func (lp *Loop) flushOver() {
	if lp.pendingOver == nil {
		return
	}
	ev := *lp.pendingOver
	lp.pendingOver = nil
	if !lp.files.Handle(ev) {
		lp.urls.Handle(ev)
	}
}

// PointerDown starts a gesture: dragging the widget under the pointer (and the rest of
// the selection with it) or a marquee on empty canvas.
func (lp *Loop) PointerDown(pt vector.Pt) {
	lp.flushPointer()
	e := lp.engine
	id, hit := e.HitTest(pt)
	if !hit {
		lp.gesture = gestureMarquee
		lp.gestureFrom = pt
		e.MarqueeSelect(pt, pt)
		return
	}
	if !e.IsSelected(id) {
		e.SelectOnly(id)
	}
	lp.gesture = gestureMove
	lp.gestureFrom = e.ScreenToCanvas(pt)
	lp.origins = map[string]vector.Pt{}
	for _, sid := range e.Selection() {
		if w, ok := e.Widget(sid); ok {
			lp.origins[sid] = w.Position
		}
	}
}

// PointerMove is coalesced to one update per frame.
func (lp *Loop) PointerMove(pt vector.Pt) {
	p := pt
	lp.pendingPtr = &p
}

func (lp *Loop) flushPointer() {
	if lp.pendingPtr == nil {
		return
	}
	pt := *lp.pendingPtr
	lp.pendingPtr = nil
	lp.applyPointer(pt, true)
}

func (lp *Loop) applyPointer(pt vector.Pt, dragging bool) {
	if lp.manager.Dragging() {
		lp.manager.PointerMove(pt)
		return
	}
	switch lp.gesture {
	case gestureMarquee:
		lp.engine.MarqueeSelect(lp.gestureFrom, pt)
	case gestureMove:
		delta := lp.engine.ScreenToCanvas(pt).Sub(lp.gestureFrom)
		// Round-off from the inverse transform must not turn a click into a move.
		if delta.Near(vector.Pt{}, moveEpsilon) {
			delta = vector.Pt{}
		}
		changes := make([]canvas.PositionChange, 0, len(lp.origins))
		for _, id := range lp.engine.Selection() {
			if o, ok := lp.origins[id]; ok {
				changes = append(changes, canvas.PositionChange{ID: id, Position: o.Add(delta), Dragging: dragging})
			}
		}
		lp.engine.MoveWidgets(changes...)
	}
}

// PointerUp finishes the active gesture or releases an in-flight drag session.
func (lp *Loop) PointerUp(pt vector.Pt) {
	lp.pendingPtr = nil
	if lp.manager.Dragging() {
		lp.manager.PointerUp(pt)
		return
	}
	if lp.gesture != gestureNone {
		lp.applyPointer(pt, false)
	}
	lp.gesture = gestureNone
	lp.origins = nil
	lp.engine.Frame()
}

// Frame delivers coalesced input and applies queued widget moves.
func (lp *Loop) Frame() bool {
	lp.flushOver()
	lp.flushPointer()
	return lp.engine.Frame()
}

// Key forwards a key press to the engine.
func (lp *Loop) Key(ev keymap.KeyEvent) (keymap.Action, bool) { return lp.engine.HandleKey(ev) }

// Wheel forwards a wheel gesture to the engine.
func (lp *Loop) Wheel(ev viewport.WheelEvent) { lp.engine.Wheel(ev) }
