/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
// Package canvas is the spatial canvas engine: it owns the widget collection, the
// selection, the undo history, the clipboard and the viewport, and turns completed
// drops into widgets. The engine is driven from a single goroutine (the app loop).
package canvas

import (
	"errors"
	"fmt"
	"log/slog"

	"spatialcanvas/internal/config"
	"spatialcanvas/internal/domain"
	"spatialcanvas/internal/keymap"
	"spatialcanvas/internal/log"
	"spatialcanvas/internal/undo"
	"spatialcanvas/internal/vector"
	"spatialcanvas/internal/viewport"
)

var ErrUnknownKind = errors.New("unknown widget kind")

// Surface is the external rendering collaborator. It receives the full widget list
// (selection flags set) and the viewport after every transition.
type Surface interface {
	Render(widgets []domain.Widget, vp viewport.Viewport)
}

// ClipboardMirror receives every copy, typically to place it on the OS clipboard.
type ClipboardMirror interface {
	WriteWidgets(ws []domain.Widget) error
}

// Options configures an Engine. Zero values fall back to the config defaults.
type Options struct {
	HistoryLimit int
	PasteOffset  vector.Pt
	DefaultSize  vector.Size
	Limits       viewport.Limits
	InitialZoom  float64
	ZoomStep     float64
	WheelSpeed   float64
	Keymap       *keymap.Keymap
	Surface      Surface
	Mirror       ClipboardMirror
	Logger       *slog.Logger
}

// OptionsFromConfig maps the canvas section of cfg onto Options. A keymap that fails
// to parse keeps its valid bindings; the error is returned for reporting.
func OptionsFromConfig(cfg config.AppConfig) (Options, error) {
	c := cfg.Canvas
	km, err := keymap.New(cfg.Keymap)
	return Options{
		HistoryLimit: c.HistoryLimit,
		PasteOffset:  vector.Pt{X: c.PasteOffset.X, Y: c.PasteOffset.Y},
		DefaultSize:  vector.Size{W: c.DefaultWidgetSize.X, H: c.DefaultWidgetSize.Y},
		Limits:       viewport.Limits{MinZoom: c.MinZoom, MaxZoom: c.MaxZoom},
		InitialZoom:  c.InitialZoom,
		ZoomStep:     c.ZoomStep,
		WheelSpeed:   c.WheelZoomSpeed,
		Keymap:       km,
	}, err
}

func (o *Options) fill() {
	def := config.Defaults().Canvas
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = def.HistoryLimit
	}
	if o.PasteOffset == (vector.Pt{}) {
		o.PasteOffset = vector.Pt{X: def.PasteOffset.X, Y: def.PasteOffset.Y}
	}
	if o.DefaultSize.IsZero() {
		o.DefaultSize = vector.Size{W: def.DefaultWidgetSize.X, H: def.DefaultWidgetSize.Y}
	}
	if o.Limits.MinZoom <= 0 {
		o.Limits.MinZoom = def.MinZoom
	}
	if o.Limits.MaxZoom < o.Limits.MinZoom {
		o.Limits.MaxZoom = def.MaxZoom
	}
	if o.InitialZoom <= 0 {
		o.InitialZoom = def.InitialZoom
	}
	if o.ZoomStep <= 1 {
		o.ZoomStep = def.ZoomStep
	}
	if o.WheelSpeed <= 0 {
		o.WheelSpeed = def.WheelZoomSpeed
	}
	if o.Keymap == nil {
		o.Keymap = keymap.Default()
	}
}

// Engine holds all canvas state.
type Engine struct {
	opts Options
	log  *slog.Logger

	widgets  *domain.Collection
	selected map[string]bool
	history  *undo.History

	clipboard []domain.Widget

	vp     viewport.Viewport
	window vector.Size

	pending   []PositionChange
	dragDirty bool
	textFocus bool
}

// New creates an engine whose first history entry holds initial.
func New(opts Options, initial ...domain.Widget) *Engine {
	opts.fill()
	ws := make([]domain.Widget, 0, len(initial))
	for _, w := range initial {
		ws = append(ws, normalize(w))
	}
	c := domain.NewCollection(ws...)
	e := &Engine{
		opts:     opts,
		log:      log.OrNop(opts.Logger),
		widgets:  c,
		selected: map[string]bool{},
		history:  undo.NewHistory(undo.Config{Limit: opts.HistoryLimit}, c),
		vp:       viewport.Viewport{Zoom: opts.InitialZoom},
	}
	return e
}

func normalize(w domain.Widget) domain.Widget {
	if w.ID == "" {
		w.ID = domain.NewID()
	}
	if w.Payload == nil {
		w.Payload = domain.TextPayload{}
	}
	return w.WithSelected(false)
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// Len is the number of widgets.
func (e *Engine) Len() int { return e.widgets.Len() }

// Widgets returns every widget in insertion order with selection flags set.
func (e *Engine) Widgets() []domain.Widget {
	ws := e.widgets.All()
	for i := range ws {
		ws[i].Selected = e.selected[ws[i].ID]
	}
	return ws
}

// Widget returns one widget by id.
func (e *Engine) Widget(id string) (domain.Widget, bool) {
	w, ok := e.widgets.Get(id)
	if !ok {
		return domain.Widget{}, false
	}
	return w.WithSelected(e.selected[id]), true
}

// History exposes the snapshot history for diagnostics.
func (e *Engine) History() *undo.History { return e.history }

func (e *Engine) record(label string) {
	e.history.Record(label, e.widgets)
	entries, idx := e.history.Stats()
	e.log.Debug("history record", slog.String("label", label), slog.Int("entries", entries), slog.Int("index", idx))
}

func (e *Engine) render() {
	if e.opts.Surface != nil {
		e.opts.Surface.Render(e.Widgets(), e.vp)
	}
}

// AddWidget appends w (a fresh id is assigned when empty) and records a snapshot.
// It returns the stored id.
func (e *Engine) AddWidget(w domain.Widget) string {
	w = normalize(w)
	if e.widgets.Has(w.ID) {
		w.ID = domain.NewID()
	}
	e.widgets.Put(w)
	e.record("add " + string(w.Kind()))
	e.render()
	return w.ID
}

// AddFromCatalog places a default widget of kind k at a screen position.
func (e *Engine) AddFromCatalog(k domain.Kind, screenPos vector.Pt) (string, error) {
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, k)
	}
	return e.AddWidget(domain.New(domain.DefaultPayload(k), e.vp.ToCanvas(screenPos))), nil
}

// UpdateWidget replaces widget id with fn's result and records a snapshot. The id and
// selection of the widget are kept regardless of what fn returns.
func (e *Engine) UpdateWidget(id string, fn func(domain.Widget) domain.Widget) bool {
	w, ok := e.widgets.Get(id)
	if !ok {
		return false
	}
	nw := fn(w.Clone())
	nw.ID = id
	nw = normalize(nw)
	e.widgets.Put(nw)
	e.record("edit")
	e.render()
	return true
}

// DeleteSelected removes the selected widgets and records a snapshot.
func (e *Engine) DeleteSelected() int {
	if len(e.selected) == 0 {
		return 0
	}
	n := 0
	for _, id := range e.widgets.IDs() {
		if e.selected[id] && e.widgets.Remove(id) {
			n++
		}
	}
	e.selected = map[string]bool{}
	if n > 0 {
		e.record("delete")
	}
	e.render()
	return n
}

// Undo restores the previous snapshot. Selection and clipboard are kept; selected ids
// that no longer exist are dropped.
func (e *Engine) Undo() bool {
	c, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(c)
	return true
}

// Redo re-applies the next snapshot.
func (e *Engine) Redo() bool {
	c, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(c)
	return true
}

func (e *Engine) restore(c *domain.Collection) {
	e.pending = nil
	e.dragDirty = false
	e.widgets = c
	for id := range e.selected {
		if !c.Has(id) {
			delete(e.selected, id)
		}
	}
	e.render()
}
