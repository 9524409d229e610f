/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package canvas

import (
	"spatialcanvas/internal/vector"
	"spatialcanvas/internal/viewport"
)

// Viewport returns the current pan/zoom.
func (e *Engine) Viewport() viewport.Viewport { return e.vp }

// SetViewport replaces the viewport, clamping the zoom.
func (e *Engine) SetViewport(vp viewport.Viewport) {
	vp.Zoom = e.opts.Limits.Clamp(vp.Zoom)
	e.vp = vp
	e.render()
}

// Window returns the last known window size.
func (e *Engine) Window() vector.Size { return e.window }

// ScreenToCanvas converts a screen point through the current viewport.
func (e *Engine) ScreenToCanvas(p vector.Pt) vector.Pt { return e.vp.ToCanvas(p) }

// Mount centres the widgets' bounding box in a window of the given size at the
// initial zoom.
func (e *Engine) Mount(window vector.Size) {
	b, ok := e.widgets.Bounds(e.opts.DefaultSize)
	e.window = window
	e.vp = viewport.Mount(b, ok, window, e.opts.Limits.Clamp(e.opts.InitialZoom))
	e.render()
}

// Resize keeps the canvas point at the old window centre at the new centre.
func (e *Engine) Resize(window vector.Size) {
	if window.IsZero() {
		e.log.Debug("ignoring degenerate window size")
		return
	}
	if e.window.IsZero() {
		e.Mount(window)
		return
	}
	e.vp = e.vp.Resize(e.window, window)
	e.window = window
	e.render()
}

func (e *Engine) centre() vector.Pt { return vector.Pt{X: e.window.W / 2, Y: e.window.H / 2} }

// ZoomIn zooms one step about the window centre.
func (e *Engine) ZoomIn() { e.zoomTo(e.vp.Zoom * e.opts.ZoomStep) }

// ZoomOut zooms out one step about the window centre.
func (e *Engine) ZoomOut() { e.zoomTo(e.vp.Zoom / e.opts.ZoomStep) }

func (e *Engine) zoomTo(z float64) {
	e.vp = e.vp.ZoomAt(e.centre(), z, e.opts.Limits)
	e.render()
}

// Wheel pans, or zooms about the pointer while the precision modifier is held.
func (e *Engine) Wheel(ev viewport.WheelEvent) {
	e.vp = e.vp.Wheel(ev, e.opts.Limits, e.opts.WheelSpeed)
	e.render()
}

// Pan shifts the viewport by a screen delta.
func (e *Engine) Pan(dx, dy float64) {
	e.vp = e.vp.Pan(dx, dy)
	e.render()
}
