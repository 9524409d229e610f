/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package viewport holds the canvas<->screen transform: a pan offset plus a uniform zoom.
//
//	screen = canvas*Zoom + (X, Y)
//
// All operations are pure and return a new Viewport.
package viewport

import (
	"math"

	"spatialcanvas/internal/vector"
)

// Viewport is the pan/zoom state of the canvas.
type Viewport struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Zoom float64 `json:"zoom" yaml:"zoom"`
}

// Limits bounds the zoom factor.
type Limits struct {
	MinZoom float64
	MaxZoom float64
}

// Clamp bounds z to the limits. Unset limits leave that side open.
func (l Limits) Clamp(z float64) float64 {
	if l.MinZoom > 0 && z < l.MinZoom {
		z = l.MinZoom
	}
	if l.MaxZoom > 0 && z > l.MaxZoom {
		z = l.MaxZoom
	}
	return z
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// Transform returns the canvas->screen affine matrix.
func (v Viewport) Transform() vector.Affine2D {
	z := v.zoom()
	return vector.Translate(v.X, v.Y).Mul(vector.Scale(z, z))
}

// inverse is the screen->canvas matrix. zoom() is always positive, so the transform
// is never singular.
func (v Viewport) inverse() vector.Affine2D {
	inv, _ := v.Transform().Invert()
	return inv
}

// ToCanvas maps a screen point into canvas space through the inverse transform.
func (v Viewport) ToCanvas(p vector.Pt) vector.Pt { return v.inverse().Apply(p) }

// ToScreen maps a canvas point into screen space.
func (v Viewport) ToScreen(p vector.Pt) vector.Pt { return v.Transform().Apply(p) }

// ToCanvasRect maps a screen rectangle spanned by two corners into canvas space.
func (v Viewport) ToCanvasRect(a, b vector.Pt) vector.Rect {
	inv := v.inverse()
	return vector.RectFromPoints(inv.Apply(a), inv.Apply(b))
}

// Mount centres content in a window of the given size at zoom.
// Without content the canvas origin is placed at the window centre.
func Mount(content vector.Rect, hasContent bool, window vector.Size, zoom float64) Viewport {
	if zoom <= 0 {
		zoom = 1
	}
	c := vector.Pt{}
	if hasContent {
		c = content.Center()
	}
	return Viewport{
		X:    window.W/2 - c.X*zoom,
		Y:    window.H/2 - c.Y*zoom,
		Zoom: zoom,
	}
}

// Resize keeps the canvas point that sat at the old window centre at the new window centre.
func (v Viewport) Resize(oldWin, newWin vector.Size) Viewport {
	anchor := v.ToCanvas(vector.Pt{X: oldWin.W / 2, Y: oldWin.H / 2})
	z := v.zoom()
	return Viewport{
		X:    newWin.W/2 - anchor.X*z,
		Y:    newWin.H/2 - anchor.Y*z,
		Zoom: z,
	}
}

// ZoomAt sets the zoom to target (clamped), keeping the canvas point under screenPt fixed.
func (v Viewport) ZoomAt(screenPt vector.Pt, target float64, lim Limits) Viewport {
	anchor := v.ToCanvas(screenPt)
	z := lim.Clamp(target)
	if z <= 0 {
		z = v.zoom()
	}
	return Viewport{
		X:    screenPt.X - anchor.X*z,
		Y:    screenPt.Y - anchor.Y*z,
		Zoom: z,
	}
}

// Pan shifts the viewport by a screen-space delta.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.X += dx
	v.Y += dy
	return v
}

// WheelEvent is a scroll gesture over the canvas. Precision is set while the
// precision-zoom modifier (ctrl/cmd, or a trackpad pinch) is held.
type WheelEvent struct {
	DeltaX    float64   `json:"dx" yaml:"dx"`
	DeltaY    float64   `json:"dy" yaml:"dy"`
	Position  vector.Pt `json:"-" yaml:"-"`
	Precision bool      `json:"precision" yaml:"precision"`
}

// Wheel pans by the scroll delta, or zooms about the pointer when Precision is set.
// speed scales DeltaY into an exponential zoom factor.
func (v Viewport) Wheel(ev WheelEvent, lim Limits, speed float64) Viewport {
	if !ev.Precision {
		return v.Pan(-ev.DeltaX, -ev.DeltaY)
	}
	if speed <= 0 {
		speed = 0.002
	}
	factor := math.Exp(-ev.DeltaY * speed)
	return v.ZoomAt(ev.Position, v.zoom()*factor, lim)
}
