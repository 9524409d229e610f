/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package canvas

import (
	"math"
	"testing"

	"spatialcanvas/internal/vector"
	"spatialcanvas/internal/viewport"
)

func TestMountCentresInitialWidgets(t *testing.T) {
	e := New(Options{DefaultSize: vector.Size{W: 100, H: 100}}, text("a", 0, 0), text("b", 300, 100))
	e.Mount(vector.Size{W: 800, H: 600})
	// bounds (0,0)-(400,200), centre (200,100)
	got := e.Viewport().ToScreen(vector.Pt{X: 200, Y: 100})
	if !got.Near(vector.Pt{X: 400, Y: 300}, 1e-9) {
		t.Fatalf("content centre maps to %+v", got)
	}
	if e.Viewport().Zoom != 1 {
		t.Fatalf("zoom = %v, want initial 1", e.Viewport().Zoom)
	}
}

func TestResizeKeepsCentreAnchored(t *testing.T) {
	e := New(Options{}, text("a", 37, -12))
	e.Mount(vector.Size{W: 1024, H: 768})
	e.Pan(-133, 41)
	e.ZoomIn()
	before := e.ScreenToCanvas(vector.Pt{X: 512, Y: 384})
	e.Resize(vector.Size{W: 640, H: 900})
	after := e.ScreenToCanvas(vector.Pt{X: 320, Y: 450})
	if !before.Near(after, 1e-9) {
		t.Fatalf("centre moved from %+v to %+v", before, after)
	}
	e.Resize(vector.Size{})
	if e.Window() != (vector.Size{W: 640, H: 900}) {
		t.Fatalf("degenerate resize must be ignored")
	}
}

func TestResizeBeforeMountMounts(t *testing.T) {
	e := New(Options{})
	e.Resize(vector.Size{W: 200, H: 100})
	if got := e.Viewport().ToScreen(vector.Pt{}); got != (vector.Pt{X: 100, Y: 50}) {
		t.Fatalf("empty canvas origin at %+v, want window centre", got)
	}
}

func TestZoomClamped(t *testing.T) {
	e := New(Options{Limits: viewport.Limits{MinZoom: 0.5, MaxZoom: 2}, ZoomStep: 2})
	e.Mount(vector.Size{W: 400, H: 400})
	centre := e.ScreenToCanvas(vector.Pt{X: 200, Y: 200})
	for i := 0; i < 5; i++ {
		e.ZoomIn()
	}
	if e.Viewport().Zoom != 2 {
		t.Fatalf("zoom = %v, want max 2", e.Viewport().Zoom)
	}
	if got := e.ScreenToCanvas(vector.Pt{X: 200, Y: 200}); !got.Near(centre, 1e-9) {
		t.Fatalf("zoom must keep the window centre fixed: %+v vs %+v", got, centre)
	}
	for i := 0; i < 5; i++ {
		e.ZoomOut()
	}
	if e.Viewport().Zoom != 0.5 {
		t.Fatalf("zoom = %v, want min 0.5", e.Viewport().Zoom)
	}
	e.SetViewport(viewport.Viewport{Zoom: 100})
	if e.Viewport().Zoom != 2 {
		t.Fatalf("SetViewport must clamp, got %v", e.Viewport().Zoom)
	}
}

func TestWheelPansOrZooms(t *testing.T) {
	e := New(Options{WheelSpeed: 0.01})
	e.Mount(vector.Size{W: 400, H: 400})
	vp := e.Viewport()
	e.Wheel(viewport.WheelEvent{DeltaX: 10, DeltaY: 20})
	if got := e.Viewport(); got.X != vp.X-10 || got.Y != vp.Y-20 || got.Zoom != vp.Zoom {
		t.Fatalf("plain wheel should pan: %+v -> %+v", vp, got)
	}
	ptr := vector.Pt{X: 50, Y: 70}
	anchor := e.ScreenToCanvas(ptr)
	e.Wheel(viewport.WheelEvent{DeltaY: -100, Position: ptr, Precision: true})
	if z := e.Viewport().Zoom; math.Abs(z-math.E) > 1e-9 {
		t.Fatalf("precision wheel zoom = %v, want e", z)
	}
	if got := e.ScreenToCanvas(ptr); !got.Near(anchor, 1e-9) {
		t.Fatalf("zoom must keep the pointer anchored: %+v vs %+v", got, anchor)
	}
}
