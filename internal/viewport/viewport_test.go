/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package viewport

import (
	"testing"

	"spatialcanvas/internal/vector"
)

const eps = 1e-9

var testLimits = Limits{MinZoom: 0.1, MaxZoom: 4}

func TestConversionsFollowTransform(t *testing.T) {
	v := Viewport{X: 100, Y: 50, Zoom: 2}
	if got := v.ToCanvas(vector.Pt{X: 400, Y: 300}); !got.Near(vector.Pt{X: 150, Y: 125}, eps) {
		t.Fatalf("ToCanvas = %+v", got)
	}
	if got := v.ToScreen(vector.Pt{X: 150, Y: 125}); !got.Near(vector.Pt{X: 400, Y: 300}, eps) {
		t.Fatalf("ToScreen = %+v", got)
	}
	r := v.ToCanvasRect(vector.Pt{X: 300, Y: 250}, vector.Pt{X: 100, Y: 50})
	if r != vector.R(0, 0, 100, 100) {
		t.Fatalf("ToCanvasRect = %+v", r)
	}
	if got := (Viewport{}).ToCanvas(vector.Pt{X: 3, Y: 4}); got != (vector.Pt{X: 3, Y: 4}) {
		t.Fatalf("zero viewport must act as identity, got %+v", got)
	}
}

func TestToCanvasInvertsToScreen(t *testing.T) {
	v := Viewport{X: 120, Y: -40, Zoom: 1.75}
	p := vector.Pt{X: 400, Y: 300}
	if got := v.ToScreen(v.ToCanvas(p)); !got.Near(p, eps) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	inv, ok := v.Transform().Invert()
	if !ok {
		t.Fatalf("transform should be invertible")
	}
	if got := inv.Apply(p); !got.Near(v.ToCanvas(p), eps) {
		t.Fatalf("matrix inverse disagrees with ToCanvas: %+v", got)
	}
}

func TestMountCentresContent(t *testing.T) {
	win := vector.Size{W: 1000, H: 800}
	content := vector.R(100, 100, 200, 100)
	v := Mount(content, true, win, 1)
	if got := v.ToScreen(content.Center()); !got.Near(vector.Pt{X: 500, Y: 400}, eps) {
		t.Fatalf("content centre not at window centre: %+v", got)
	}
	empty := Mount(vector.Rect{}, false, win, 2)
	if got := empty.ToScreen(vector.Pt{}); !got.Near(vector.Pt{X: 500, Y: 400}, eps) {
		t.Fatalf("origin not centred for empty canvas: %+v", got)
	}
}

func TestResizeKeepsCentreAnchored(t *testing.T) {
	cases := []struct {
		name     string
		v        Viewport
		from, to vector.Size
	}{
		{"grow", Viewport{X: 13, Y: 27, Zoom: 1}, vector.Size{W: 800, H: 600}, vector.Size{W: 1280, H: 720}},
		{"shrink zoomed", Viewport{X: -250, Y: 90, Zoom: 2.5}, vector.Size{W: 1920, H: 1080}, vector.Size{W: 640, H: 480}},
		{"zoomed out", Viewport{X: 400, Y: 300, Zoom: 0.2}, vector.Size{W: 1024, H: 768}, vector.Size{W: 1025, H: 769}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.v.ToCanvas(vector.Pt{X: tc.from.W / 2, Y: tc.from.H / 2})
			nv := tc.v.Resize(tc.from, tc.to)
			after := nv.ToCanvas(vector.Pt{X: tc.to.W / 2, Y: tc.to.H / 2})
			if !after.Near(before, 1e-6) {
				t.Fatalf("centre drifted: before=%+v after=%+v", before, after)
			}
			if nv.Zoom != tc.v.Zoom {
				t.Fatalf("resize changed zoom")
			}
		})
	}
}

func TestZoomAtClampsAndAnchors(t *testing.T) {
	v := Viewport{X: 10, Y: 20, Zoom: 1}
	p := vector.Pt{X: 300, Y: 200}
	anchor := v.ToCanvas(p)
	z := v.ZoomAt(p, 100, testLimits)
	if z.Zoom != testLimits.MaxZoom {
		t.Fatalf("zoom not clamped to max: %v", z.Zoom)
	}
	if got := z.ToCanvas(p); !got.Near(anchor, 1e-9) {
		t.Fatalf("anchor moved under pointer: %+v vs %+v", got, anchor)
	}
	if got := v.ZoomAt(p, 0.0001, testLimits).Zoom; got != testLimits.MinZoom {
		t.Fatalf("zoom not clamped to min: %v", got)
	}
}

func TestWheelPansWithoutModifier(t *testing.T) {
	v := Viewport{Zoom: 1}
	got := v.Wheel(WheelEvent{DeltaX: 5, DeltaY: -10}, testLimits, 0)
	if got.X != -5 || got.Y != 10 || got.Zoom != 1 {
		t.Fatalf("unexpected pan: %+v", got)
	}
}

func TestWheelZoomsWithPrecisionModifier(t *testing.T) {
	v := Viewport{Zoom: 1}
	in := v.Wheel(WheelEvent{DeltaY: -100, Precision: true, Position: vector.Pt{X: 50, Y: 50}}, testLimits, 0.002)
	if in.Zoom <= 1 {
		t.Fatalf("scrolling up with modifier should zoom in, got %v", in.Zoom)
	}
	out := v.Wheel(WheelEvent{DeltaY: 100, Precision: true}, testLimits, 0.002)
	if out.Zoom >= 1 {
		t.Fatalf("scrolling down with modifier should zoom out, got %v", out.Zoom)
	}
}
