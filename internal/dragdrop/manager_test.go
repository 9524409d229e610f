/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package dragdrop

import (
	"testing"

	"spatialcanvas/internal/vector"
)

func pt(x, y float64) vector.Pt { return vector.Pt{X: x, Y: y} }

func TestStartEndLeavesIdleState(t *testing.T) {
	m := NewManager(nil)
	dropped := 0
	m.OnDrop(func(DragItem, string) { dropped++ })
	m.Start(DragItem{Kind: KindFile, Name: "x"})
	if !m.Dragging() {
		t.Fatalf("expected dragging after Start")
	}
	if m.State().Item.ID == "" {
		t.Fatalf("Start should assign an id")
	}
	m.End()
	m.End()
	s := m.State()
	if s.Dragging || s.Item != nil || s.Zone != "" || s.Over {
		t.Fatalf("End should reset state, got %+v", s)
	}
	if dropped != 0 {
		t.Fatalf("no drop expected")
	}
}

func TestStartOverwritesSession(t *testing.T) {
	m := NewManager(nil)
	m.Start(DragItem{ID: "a"})
	m.SetZone("z")
	m.Start(DragItem{ID: "b"})
	s := m.State()
	if s.Item.ID != "b" || s.Zone != "" {
		t.Fatalf("second Start should win and reset zone: %+v", s)
	}
}

func TestUpdateItemAndPosition(t *testing.T) {
	m := NewManager(nil)
	m.UpdatePosition(pt(1, 1)) // no session: ignored
	m.Start(DragItem{ID: "a", Name: "placeholder"})
	name := "report.pdf"
	m.UpdateItem(ItemPatch{Name: &name, Payload: FilePayload{Size: 1024}})
	m.UpdatePosition(pt(5, 6))
	it := m.State().Item
	if it.Name != "report.pdf" || it.Position != pt(5, 6) {
		t.Fatalf("item not updated: %+v", it)
	}
	if fp, ok := it.Payload.(FilePayload); !ok || fp.Size != 1024 {
		t.Fatalf("payload not updated: %#v", it.Payload)
	}
	it.Name = "mutated copy"
	if m.State().Item.Name != "report.pdf" {
		t.Fatalf("State must return a copy")
	}
}

func TestHandleDropRunsZoneThenCallbacksThenEnds(t *testing.T) {
	m := NewManager(nil)
	var order []string
	var local vector.Pt
	m.Register(Zone{ID: "canvas", Shape: StaticRect(vector.R(100, 50, 400, 300)), OnDrop: func(_ DragItem, l vector.Pt) {
		order = append(order, "zone")
		local = l
	}})
	h := m.OnDrop(func(it DragItem, zone string) { order = append(order, "cb:"+zone) })
	m.Start(DragItem{ID: "a", Position: pt(150, 80)})
	if !m.HandleDrop("canvas") {
		t.Fatalf("HandleDrop should report a drop")
	}
	if len(order) != 2 || order[0] != "zone" || order[1] != "cb:canvas" {
		t.Fatalf("order = %v", order)
	}
	if local != pt(50, 30) {
		t.Fatalf("local = %+v", local)
	}
	if m.Dragging() {
		t.Fatalf("HandleDrop must end the session")
	}
	if m.HandleDrop("canvas") {
		t.Fatalf("HandleDrop without a session must be a no-op")
	}
	h.Remove()
	h.Remove()
	m.Start(DragItem{ID: "b"})
	m.HandleDrop("unknown")
	if len(order) != 2 {
		t.Fatalf("removed callback still fired: %v", order)
	}
}

func TestOverlapLatestTransitionWins(t *testing.T) {
	m := NewManager(nil)
	a := vector.R(0, 0, 100, 100)
	b := vector.R(50, 0, 100, 100)
	m.Register(Zone{ID: "A", Priority: 0, Shape: StaticRect(a)})
	m.Register(Zone{ID: "B", Priority: 1, Shape: StaticRect(b)})
	m.Start(DragItem{ID: "x"})

	m.PointerMove(pt(10, 10))
	if s := m.State(); s.Zone != "A" || !s.Over {
		t.Fatalf("in A only: %+v", s)
	}
	m.PointerMove(pt(75, 10))
	if s := m.State(); s.Zone != "B" {
		t.Fatalf("in A∩B the latest entry should win: %+v", s)
	}
	m.PointerMove(pt(140, 10))
	if s := m.State(); s.Zone != "B" || !s.Over {
		t.Fatalf("in B only: %+v", s)
	}
	m.PointerMove(pt(500, 500))
	if s := m.State(); s.Zone != "" || s.Over {
		t.Fatalf("outside both: %+v", s)
	}
}

func TestLeavingNonClaimantKeepsClaim(t *testing.T) {
	m := NewManager(nil)
	m.Register(Zone{ID: "A", Shape: StaticRect(vector.R(0, 0, 100, 100))})
	m.Register(Zone{ID: "B", Priority: 1, Shape: StaticRect(vector.R(50, 0, 100, 100))})
	m.Start(DragItem{ID: "x"})
	m.PointerMove(pt(75, 10)) // both enter in one move, B claims last
	m.PointerMove(pt(120, 10))
	if s := m.State(); s.Zone != "B" {
		t.Fatalf("A leaving must not clobber B: %+v", s)
	}

	m.Start(DragItem{ID: "y"})
	m.PointerMove(pt(75, 10))
	m.PointerMove(pt(20, 10)) // B releases its claim while A is still hovered
	if s := m.State(); s.Zone != "A" || !s.Over {
		t.Fatalf("still over A after B released: %+v", s)
	}
}

func TestCircleShape(t *testing.T) {
	c := CircleShape{BoundsFn: func() vector.Rect { return vector.R(0, 0, 200, 100) }, Inset: 10}
	if !c.Hit(pt(100, 50)) {
		t.Fatalf("centre should hit")
	}
	if !c.Hit(pt(100, 90)) {
		t.Fatalf("radius 40 should reach y=90")
	}
	if c.Hit(pt(100, 95)) {
		t.Fatalf("outside inset radius should miss")
	}
	if c.Hit(pt(10, 10)) {
		t.Fatalf("bbox corner should miss")
	}
	zero := CircleShape{BoundsFn: func() vector.Rect { return vector.R(10, 10, 0, 0) }}
	if zero.Hit(pt(10, 10)) {
		t.Fatalf("zero-area geometry must never hit")
	}
	if (RectShape{}).Hit(pt(0, 0)) {
		t.Fatalf("rect without bounds must never hit")
	}
}

func TestPointerUpDispatch(t *testing.T) {
	m := NewManager(nil)
	var got []string
	m.Register(Zone{ID: "globe", Shape: CircleShape{BoundsFn: func() vector.Rect { return vector.R(0, 0, 100, 100) }}, OnDrop: func(it DragItem, _ vector.Pt) {
		got = append(got, it.Name)
	}})

	m.Start(DragItem{Name: "inside"})
	m.PointerMove(pt(50, 50))
	if zone, ok := m.PointerUp(pt(50, 50)); !ok || zone != "globe" {
		t.Fatalf("PointerUp = %q,%v", zone, ok)
	}

	m.Start(DragItem{Name: "outside"})
	m.PointerMove(pt(400, 400))
	if _, ok := m.PointerUp(pt(400, 400)); ok {
		t.Fatalf("release outside any zone must cancel")
	}
	if m.Dragging() {
		t.Fatalf("cancelled session must end")
	}
	if len(got) != 1 || got[0] != "inside" {
		t.Fatalf("drops = %v", got)
	}
	if _, ok := m.PointerUp(pt(0, 0)); ok {
		t.Fatalf("PointerUp without session must be a no-op")
	}
}

func TestLiveBoundsAndUnregister(t *testing.T) {
	m := NewManager(nil)
	bounds := vector.R(0, 0, 0, 0)
	h := m.Register(Zone{ID: "canvas", Shape: RectShape{BoundsFn: func() vector.Rect { return bounds }}})
	m.Start(DragItem{ID: "x"})
	m.PointerMove(pt(10, 10))
	if m.State().Zone != "" {
		t.Fatalf("detached element must not claim")
	}
	bounds = vector.R(0, 0, 100, 100)
	m.PointerMove(pt(10, 10))
	if m.State().Zone != "canvas" {
		t.Fatalf("valid geometry should claim")
	}
	h.Remove()
	if s := m.State(); s.Zone != "" || s.Over {
		t.Fatalf("unregistering the claimant must release it: %+v", s)
	}
	if len(m.Zones()) != 0 {
		t.Fatalf("zones = %v", m.Zones())
	}
}

func TestRegisterOrdersByPriority(t *testing.T) {
	m := NewManager(nil)
	m.Register(Zone{ID: "b", Priority: 2})
	m.Register(Zone{ID: "a", Priority: 1})
	m.Register(Zone{ID: "c", Priority: 2})
	got := m.Zones()
	if len(got) != 3 || got[0].ID != "a" || got[1].ID != "b" || got[2].ID != "c" {
		t.Fatalf("Zones() = %+v", got)
	}
	if got[1].Priority != 2 || got[0].Bounds != (vector.Rect{}) {
		t.Fatalf("zone info = %+v", got[1])
	}
}
