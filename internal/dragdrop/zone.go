/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package dragdrop

import (
	"log/slog"
	"sort"

	"spatialcanvas/internal/vector"
)

// Shape is a drop target's hit geometry evaluated against live bounds.
type Shape interface {
	Bounds() vector.Rect
	Hit(p vector.Pt) bool
}

// BoundsFunc reports the current screen bounds of a target element.
type BoundsFunc func() vector.Rect

// RectShape hits anywhere inside the element's bounding box.
type RectShape struct {
	BoundsFn BoundsFunc
}

// StaticRect is a RectShape over fixed bounds.
func StaticRect(r vector.Rect) RectShape {
	return RectShape{BoundsFn: func() vector.Rect { return r }}
}

func (s RectShape) Bounds() vector.Rect {
	if s.BoundsFn == nil {
		return vector.Rect{}
	}
	return s.BoundsFn()
}

func (s RectShape) Hit(p vector.Pt) bool { return s.Bounds().Contains(p) }

// CircleShape hits within min(w,h)/2 - Inset of the element's centre.
type CircleShape struct {
	BoundsFn BoundsFunc
	Inset    float64
}

func (s CircleShape) Bounds() vector.Rect {
	if s.BoundsFn == nil {
		return vector.Rect{}
	}
	return s.BoundsFn()
}

func (s CircleShape) Hit(p vector.Pt) bool {
	return vector.InscribedCircle(s.Bounds(), s.Inset).Contains(p)
}

// Zone is a registered drop target. Lower Priority values are evaluated first, so on
// overlapping transitions in the same move the higher value claims last and wins.
type Zone struct {
	ID       string
	Priority int
	Shape    Shape
	OnEnter  func(item DragItem)
	OnLeave  func(item DragItem)
	// OnDrop receives the item and the release position relative to the zone bounds.
	OnDrop func(item DragItem, local vector.Pt)
}

type zoneEntry struct {
	Zone
	seq      uint32
	hovering bool
}

// Register adds z to the dispatch list. Registering an existing ID replaces it.
func (m *Manager) Register(z Zone) Handle {
	m.unregister(z.ID)
	m.nextID++
	e := &zoneEntry{Zone: z, seq: m.nextID}
	m.zones = append(m.zones, e)
	sort.SliceStable(m.zones, func(i, j int) bool {
		if m.zones[i].Priority != m.zones[j].Priority {
			return m.zones[i].Priority < m.zones[j].Priority
		}
		return m.zones[i].seq < m.zones[j].seq
	})
	seq := e.seq
	return Handle{remove: func() {
		if cur := m.zone(z.ID); cur != nil && cur.seq == seq {
			m.unregister(z.ID)
		}
	}}
}

func (m *Manager) unregister(id string) {
	for i, e := range m.zones {
		if e.ID == id {
			m.zones = append(m.zones[:i], m.zones[i+1:]...)
			if m.state.Zone == id {
				m.ClearZone()
				m.SetOver(false)
			}
			return
		}
	}
}

func (m *Manager) zone(id string) *zoneEntry {
	for _, e := range m.zones {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// ZoneInfo describes a registered zone at the time of the call.
type ZoneInfo struct {
	ID       string
	Priority int
	Bounds   vector.Rect
	Active   bool
}

// Zones lists registered zones in evaluation order. Active marks the claimant.
func (m *Manager) Zones() []ZoneInfo {
	out := make([]ZoneInfo, 0, len(m.zones))
	for _, e := range m.zones {
		zi := ZoneInfo{ID: e.ID, Priority: e.Priority, Active: m.state.Zone == e.ID}
		if e.Shape != nil {
			zi.Bounds = e.Shape.Bounds()
		}
		out = append(out, zi)
	}
	return out
}

func (m *Manager) resetHover() {
	for _, e := range m.zones {
		e.hovering = false
	}
}

// PointerMove updates the dragged item and runs every zone's hit test.
// Entering claims the zone; leaving releases it only if that zone is the claimant.
// If the claimant was released while another zone is still hovered, the last hovered
// zone in evaluation order takes over so the pointer is never over a target without one.
func (m *Manager) PointerMove(pt vector.Pt) {
	if !m.state.Dragging {
		return
	}
	m.UpdatePosition(pt)
	for _, e := range append([]*zoneEntry(nil), m.zones...) {
		hit := e.Shape != nil && e.Shape.Hit(pt)
		switch {
		case hit && !e.hovering:
			e.hovering = true
			m.SetZone(e.ID)
			m.SetOver(true)
			m.log.Debug("zone enter", slog.String("zone", e.ID))
			if e.OnEnter != nil {
				e.OnEnter(*m.state.Item)
			}
		case !hit && e.hovering:
			e.hovering = false
			if m.state.Zone == e.ID {
				m.ClearZone()
				m.SetOver(false)
			}
			m.log.Debug("zone leave", slog.String("zone", e.ID))
			if e.OnLeave != nil {
				e.OnLeave(*m.state.Item)
			}
		}
		if !m.state.Dragging {
			return
		}
	}
	if m.state.Zone == "" {
		for i := len(m.zones) - 1; i >= 0; i-- {
			if m.zones[i].hovering {
				m.SetZone(m.zones[i].ID)
				m.SetOver(true)
				break
			}
		}
	}
}

// PointerUp releases the drag at pt. The claiming zone receives the drop; with no
// claimant the session is cancelled. It returns the accepting zone, if any.
func (m *Manager) PointerUp(pt vector.Pt) (string, bool) {
	if !m.state.Dragging {
		return "", false
	}
	m.PointerMove(pt)
	if !m.state.Dragging {
		return "", false
	}
	zone := m.state.Zone
	if zone == "" {
		m.log.Debug("drag cancelled", slog.Float64("x", pt.X), slog.Float64("y", pt.Y))
		m.End()
		return "", false
	}
	return zone, m.HandleDrop(zone)
}
