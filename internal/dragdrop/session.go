/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
// Package dragdrop tracks the single in-flight drag session and dispatches pointer
// movement to registered drop zones. The Manager is owned by the application loop and
// handed to every detector and ingestor; it is not safe for concurrent use.
package dragdrop

import (
	"log/slog"

	"github.com/google/uuid"

	"spatialcanvas/internal/log"
	"spatialcanvas/internal/vector"
)

// ItemKind tells drop consumers how to interpret a DragItem payload.
type ItemKind string

const (
	KindFile ItemKind = "file"
	KindURL  ItemKind = "url"
)

// FilePayload is carried by file items once real metadata is known.
type FilePayload struct {
	Size     int64
	MIMEType string
	Data     []byte
}

// URLPayload is carried by url items.
type URLPayload struct {
	URL string
}

// DragItem is the thing being dragged. Payload is opaque to the manager.
type DragItem struct {
	ID       string
	Kind     ItemKind
	Name     string
	Payload  any
	Position vector.Pt
}

// ItemPatch carries a partial update for the current item; nil fields are left alone.
type ItemPatch struct {
	Kind     *ItemKind
	Name     *string
	Payload  any
	Position *vector.Pt
}

// State is a snapshot of the session.
type State struct {
	Dragging bool
	Item     *DragItem
	Zone     string
	Over     bool
}

// DropFunc receives every completed drop together with the zone that accepted it.
type DropFunc func(item DragItem, zone string)

type dropHandler struct {
	id uint32
	fn DropFunc
}

// Manager owns the drag session and the registered zones.
type Manager struct {
	log    *slog.Logger
	state  State
	zones  []*zoneEntry
	drops  []dropHandler
	nextID uint32
}

// NewManager creates an idle manager. A nil logger discards output.
func NewManager(l *slog.Logger) *Manager {
	return &Manager{log: log.OrNop(l)}
}

// State returns a copy of the current session state.
func (m *Manager) State() State {
	s := m.state
	if s.Item != nil {
		it := *s.Item
		s.Item = &it
	}
	return s
}

// Dragging reports whether a session is active.
func (m *Manager) Dragging() bool { return m.state.Dragging }

// Start begins a session for item, replacing any session already in flight.
func (m *Manager) Start(item DragItem) {
	if m.state.Dragging {
		prev := ""
		if m.state.Item != nil {
			prev = m.state.Item.ID
		}
		m.log.Debug("drag session overwritten", slog.String("prev", prev))
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	m.resetHover()
	m.state = State{Dragging: true, Item: &item}
	m.log.Debug("drag start", slog.String("item", item.ID), slog.String("kind", string(item.Kind)), slog.String("name", item.Name))
}

// End clears the session. Calling it without a session is a no-op.
func (m *Manager) End() {
	if !m.state.Dragging && m.state.Item == nil && m.state.Zone == "" && !m.state.Over {
		return
	}
	m.resetHover()
	m.state = State{}
	m.log.Debug("drag end")
}

// UpdatePosition moves the current item. Callers throttle this to frame cadence.
func (m *Manager) UpdatePosition(pt vector.Pt) {
	if m.state.Item == nil {
		return
	}
	m.state.Item.Position = pt
}

// UpdateItem applies p to the current item in place.
func (m *Manager) UpdateItem(p ItemPatch) {
	it := m.state.Item
	if it == nil {
		return
	}
	if p.Kind != nil {
		it.Kind = *p.Kind
	}
	if p.Name != nil {
		it.Name = *p.Name
	}
	if p.Payload != nil {
		it.Payload = p.Payload
	}
	if p.Position != nil {
		it.Position = *p.Position
	}
}

// SetZone marks id as the active zone.
func (m *Manager) SetZone(id string) { m.state.Zone = id }

// ClearZone removes the active zone.
func (m *Manager) ClearZone() { m.state.Zone = "" }

// SetOver sets the over-drop-zone flag.
func (m *Manager) SetOver(over bool) { m.state.Over = over }

// OnDrop registers fn to run on every completed drop.
func (m *Manager) OnDrop(fn DropFunc) Handle {
	m.nextID++
	id := m.nextID
	m.drops = append(m.drops, dropHandler{id: id, fn: fn})
	return Handle{remove: func() {
		for i, h := range m.drops {
			if h.id == id {
				m.drops = append(m.drops[:i], m.drops[i+1:]...)
				return
			}
		}
	}}
}

// HandleDrop completes the session into zone: the zone's own callback runs first with
// the item position relative to the zone bounds, then every OnDrop callback, then End.
// Without an active session it does nothing and returns false.
func (m *Manager) HandleDrop(zone string) bool {
	if !m.state.Dragging || m.state.Item == nil {
		return false
	}
	item := *m.state.Item
	m.log.Debug("drop", slog.String("item", item.ID), slog.String("zone", zone))
	if z := m.zone(zone); z != nil && z.OnDrop != nil {
		local := item.Position
		if z.Shape != nil {
			local = item.Position.Sub(z.Shape.Bounds().Min())
		}
		z.OnDrop(item, local)
	}
	for _, h := range append([]dropHandler(nil), m.drops...) {
		h.fn(item, zone)
	}
	m.End()
	return true
}

// Handle undoes a registration.
type Handle struct{ remove func() }

// Remove unregisters. Safe to call more than once.
func (h Handle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}
