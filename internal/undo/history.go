/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package undo

import (
	"sync"
	"time"

	"spatialcanvas/internal/domain"
)

// DefaultLimit is the number of snapshots kept when Config.Limit is unset.
const DefaultLimit = 50

// Snapshot is one recorded widget-collection state.
type Snapshot struct {
	Label   string
	Widgets *domain.Collection
	TS      time.Time
}

// Config controls the depth cap.
type Config struct {
	// Limit is the maximum number of snapshots; the oldest is dropped past it.
	Limit int
}

// History is a linear snapshot sequence with a current index (0 <= index < len).
// Recording after an undo discards the redo branch. Snapshots are stored as deep
// copies so later edits to a live collection never leak into the past.
// It is safe for concurrent use.
type History struct {
	cfg   Config
	mu    sync.Mutex
	snaps []Snapshot
	index int
	now   func() time.Time
}

// NewHistory starts a history whose first entry is initial.
func NewHistory(cfg Config, initial *domain.Collection) *History {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if initial == nil {
		initial = domain.NewCollection()
	}
	h := &History{cfg: cfg, now: time.Now}
	h.snaps = []Snapshot{{Label: "initial", Widgets: initial.Clone(), TS: h.now()}}
	return h
}

// Record truncates anything beyond the current index and appends c as the new current state.
func (h *History) Record(label string, c *domain.Collection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snaps = append(h.snaps[:h.index+1], Snapshot{Label: label, Widgets: c.Clone(), TS: h.now()})
	if over := len(h.snaps) - h.cfg.Limit; over > 0 {
		// drop the oldest extras
		h.snaps = append([]Snapshot{}, h.snaps[over:]...)
	}
	h.index = len(h.snaps) - 1
}

// Undo steps back one entry and returns a copy of that state. At the first entry it is a no-op.
func (h *History) Undo() (*domain.Collection, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return nil, false
	}
	h.index--
	return h.snaps[h.index].Widgets.Clone(), true
}

// Redo steps forward one entry. At the last entry it is a no-op.
func (h *History) Redo() (*domain.Collection, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index >= len(h.snaps)-1 {
		return nil, false
	}
	h.index++
	return h.snaps[h.index].Widgets.Clone(), true
}

func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.snaps)-1
}

// Snapshots returns copies of every entry, oldest first.
func (h *History) Snapshots() []Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Snapshot, len(h.snaps))
	for i, s := range h.snaps {
		out[i] = Snapshot{Label: s.Label, Widgets: s.Widgets.Clone(), TS: s.TS}
	}
	return out
}

// Stats returns current sizes for diagnostics.
func (h *History) Stats() (entries int, index int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.snaps), h.index
}
