/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package canvas

import (
	"encoding/json"

	"spatialcanvas/internal/domain"
	"spatialcanvas/internal/viewport"
)

// Document is a point-in-time view of the engine used for diagnostics and crash reports.
type Document struct {
	Viewport   viewport.Viewport `json:"viewport"`
	Widgets    []domain.Widget   `json:"widgets"`
	Selection  []string          `json:"selection,omitempty"`
	History    int               `json:"historyEntries"`
	HistoryIdx int               `json:"historyIndex"`
}

// Document captures the current state.
func (e *Engine) Document() Document {
	entries, idx := e.history.Stats()
	return Document{
		Viewport:   e.vp,
		Widgets:    e.Widgets(),
		Selection:  e.Selection(),
		History:    entries,
		HistoryIdx: idx,
	}
}

// SnapshotJSON renders Document as indented JSON.
func (e *Engine) SnapshotJSON() ([]byte, error) {
	return json.MarshalIndent(e.Document(), "", "  ")
}
