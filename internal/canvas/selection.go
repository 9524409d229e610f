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
)

// Selection returns the selected ids in widget order.
func (e *Engine) Selection() []string {
	var out []string
	for _, id := range e.widgets.IDs() {
		if e.selected[id] {
			out = append(out, id)
		}
	}
	return out
}

// IsSelected reports whether id is selected.
func (e *Engine) IsSelected(id string) bool { return e.selected[id] }

// MarqueeSelect replaces the selection with every widget whose bounds intersect the
// screen rectangle spanned by start and current. A zero-area rectangle selects nothing.
func (e *Engine) MarqueeSelect(start, current vector.Pt) []string {
	r := e.vp.ToCanvasRect(start, current)
	e.selected = map[string]bool{}
	for _, w := range e.widgets.All() {
		if w.Bounds(e.opts.DefaultSize).Intersects(r) {
			e.selected[w.ID] = true
		}
	}
	e.render()
	return e.Selection()
}

// SelectAll selects every widget.
func (e *Engine) SelectAll() {
	for _, id := range e.widgets.IDs() {
		e.selected[id] = true
	}
	e.render()
}

// ClearSelection deselects everything.
func (e *Engine) ClearSelection() {
	if len(e.selected) == 0 {
		return
	}
	e.selected = map[string]bool{}
	e.render()
}

// SelectOnly makes id the sole selection.
func (e *Engine) SelectOnly(id string) bool {
	if !e.widgets.Has(id) {
		return false
	}
	e.selected = map[string]bool{id: true}
	e.render()
	return true
}

// HitTest returns the topmost widget containing the screen point.
func (e *Engine) HitTest(screenPt vector.Pt) (string, bool) {
	p := e.vp.ToCanvas(screenPt)
	ws := e.widgets.All()
	for i := len(ws) - 1; i >= 0; i-- {
		if ws[i].Bounds(e.opts.DefaultSize).Contains(p) {
			return ws[i].ID, true
		}
	}
	return "", false
}
