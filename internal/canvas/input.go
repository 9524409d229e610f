/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package canvas

import (
	"log/slog"

	"spatialcanvas/internal/keymap"
	"spatialcanvas/internal/vector"
)

// SetTextFocus is called by the host while a text input owns the keyboard; canvas
// shortcuts are suppressed until it is cleared.
func (e *Engine) SetTextFocus(focused bool) { e.textFocus = focused }

// TextFocus reports whether shortcuts are currently suppressed.
func (e *Engine) TextFocus() bool { return e.textFocus }

// HandleKey resolves ev through the keymap and runs the bound action.
func (e *Engine) HandleKey(ev keymap.KeyEvent) (keymap.Action, bool) {
	if e.textFocus {
		return "", false
	}
	a, ok := e.opts.Keymap.Resolve(ev)
	if !ok {
		return "", false
	}
	e.log.Debug("shortcut", slog.String("action", string(a)))
	return a, e.Invoke(a)
}

// Invoke runs an action and reports whether it changed anything.
func (e *Engine) Invoke(a keymap.Action) bool {
	switch a {
	case keymap.ActionUndo:
		return e.Undo()
	case keymap.ActionRedo:
		return e.Redo()
	case keymap.ActionCopy:
		return e.Copy() > 0
	case keymap.ActionPaste:
		return len(e.Paste()) > 0
	case keymap.ActionSelectAll:
		e.SelectAll()
		return e.widgets.Len() > 0
	case keymap.ActionDelete:
		return e.DeleteSelected() > 0
	case keymap.ActionZoomIn:
		before := e.vp.Zoom
		e.ZoomIn()
		return e.vp.Zoom != before
	case keymap.ActionZoomOut:
		before := e.vp.Zoom
		e.ZoomOut()
		return e.vp.Zoom != before
	}
	return false
}

// MenuItem is one context menu entry.
type MenuItem struct {
	Action  keymap.Action
	Label   string
	Enabled bool
}

// Menu is the context menu for a screen position. Target is the widget under the
// pointer, or empty for the bare canvas.
type Menu struct {
	Target string
	Items  []MenuItem
}

var menuLabels = map[keymap.Action]string{
	keymap.ActionUndo:      "Undo",
	keymap.ActionRedo:      "Redo",
	keymap.ActionCopy:      "Copy",
	keymap.ActionPaste:     "Paste",
	keymap.ActionSelectAll: "Select all",
	keymap.ActionDelete:    "Delete",
	keymap.ActionZoomIn:    "Zoom in",
	keymap.ActionZoomOut:   "Zoom out",
}

// ContextMenu builds the menu for a right click at screenPos. Clicking an unselected
// widget selects it alone so the menu acts on what the user pointed at.
func (e *Engine) ContextMenu(screenPos vector.Pt) Menu {
	item := func(a keymap.Action, enabled bool) MenuItem {
		return MenuItem{Action: a, Label: menuLabels[a], Enabled: enabled}
	}
	if id, ok := e.HitTest(screenPos); ok {
		if !e.selected[id] {
			e.SelectOnly(id)
		}
		return Menu{Target: id, Items: []MenuItem{
			item(keymap.ActionCopy, true),
			item(keymap.ActionPaste, len(e.clipboard) > 0),
			item(keymap.ActionDelete, true),
		}}
	}
	return Menu{Items: []MenuItem{
		item(keymap.ActionPaste, len(e.clipboard) > 0),
		item(keymap.ActionSelectAll, e.widgets.Len() > 0),
		item(keymap.ActionUndo, e.history.CanUndo()),
		item(keymap.ActionRedo, e.history.CanRedo()),
		item(keymap.ActionZoomIn, e.vp.Zoom < e.opts.Limits.MaxZoom),
		item(keymap.ActionZoomOut, e.vp.Zoom > e.opts.Limits.MinZoom),
	}}
}
