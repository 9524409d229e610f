/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package canvas

import (
	"testing"

	"spatialcanvas/internal/keymap"
	"spatialcanvas/internal/vector"
)

func TestHandleKeyDispatch(t *testing.T) {
	e := New(Options{})
	e.Mount(vector.Size{W: 800, H: 600})
	e.AddWidget(text("a", 0, 0))
	e.AddWidget(text("b", 50, 50))

	if a, ok := e.HandleKey(keymap.KeyEvent{Key: "a", Ctrl: true}); a != keymap.ActionSelectAll || !ok {
		t.Fatalf("select all: %q %v", a, ok)
	}
	if len(e.Selection()) != 2 {
		t.Fatalf("selection = %v", e.Selection())
	}
	e.HandleKey(keymap.KeyEvent{Key: "c", Meta: true})
	e.HandleKey(keymap.KeyEvent{Key: "v", Meta: true})
	if e.Len() != 4 {
		t.Fatalf("paste via keyboard: len = %d", e.Len())
	}
	e.HandleKey(keymap.KeyEvent{Key: "Delete"})
	if e.Len() != 2 {
		t.Fatalf("delete via keyboard: len = %d", e.Len())
	}
	e.HandleKey(keymap.KeyEvent{Key: "z", Ctrl: true})
	if e.Len() != 4 {
		t.Fatalf("undo via keyboard: len = %d", e.Len())
	}
	e.HandleKey(keymap.KeyEvent{Key: "Z", Ctrl: true, Shift: true})
	if e.Len() != 2 {
		t.Fatalf("redo via keyboard: len = %d", e.Len())
	}
	z := e.Viewport().Zoom
	e.HandleKey(keymap.KeyEvent{Key: "=", Ctrl: true})
	if e.Viewport().Zoom <= z {
		t.Fatalf("zoom in via keyboard did nothing")
	}
	e.HandleKey(keymap.KeyEvent{Key: "-", Ctrl: true})
	if e.Viewport().Zoom != z {
		t.Fatalf("zoom out should return to %v, got %v", z, e.Viewport().Zoom)
	}
	if _, ok := e.HandleKey(keymap.KeyEvent{Key: "q", Ctrl: true}); ok {
		t.Fatalf("unbound chord must not act")
	}
}

func TestHandleKeySuppressedWhileTyping(t *testing.T) {
	e := New(Options{})
	e.AddWidget(text("a", 0, 0))
	e.SetTextFocus(true)
	if _, ok := e.HandleKey(keymap.KeyEvent{Key: "z", Ctrl: true}); ok {
		t.Fatalf("shortcut must be suppressed during text input")
	}
	if e.Len() != 1 {
		t.Fatalf("undo ran while typing")
	}
	e.SetTextFocus(false)
	if _, ok := e.HandleKey(keymap.KeyEvent{Key: "z", Ctrl: true}); !ok || e.Len() != 0 {
		t.Fatalf("undo should run once focus is released")
	}
}

func TestContextMenu(t *testing.T) {
	e := New(Options{DefaultSize: vector.Size{W: 100, H: 100}})
	e.Mount(vector.Size{W: 800, H: 600})
	a := e.AddWidget(text("a", 0, 0))
	b := e.AddWidget(text("b", 500, 500))
	e.SelectOnly(b)

	m := e.ContextMenu(e.Viewport().ToScreen(vector.Pt{X: 10, Y: 10}))
	if m.Target != a {
		t.Fatalf("menu target = %q, want %q", m.Target, a)
	}
	if sel := e.Selection(); len(sel) != 1 || sel[0] != a {
		t.Fatalf("right click should select the widget, got %v", sel)
	}
	if m.Items[1].Action != keymap.ActionPaste || m.Items[1].Enabled {
		t.Fatalf("paste must be disabled with an empty clipboard: %+v", m.Items)
	}
	for _, it := range m.Items {
		if it.Action == keymap.ActionDelete && it.Enabled {
			if !e.Invoke(it.Action) {
				t.Fatalf("invoke delete failed")
			}
		}
	}
	if _, ok := e.Widget(a); ok {
		t.Fatalf("menu delete did not remove the widget")
	}

	m = e.ContextMenu(vector.Pt{X: -5000, Y: -5000})
	if m.Target != "" {
		t.Fatalf("empty canvas menu has target %q", m.Target)
	}
	byAction := map[keymap.Action]MenuItem{}
	for _, it := range m.Items {
		byAction[it.Action] = it
	}
	if !byAction[keymap.ActionUndo].Enabled || byAction[keymap.ActionRedo].Enabled {
		t.Fatalf("undo/redo availability wrong: %+v", m.Items)
	}
	if byAction[keymap.ActionSelectAll].Label != "Select all" {
		t.Fatalf("label = %q", byAction[keymap.ActionSelectAll].Label)
	}
}
