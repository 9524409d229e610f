/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
// Package keymap parses keyboard chords such as "mod+shift+z" and resolves key events to
// canvas actions. "mod" matches either Ctrl or Meta so one binding covers every platform.
package keymap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"spatialcanvas/internal/config"
)

// Action names a canvas command reachable from the keyboard.
type Action string

const (
	ActionUndo      Action = "undo"
	ActionRedo      Action = "redo"
	ActionCopy      Action = "copy"
	ActionPaste     Action = "paste"
	ActionSelectAll Action = "select_all"
	ActionDelete    Action = "delete"
	ActionZoomIn    Action = "zoom_in"
	ActionZoomOut   Action = "zoom_out"
)

// Actions lists every bindable action in display order.
var Actions = []Action{ActionUndo, ActionRedo, ActionCopy, ActionPaste, ActionSelectAll, ActionDelete, ActionZoomIn, ActionZoomOut}

// Valid reports whether a is a known action.
func (a Action) Valid() bool {
	for _, x := range Actions {
		if x == a {
			return true
		}
	}
	return false
}

var ErrUnknownAction = errors.New("unknown action")

// KeyEvent is a key press delivered by the host window.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool
}

// Chord is a normalized key combination.
type Chord struct {
	Key   string
	Mod   bool
	Shift bool
	Alt   bool
}

var keyAliases = map[string]string{
	"del":    "delete",
	"esc":    "escape",
	"plus":   "+",
	"minus":  "-",
	"equal":  "=",
	"equals": "=",
	"space":  " ",
	"return": "enter",
	"bs":     "backspace",
}

func normalizeKey(k string) string {
	if k == " " {
		return k
	}
	k = strings.ToLower(strings.TrimSpace(k))
	if a, ok := keyAliases[k]; ok {
		return a
	}
	return k
}

// symbol keys are typed with shift on many layouts, so shift is not part of their identity.
func isSymbol(k string) bool {
	return len(k) == 1 && !(k[0] >= 'a' && k[0] <= 'z') && !(k[0] >= '0' && k[0] <= '9')
}

// ParseChord parses "mod+shift+z", "delete" or "mod++".
func ParseChord(s string) (Chord, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return Chord{}, errors.New("empty chord")
	}
	var key string
	rest := raw
	if raw == "+" || strings.HasSuffix(raw, "++") {
		key = "+"
		rest = strings.TrimSuffix(strings.TrimSuffix(raw, "+"), "+")
	} else if i := strings.LastIndex(raw, "+"); i >= 0 {
		key, rest = raw[i+1:], raw[:i]
	} else {
		key, rest = raw, ""
	}
	c := Chord{Key: normalizeKey(key)}
	if c.Key == "" {
		return Chord{}, fmt.Errorf("chord %q: missing key", s)
	}
	if rest != "" {
		for _, m := range strings.Split(rest, "+") {
			switch strings.TrimSpace(m) {
			case "mod", "ctrl", "cmd", "meta", "control", "command":
				c.Mod = true
			case "shift":
				c.Shift = true
			case "alt", "option", "opt":
				c.Alt = true
			default:
				return Chord{}, fmt.Errorf("chord %q: unknown modifier %q", s, m)
			}
		}
	}
	if isSymbol(c.Key) {
		c.Shift = false
	}
	return c, nil
}

// String renders c in the canonical "mod+shift+alt+key" form.
func (c Chord) String() string {
	var parts []string
	if c.Mod {
		parts = append(parts, "mod")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	return strings.Join(append(parts, c.Key), "+")
}

// ChordOf converts a key event into the chord it would match.
func ChordOf(ev KeyEvent) Chord {
	c := Chord{Key: normalizeKey(ev.Key), Mod: ev.Ctrl || ev.Meta, Shift: ev.Shift, Alt: ev.Alt}
	if isSymbol(c.Key) {
		c.Shift = false
	}
	return c
}

// Keymap resolves chords to actions. The zero value binds nothing.
type Keymap struct {
	byChord  map[Chord]Action
	byAction map[Action][]Chord
}

// New builds a keymap from action → chord strings, as found in the config file.
// Invalid entries are reported together; valid ones are still bound.
func New(bindings map[string][]string) (*Keymap, error) {
	k := &Keymap{byChord: map[Chord]Action{}, byAction: map[Action][]Chord{}}
	var errs []error
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a := Action(strings.ToLower(strings.TrimSpace(name)))
		if !a.Valid() {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownAction, name))
			continue
		}
		for _, s := range bindings[name] {
			c, err := ParseChord(s)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			k.Bind(a, c)
		}
	}
	return k, errors.Join(errs...)
}

// Default returns the built-in bindings.
func Default() *Keymap {
	k, _ := New(config.DefaultKeymap())
	return k
}

// Bind adds chord c for action a, taking it over from any previous action.
func (k *Keymap) Bind(a Action, c Chord) {
	if k.byChord == nil {
		k.byChord = map[Chord]Action{}
		k.byAction = map[Action][]Chord{}
	}
	if prev, ok := k.byChord[c]; ok {
		k.byAction[prev] = removeChord(k.byAction[prev], c)
	}
	k.byChord[c] = a
	k.byAction[a] = append(k.byAction[a], c)
}

func removeChord(cs []Chord, c Chord) []Chord {
	out := cs[:0]
	for _, x := range cs {
		if x != c {
			out = append(out, x)
		}
	}
	return out
}

// Resolve maps a key event to its bound action.
func (k *Keymap) Resolve(ev KeyEvent) (Action, bool) {
	if k == nil {
		return "", false
	}
	a, ok := k.byChord[ChordOf(ev)]
	return a, ok
}

// Chords returns the chords bound to a.
func (k *Keymap) Chords(a Action) []Chord {
	if k == nil {
		return nil
	}
	return append([]Chord(nil), k.byAction[a]...)
}

// Binding is one row of the effective keymap.
type Binding struct {
	Action Action
	Chords []Chord
}

// Bindings lists all actions in display order with their chords.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(Actions))
	for _, a := range Actions {
		out = append(out, Binding{Action: a, Chords: k.Chords(a)})
	}
	return out
}
