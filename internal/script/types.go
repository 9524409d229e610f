/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
// Package script loads and runs replay scripts: a window size, an optional set of
// initial widgets and an ordered list of input steps executed against an app loop.
// Scripts are YAML (JSON is accepted as a subset) and are validated against an
// embedded JSON schema before they are decoded.
package script

import (
	"fmt"

	"spatialcanvas/internal/domain"
	"spatialcanvas/internal/vector"
)

// Op is a step operation.
type Op string

const (
	OpPointerDown Op = "pointer_down"
	OpDragStart   Op = "drag_start" // alias of pointer_down
	OpPointerMove Op = "pointer_move"
	OpPointerUp   Op = "pointer_up"
	OpFrame       Op = "frame"
	OpFileEnter   Op = "file_enter"
	OpFileLeave   Op = "file_leave"
	OpFileOver    Op = "file_over"
	OpFileDrop    Op = "file_drop"
	OpURLOver     Op = "url_over"
	OpURLDrop     Op = "url_drop"
	OpKey         Op = "key"
	OpMarquee     Op = "marquee"
	OpMove        Op = "move"
	OpResize      Op = "resize"
	OpWheel       Op = "wheel"
	OpAdd         Op = "add"
	OpUpdate      Op = "update"
	OpMenu        Op = "menu"
	OpTextFocus   Op = "text_focus"
	OpExpect      Op = "expect"
)

// Script is a decoded replay script.
type Script struct {
	Window  Size         `yaml:"window" json:"window"`
	Globe   *Box         `yaml:"globe,omitempty" json:"globe,omitempty"`
	Widgets []WidgetSpec `yaml:"widgets,omitempty" json:"widgets,omitempty"`
	Steps   []Step       `yaml:"steps" json:"steps"`
}

type Size struct {
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

type Box struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	W float64 `yaml:"w" json:"w"`
	H float64 `yaml:"h" json:"h"`
}

// WidgetSpec describes an initial widget in canvas coordinates.
type WidgetSpec struct {
	ID    string  `yaml:"id,omitempty" json:"id,omitempty"`
	Kind  string  `yaml:"kind" json:"kind"`
	X     float64 `yaml:"x" json:"x"`
	Y     float64 `yaml:"y" json:"y"`
	W     float64 `yaml:"w,omitempty" json:"w,omitempty"`
	H     float64 `yaml:"h,omitempty" json:"h,omitempty"`
	Text  string  `yaml:"text,omitempty" json:"text,omitempty"`
	Title string  `yaml:"title,omitempty" json:"title,omitempty"`
	Body  string  `yaml:"body,omitempty" json:"body,omitempty"`
	URL   string  `yaml:"url,omitempty" json:"url,omitempty"`
	Name  string  `yaml:"name,omitempty" json:"name,omitempty"`
	Size  int64   `yaml:"size,omitempty" json:"size,omitempty"`
}

// Widget converts the spec into a domain widget.
func (s WidgetSpec) Widget() domain.Widget {
	var p domain.Payload
	switch domain.Kind(s.Kind) {
	case domain.KindNote:
		p = domain.NotePayload{Title: s.Title, Body: s.Body}
	case domain.KindLink:
		p = domain.LinkPayload{URL: s.URL, Title: s.Title}
	case domain.KindFile:
		p = domain.FilePayload{Name: s.Name, Size: s.Size}
	default:
		p = domain.TextPayload{Text: s.Text}
	}
	w := domain.New(p, vector.Pt{X: s.X, Y: s.Y})
	if s.ID != "" {
		w.ID = s.ID
	}
	w.Size = vector.Size{W: s.W, H: s.H}
	return w
}

// File is a dropped file in a file_drop step.
type File struct {
	Name string `yaml:"name" json:"name"`
	Size int64  `yaml:"size,omitempty" json:"size,omitempty"`
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
}

// Step is one input event. Coordinates are screen space unless noted.
type Step struct {
	Op        Op      `yaml:"op" json:"op"`
	X         float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y         float64 `yaml:"y,omitempty" json:"y,omitempty"`
	X2        float64 `yaml:"x2,omitempty" json:"x2,omitempty"`
	Y2        float64 `yaml:"y2,omitempty" json:"y2,omitempty"`
	W         float64 `yaml:"w,omitempty" json:"w,omitempty"`
	H         float64 `yaml:"h,omitempty" json:"h,omitempty"`
	DX        float64 `yaml:"dx,omitempty" json:"dx,omitempty"`
	DY        float64 `yaml:"dy,omitempty" json:"dy,omitempty"`
	Precision bool    `yaml:"precision,omitempty" json:"precision,omitempty"`
	Chord     string  `yaml:"chord,omitempty" json:"chord,omitempty"`
	Files     []File  `yaml:"files,omitempty" json:"files,omitempty"`
	URL       string  `yaml:"url,omitempty" json:"url,omitempty"`
	Kind      string  `yaml:"kind,omitempty" json:"kind,omitempty"`
	// Text replaces the label of the widget picked by an update step.
	Text string `yaml:"text,omitempty" json:"text,omitempty"`
	// Widget indexes the widget list for move and update steps; X/Y are then canvas
	// coordinates.
	Widget *int   `yaml:"widget,omitempty" json:"widget,omitempty"`
	Action string `yaml:"action,omitempty" json:"action,omitempty"`
	Focus  bool   `yaml:"focus,omitempty" json:"focus,omitempty"`
	// Count and Selected are checked by expect steps.
	Count    *int `yaml:"count,omitempty" json:"count,omitempty"`
	Selected *int `yaml:"selected,omitempty" json:"selected,omitempty"`
}

func (s Step) pt() vector.Pt  { return vector.Pt{X: s.X, Y: s.Y} }
func (s Step) pt2() vector.Pt { return vector.Pt{X: s.X2, Y: s.Y2} }

// Error is a validation or execution error with position context. Step is 1-based;
// zero means the error concerns the document as a whole.
type Error struct {
	Step    int
	Field   string
	Message string
}

func (e Error) Error() string {
	switch {
	case e.Step > 0 && e.Field != "":
		return fmt.Sprintf("step %d: %s: %s", e.Step, e.Field, e.Message)
	case e.Step > 0:
		return fmt.Sprintf("step %d: %s", e.Step, e.Message)
	case e.Field != "":
		return e.Field + ": " + e.Message
	}
	return e.Message
}
