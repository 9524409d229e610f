/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Widget data model for the canvas. A widget's payload is a closed tagged union over
// Kind; each variant carries its own strongly typed fields. Widgets are values: edits
// produce a new Widget that replaces the old entry in a Collection.

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"spatialcanvas/internal/vector"
)

// Kind is the fixed enumeration of widget types.
type Kind string

const (
	KindText Kind = "text"
	KindNote Kind = "note"
	KindLink Kind = "link"
	KindFile Kind = "file"
)

// Kinds lists every supported widget kind in catalog order.
var Kinds = []Kind{KindText, KindNote, KindLink, KindFile}

func (k Kind) Valid() bool { return slices.Contains(Kinds, k) }

// Payload is implemented only by the variant types in this package.
type Payload interface {
	Kind() Kind
	clonePayload() Payload
}

// TextPayload is the generic fallback variant.
type TextPayload struct {
	Text string `json:"text"`
}

// NotePayload is a titled sticky note.
type NotePayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Color string `json:"color,omitempty"`
}

// LinkPayload references an external URL.
type LinkPayload struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// FilePayload describes an imported file. Data is the binary handle and is never serialized.
type FilePayload struct {
	Name     string `json:"fileName"`
	Size     int64  `json:"fileSize"`
	MIMEType string `json:"fileType,omitempty"`
	Data     []byte `json:"-"`
}

func (TextPayload) Kind() Kind { return KindText }
func (NotePayload) Kind() Kind { return KindNote }
func (LinkPayload) Kind() Kind { return KindLink }
func (FilePayload) Kind() Kind { return KindFile }

func (p TextPayload) clonePayload() Payload { return p }
func (p NotePayload) clonePayload() Payload { return p }
func (p LinkPayload) clonePayload() Payload { return p }
func (p FilePayload) clonePayload() Payload {
	if p.Data != nil {
		p.Data = append([]byte(nil), p.Data...)
	}
	return p
}

// SizeLabel renders the file size for display, e.g. "1.0 kB".
func (p FilePayload) SizeLabel() string {
	if p.Size < 0 {
		return "unknown"
	}
	return humanize.Bytes(uint64(p.Size))
}

// DefaultPayload returns the empty variant for k. Unknown kinds fall back to text.
func DefaultPayload(k Kind) Payload {
	switch k {
	case KindNote:
		return NotePayload{Title: "Note"}
	case KindLink:
		return LinkPayload{}
	case KindFile:
		return FilePayload{}
	default:
		return TextPayload{}
	}
}

// Widget is a placed item on the canvas. Position is in canvas space.
// A zero Size means the size is unknown and callers substitute a default.
type Widget struct {
	ID       string
	Position vector.Pt
	Size     vector.Size
	Payload  Payload
	Selected bool
}

// NewID returns a fresh unique widget id.
func NewID() string { return uuid.NewString() }

// New builds a widget with a fresh id.
func New(p Payload, pos vector.Pt) Widget {
	if p == nil {
		p = TextPayload{}
	}
	return Widget{ID: NewID(), Position: pos, Payload: p}
}

// Kind returns the tag of the widget's payload.
func (w Widget) Kind() Kind {
	if w.Payload == nil {
		return KindText
	}
	return w.Payload.Kind()
}

// Bounds returns the canvas-space rectangle, using def when the size is unknown.
func (w Widget) Bounds(def vector.Size) vector.Rect {
	s := w.Size
	if s.IsZero() {
		s = def
	}
	return vector.Rect{X: w.Position.X, Y: w.Position.Y, W: s.W, H: s.H}
}

// Clone returns a deep copy.
func (w Widget) Clone() Widget {
	if w.Payload != nil {
		w.Payload = w.Payload.clonePayload()
	}
	return w
}

func (w Widget) WithPosition(p vector.Pt) Widget {
	w.Position = p
	return w
}

func (w Widget) WithPayload(p Payload) Widget {
	w.Payload = p
	return w
}

func (w Widget) WithSelected(sel bool) Widget {
	w.Selected = sel
	return w
}

type widgetJSON struct {
	ID       string          `json:"id"`
	Kind     Kind            `json:"kind"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	W        float64         `json:"w,omitempty"`
	H        float64         `json:"h,omitempty"`
	Selected bool            `json:"selected,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

func (w Widget) MarshalJSON() ([]byte, error) {
	p := w.Payload
	if p == nil {
		p = TextPayload{}
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", p.Kind(), err)
	}
	return json.Marshal(widgetJSON{
		ID: w.ID, Kind: p.Kind(),
		X: w.Position.X, Y: w.Position.Y,
		W: w.Size.W, H: w.Size.H,
		Selected: w.Selected,
		Payload:  raw,
	})
}

func (w *Widget) UnmarshalJSON(b []byte) error {
	var in widgetJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	p, err := decodePayload(in.Kind, in.Payload)
	if err != nil {
		return err
	}
	*w = Widget{
		ID:       in.ID,
		Position: vector.Pt{X: in.X, Y: in.Y},
		Size:     vector.Size{W: in.W, H: in.H},
		Payload:  p,
		Selected: in.Selected,
	}
	return nil
}

func decodePayload(k Kind, raw json.RawMessage) (Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return DefaultPayload(k), nil
	}
	var err error
	switch k {
	case KindNote:
		var p NotePayload
		err = json.Unmarshal(raw, &p)
		return p, err
	case KindLink:
		var p LinkPayload
		err = json.Unmarshal(raw, &p)
		return p, err
	case KindFile:
		var p FilePayload
		err = json.Unmarshal(raw, &p)
		return p, err
	case KindText, "":
		var p TextPayload
		err = json.Unmarshal(raw, &p)
		return p, err
	default:
		return nil, fmt.Errorf("unknown widget kind %q", k)
	}
}
