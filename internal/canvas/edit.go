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

	"spatialcanvas/internal/domain"
	"spatialcanvas/internal/dragdrop"
	"spatialcanvas/internal/vector"
)

// PositionChange moves one widget. Dragging is false on the change that ends a drag.
type PositionChange struct {
	ID       string
	Position vector.Pt
	Dragging bool
}

// MoveWidgets queues position changes; they are applied together on the next Frame.
func (e *Engine) MoveWidgets(changes ...PositionChange) {
	e.pending = append(e.pending, changes...)
}

// Frame applies queued moves as one transition. A batch that finishes a drag records a
// snapshot if the drag moved anything; intermediate positions are never recorded.
// It reports whether anything moved in this frame.
func (e *Engine) Frame() bool {
	if len(e.pending) == 0 {
		return false
	}
	batch := e.pending
	e.pending = nil
	finished := false
	moved := 0
	for _, ch := range batch {
		if !ch.Dragging {
			finished = true
		}
		w, ok := e.widgets.Get(ch.ID)
		if !ok {
			continue
		}
		if w.Position != ch.Position {
			e.widgets.Put(w.WithPosition(ch.Position))
			moved++
		}
	}
	if moved > 0 {
		e.dragDirty = true
	}
	if finished && e.dragDirty {
		e.dragDirty = false
		e.record("move")
	}
	if moved > 0 {
		e.render()
	}
	return moved > 0
}

// Copy stores the selected widgets by value. With an empty selection the clipboard is
// left as it was.
func (e *Engine) Copy() int {
	sel := e.Selection()
	if len(sel) == 0 {
		return 0
	}
	clip := make([]domain.Widget, 0, len(sel))
	for _, id := range sel {
		w, _ := e.widgets.Get(id)
		clip = append(clip, w.Clone().WithSelected(false))
	}
	e.clipboard = clip
	if e.opts.Mirror != nil {
		if err := e.opts.Mirror.WriteWidgets(clip); err != nil {
			e.log.Warn("clipboard mirror failed", slog.Any("err", err))
		}
	}
	return len(clip)
}

// Clipboard returns a copy of the clipboard contents.
func (e *Engine) Clipboard() []domain.Widget {
	out := make([]domain.Widget, len(e.clipboard))
	for i, w := range e.clipboard {
		out[i] = w.Clone()
	}
	return out
}

// Paste inserts clones of the clipboard with fresh ids, each offset by the paste
// offset from its copied original. Only the clones end up selected. It returns the
// new ids.
func (e *Engine) Paste() []string {
	if len(e.clipboard) == 0 {
		return nil
	}
	ids := make([]string, 0, len(e.clipboard))
	e.selected = map[string]bool{}
	for _, w := range e.clipboard {
		c := w.Clone()
		c.ID = domain.NewID()
		c.Position = w.Position.Add(e.opts.PasteOffset)
		e.widgets.Put(c)
		e.selected[c.ID] = true
		ids = append(ids, c.ID)
	}
	e.record("paste")
	e.render()
	return ids
}

// HandleExternalDrop converts a completed drag into a widget at the canvas position of
// screenPos. Files become file widgets; every other kind falls back to a text widget.
func (e *Engine) HandleExternalDrop(item dragdrop.DragItem, screenPos vector.Pt) string {
	pos := e.vp.ToCanvas(screenPos)
	var p domain.Payload
	switch item.Kind {
	case dragdrop.KindFile:
		fp := domain.FilePayload{Name: item.Name}
		if meta, ok := item.Payload.(dragdrop.FilePayload); ok {
			fp.Size = meta.Size
			fp.MIMEType = meta.MIMEType
			fp.Data = meta.Data
		}
		p = fp
	default:
		text := item.Name
		if u, ok := item.Payload.(dragdrop.URLPayload); ok && u.URL != "" {
			text = u.URL
		}
		p = domain.TextPayload{Text: text}
	}
	id := e.AddWidget(domain.New(p, pos))
	e.log.Info("drop imported", slog.String("id", id), slog.String("kind", string(p.Kind())), slog.String("name", item.Name))
	return id
}
