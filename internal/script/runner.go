/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spatialcanvas/internal/app"
	"spatialcanvas/internal/canvas"
	"spatialcanvas/internal/domain"
	"spatialcanvas/internal/ingest"
	"spatialcanvas/internal/keymap"
	"spatialcanvas/internal/log"
	"spatialcanvas/internal/vector"
	"spatialcanvas/internal/viewport"
)

// ErrExpectation is wrapped when an expect step does not hold.
var ErrExpectation = errors.New("expectation failed")

// DefaultWindow is used when a script does not set one.
var DefaultWindow = vector.Size{W: 1280, H: 800}

// Runner executes scripts against a fresh app loop.
type Runner struct {
	Options app.Options
	// StepHook runs after every step; used by the CLI for tracing.
	StepHook func(i int, s Step, lp *app.Loop)
	log      *slog.Logger
}

// NewRunner returns a runner that builds loops from opts.
func NewRunner(opts app.Options) *Runner {
	return &Runner{Options: opts, log: log.OrNop(opts.Logger).With(slog.String("component", "script"))}
}

// Run executes s and returns the loop in its final state. The loop is returned even
// when a step fails so callers can inspect how far it got.
func (r *Runner) Run(ctx context.Context, s Script) (*app.Loop, error) {
	opts := r.Options
	if win := (vector.Size{W: s.Window.W, H: s.Window.H}); !win.IsZero() {
		opts.Window = win
	}
	if opts.Window.IsZero() {
		opts.Window = DefaultWindow
	}
	initial := make([]domain.Widget, 0, len(s.Widgets))
	for _, ws := range s.Widgets {
		initial = append(initial, ws.Widget())
	}
	lp := app.New(opts, initial...)
	if s.Globe != nil {
		lp.SetGlobeBounds(vector.R(s.Globe.X, s.Globe.Y, s.Globe.W, s.Globe.H))
	}
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return lp, fmt.Errorf("step %d: %w", i+1, err)
		}
		if err := r.step(lp, st); err != nil {
			return lp, fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
		}
		if r.StepHook != nil {
			r.StepHook(i, st, lp)
		}
	}
	lp.Frame()
	log.OrNop(r.log).Debug("script finished", slog.Int("steps", len(s.Steps)), slog.Int("widgets", lp.Engine().Len()))
	return lp, nil
}

func (r *Runner) step(lp *app.Loop, st Step) error {
	e := lp.Engine()
	files := []string{ingest.TypeFiles}
	switch st.Op {
	case OpPointerDown, OpDragStart:
		lp.PointerDown(st.pt())
	case OpPointerMove:
		lp.PointerMove(st.pt())
	case OpPointerUp:
		lp.PointerUp(st.pt())
	case OpFrame:
		lp.Frame()
	case OpFileEnter:
		lp.DragEvent(ingest.Event{Type: ingest.Enter, Position: st.pt(), Types: files})
	case OpFileLeave:
		lp.DragEvent(ingest.Event{Type: ingest.Leave, Position: st.pt(), Types: files})
	case OpFileOver:
		lp.DragEvent(ingest.Event{Type: ingest.Over, Position: st.pt(), Types: files})
	case OpFileDrop:
		fh := make([]ingest.FileHandle, 0, len(st.Files))
		for _, f := range st.Files {
			fh = append(fh, ingest.FileHandle{Name: f.Name, Size: f.Size, Type: f.Type})
		}
		lp.DragEvent(ingest.Event{Type: ingest.Drop, Position: st.pt(), Types: files, Files: fh})
	case OpURLOver:
		lp.DragEvent(ingest.Event{
			Type:     ingest.Over,
			Position: st.pt(),
			Types:    []string{ingest.TypeURIList},
			Data:     map[string]string{ingest.TypeURIList: st.URL},
		})
	case OpURLDrop:
		lp.DragEvent(ingest.Event{Type: ingest.Drop, Position: st.pt(), Types: []string{ingest.TypeURIList}})
	case OpKey:
		c, err := keymap.ParseChord(st.Chord)
		if err != nil {
			return err
		}
		lp.Key(keymap.KeyEvent{Key: c.Key, Ctrl: c.Mod, Shift: c.Shift, Alt: c.Alt})
	case OpMarquee:
		e.MarqueeSelect(st.pt(), st.pt2())
	case OpMove:
		w, err := pick(e, st)
		if err != nil {
			return err
		}
		e.MoveWidgets(canvas.PositionChange{ID: w.ID, Position: st.pt()})
		e.Frame()
	case OpResize:
		lp.Resize(vector.Size{W: st.W, H: st.H})
	case OpWheel:
		lp.Wheel(viewport.WheelEvent{DeltaX: st.DX, DeltaY: st.DY, Position: st.pt(), Precision: st.Precision})
	case OpAdd:
		if _, err := e.AddFromCatalog(domain.Kind(st.Kind), st.pt()); err != nil {
			return err
		}
	case OpUpdate:
		w, err := pick(e, st)
		if err != nil {
			return err
		}
		e.UpdateWidget(w.ID, func(w domain.Widget) domain.Widget {
			return w.WithPayload(relabel(w.Payload, st.Text))
		})
	case OpMenu:
		m := e.ContextMenu(st.pt())
		if st.Action == "" {
			return nil
		}
		for _, it := range m.Items {
			if string(it.Action) == st.Action {
				if it.Enabled {
					e.Invoke(it.Action)
				}
				return nil
			}
		}
		return fmt.Errorf("menu has no %q entry", st.Action)
	case OpTextFocus:
		e.SetTextFocus(st.Focus)
	case OpExpect:
		return expect(lp, st)
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

func expect(lp *app.Loop, st Step) error {
	e := lp.Engine()
	if st.Count != nil && e.Len() != *st.Count {
		return fmt.Errorf("%w: %d widgets, want %d", ErrExpectation, e.Len(), *st.Count)
	}
	if st.Selected != nil && len(e.Selection()) != *st.Selected {
		return fmt.Errorf("%w: %d selected, want %d", ErrExpectation, len(e.Selection()), *st.Selected)
	}
	if st.Kind != "" {
		ws := e.Widgets()
		if len(ws) == 0 || string(ws[len(ws)-1].Kind()) != st.Kind {
			return fmt.Errorf("%w: last widget is not %q", ErrExpectation, st.Kind)
		}
	}
	return nil
}

// pick returns the widget a move or update step addresses by index.
func pick(e *canvas.Engine, st Step) (domain.Widget, error) {
	ws := e.Widgets()
	if st.Widget == nil || *st.Widget < 0 || *st.Widget >= len(ws) {
		return domain.Widget{}, fmt.Errorf("no widget at that index (have %d)", len(ws))
	}
	return ws[*st.Widget], nil
}

// relabel sets the visible text of a payload: the body text, a note or link title, or
// a file name.
func relabel(p domain.Payload, text string) domain.Payload {
	switch v := p.(type) {
	case domain.NotePayload:
		v.Title = text
		return v
	case domain.LinkPayload:
		v.Title = text
		return v
	case domain.FilePayload:
		v.Name = text
		return v
	}
	return domain.TextPayload{Text: text}
}
