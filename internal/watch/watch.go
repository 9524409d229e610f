/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
// Package watch turns files appearing in a directory into canvas drops.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"spatialcanvas/internal/app"
	"spatialcanvas/internal/domain"
	"spatialcanvas/internal/ingest"
	"spatialcanvas/internal/log"
	"spatialcanvas/internal/vector"
)

// Settle is how long a path must stay quiet before it is dropped. Editors and copy
// tools usually create a file and then write it in several chunks.
const Settle = 250 * time.Millisecond

// Watcher reports settled files created in one directory.
type Watcher struct {
	dir    string
	fw     *fsnotify.Watcher
	settle time.Duration
	log    *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
	seen   map[string]bool
}

// New starts watching dir. Close releases the OS watch.
func New(dir string, l *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("watch %q: %w", dir, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(abs); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %q: %w", abs, err)
	}
	return &Watcher{
		dir:    abs,
		fw:     fw,
		settle: Settle,
		log:    log.OrNop(l).With(slog.String("component", "watch")),
		timers: map[string]*time.Timer{},
		seen:   map[string]bool{},
	}, nil
}

// Dir is the absolute watched directory.
func (w *Watcher) Dir() string { return w.dir }

// Close stops the watch.
func (w *Watcher) Close() error { return w.fw.Close() }

// Files delivers each new file once, after it has settled. The channel closes when ctx
// ends or the watcher is closed.
func (w *Watcher) Files(ctx context.Context) <-chan ingest.FileHandle {
	out := make(chan ingest.FileHandle)
	ready := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(out)
		defer close(done)
		defer w.stopTimers()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
					continue
				}
				if strings.HasPrefix(filepath.Base(ev.Name), ".") {
					continue
				}
				w.arm(ev.Name, ready, done)
			case p := <-ready:
				fh, err := ingest.FileFromPath(p)
				if err != nil {
					w.log.Debug("skip path", slog.String("path", p), slog.Any("err", err))
					continue
				}
				select {
				case out <- fh:
				case <-ctx.Done():
					return
				}
			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				w.log.Warn("watch error", slog.Any("err", err))
			}
		}
	}()
	return out
}

func (w *Watcher) arm(path string, ready chan<- string, done <-chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.seen[path] {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.seen[path] = true
		w.mu.Unlock()
		select {
		case ready <- path:
		case <-done:
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for p, t := range w.timers {
		t.Stop()
		delete(w.timers, p)
	}
}

// Drop replays the host event sequence for dropping files at the centre of the
// loop's window and returns the widgets it created.
func Drop(lp *app.Loop, files ...ingest.FileHandle) []domain.Widget {
	win := lp.Engine().Window()
	centre := vector.Pt{X: win.W / 2, Y: win.H / 2}
	types := []string{ingest.TypeFiles}
	before := lp.Engine().Len()

	lp.DragEvent(ingest.Event{Type: ingest.Enter, Position: centre, Types: types})
	lp.DragEvent(ingest.Event{Type: ingest.Over, Position: centre, Types: types})
	lp.Frame()
	lp.DragEvent(ingest.Event{Type: ingest.Drop, Position: centre, Types: types, Files: files})

	ws := lp.Engine().Widgets()
	if len(ws) <= before {
		return nil
	}
	return ws[before:]
}
