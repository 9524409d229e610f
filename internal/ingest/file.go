/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package ingest

import (
	"log/slog"

	"spatialcanvas/internal/dragdrop"
	"spatialcanvas/internal/log"
	"spatialcanvas/internal/vector"
)

// cascade offsets each extra file of a multi-file drop so the widgets do not stack exactly.
const cascade = 24

// FileOptions configures the file ingestor.
type FileOptions struct {
	// PlaceholderName labels the item until real metadata arrives on drop.
	PlaceholderName string
	// DefaultZone receives drops released outside every registered zone.
	DefaultZone string
}

// FileIngestor turns OS file drags into drag sessions. Enter/leave fire per nested
// element, so the session is only cleared when the enter count returns to zero.
type FileIngestor struct {
	mgr    *dragdrop.Manager
	opts   FileOptions
	log    *slog.Logger
	depth  int
	active bool
}

func NewFileIngestor(mgr *dragdrop.Manager, opts FileOptions, l *slog.Logger) *FileIngestor {
	if opts.PlaceholderName == "" {
		opts.PlaceholderName = "Dropped file"
	}
	if opts.DefaultZone == "" {
		opts.DefaultZone = "canvas"
	}
	return &FileIngestor{mgr: mgr, opts: opts, log: log.OrNop(l)}
}

// Active reports whether the ingestor owns a session.
func (f *FileIngestor) Active() bool { return f.active }

// Handle processes ev and reports whether it was consumed.
func (f *FileIngestor) Handle(ev Event) bool {
	switch ev.Type {
	case Enter:
		if !ev.Has(TypeFiles) {
			return false
		}
		f.depth++
		if f.depth == 1 {
			f.active = true
			f.mgr.Start(dragdrop.DragItem{
				Kind:     dragdrop.KindFile,
				Name:     f.opts.PlaceholderName,
				Position: ev.Position,
			})
		}
		return true
	case Leave:
		if f.depth == 0 {
			return false
		}
		f.depth--
		if f.depth == 0 && f.active {
			f.active = false
			f.mgr.End()
		}
		return true
	case Over:
		if !f.active {
			return false
		}
		f.mgr.PointerMove(ev.Position)
		return true
	case Drop:
		return f.drop(ev)
	}
	return false
}

func (f *FileIngestor) drop(ev Event) bool {
	if !f.active {
		return false
	}
	f.active = false
	f.depth = 0
	f.mgr.PointerMove(ev.Position)
	if len(ev.Files) == 0 {
		f.log.Debug("file drop without files", slog.Int("types", len(ev.Types)))
		f.mgr.End()
		return true
	}
	zone := f.mgr.State().Zone
	if zone == "" {
		zone = f.opts.DefaultZone
	}
	for i, fh := range ev.Files {
		pos := ev.Position.Add(vector.Pt{X: float64(i * cascade), Y: float64(i * cascade)})
		if i > 0 {
			f.mgr.Start(dragdrop.DragItem{Kind: dragdrop.KindFile, Position: pos})
		}
		f.mgr.UpdateItem(fileMeta(fh, pos))
		f.mgr.HandleDrop(zone)
	}
	f.log.Debug("files dropped", slog.Int("count", len(ev.Files)), slog.String("zone", zone))
	return true
}

func fileMeta(fh FileHandle, pos vector.Pt) dragdrop.ItemPatch {
	kind := dragdrop.KindFile
	name := fh.Name
	return dragdrop.ItemPatch{
		Kind:     &kind,
		Name:     &name,
		Position: &pos,
		Payload: dragdrop.FilePayload{
			Size:     fh.Size,
			MIMEType: DetectMIME(fh),
			Data:     fh.Data,
		},
	}
}
