/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package ingest

import (
	"bufio"
	"log/slog"
	"strings"

	"github.com/fredbi/uri"

	"spatialcanvas/internal/dragdrop"
	"spatialcanvas/internal/log"
)

// URLIngestor turns URI-list drags into "url" sessions. The hovering zone decides what a
// release does; the ingestor only releases the pointer and closes the session.
type URLIngestor struct {
	mgr    *dragdrop.Manager
	log    *slog.Logger
	active bool
}

func NewURLIngestor(mgr *dragdrop.Manager, l *slog.Logger) *URLIngestor {
	return &URLIngestor{mgr: mgr, log: log.OrNop(l)}
}

// Active reports whether the ingestor owns a session.
func (u *URLIngestor) Active() bool { return u.active }

// Handle processes ev and reports whether it was consumed.
func (u *URLIngestor) Handle(ev Event) bool {
	switch ev.Type {
	case Over:
		if !ev.Has(TypeURIList) {
			return false
		}
		raw, ok := FirstURL(ev.Data[TypeURIList])
		if !ok {
			// Many hosts hide the data until drop; keep an existing session alive.
			if u.active {
				u.mgr.PointerMove(ev.Position)
				return true
			}
			u.log.Debug("uri-list without a usable url")
			return false
		}
		kind := dragdrop.KindURL
		patch := dragdrop.ItemPatch{Kind: &kind, Name: &raw, Payload: dragdrop.URLPayload{URL: raw}}
		if !u.active || !u.mgr.Dragging() {
			u.active = true
			u.mgr.Start(dragdrop.DragItem{Kind: kind, Name: raw, Payload: dragdrop.URLPayload{URL: raw}, Position: ev.Position})
		} else {
			u.mgr.UpdateItem(patch)
		}
		u.mgr.PointerMove(ev.Position)
		return true
	case Leave:
		return u.active
	case Drop:
		if !u.active {
			return false
		}
		u.active = false
		u.mgr.PointerUp(ev.Position)
		u.mgr.End()
		return true
	}
	return false
}

// FirstURL returns the first non-comment entry of a text/uri-list body that parses as
// an absolute URI with a scheme.
func FirstURL(list string) (string, bool) {
	sc := bufio.NewScanner(strings.NewReader(list))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if u, err := uri.Parse(line); err == nil && u.Scheme() != "" {
			return line, true
		}
	}
	return "", false
}
