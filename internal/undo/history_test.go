/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package undo

import (
	"reflect"
	"testing"

	"spatialcanvas/internal/domain"
	"spatialcanvas/internal/vector"
)

func text(id, s string) domain.Widget {
	return domain.Widget{ID: id, Payload: domain.TextPayload{Text: s}}
}

func TestUndoRedoBasic(t *testing.T) {
	h := NewHistory(Config{}, domain.NewCollection())
	h.Record("add a", domain.NewCollection(text("a", "a")))
	h.Record("add b", domain.NewCollection(text("a", "a"), text("b", "b")))

	c, ok := h.Undo()
	if !ok || c.Len() != 1 || !c.Has("a") {
		t.Fatalf("undo expected only 'a', got ok=%v ids=%v", ok, c.IDs())
	}
	c, ok = h.Redo()
	if !ok || c.Len() != 2 {
		t.Fatalf("redo expected two widgets, got ok=%v", ok)
	}
	if _, ok := h.Redo(); ok {
		t.Fatalf("redo past the end must be a no-op")
	}
}

func TestUndoAtStartIsNoop(t *testing.T) {
	h := NewHistory(Config{}, domain.NewCollection(text("seed", "s")))
	if _, ok := h.Undo(); ok {
		t.Fatalf("undo at first entry must be a no-op")
	}
	if n, idx := h.Stats(); n != 1 || idx != 0 {
		t.Fatalf("unexpected stats: n=%d idx=%d", n, idx)
	}
}

func TestRecordTruncatesRedoBranch(t *testing.T) {
	h := NewHistory(Config{}, nil)
	h.Record("1", domain.NewCollection(text("a", "a")))
	h.Record("2", domain.NewCollection(text("a", "a"), text("b", "b")))
	h.Undo()
	h.Record("3", domain.NewCollection(text("a", "a"), text("c", "c")))
	if h.CanRedo() {
		t.Fatalf("redo branch should be gone")
	}
	snaps := h.Snapshots()
	if len(snaps) != 3 || snaps[2].Label != "3" {
		t.Fatalf("unexpected snapshots: %d", len(snaps))
	}
}

func TestLimitDropsOldest(t *testing.T) {
	h := NewHistory(Config{Limit: 3}, nil)
	for i := 0; i < 10; i++ {
		h.Record("step", domain.NewCollection(domain.Widget{ID: "w", Position: vector.Pt{X: float64(i)}}))
	}
	n, idx := h.Stats()
	if n != 3 || idx != 2 {
		t.Fatalf("expected cap of 3 with index 2, got n=%d idx=%d", n, idx)
	}
	oldest := h.Snapshots()[0].Widgets.All()[0]
	if oldest.Position.X != 7 {
		t.Fatalf("expected oldest kept entry to be step 7, got %v", oldest.Position.X)
	}
}

func TestDefaultLimitIsFifty(t *testing.T) {
	h := NewHistory(Config{}, nil)
	for i := 0; i < 80; i++ {
		h.Record("step", domain.NewCollection())
	}
	if n, _ := h.Stats(); n != DefaultLimit {
		t.Fatalf("expected %d entries, got %d", DefaultLimit, n)
	}
}

func TestSnapshotsAreIsolatedFromLiveState(t *testing.T) {
	live := domain.NewCollection(text("a", "before"))
	h := NewHistory(Config{}, nil)
	h.Record("add", live)
	live.Put(text("a", "after"))
	got, _ := h.snaps[h.index].Widgets.Get("a")
	if !reflect.DeepEqual(got.Payload, domain.TextPayload{Text: "before"}) {
		t.Fatalf("history entry mutated through live collection: %+v", got.Payload)
	}
}
