/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"spatialcanvas/internal/domain"
	"spatialcanvas/internal/dragdrop"
	"spatialcanvas/internal/undo"
)

var bold = color.New(color.Bold).SprintFunc()

func heading(w io.Writer, s string) {
	_, _ = fmt.Fprintln(w, color.New(color.Bold, color.Underline).Sprint(s))
}

// Label is the one-line summary shown for a widget.
func Label(w domain.Widget) string {
	switch p := w.Payload.(type) {
	case domain.TextPayload:
		return p.Text
	case domain.NotePayload:
		return p.Title
	case domain.LinkPayload:
		if p.Title != "" {
			return p.Title + " <" + p.URL + ">"
		}
		return p.URL
	case domain.FilePayload:
		s := p.Name + " (" + p.SizeLabel()
		if p.MIMEType != "" {
			s += ", " + p.MIMEType
		}
		return s + ")"
	}
	return ""
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func widgetTable(ws []domain.Widget) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold("ID"), bold("Kind"), bold("X"), bold("Y"), bold("Sel"), bold("Label"))
	for _, w := range ws {
		sel := ""
		if w.Selected {
			sel = "*"
		}
		tbl.AddRow(shortID(w.ID), string(w.Kind()),
			fmt.Sprintf("%.1f", w.Position.X), fmt.Sprintf("%.1f", w.Position.Y),
			sel, strings.ReplaceAll(Label(w), "\n", " "))
	}
	return tbl
}

func zoneTable(zs []dragdrop.ZoneInfo) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Zone"), bold("Priority"), bold("Bounds"), bold("Active"))
	for _, z := range zs {
		active := ""
		if z.Active {
			active = "*"
		}
		b := z.Bounds
		tbl.AddRow(z.ID, z.Priority, fmt.Sprintf("%.0f,%.0f %.0fx%.0f", b.X, b.Y, b.W, b.H), active)
	}
	return tbl
}

func historyTable(snaps []undo.Snapshot, current int) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("#"), bold("Label"), bold("Widgets"), bold("Recorded"), "")
	for i, s := range snaps {
		mark := ""
		if i == current {
			mark = "<"
		}
		tbl.AddRow(i, s.Label, s.Widgets.Len(), humanize.Time(s.TS), mark)
	}
	return tbl
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
