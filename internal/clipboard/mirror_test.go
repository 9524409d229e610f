/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package clipboard

import (
	"errors"
	"testing"

	"spatialcanvas/internal/domain"
	"spatialcanvas/internal/vector"
)

func memory() (*System, *string) {
	var buf string
	return &System{
		write: func(s string) error { buf = s; return nil },
		read:  func() (string, error) { return buf, nil },
	}, &buf
}

func TestWriteThenReadWidgets(t *testing.T) {
	s, _ := memory()
	in := []domain.Widget{
		domain.New(domain.NotePayload{Title: "T", Body: "B"}, vector.Pt{X: 1, Y: 2}),
		domain.New(domain.FilePayload{Name: "a.pdf", Size: 3, Data: []byte("xyz")}, vector.Pt{}),
	}
	if err := s.WriteWidgets(in); err != nil {
		t.Fatalf("WriteWidgets: %v", err)
	}
	out, err := s.ReadWidgets()
	if err != nil {
		t.Fatalf("ReadWidgets: %v", err)
	}
	if len(out) != 2 || out[0].ID != in[0].ID || out[0].Payload != in[0].Payload {
		t.Fatalf("out = %+v", out)
	}
	fp := out[1].Payload.(domain.FilePayload)
	if fp.Name != "a.pdf" || fp.Data != nil {
		t.Fatalf("file payload = %+v (binary data must not be mirrored)", fp)
	}
}

func TestReadForeignText(t *testing.T) {
	s, buf := memory()
	*buf = "just some text"
	if _, err := s.ReadWidgets(); !errors.Is(err, ErrNotWidgets) {
		t.Fatalf("expected ErrNotWidgets, got %v", err)
	}
	*buf = `{"format":"other","widgets":[]}`
	if _, err := s.ReadWidgets(); !errors.Is(err, ErrNotWidgets) {
		t.Fatalf("expected ErrNotWidgets for foreign format, got %v", err)
	}
}

func TestWriteErrorIsWrapped(t *testing.T) {
	boom := errors.New("no display")
	s := &System{write: func(string) error { return boom }}
	if err := s.WriteWidgets(nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
