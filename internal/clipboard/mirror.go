/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
// Package clipboard mirrors copied widgets into the OS clipboard as JSON so they can
// be pasted into other applications or another canvas session.
package clipboard

import (
	"encoding/json"
	"errors"
	"fmt"

	osclip "github.com/atotto/clipboard"

	"spatialcanvas/internal/domain"
)

// Format tags the JSON envelope so foreign clipboard text is never mistaken for widgets.
const Format = "spatialcanvas/widgets@1"

var ErrNotWidgets = errors.New("clipboard does not hold canvas widgets")

type envelope struct {
	Format  string          `json:"format"`
	Widgets []domain.Widget `json:"widgets"`
}

// System writes to the OS clipboard. The write and read functions are swappable for tests
// and headless hosts.
type System struct {
	write func(string) error
	read  func() (string, error)
}

// NewSystem returns a mirror backed by the OS clipboard.
func NewSystem() *System {
	return &System{write: osclip.WriteAll, read: osclip.ReadAll}
}

// Available reports whether the OS clipboard can be used on this machine.
func Available() bool { return !osclip.Unsupported }

// Encode renders ws in the mirror format.
func Encode(ws []domain.Widget) (string, error) {
	b, err := json.Marshal(envelope{Format: Format, Widgets: ws})
	if err != nil {
		return "", fmt.Errorf("encode widgets: %w", err)
	}
	return string(b), nil
}

// Decode parses text produced by Encode.
func Decode(text string) ([]domain.Widget, error) {
	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil || env.Format != Format {
		return nil, ErrNotWidgets
	}
	return env.Widgets, nil
}

// WriteWidgets places ws on the clipboard.
func (s *System) WriteWidgets(ws []domain.Widget) error {
	text, err := Encode(ws)
	if err != nil {
		return err
	}
	if err := s.write(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// ReadWidgets reads widgets previously mirrored to the clipboard.
func (s *System) ReadWidgets() ([]domain.Widget, error) {
	text, err := s.read()
	if err != nil {
		return nil, fmt.Errorf("read clipboard: %w", err)
	}
	return Decode(text)
}
