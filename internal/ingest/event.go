/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
// Package ingest bridges OS drag-and-drop events into drag sessions.
package ingest

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/wailsapp/mimetype"

	"spatialcanvas/internal/vector"
)

// EventType is the phase of an OS drag event.
type EventType string

const (
	Enter EventType = "enter"
	Over  EventType = "over"
	Leave EventType = "leave"
	Drop  EventType = "drop"
)

// Payload type tags advertised by the OS.
const (
	TypeFiles   = "Files"
	TypeURIList = "text/uri-list"
)

// FileHandle is a dropped file as exposed by the host. Data may be nil when only
// metadata is available; Path is informational.
type FileHandle struct {
	Name string
	Size int64
	Type string
	Path string
	Data []byte
}

// Event is one OS drag event in screen coordinates.
type Event struct {
	Type     EventType
	Position vector.Pt
	Types    []string
	Files    []FileHandle
	Data     map[string]string
}

// Has reports whether the event advertises payload type t.
func (e Event) Has(t string) bool {
	for _, x := range e.Types {
		if strings.EqualFold(x, t) {
			return true
		}
	}
	return false
}

const octetStream = "application/octet-stream"

// SniffLimit is how much of a file FileFromPath reads for type detection.
const SniffLimit = 3072

// FileFromPath describes a file on disk the way a host drop would. Data holds at most
// SniffLimit leading bytes.
func FileFromPath(path string) (FileHandle, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileHandle{}, fmt.Errorf("open dropped file: %w", err)
	}
	defer func() { _ = f.Close() }()
	fi, err := f.Stat()
	if err != nil {
		return FileHandle{}, fmt.Errorf("stat dropped file: %w", err)
	}
	if fi.IsDir() {
		return FileHandle{}, fmt.Errorf("%s is a directory", path)
	}
	head, err := io.ReadAll(io.LimitReader(f, SniffLimit))
	if err != nil {
		return FileHandle{}, fmt.Errorf("read dropped file: %w", err)
	}
	return FileHandle{Name: fi.Name(), Size: fi.Size(), Path: path, Data: head}, nil
}

// DetectMIME picks the MIME type for a dropped file: the host's declared type, then
// content sniffing, then the file extension.
func DetectMIME(f FileHandle) string {
	if t := strings.TrimSpace(f.Type); t != "" {
		return t
	}
	if len(f.Data) > 0 {
		if m := mimetype.Detect(f.Data); m != nil && m.String() != octetStream {
			return m.String()
		}
	}
	if ext := filepath.Ext(f.Name); ext != "" {
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
	}
	return octetStream
}
