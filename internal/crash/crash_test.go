/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package crash

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteReportCreatesFileInTemp(t *testing.T) {
	path, err := writeReport(Target{}, "boom", []byte("stacktrace"), "")
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(path) })
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "Spatial Canvas Crash Report") {
		t.Fatalf("report header missing")
	}
	if !strings.Contains(s, "Panic: boom") {
		t.Fatalf("panic content missing: %s", s)
	}
	if strings.Contains(s, "Snapshot:") {
		t.Fatalf("no snapshot line expected: %s", s)
	}
}

func TestWriteReportInTargetDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "crashes")
	path, err := writeReport(Target{Dir: dir, Source: "demo.yaml"}, "kaboom", []byte("stack"), "")
	if err != nil {
		t.Fatalf("writeReport error: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected crash report under %s, got %s", dir, path)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "Source: demo.yaml") {
		t.Fatalf("source missing: %s", b)
	}
}

func TestWriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	p, err := writeSnapshot(Target{Dir: dir, Snapshot: func() ([]byte, error) { return []byte(`{"widgets":[]}`), nil }})
	if err != nil {
		t.Fatalf("writeSnapshot: %v", err)
	}
	if b, _ := os.ReadFile(p); string(b) != `{"widgets":[]}` {
		t.Fatalf("snapshot = %s", b)
	}

	boom := errors.New("boom")
	if _, err := writeSnapshot(Target{Dir: dir, Snapshot: func() ([]byte, error) { return nil, boom }}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if _, err := writeSnapshot(Target{Dir: dir, Snapshot: func() ([]byte, error) { panic("nested") }}); err == nil {
		t.Fatalf("panicking provider must return an error")
	}
}
