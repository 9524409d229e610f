/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
// Package crash turns a panic into a report file plus a snapshot of the canvas.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/dustin/go-humanize"

	applog "spatialcanvas/internal/log"
	"spatialcanvas/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// SnapshotFunc returns the serialized canvas document.
type SnapshotFunc func() ([]byte, error)

// Target says where reports go and what to save with them. A nil or zero Target
// writes the report to the temp dir and saves no snapshot. Recover reads the fields
// at panic time, so callers may fill them in after deferring.
type Target struct {
	Dir      string
	Snapshot SnapshotFunc
	// Source names what was running, e.g. a replay script path.
	Source string
}

// Recover captures a panic, logs it with the stack, writes a crash report and a
// document snapshot, then exits with code 2.
//
// Usage: defer crash.Recover(&target)
func Recover(tp *Target) {
	if r := recover(); r != nil {
		var t Target
		if tp != nil {
			t = *tp
		}
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		snapPath := ""
		if t.Snapshot != nil {
			if p, err := writeSnapshot(t); err != nil {
				l.Error("crash snapshot failed", slog.Any("err", err))
			} else {
				snapPath = p
				l.Info("crash snapshot written", slog.String("path", p))
			}
		}
		reportPath, err := writeReport(t, r, stack, snapPath)
		if err != nil {
			l.Error("crash report failed", slog.Any("err", err))
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		exitFn(2)
	}
}

func reportDir(t Target) string {
	if t.Dir == "" {
		return os.TempDir()
	}
	_ = os.MkdirAll(t.Dir, 0o755)
	return t.Dir
}

func stamp() string { return time.Now().Format("20060102-150405") }

// writeSnapshot must not panic itself; a panic inside the snapshot provider is
// reported as an error.
func writeSnapshot(t Target) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("snapshot panicked: %v", r)
		}
	}()
	data, err := t.Snapshot()
	if err != nil {
		return "", err
	}
	path = filepath.Join(reportDir(t), fmt.Sprintf("crash-%s.canvas.json", stamp()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func writeReport(t Target, panicVal any, stack []byte, snapPath string) (string, error) {
	path := filepath.Join(reportDir(t), fmt.Sprintf("crash-%s.log", stamp()))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Spatial Canvas Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if t.Source != "" {
		_, _ = fmt.Fprintf(&buf, "Source: %s\n", t.Source)
	}
	if snapPath != "" {
		size := "?"
		if fi, err := os.Stat(snapPath); err == nil {
			size = humanize.Bytes(uint64(fi.Size()))
		}
		_, _ = fmt.Fprintf(&buf, "Snapshot: %s (%s)\n", snapPath, size)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()
	return path, nil
}
