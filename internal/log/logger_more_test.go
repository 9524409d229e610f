/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in).Level(); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SPC_LOG_LEVEL", "debug")
	t.Setenv("SPC_LOG_FORMAT", "json")
	t.Setenv("SPC_LOG_SOURCE", "TRUE")
	t.Setenv("SPC_LOG_FILE", "/tmp/x.log")
	o := FromEnv()
	if o.Level != "debug" || o.Format != "json" || !o.AddSource || o.File != "/tmp/x.log" {
		t.Fatalf("unexpected options: %+v", o)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("SPC_LOG_LEVEL", "")
	t.Setenv("SPC_LOG_FORMAT", "")
	t.Setenv("SPC_LOG_SOURCE", "")
	t.Setenv("SPC_LOG_FILE", "")
	o := FromEnv()
	if o.Level != "info" || o.Format != "console" || o.AddSource || o.File != "" {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}

func TestPrettyTextHandlerFormatsAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelDebug}, w: &buf}
	l := slog.New(h).With("k", "v").WithGroup("grp")
	l.Debug("moved", slog.Int("n", 3), slog.Bool("ok", true), slog.Float64("z", 1.5))

	out := buf.String()
	for _, want := range []string{"DBG", "moved", "k=v", "grp.n=3", "grp.ok=true", "grp.z=1.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output %q missing %q", out, want)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Fatalf("record should end with newline")
	}
}

func TestPrettyTextHandlerAddSource(t *testing.T) {
	var buf bytes.Buffer
	slog.New(&prettyTextHandler{opts: prettyOpts{Level: slog.LevelInfo, AddSource: true}, w: &buf}).Info("here")
	if out := buf.String(); !strings.Contains(out, "src=") || !strings.Contains(out, "logger_more_test.go:") {
		t.Fatalf("output %q lacks the call site", out)
	}

	buf.Reset()
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "no pc", 0)
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelInfo, AddSource: true}, w: &buf}
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "src=") {
		t.Fatalf("record without pc must not print a source: %q", buf.String())
	}
}

func TestPrettyTextHandlerLevelFilter(t *testing.T) {
	h := &prettyTextHandler{opts: prettyOpts{Level: slog.LevelWarn}, w: &bytes.Buffer{}}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatalf("info should be filtered at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatalf("error should pass at warn level")
	}
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	m := multiHandler(
		&prettyTextHandler{opts: prettyOpts{Level: slog.LevelInfo}, w: &a},
		&prettyTextHandler{opts: prettyOpts{Level: slog.LevelError}, w: &b},
	)
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "only-a", 0)
	if err := m.Handle(context.Background(), r); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if !strings.Contains(a.String(), "only-a") {
		t.Fatalf("first handler missed the record")
	}
	if b.Len() != 0 {
		t.Fatalf("second handler should filter info, got %q", b.String())
	}
}
