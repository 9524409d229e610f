/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"spatialcanvas/internal/app"
	"spatialcanvas/internal/script"
	"spatialcanvas/internal/watch"
)

type watchOptions struct {
	Limit int
	JSON  bool
}

func addWatch(topLevel *cobra.Command, a *App) {
	wo := &watchOptions{}
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Drop every file created in a directory onto the canvas.",
		Example: `
canvasctl watch ~/Downloads
canvasctl watch inbox --limit 3
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w, err := watch.New(args[0], a.log)
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()

			opts := a.loopOptions()
			opts.Window = script.DefaultWindow
			lp := app.New(opts)
			a.loop = lp
			a.crash.Source = w.Dir()

			out := cmd.OutOrStdout()
			heading(out, "Watching "+w.Dir())
			return runWatch(ctx, w, lp, wo, func(s string) { _, _ = fmt.Fprintln(out, s) }, a.log)
		},
	}
	cmd.Flags().IntVar(&wo.Limit, "limit", 0, "stop after this many files (0 means run until interrupted)")
	cmd.Flags().BoolVar(&wo.JSON, "json", false, "print each new widget as JSON")
	topLevel.AddCommand(cmd)
}

// runWatch is the single owner of lp; the watcher goroutine only hands it file handles.
func runWatch(ctx context.Context, w *watch.Watcher, lp *app.Loop, wo *watchOptions, emit func(string), l *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	n := 0
	for fh := range w.Files(ctx) {
		for _, wd := range watch.Drop(lp, fh) {
			if wo.JSON {
				b, err := wd.MarshalJSON()
				if err != nil {
					return err
				}
				emit(string(b))
			} else {
				emit(fmt.Sprintf("%s  %s  %s", shortID(wd.ID), wd.Kind(), Label(wd)))
			}
			l.Info("file dropped", slog.String("path", fh.Path), slog.String("id", wd.ID))
		}
		n++
		if wo.Limit > 0 && n >= wo.Limit {
			return nil
		}
	}
	return nil
}
