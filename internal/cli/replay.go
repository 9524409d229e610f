/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"spatialcanvas/internal/app"
	"spatialcanvas/internal/script"
)

type replayOptions struct {
	JSON    bool
	Trace   bool
	Details bool
}

func addReplay(topLevel *cobra.Command, a *App) {
	ro := &replayOptions{}
	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Run a replay script and print the resulting canvas.",
		Example: `
canvasctl replay testdata/drop.yaml
canvasctl replay session.yaml --json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, problems, err := script.ParseFile(args[0])
			if err != nil {
				for _, p := range problems {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "  "+p.Error())
				}
				return err
			}
			a.crash.Source = args[0]
			r := script.NewRunner(a.loopOptions())
			r.StepHook = func(i int, st script.Step, lp *app.Loop) {
				a.loop = lp
				if ro.Trace {
					a.log.Info("step", slog.Int("n", i+1), slog.String("op", string(st.Op)), slog.Int("widgets", lp.Engine().Len()))
				}
			}
			lp, err := r.Run(cmd.Context(), s)
			a.loop = lp
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if ro.JSON {
				return writeJSON(out, lp.Engine().Document())
			}
			e := lp.Engine()
			entries, idx := e.History().Stats()
			vp := e.Viewport()
			heading(out, "Canvas")
			_, _ = fmt.Fprintf(out, "widgets: %d  selected: %d  history: %d/%d  zoom: %.2f\n\n",
				e.Len(), len(e.Selection()), idx+1, entries, vp.Zoom)
			_, _ = fmt.Fprintln(out, widgetTable(e.Widgets()))
			if ro.Details {
				_, _ = fmt.Fprintln(out)
				heading(out, "Drop zones")
				_, _ = fmt.Fprintln(out, zoneTable(lp.Manager().Zones()))
				_, _ = fmt.Fprintln(out)
				heading(out, "History")
				_, _ = fmt.Fprintln(out, historyTable(e.History().Snapshots(), idx))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&ro.JSON, "json", false, "print the canvas document as JSON")
	cmd.Flags().BoolVar(&ro.Trace, "trace", false, "log every step")
	cmd.Flags().BoolVar(&ro.Details, "details", false, "also print drop zones and the undo history")
	topLevel.AddCommand(cmd)
}
