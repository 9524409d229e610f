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
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"spatialcanvas/internal/keymap"
)

func addKeys(topLevel *cobra.Command, a *App) {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Print the effective keyboard shortcuts.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			km, err := keymap.New(a.cfg.Keymap)
			out := cmd.OutOrStdout()
			heading(out, "Shortcuts")
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold("Action"), bold("Chords"))
			for _, b := range km.Bindings() {
				chords := make([]string, 0, len(b.Chords))
				for _, c := range b.Chords {
					chords = append(chords, c.String())
				}
				tbl.AddRow(string(b.Action), strings.Join(chords, ", "))
			}
			_, _ = fmt.Fprintln(out, tbl)
			if err != nil {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "warning:", err)
			}
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}
