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

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"spatialcanvas/internal/config"
)

func addConfig(topLevel *cobra.Command, a *App) {
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if write {
				path := a.ConfigFile
				var err error
				if path == "" {
					if path, err = config.ConfigPath(); err != nil {
						return err
					}
				}
				if err := config.SaveFile(path, a.cfg); err != nil {
					return err
				}
				a.log.Info("config written")
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "wrote", path)
			}
			b, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "also save the effective configuration to the config file")
	topLevel.AddCommand(cmd)
}
