/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
// Package cli holds the canvasctl commands.
package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"spatialcanvas/internal/app"
	"spatialcanvas/internal/clipboard"
	"spatialcanvas/internal/config"
	"spatialcanvas/internal/crash"
	applog "spatialcanvas/internal/log"
)

// App is the state shared by every command of one invocation.
type App struct {
	ConfigFile string
	CrashDir   string
	LogLevel   string

	cfg   config.AppConfig
	log   *slog.Logger
	loop  *app.Loop
	crash crash.Target
}

// NewApp returns an App with defaults loaded, so commands work even if the
// persistent pre-run is skipped.
func NewApp() *App {
	a := &App{cfg: config.Defaults(), log: applog.Nop()}
	a.crash.Snapshot = func() ([]byte, error) {
		if a.loop == nil {
			return nil, errors.New("no canvas")
		}
		return a.loop.Engine().SnapshotJSON()
	}
	return a
}

// Config is the effective configuration.
func (a *App) Config() config.AppConfig { return a.cfg }

// CrashTarget is filled in as commands run; the snapshot comes from whatever canvas
// is live when a panic happens.
func (a *App) CrashTarget() *crash.Target { return &a.crash }

// setup loads the config file and initialises logging from it.
func (a *App) setup(stderr io.Writer) error {
	a.crash.Dir = a.CrashDir
	var err error
	if a.ConfigFile != "" {
		a.cfg, err = config.LoadFile(a.ConfigFile)
	} else {
		a.cfg, err = config.Load()
	}
	opts := a.cfg.Logging.Options()
	if a.LogLevel != "" {
		opts.Level = a.LogLevel
	}
	opts.Console = stderr
	a.log = applog.Init(opts)
	if err != nil {
		a.log.Warn("config not loaded, using defaults", slog.Any("err", err))
	}
	return nil
}

// loopOptions builds app options from the effective config.
func (a *App) loopOptions() app.Options {
	opts := app.Options{Config: a.cfg, Logger: a.log}
	if a.cfg.Clipboard.SystemMirror {
		if clipboard.Available() {
			opts.Mirror = clipboard.NewSystem()
		} else {
			a.log.Warn("system clipboard unavailable, mirror disabled")
		}
	}
	return opts
}

// New builds the canvasctl command tree.
func New(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "canvasctl",
		Short:         "Drive the spatial canvas from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&a.ConfigFile, "config", "", "config file (default is the per-user config.yaml)")
	cmd.PersistentFlags().StringVar(&a.LogLevel, "log-level", "", "override the configured log level")
	cmd.PersistentFlags().StringVar(&a.CrashDir, "crash-dir", "", "directory for crash reports (default is the temp dir)")

	addReplay(cmd, a)
	addWatch(cmd, a)
	addKeys(cmd, a)
	addConfig(cmd, a)
	addVersion(cmd)
	return cmd
}
