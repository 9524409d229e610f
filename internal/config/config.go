/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"spatialcanvas/internal/log"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int                 `yaml:"config_version"`
	Canvas        CanvasConfig        `yaml:"canvas"`
	DragDrop      DragDropConfig      `yaml:"dragdrop"`
	Keymap        map[string][]string `yaml:"keymap"`
	Clipboard     ClipboardConfig     `yaml:"clipboard"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// Vec is a YAML-friendly 2D value used for offsets and sizes.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type CanvasConfig struct {
	HistoryLimit      int     `yaml:"history_limit"`
	PasteOffset       Vec     `yaml:"paste_offset"`
	DefaultWidgetSize Vec     `yaml:"default_widget_size"`
	MinZoom           float64 `yaml:"min_zoom"`
	MaxZoom           float64 `yaml:"max_zoom"`
	InitialZoom       float64 `yaml:"initial_zoom"`
	ZoomStep          float64 `yaml:"zoom_step"`
	WheelZoomSpeed    float64 `yaml:"wheel_zoom_speed"`
}

type DragDropConfig struct {
	// GlobeInset shrinks the circular drop target's radius.
	GlobeInset      float64 `yaml:"globe_inset"`
	PlaceholderName string  `yaml:"placeholder_name"`
}

type ClipboardConfig struct {
	// SystemMirror copies the canvas clipboard into the OS clipboard as JSON.
	SystemMirror bool `yaml:"system_mirror"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Options converts the logging section into logger options.
func (l LoggingConfig) Options() log.Options {
	return log.Options{Level: l.Level, Format: l.Format, AddSource: l.Source, File: l.File}
}

// DefaultKeymap binds canvas actions to chords; "mod" is Ctrl, or Cmd on macOS.
func DefaultKeymap() map[string][]string {
	return map[string][]string{
		"undo":       {"mod+z"},
		"redo":       {"mod+shift+z", "mod+y"},
		"copy":       {"mod+c"},
		"paste":      {"mod+v"},
		"select_all": {"mod+a"},
		"delete":     {"delete", "backspace"},
		"zoom_in":    {"mod+=", "mod+plus"},
		"zoom_out":   {"mod+-"},
	}
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Canvas: CanvasConfig{
			HistoryLimit:      50,
			PasteOffset:       Vec{X: 20, Y: 20},
			DefaultWidgetSize: Vec{X: 200, Y: 120},
			MinZoom:           0.1,
			MaxZoom:           4,
			InitialZoom:       1,
			ZoomStep:          1.2,
			WheelZoomSpeed:    0.01,
		},
		DragDrop:  DragDropConfig{GlobeInset: 8, PlaceholderName: "Dropped file"},
		Keymap:    DefaultKeymap(),
		Clipboard: ClipboardConfig{SystemMirror: false},
		Logging:   LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvHistoryLimit    = "SPC_HISTORY_LIMIT"
	EnvInitialZoom     = "SPC_INITIAL_ZOOM"
	EnvClipboardMirror = "SPC_CLIPBOARD_MIRROR"
	EnvPlaceholderName = "SPC_PLACEHOLDER_NAME"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "SPC_LOG_LEVEL"
	EnvLogFormat = "SPC_LOG_FORMAT"
	EnvLogSource = "SPC_LOG_SOURCE"
	EnvLogFile   = "SPC_LOG_FILE"
)

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "SpatialCanvas")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "SpatialCanvas")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "spatialcanvas")
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config", "spatialcanvas")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile is Load for an explicit path. A missing file is not an error; a malformed one is.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnvOverrides(&cfg)
	cfg.normalize()
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg to path, creating parent directories.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	c, s := &dst.Canvas, src.Canvas
	if s.HistoryLimit != 0 {
		c.HistoryLimit = s.HistoryLimit
	}
	if s.PasteOffset != (Vec{}) {
		c.PasteOffset = s.PasteOffset
	}
	if s.DefaultWidgetSize != (Vec{}) {
		c.DefaultWidgetSize = s.DefaultWidgetSize
	}
	mergeFloat(&c.MinZoom, s.MinZoom)
	mergeFloat(&c.MaxZoom, s.MaxZoom)
	mergeFloat(&c.InitialZoom, s.InitialZoom)
	mergeFloat(&c.ZoomStep, s.ZoomStep)
	mergeFloat(&c.WheelZoomSpeed, s.WheelZoomSpeed)

	mergeFloat(&dst.DragDrop.GlobeInset, src.DragDrop.GlobeInset)
	if strings.TrimSpace(src.DragDrop.PlaceholderName) != "" {
		dst.DragDrop.PlaceholderName = strings.TrimSpace(src.DragDrop.PlaceholderName)
	}

	// keymap entries replace the default chords per action
	for action, chords := range src.Keymap {
		if dst.Keymap == nil {
			dst.Keymap = map[string][]string{}
		}
		dst.Keymap[strings.ToLower(strings.TrimSpace(action))] = append([]string(nil), chords...)
	}

	// booleans: copy directly from src (file) so user preferences persist
	dst.Clipboard.SystemMirror = src.Clipboard.SystemMirror

	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func mergeFloat(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

// normalize replaces values that would break the canvas with their defaults.
func (cfg *AppConfig) normalize() {
	def := Defaults().Canvas
	c := &cfg.Canvas
	if c.HistoryLimit < 1 {
		c.HistoryLimit = def.HistoryLimit
	}
	if c.MinZoom <= 0 {
		c.MinZoom = def.MinZoom
	}
	if c.MaxZoom < c.MinZoom {
		c.MinZoom, c.MaxZoom = def.MinZoom, def.MaxZoom
	}
	if c.InitialZoom < c.MinZoom || c.InitialZoom > c.MaxZoom {
		c.InitialZoom = def.InitialZoom
	}
	if c.ZoomStep <= 1 {
		c.ZoomStep = def.ZoomStep
	}
	if c.WheelZoomSpeed <= 0 {
		c.WheelZoomSpeed = def.WheelZoomSpeed
	}
	if c.DefaultWidgetSize.X <= 0 || c.DefaultWidgetSize.Y <= 0 {
		c.DefaultWidgetSize = def.DefaultWidgetSize
	}
	if cfg.DragDrop.GlobeInset < 0 {
		cfg.DragDrop.GlobeInset = 0
	}
}

func envBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvHistoryLimit)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Canvas.HistoryLimit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvInitialZoom)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Canvas.InitialZoom = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvClipboardMirror)); v != "" {
		cfg.Clipboard.SystemMirror = envBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvPlaceholderName)); v != "" {
		cfg.DragDrop.PlaceholderName = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = envBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "canvas.history_limit":
		env = EnvHistoryLimit
	case "canvas.initial_zoom":
		env = EnvInitialZoom
	case "clipboard.system_mirror":
		env = EnvClipboardMirror
	case "dragdrop.placeholder_name":
		env = EnvPlaceholderName
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
