/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// The interaction thresholds started life as undocumented magic constants in
// the editors (double-click squared distance < 2 px, ~180ms window); they are
// configuration here so the intended UX precision stays tunable instead of
// being re-inferred.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type InteractionConfig struct {
	// DoubleClickWindowMs is how long after a pointer-down a second down
	// still counts as a double click.
	DoubleClickWindowMs int `yaml:"double_click_window_ms"`
	// DoubleClickDistSq is the maximum squared screen-pixel distance
	// between the two downs of a double click.
	DoubleClickDistSq float64 `yaml:"double_click_dist_sq"`
	// NodeHitRadius is the pick radius for vertex and mid-edge handles,
	// in the normalized annotation frame.
	NodeHitRadius float64 `yaml:"node_hit_radius"`
	// DragThresholdPx separates a click from a camera drag on pointer-up.
	DragThresholdPx float64 `yaml:"drag_threshold_px"`
}

type CuboidConfig struct {
	// DefaultBoxHeight is used when no cloud points fall inside a drawn
	// footprint.
	DefaultBoxHeight float64 `yaml:"default_box_height"`
	// PointSizeStep is the render point-size increment for the +/- keys.
	PointSizeStep float64 `yaml:"point_size_step"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int               `yaml:"config_version"`
	Interaction   InteractionConfig `yaml:"interaction"`
	Cuboid        CuboidConfig      `yaml:"cuboid"`
	Logging       LoggingConfig     `yaml:"logging"`
}

// Defaults returns the application defaults. The interaction values are
// the ones the original editors shipped with.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Interaction: InteractionConfig{
			DoubleClickWindowMs: 180,
			DoubleClickDistSq:   2.0,
			NodeHitRadius:       0.015,
			DragThresholdPx:     5.0,
		},
		Cuboid: CuboidConfig{
			DefaultBoxHeight: 1.0,
			PointSizeStep:    0.5,
		},
		Logging: LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvDoubleClickWindowMs = "GLB_DOUBLE_CLICK_WINDOW_MS"
	EnvDoubleClickDistSq   = "GLB_DOUBLE_CLICK_DIST_SQ"
	EnvDefaultBoxHeight    = "GLB_DEFAULT_BOX_HEIGHT"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "GLB_LOG_LEVEL"
	EnvLogFormat = "GLB_LOG_FORMAT"
	EnvLogSource = "GLB_LOG_SOURCE"
	EnvLogFile   = "GLB_LOG_FILE"
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
		base = filepath.Join(base, "GoLabel")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "GoLabel")
	default: // linux and others
		base = filepath.Join(os.Getenv("HOME"), ".config", "golabel")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.Interaction.DoubleClickWindowMs != 0 {
		dst.Interaction.DoubleClickWindowMs = src.Interaction.DoubleClickWindowMs
	}
	if src.Interaction.DoubleClickDistSq != 0 {
		dst.Interaction.DoubleClickDistSq = src.Interaction.DoubleClickDistSq
	}
	if src.Interaction.NodeHitRadius != 0 {
		dst.Interaction.NodeHitRadius = src.Interaction.NodeHitRadius
	}
	if src.Interaction.DragThresholdPx != 0 {
		dst.Interaction.DragThresholdPx = src.Interaction.DragThresholdPx
	}
	if src.Cuboid.DefaultBoxHeight != 0 {
		dst.Cuboid.DefaultBoxHeight = src.Cuboid.DefaultBoxHeight
	}
	if src.Cuboid.PointSizeStep != 0 {
		dst.Cuboid.PointSizeStep = src.Cuboid.PointSizeStep
	}
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

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvDoubleClickWindowMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Interaction.DoubleClickWindowMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvDoubleClickDistSq)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Interaction.DoubleClickDistSq = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvDefaultBoxHeight)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Cuboid.DefaultBoxHeight = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}
