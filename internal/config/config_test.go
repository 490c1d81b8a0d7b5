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
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsCarrySourceConstants(t *testing.T) {
	cfg := Defaults()
	if cfg.Interaction.DoubleClickWindowMs != 180 {
		t.Fatalf("double click window: %d", cfg.Interaction.DoubleClickWindowMs)
	}
	if cfg.Interaction.DoubleClickDistSq != 2.0 {
		t.Fatalf("double click dist sq: %v", cfg.Interaction.DoubleClickDistSq)
	}
	if cfg.Cuboid.DefaultBoxHeight != 1.0 {
		t.Fatalf("default box height: %v", cfg.Cuboid.DefaultBoxHeight)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AppData", filepath.Join(home, "AppData", "Roaming"))
	t.Setenv("USERPROFILE", home)

	cfg := Defaults()
	cfg.Interaction.DoubleClickWindowMs = 250
	cfg.Logging.Level = "debug"
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Interaction.DoubleClickWindowMs != 250 {
		t.Fatalf("round trip lost window: %d", got.Interaction.DoubleClickWindowMs)
	}
	if got.Logging.Level != "debug" {
		t.Fatalf("round trip lost level: %s", got.Logging.Level)
	}
	// untouched fields keep their defaults
	if got.Interaction.DoubleClickDistSq != 2.0 {
		t.Fatalf("default lost: %v", got.Interaction.DoubleClickDistSq)
	}
}

func TestEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("AppData", filepath.Join(home, "AppData", "Roaming"))
	t.Setenv("USERPROFILE", home)

	t.Setenv(EnvDoubleClickWindowMs, "90")
	t.Setenv(EnvDefaultBoxHeight, "2.5")
	t.Setenv(EnvLogLevel, "WARN")
	t.Setenv(EnvDoubleClickDistSq, "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Interaction.DoubleClickWindowMs != 90 {
		t.Fatalf("env window override: %d", cfg.Interaction.DoubleClickWindowMs)
	}
	if cfg.Cuboid.DefaultBoxHeight != 2.5 {
		t.Fatalf("env box height override: %v", cfg.Cuboid.DefaultBoxHeight)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("env level override: %s", cfg.Logging.Level)
	}
	// invalid numeric values are ignored
	if cfg.Interaction.DoubleClickDistSq != 2.0 {
		t.Fatalf("bad env should keep default: %v", cfg.Interaction.DoubleClickDistSq)
	}
}
