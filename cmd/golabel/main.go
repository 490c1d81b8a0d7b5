/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golabel/internal/config"
	"golabel/internal/crash"
	applog "golabel/internal/log"
	"golabel/internal/ui"
	"golabel/internal/version"
)

func usage() {
	fmt.Println("GoLabel — interactive image and point-cloud annotation")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  golabel version|-v|--version    Show version")
	fmt.Println("  golabel config                  Print the resolved configuration file path")
	fmt.Println("  golabel ui [<image>]            Launch the desktop editor (build with -tags fyne for full UI)")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer crash.Recover()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("GoLabel — interactive image and point-cloud annotation")
			fmt.Println(version.String())
			return
		case "config":
			path, err := config.ConfigPath()
			if err != nil {
				l.Error("resolve config path failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println(path)
			return
		case "ui":
			var image string
			if len(args) >= 3 {
				image, _ = filepath.Abs(args[2])
			}
			l.Info("launch ui", slog.String("image", image))
			if err := ui.Run(image); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}
