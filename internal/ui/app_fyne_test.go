//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based UI plumbing. They are gated behind
// the "fyne" build tag so CI (which is headless) does not need Fyne or a
// display. To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"

	"golabel/internal/event"
)

func TestKeyForMapsEditorKeys(t *testing.T) {
	cases := []struct {
		name fyne.KeyName
		want event.Key
	}{
		{fyne.KeyReturn, event.KeyEnter},
		{fyne.KeyEnter, event.KeyEnter},
		{fyne.KeyEscape, event.KeyEscape},
		{fyne.KeyBackspace, event.KeyBackspace},
		{fyne.KeyDelete, event.KeyDelete},
		{fyne.KeySpace, event.KeySpace},
	}
	for _, c := range cases {
		got, ok := keyFor(c.name)
		if !ok || got != c.want {
			t.Fatalf("keyFor(%v) = %v/%v, want %v", c.name, got, ok, c.want)
		}
	}
	if _, ok := keyFor(fyne.KeyF1); ok {
		t.Fatalf("unmapped key reported as mapped")
	}
}
