/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package event

// Key identifies a keyboard key in the editors' vocabulary. Printable
// keys use their character ("c", "+", "-"); special keys use the names
// below.
type Key string

const (
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
	KeyBackspace Key = "Backspace"
	KeySpace     Key = "Space"
	KeyDelete    Key = "Delete"
)

// Button discriminates pointer buttons.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// KeyTable is a scoped keyboard binding table. An editor owns exactly
// one table for its lifetime; Close releases every binding through a
// single disposal path, so no listener can outlive the editor.
type KeyTable struct {
	bindings map[Key][]func()
	closed   bool
}

// NewKeyTable returns an open, empty table.
func NewKeyTable() *KeyTable {
	return &KeyTable{bindings: make(map[Key][]func())}
}

// Bind registers fn for k. Binding to a closed table is a no-op.
func (t *KeyTable) Bind(k Key, fn func()) {
	if t.closed {
		return
	}
	t.bindings[k] = append(t.bindings[k], fn)
}

// Dispatch invokes every binding for k and reports whether any existed.
func (t *KeyTable) Dispatch(k Key) bool {
	if t.closed {
		return false
	}
	fns := t.bindings[k]
	for _, fn := range fns {
		fn()
	}
	return len(fns) > 0
}

// Close drops all bindings. Further Bind and Dispatch calls are no-ops.
func (t *KeyTable) Close() {
	t.closed = true
	t.bindings = nil
}
