// Copyright 2024-2026 The Fathom Language Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"bytes"
	"io"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// writer implements low-level writing helpers, including a custom buffering
// routine that strips trailing whitespace from every row before it reaches
// the output.
type writer struct {
	out io.Writer
	buf []byte // Never contains a '\n' byte.
	err error
}

// Write implements [io.Writer].
func (w *writer) Write(data []byte) (int, error) {
	w.WriteString(string(data))
	return len(data), nil
}

// WriteString appends data to the current row. Embedded newlines terminate
// rows as they go by.
func (w *writer) WriteString(data string) {
	for {
		newline := strings.IndexByte(data, '\n')
		if newline == -1 {
			break
		}
		w.buf = append(w.buf, data[:newline]...)
		w.flush(true)
		data = data[newline+1:]
	}
	w.buf = append(w.buf, data...)
}

// WriteRune appends a single rune to the current row.
func (w *writer) WriteRune(r rune) {
	if r == '\n' {
		w.flush(true)
		return
	}
	w.buf = utf8.AppendRune(w.buf, r)
}

// WriteSpaces appends n spaces to the current row.
func (w *writer) WriteSpaces(n int) {
	w.buf = slices.Grow(w.buf, n)
	const spaces = "                                        "
	for n > len(spaces) {
		w.buf = append(w.buf, spaces...)
		n -= len(spaces)
	}
	if n > 0 {
		w.buf = append(w.buf, spaces[:n]...)
	}
}

// WriteRunes appends r to the current row n times.
func (w *writer) WriteRunes(r rune, n int) {
	for range n {
		w.WriteRune(r)
	}
}

// Newline terminates the current row.
func (w *writer) Newline() {
	w.flush(true)
}

// Flush flushes any remaining buffered row to the writer's output and
// reports the first error encountered over the writer's lifetime.
func (w *writer) Flush() error {
	if len(w.buf) > 0 {
		w.flush(false)
	}
	if w.err != nil {
		return &WriteError{Err: w.err}
	}
	return nil
}

// flush writes out the current row, stripping trailing whitespace first.
// Errors are retained to be reported out of Flush, so that the rendering
// code doesn't have to thread an error return through every row.
//
// If withNewline is set, a newline is appended to the data being written.
func (w *writer) flush(withNewline bool) {
	if w.err != nil {
		w.buf = w.buf[:0]
		return
	}

	w.buf = bytes.TrimRightFunc(w.buf, unicode.IsSpace)
	if withNewline {
		w.buf = append(w.buf, '\n')
	}

	_, w.err = w.out.Write(w.buf)
	w.buf = w.buf[:0]
}
