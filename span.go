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
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Source is a named blob of UTF-8 text involved in a diagnostic.
//
// The name doesn't need to be a real filesystem path, but it is what gets
// printed in snippet headers.
type Source struct {
	Name string
	Text string
}

// Span is a byte range within a [Source].
//
// A Len of zero is legal and denotes a caret position rather than a range;
// it still occupies one visual column when rendered.
type Span struct {
	Offset int
	Len    int
}

// End returns the exclusive end offset of this span.
func (s Span) End() int {
	return s.Offset + s.Len
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d]", s.Offset, s.End())
}

// Location is a user-displayable location within a source.
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed.
	//
	// Column is a display column, not a byte count: it accounts for
	// tabstops and for the Unicode width of what precedes it on the line.
	//
	// Because these are 1-indexed, a zero Line can be used as a sentinel.
	Line, Column int
}

// IndexedSource is an index of line information for a [Source], which
// permits O(log n) calculation of [Location]s from byte offsets.
type IndexedSource struct {
	source Source

	once sync.Once
	// A prefix sum of the line lengths of the text. Given a byte offset, the
	// line containing it is recovered by binary search. Alternatively, this
	// slice can be interpreted as the index after each \n in the text.
	lines []int
}

// NewIndexedSource constructs a line index for the given source. The index
// itself is built lazily on first search, in O(n) of the text size.
func NewIndexedSource(source Source) *IndexedSource {
	return &IndexedSource{source: source}
}

// Source returns the source this index indexes.
func (i *IndexedSource) Source() Source {
	return i.source
}

// Name returns i.Source().Name.
func (i *IndexedSource) Name() string {
	return i.source.Name
}

// Text returns i.Source().Text.
func (i *IndexedSource) Text() string {
	return i.source.Text
}

// Search builds full [Location] information for the given byte offset.
//
// An offset one past a final newline resolves to the (empty) line after it;
// this is what makes spans that swallow their trailing newline report the
// line break as part of the range.
func (i *IndexedSource) Search(offset int) Location {
	i.once.Do(func() {
		var next int

		// We add 1 to the return value of IndexByte because we want to work
		// with the index immediately *after* the newline byte.
		text := i.source.Text
		for {
			newline := strings.IndexByte(text, '\n') + 1
			if newline == 0 {
				break
			}

			text = text[newline:]

			i.lines = append(i.lines, next)
			next += newline
		}

		i.lines = append(i.lines, next)
	})

	// Find the greatest index in i.lines such that lines[line] <= offset.
	line, exact := slices.BinarySearch(i.lines, offset)
	if !exact {
		line--
	}

	column := stringWidth(0, i.source.Text[i.lines[line]:offset], false, nil)
	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: column + 1,
	}
}

// checkBounds verifies that span lies within the source text.
func (i *IndexedSource) checkBounds(span Span) error {
	if span.Offset < 0 || span.Len < 0 || span.End() > len(i.source.Text) {
		return &OutOfBoundsError{Source: i.source.Name, Span: span, SourceLen: len(i.source.Text)}
	}
	return nil
}
