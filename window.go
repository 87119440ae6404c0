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

	"github.com/fathomlang/report/internal/interval"
)

// window is an intermediate structure for rendering one annotated snippet.
//
// Building it is separate from rendering because lane layout cannot happen
// in the middle of emitting source rows.
type window struct {
	src     *IndexedSource
	message string
	// The 1-based start of the context span, shown in the header row.
	header Location
	// The line number of the first window line.
	start int
	// The window's lines, without terminators.
	lines []string

	unders []underline
	multis []*multiline
	// How many rails the window needs; the rails area is lanes+3 columns
	// wide so that the innermost arrow is exactly `╭─▶`.
	lanes int
}

// underline is a single-line highlight, resolved to display columns.
type underline struct {
	line  int
	col   int // 0-based display column within the line.
	width int // Rendered width; 0 is a caret.
	label string
}

// tickCol returns the column the label tick and elbow sit on.
func (u underline) tickCol() int {
	if u.width == 0 {
		return u.col
	}
	return u.col + u.width/2
}

// multiline is a highlight spanning several lines, bracketed by a rail.
type multiline struct {
	startLine, endLine int
	lane               int
	label              string
}

// buildWindow resolves a snippet's highlights into layout elements. Spans
// must already be bounds-checked.
func buildWindow(snip Snippet) *window {
	w := &window{src: snip.Source, message: snip.Message}
	text := snip.Source.Text()
	w.header = snip.Source.Search(snip.Context.Offset)

	// The window covers every line the context or a highlight touches.
	start := snip.Context.Offset
	end := snip.Context.End()
	for _, h := range snip.Highlights {
		start = min(start, h.Span.Offset)
		end = max(end, h.Span.End())
	}
	// Snap the range to start immediately after a newline (or SOF) and end
	// immediately before one (or EOF).
	start = strings.LastIndexByte(text[:start], '\n') + 1
	if nl := strings.IndexByte(text[end:], '\n'); nl != -1 {
		end += nl
	} else {
		end = len(text)
	}

	w.start = snip.Source.Search(start).Line
	w.lines = strings.Split(text[start:end], "\n")
	if last := len(w.lines) - 1; last > 0 && w.lines[last] == "" {
		// The window ends on the file's final newline; the split's empty
		// tail is not a real line.
		w.lines = w.lines[:last]
	}

	var lanes interval.Lanes[int, *multiline]
	for _, h := range snip.Highlights {
		hiStart := snip.Source.Search(h.Span.Offset)
		hiEnd := snip.Source.Search(h.Span.End())

		// A span whose exclusive end sits at the start of an interior line
		// ends, inclusively, on the line before. An end at EOF is left
		// alone, so a highlight that swallows the final newline closes on
		// the phantom line after it.
		if h.Span.Len > 0 && hiEnd.Line > hiStart.Line && hiEnd.Column == 1 && h.Span.End() < len(text) {
			hiEnd = snip.Source.Search(h.Span.End() - 1)
		}

		if hiEnd.Line == hiStart.Line {
			w.unders = append(w.unders, underline{
				line:  hiStart.Line,
				col:   hiStart.Column - 1,
				width: hiEnd.Column - hiStart.Column,
				label: h.Label,
			})
			continue
		}

		ml := &multiline{startLine: hiStart.Line, endLine: hiEnd.Line, label: h.Label}
		ml.lane = lanes.Assign(ml.startLine, ml.endLine, ml)
		w.multis = append(w.multis, ml)
	}
	w.lanes = lanes.Len()

	return w
}

// lastLine returns the number of the last window line.
func (w *window) lastLine() int {
	return w.start + len(w.lines) - 1
}

// maxLine returns the largest line number the window can print. A
// highlight ending past the last line (on the phantom line after a final
// newline) lends that line its number.
func (w *window) maxLine() int {
	greatest := w.lastLine()
	for _, ml := range w.multis {
		greatest = max(greatest, ml.endLine)
	}
	return greatest
}

// attachEnd returns the window line a multiline's end row is drawn on.
func (w *window) attachEnd(ml *multiline) int {
	return min(ml.endLine, w.lastLine())
}

// railsWidth returns the width of the rails area, excluding the gutter and
// the source text.
func (w *window) railsWidth() int {
	if w.lanes == 0 {
		return 0
	}
	return w.lanes + 3
}

// render emits the snippet's rows: header, then for each line the source
// row followed by its annotation rows.
func (w *window) render(out *writer, t Theme, ss styleSheet, sev Severity, numWidth int) {
	g := t.Glyphs

	// Header row.
	out.WriteString(ss.nAccent)
	out.WriteSpaces(numWidth + 1)
	out.WriteRune(g.LTop)
	out.WriteRunes(g.HBar, 3)
	out.WriteRune(g.LBox)
	fmt.Fprintf(out, "%s:%d:%d", w.src.Name(), w.header.Line, w.header.Column)
	out.WriteRune(g.RBox)
	out.WriteString(ss.reset)
	if w.message != "" {
		out.WriteRune(' ')
		out.WriteString(w.message)
		out.WriteRune(':')
	}
	out.Newline()

	for i, text := range w.lines {
		lineno := w.start + i

		// Highlights whose end row this is. Their rail closes here, and
		// the row borrows the largest end line number, which is how a
		// highlight running through the final newline renders: the last
		// line prints under the phantom line's number.
		var ends []*multiline
		printed := lineno
		for _, ml := range w.multis {
			if w.attachEnd(ml) == lineno {
				ends = append(ends, ml)
				printed = max(printed, ml.endLine)
			}
		}

		// Source row.
		out.WriteString(ss.nAccent)
		fmt.Fprintf(out, "%*d ", numWidth, printed)
		out.WriteRune(g.VBar)
		out.WriteRune(' ')
		out.WriteString(ss.BoldForSeverity(sev))
		w.writeRails(out, g, lineno)
		out.WriteString(ss.reset)
		stringWidth(0, text, false, out)
		out.Newline()

		// Underline and label rows for single-line highlights.
		w.renderUnderlines(out, g, ss, sev, lineno, numWidth)

		// Closer rows for labeled rails ending here, innermost lane first.
		slices.SortFunc(ends, func(a, b *multiline) int { return b.lane - a.lane })
		for _, ml := range ends {
			if ml.label == "" {
				continue
			}
			w.annotationGutter(out, g, ss, numWidth)
			out.WriteString(ss.BoldForSeverity(sev))
			w.writeCrossings(out, g, lineno, ml.lane)
			out.WriteRune(g.LBot)
			out.WriteRunes(g.HBar, w.railsWidth()-ml.lane)
			out.WriteString(ss.reset)
			out.WriteRune(' ')
			out.WriteString(ml.label)
			out.Newline()
		}
	}
}

// writeRails draws the rails area of a source row: verticals for rails
// crossing this line, and corner-dash-arrow figures for rails opening or
// closing on it. Outer lanes draw first so that inner corners overwrite
// their dashes.
func (w *window) writeRails(out *writer, g Glyphs, lineno int) {
	railsW := w.railsWidth()
	if railsW == 0 {
		return
	}

	cells := make([]rune, railsW)
	for i := range cells {
		cells[i] = ' '
	}

	for _, ml := range w.laneOrdered() {
		endAt := w.attachEnd(ml)
		if lineno < ml.startLine || lineno > endAt {
			continue
		}
		switch lineno {
		case ml.startLine:
			drawArrow(cells, g, g.LTop, ml.lane)
		case endAt:
			corner := g.LBot
			if ml.label != "" {
				// The label's closer row carries the elbow instead.
				corner = g.LCross
			}
			drawArrow(cells, g, corner, ml.lane)
		default:
			cells[ml.lane] = g.VBar
		}
	}

	out.WriteString(string(cells))
}

// drawArrow writes `corner──▶` from the lane's column to the edge of the
// rails area.
func drawArrow(cells []rune, g Glyphs, corner rune, lane int) {
	cells[lane] = corner
	for c := lane + 1; c < len(cells)-2; c++ {
		cells[c] = g.HBar
	}
	cells[len(cells)-2] = g.RArrow
}

// laneOrdered returns the window's multilines sorted by lane, outermost
// first.
func (w *window) laneOrdered() []*multiline {
	ordered := slices.Clone(w.multis)
	slices.SortFunc(ordered, func(a, b *multiline) int { return a.lane - b.lane })
	return ordered
}

// annotationGutter writes the `   · ` gutter that replaces the line number
// on underline, label, and closer rows.
func (w *window) annotationGutter(out *writer, g Glyphs, ss styleSheet, numWidth int) {
	out.WriteString(ss.nAccent)
	out.WriteSpaces(numWidth + 1)
	out.WriteRune(g.Bullet)
	out.WriteRune(' ')
	out.WriteString(ss.reset)
}

// writeCrossings writes verticals for every rail that is active on lineno
// and lies to the left of limit lanes, padding inactive lanes with spaces.
func (w *window) writeCrossings(out *writer, g Glyphs, lineno, limit int) {
	cells := make([]rune, limit)
	for i := range cells {
		cells[i] = ' '
	}
	for _, ml := range w.multis {
		if ml.lane < limit && ml.startLine <= lineno && lineno <= w.attachEnd(ml) {
			cells[ml.lane] = g.VBar
		}
	}
	out.WriteString(string(cells))
}

// renderUnderlines draws the underline row and label rows for the
// single-line highlights that sit beneath the given source line.
func (w *window) renderUnderlines(out *writer, g Glyphs, ss styleSheet, sev Severity, lineno, numWidth int) {
	var here []underline
	for _, u := range w.unders {
		if u.line == lineno {
			here = append(here, u)
		}
	}
	if len(here) == 0 {
		return
	}

	railsW := w.railsWidth()

	// One shared underline row. Highlights are placed in declaration
	// order; later ones overwrite on collision.
	var buf []rune
	put := func(col int, r rune) {
		for len(buf) <= col {
			buf = append(buf, ' ')
		}
		buf[col] = r
	}
	for _, u := range here {
		if u.width == 0 {
			put(u.col, g.Tick)
			continue
		}
		for j := range u.width {
			glyph := g.HBar
			if u.label != "" && j == u.width/2 {
				glyph = g.Tick
			}
			put(u.col+j, glyph)
		}
	}

	w.annotationGutter(out, g, ss, numWidth)
	out.WriteString(ss.BoldForSeverity(sev))
	w.writeCrossings(out, g, lineno, railsW)
	out.WriteString(string(buf))
	out.WriteString(ss.reset)
	out.Newline()

	// One label row per labeled highlight, in declaration order, each with
	// its elbow on its own tick column.
	for _, u := range here {
		if u.label == "" {
			continue
		}
		w.annotationGutter(out, g, ss, numWidth)
		out.WriteString(ss.BoldForSeverity(sev))
		w.writeCrossings(out, g, lineno, railsW)
		out.WriteSpaces(u.tickCol())
		out.WriteRune(g.LBot)
		dashes := 2
		if u.width == 0 {
			dashes = 1
		}
		out.WriteRunes(g.HBar, dashes)
		out.WriteString(ss.reset)
		out.WriteRune(' ')
		out.WriteString(u.label)
		out.Newline()
	}
}
