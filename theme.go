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

// Glyphs is the character set a theme draws the report with.
//
// Every glyph must occupy exactly one terminal column; the layout engine
// counts columns, not runes.
type Glyphs struct {
	HBar   rune // Horizontal rule and underline segments.
	VBar   rune // Gutter separator and rail verticals.
	Bullet rune // Gutter marker on annotation rows.

	LTop   rune // Rail corner opening a multi-line highlight.
	LBot   rune // Rail corner closing one, and the label elbow.
	LCross rune // Rail corner closing a labeled multi-line highlight.
	RArrow rune // Arrowhead pointing at the bracketed source.

	Tick rune // Center mark of a labeled underline.

	LBox, RBox rune // Brackets around codes and source positions.

	Error   rune // Severity marks on the message row.
	Warning rune
	Advice  rune

	Help rune // Footer mark before help text.
	Link rune // Footer mark before the documentation link.
}

// Theme is a glyph set plus rendering capability flags.
type Theme struct {
	Glyphs Glyphs

	// Styled enables ANSI color escapes. Styling never changes which
	// glyphs are emitted or how columns line up.
	Styled bool
}

// UnicodeNoColor is the reference theme: box-drawing glyphs, no ANSI
// escapes. It is the renderer's default, and the one whose output is
// deterministic enough to compare byte-for-byte.
func UnicodeNoColor() Theme {
	return Theme{Glyphs: unicodeGlyphs}
}

// Unicode is [UnicodeNoColor] plus ANSI styling. Glyph identity and column
// counts are unchanged.
func Unicode() Theme {
	return Theme{Glyphs: unicodeGlyphs, Styled: true}
}

var unicodeGlyphs = Glyphs{
	HBar:    '─',
	VBar:    '│',
	Bullet:  '·',
	LTop:    '╭',
	LBot:    '╰',
	LCross:  '├',
	RArrow:  '▶',
	Tick:    '┬',
	LBox:    '[',
	RBox:    ']',
	Error:   '×',
	Warning: '⚠',
	Advice:  '☞',
	Help:    '‽',
	Link:    '»',
}

// severityGlyph returns the mark for the message row.
func (t Theme) severityGlyph(s Severity) rune {
	switch s {
	case Warning:
		return t.Glyphs.Warning
	case Advice:
		return t.Glyphs.Advice
	default:
		return t.Glyphs.Error
	}
}

// styleSheet is the escape sequences used for pretty-rendering. The zero
// value styles nothing, which is what unstyled themes use.
type styleSheet struct {
	reset string
	// Normal colors.
	nError, nWarning, nAdvice, nAccent string
	// Bold colors.
	bError, bWarning, bAdvice, bAccent string
}

func newStyleSheet(t Theme) styleSheet {
	if !t.Styled {
		return styleSheet{}
	}

	return styleSheet{
		reset: "\033[0m",
		// Red.
		nError: "\033[0;31m",
		bError: "\033[1;31m",

		// Yellow.
		nWarning: "\033[0;33m",
		bWarning: "\033[1;33m",

		// Cyan.
		nAdvice: "\033[0;36m",
		bAdvice: "\033[1;36m",

		// Blue. Used for "accents": line numbers, the gutter, snippet
		// headers, and footer marks, to clearly separate them from the
		// source code (which appears in white). Rails and underlines use
		// the severity color instead.
		nAccent: "\033[0;34m",
		bAccent: "\033[1;34m",
	}
}

// BoldForSeverity returns the escape sequence for the bold color to use
// for the given severity.
func (c styleSheet) BoldForSeverity(s Severity) string {
	switch s {
	case Error:
		return c.bError
	case Warning:
		return c.bWarning
	case Advice:
		return c.bAdvice
	default:
		return ""
	}
}
