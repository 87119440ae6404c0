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
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// Widths of the dash runs in the top rule bracketing the code.
const (
	ruleLead  = 4
	ruleTrail = 20
)

// Renderer configures graphical rendering of diagnostics.
//
// The zero value is not useful; construct one with [NewRenderer].
type Renderer struct {
	theme   Theme
	noLinks bool
}

// NewRenderer returns a renderer with the default [UnicodeNoColor] theme
// and code linking enabled.
func NewRenderer() *Renderer {
	return &Renderer{theme: UnicodeNoColor()}
}

// WithTheme replaces the renderer's theme and returns the renderer.
func (r *Renderer) WithTheme(t Theme) *Renderer {
	r.theme = t
	return r
}

// WithoutCodeLinking disables documentation links: neither the descriptor's
// URL nor the "click for details" affordance will appear in the output.
func (r *Renderer) WithoutCodeLinking() *Renderer {
	r.noLinks = true
	return r
}

// RenderReport renders a single diagnostic to out.
//
// The output is a function of the descriptor and the renderer's
// configuration alone; rendering the same inputs twice produces
// byte-identical text. On failure the error is one of
// [*InvalidDescriptorError], [*OutOfBoundsError], or [*WriteError]; only
// the last can leave partial output behind.
func (r *Renderer) RenderReport(out io.Writer, d Descriptor) error {
	if d == nil || d.Message() == "" {
		return &InvalidDescriptorError{Reason: "missing message"}
	}

	snippets := d.Snippets()
	for _, snip := range snippets {
		if snip.Source == nil {
			return &InvalidDescriptorError{Reason: "snippet without a source"}
		}
		if err := snip.Source.checkBounds(snip.Context); err != nil {
			return err
		}
		for _, h := range snip.Highlights {
			if err := snip.Source.checkBounds(h.Span); err != nil {
				return err
			}
		}
	}

	windows := make([]*window, len(snippets))
	for i, snip := range snippets {
		windows[i] = buildWindow(snip)
	}

	// The gutter is sized by the largest line number the report prints,
	// shared across snippets so their rows line up.
	var greatest int
	for _, win := range windows {
		greatest = max(greatest, win.maxLine())
	}
	numWidth := max(2, len(strconv.Itoa(greatest)))

	g := r.theme.Glyphs
	ss := newStyleSheet(r.theme)
	sev := d.Severity()
	w := &writer{out: out}

	// Top rule bracketing the code.
	if code := d.Code(); code != "" {
		w.WriteString(ss.BoldForSeverity(sev))
		w.WriteRunes(g.HBar, ruleLead)
		w.WriteRune(g.LBox)
		w.WriteString(code)
		w.WriteRune(g.RBox)
		w.WriteRunes(g.HBar, ruleTrail)
		w.WriteString(ss.reset)
		w.Newline()
		w.Newline()
	}

	// Message row.
	w.WriteSpaces(4)
	w.WriteString(ss.BoldForSeverity(sev))
	w.WriteRune(r.theme.severityGlyph(sev))
	w.WriteString(ss.reset)
	w.WriteRune(' ')
	w.WriteString(d.Message())
	w.Newline()

	for _, win := range windows {
		w.Newline()
		win.render(w, r.theme, ss, sev, numWidth)
	}

	help, url := d.Help(), d.URL()
	showURL := url != "" && !r.noLinks
	if help != "" || showURL {
		w.Newline()
		if help != "" {
			w.WriteSpaces(4)
			w.WriteString(ss.nAccent)
			w.WriteRune(g.Help)
			w.WriteString(ss.reset)
			w.WriteRune(' ')
			w.WriteString(help)
			w.Newline()
		}
		if showURL {
			w.WriteSpaces(4)
			w.WriteString(ss.nAccent)
			w.WriteRune(g.Link)
			w.WriteString(ss.reset)
			w.WriteRune(' ')
			if r.theme.Styled {
				w.WriteString(termenv.Hyperlink(url, "click for details"))
			} else {
				w.WriteString("click for details: " + url)
			}
			w.Newline()
		}
	}

	return w.Flush()
}

// RenderString is a helper for calling [Renderer.RenderReport] with a
// [strings.Builder].
func (r *Renderer) RenderString(d Descriptor) (string, error) {
	var buf strings.Builder
	err := r.RenderReport(&buf, d)
	return buf.String(), err
}

// RenderAll renders every diagnostic in a report, blank-line separated,
// followed by a summary row when anything was worth counting.
//
// In addition to any rendering error, it returns how many errors and
// warnings the report contained.
func (r *Renderer) RenderAll(out io.Writer, rep *Report) (errorCount, warningCount int, err error) {
	for i, d := range rep.Diagnostics {
		if i > 0 {
			if _, err = io.WriteString(out, "\n"); err != nil {
				return errorCount, warningCount, &WriteError{Err: err}
			}
		}
		if err = r.RenderReport(out, d); err != nil {
			return errorCount, warningCount, err
		}

		switch d.Severity() {
		case Error:
			errorCount++
		case Warning:
			warningCount++
		}
	}

	if errorCount == 0 && warningCount == 0 {
		return 0, 0, nil
	}

	ss := newStyleSheet(r.theme)
	var summary strings.Builder
	summary.WriteString("\n")
	if errorCount > 0 {
		fmt.Fprint(&summary, ss.bError, "encountered ", pluralize(errorCount, "error"))
		if warningCount > 0 {
			fmt.Fprint(&summary, " and ", pluralize(warningCount, "warning"))
		}
	} else {
		fmt.Fprint(&summary, ss.bWarning, "encountered ", pluralize(warningCount, "warning"))
	}
	fmt.Fprint(&summary, ss.reset, "\n")

	if _, err = io.WriteString(out, summary.String()); err != nil {
		return errorCount, warningCount, &WriteError{Err: err}
	}
	return errorCount, warningCount, nil
}

func pluralize(count int, what string) string {
	if count == 1 {
		return "1 " + what
	}
	return fmt.Sprint(count, " ", what, "s")
}
