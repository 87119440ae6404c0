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

package report_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathomlang/report"
)

// Expected outputs below are byte-exact; every leading space and glyph is
// load-bearing.
const wantSingleLine = `────[oops::my::bad]────────────────────

    × oops!

   ╭───[bad_file.rs:1:1] This is the part that broke:
 1 │ source
 2 │   text
   ·   ──┬─
   ·     ╰── this bit here
 3 │     here

    ‽ try doing it better next time?
`

const wantEmptySpan = `────[oops::my::bad]────────────────────

    × oops!

   ╭───[bad_file.rs:1:1] This is the part that broke:
 1 │ source
 2 │   text
   ·   ┬
   ·   ╰─ this bit here
 3 │     here

    ‽ try doing it better next time?
`

const wantNoLabel = `────[oops::my::bad]────────────────────

    × oops!

   ╭───[bad_file.rs:1:1] This is the part that broke:
 1 │ source
 2 │   text
   ·   ────
 3 │     here

    ‽ try doing it better next time?
`

const wantSameLine = `────[oops::my::bad]────────────────────

    × oops!

   ╭───[bad_file.rs:1:1] This is the part that broke:
 1 │ source
 2 │   text text text text text
   ·   ──┬─ ──┬─
   ·     ╰── this bit here
   ·          ╰── also this bit
 3 │     here

    ‽ try doing it better next time?
`

const wantAdjacent = `────[oops::my::bad]────────────────────

    × oops!

   ╭───[bad_file.rs:1:1] This is the part that broke:
 1 │     source
 2 │ ╭─▶   text
 3 │ ├─▶     here
   · ╰──── these two lines

    ‽ try doing it better next time?
`

const wantFlyby = `────[oops::my::bad]────────────────────

    × oops!

   ╭───[bad_file.rs:1:1] This is the part that broke:
 1 │ ╭──▶ line1
 2 │ │╭─▶ line2
 3 │ ││   line3
 4 │ │├─▶ line4
   · │╰──── block 2
 6 │ ├──▶ line5
   · ╰───── block 1

    ‽ try doing it better next time?
`

const wantFlybyNoLabel = `────[oops::my::bad]────────────────────

    × oops!

   ╭───[bad_file.rs:1:1] This is the part that broke:
 1 │ ╭──▶ line1
 2 │ │╭─▶ line2
 3 │ ││   line3
 4 │ │╰─▶ line4
 6 │ ├──▶ line5
   · ╰───── block 1

    ‽ try doing it better next time?
`

const wantMultiAdjacent = `────[oops::my::bad]────────────────────

    × oops!

   ╭───[bad_file.rs:1:1] This is the part that broke:
 1 │ ╭─▶ source
 2 │ ├─▶   text
   · ╰──── this bit here
 3 │ ╭─▶     here
 4 │ ├─▶ more here
   · ╰──── also this bit

    ‽ try doing it better next time?
`

// myBad builds the diagnostic shape every scenario here shares: one source
// named bad_file.rs with a whole-file context window.
func myBad(src string, highlights ...report.Highlight) *report.Diagnostic {
	source := report.NewIndexedSource(report.Source{Name: "bad_file.rs", Text: src})
	return report.New(
		report.Message("oops!"),
		report.Code("oops::my::bad"),
		report.Help("try doing it better next time?"),
		report.WithSnippet(report.Snippet{
			Source:     source,
			Context:    report.Span{Offset: 0, Len: len(src)},
			Message:    "This is the part that broke",
			Highlights: highlights,
		}),
	)
}

func render(t *testing.T, d report.Descriptor) string {
	t.Helper()
	out, err := report.NewRenderer().RenderString(d)
	require.NoError(t, err)
	return out
}

func TestSingleLineHighlight(t *testing.T) {
	t.Parallel()

	d := myBad(
		"source\n  text\n    here",
		report.Highlight{Span: report.Span{Offset: 9, Len: 4}, Label: "this bit here"},
	)
	assert.Equal(t, wantSingleLine, render(t, d))
}

func TestSingleLineHighlightWithEmptySpan(t *testing.T) {
	t.Parallel()

	d := myBad(
		"source\n  text\n    here",
		report.Highlight{Span: report.Span{Offset: 9, Len: 0}, Label: "this bit here"},
	)
	assert.Equal(t, wantEmptySpan, render(t, d))
}

func TestSingleLineHighlightNoLabel(t *testing.T) {
	t.Parallel()

	d := myBad(
		"source\n  text\n    here",
		report.Highlight{Span: report.Span{Offset: 9, Len: 4}},
	)
	assert.Equal(t, wantNoLabel, render(t, d))
}

func TestMultipleSameLineHighlights(t *testing.T) {
	t.Parallel()

	d := myBad(
		"source\n  text text text text text\n    here",
		report.Highlight{Span: report.Span{Offset: 9, Len: 4}, Label: "this bit here"},
		report.Highlight{Span: report.Span{Offset: 14, Len: 4}, Label: "also this bit"},
	)
	assert.Equal(t, wantSameLine, render(t, d))
}

func TestMultilineHighlightAdjacent(t *testing.T) {
	t.Parallel()

	d := myBad(
		"source\n  text\n    here",
		report.Highlight{Span: report.Span{Offset: 9, Len: 11}, Label: "these two lines"},
	)
	assert.Equal(t, wantAdjacent, render(t, d))
}

func TestMultilineHighlightFlyby(t *testing.T) {
	t.Parallel()

	src := "line1\nline2\nline3\nline4\nline5\n"
	d := myBad(
		src,
		report.Highlight{Span: report.Span{Offset: 0, Len: len(src)}, Label: "block 1"},
		report.Highlight{Span: report.Span{Offset: 10, Len: 9}, Label: "block 2"},
	)
	assert.Equal(t, wantFlyby, render(t, d))
}

func TestMultilineHighlightNoLabel(t *testing.T) {
	t.Parallel()

	src := "line1\nline2\nline3\nline4\nline5\n"
	d := myBad(
		src,
		report.Highlight{Span: report.Span{Offset: 0, Len: len(src)}, Label: "block 1"},
		report.Highlight{Span: report.Span{Offset: 10, Len: 9}},
	)
	assert.Equal(t, wantFlybyNoLabel, render(t, d))
}

func TestMultipleMultilineHighlightsAdjacent(t *testing.T) {
	t.Parallel()

	d := myBad(
		"source\n  text\n    here\nmore here",
		report.Highlight{Span: report.Span{Offset: 0, Len: 10}, Label: "this bit here"},
		report.Highlight{Span: report.Span{Offset: 20, Len: 6}, Label: "also this bit"},
	)
	assert.Equal(t, wantMultiAdjacent, render(t, d))
}

func urlDiagnostic() *report.Diagnostic {
	return report.New(
		report.Message("oops!"),
		report.Code("oops::my::bad"),
		report.Help("try doing it better next time?"),
		report.URL("https://example.com"),
	)
}

func TestURLLinks(t *testing.T) {
	t.Parallel()

	out := render(t, urlDiagnostic())
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "click for details")
	assert.Contains(t, out, "oops::my::bad")
}

func TestURLLinksStyled(t *testing.T) {
	t.Parallel()

	out, err := report.NewRenderer().WithTheme(report.Unicode()).RenderString(urlDiagnostic())
	require.NoError(t, err)
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "click for details")
	assert.Contains(t, out, "oops::my::bad")
}

func TestDisableURLLinks(t *testing.T) {
	t.Parallel()

	out, err := report.NewRenderer().WithoutCodeLinking().RenderString(urlDiagnostic())
	require.NoError(t, err)
	assert.NotContains(t, out, "https://example.com")
	assert.NotContains(t, out, "click for details")
	assert.Contains(t, out, "oops::my::bad")
}

func TestRenderIsIdempotent(t *testing.T) {
	t.Parallel()

	d := myBad(
		"source\n  text\n    here",
		report.Highlight{Span: report.Span{Offset: 9, Len: 4}, Label: "this bit here"},
	)
	r := report.NewRenderer()
	first, err := r.RenderString(d)
	require.NoError(t, err)
	second, err := r.RenderString(d)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

var ansiEscapePat = regexp.MustCompile("\033\\[[\\d;]*m")

func TestStyledThemePreservesGeometry(t *testing.T) {
	t.Parallel()

	d := myBad(
		"source\n  text\n    here",
		report.Highlight{Span: report.Span{Offset: 9, Len: 11}, Label: "these two lines"},
	)
	styled, err := report.NewRenderer().WithTheme(report.Unicode()).RenderString(d)
	require.NoError(t, err)
	assert.Equal(t, wantAdjacent, ansiEscapePat.ReplaceAllString(styled, ""))
}

func TestMissingMessage(t *testing.T) {
	t.Parallel()

	_, err := report.NewRenderer().RenderString(report.New(report.Code("oops::my::bad")))
	var invalid *report.InvalidDescriptorError
	require.ErrorAs(t, err, &invalid)
}

func TestOutOfBoundsHighlight(t *testing.T) {
	t.Parallel()

	d := myBad(
		"source\n  text\n    here",
		report.Highlight{Span: report.Span{Offset: 9, Len: 400}, Label: "this bit here"},
	)
	_, err := report.NewRenderer().RenderString(d)
	var oob *report.OutOfBoundsError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, "bad_file.rs", oob.Source)
}

// failWriter fails after a fixed number of writes.
type failWriter struct{ left int }

func (w *failWriter) Write(data []byte) (int, error) {
	if w.left <= 0 {
		return 0, errors.New("disk full")
	}
	w.left--
	return len(data), nil
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	d := myBad(
		"source\n  text\n    here",
		report.Highlight{Span: report.Span{Offset: 9, Len: 4}, Label: "this bit here"},
	)
	err := report.NewRenderer().RenderReport(&failWriter{left: 3}, d)
	var wErr *report.WriteError
	require.ErrorAs(t, err, &wErr)
	assert.EqualError(t, errors.Unwrap(wErr), "disk full")
}

func TestRenderAll(t *testing.T) {
	t.Parallel()

	var rep report.Report
	rep.Error(report.Message("first"))
	rep.Warn(report.Message("second"))

	var out strings.Builder
	errs, warns, err := report.NewRenderer().RenderAll(&out, &rep)
	require.NoError(t, err)
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, warns)
	assert.Contains(t, out.String(), "encountered 1 error and 1 warning")
}
