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
)

// Severity represents how serious a diagnostic is.
type Severity int8

const (
	// Red. Indicates a semantic constraint violation.
	Error Severity = 1 + iota
	// Yellow. Indicates something that probably should not be ignored.
	Warning
	// Cyan. A prose suggestion; the diagnostics version of "info".
	Advice
)

// String implements [fmt.Stringer].
func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Advice:
		return "advice"
	default:
		return fmt.Sprintf("Severity(%d)", int8(s))
	}
}

// Descriptor is the read-only surface the renderer consumes.
//
// All methods are pure reads; the renderer never mutates a descriptor and
// calls each method at most a handful of times per render.
type Descriptor interface {
	// Code returns the machine-readable code for this diagnostic, or "" if
	// it has none.
	Code() string

	// Severity returns the severity of this diagnostic.
	Severity() Severity

	// Message returns the top-line message. A descriptor with an empty
	// message is invalid.
	Message() string

	// Help returns prose help to print after the snippets, or "".
	Help() string

	// URL returns a documentation URL for the code, or "".
	URL() string

	// Snippets returns the annotated source windows to render, in order.
	Snippets() []Snippet
}

// Snippet is one contiguous window of source shown with its highlights.
type Snippet struct {
	// The source the window is cut from.
	Source *IndexedSource

	// The window of source shown. All highlights are expected to lie
	// within it.
	Context Span

	// An optional message shown in the snippet's header row.
	Message string

	// The highlighted ranges. Declaration order is preserved: it decides
	// the order labels are emitted in and the order rails are allocated in.
	Highlights []Highlight
}

// Highlight is a span within a snippet's context with an optional label.
type Highlight struct {
	Span  Span
	Label string
}

// Diagnostic is the concrete [Descriptor] most callers use. Construct one
// with [New] and functional options.
type Diagnostic struct {
	code     string
	severity Severity
	message  string
	help     string
	url      string
	snippets []Snippet
}

var _ Descriptor = (*Diagnostic)(nil)

// Option is an option that can be applied to a [Diagnostic].
//
// Nil options are ignored.
type Option func(*Diagnostic)

// New constructs a diagnostic. The severity defaults to [Error].
func New(options ...Option) *Diagnostic {
	d := &Diagnostic{severity: Error}
	return d.With(options...)
}

// With applies the given options to this diagnostic.
//
// Nil values are ignored.
func (d *Diagnostic) With(options ...Option) *Diagnostic {
	for _, option := range options {
		if option != nil {
			option(d)
		}
	}
	return d
}

// Code implements [Descriptor].
func (d *Diagnostic) Code() string { return d.code }

// Severity implements [Descriptor].
func (d *Diagnostic) Severity() Severity { return d.severity }

// Message implements [Descriptor].
func (d *Diagnostic) Message() string { return d.message }

// Help implements [Descriptor].
func (d *Diagnostic) Help() string { return d.help }

// URL implements [Descriptor].
func (d *Diagnostic) URL() string { return d.url }

// Snippets implements [Descriptor].
func (d *Diagnostic) Snippets() []Snippet { return d.snippets }

// Primary returns the first snippet's source and context, if any.
func (d *Diagnostic) Primary() (src *IndexedSource, context Span) {
	if len(d.snippets) == 0 {
		return nil, Span{}
	}
	return d.snippets[0].Source, d.snippets[0].Context
}

// Message returns an Option that sets the main diagnostic message.
func Message(format string, args ...any) Option {
	return func(d *Diagnostic) { d.message = fmt.Sprintf(format, args...) }
}

// Code returns an Option that sets a diagnostic's machine-readable code,
// e.g. "oops::my::bad".
func Code(code string) Option {
	return func(d *Diagnostic) { d.code = code }
}

// WithSeverity returns an Option that overrides the default [Error]
// severity.
func WithSeverity(s Severity) Option {
	return func(d *Diagnostic) { d.severity = s }
}

// Help returns an Option that provides the user with a helpful prose
// suggestion for resolving the diagnostic.
func Help(format string, args ...any) Option {
	return func(d *Diagnostic) { d.help = fmt.Sprintf(format, args...) }
}

// URL returns an Option that attaches a documentation URL to the
// diagnostic's code.
func URL(url string) Option {
	return func(d *Diagnostic) { d.url = url }
}

// WithSnippet returns an Option that appends a snippet to the diagnostic.
// For a snippet without a Source it returns a nil Option, so the snippet
// is not appended.
func WithSnippet(s Snippet) Option {
	if s.Source == nil {
		return nil
	}
	return func(d *Diagnostic) { d.snippets = append(d.snippets, s) }
}

// Report is an ordered collection of diagnostics.
//
// Report is not thread-safe; build one per goroutine and merge, then use
// [Report.Sort] to canonicalize the result.
type Report struct {
	Diagnostics []*Diagnostic
}

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(options ...Option) *Diagnostic {
	return r.push(Error, options)
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(options ...Option) *Diagnostic {
	return r.push(Warning, options)
}

// Advise pushes an advice diagnostic onto this report.
func (r *Report) Advise(options ...Option) *Diagnostic {
	return r.push(Advice, options)
}

func (r *Report) push(severity Severity, options []Option) *Diagnostic {
	d := New(WithSeverity(severity)).With(options...)
	r.Diagnostics = append(r.Diagnostics, d)
	return d
}

// Sort canonicalizes this report's diagnostic order: by source name of the
// primary snippet, then by primary context span, then by message.
//
// Diagnostics without snippets sort as if their source name were empty and
// their span were zero, so they group together at the front of their name
// class.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Diagnostics, func(a, b *Diagnostic) int {
		aSrc, aSpan := a.Primary()
		bSrc, bSpan := b.Primary()

		var aName, bName string
		if aSrc != nil {
			aName = aSrc.Name()
		}
		if bSrc != nil {
			bName = bSrc.Name()
		}
		if diff := strings.Compare(aName, bName); diff != 0 {
			return diff
		}
		if diff := aSpan.Offset - bSpan.Offset; diff != 0 {
			return diff
		}
		if diff := aSpan.End() - bSpan.End(); diff != 0 {
			return diff
		}
		return strings.Compare(a.message, b.message)
	})
}
