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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fathomlang/report"
)

func TestDiagnosticOptions(t *testing.T) {
	t.Parallel()

	d := report.New(
		report.Message("oops %d!", 42),
		report.Code("oops::my::bad"),
		report.Help("try doing it better next time?"),
		report.URL("https://example.com"),
	)

	assert.Equal(t, "oops 42!", d.Message())
	assert.Equal(t, "oops::my::bad", d.Code())
	assert.Equal(t, "try doing it better next time?", d.Help())
	assert.Equal(t, "https://example.com", d.URL())
	// Severity defaults to error.
	assert.Equal(t, report.Error, d.Severity())
	assert.Empty(t, d.Snippets())
}

func TestSeverityString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "error", report.Error.String())
	assert.Equal(t, "warning", report.Warning.String())
	assert.Equal(t, "advice", report.Advice.String())
}

func TestReportSort(t *testing.T) {
	t.Parallel()

	src := func(name string) *report.IndexedSource {
		return report.NewIndexedSource(report.Source{Name: name, Text: "abc\ndef\n"})
	}
	snip := func(name string, offset int) report.Option {
		return report.WithSnippet(report.Snippet{
			Source:  src(name),
			Context: report.Span{Offset: offset, Len: 2},
		})
	}

	var rep report.Report
	rep.Error(report.Message("third"), snip("b.txt", 0))
	rep.Error(report.Message("second"), snip("a.txt", 4))
	rep.Warn(report.Message("first"), snip("a.txt", 0))
	rep.Error(report.Message("spanless"))

	rep.Sort()

	var messages []string
	for _, d := range rep.Diagnostics {
		messages = append(messages, d.Message())
	}
	assert.Equal(t, []string{"spanless", "first", "second", "third"}, messages)
}
