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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/fathomlang/report"
)

func TestSearch(t *testing.T) {
	t.Parallel()

	src := report.NewIndexedSource(report.Source{
		Name: "test",
		Text: "source\n  text\n    here",
	})

	tests := []struct {
		offset int
		want   report.Location
	}{
		{offset: 0, want: report.Location{Offset: 0, Line: 1, Column: 1}},
		{offset: 5, want: report.Location{Offset: 5, Line: 1, Column: 6}},
		// The newline belongs to the line it terminates.
		{offset: 6, want: report.Location{Offset: 6, Line: 1, Column: 7}},
		{offset: 7, want: report.Location{Offset: 7, Line: 2, Column: 1}},
		{offset: 9, want: report.Location{Offset: 9, Line: 2, Column: 3}},
		{offset: 13, want: report.Location{Offset: 13, Line: 2, Column: 7}},
		{offset: 14, want: report.Location{Offset: 14, Line: 3, Column: 1}},
		{offset: 22, want: report.Location{Offset: 22, Line: 3, Column: 9}},
	}

	for _, test := range tests {
		got := src.Search(test.offset)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Search(%d) mismatch (-want +got):\n%s", test.offset, diff)
		}
	}
}

func TestSearchPastFinalNewline(t *testing.T) {
	t.Parallel()

	src := report.NewIndexedSource(report.Source{
		Name: "test",
		Text: "line1\nline2\nline3\nline4\nline5\n",
	})

	// The offset one past the final newline sits on the phantom line after
	// it; this is what gives spans that swallow the last line break their
	// end line.
	assert.Equal(t, report.Location{Offset: 30, Line: 6, Column: 1}, src.Search(30))
	assert.Equal(t, report.Location{Offset: 29, Line: 5, Column: 6}, src.Search(29))
	assert.Equal(t, report.Location{Offset: 24, Line: 5, Column: 1}, src.Search(24))
}

func TestSearchTabstops(t *testing.T) {
	t.Parallel()

	src := report.NewIndexedSource(report.Source{
		Name: "test",
		Text: "\tx\n\ty",
	})

	// Tabs expand to the next multiple of four columns.
	assert.Equal(t, report.Location{Offset: 1, Line: 1, Column: 5}, src.Search(1))
	assert.Equal(t, report.Location{Offset: 2, Line: 1, Column: 6}, src.Search(2))
	assert.Equal(t, report.Location{Offset: 4, Line: 2, Column: 5}, src.Search(4))
}

func TestSpanEnd(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 13, report.Span{Offset: 9, Len: 4}.End())
	assert.Equal(t, 9, report.Span{Offset: 9, Len: 0}.End())
	assert.Equal(t, "[9:13]", report.Span{Offset: 9, Len: 4}.String())
}
