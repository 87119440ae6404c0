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

// Package reportyaml decodes diagnostic descriptors from YAML documents.
//
// This is the serialized form used by the splain CLI and by the renderer's
// golden test corpus. A document looks like:
//
//	code: oops::my::bad
//	severity: error
//	message: oops!
//	help: try doing it better next time?
//	url: https://example.com
//	sources:
//	  - name: bad_file.rs
//	    text: "source\n  text\n    here"
//	snippets:
//	  - source: bad_file.rs
//	    message: This is the part that broke
//	    context: {offset: 0, len: 22}
//	    highlights:
//	      - {offset: 9, len: 4, label: this bit here}
package reportyaml

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fathomlang/report"
)

type document struct {
	Code     string    `yaml:"code"`
	Severity string    `yaml:"severity"`
	Message  string    `yaml:"message"`
	Help     string    `yaml:"help"`
	URL      string    `yaml:"url"`
	Sources  []source  `yaml:"sources"`
	Snippets []snippet `yaml:"snippets"`
}

type source struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

type snippet struct {
	Source     string      `yaml:"source"`
	Message    string      `yaml:"message"`
	Context    span        `yaml:"context"`
	Highlights []highlight `yaml:"highlights"`
}

type span struct {
	Offset int `yaml:"offset"`
	Len    int `yaml:"len"`
}

type highlight struct {
	Offset int    `yaml:"offset"`
	Len    int    `yaml:"len"`
	Label  string `yaml:"label"`
}

// Unmarshal decodes a single diagnostic descriptor from YAML.
func Unmarshal(data []byte) (*report.Diagnostic, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("reportyaml: %w", err)
	}

	if doc.Message == "" {
		return nil, fmt.Errorf("reportyaml: missing message")
	}

	severity := report.Error
	switch doc.Severity {
	case "", "error":
	case "warning":
		severity = report.Warning
	case "advice":
		severity = report.Advice
	default:
		return nil, fmt.Errorf("reportyaml: invalid severity %q", doc.Severity)
	}

	sources := make(map[string]*report.IndexedSource, len(doc.Sources))
	for _, src := range doc.Sources {
		if src.Name == "" {
			return nil, fmt.Errorf("reportyaml: source without a name")
		}
		if _, ok := sources[src.Name]; ok {
			return nil, fmt.Errorf("reportyaml: duplicate source %q", src.Name)
		}
		sources[src.Name] = report.NewIndexedSource(report.Source{
			Name: src.Name,
			Text: src.Text,
		})
	}

	d := report.New(
		report.WithSeverity(severity),
		report.Message("%s", doc.Message),
		report.Code(doc.Code),
		report.Help("%s", doc.Help),
		report.URL(doc.URL),
	)

	for i, snip := range doc.Snippets {
		src, ok := sources[snip.Source]
		if !ok {
			return nil, fmt.Errorf("reportyaml: snippet[%d] references unknown source %q", i, snip.Source)
		}

		highlights := make([]report.Highlight, len(snip.Highlights))
		for j, h := range snip.Highlights {
			highlights[j] = report.Highlight{
				Span:  report.Span{Offset: h.Offset, Len: h.Len},
				Label: h.Label,
			}
		}

		d.With(report.WithSnippet(report.Snippet{
			Source:     src,
			Context:    report.Span{Offset: snip.Context.Offset, Len: snip.Context.Len},
			Message:    snip.Message,
			Highlights: highlights,
		}))
	}

	return d, nil
}
