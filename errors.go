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

import "fmt"

// OutOfBoundsError is returned when a snippet's context or one of its
// highlights escapes its source text. The render is aborted before any
// output is written.
type OutOfBoundsError struct {
	Source    string
	Span      Span
	SourceLen int
}

// Error implements [error].
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"report: span %v is out of bounds for source %q (%d bytes)",
		e.Span, e.Source, e.SourceLen,
	)
}

// InvalidDescriptorError is returned when a descriptor is missing a
// required field.
type InvalidDescriptorError struct {
	Reason string
}

// Error implements [error].
func (e *InvalidDescriptorError) Error() string {
	return "report: invalid descriptor: " + e.Reason
}

// WriteError is returned when the downstream writer fails. Partial output
// may already have been written by the time it surfaces.
type WriteError struct {
	Err error
}

// Error implements [error].
func (e *WriteError) Error() string {
	return "report: write failed: " + e.Err.Error()
}

// Unwrap makes the underlying writer error visible to [errors.Is] and
// [errors.As].
func (e *WriteError) Unwrap() error {
	return e.Err
}
