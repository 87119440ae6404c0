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

// Package report renders rich, human-readable diagnostics: a message, an
// error code, optional help text and documentation URL, and any number of
// annotated source snippets whose highlighted ranges are drawn with
// precisely aligned gutters, underlines, labels, and multi-line rails.
//
// The main entry point is [Renderer.RenderReport], which consumes any
// [Descriptor] (usually a [Diagnostic] built with functional options) and
// writes the assembled report to an [io.Writer]. Rendering is deterministic:
// the same descriptor and theme always produce byte-identical output.
package report
