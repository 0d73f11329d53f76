// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package console provides the fixed prefixes and helpers for user-facing
// notices. Informational notices carry the "NOTE: " prefix and go to standard
// output; errors carry "ERROR: " and go to standard error. Continuation lines
// are indented to align under the prefix so multi-line notices read as one
// block:
//
//	NOTE: Rate limit hit, waiting for reset...
//	      Waiting: 28 minutes
//
// The notice text is plain and stable; scripts and tests match on it.
package console

import (
	"fmt"
	"io"
	"strings"
)

const (
	// NotePrefix marks informational notices on standard output.
	NotePrefix = "NOTE: "

	// ErrorPrefix marks error notices on standard error.
	ErrorPrefix = "ERROR: "
)

var noteIndent = strings.Repeat(" ", len(NotePrefix))

// Notef writes a prefixed informational notice followed by a newline.
func Notef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, NotePrefix+format+"\n", args...)
}

// Contf writes a continuation line aligned under a preceding notice.
func Contf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, noteIndent+format+"\n", args...)
}

// Errorf writes a prefixed error notice followed by a newline.
func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ErrorPrefix+format+"\n", args...)
}
