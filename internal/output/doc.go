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

// Package output renders analysis results into the three artifact
// formats: a plain-text list of commit hashes (one per line), a CSV of
// (pull, commit, owner, repo) rows, and a single JSON document mapping
// pull numbers to their ordered commit hashes.
//
// The format writers target any io.Writer, so callers can render to a
// buffer, a network connection, or standard output. FileEmitter
// composes all three to produce the standard artifact files for a
// repository:
//
//	emitter := output.NewFileEmitter(".")
//	if err := emitter.Emit(result); err != nil {
//	    log.Fatal(err)
//	}
//	// Produces {repo}_pulls.txt, {repo}_pulls.csv, {repo}_pulls.json.
//
// Ordering is preserved end to end: the text artifact follows flat
// accumulation order, and CSV rows follow pull discovery order. The
// JSON object's keys are emitted in sorted order by the encoder, which
// has no semantic significance.
package output
