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

// Package analysis drives the end-to-end defect analysis of a
// repository: fetch every pull request, classify each one against the
// defect label set, collect the commit SHAs of the defect-linked pulls,
// and hand the finished result to an emitter for artifact writing.
//
// The run is strictly sequential. Pulls are processed in the order the
// API returned them, and within each pull, commits keep API order. The
// result is assembled incrementally but only emitted once complete; a
// fatal error anywhere aborts the run without partial artifacts.
package analysis
