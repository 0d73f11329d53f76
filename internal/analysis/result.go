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

package analysis

// Result is the outcome of analyzing one repository. Every SHA in the
// flat sequence also appears in PullCommits under the pull that produced
// it, and PullCommits holds only defect-linked pulls.
type Result struct {
	Owner string
	Repo  string

	// SHAs is the flat sequence of commit SHAs across all defect-linked
	// pulls: pull iteration order, then commit order within each pull.
	SHAs []string

	// Pulls lists the defect-linked pull numbers in the order they were
	// encountered. Row-oriented output follows this order.
	Pulls []int

	// PullCommits maps each defect-linked pull number to its ordered
	// commit SHAs. A defect-linked pull with no commits maps to an
	// empty list.
	PullCommits map[int][]string
}

// Emitter persists a finished analysis result as output artifacts.
// Implementations must treat the result as read-only.
type Emitter interface {
	Emit(result *Result) error
}
