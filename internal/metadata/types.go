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

package metadata

import "time"

// RunStats is a point-in-time snapshot of the statistics collected during
// an analysis run. It captures API usage alongside what the analysis
// found, which is what the end-of-run summary reports.
type RunStats struct {
	// APICalls is the number of HTTP requests issued, including retries
	// and rate-limit re-issues.
	APICalls int

	// RateLimitWaits is the number of times the run paused for an API
	// quota window to pass.
	RateLimitWaits int

	// PullsScanned is the number of pull requests examined.
	PullsScanned int

	// DefectPulls is how many of the scanned pulls were defect-linked.
	DefectPulls int

	// Commits is the total number of commits collected across all
	// defect-linked pulls.
	Commits int

	// Elapsed is the wall-clock time since the tracker was created.
	Elapsed time.Duration
}
