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

// Package metadata tracks statistics about an analysis run. It records
// API call volume, rate limit stalls, and what the analysis found so the
// CLI can report an accurate end-of-run summary. Statistics live in
// memory for the duration of one run; nothing is persisted.
package metadata

import (
	"fmt"
	"sync"
	"time"
)

// Tracker collects statistics during an analysis run. Create one at the
// start of a run, hand it to the API client as its usage recorder, and
// record analysis counts as pulls are processed. All methods are safe
// for concurrent use.
type Tracker struct {
	mu             sync.Mutex
	startTime      time.Time
	apiCalls       int
	rateLimitWaits int
	pullsScanned   int
	defectPulls    int
	commits        int
}

// New creates a tracker with the clock started.
func New() *Tracker {
	return &Tracker{startTime: time.Now()}
}

// RecordCall records that an API request was issued.
func (t *Tracker) RecordCall() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.apiCalls++
}

// RecordRateLimitWait records that the run paused for a rate limit
// window to pass.
func (t *Tracker) RecordRateLimitWait() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rateLimitWaits++
}

// RecordPull records one scanned pull request and whether it was
// defect-linked.
func (t *Tracker) RecordPull(defect bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pullsScanned++
	if defect {
		t.defectPulls++
	}
}

// RecordCommits records commits collected from a defect-linked pull.
func (t *Tracker) RecordCommits(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commits += n
}

// Snapshot returns the statistics collected so far.
func (t *Tracker) Snapshot() RunStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return RunStats{
		APICalls:       t.apiCalls,
		RateLimitWaits: t.rateLimitWaits,
		PullsScanned:   t.pullsScanned,
		DefectPulls:    t.defectPulls,
		Commits:        t.commits,
		Elapsed:        time.Since(t.startTime),
	}
}

// Summary returns a one-line digest of the run suitable for a console
// notice.
func (t *Tracker) Summary() string {
	s := t.Snapshot()
	return fmt.Sprintf("Analyzed %d pull requests in %s: %d defect-linked, %d commits, %d API calls, %d rate limit waits",
		s.PullsScanned, s.Elapsed.Round(time.Millisecond), s.DefectPulls, s.Commits, s.APICalls, s.RateLimitWaits)
}
