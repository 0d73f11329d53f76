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

import (
	"strings"
	"testing"

	"github.com/sirseerhq/sirseer-bugtrace/internal/github"
)

// Compile-time check that Tracker can serve as the client's usage recorder
var _ github.UsageRecorder = (*Tracker)(nil)

func TestTracker_Counts(t *testing.T) {
	tracker := New()

	tracker.RecordCall()
	tracker.RecordCall()
	tracker.RecordCall()
	tracker.RecordRateLimitWait()

	tracker.RecordPull(false)
	tracker.RecordPull(true)
	tracker.RecordPull(true)
	tracker.RecordPull(false)

	tracker.RecordCommits(2)
	tracker.RecordCommits(3)

	stats := tracker.Snapshot()

	if stats.APICalls != 3 {
		t.Errorf("APICalls = %d, want 3", stats.APICalls)
	}
	if stats.RateLimitWaits != 1 {
		t.Errorf("RateLimitWaits = %d, want 1", stats.RateLimitWaits)
	}
	if stats.PullsScanned != 4 {
		t.Errorf("PullsScanned = %d, want 4", stats.PullsScanned)
	}
	if stats.DefectPulls != 2 {
		t.Errorf("DefectPulls = %d, want 2", stats.DefectPulls)
	}
	if stats.Commits != 5 {
		t.Errorf("Commits = %d, want 5", stats.Commits)
	}
	if stats.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0", stats.Elapsed)
	}
}

func TestTracker_EmptyRun(t *testing.T) {
	tracker := New()
	stats := tracker.Snapshot()

	if stats.APICalls != 0 || stats.PullsScanned != 0 || stats.Commits != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
}

func TestTracker_Summary(t *testing.T) {
	tracker := New()
	tracker.RecordCall()
	tracker.RecordPull(true)
	tracker.RecordCommits(4)

	summary := tracker.Summary()

	for _, want := range []string{
		"Analyzed 1 pull requests",
		"1 defect-linked",
		"4 commits",
		"1 API calls",
		"0 rate limit waits",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary %q missing %q", summary, want)
		}
	}
}
