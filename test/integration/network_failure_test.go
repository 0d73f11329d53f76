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

package integration

import (
	"context"
	"testing"

	traceerrors "github.com/sirseerhq/sirseer-bugtrace/internal/errors"
	"github.com/sirseerhq/sirseer-bugtrace/test/testutil"
)

// TestTransientFailureRetry verifies that consecutive 502s on the first
// request are retried and the analysis completes with correct results.
func TestTransientFailureRetry(t *testing.T) {
	fixture := testutil.NewRepoFixture("acme", "widgets",
		testutil.NewPullFixture(1).WithLabels("bug").WithCommits("aaa111").Build(),
		testutil.NewPullFixture(2).Build(),
	)
	server := testutil.NewGitHubServer(t, fixture)
	server.FailNext(2, 502)

	tmpDir := t.TempDir()
	run := testutil.RunAnalysis(context.Background(), server.URL, "acme", "widgets", testutil.HarnessOptions{
		OutputDir: tmpDir,
	})
	testutil.AssertRunSucceeded(t, run)

	// Two failed attempts on the pulls page, then the clean run: the
	// successful page, two issue lookups, one commit listing.
	if got := server.RequestCount(); got != 6 {
		t.Errorf("RequestCount = %d, want 6", got)
	}
	if run.Stats.APICalls != 6 {
		t.Errorf("APICalls = %d, want 6, failed attempts count", run.Stats.APICalls)
	}
	if run.Stats.PullsScanned != 2 {
		t.Errorf("PullsScanned = %d, want 2", run.Stats.PullsScanned)
	}

	testutil.AssertTextArtifact(t, tmpDir, "widgets", []string{"aaa111"})
}

// TestGatewayTimeoutRecovery verifies a single 504 is absorbed by the
// retry layer.
func TestGatewayTimeoutRecovery(t *testing.T) {
	fixture := testutil.NewRepoFixture("acme", "widgets",
		testutil.NewPullFixture(1).Build(),
	)
	server := testutil.NewGitHubServer(t, fixture)
	server.FailNext(1, 504)

	run := testutil.RunAnalysis(context.Background(), server.URL, "acme", "widgets", testutil.HarnessOptions{})
	testutil.AssertRunSucceeded(t, run)

	// The timed-out attempt, its retry, and the issue lookup.
	if got := server.RequestCount(); got != 3 {
		t.Errorf("RequestCount = %d, want 3", got)
	}
}

// TestRetryExhaustion verifies a persistently failing endpoint surfaces
// as a network failure after the retry budget is spent.
func TestRetryExhaustion(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping: retry backoff waits in real time")
	}

	fixture := testutil.NewRepoFixture("acme", "widgets",
		testutil.NewPullFixture(1).Build(),
	)
	server := testutil.NewGitHubServer(t, fixture)
	server.FailNext(5, 503)

	run := testutil.RunAnalysis(context.Background(), server.URL, "acme", "widgets", testutil.HarnessOptions{})
	testutil.AssertRunFailed(t, run, traceerrors.ErrNetworkFailure)

	if got := server.RequestCount(); got != 5 {
		t.Errorf("RequestCount = %d, want the full retry budget of 5", got)
	}
	if run.Stats.APICalls != 5 {
		t.Errorf("APICalls = %d, want 5", run.Stats.APICalls)
	}
	if run.Stats.RateLimitWaits != 0 {
		t.Errorf("RateLimitWaits = %d, want 0", run.Stats.RateLimitWaits)
	}
}

// TestFlakyNetworkRecovery runs a full analysis against a server that
// fails every fifth request and verifies the retry layer keeps the
// results identical to a clean run.
func TestFlakyNetworkRecovery(t *testing.T) {
	fixture := testutil.GenerateRealisticFixture("acme", "widgets", 10)
	server := testutil.NewFlakyServer(t, fixture, 5)

	defectLabels := []string{"bug", "defect", "kind/bug"}
	tmpDir := t.TempDir()
	run := testutil.RunAnalysis(context.Background(), server.URL, "acme", "widgets", testutil.HarnessOptions{
		Labels:    defectLabels,
		OutputDir: tmpDir,
	})
	testutil.AssertRunSucceeded(t, run)

	// Thirteen logical requests (one page, ten issues, two commit
	// listings) with every fifth server request failing lands on
	// sixteen requests, three of them failures.
	if got := server.RequestCount(); got != 16 {
		t.Errorf("RequestCount = %d, want 16", got)
	}
	if got := server.Failures(); got != 3 {
		t.Errorf("Failures = %d, want 3", got)
	}

	defects := testutil.DefectPulls(fixture, defectLabels)
	if len(run.Result.Pulls) != len(defects) {
		t.Fatalf("defect pulls = %d, want %d", len(run.Result.Pulls), len(defects))
	}
	for i, want := range defects {
		if run.Result.Pulls[i] != want.Number {
			t.Errorf("defect[%d] = #%d, want #%d", i, run.Result.Pulls[i], want.Number)
		}
	}
	testutil.AssertTextArtifact(t, tmpDir, "widgets", flatSHAs(defects))
}
