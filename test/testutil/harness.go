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

package testutil

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirseerhq/sirseer-bugtrace/internal/analysis"
	"github.com/sirseerhq/sirseer-bugtrace/internal/classify"
	"github.com/sirseerhq/sirseer-bugtrace/internal/config"
	"github.com/sirseerhq/sirseer-bugtrace/internal/github"
	"github.com/sirseerhq/sirseer-bugtrace/internal/metadata"
	"github.com/sirseerhq/sirseer-bugtrace/internal/output"
	"github.com/sirseerhq/sirseer-bugtrace/internal/ratelimit"
)

// HarnessOptions tunes one in-process analysis run. Zero values select
// the production defaults.
type HarnessOptions struct {
	// Token is the bearer token presented to the API. Defaults to
	// "test-token".
	Token string

	// Labels overrides the defect label set.
	Labels []string

	// PageSize sets the per_page parameter on list requests.
	PageSize int

	// State filters pull requests by state.
	State string

	// RateLimit overrides rate limit handling. Nil selects the
	// defaults: wait out windows, show progress.
	RateLimit *config.RateLimitConfig

	// Waiter substitutes the rate limit waiter so tests can run the
	// wait arithmetic on a fake clock.
	Waiter *ratelimit.Waiter

	// OutputDir is the artifact destination. Empty disables artifact
	// emission.
	OutputDir string
}

// AnalysisRun captures what one in-process run produced: the assembled
// result, run statistics, the progress stream, and the terminal error if
// the run failed.
type AnalysisRun struct {
	Result *analysis.Result
	Stats  metadata.RunStats
	Output string
	Err    error
}

// RunAnalysis assembles the production pipeline (REST client, classifier,
// analyzer, file emitter) against the API at endpoint and analyzes
// owner/repo. It is the in-process equivalent of the analyze command,
// minus flag and config file handling.
func RunAnalysis(ctx context.Context, endpoint, owner, repo string, opts HarnessOptions) AnalysisRun {
	token := opts.Token
	if token == "" {
		token = "test-token"
	}

	labels := opts.Labels
	if len(labels) == 0 {
		labels = config.DefaultConfig().DefectLabels
	}

	var progress bytes.Buffer
	tracker := metadata.New()

	client := github.NewRESTClient(github.Options{
		Endpoint:  endpoint,
		Auth:      github.NewTokenAuthenticator(token),
		PageSize:  opts.PageSize,
		State:     opts.State,
		RateLimit: opts.RateLimit,
		Progress:  &progress,
		Waiter:    opts.Waiter,
		Usage:     tracker,
	})

	var emitter analysis.Emitter
	if opts.OutputDir != "" {
		emitter = output.NewFileEmitter(opts.OutputDir)
	}

	analyzer := analysis.New(analysis.Config{
		Client:     client,
		Classifier: classify.New(client, labels),
		Emitter:    emitter,
		Progress:   &progress,
		Tracker:    tracker,
	})

	result, err := analyzer.Analyze(ctx, owner, repo)
	return AnalysisRun{
		Result: result,
		Stats:  tracker.Snapshot(),
		Output: progress.String(),
		Err:    err,
	}
}

// AssertRunSucceeded fails the test when the run returned an error.
func AssertRunSucceeded(t *testing.T, run AnalysisRun) {
	t.Helper()

	if run.Err != nil {
		t.Fatalf("Analysis failed: %v\nOutput: %s", run.Err, run.Output)
	}
}

// AssertRunFailed checks that the run failed, and when sentinel is
// non-nil, that the error matches it.
func AssertRunFailed(t *testing.T, run AnalysisRun, sentinel error) {
	t.Helper()

	if run.Err == nil {
		t.Fatal("Expected analysis to fail, but it succeeded")
	}
	if sentinel != nil && !errors.Is(run.Err, sentinel) {
		t.Errorf("Expected error matching %v, got: %v", sentinel, run.Err)
	}
}
