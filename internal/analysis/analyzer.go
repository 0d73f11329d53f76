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

import (
	"context"
	"fmt"
	"io"

	"github.com/sirseerhq/sirseer-bugtrace/internal/classify"
	"github.com/sirseerhq/sirseer-bugtrace/internal/console"
	"github.com/sirseerhq/sirseer-bugtrace/internal/github"
	"github.com/sirseerhq/sirseer-bugtrace/internal/metadata"
)

const (
	// markerInterval is how many processed pulls one progress marker
	// represents.
	markerInterval = 10

	// markersPerLine is how many markers print before a line break.
	markersPerLine = 71
)

// Config assembles an Analyzer's collaborators.
type Config struct {
	// Client fetches pulls, issues, and commits.
	Client github.Client

	// Classifier decides which pulls are defect-linked.
	Classifier *classify.Classifier

	// Emitter writes the output artifacts once analysis completes.
	// May be nil, in which case no artifacts are written.
	Emitter Emitter

	// Progress receives notices and progress markers. May be nil.
	Progress io.Writer

	// Tracker records run statistics. May be nil.
	Tracker *metadata.Tracker
}

// Analyzer runs the defect analysis pipeline for one repository.
type Analyzer struct {
	client     github.Client
	classifier *classify.Classifier
	emitter    Emitter
	progress   io.Writer
	tracker    *metadata.Tracker
}

// New creates an Analyzer from the given collaborators.
func New(cfg Config) *Analyzer {
	return &Analyzer{
		client:     cfg.Client,
		classifier: cfg.Classifier,
		emitter:    cfg.Emitter,
		progress:   cfg.Progress,
		tracker:    cfg.Tracker,
	}
}

// Analyze fetches all pull requests for owner/repo, classifies each one,
// collects commit SHAs from the defect-linked pulls, emits the output
// artifacts, and returns the assembled result. Any error aborts the run;
// no artifacts are written on failure.
func (a *Analyzer) Analyze(ctx context.Context, owner, repo string) (*Result, error) {
	pulls, err := a.client.ListPullRequests(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	if a.progress != nil {
		console.Notef(a.progress, "Checking for defects associated with pull requests.")
		console.Contf(a.progress, "This might take a bit of time...")
	}

	result := &Result{
		Owner:       owner,
		Repo:        repo,
		PullCommits: make(map[int][]string),
	}

	processed := 0
	markers := 0
	for _, pull := range pulls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		defect, err := a.classifier.IsDefect(ctx, pull)
		if err != nil {
			return nil, err
		}
		if a.tracker != nil {
			a.tracker.RecordPull(defect)
		}

		if defect {
			commits, err := a.extractCommits(ctx, owner, repo, pull)
			if err != nil {
				return nil, err
			}

			shas := github.CommitSHAs(commits)
			result.SHAs = append(result.SHAs, shas...)
			result.Pulls = append(result.Pulls, pull.Number)
			result.PullCommits[pull.Number] = shas

			if a.tracker != nil {
				a.tracker.RecordCommits(len(shas))
			}
		}

		processed++
		if a.progress != nil && processed%markerInterval == 0 {
			fmt.Fprint(a.progress, "*")
			markers++
			if markers == markersPerLine {
				fmt.Fprintln(a.progress)
				markers = 0
			}
		}
	}

	if a.progress != nil {
		fmt.Fprintln(a.progress)
	}

	if a.emitter != nil {
		if err := a.emitter.Emit(result); err != nil {
			return nil, fmt.Errorf("writing analysis artifacts: %w", err)
		}
	}

	return result, nil
}

// extractCommits retrieves the commits of a defect-linked pull. The
// embedded commits URL is preferred; pulls that arrive without one fall
// back to the by-number endpoint.
func (a *Analyzer) extractCommits(ctx context.Context, owner, repo string, pull github.PullRequest) ([]github.Commit, error) {
	if pull.CommitsURL != "" {
		return a.client.ListPullCommits(ctx, pull.CommitsURL)
	}
	return a.client.ListPullCommitsByNumber(ctx, owner, repo, pull.Number)
}
