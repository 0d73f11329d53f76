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

// Package classify decides whether pull requests address defects.
//
// A pull request counts as defect-linked when the issue behind it
// carries at least one label from a configured defect label set. The
// label set comes from configuration rather than being baked in, so
// repositories with their own labeling conventions (kind/bug,
// regression, and so on) can be analyzed without code changes.
package classify

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirseerhq/sirseer-bugtrace/internal/github"
)

// IssueFetcher is the single API capability the classifier needs.
// *github.RESTClient and *github.MockClient both satisfy it.
type IssueFetcher interface {
	GetIssue(ctx context.Context, issueURL string) (*github.Issue, error)
}

// Classifier tests pull requests for defect linkage by intersecting
// their issue labels with the defect label set.
type Classifier struct {
	client IssueFetcher
	labels map[string]struct{}
}

// New creates a Classifier that treats the given label names as defect
// markers. Matching is exact, including case.
func New(client IssueFetcher, labels []string) *Classifier {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return &Classifier{client: client, labels: set}
}

// IsDefect reports whether the pull request is linked to an issue whose
// labels intersect the defect set. A pull request without an issue URL
// is never defect-linked and costs no API call.
func (c *Classifier) IsDefect(ctx context.Context, pull github.PullRequest) (bool, error) {
	if pull.IssueURL == "" {
		return false, nil
	}

	issue, err := c.client.GetIssue(ctx, pull.IssueURL)
	if err != nil {
		return false, fmt.Errorf("classifying pull #%d: %w", pull.Number, err)
	}

	for _, name := range issue.LabelNames() {
		if _, ok := c.labels[name]; ok {
			return true, nil
		}
	}
	return false, nil
}

// Labels returns the configured defect label set in sorted order.
func (c *Classifier) Labels() []string {
	labels := make([]string, 0, len(c.labels))
	for l := range c.labels {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
