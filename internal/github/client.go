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

package github

import "context"

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests.
type Client interface {
	// ListPullRequests retrieves every pull request in the repository,
	// following Link-header pagination until the API reports no further
	// pages. Results are returned in API order.
	ListPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error)

	// GetIssue fetches the issue record behind a pull request. The URL
	// comes from PullRequest.IssueURL and is already fully qualified.
	GetIssue(ctx context.Context, issueURL string) (*Issue, error)

	// ListPullCommits retrieves the commits of a pull request using the
	// fully-qualified URL from PullRequest.CommitsURL.
	ListPullCommits(ctx context.Context, commitsURL string) ([]Commit, error)

	// ListPullCommitsByNumber retrieves the commits of a pull request
	// addressed by repository and pull number rather than by URL.
	ListPullCommitsByNumber(ctx context.Context, owner, repo string, number int) ([]Commit, error)
}

// UsageRecorder receives notifications about API activity so callers can
// track request volume and rate-limit stalls without coupling the client
// to a concrete tracker.
type UsageRecorder interface {
	// RecordCall is invoked once per HTTP request issued to the API,
	// including retries and post-wait re-issues.
	RecordCall()

	// RecordRateLimitWait is invoked each time the client pauses for a
	// rate-limit window to pass.
	RecordRateLimitWait()
}
