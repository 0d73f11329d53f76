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

import (
	"context"
	"fmt"

	traceerrors "github.com/sirseerhq/sirseer-bugtrace/internal/errors"
)

// MockClient is a mock implementation of the GitHub Client interface for testing.
type MockClient struct {
	// PullRequests to return from ListPullRequests
	PullRequests []PullRequest

	// Issues maps issue URLs to the issue returned for them.
	// URLs with no entry yield an issue with no labels.
	Issues map[string]*Issue

	// Commits maps commits URLs to the commit listing returned for them
	Commits map[string][]Commit

	// CommitsByNumber maps pull numbers to commit listings for
	// ListPullCommitsByNumber
	CommitsByNumber map[int][]Commit

	// Error to return from every call
	Error error

	// Behavior flags
	ShouldFailAuth     bool
	ShouldFailNetwork  bool
	ShouldFailNotFound bool

	// Track calls for verification
	ListCalls    int
	IssueCalls   int
	CommitCalls  int
	LastOwner    string
	LastRepo     string
	LastIssueURL string
}

// NewMockClient creates a new mock client with default test data:
// three pull requests of which one is linked to a bug-labeled issue.
func NewMockClient() *MockClient {
	m := &MockClient{
		PullRequests:    generateTestPRs(),
		Issues:          make(map[string]*Issue),
		Commits:         make(map[string][]Commit),
		CommitsByNumber: make(map[int][]Commit),
	}

	m.Issues[testIssueURL(1233)] = &Issue{
		Number: 1233,
		Labels: []Label{{Name: "bug"}, {Name: "parser"}},
	}
	m.Issues[testIssueURL(1234)] = &Issue{
		Number: 1234,
		Labels: []Label{{Name: "enhancement"}},
	}

	fixCommits := []Commit{
		{SHA: "8f3e1a0c4b5d6e7f8091a2b3c4d5e6f708192a3b"},
		{SHA: "c4d5e6f708192a3b8f3e1a0c4b5d6e7f8091a2b3"},
	}
	m.Commits[testCommitsURL(1233)] = fixCommits
	m.CommitsByNumber[1233] = fixCommits

	return m
}

// ListPullRequests implements the Client interface
func (m *MockClient) ListPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error) {
	m.ListCalls++
	m.LastOwner = owner
	m.LastRepo = repo

	if err := m.failure(ctx); err != nil {
		return nil, err
	}
	if m.ShouldFailNotFound || (owner == "nonexistent" && repo == "repo") {
		return nil, fmt.Errorf("repository not found: %w", traceerrors.ErrRepoNotFound)
	}

	return m.PullRequests, nil
}

// GetIssue implements the Client interface
func (m *MockClient) GetIssue(ctx context.Context, issueURL string) (*Issue, error) {
	m.IssueCalls++
	m.LastIssueURL = issueURL

	if err := m.failure(ctx); err != nil {
		return nil, err
	}

	if issue, ok := m.Issues[issueURL]; ok {
		return issue, nil
	}
	return &Issue{}, nil
}

// ListPullCommits implements the Client interface
func (m *MockClient) ListPullCommits(ctx context.Context, commitsURL string) ([]Commit, error) {
	m.CommitCalls++

	if err := m.failure(ctx); err != nil {
		return nil, err
	}

	return m.Commits[commitsURL], nil
}

// ListPullCommitsByNumber implements the Client interface
func (m *MockClient) ListPullCommitsByNumber(ctx context.Context, owner, repo string, number int) ([]Commit, error) {
	m.CommitCalls++
	m.LastOwner = owner
	m.LastRepo = repo

	if err := m.failure(ctx); err != nil {
		return nil, err
	}

	return m.CommitsByNumber[number], nil
}

// failure reports the first simulated error condition that applies.
func (m *MockClient) failure(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if m.ShouldFailAuth {
		return fmt.Errorf("authentication failed: %w", traceerrors.ErrInvalidCredentials)
	}
	if m.ShouldFailNetwork {
		return fmt.Errorf("network timeout: %w", traceerrors.ErrNetworkFailure)
	}
	return m.Error
}

// testIssueURL builds the issue URL used by the default fixture.
func testIssueURL(number int) string {
	return fmt.Sprintf("https://api.github.com/repos/acme/widgets/issues/%d", number)
}

// testCommitsURL builds the commits URL used by the default fixture.
func testCommitsURL(number int) string {
	return fmt.Sprintf("https://api.github.com/repos/acme/widgets/pulls/%d/commits", number)
}

// generateTestPRs creates sample pull request data for testing
func generateTestPRs() []PullRequest {
	return []PullRequest{
		{
			Number:     1234,
			Title:      "Add new feature for data processing",
			State:      "open",
			IssueURL:   testIssueURL(1234),
			CommitsURL: testCommitsURL(1234),
		},
		{
			Number:     1233,
			Title:      "Fix memory leak in parser",
			State:      "closed",
			IssueURL:   testIssueURL(1233),
			CommitsURL: testCommitsURL(1233),
		},
		{
			Number:     1232,
			Title:      "Update documentation",
			State:      "open",
			IssueURL:   testIssueURL(1232),
			CommitsURL: testCommitsURL(1232),
		},
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithPullRequests sets specific pull requests to return
func WithPullRequests(prs []PullRequest) MockClientOption {
	return func(m *MockClient) {
		m.PullRequests = prs
	}
}

// WithIssue sets the issue returned for a given issue URL
func WithIssue(issueURL string, issue *Issue) MockClientOption {
	return func(m *MockClient) {
		m.Issues[issueURL] = issue
	}
}

// WithCommits sets the commit listing returned for a given commits URL
func WithCommits(commitsURL string, commits []Commit) MockClientOption {
	return func(m *MockClient) {
		m.Commits[commitsURL] = commits
	}
}

// WithCommitsByNumber sets the commit listing returned for a pull number
func WithCommitsByNumber(number int, commits []Commit) MockClientOption {
	return func(m *MockClient) {
		m.CommitsByNumber[number] = commits
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
