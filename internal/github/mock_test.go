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
	"errors"
	"testing"

	traceerrors "github.com/sirseerhq/sirseer-bugtrace/internal/errors"
)

// Compile-time check that MockClient implements Client
var _ Client = (*MockClient)(nil)

func TestMockClient_ListPullRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("returns default test data", func(t *testing.T) {
		mock := NewMockClient()

		pulls, err := mock.ListPullRequests(ctx, "test", "repo")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(pulls) != 3 {
			t.Errorf("expected 3 PRs, got %d", len(pulls))
		}

		// Verify call tracking
		if mock.ListCalls != 1 {
			t.Errorf("expected 1 call, got %d", mock.ListCalls)
		}
		if mock.LastOwner != "test" {
			t.Errorf("expected owner 'test', got %q", mock.LastOwner)
		}
		if mock.LastRepo != "repo" {
			t.Errorf("expected repo 'repo', got %q", mock.LastRepo)
		}
	})

	t.Run("simulates auth failure", func(t *testing.T) {
		mock := NewMockClientWithOptions(WithAuthFailure())

		_, err := mock.ListPullRequests(ctx, "test", "repo")
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		if !errors.Is(err, traceerrors.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("simulates network failure", func(t *testing.T) {
		mock := NewMockClient()
		mock.ShouldFailNetwork = true

		_, err := mock.ListPullRequests(ctx, "test", "repo")
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		if !errors.Is(err, traceerrors.ErrNetworkFailure) {
			t.Errorf("expected ErrNetworkFailure, got %v", err)
		}
	})

	t.Run("simulates repo not found", func(t *testing.T) {
		mock := NewMockClient()

		_, err := mock.ListPullRequests(ctx, "nonexistent", "repo")
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		if !errors.Is(err, traceerrors.ErrRepoNotFound) {
			t.Errorf("expected ErrRepoNotFound, got %v", err)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		mock := NewMockClient()

		cancelCtx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := mock.ListPullRequests(cancelCtx, "test", "repo")
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("custom pull requests", func(t *testing.T) {
		customPRs := []PullRequest{
			{Number: 1, Title: "Custom PR", State: "open"},
		}

		mock := NewMockClientWithOptions(WithPullRequests(customPRs))

		pulls, err := mock.ListPullRequests(ctx, "test", "repo")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(pulls) != 1 {
			t.Errorf("expected 1 PR, got %d", len(pulls))
		}

		if pulls[0].Title != "Custom PR" {
			t.Errorf("expected title 'Custom PR', got %q", pulls[0].Title)
		}
	})
}

func TestMockClient_GetIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("returns configured issue", func(t *testing.T) {
		mock := NewMockClient()

		issue, err := mock.GetIssue(ctx, testIssueURL(1233))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		labels := issue.LabelNames()
		if len(labels) != 2 || labels[0] != "bug" {
			t.Errorf("expected [bug parser] labels, got %v", labels)
		}
		if mock.LastIssueURL != testIssueURL(1233) {
			t.Errorf("expected issue URL to be tracked, got %q", mock.LastIssueURL)
		}
	})

	t.Run("unknown URL yields unlabeled issue", func(t *testing.T) {
		mock := NewMockClient()

		issue, err := mock.GetIssue(ctx, "https://api.github.com/repos/acme/widgets/issues/9999")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(issue.LabelNames()) != 0 {
			t.Errorf("expected no labels, got %v", issue.LabelNames())
		}
	})

	t.Run("with custom issue", func(t *testing.T) {
		url := "https://example.test/issues/7"
		mock := NewMockClientWithOptions(WithIssue(url, &Issue{
			Number: 7,
			Labels: []Label{{Name: "kind/bug"}},
		}))

		issue, err := mock.GetIssue(ctx, url)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := issue.LabelNames(); len(got) != 1 || got[0] != "kind/bug" {
			t.Errorf("expected [kind/bug], got %v", got)
		}
	})
}

func TestMockClient_Commits(t *testing.T) {
	ctx := context.Background()

	t.Run("by URL and by number agree", func(t *testing.T) {
		mock := NewMockClient()

		byURL, err := mock.ListPullCommits(ctx, testCommitsURL(1233))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		byNum, err := mock.ListPullCommitsByNumber(ctx, "acme", "widgets", 1233)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(byURL) != 2 || len(byNum) != 2 {
			t.Fatalf("expected 2 commits each, got %d and %d", len(byURL), len(byNum))
		}
		for i := range byURL {
			if byURL[i].SHA != byNum[i].SHA {
				t.Errorf("commit %d: %q != %q", i, byURL[i].SHA, byNum[i].SHA)
			}
		}
		if mock.CommitCalls != 2 {
			t.Errorf("expected 2 commit calls, got %d", mock.CommitCalls)
		}
	})

	t.Run("unknown pull yields no commits", func(t *testing.T) {
		mock := NewMockClient()

		commits, err := mock.ListPullCommits(ctx, testCommitsURL(1232))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(commits) != 0 {
			t.Errorf("expected no commits, got %d", len(commits))
		}
	})
}

func TestMockClientOptions(t *testing.T) {
	t.Run("with custom error", func(t *testing.T) {
		customErr := errors.New("custom error")
		mock := NewMockClientWithOptions(WithError(customErr))

		_, err := mock.ListPullRequests(context.Background(), "test", "repo")
		if err == nil {
			t.Fatal("expected error, got nil")
		}

		if !errors.Is(err, customErr) {
			t.Errorf("expected custom error, got %v", err)
		}
	})

	t.Run("with commits by number", func(t *testing.T) {
		mock := NewMockClientWithOptions(WithCommitsByNumber(42, []Commit{{SHA: "abc123"}}))

		commits, err := mock.ListPullCommitsByNumber(context.Background(), "test", "repo", 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(commits) != 1 || commits[0].SHA != "abc123" {
			t.Errorf("expected [abc123], got %v", commits)
		}
	})
}
