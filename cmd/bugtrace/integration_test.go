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

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	traceerrors "github.com/sirseerhq/sirseer-bugtrace/internal/errors"
	"github.com/sirseerhq/sirseer-bugtrace/test/testutil"
)

// runCommand executes the CLI in-process with the given arguments and
// returns captured output plus the command error.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestAnalyzeCommand_EndToEnd(t *testing.T) {
	fixture := testutil.NewRepoFixture("acme", "widgets",
		testutil.NewPullFixture(101).
			WithLabels("enhancement").
			WithCommits("1111111111111111111111111111111111111111").
			Build(),
		testutil.NewPullFixture(102).
			WithLabels("bug", "area/parser").
			WithCommits(
				"2222222222222222222222222222222222222222",
				"3333333333333333333333333333333333333333",
			).
			Build(),
		testutil.NewPullFixture(103).Build(),
	)
	server := testutil.NewGitHubServer(t, fixture)
	server.RequireToken("test-token")

	tmpDir := t.TempDir()
	cfgPath := testutil.WriteConfigFile(t, tmpDir,
		fmt.Sprintf("github:\n  api_endpoint: %s\n", server.URL))

	output, err := runCommand(t,
		"analyze", "acme/widgets",
		"--config", cfgPath,
		"--token", "test-token",
		"--output-dir", tmpDir)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	testutil.AssertTextArtifact(t, tmpDir, "widgets", []string{
		"2222222222222222222222222222222222222222",
		"3333333333333333333333333333333333333333",
	})
	testutil.AssertCSVArtifact(t, tmpDir, "widgets", [][]string{
		{"102", "2222222222222222222222222222222222222222", "acme", "widgets"},
		{"102", "3333333333333333333333333333333333333333", "acme", "widgets"},
	})
	testutil.AssertJSONArtifact(t, tmpDir, "widgets", "acme", map[string][]string{
		"102": {
			"2222222222222222222222222222222222222222",
			"3333333333333333333333333333333333333333",
		},
	})

	testutil.AssertContainsString(t, output, "Checking for defects associated with pull requests.")
	testutil.AssertContainsString(t, output, "Analyzed 3 pull requests")
	testutil.AssertContainsString(t, output, "1 defect-linked")
	testutil.AssertContainsString(t, output, "2 commits")
	testutil.AssertContainsString(t, output, "widgets_pulls.txt")
}

func TestAnalyzeCommand_CustomLabels(t *testing.T) {
	fixture := testutil.NewRepoFixture("acme", "widgets",
		testutil.NewPullFixture(7).
			WithLabels("kind/regression").
			WithCommits("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa").
			Build(),
		testutil.NewPullFixture(8).
			WithLabels("bug").
			WithCommits("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb").
			Build(),
	)
	server := testutil.NewGitHubServer(t, fixture)

	tmpDir := t.TempDir()
	cfgPath := testutil.WriteConfigFile(t, tmpDir,
		fmt.Sprintf("github:\n  api_endpoint: %s\n", server.URL))

	// The flag replaces the default label set, so "bug" no longer counts.
	_, err := runCommand(t,
		"analyze", "acme/widgets",
		"--config", cfgPath,
		"--token", "test-token",
		"--labels", "kind/regression",
		"--output-dir", tmpDir)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	testutil.AssertTextArtifact(t, tmpDir, "widgets", []string{
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	})
	testutil.AssertJSONArtifact(t, tmpDir, "widgets", "acme", map[string][]string{
		"7": {"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
	})
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	// Guard against ambient credentials leaking into the no-credential
	// cases.
	for _, key := range []string{"BUGTRACE_ITEST_TOKEN", "GITHUB_USERNAME", "GITHUB_PASSWORD"} {
		old, had := os.LookupEnv(key)
		os.Unsetenv(key)
		defer func(key, old string, had bool) {
			if had {
				os.Setenv(key, old)
			}
		}(key, old, had)
	}

	fixture := testutil.NewRepoFixture("acme", "widgets",
		testutil.NewPullFixture(1).WithLabels("bug").WithCommits("abc123").Build(),
	)

	tests := []struct {
		name       string
		repoArg    string
		setup      func(t *testing.T, server *testutil.GitHubServer)
		extraArgs  []string
		wantErr    error
		wantErrMsg string
		wantCode   int
	}{
		{
			name:       "invalid repo format",
			repoArg:    "invalid",
			extraArgs:  []string{"--token", "test-token"},
			wantErrMsg: "invalid repository format",
			wantCode:   1,
		},
		{
			name:     "missing credentials",
			repoArg:  "acme/widgets",
			wantErr:  traceerrors.ErrMissingCredentials,
			wantCode: 2,
		},
		{
			name:    "rejected credentials",
			repoArg: "acme/widgets",
			setup: func(t *testing.T, server *testutil.GitHubServer) {
				server.RequireToken("right-token")
			},
			extraArgs: []string{"--token", "wrong-token"},
			wantErr:   traceerrors.ErrInvalidCredentials,
			wantCode:  2,
		},
		{
			name:      "repository not found",
			repoArg:   "ghost/missing",
			extraArgs: []string{"--token", "test-token"},
			wantErr:   traceerrors.ErrRepoNotFound,
			wantCode:  2,
		},
		{
			name:    "rate limited with waiting disabled",
			repoArg: "acme/widgets",
			setup: func(t *testing.T, server *testutil.GitHubServer) {
				server.RateLimitNext(1, time.Hour)
			},
			extraArgs: []string{"--token", "test-token", "--no-rate-limit-wait"},
			wantErr:   traceerrors.ErrRateLimit,
			wantCode:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := testutil.NewGitHubServer(t, fixture)
			if tt.setup != nil {
				tt.setup(t, server)
			}

			tmpDir := t.TempDir()
			cfgPath := testutil.WriteConfigFile(t, tmpDir, fmt.Sprintf(
				"github:\n  api_endpoint: %s\n  token_env: BUGTRACE_ITEST_TOKEN\n", server.URL))

			args := append([]string{
				"analyze", tt.repoArg,
				"--config", cfgPath,
				"--output-dir", tmpDir,
			}, tt.extraArgs...)

			_, err := runCommand(t, args...)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErrMsg != "" && !strings.Contains(err.Error(), tt.wantErrMsg) {
				t.Errorf("error = %v, want message containing %q", err, tt.wantErrMsg)
			}
			if got := mapErrorToExitCode(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d", got, tt.wantCode)
			}
		})
	}
}

func TestCommitsCommand(t *testing.T) {
	fixture := testutil.NewRepoFixture("acme", "widgets",
		testutil.NewPullFixture(1233).
			WithLabels("bug").
			WithCommits(
				"6dcb09b5b57875f334f61aebed695e2e4193db5e",
				"3f1b3b5c2f4f334f61aebed695e2e4193db5e6dc",
			).
			Build(),
	)
	server := testutil.NewGitHubServer(t, fixture)
	server.RequireToken("test-token")

	tmpDir := t.TempDir()
	cfgPath := testutil.WriteConfigFile(t, tmpDir,
		fmt.Sprintf("github:\n  api_endpoint: %s\n", server.URL))

	output, err := runCommand(t,
		"commits", "acme/widgets", "1233",
		"--config", cfgPath,
		"--token", "test-token")
	if err != nil {
		t.Fatalf("commits failed: %v", err)
	}

	want := "6dcb09b5b57875f334f61aebed695e2e4193db5e\n3f1b3b5c2f4f334f61aebed695e2e4193db5e6dc\n"
	if output != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestCommitsCommand_InvalidNumber(t *testing.T) {
	for _, arg := range []string{"abc", "0"} {
		t.Run(arg, func(t *testing.T) {
			_, err := runCommand(t, "commits", "acme/widgets", arg, "--token", "test-token")
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), "invalid pull request number") {
				t.Errorf("error = %v, want invalid pull request number", err)
			}
		})
	}
}
