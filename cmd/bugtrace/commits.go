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
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-bugtrace/internal/config"
	"github.com/sirseerhq/sirseer-bugtrace/internal/github"
)

// commitsOptions carries the flag values for one commits invocation.
type commitsOptions struct {
	repoArg    string
	number     int
	configPath string
	token      string
	username   string
	password   string

	stdout io.Writer
}

func newCommitsCommand() *cobra.Command {
	opts := commitsOptions{}

	cmd := &cobra.Command{
		Use:   "commits <org>/<repo> <number>",
		Short: "List the commit hashes of a single pull request",
		Long: `Look up one pull request by number and print its commit hashes, one per
line, in the order the API returns them. Useful for spot checks without
running a full analysis.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[1])
			if err != nil || number <= 0 {
				return fmt.Errorf("invalid pull request number: %q", args[1])
			}
			opts.repoArg = args[0]
			opts.number = number
			opts.stdout = cmd.OutOrStdout()
			return runCommits(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to config file (default: .sirseer-bugtrace.yaml)")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides the token env var)")
	cmd.Flags().StringVar(&opts.username, "user", "", "GitHub username for basic auth")
	cmd.Flags().StringVar(&opts.password, "password", "", "GitHub password for basic auth")

	return cmd
}

// runCommits executes the commits command
func runCommits(ctx context.Context, opts commitsOptions) error {
	owner, repo, err := parseRepository(opts.repoArg)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigForRepo(opts.configPath, opts.repoArg)
	if err != nil {
		return err
	}
	if opts.username != "" {
		cfg.Auth.Username = opts.username
	}
	if opts.password != "" {
		cfg.Auth.Password = opts.password
	}

	auth, err := resolveAuthenticator(cfg, opts.token)
	if err != nil {
		return err
	}

	stdout := opts.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	// No Progress writer: the commit list itself is the output.
	client := github.NewRESTClient(github.Options{
		Endpoint:  cfg.GitHub.APIEndpoint,
		Auth:      auth,
		PageSize:  cfg.Defaults.PageSize,
		State:     cfg.Defaults.StateFilter,
		RateLimit: &cfg.RateLimit,
	})

	commits, err := client.ListPullCommitsByNumber(ctx, owner, repo, opts.number)
	if err != nil {
		return err
	}

	for _, sha := range github.CommitSHAs(commits) {
		fmt.Fprintln(stdout, sha)
	}

	return nil
}
