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
	"strings"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-bugtrace/internal/analysis"
	"github.com/sirseerhq/sirseer-bugtrace/internal/classify"
	"github.com/sirseerhq/sirseer-bugtrace/internal/config"
	"github.com/sirseerhq/sirseer-bugtrace/internal/console"
	traceerrors "github.com/sirseerhq/sirseer-bugtrace/internal/errors"
	"github.com/sirseerhq/sirseer-bugtrace/internal/github"
	"github.com/sirseerhq/sirseer-bugtrace/internal/metadata"
	"github.com/sirseerhq/sirseer-bugtrace/internal/output"
)

// analyzeOptions carries the flag values for one analyze invocation.
// stdout is injectable so tests can capture the progress stream.
type analyzeOptions struct {
	repoArg    string
	configPath string
	token      string
	username   string
	password   string
	labels     []string
	state      string
	pageSize   int
	outputDir  string
	noWait     bool

	stdout io.Writer
}

func newAnalyzeCommand() *cobra.Command {
	opts := analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <org>/<repo>",
		Short: "Find defect-linked pull requests and their commits",
		Long: `Analyze a repository's pull requests, classify each one by the labels on
its linked issue, and collect the commits of every defect-linked pull.

The repository must be specified in the format: <org>/<repo>
For example: golang/go, kubernetes/kubernetes

Three artifacts are written to the output directory, named after the
repository: {repo}_pulls.txt (one commit hash per line), {repo}_pulls.csv
(one row per pull/commit pair), and {repo}_pulls.json (per-pull commit map).

Authentication uses a GitHub token when one is available (--token flag or
the token environment variable), falling back to a basic-auth pair from
flags, environment, or the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.repoArg = args[0]
			opts.stdout = cmd.OutOrStdout()
			return runAnalyze(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to config file (default: .sirseer-bugtrace.yaml)")
	cmd.Flags().StringVar(&opts.token, "token", "", "GitHub personal access token (overrides the token env var)")
	cmd.Flags().StringVar(&opts.username, "user", "", "GitHub username for basic auth")
	cmd.Flags().StringVar(&opts.password, "password", "", "GitHub password for basic auth")
	cmd.Flags().StringSliceVar(&opts.labels, "labels", nil, "Defect label set (overrides config)")
	cmd.Flags().StringVar(&opts.state, "state", "", "Pull request state filter: all, open, or closed")
	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "Pull requests per page, 1-100")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for output artifacts (default: current directory)")
	cmd.Flags().BoolVar(&opts.noWait, "no-rate-limit-wait", false, "Fail instead of waiting when the API rate limit is hit")

	return cmd
}

// runAnalyze executes the analyze command
func runAnalyze(ctx context.Context, opts analyzeOptions) error {
	owner, repo, err := parseRepository(opts.repoArg)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfigForRepo(opts.configPath, opts.repoArg)
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	auth, err := resolveAuthenticator(cfg, opts.token)
	if err != nil {
		return err
	}

	stdout := opts.stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	tracker := metadata.New()
	client := github.NewRESTClient(github.Options{
		Endpoint:  cfg.GitHub.APIEndpoint,
		Auth:      auth,
		PageSize:  cfg.Defaults.PageSize,
		State:     cfg.Defaults.StateFilter,
		RateLimit: &cfg.RateLimit,
		Progress:  stdout,
		Usage:     tracker,
	})

	emitter := output.NewFileEmitter(cfg.Defaults.OutputDir)
	analyzer := analysis.New(analysis.Config{
		Client:     client,
		Classifier: classify.New(client, cfg.DefectLabels),
		Emitter:    emitter,
		Progress:   stdout,
		Tracker:    tracker,
	})

	result, err := analyzer.Analyze(ctx, owner, repo)
	if err != nil {
		return err
	}

	console.Notef(stdout, "%s", tracker.Summary())
	console.Contf(stdout, "Artifacts: %s, %s, %s",
		emitter.ArtifactPath(result.Repo, "txt"),
		emitter.ArtifactPath(result.Repo, "csv"),
		emitter.ArtifactPath(result.Repo, "json"))

	return nil
}

// applyAnalyzeFlags overlays non-empty flag values onto the loaded config.
// Flags sit above environment variables and the config file.
func applyAnalyzeFlags(cfg *config.Config, opts analyzeOptions) {
	if opts.username != "" {
		cfg.Auth.Username = opts.username
	}
	if opts.password != "" {
		cfg.Auth.Password = opts.password
	}
	if len(opts.labels) > 0 {
		cfg.DefectLabels = opts.labels
	}
	if opts.state != "" {
		cfg.Defaults.StateFilter = opts.state
	}
	if opts.pageSize > 0 {
		cfg.Defaults.PageSize = opts.pageSize
	}
	if opts.outputDir != "" {
		cfg.Defaults.OutputDir = opts.outputDir
	}
	if opts.noWait {
		cfg.RateLimit.AutoWait = false
	}
}

// resolveAuthenticator picks the credential source for this run. A bearer
// token (flag, then the configured token environment variable) takes
// precedence over a basic-auth pair. Missing credentials are a
// configuration error, raised before any network activity.
func resolveAuthenticator(cfg *config.Config, tokenFlag string) (github.Authenticator, error) {
	if token := getToken(tokenFlag, cfg.GitHub.TokenEnv); token != "" {
		return github.NewTokenAuthenticator(token), nil
	}

	if cfg.Auth.Username != "" || cfg.Auth.Password != "" {
		if cfg.Auth.Username == "" || cfg.Auth.Password == "" {
			return nil, fmt.Errorf("incomplete basic-auth credentials: both username and password are required: %w", traceerrors.ErrMissingCredentials)
		}
		return &github.BasicAuthenticator{
			Username: cfg.Auth.Username,
			Password: cfg.Auth.Password,
		}, nil
	}

	return nil, fmt.Errorf("no GitHub credentials found. Set %s, use --token, or configure a basic-auth pair: %w",
		cfg.GitHub.TokenEnv, traceerrors.ErrMissingCredentials)
}

// parseRepository parses an org/repo string into owner and repo components
func parseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <org>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <org>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// getToken returns the GitHub token from the flag or the named environment
// variable. envVar comes from the config's github.token_env setting.
func getToken(flagToken, envVar string) string {
	if flagToken != "" {
		return flagToken
	}
	if envVar == "" {
		envVar = "GITHUB_TOKEN"
	}
	return os.Getenv(envVar)
}
