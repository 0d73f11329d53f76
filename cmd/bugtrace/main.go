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
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/sirseer-bugtrace/internal/console"
	traceerrors "github.com/sirseerhq/sirseer-bugtrace/internal/errors"
	"github.com/sirseerhq/sirseer-bugtrace/pkg/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		console.Errorf(os.Stderr, "%v", err)
		return mapErrorToExitCode(err)
	}
	return 0
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sirseer-bugtrace",
		Short: "Trace defect-linked pull requests to their commits",
		Long: `SirSeer Bugtrace scans a GitHub repository's pull requests, identifies
those whose linked issue carries a defect label, and records the commits each
defect-linked pull contributed. Results are written as text, CSV, and JSON
artifacts for downstream analysis.`,
		Version:       version.Version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newCommitsCommand())

	return rootCmd
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, traceerrors.ErrInvalidCredentials) ||
		errors.Is(err, traceerrors.ErrMissingCredentials) ||
		errors.Is(err, traceerrors.ErrRepoNotFound) ||
		errors.Is(err, traceerrors.ErrRateLimit) {
		return 2 // Credential, lookup, and configuration errors
	}

	if errors.Is(err, traceerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
