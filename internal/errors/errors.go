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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidCredentials indicates GitHub rejected the supplied
	// credentials (basic auth pair or bearer token).
	// Maps to exit code 2.
	ErrInvalidCredentials = errors.New("invalid github credentials")

	// ErrRepoNotFound indicates the specified repository does not exist or is not accessible.
	// Maps to exit code 2.
	ErrRepoNotFound = errors.New("repository not found")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrRateLimit indicates the GitHub API rate limit was exceeded and
	// automatic waiting was disabled or its retry budget exhausted.
	// Maps to exit code 2.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrMissingCredentials indicates no usable credentials were found in
	// flags, environment, or config file. Raised before any network activity.
	// Maps to exit code 2.
	ErrMissingCredentials = errors.New("missing github credentials")
)

// UnexpectedStatusError reports a non-200 HTTP status outside the cases the
// client understands (auth failures, missing repos, rate limits). It is fatal:
// callers do not retry it, and it aborts the run. Maps to exit code 1.
type UnexpectedStatusError struct {
	StatusCode int
	URL        string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// IsUnexpectedStatus reports whether err wraps an UnexpectedStatusError and,
// if so, returns the offending status code.
func IsUnexpectedStatus(err error) (int, bool) {
	var statusErr *UnexpectedStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}
