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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{
			name:     "direct invalid credentials error",
			err:      ErrInvalidCredentials,
			sentinel: ErrInvalidCredentials,
			want:     true,
		},
		{
			name:     "wrapped invalid credentials error",
			err:      fmt.Errorf("failed to authenticate: %w", ErrInvalidCredentials),
			sentinel: ErrInvalidCredentials,
			want:     true,
		},
		{
			name:     "different error type",
			err:      ErrRepoNotFound,
			sentinel: ErrInvalidCredentials,
			want:     false,
		},
		{
			name:     "wrapped network error",
			err:      fmt.Errorf("connection failed: %w", ErrNetworkFailure),
			sentinel: ErrNetworkFailure,
			want:     true,
		},
		{
			name:     "wrapped missing credentials error",
			err:      fmt.Errorf("loading config: %w", ErrMissingCredentials),
			sentinel: ErrMissingCredentials,
			want:     true,
		},
		{
			name:     "nil error",
			err:      nil,
			sentinel: ErrInvalidCredentials,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.sentinel)
			if got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.sentinel, got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidCredentials, "invalid github credentials"},
		{ErrRepoNotFound, "repository not found"},
		{ErrNetworkFailure, "network connection failed"},
		{ErrRateLimit, "github rate limit exceeded"},
		{ErrMissingCredentials, "missing github credentials"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnexpectedStatusError(t *testing.T) {
	err := &UnexpectedStatusError{StatusCode: 500, URL: "https://api.github.com/repos/octocat/hello/pulls"}

	want := "unexpected status 500 from https://api.github.com/repos/octocat/hello/pulls"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := fmt.Errorf("fetching pulls: %w", err)
	code, ok := IsUnexpectedStatus(wrapped)
	if !ok {
		t.Fatal("IsUnexpectedStatus did not recognize wrapped error")
	}
	if code != 500 {
		t.Errorf("status code = %d, want 500", code)
	}

	if _, ok := IsUnexpectedStatus(ErrRepoNotFound); ok {
		t.Error("IsUnexpectedStatus matched a sentinel error")
	}
}
