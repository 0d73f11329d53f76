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

// Package github provides a client for the GitHub REST v3 API scoped to the
// resources defect analysis needs: pull request listings, the issue linked
// to a pull request, and a pull request's commits.
//
// The client walks paginated collections by following the Link response
// header and preserves API response order throughout. Rate limiting is
// handled inside the transport stack: when the X-RateLimit-Remaining header
// reads zero (or the API answers 429), the request blocks until the window
// resets and is then re-issued, bounded to a fixed number of waits per
// request. Transient failures (connection resets, 502/503/504) are retried
// with exponential backoff. Credentials are applied by an Authenticator;
// both basic-auth pairs and bearer tokens are supported.
//
// Basic usage:
//
//	client := github.NewRESTClient(github.Options{
//		Endpoint: "https://api.github.com",
//		Auth:     github.NewTokenAuthenticator(token),
//		PageSize: 100,
//		State:    "all",
//	})
//	pulls, err := client.ListPullRequests(ctx, "octocat", "hello-world")
//
// The package also provides MockClient for testing without network access.
package github
