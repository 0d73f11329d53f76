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

// Package main implements the sirseer-bugtrace command-line interface.
// This tool scans a GitHub repository's pull requests, classifies each one
// by the labels on its linked issue, and writes the commits of every
// defect-linked pull as text, CSV, and JSON artifacts.
//
// The CLI supports:
//   - Full repository analysis with the analyze subcommand
//   - Ad hoc commit lookups for a single pull with the commits subcommand
//   - Token or basic-auth authentication via flags, environment, or config
//   - Configurable defect label sets, state filters, and page sizes
//   - Automatic rate limit waits with progress notices (opt out with
//     --no-rate-limit-wait)
//
// Usage:
//
//	sirseer-bugtrace analyze <org>/<repo> [flags]
//	sirseer-bugtrace commits <org>/<repo> <number> [flags]
//
// Example:
//
//	export GITHUB_TOKEN=your_token
//	sirseer-bugtrace analyze golang/go --output-dir ./reports
//
// Exit codes:
//   - 0: Success
//   - 1: General error (including unexpected API statuses)
//   - 2: Credential, configuration, repository lookup, or rate limit error
//   - 3: Network error
package main
