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

// Package ratelimit detects GitHub API rate limiting and waits out the
// limit window.
//
// The Detector inspects responses for the X-RateLimit-Remaining and
// X-RateLimit-Reset headers (with Retry-After as a fallback) and reports
// whether the request budget is exhausted. The Waiter blocks until the
// window resets, padding the wait with a safety margin and printing
// periodic countdown notices so long waits are visibly alive:
//
//	NOTE: Rate limit hit, waiting for reset...
//	      Waiting: 42 minutes
//	NOTE: Rate limit hit
//	      38 minutes remaining...
//	...
//	NOTE: Wait completed, continuing execution...
//
// The Waiter's clock and sleep function are plain struct fields so tests
// can substitute fakes and verify wait arithmetic without real delays.
package ratelimit
