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

package ratelimit

import (
	"net/http"
	"strconv"
	"time"
)

// Response headers GitHub uses to signal rate limiting.
const (
	headerRemaining  = "X-RateLimit-Remaining"
	headerReset      = "X-RateLimit-Reset"
	headerRetryAfter = "Retry-After"
)

// Info describes a detected rate limit condition. Reset is the absolute
// time the request budget replenishes, valid only when HasReset is true.
// RetryAfter carries the server-suggested delay when a Retry-After header
// was present instead.
type Info struct {
	Reset      time.Time
	HasReset   bool
	RetryAfter time.Duration
}

// Detector inspects HTTP responses for GitHub rate limit signals.
type Detector struct{}

// NewDetector creates a Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// IsRateLimited reports whether resp indicates an exhausted request budget:
// a remaining count of exactly "0", or HTTP 429. A missing or malformed
// remaining header never counts as rate limited.
func (d *Detector) IsRateLimited(resp *http.Response) bool {
	if resp == nil {
		return false
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.Header.Get(headerRemaining) == "0"
}

// Detect extracts the rate limit window from resp. Call it only after
// IsRateLimited returns true; on responses without usable headers the
// returned Info directs the Waiter to its default window.
func (d *Detector) Detect(resp *http.Response) Info {
	var info Info
	if resp == nil {
		return info
	}

	if reset := resp.Header.Get(headerReset); reset != "" {
		if unix, err := strconv.ParseInt(reset, 10, 64); err == nil {
			info.Reset = time.Unix(unix, 0)
			info.HasReset = true
		}
	}

	if retryAfter := resp.Header.Get(headerRetryAfter); retryAfter != "" {
		if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
			info.RetryAfter = time.Duration(secs) * time.Second
		}
	}

	return info
}
