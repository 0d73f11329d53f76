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

package github

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirseerhq/sirseer-bugtrace/internal/config"
	traceerrors "github.com/sirseerhq/sirseer-bugtrace/internal/errors"
	"github.com/sirseerhq/sirseer-bugtrace/internal/giterror"
	"github.com/sirseerhq/sirseer-bugtrace/internal/ratelimit"
	"github.com/sirseerhq/sirseer-bugtrace/pkg/version"
)

// maxRateLimitWaits bounds how many rate-limit windows a single request
// will sit through before giving up.
const maxRateLimitWaits = 5

// restMediaType is the Accept header value for the REST v3 API.
const restMediaType = "application/vnd.github.v3+json"

// maxResponseBytes caps how much of any response body will be read.
const maxResponseBytes = 10 * 1024 * 1024 // 10MB

// rateLimitTransport adds rate limit detection and handling to HTTP
// requests. It wraps the retry transport and checks responses for rate
// limit headers; when the quota is exhausted it waits out the window and
// re-issues the identical request.
type rateLimitTransport struct {
	base     http.RoundTripper
	detector *ratelimit.Detector
	waiter   *ratelimit.Waiter
	config   *config.RateLimitConfig
	usage    UsageRecorder
}

// newRateLimitTransport assembles the full transport stack: rate limit
// handling wrapping retries wrapping authentication.
func newRateLimitTransport(auth Authenticator, cfg *config.RateLimitConfig, waiter *ratelimit.Waiter, usage UsageRecorder) http.RoundTripper {
	if waiter == nil {
		waiter = ratelimit.NewWaiter(cfg.ShowProgress)
	}

	return &rateLimitTransport{
		base: newRetryTransport(&authTransport{
			auth:  auth,
			base:  http.DefaultTransport,
			usage: usage,
		}),
		detector: ratelimit.NewDetector(),
		waiter:   waiter,
		config:   cfg,
		usage:    usage,
	}
}

// RoundTrip implements http.RoundTripper with rate limit handling.
// A response that arrives with the quota exhausted is discarded and the
// request re-issued after the reset, up to maxRateLimitWaits times.
func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for waits := 0; ; waits++ {
		resp, err := t.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		if !t.detector.IsRateLimited(resp) {
			return resp, nil
		}

		info := t.detector.Detect(resp)

		if !t.config.AutoWait {
			drainAndClose(resp.Body)
			return nil, fmt.Errorf("rate limit exceeded, reset at %s: %w",
				info.Reset.Format("3:04 PM"), traceerrors.ErrRateLimit)
		}

		if waits >= maxRateLimitWaits {
			drainAndClose(resp.Body)
			return nil, fmt.Errorf("rate limit still exhausted after %d waits: %w",
				waits, traceerrors.ErrRateLimit)
		}

		drainAndClose(resp.Body)
		if t.usage != nil {
			t.usage.RecordRateLimitWait()
		}

		if err := t.waiter.Wait(req.Context(), info); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}
}

// retryTransport adds exponential backoff retry logic for transient
// failures.
type retryTransport struct {
	base       http.RoundTripper
	maxRetries int
	backoff    time.Duration
}

// newRetryTransport creates a new transport with retry logic.
func newRetryTransport(base http.RoundTripper) http.RoundTripper {
	return &retryTransport{
		base:       base,
		maxRetries: 5,
		backoff:    time.Second,
	}
}

// RoundTrip implements http.RoundTripper with retry logic.
func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var lastErr error
	backoff := t.backoff

	for attempt := 0; attempt < t.maxRetries; attempt++ {
		// Clone request for each attempt
		clonedReq := req.Clone(req.Context())

		resp, err := t.base.RoundTrip(clonedReq)

		// Success - return immediately
		if err == nil && !isRetryableStatusCode(resp.StatusCode) {
			return resp, nil
		}

		// Check if error is retryable
		if err != nil {
			if !giterror.Retryable(err) {
				return nil, err
			}
			lastErr = fmt.Errorf("attempt %d/%d: %w", attempt+1, t.maxRetries, err)
		} else {
			lastErr = fmt.Errorf("attempt %d/%d: received status %d",
				attempt+1, t.maxRetries, resp.StatusCode)
			drainAndClose(resp.Body)
		}

		// Don't retry on the last attempt
		if attempt < t.maxRetries-1 {
			select {
			case <-time.After(backoff):
				backoff *= 2
				if backoff > 30*time.Second {
					backoff = 30 * time.Second
				}
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
		}
	}

	return nil, fmt.Errorf("network connection failed after %d attempts (%v): %w",
		t.maxRetries, lastErr, traceerrors.ErrNetworkFailure)
}

// isRetryableStatusCode checks if an HTTP status code should trigger a retry.
func isRetryableStatusCode(code int) bool {
	switch code {
	case http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// authTransport applies credentials and standard headers to requests and
// enforces safety limits on responses.
type authTransport struct {
	auth  Authenticator
	base  http.RoundTripper
	usage UsageRecorder
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	if t.auth != nil {
		if err := t.auth.Apply(req); err != nil {
			return nil, fmt.Errorf("applying credentials: %w", err)
		}
	}

	req.Header.Set("Accept", restMediaType)
	req.Header.Set("User-Agent", fmt.Sprintf("sirseer-bugtrace/%s", version.Version))

	if t.usage != nil {
		t.usage.RecordCall()
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      maxResponseBytes,
		}
	}

	return resp, nil
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive
// memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// drainAndClose consumes and closes a response body so the underlying
// connection can be reused.
func drainAndClose(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
