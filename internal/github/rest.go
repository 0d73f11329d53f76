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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/sirseerhq/sirseer-bugtrace/internal/config"
	traceerrors "github.com/sirseerhq/sirseer-bugtrace/internal/errors"
	"github.com/sirseerhq/sirseer-bugtrace/internal/giterror"
	"github.com/sirseerhq/sirseer-bugtrace/internal/ratelimit"
)

// defaultEndpoint is the public GitHub API base URL.
const defaultEndpoint = "https://api.github.com"

// Options configures a RESTClient.
type Options struct {
	// Endpoint is the API base URL. Defaults to the public GitHub API.
	// GitHub Enterprise installs use their /api/v3 root here.
	Endpoint string

	// Auth supplies request credentials. A nil Authenticator issues
	// anonymous requests, which GitHub rate-limits aggressively.
	Auth Authenticator

	// PageSize sets the per_page query parameter on list requests.
	// Values outside 1-100 fall back to 100, the API maximum.
	PageSize int

	// State filters pull requests by state: all, open, or closed.
	// Defaults to all.
	State string

	// RateLimit controls behavior when the API quota is exhausted and
	// optional client-side request pacing. Defaults to waiting out the
	// window with progress notices.
	RateLimit *config.RateLimitConfig

	// Progress receives human-readable fetch notices. A nil writer
	// silences them.
	Progress io.Writer

	// Waiter overrides the rate-limit waiter used during quota waits.
	// Tests inject a waiter with a fake clock here; production code
	// leaves it nil.
	Waiter *ratelimit.Waiter

	// Usage receives API activity callbacks. May be nil.
	Usage UsageRecorder
}

// RESTClient is the production implementation of Client, backed by the
// GitHub REST v3 API. It follows Link-header pagination, waits out rate
// limit windows, and retries transient failures with backoff. Methods
// are safe for sequential use; the client issues one request at a time.
type RESTClient struct {
	httpClient *http.Client
	endpoint   string
	params     url.Values
	progress   io.Writer
	limiter    *rate.Limiter
}

// NewRESTClient creates a REST API client from the given options.
func NewRESTClient(opts Options) *RESTClient {
	endpoint := strings.TrimSuffix(opts.Endpoint, "/")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 100
	}

	state := opts.State
	if state == "" {
		state = "all"
	}

	rlCfg := opts.RateLimit
	if rlCfg == nil {
		d := config.DefaultConfig().RateLimit
		rlCfg = &d
	}

	params := url.Values{}
	params.Set("state", state)
	params.Set("per_page", strconv.Itoa(pageSize))

	var limiter *rate.Limiter
	if rlCfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(rlCfg.RequestsPerSecond), 1)
	}

	// No Client.Timeout here: rate limit waits run inside the transport
	// and can outlast any fixed deadline. Cancellation comes from the
	// request context.
	return &RESTClient{
		httpClient: &http.Client{
			Transport: newRateLimitTransport(opts.Auth, rlCfg, opts.Waiter, opts.Usage),
		},
		endpoint: endpoint,
		params:   params,
		progress: opts.Progress,
		limiter:  limiter,
	}
}

// ListPullRequests retrieves every pull request in the repository,
// walking Link-header pagination from the first page. Results preserve
// API order across pages.
func (c *RESTClient) ListPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error) {
	listURL := fmt.Sprintf("%s/repos/%s/%s/pulls", c.endpoint, owner, repo)

	var pulls []PullRequest
	err := c.listPages(ctx, listURL, c.progress, func(body []byte) (int, error) {
		var page []PullRequest
		if err := json.Unmarshal(body, &page); err != nil {
			return 0, err
		}
		pulls = append(pulls, page...)
		return len(page), nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching pull requests for %s/%s: %w", owner, repo, err)
	}
	return pulls, nil
}

// GetIssue fetches the issue record behind a pull request.
func (c *RESTClient) GetIssue(ctx context.Context, issueURL string) (*Issue, error) {
	reqURL, err := c.mergeQuery(issueURL)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	var issue Issue
	if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
		return nil, fmt.Errorf("decoding issue from %s: %w", issueURL, err)
	}
	return &issue, nil
}

// ListPullCommits retrieves the commits of a pull request from its
// commits URL. Commit listings rarely span pages, but the walk follows
// pagination anyway so oversized pull requests are read in full.
func (c *RESTClient) ListPullCommits(ctx context.Context, commitsURL string) ([]Commit, error) {
	var commits []Commit
	err := c.listPages(ctx, commitsURL, nil, func(body []byte) (int, error) {
		var page []Commit
		if err := json.Unmarshal(body, &page); err != nil {
			return 0, err
		}
		commits = append(commits, page...)
		return len(page), nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching commits from %s: %w", commitsURL, err)
	}
	return commits, nil
}

// ListPullCommitsByNumber retrieves the commits of a pull request
// addressed by repository and pull number.
func (c *RESTClient) ListPullCommitsByNumber(ctx context.Context, owner, repo string, number int) ([]Commit, error) {
	commitsURL := fmt.Sprintf("%s/repos/%s/%s/pulls/%d/commits", c.endpoint, owner, repo, number)
	return c.ListPullCommits(ctx, commitsURL)
}

// listPages walks Link-header pagination starting from rawURL. The page
// callback decodes one response body and reports how many records it
// held; when progress is non-nil a running total is printed per page.
// Standing query parameters are merged into the first URL only. Next
// links arrive from the API with parameters baked in.
func (c *RESTClient) listPages(ctx context.Context, rawURL string, progress io.Writer, page func(body []byte) (int, error)) error {
	next, err := c.mergeQuery(rawURL)
	if err != nil {
		return err
	}

	total := 0
	for next != "" {
		resp, err := c.do(ctx, next)
		if err != nil {
			return err
		}

		body, err := io.ReadAll(resp.Body)
		drainAndClose(resp.Body)
		if err != nil {
			return fmt.Errorf("reading response from %s: %w", next, err)
		}

		count, err := page(body)
		if err != nil {
			return fmt.Errorf("decoding response from %s: %w", next, err)
		}

		total += count
		if progress != nil {
			fmt.Fprintf(progress, "Processing %d issues/pull requests, for %d total\n", count, total)
		}

		next = nextPageURL(resp.Header)
	}
	return nil
}

// do issues a single GET and maps non-200 responses onto the error
// taxonomy. Rate limit waits and transient retries happen below this in
// the transport stack, so a response seen here is final.
func (c *RESTClient) do(ctx context.Context, rawURL string) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", rawURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapTransportError(err)
	}

	if resp.StatusCode != http.StatusOK {
		drainAndClose(resp.Body)
		return nil, statusError(resp.StatusCode, rawURL)
	}

	return resp, nil
}

// mergeQuery appends the client's standing query parameters (state,
// per_page) to rawURL. Keys already present on the URL win.
func (c *RESTClient) mergeQuery(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing request URL %q: %w", rawURL, err)
	}

	q := u.Query()
	for key, values := range c.params {
		if q.Has(key) {
			continue
		}
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// statusError maps an HTTP status code onto the error taxonomy. A 403
// reaching this point is a genuine permission failure; quota-exhausted
// 403s carry a zero remaining header and are intercepted by the rate
// limit transport before status mapping.
func statusError(code int, rawURL string) error {
	switch code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("authentication failed for %s. Please check your GitHub credentials: %w",
			rawURL, traceerrors.ErrInvalidCredentials)
	case http.StatusNotFound:
		return fmt.Errorf("resource not found at %s. Please check the repository name and your access permissions: %w",
			rawURL, traceerrors.ErrRepoNotFound)
	default:
		return &traceerrors.UnexpectedStatusError{StatusCode: code, URL: rawURL}
	}
}

// wrapTransportError maps low-level transport failures onto the error
// taxonomy. Retry exhaustion inside the transport stack already carries
// ErrNetworkFailure; anything else that classifies as a network or
// timeout fault is wrapped the same way so callers see one sentinel.
func wrapTransportError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, traceerrors.ErrNetworkFailure), errors.Is(err, traceerrors.ErrRateLimit):
		return err
	case giterror.Retryable(err):
		return fmt.Errorf("network error connecting to the GitHub API. Please check your internet connection and try again: %w",
			traceerrors.ErrNetworkFailure)
	default:
		return err
	}
}
