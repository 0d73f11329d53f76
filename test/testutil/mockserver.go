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

// Package testutil provides common test helpers for sirseer-bugtrace
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
)

// GitHubServer is a fixture-driven stand-in for the GitHub REST API. It
// serves one synthetic repository: the pulls list with Link-header
// pagination, each pull's linked issue with its labels, and each pull's
// commit list. Failure modes (bad credentials, rate limiting, transient
// errors) are switched on per test.
type GitHubServer struct {
	*httptest.Server

	mu           sync.Mutex
	fixture      RepoFixture
	requests     []string
	requireToken string
	limitNext    int
	resetDelay   time.Duration
	failNext     int
	failStatus   int
}

// NewGitHubServer starts a mock API serving fixture. The server shuts
// down when the test finishes.
func NewGitHubServer(t *testing.T, fixture RepoFixture) *GitHubServer {
	t.Helper()

	s := &GitHubServer{fixture: fixture}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// RequireToken makes the server reject requests that do not carry
// "Authorization: Bearer <token>".
func (s *GitHubServer) RequireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requireToken = token
}

// RateLimitNext makes the next n requests report an exhausted quota
// (status 403, remaining 0) with a reset timestamp resetDelay from the
// moment each response is served.
func (s *GitHubServer) RateLimitNext(n int, resetDelay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.limitNext = n
	s.resetDelay = resetDelay
}

// FailNext makes the next n requests fail with the given status code.
func (s *GitHubServer) FailNext(n, statusCode int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = n
	s.failStatus = statusCode
}

// Requests returns the method, path, and query of every request served,
// in order.
func (s *GitHubServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	requests := make([]string, len(s.requests))
	copy(requests, s.requests)
	return requests
}

// RequestCount returns the number of requests served.
func (s *GitHubServer) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *GitHubServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.Method+" "+r.URL.RequestURI())

	if s.requireToken != "" && r.Header.Get("Authorization") != "Bearer "+s.requireToken {
		s.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Bad credentials"})
		return
	}

	if s.limitNext > 0 {
		s.limitNext--
		reset := time.Now().Add(s.resetDelay)
		s.mu.Unlock()
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "API rate limit exceeded"})
		return
	}

	if s.failNext > 0 {
		s.failNext--
		status := s.failStatus
		s.mu.Unlock()
		w.WriteHeader(status)
		fmt.Fprint(w, http.StatusText(status))
		return
	}

	fixture := s.fixture
	s.mu.Unlock()

	w.Header().Set("X-RateLimit-Remaining", "4999")
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))

	serveFixture(w, r, s.URL, fixture)
}

// serveFixture routes one request against a repository fixture. It is
// shared by every mock server flavor in this package.
func serveFixture(w http.ResponseWriter, r *http.Request, baseURL string, fixture RepoFixture) {
	base := "/repos/" + fixture.Owner + "/" + fixture.Repo
	switch {
	case r.URL.Path == base+"/pulls":
		servePulls(w, r, baseURL, fixture)
	case strings.HasPrefix(r.URL.Path, base+"/pulls/") && strings.HasSuffix(r.URL.Path, "/commits"):
		serveCommits(w, r, baseURL, fixture, base)
	case strings.HasPrefix(r.URL.Path, base+"/issues/"):
		serveIssue(w, r, fixture, base)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
	}
}

// servePulls returns one page of the pulls list with Link headers
// pointing at the neighboring pages, the way the real API paginates.
func servePulls(w http.ResponseWriter, r *http.Request, baseURL string, fixture RepoFixture) {
	perPage, page := pageParams(r)

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(fixture.Pulls) {
		start = len(fixture.Pulls)
	}
	if end > len(fixture.Pulls) {
		end = len(fixture.Pulls)
	}

	lastPage := (len(fixture.Pulls) + perPage - 1) / perPage
	if lastPage > 1 {
		w.Header().Set("Link", linkHeader(r, baseURL, page, lastPage))
	}

	pulls := make([]map[string]interface{}, 0, end-start)
	for _, p := range fixture.Pulls[start:end] {
		pulls = append(pulls, pullJSON(baseURL, fixture, p))
	}
	writeJSON(w, http.StatusOK, pulls)
}

// serveCommits returns one page of a pull's commit list. Commit lists
// rarely span pages in practice, but the server paginates them the same
// way the pulls list does so clients exercise the general path.
func serveCommits(w http.ResponseWriter, r *http.Request, baseURL string, fixture RepoFixture, base string) {
	numberPart := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, base+"/pulls/"), "/commits")
	number, err := strconv.Atoi(numberPart)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}

	pull, ok := findPull(fixture, number)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}

	perPage, page := pageParams(r)
	start := (page - 1) * perPage
	end := start + perPage
	if start > len(pull.Commits) {
		start = len(pull.Commits)
	}
	if end > len(pull.Commits) {
		end = len(pull.Commits)
	}

	lastPage := (len(pull.Commits) + perPage - 1) / perPage
	if lastPage > 1 {
		w.Header().Set("Link", linkHeader(r, baseURL, page, lastPage))
	}

	commits := make([]map[string]interface{}, 0, end-start)
	for _, sha := range pull.Commits[start:end] {
		commits = append(commits, map[string]interface{}{"sha": sha})
	}
	writeJSON(w, http.StatusOK, commits)
}

// serveIssue returns the issue linked to a pull, carrying the labels the
// classifier inspects.
func serveIssue(w http.ResponseWriter, r *http.Request, fixture RepoFixture, base string) {
	number, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, base+"/issues/"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}

	pull, ok := findPull(fixture, number)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}

	labels := make([]map[string]interface{}, 0, len(pull.Labels))
	for _, name := range pull.Labels {
		labels = append(labels, map[string]interface{}{"name": name})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"number": pull.Number,
		"labels": labels,
	})
}

func pullJSON(baseURL string, fixture RepoFixture, p PullFixture) map[string]interface{} {
	base := fmt.Sprintf("%s/repos/%s/%s", baseURL, fixture.Owner, fixture.Repo)
	return map[string]interface{}{
		"number":      p.Number,
		"state":       p.State,
		"title":       p.Title,
		"issue_url":   fmt.Sprintf("%s/issues/%d", base, p.Number),
		"commits_url": fmt.Sprintf("%s/pulls/%d/commits", base, p.Number),
		"head": map[string]interface{}{
			"ref": fmt.Sprintf("feature-%d", p.Number),
			"sha": fmt.Sprintf("head%d", p.Number),
		},
		"base": map[string]interface{}{
			"ref": "main",
			"sha": fmt.Sprintf("base%d", p.Number),
		},
	}
}

// linkHeader builds the pagination Link header for the current page,
// keeping all query parameters of the incoming request intact.
func linkHeader(r *http.Request, baseURL string, page, lastPage int) string {
	pageURL := func(n int) string {
		u := *r.URL
		q := u.Query()
		q.Set("page", strconv.Itoa(n))
		u.RawQuery = q.Encode()
		return baseURL + u.String()
	}

	entries := []string{
		fmt.Sprintf(`<%s>; rel="first"`, pageURL(1)),
		fmt.Sprintf(`<%s>; rel="last"`, pageURL(lastPage)),
	}
	if page > 1 {
		entries = append(entries, fmt.Sprintf(`<%s>; rel="prev"`, pageURL(page-1)))
	}
	if page < lastPage {
		entries = append(entries, fmt.Sprintf(`<%s>; rel="next"`, pageURL(page+1)))
	}
	return strings.Join(entries, ", ")
}

func pageParams(r *http.Request) (perPage, page int) {
	perPage = 100
	if v, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && v > 0 {
		perPage = v
	}
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	return perPage, page
}

func findPull(fixture RepoFixture, number int) (PullFixture, bool) {
	for _, p := range fixture.Pulls {
		if p.Number == number {
			return p, true
		}
	}
	return PullFixture{}, false
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
