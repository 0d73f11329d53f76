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

// GitHubLikeServer mimics real GitHub REST API behavior more closely
// than the fixture switchboard in GitHubServer: every request consumes
// one unit of a finite quota, every response carries the live rate limit
// headers, bearer credentials are required, and the quota exhausts
// organically mid-run the way a real analysis of a large repository hits
// the limit. Tests replenish the quota to simulate the reset window
// passing, typically from inside an injected waiter's Sleep function.
type GitHubLikeServer struct {
	*httptest.Server

	mu        sync.Mutex
	fixture   RepoFixture
	remaining int
	limit     int
	reset     time.Time
	history   []RecordedRequest
}

// RecordedRequest is one request the server handled.
type RecordedRequest struct {
	Method    string
	Path      string
	Query     string
	Timestamp time.Time
}

// NewGitHubLikeServer starts a realistic mock API serving fixture with
// the given request quota. The server shuts down when the test finishes.
func NewGitHubLikeServer(t *testing.T, fixture RepoFixture, quota int) *GitHubLikeServer {
	t.Helper()

	s := &GitHubLikeServer{
		fixture:   fixture,
		remaining: quota,
		limit:     quota,
		reset:     time.Now().Add(time.Hour),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// ReplenishQuota restores the full request quota and advances the reset
// timestamp, simulating a rate limit window passing. Calling this from a
// fake waiter's Sleep function models recovery without real delay.
func (s *GitHubLikeServer) ReplenishQuota() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remaining = s.limit
	s.reset = time.Now().Add(time.Hour)
}

// Remaining returns how much quota is left.
func (s *GitHubLikeServer) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining
}

// History returns every request the server handled, in order.
func (s *GitHubLikeServer) History() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]RecordedRequest, len(s.history))
	copy(history, s.history)
	return history
}

func (s *GitHubLikeServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.history = append(s.history, RecordedRequest{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.RawQuery,
		Timestamp: time.Now(),
	})

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message":           "Bad credentials",
			"documentation_url": "https://docs.github.com/en/rest",
		})
		return
	}

	if s.remaining <= 0 {
		reset := s.reset
		s.mu.Unlock()
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(s.limit))
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message":           "API rate limit exceeded",
			"documentation_url": "https://docs.github.com/en/rest/rate-limit",
		})
		return
	}

	s.remaining--
	remaining := s.remaining
	reset := s.reset
	fixture := s.fixture
	s.mu.Unlock()

	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(s.limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

	serveFixture(w, r, s.URL, fixture)
}

// GenerateRealisticFixture builds a repository resembling a real project:
// count pulls with a deterministic mix of defect labels, feature labels,
// unlabeled pulls, and one to three commits each. Every fifth pull is
// bug-labeled and every eleventh carries kind/bug, so tests can compute
// expected classification results arithmetically.
func GenerateRealisticFixture(owner, repo string, count int) RepoFixture {
	pulls := make([]PullFixture, 0, count)
	for n := 1; n <= count; n++ {
		p := PullFixture{
			Number: n,
			State:  "closed",
			Title:  fmt.Sprintf("Change %d", n),
		}
		if n%3 == 0 {
			p.State = "open"
		}

		switch {
		case n%11 == 0:
			p.Labels = []string{"kind/bug", "priority/high"}
		case n%5 == 0:
			p.Labels = []string{"bug"}
		case n%7 == 0:
			p.Labels = []string{"enhancement"}
		}

		commits := n%3 + 1
		for i := 0; i < commits; i++ {
			p.Commits = append(p.Commits, fmt.Sprintf("%040x", n*1000+i))
		}

		pulls = append(pulls, p)
	}
	return RepoFixture{Owner: owner, Repo: repo, Pulls: pulls}
}

// DefectPulls returns the pulls in fixture whose labels intersect the
// given defect set, in fixture order.
func DefectPulls(fixture RepoFixture, defectLabels []string) []PullFixture {
	set := make(map[string]struct{}, len(defectLabels))
	for _, l := range defectLabels {
		set[l] = struct{}{}
	}

	var defects []PullFixture
	for _, p := range fixture.Pulls {
		for _, l := range p.Labels {
			if _, ok := set[l]; ok {
				defects = append(defects, p)
				break
			}
		}
	}
	return defects
}

// FlakyServer serves a fixture but fails every n-th request with a
// transient status, cycling through 502, 503, and 504. Deterministic
// failure placement keeps retry behavior reproducible: the immediate
// retry of a failed request always lands on a healthy slot.
type FlakyServer struct {
	*httptest.Server

	mu        sync.Mutex
	fixture   RepoFixture
	failEvery int
	requests  int
	failures  int
}

// NewFlakyServer starts a mock API that fails every failEvery-th request
// transiently. failEvery must be at least 2.
func NewFlakyServer(t *testing.T, fixture RepoFixture, failEvery int) *FlakyServer {
	t.Helper()

	if failEvery < 2 {
		t.Fatalf("failEvery must be at least 2, got %d", failEvery)
	}

	s := &FlakyServer{fixture: fixture, failEvery: failEvery}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Failures returns how many requests were served a transient failure.
func (s *FlakyServer) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}

// RequestCount returns the number of requests served, failures included.
func (s *FlakyServer) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *FlakyServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	fail := s.requests%s.failEvery == 0
	if fail {
		s.failures++
	}
	failures := s.failures
	fixture := s.fixture
	s.mu.Unlock()

	if fail {
		statuses := []int{
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout,
		}
		status := statuses[(failures-1)%len(statuses)]
		w.WriteHeader(status)
		fmt.Fprint(w, http.StatusText(status))
		return
	}

	w.Header().Set("X-RateLimit-Remaining", "4999")
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
	serveFixture(w, r, s.URL, fixture)
}
