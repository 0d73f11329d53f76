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

// Package integration exercises the full analysis pipeline end to end
// against mock GitHub API servers: pagination, classification, commit
// extraction, artifact emission, rate limit recovery, and failure
// handling, with no network access and no real waiting.
package integration

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/sirseerhq/sirseer-bugtrace/internal/ratelimit"
	"github.com/sirseerhq/sirseer-bugtrace/test/testutil"
)

// fakeClock drives rate limit wait arithmetic without real delay. Each
// recorded sleep advances the clock by the requested duration, and an
// optional hook runs after every sleep so tests can simulate the world
// changing while the client waits.
type fakeClock struct {
	now     time.Time
	slept   []time.Duration
	onSleep func()
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Now()}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	if c.onSleep != nil {
		c.onSleep()
	}
	return nil
}

// totalSlept sums the recorded sleep durations.
func (c *fakeClock) totalSlept() time.Duration {
	var total time.Duration
	for _, d := range c.slept {
		total += d
	}
	return total
}

// silentWaiter returns a waiter on the fake clock that prints nothing.
func silentWaiter(clock *fakeClock) *ratelimit.Waiter {
	return &ratelimit.Waiter{
		Out:          io.Discard,
		ShowProgress: false,
		Now:          clock.Now,
		Sleep:        clock.Sleep,
	}
}

// chattyWaiter returns a waiter on the fake clock that writes its
// countdown notices into out.
func chattyWaiter(clock *fakeClock, out *bytes.Buffer) *ratelimit.Waiter {
	return &ratelimit.Waiter{
		Out:          out,
		ShowProgress: true,
		Now:          clock.Now,
		Sleep:        clock.Sleep,
	}
}

// expectedRequests computes how many API requests a clean analysis of
// fixture needs: one per page of the pulls list, one issue lookup per
// pull, and one commit listing per defect-linked pull.
func expectedRequests(fixture testutil.RepoFixture, pageSize int, defectLabels []string) int {
	pages := (len(fixture.Pulls) + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}
	return pages + len(fixture.Pulls) + len(testutil.DefectPulls(fixture, defectLabels))
}

// flatSHAs returns the commit hashes of the given pulls in pull order,
// then commit order, matching the text artifact layout.
func flatSHAs(pulls []testutil.PullFixture) []string {
	var shas []string
	for _, p := range pulls {
		shas = append(shas, p.Commits...)
	}
	return shas
}
