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
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirseerhq/sirseer-bugtrace/internal/console"
	traceerrors "github.com/sirseerhq/sirseer-bugtrace/internal/errors"
)

const (
	// safetyMargin pads every wait so the first retry lands after the
	// window has actually reset; GitHub's reset timestamps are coarse.
	safetyMargin = 15 * time.Second

	// waitIncrement is the longest single sleep. Long waits are chopped
	// into increments so a countdown notice appears between them.
	waitIncrement = 240 * time.Second

	// defaultWait applies when a rate-limited response carries neither a
	// usable reset timestamp nor a Retry-After header.
	defaultWait = time.Minute

	// maxWait refuses absurd windows. GitHub core resets within the hour;
	// anything past this is a clock problem, not a rate limit.
	maxWait = 2 * time.Hour
)

// Waiter blocks until a rate limit window has passed. Out receives the
// countdown notices; Now and Sleep are substitutable so tests can drive the
// wait arithmetic with a fake clock and observe sleeps without real delay.
type Waiter struct {
	Out          io.Writer
	ShowProgress bool
	Now          func() time.Time
	Sleep        func(ctx context.Context, d time.Duration) error
}

// NewWaiter creates a Waiter with the real clock, writing notices to
// standard output when showProgress is true.
func NewWaiter(showProgress bool) *Waiter {
	return &Waiter{
		Out:          os.Stdout,
		ShowProgress: showProgress,
		Now:          time.Now,
		Sleep:        sleepContext,
	}
}

// Wait blocks until the window described by info has elapsed, plus the
// safety margin. It sleeps in fixed increments, printing a remaining-time
// notice after each, and a completion notice at the end. Returns early with
// the context error if ctx is canceled mid-wait, or ErrRateLimit if the
// window exceeds the sanity ceiling.
func (w *Waiter) Wait(ctx context.Context, info Info) error {
	total := w.window(info)
	if total < 0 {
		total = 0
	}
	total += safetyMargin

	if total > maxWait {
		return fmt.Errorf("rate limit wait of %s exceeds maximum %s: %w", total, maxWait, traceerrors.ErrRateLimit)
	}

	if w.ShowProgress {
		console.Notef(w.Out, "Rate limit hit, waiting for reset...")
		if info.HasReset {
			console.Contf(w.Out, "Resets at: %s", info.Reset.UTC().Format(time.RFC1123))
			console.Contf(w.Out, "Currently: %s", w.Now().UTC().Format(time.RFC1123))
		}
		console.Contf(w.Out, "Waiting:   %s", formatMinutes(total))
	}

	remaining := total
	for remaining > 0 {
		step := waitIncrement
		if remaining < step {
			step = remaining
		}
		if err := w.Sleep(ctx, step); err != nil {
			return err
		}
		remaining -= step
		if remaining > 0 && w.ShowProgress {
			console.Notef(w.Out, "Rate limit hit")
			console.Contf(w.Out, "%s remaining...", formatMinutes(remaining))
		}
	}

	if w.ShowProgress {
		console.Notef(w.Out, "Wait completed, continuing execution...")
	}
	return nil
}

// window derives the raw wait duration from the detected info, before the
// safety margin is added.
func (w *Waiter) window(info Info) time.Duration {
	switch {
	case info.HasReset:
		return info.Reset.Sub(w.Now())
	case info.RetryAfter > 0:
		return info.RetryAfter
	default:
		return defaultWait
	}
}

// formatMinutes renders a duration the way the countdown notices expect:
// whole minutes above one minute, two-decimal fractional minutes below.
func formatMinutes(d time.Duration) string {
	mins := d.Minutes()
	if mins > 1 {
		return fmt.Sprintf("%d minutes", int(mins))
	}
	return fmt.Sprintf("%.2f minutes", mins)
}

// sleepContext sleeps for d or until ctx is canceled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
